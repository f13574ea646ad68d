package repo

import (
	"context"
	"errors"
	"time"

	dmn "github.com/beka-birhanu/vinom-portfolio/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	saveTimeout = time.Second
	listTimeout = 2 * time.Second

	DefaultListLimit = 50
	MaxListLimit     = 200
)

// MessageRepo handles the persistence of contact messages.
type MessageRepo struct {
	collection *mongo.Collection
}

// NewMessageRepo creates a new MessageRepo with the given MongoDB client, database name, and collection name.
func NewMessageRepo(client *mongo.Client, dbName, collectionName string) *MessageRepo {
	collection := client.Database(dbName).Collection(collectionName)
	return &MessageRepo{
		collection: collection,
	}
}

// EnsureIndexes creates the index List sorts on.
func (m *MessageRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	_, err := m.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "createdAt", Value: -1}},
	})
	return err
}

// Save inserts or updates a message in the repository.
func (m *MessageRepo) Save(ctx context.Context, msg *dmn.ContactMessage) error {
	ctx, cancel := context.WithTimeout(ctx, saveTimeout)
	defer cancel()

	filter := bson.M{"_id": msg.ID}
	update := bson.M{
		"$set": bson.M{
			"name":      msg.Name,
			"email":     msg.Email,
			"phone":     msg.Phone,
			"subject":   msg.Subject,
			"message":   msg.Message,
			"clientIP":  msg.ClientIP,
			"forwarded": msg.Forwarded,
			"createdAt": msg.CreatedAt,
			"updatedAt": time.Now(),
		},
	}

	opts := options.Update().SetUpsert(true)
	if _, err := m.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return errors.New("unexpected error: " + err.Error())
	}
	return nil
}

// List returns messages newest first.
func (m *MessageRepo) List(ctx context.Context, limit, offset int) ([]*dmn.ContactMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	limit, offset = clampPage(limit, offset)
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cursor, err := m.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errors.New("unexpected error: " + err.Error())
	}
	defer cursor.Close(ctx)

	var msgs []*dmn.ContactMessage
	if err := cursor.All(ctx, &msgs); err != nil {
		return nil, errors.New("unexpected error: " + err.Error())
	}
	return msgs, nil
}

// clampPage keeps paging arguments within sane bounds.
func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
