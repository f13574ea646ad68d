package i

import (
	"context"

	dmn "github.com/beka-birhanu/vinom-portfolio/domain"
)

// MessageRepo defines the interface for contact message persistence.
type MessageRepo interface {
	// Save inserts or updates a message in the repository.
	Save(ctx context.Context, msg *dmn.ContactMessage) error

	// List returns messages newest first, skipping offset and returning at
	// most limit of them.
	List(ctx context.Context, limit, offset int) ([]*dmn.ContactMessage, error)
}
