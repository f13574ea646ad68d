// Package ratelimit limits how often a client may act, counting attempts in
// a Redis sorted set per client.
package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	defaultPrefix = "ratelimit"
	keyFmt        = "%s:%s"
	lockSuffix    = ":lock"
	lockExpiry    = 2 * time.Second
	lockTries     = 8
)

var ErrInvalidLimit = errors.New("limit and window must be positive")

// Options configures a RedisWindow.
type Options struct {
	Prefix string        // key prefix, "ratelimit" when empty
	Limit  int           // attempts allowed per window
	Window time.Duration // sliding window length
}

// RedisWindow is a sliding window limiter. Each attempt is a member of a
// sorted set scored by its time; members older than the window are dropped
// before counting.
type RedisWindow struct {
	client *redis.Client
	locker *redsync.Redsync
	prefix string
	limit  int64
	window time.Duration
	now    func() time.Time
}

// NewRedisWindow initializes a RedisWindow with the provided Redis client.
func NewRedisWindow(client *redis.Client, opts Options) (*RedisWindow, error) {
	if opts.Limit <= 0 || opts.Window <= 0 {
		return nil, ErrInvalidLimit
	}
	if opts.Prefix == "" {
		opts.Prefix = defaultPrefix
	}

	pool := goredis.NewPool(client)
	return &RedisWindow{
		client: client,
		locker: redsync.New(pool),
		prefix: opts.Prefix,
		limit:  int64(opts.Limit),
		window: opts.Window,
		now:    time.Now,
	}, nil
}

// Allow implements i.RateLimiter. Rejected attempts are not recorded, so a
// client that keeps retrying is let in once the window slides past its
// earlier attempts.
func (w *RedisWindow) Allow(ctx context.Context, key string) (bool, error) {
	setKey := w.key(key)

	mutex := w.locker.NewMutex(setKey+lockSuffix, redsync.WithExpiry(lockExpiry), redsync.WithTries(lockTries))
	if err := mutex.LockContext(ctx); err != nil {
		return false, fmt.Errorf("lock %s: %w", setKey, err)
	}
	defer func() {
		_, _ = mutex.UnlockContext(ctx)
	}()

	now := w.now()
	cutoff := now.Add(-w.window).UnixNano()
	if err := w.client.ZRemRangeByScore(ctx, setKey, "-inf", strconv.FormatInt(cutoff, 10)).Err(); err != nil {
		return false, err
	}

	count, err := w.client.ZCard(ctx, setKey).Result()
	if err != nil {
		return false, err
	}
	if count >= w.limit {
		return false, nil
	}

	member := redis.Z{Score: float64(now.UnixNano()), Member: uuid.NewString()}
	if err := w.client.ZAdd(ctx, setKey, member).Err(); err != nil {
		return false, err
	}
	_ = w.client.Expire(ctx, setKey, w.window).Err()
	return true, nil
}

// Count returns the attempts currently recorded for key.
func (w *RedisWindow) Count(ctx context.Context, key string) int64 {
	return w.client.ZCard(ctx, w.key(key)).Val()
}

func (w *RedisWindow) key(k string) string {
	return fmt.Sprintf(keyFmt, w.prefix, k)
}
