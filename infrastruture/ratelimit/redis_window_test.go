package ratelimit

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// redisClient connects to REDIS_TEST_ADDR and skips the test when unset.
func redisClient(t *testing.T) *redis.Client {
	t.Helper()
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Ping(context.Background()).Err())
	return client
}

func TestNewRedisWindow(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "localhost:0"})
	defer client.Close()

	_, err := NewRedisWindow(client, Options{Limit: 0, Window: time.Minute})
	assert.ErrorIs(t, err, ErrInvalidLimit)
	_, err = NewRedisWindow(client, Options{Limit: 1})
	assert.ErrorIs(t, err, ErrInvalidLimit)

	w, err := NewRedisWindow(client, Options{Limit: 3, Window: time.Minute})
	require.NoError(t, err)
	assert.Equal(t, "ratelimit:1.2.3.4", w.key("1.2.3.4"))
}

func TestRedisWindow_Allow(t *testing.T) {
	client := redisClient(t)
	ctx := context.Background()

	w, err := NewRedisWindow(client, Options{Prefix: "test-" + uuid.NewString(), Limit: 2, Window: time.Minute})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Del(ctx, w.key("a"), w.key("b")).Err() })

	clock := time.Unix(1_700_000_000, 0)
	w.now = func() time.Time { return clock }

	for i := 0; i < 2; i++ {
		ok, err := w.Allow(ctx, "a")
		require.NoError(t, err)
		assert.True(t, ok)
	}
	ok, err := w.Allow(ctx, "a")
	require.NoError(t, err)
	assert.False(t, ok, "third attempt inside the window")
	assert.Equal(t, int64(2), w.Count(ctx, "a"))

	ok, err = w.Allow(ctx, "b")
	require.NoError(t, err)
	assert.True(t, ok, "keys are limited separately")

	clock = clock.Add(61 * time.Second)
	ok, err = w.Allow(ctx, "a")
	require.NoError(t, err)
	assert.True(t, ok, "window slid past earlier attempts")
	assert.Equal(t, int64(1), w.Count(ctx, "a"))
}
