package bucket

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStore(t *testing.T) (*RedisBucketStore, *miniredis.Miniredis, *time.Time) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	store := NewRedisBucketStore(client)
	store.now = func() time.Time { return now }
	return store, mr, &now
}

func TestRedisBucketStoreSlidingWindow(t *testing.T) {
	store, mr, now := newRedisStore(t)
	ctx := context.Background()

	for i := range 2 {
		result, err := store.Allow(ctx, "report:u1", 2, time.Minute)
		require.NoError(t, err)
		assert.True(t, result.Allowed)
		assert.Equal(t, 1-i, result.Remaining)
	}
	assert.True(t, mr.Exists(redisKeyPrefix+"report:u1"))

	result, err := store.Allow(ctx, "report:u1", 2, time.Minute)
	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Equal(t, 60, result.RetryAfter)

	*now = now.Add(time.Minute + time.Millisecond)
	result, err = store.Allow(ctx, "report:u1", 2, time.Minute)
	require.NoError(t, err)
	assert.True(t, result.Allowed)
}

func TestRedisBucketStoreReset(t *testing.T) {
	store, mr, _ := newRedisStore(t)
	ctx := context.Background()

	_, err := store.Allow(ctx, "report:u2", 1, time.Minute)
	require.NoError(t, err)
	require.NoError(t, store.Reset(ctx, "report:u2"))
	assert.False(t, mr.Exists(redisKeyPrefix+"report:u2"))

	result, err := store.Allow(ctx, "report:u2", 1, time.Minute)
	require.NoError(t, err)
	assert.True(t, result.Allowed)
}

func TestRedisBucketStoreUnavailable(t *testing.T) {
	store, mr, _ := newRedisStore(t)
	mr.Close()

	_, err := store.Allow(context.Background(), "report:u3", 1, time.Minute)
	assert.Error(t, err)
}
