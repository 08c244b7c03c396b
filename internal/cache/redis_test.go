package cache

import (
	"context"
	"testing"
	"time"

	"github.com/DjordjeVuckovic/news-hub/internal/domain"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T, opts ...RedisOption) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedis(client, opts...), mr
}

func TestRedis_FirstWriteWins(t *testing.T) {
	ctx := context.Background()
	r, mr := newTestRedis(t)

	published := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	first := article("a", "first")
	first.PublishedAt = published
	first.Author = domain.OptionalString("Jane")

	assert.True(t, r.Put(ctx, "a", first))
	assert.False(t, r.Put(ctx, "a", article("a", "second")))

	got, ok := r.Get(ctx, "a")
	require.True(t, ok)
	assert.Equal(t, first, got)
	assert.True(t, mr.Exists(DefaultKeyPrefix+"a"))
	assert.Equal(t, DefaultTTL, mr.TTL(DefaultKeyPrefix+"a"))
}

func TestRedis_Expiry(t *testing.T) {
	ctx := context.Background()
	r, mr := newTestRedis(t, WithRedisTTL(time.Minute))

	r.Put(ctx, "a", article("a", "first"))
	mr.FastForward(61 * time.Second)

	_, ok := r.Get(ctx, "a")
	assert.False(t, ok)
	assert.True(t, r.Put(ctx, "a", article("a", "second")))
}

func TestRedis_Entries(t *testing.T) {
	ctx := context.Background()
	r, mr := newTestRedis(t)

	r.Put(ctx, "a", article("a", "a"))
	r.Put(ctx, "b", article("b", "b"))
	require.NoError(t, mr.Set("unrelated", "x"))
	require.NoError(t, mr.Set(DefaultKeyPrefix+"broken", "not json"))

	ids := make([]string, 0, 2)
	for _, a := range r.Entries(ctx) {
		ids = append(ids, a.ID)
	}
	assert.ElementsMatch(t, []string{"a", "b"}, ids)
}

func TestRedis_CorruptEntryIsAMiss(t *testing.T) {
	r, mr := newTestRedis(t)
	require.NoError(t, mr.Set(DefaultKeyPrefix+"a", "{"))

	_, ok := r.Get(context.Background(), "a")
	assert.False(t, ok)
}

func TestRedis_UnavailableServer(t *testing.T) {
	ctx := context.Background()
	r, mr := newTestRedis(t)
	mr.Close()

	assert.False(t, r.Put(ctx, "a", article("a", "a")))
	_, ok := r.Get(ctx, "a")
	assert.False(t, ok)
	assert.Empty(t, r.Entries(ctx))
	assert.Error(t, r.HealthCheck(ctx))
}

func TestRedis_Close(t *testing.T) {
	ctx := context.Background()
	r, _ := newTestRedis(t)
	require.NoError(t, r.HealthCheck(ctx))

	require.NoError(t, r.Close())

	assert.Error(t, r.HealthCheck(ctx))
	assert.False(t, r.Put(ctx, "a", article("a", "a")))
}
