package cache_test

import (
	"context"
	"testing"
	"time"

	"hotel/infras/otel/mocks"
	"hotel/shared/cache"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type roomSummary struct {
	ID     string `json:"id"`
	Number string `json:"number"`
}

func newCache(t *testing.T) (*miniredis.Miniredis, cache.RedisCache) {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})

	t.Cleanup(func() { _ = client.Close() })

	return server, cache.NewRedisCache(client, mocks.NewOtel())
}

func TestRedisCache_SaveAndGet(t *testing.T) {
	server, redisCache := newCache(t)
	ctx := context.Background()

	require.NoError(t, redisCache.Save(ctx, "room:get:1", roomSummary{ID: "1", Number: "101"}, 60))

	var got roomSummary
	require.NoError(t, redisCache.Get(ctx, "room:get:1", &got))
	assert.Equal(t, roomSummary{ID: "1", Number: "101"}, got)

	server.FastForward(61 * time.Second)

	assert.Error(t, redisCache.Get(ctx, "room:get:1", &got))
}

func TestRedisCache_GetString(t *testing.T) {
	_, redisCache := newCache(t)
	ctx := context.Background()

	require.NoError(t, redisCache.Save(ctx, "plain", "value", 60))

	var got string
	require.NoError(t, redisCache.Get(ctx, "plain", &got))
	assert.Equal(t, "value", got)
}

func TestRedisCache_GetMissing(t *testing.T) {
	_, redisCache := newCache(t)

	var got roomSummary
	err := redisCache.Get(context.Background(), "missing", &got)

	assert.ErrorIs(t, err, cache.Nil)
}

func TestRedisCache_Clear(t *testing.T) {
	server, redisCache := newCache(t)
	ctx := context.Background()

	require.NoError(t, redisCache.Save(ctx, "room:gets:a", 1, 60))
	require.NoError(t, redisCache.Save(ctx, "room:gets:b", 2, 60))
	require.NoError(t, redisCache.Save(ctx, "gallery:gets:a", 3, 60))

	require.NoError(t, redisCache.Clear(ctx, "room:gets*"))

	assert.False(t, server.Exists("room:gets:a"))
	assert.False(t, server.Exists("room:gets:b"))
	assert.True(t, server.Exists("gallery:gets:a"))
}

func TestRedisCache_Delete(t *testing.T) {
	server, redisCache := newCache(t)
	ctx := context.Background()

	require.NoError(t, redisCache.Save(ctx, "room:get:1", 1, 60))
	require.NoError(t, redisCache.Delete(ctx, "room:get:1"))

	assert.False(t, server.Exists("room:get:1"))
}

func TestRedisCache_Incr(t *testing.T) {
	server, redisCache := newCache(t)
	ctx := context.Background()

	count, ttl, err := redisCache.Incr(ctx, "limiter:10.0.0.1", 60)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.Equal(t, 60*time.Second, ttl)

	server.FastForward(20 * time.Second)

	count, ttl, err = redisCache.Incr(ctx, "limiter:10.0.0.1", 60)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.Equal(t, 40*time.Second, ttl)

	server.FastForward(41 * time.Second)

	count, _, err = redisCache.Incr(ctx, "limiter:10.0.0.1", 60)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
