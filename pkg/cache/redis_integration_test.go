//go:build integration

package cache_test

import (
	"context"
	"os"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/weathersage/sage/pkg/cache"
	"github.com/weathersage/sage/pkg/redis"
)

func newTestRedisClient(t *testing.T) goredis.UniversalClient {
	t.Helper()

	url := os.Getenv("REDIS_URL")
	if url == "" {
		url = "redis://localhost:6379/0"
	}

	ctx := context.Background()
	client, err := redis.Open(ctx, url)
	require.NoError(t, err, "failed to connect to Redis")

	t.Cleanup(func() {
		_ = client.FlushDB(ctx).Err()
		_ = client.Close()
	})

	return client
}

type summary struct {
	Text string `json:"text"`
}

func TestRedis_RoundTrip(t *testing.T) {
	client := newTestRedisClient(t)
	c := cache.NewRedis[summary](client, nil, cache.WithPrefix("test"))
	ctx := context.Background()

	_, err := c.Get(ctx, "missing")
	require.ErrorIs(t, err, cache.ErrNotFound)

	require.NoError(t, c.Set(ctx, "2026-10-16T09", summary{Text: "sunny"}, time.Minute))

	got, err := c.Get(ctx, "2026-10-16T09")
	require.NoError(t, err)
	require.Equal(t, "sunny", got.Text)

	n, err := client.Exists(ctx, "test:2026-10-16T09").Result()
	require.NoError(t, err)
	require.Equal(t, int64(1), n)

	require.NoError(t, c.Delete(ctx, "2026-10-16T09"))
	_, err = c.Get(ctx, "2026-10-16T09")
	require.ErrorIs(t, err, cache.ErrNotFound)
}

func TestRedis_GetOrSet(t *testing.T) {
	client := newTestRedisClient(t)
	c := cache.NewRedis[summary](client, nil, cache.WithPrefix("test"))

	calls := 0
	fn := func(context.Context) (summary, time.Duration, error) {
		calls++
		return summary{Text: "cloudy"}, time.Minute, nil
	}

	for range 2 {
		got, err := cache.GetOrSet(context.Background(), c, "hour", fn)
		require.NoError(t, err)
		require.Equal(t, "cloudy", got.Text)
	}
	require.Equal(t, 1, calls)
}
