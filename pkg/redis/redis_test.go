package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/weathersage/sage/pkg/redis"
)

func TestParseURL(t *testing.T) {
	t.Parallel()

	t.Run("empty url", func(t *testing.T) {
		t.Parallel()
		_, err := redis.ParseURL("")
		require.ErrorIs(t, err, redis.ErrEmptyConnectionURL)
	})

	t.Run("wrong scheme", func(t *testing.T) {
		t.Parallel()
		_, err := redis.ParseURL("http://localhost:6379")
		require.ErrorIs(t, err, redis.ErrFailedToParseURL)
	})

	t.Run("applies options", func(t *testing.T) {
		t.Parallel()
		opts, err := redis.ParseURL("redis://localhost:6379/2",
			redis.WithPoolSize(20),
			redis.WithTimeout(time.Second),
		)
		require.NoError(t, err)
		require.Equal(t, "localhost:6379", opts.Addr)
		require.Equal(t, 2, opts.DB)
		require.Equal(t, 20, opts.PoolSize)
		require.Equal(t, time.Second, opts.ReadTimeout)
	})
}

func TestOpen_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := redis.Open(ctx, "redis://127.0.0.1:1/0", redis.WithRetry(2, time.Millisecond))
	require.ErrorIs(t, err, redis.ErrConnectionFailed)
}

func TestHealthcheck_NilClient(t *testing.T) {
	t.Parallel()

	err := redis.Healthcheck(nil)(context.Background())
	require.ErrorIs(t, err, redis.ErrHealthcheckFailed)
}
