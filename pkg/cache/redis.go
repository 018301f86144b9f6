package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisOption configures the Redis cache.
type RedisOption func(*redisConfig)

type redisConfig struct {
	prefix     string
	defaultTTL time.Duration
}

// WithRedisDefaultTTL sets the expiration used when Set is called with a zero TTL.
// Default: 1 hour.
func WithRedisDefaultTTL(d time.Duration) RedisOption {
	return func(c *redisConfig) {
		c.defaultTTL = d
	}
}

// WithPrefix namespaces keys as "{prefix}:{key}".
func WithPrefix(prefix string) RedisOption {
	return func(c *redisConfig) {
		c.prefix = prefix
	}
}

// Redis is a cache backed by Redis.
type Redis[V any] struct {
	client    redis.UniversalClient
	marshaler Marshaler[V]
	cfg       redisConfig
}

// NewRedis creates a Redis-backed cache. A nil Marshaler selects JSON.
// The client lifecycle belongs to the caller (see pkg/redis.Shutdown).
//
// Example:
//
//	c := cache.NewRedis[sage.Summary](client, nil, cache.WithPrefix("summary"))
func NewRedis[V any](client redis.UniversalClient, m Marshaler[V], opts ...RedisOption) *Redis[V] {
	cfg := redisConfig{defaultTTL: time.Hour}
	for _, opt := range opts {
		opt(&cfg)
	}
	if m == nil {
		m = jsonMarshaler[V]{}
	}

	return &Redis[V]{client: client, marshaler: m, cfg: cfg}
}

// Get retrieves a value by key.
func (r *Redis[V]) Get(ctx context.Context, key string) (V, error) {
	var zero V

	data, err := r.client.Get(ctx, r.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return zero, ErrNotFound
		}
		return zero, err
	}

	return r.marshaler.Unmarshal(data)
}

// Set stores a value. A negative TTL stores the key without expiry.
func (r *Redis[V]) Set(ctx context.Context, key string, value V, ttl time.Duration) error {
	data, err := r.marshaler.Marshal(value)
	if err != nil {
		return err
	}

	if ttl == 0 {
		ttl = r.cfg.defaultTTL
	}

	// Redis reads 0 as "no expiration".
	return r.client.Set(ctx, r.key(key), data, max(ttl, 0)).Err()
}

// Delete removes a key.
func (r *Redis[V]) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.key(key)).Err()
}

// Close is a no-op; the client is closed by its owner.
func (r *Redis[V]) Close() error {
	return nil
}

func (r *Redis[V]) key(key string) string {
	if r.cfg.prefix == "" {
		return key
	}
	return r.cfg.prefix + ":" + key
}

var _ Cache[any] = (*Redis[any])(nil)
