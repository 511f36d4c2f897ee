package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// scanCount is the COUNT hint passed to redis SCAN.
const scanCount = 256

// DefaultOpTimeout bounds every cache round-trip. It is deliberately much
// shorter than the database timeout: a slow cache must never make a request
// slower than the no-cache path.
const DefaultOpTimeout = 250 * time.Millisecond

// RedisStore implements Store over a shared Redis instance, which makes
// cache entries and invalidations visible to every server process.
type RedisStore struct {
	client    *redis.Client
	opTimeout time.Duration
}

// NewRedisStore wraps client. opTimeout <= 0 selects DefaultOpTimeout.
func NewRedisStore(client *redis.Client, opTimeout time.Duration) *RedisStore {
	if client == nil {
		panic("cache: redis client cannot be nil")
	}
	if opTimeout <= 0 {
		opTimeout = DefaultOpTimeout
	}
	return &RedisStore{client: client, opTimeout: opTimeout}
}

func (s *RedisStore) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.opTimeout)
}

// Get retrieves a raw value. Returns ErrNotFound when Redis has no entry;
// Redis itself expires entries, so an expired key is simply absent.
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	data, err := s.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}
	return data, nil
}

// Set stores value with a server-side TTL (SET key value EX ttl).
func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := s.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Delete removes keys with a single DEL. Absent keys are not an error.
func (s *RedisStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// Scan enumerates keys matching prefix* with cursor-based SCAN, never KEYS,
// so it stays safe on a shared production instance.
func (s *RedisStore) Scan(ctx context.Context, prefix string) ([]string, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var keys []string
	iter := s.client.Scan(ctx, 0, prefix+"*", scanCount).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("redis scan: %w", err)
	}
	return keys, nil
}
