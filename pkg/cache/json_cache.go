package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrMiss is returned by JSONCache.Get when the key is absent or expired.
var ErrMiss = errors.New("cache: miss")

// JSONCache stores JSON-encoded values under a key prefix with a fixed TTL.
// Key format: "{prefix}:{key}"
type JSONCache[T any] struct {
	client *RedisClient
	prefix string
	ttl    time.Duration
}

// NewJSONCache creates a JSONCache backed by the given RedisClient.
func NewJSONCache[T any](r *RedisClient, prefix string, ttl time.Duration) *JSONCache[T] {
	return &JSONCache[T]{client: r, prefix: prefix, ttl: ttl}
}

// Get decodes the value stored under key. Returns ErrMiss when nothing is cached.
func (c *JSONCache[T]) Get(ctx context.Context, key string) (T, error) {
	var v T
	raw, err := c.client.Client().Get(ctx, c.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return v, ErrMiss
	}
	if err != nil {
		return v, fmt.Errorf("cache get: %w", err)
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, fmt.Errorf("cache decode %s: %w", key, err)
	}
	return v, nil
}

// Set encodes v and stores it under key with the cache TTL.
func (c *JSONCache[T]) Set(ctx context.Context, key string, v T) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", key, err)
	}
	if err := c.client.Client().Set(ctx, c.key(key), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Delete removes a cached value.
func (c *JSONCache[T]) Delete(ctx context.Context, key string) error {
	if err := c.client.Client().Del(ctx, c.key(key)).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

func (c *JSONCache[T]) key(key string) string {
	return c.prefix + ":" + key
}
