package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ghuser/wardrobe/pkg/config"
)

const (
	defaultPoolSize = 10
	defaultTimeout  = 3 * time.Second
	pingTimeout     = 2 * time.Second
)

// RedisClient is the shared Redis connection used by the catalog gateway and
// the statistics cache.
type RedisClient struct {
	client *redis.Client
}

// redisOptions parses cfg.RedisURL and applies the pool settings. Zero pool
// size or timeout fall back to the defaults; the URL may still override the
// database number and credentials.
func redisOptions(cfg *config.Config) (*redis.Options, error) {
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	pool := cfg.RedisPoolSize
	if pool <= 0 {
		pool = defaultPoolSize
	}
	timeout := cfg.RedisTimeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	opts.PoolSize = pool
	opts.MinIdleConns = max(1, pool/5)
	opts.MaxRetries = 3
	opts.DialTimeout = timeout + timeout/2
	opts.ReadTimeout = timeout
	opts.WriteTimeout = timeout
	opts.PoolTimeout = timeout + time.Second
	return opts, nil
}

// NewRedisClient connects to cfg.RedisURL and verifies the server answers
// within ctx and a 2s deadline.
func NewRedisClient(ctx context.Context, cfg *config.Config) (*RedisClient, error) {
	opts, err := redisOptions(cfg)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", opts.Addr, err)
	}

	return &RedisClient{client: rdb}, nil
}

// Ping reports whether Redis answers. It backs the /health "redis" check.
func (r *RedisClient) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

// Close releases the pool. Safe on a nil client.
func (r *RedisClient) Close() error {
	if r == nil || r.client == nil {
		return nil
	}
	if err := r.client.Close(); err != nil {
		return fmt.Errorf("redis close: %w", err)
	}
	return nil
}

// Client exposes the underlying client to the gateway and cache.
func (r *RedisClient) Client() *redis.Client {
	return r.client
}
