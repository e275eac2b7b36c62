package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghuser/wardrobe/pkg/config"
)

func newTestConfig(url string) *config.Config {
	return &config.Config{
		RedisURL: url,
	}
}

func TestNewRedisClient_InvalidURL(t *testing.T) {
	_, err := NewRedisClient(context.Background(), newTestConfig("not-a-valid-url"))
	assert.Error(t, err)
}

func TestNewRedisClient_UnreachableHost(t *testing.T) {
	_, err := NewRedisClient(context.Background(), newTestConfig("redis://localhost:19999"))
	assert.Error(t, err)
}

func TestRedisOptions(t *testing.T) {
	opts, err := redisOptions(newTestConfig("redis://localhost:6379/2"))
	require.NoError(t, err)
	assert.Equal(t, 2, opts.DB)
	assert.Equal(t, defaultPoolSize, opts.PoolSize)
	assert.Equal(t, defaultTimeout, opts.ReadTimeout)

	cfg := newTestConfig("redis://localhost:6379")
	cfg.RedisPoolSize = 25
	cfg.RedisTimeout = time.Second
	opts, err = redisOptions(cfg)
	require.NoError(t, err)
	assert.Equal(t, 25, opts.PoolSize)
	assert.Equal(t, 5, opts.MinIdleConns)
	assert.Equal(t, time.Second, opts.WriteTimeout)
}

func TestRedisClient_CloseNil(t *testing.T) {
	var rc *RedisClient
	assert.NoError(t, rc.Close())
}

func TestJSONCache_Key(t *testing.T) {
	c := NewJSONCache[int](nil, "wardrobe:stats", time.Minute)
	assert.Equal(t, "wardrobe:stats:boot:7", c.key("boot:7"))
}

// Integration tests, skipped unless REDIS_URL is set.
func TestRedisIntegration(t *testing.T) {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		t.Skip("REDIS_URL not set; skipping integration tests")
	}
	ctx := context.Background()

	t.Run("Ping_Success", func(t *testing.T) {
		rc, err := NewRedisClient(ctx, newTestConfig(redisURL))
		require.NoError(t, err)
		defer rc.Close() //nolint:errcheck

		assert.NoError(t, rc.Ping(ctx))
	})

	t.Run("JSONCache_RoundTrip", func(t *testing.T) {
		rc, err := NewRedisClient(ctx, newTestConfig(redisURL))
		require.NoError(t, err)
		defer rc.Close() //nolint:errcheck

		type entry struct {
			Total int `json:"total"`
		}
		c := NewJSONCache[entry](rc, "wardrobe-test", time.Minute)
		key := "k-" + time.Now().Format("150405.000000")

		_, err = c.Get(ctx, key)
		require.ErrorIs(t, err, ErrMiss)
		require.NoError(t, c.Set(ctx, key, entry{Total: 4}))
		got, err := c.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, 4, got.Total)
		assert.NoError(t, c.Delete(ctx, key))
	})
}
