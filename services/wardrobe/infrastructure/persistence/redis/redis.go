// Package redis stores the catalog blob under one Redis key.
package redis

import (
	"context"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/ghuser/wardrobe/pkg/cache"
	"github.com/ghuser/wardrobe/services/wardrobe/domain/repositories"
)

// Gateway implements repositories.CatalogGateway on a Redis string key.
type Gateway struct {
	client *cache.RedisClient
	key    string
}

// NewGateway returns a Gateway writing to key.
func NewGateway(client *cache.RedisClient, key string) *Gateway {
	return &Gateway{client: client, key: key}
}

func (g *Gateway) Load(ctx context.Context) ([]byte, error) {
	b, err := g.client.Client().Get(ctx, g.key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, repositories.ErrEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", g.key, err)
	}
	return b, nil
}

// Save writes the blob without expiry.
func (g *Gateway) Save(ctx context.Context, blob []byte) error {
	if err := g.client.Client().Set(ctx, g.key, blob, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", g.key, err)
	}
	return nil
}

func (g *Gateway) Clear(ctx context.Context) error {
	if err := g.client.Client().Del(ctx, g.key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", g.key, err)
	}
	return nil
}
