// Package postgres stores the catalog blob as a JSONB row in catalog_blobs.
// The table is created by migrations/catalog.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ghuser/wardrobe/pkg/database"
	"github.com/ghuser/wardrobe/services/wardrobe/domain/repositories"
)

// DefaultName is the catalog_blobs row used by the service.
const DefaultName = "catalog"

// Gateway implements repositories.CatalogGateway against PostgreSQL.
type Gateway struct {
	db   *database.Database
	name string
}

// NewGateway returns a Gateway for the row called name.
func NewGateway(db *database.Database, name string) *Gateway {
	if name == "" {
		name = DefaultName
	}
	return &Gateway{db: db, name: name}
}

func (g *Gateway) Load(ctx context.Context) ([]byte, error) {
	var payload []byte
	err := g.db.DB().QueryRowContext(ctx,
		`SELECT payload::text FROM catalog_blobs WHERE name = $1`, g.name).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repositories.ErrEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("query catalog blob: %w", err)
	}
	return payload, nil
}

func (g *Gateway) Save(ctx context.Context, blob []byte) error {
	return g.db.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO catalog_blobs (name, payload, updated_at) VALUES ($1, $2::jsonb, now())
			 ON CONFLICT (name) DO UPDATE SET payload = EXCLUDED.payload, updated_at = now()`,
			g.name, string(blob)); err != nil {
			return fmt.Errorf("upsert catalog blob: %w", err)
		}
		return nil
	})
}

func (g *Gateway) Clear(ctx context.Context) error {
	if _, err := g.db.DB().ExecContext(ctx, `DELETE FROM catalog_blobs WHERE name = $1`, g.name); err != nil {
		return fmt.Errorf("delete catalog blob: %w", err)
	}
	return nil
}
