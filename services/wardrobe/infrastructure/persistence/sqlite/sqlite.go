// Package sqlite stores the catalog blob in a key/value table of an embedded
// SQLite database, the way the desktop app kept its localStorage.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // registers the "sqlite" database/sql driver

	"github.com/ghuser/wardrobe/services/wardrobe/domain/repositories"
)

const catalogKey = "catalog"

const schema = `CREATE TABLE IF NOT EXISTS state (
	key        TEXT PRIMARY KEY,
	value      BLOB NOT NULL,
	updated_at TEXT NOT NULL
)`

// Gateway implements repositories.CatalogGateway on SQLite.
type Gateway struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and ensures the schema.
func Open(ctx context.Context, path string) (*Gateway, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("sqlite: create dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %s: %w", path, err)
	}
	// One writer; also keeps ":memory:" on a single connection.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: create schema: %w", err)
	}
	return &Gateway{db: db}, nil
}

func (g *Gateway) Load(ctx context.Context) ([]byte, error) {
	var blob []byte
	err := g.db.QueryRowContext(ctx, `SELECT value FROM state WHERE key = ?`, catalogKey).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repositories.ErrEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: load: %w", err)
	}
	return blob, nil
}

func (g *Gateway) Save(ctx context.Context, blob []byte) error {
	_, err := g.db.ExecContext(ctx,
		`INSERT INTO state (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		catalogKey, blob, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("sqlite: save: %w", err)
	}
	return nil
}

func (g *Gateway) Clear(ctx context.Context) error {
	if _, err := g.db.ExecContext(ctx, `DELETE FROM state WHERE key = ?`, catalogKey); err != nil {
		return fmt.Errorf("sqlite: clear: %w", err)
	}
	return nil
}

// Ping checks the database handle.
func (g *Gateway) Ping(ctx context.Context) error {
	return g.db.PingContext(ctx)
}

// Close releases the database.
func (g *Gateway) Close() error {
	return g.db.Close()
}
