// Package database opens the shared PostgreSQL pool used by the postgres
// catalog gateway and the SQL event bus.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver

	"github.com/ghuser/wardrobe/pkg/logger"
)

// Database wraps a database/sql pool opened through the pgx driver.
type Database struct {
	db  *sql.DB
	log logger.Logger
}

// NewPool opens a pool against url and verifies it with a 5s ping.
func NewPool(ctx context.Context, url string, log logger.Logger) (*Database, error) {
	db, err := sql.Open("pgx", url)
	if err != nil {
		return nil, fmt.Errorf("database: open: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("database: ping: %w", err)
	}
	return &Database{db: db, log: log}, nil
}

// DB returns the underlying pool.
func (d *Database) DB() *sql.DB {
	return d.db
}

// Ping checks the connection health.
func (d *Database) Ping(ctx context.Context) error {
	if err := d.db.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping: %w", err)
	}
	return nil
}

// WithTx runs fn inside a transaction. The transaction commits when fn
// returns nil and rolls back otherwise.
func (d *Database) WithTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("database: begin: %w", err)
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			d.log.WarnContext(ctx, "database: rollback failed", "error", rbErr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("database: commit: %w", err)
	}
	return nil
}

// Close releases the pool.
func (d *Database) Close() {
	if d == nil || d.db == nil {
		return
	}
	if err := d.db.Close(); err != nil {
		d.log.Warn("database: close failed", "error", err)
	}
}
