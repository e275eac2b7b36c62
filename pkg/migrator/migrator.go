package migrator

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// Commands lists the goose operations Run accepts.
var Commands = []string{"up", "down", "redo", "status", "version"}

// RunMigrations opens dbURL and runs command against the migrations in files.
func RunMigrations(ctx context.Context, dbURL string, files fs.FS, command string) error {
	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close() //nolint:errcheck

	return Run(ctx, db, files, command)
}

// Up applies every pending migration to an already open PostgreSQL handle.
func Up(db *sql.DB, files fs.FS) error {
	return Run(context.Background(), db, files, "up")
}

// Run executes one goose command. The goose base FS is process-global, so
// concurrent Runs must not share a process.
func Run(ctx context.Context, db *sql.DB, files fs.FS, command string) error {
	goose.SetBaseFS(files)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	var err error
	switch command {
	case "up":
		err = goose.UpContext(ctx, db, ".")
	case "down":
		err = goose.DownContext(ctx, db, ".")
	case "redo":
		err = goose.RedoContext(ctx, db, ".")
	case "status":
		err = goose.StatusContext(ctx, db, ".")
	case "version":
		err = goose.VersionContext(ctx, db, ".")
	default:
		return fmt.Errorf("unknown migration command %q: must be one of %v", command, Commands)
	}
	if err != nil {
		return fmt.Errorf("migrate %s: %w", command, err)
	}
	return nil
}
