// Command migrate applies the postgres catalog schema.
//
//	migrate [up|down|redo|status|version]
//
// The command defaults to up.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/ghuser/wardrobe/migrations/catalog"
	"github.com/ghuser/wardrobe/pkg/config"
	"github.com/ghuser/wardrobe/pkg/migrator"
)

func main() {
	command := "up"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if cfg.DatabaseURL == "" {
		slog.Error("DATABASE_URL is required to run migrations")
		os.Exit(1)
	}
	if err := migrator.RunMigrations(context.Background(), cfg.DatabaseURL, catalog.FS, command); err != nil {
		slog.Error("migration failed", "command", command, "error", err)
		os.Exit(1)
	}
	slog.Info("migration finished", "command", command)
}
