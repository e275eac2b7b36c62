package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ghuser/wardrobe/pkg/app"
	"github.com/ghuser/wardrobe/pkg/config"
	"github.com/ghuser/wardrobe/pkg/logger"
	appsvcs "github.com/ghuser/wardrobe/services/wardrobe/application/services"
)

// session is an opened catalog plus the cleanup that goes with it.
type session struct {
	catalog *appsvcs.CatalogService
	close   func()
}

// opener opens the catalog the configuration points at.
type opener func(ctx context.Context) (*session, error)

// rootOptions holds global flags for all commands.
type rootOptions struct {
	format string // "json" | "text"
	open   opener
}

var validFormats = []string{"text", "json"}

func newRootCommand(open opener) *cobra.Command {
	opts := &rootOptions{open: open}

	cmd := &cobra.Command{
		Use:   "wardrobe",
		Short: "Manage the wardrobe catalog from the command line",
		Long: `Operates on the same catalog store as the API server, selected by
STORAGE_DRIVER and the related environment variables (.env is read too).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			for _, f := range validFormats {
				if f == opts.format {
					return nil
				}
			}
			return fmt.Errorf("invalid format %q: must be one of %v", opts.format, validFormats)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.format, "format", "text", "output format (json|text)")

	cmd.AddCommand(newExportCommand(opts))
	cmd.AddCommand(newImportCommand(opts))
	cmd.AddCommand(newStatsCommand(opts))
	cmd.AddCommand(newSuggestCommand(opts))
	cmd.AddCommand(newResetCommand(opts))
	cmd.AddCommand(newVocabCommand(opts))

	return cmd
}

// withCatalog opens the catalog for the duration of fn.
func (o *rootOptions) withCatalog(ctx context.Context, fn func(*appsvcs.CatalogService) error) error {
	s, err := o.open(ctx)
	if err != nil {
		return err
	}
	defer s.close()
	return fn(s.catalog)
}

// openConfigured builds the catalog from environment configuration. Logs go
// to stderr so stdout stays clean for command output.
func openConfigured(ctx context.Context) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	log := logger.NewTo(os.Stderr, cfg.LogLevel)

	a, err := app.New(ctx, cfg, log, app.Options{})
	if err != nil {
		return nil, err
	}
	svcs, err := appsvcs.New(ctx, a)
	if err != nil {
		a.Close()
		return nil, err
	}
	return &session{
		catalog: svcs.Catalog,
		close: func() {
			svcs.Close()
			a.Close()
		},
	}, nil
}
