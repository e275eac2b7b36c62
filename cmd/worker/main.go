package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ghuser/wardrobe/pkg/app"
	"github.com/ghuser/wardrobe/pkg/config"
	"github.com/ghuser/wardrobe/pkg/logger"
	"github.com/ghuser/wardrobe/pkg/telemetry"
	appsvcs "github.com/ghuser/wardrobe/services/wardrobe/application/services"
	"github.com/ghuser/wardrobe/services/wardrobe/application/subscribers"
)

// sweepInterval paces the periodic orphaned-image sweep.
const sweepInterval = time.Hour

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := config.ValidateForProduction(cfg); err != nil {
		slog.Error("production config validation failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg)

	if cfg.EventsDriver != config.EventsSQL {
		log.Warn("worker only receives events from the sql bus; with the memory bus subscribers run inside cmd/api",
			"events_driver", cfg.EventsDriver)
	}

	ctx := context.Background()

	otelShutdown, _, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(ctx) //nolint:errcheck

	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	a, err := app.New(ctx, cfg, log, app.Options{})
	if err != nil {
		log.Error("failed to initialize dependencies", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	// EventBus.Close() waits up to 30s for in-flight handlers.
	defer a.Close()

	svcs, err := appsvcs.New(ctx, a)
	if err != nil {
		log.Error("failed to open catalog", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer svcs.Close()

	var sweeper *subscribers.MediaSweeper
	if a.Blobs != nil {
		sweeper = subscribers.NewMediaSweeper(svcs.Gateway, a.Blobs, log, 0)
	}

	if err := registerSubscribers(ctx, a, sweeper); err != nil {
		log.Error("failed to register subscribers", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	sweepCtx, cancelSweep := context.WithCancel(ctx)
	if sweeper != nil {
		go runPeriodicSweep(sweepCtx, log, sweeper)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down worker...")
	cancelSweep()
	log.Info("worker stopped")
}

// registerSubscribers wires all catalog event handlers.
// Add new handlers here as more consumers of catalog.changed appear.
func registerSubscribers(ctx context.Context, a *app.Application, sweeper *subscribers.MediaSweeper) error {
	handlers := []subscribers.Handler{subscribers.AuditLog(a.Logger)}
	if sweeper != nil {
		handlers = append(handlers, sweeper.Handler())
	}
	return subscribers.Register(ctx, a.EventBus, a.Logger, handlers...)
}

// runPeriodicSweep removes orphaned images left behind by failed releases or
// crashes between upload and commit. Runs until ctx is cancelled.
func runPeriodicSweep(ctx context.Context, log logger.Logger, sweeper *subscribers.MediaSweeper) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("media sweep shutting down")
			return
		case <-ticker.C:
			if _, err := sweeper.Sweep(ctx); err != nil {
				log.WarnContext(ctx, "periodic media sweep failed", "error", err)
			}
		}
	}
}
