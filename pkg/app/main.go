package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/ghuser/wardrobe/pkg/blob"
	"github.com/ghuser/wardrobe/pkg/cache"
	"github.com/ghuser/wardrobe/pkg/config"
	"github.com/ghuser/wardrobe/pkg/database"
	"github.com/ghuser/wardrobe/pkg/events"
	"github.com/ghuser/wardrobe/pkg/httpx"
	"github.com/ghuser/wardrobe/pkg/logger"
	"github.com/ghuser/wardrobe/pkg/telemetry"
)

// Application holds shared infrastructure dependencies for all services.
// Pass it to the service route and subscriber functions during startup.
//
// Only the dependencies the configuration selects are opened; the rest stay
// nil. Db is set for STORAGE_DRIVER=postgres, Redis when REDIS_URL is set and
// Blobs for MEDIA_DRIVER=fs|s3.
//
// Logging: app.Logger is backed by a trace-aware handler. Use slog's context
// methods and trace_id, span_id, and request_id are injected automatically:
//
//	app.Logger.InfoContext(ctx, "item added", "item_id", id)
//	app.Logger.ErrorContext(ctx, "failed to save", "error", err)
//
// Use app.Logger.Info/Error (no context) only for startup and shutdown messages.
type Application struct {
	Config   *config.Config
	Db       *database.Database
	Logger   logger.Logger
	EventBus *events.EventBus
	Redis    *cache.RedisClient
	Blobs    blob.Store
	Metrics  *telemetry.CatalogMetrics
}

// Options controls which process-specific pieces New starts.
type Options struct {
	// UseForwarder routes SQL bus publishes through the Watermill forwarder.
	// Only the API process publishes, so only it needs one.
	UseForwarder bool
}

// New opens the dependencies cfg selects. On error everything already opened
// is closed again.
func New(ctx context.Context, cfg *config.Config, log logger.Logger, opts Options) (_ *Application, err error) {
	a := &Application{Config: cfg, Logger: log}
	defer func() {
		if err != nil {
			a.Close()
		}
	}()

	if cfg.StorageDriver == config.StoragePostgres {
		if a.Db, err = database.NewPool(ctx, cfg.DatabaseURL, log); err != nil {
			return nil, err
		}
		log.Info("database pool connected")
	}

	if cfg.RedisURL != "" {
		if a.Redis, err = cache.NewRedisClient(ctx, cfg); err != nil {
			return nil, err
		}
		log.Info("redis connected")
	}

	if a.EventBus, err = events.New(cfg, log, opts.UseForwarder); err != nil {
		return nil, fmt.Errorf("event bus: %w", err)
	}
	if opts.UseForwarder && cfg.EventsDriver == config.EventsSQL {
		if err = a.EventBus.StartForwarder(ctx); err != nil {
			return nil, fmt.Errorf("event forwarder: %w", err)
		}
	}

	if a.Blobs, err = blob.New(ctx, cfg); err != nil {
		return nil, fmt.Errorf("media store: %w", err)
	}

	if a.Metrics, err = telemetry.NewCatalogMetrics(); err != nil {
		return nil, fmt.Errorf("catalog metrics: %w", err)
	}
	return a, nil
}

// HealthChecks lists the opened dependencies for httpx.HealthHandler.
func (a *Application) HealthChecks() httpx.HealthChecks {
	checks := httpx.HealthChecks{}
	if a.Db != nil {
		checks["database"] = a.Db
	}
	if a.Redis != nil {
		checks["redis"] = a.Redis
	}
	if a.EventBus != nil {
		checks["event_bus"] = a.EventBus
	}
	return checks
}

// Close releases every opened dependency in reverse order of opening.
func (a *Application) Close() {
	var errs []error
	if a.EventBus != nil {
		errs = append(errs, a.EventBus.Close())
	}
	if a.Redis != nil {
		errs = append(errs, a.Redis.Close())
	}
	a.Db.Close()
	if err := errors.Join(errs...); err != nil {
		a.Logger.Warn("shutdown: closing dependencies", "error", err)
	}
}
