package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	_ "github.com/ghuser/wardrobe/docs/swagger"
	"github.com/ghuser/wardrobe/pkg/app"
	"github.com/ghuser/wardrobe/pkg/config"
	"github.com/ghuser/wardrobe/pkg/httpx"
	"github.com/ghuser/wardrobe/pkg/logger"
	"github.com/ghuser/wardrobe/pkg/telemetry"
	wardrobeApi "github.com/ghuser/wardrobe/services/wardrobe/application/api"
	appsvcs "github.com/ghuser/wardrobe/services/wardrobe/application/services"
	"github.com/ghuser/wardrobe/services/wardrobe/application/subscribers"
)

// @title			Wardrobe API
// @version		1.0
// @description	Personal wardrobe catalog: items, outfits, statistics and outfit suggestions.
// @license.name	MIT
// @license.url	https://opensource.org/licenses/MIT
// @host			localhost:8080
// @BasePath		/api
// @schemes		http https
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

	// Telemetry: OTel tracing + metrics
	ctx := context.Background()
	otelShutdown, metricsHandler, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(ctx) //nolint:errcheck

	// Crash reporting: Sentry (optional, log and continue on failure)
	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	a, err := app.New(ctx, cfg, log, app.Options{UseForwarder: true})
	if err != nil {
		log.Error("failed to initialize dependencies", "error", err)
		os.Exit(1) //nolint:gocritic // intentional: startup failure, deferred flushes are best-effort
	}
	defer a.Close()

	svcs, err := appsvcs.New(ctx, a)
	if err != nil {
		log.Error("failed to load catalog", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer svcs.Close()
	log.Info("catalog loaded",
		"storage", cfg.StorageDriver,
		"media", cfg.MediaDriver,
		"items", len(svcs.Catalog.Items(ctx)),
	)

	// The memory bus only reaches this process, so its subscribers run here.
	// With the SQL bus they run in cmd/worker.
	subCtx, cancelSubs := context.WithCancel(ctx)
	defer cancelSubs()
	if cfg.EventsDriver == config.EventsMemory {
		if err := registerSubscribers(subCtx, a, svcs); err != nil {
			log.Error("failed to register subscribers", "error", err)
			os.Exit(1) //nolint:gocritic
		}
	}

	isProd := cfg.Environment == config.EnvProduction
	r := httpx.NewRouter(
		httpx.ServerConfig{
			ServiceName:        cfg.ServiceName,
			IsDevelopment:      cfg.Environment == config.EnvDevelopment,
			CORSAllowedOrigins: cfg.CORSAllowedOrigins,
			MaxBodyBytes:       cfg.MaxBodyBytes,
			RateLimit:          cfg.RateLimitPerMinute,
			HandlerTimeout:     cfg.RequestTimeout,
		},
		logger.Middleware(log),
		logger.Recovery(log),
		telemetry.SentryMiddleware(),
		otelhttp.NewMiddleware(cfg.ServiceName),
	)

	checks := a.HealthChecks()
	checks["catalog"] = svcs
	r.Get("/health", httpx.HealthHandler(checks))
	r.Get("/metrics", metricsHandler.ServeHTTP)
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	wardrobeApi.MediaRoutes(r, svcs, isProd)
	r.Route("/api", func(r chi.Router) {
		registerRoutes(r, svcs, isProd)
	})

	srv := httpx.NewServer(cfg.HTTPAddr, r, cfg.RequestTimeout)

	go func() {
		log.Info("server listening", "addr", srv.Addr, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("forced shutdown", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

// registerRoutes mounts all service routes under /api.
// Add each new service's route function here.
func registerRoutes(r chi.Router, svcs *appsvcs.Services, isProduction bool) {
	wardrobeApi.WardrobeRoutes(r, svcs, isProduction)
}

func registerSubscribers(ctx context.Context, a *app.Application, svcs *appsvcs.Services) error {
	handlers := []subscribers.Handler{subscribers.AuditLog(a.Logger)}
	if a.Blobs != nil {
		handlers = append(handlers, subscribers.NewMediaSweeper(svcs.Gateway, a.Blobs, a.Logger, 0).Handler())
	}
	return subscribers.Register(ctx, a.EventBus, a.Logger, handlers...)
}
