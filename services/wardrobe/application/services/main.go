package services

import (
	"context"
	"fmt"
	"io"

	"golang.org/x/text/language"

	"github.com/ghuser/wardrobe/pkg/app"
	"github.com/ghuser/wardrobe/pkg/cache"
	"github.com/ghuser/wardrobe/pkg/config"
	"github.com/ghuser/wardrobe/services/wardrobe/domain/repositories"
	domainsvcs "github.com/ghuser/wardrobe/services/wardrobe/domain/services"
	"github.com/ghuser/wardrobe/services/wardrobe/infrastructure/classifier"
	"github.com/ghuser/wardrobe/services/wardrobe/infrastructure/media"
	"github.com/ghuser/wardrobe/services/wardrobe/infrastructure/notifier"
	"github.com/ghuser/wardrobe/services/wardrobe/infrastructure/persistence/file"
	"github.com/ghuser/wardrobe/services/wardrobe/infrastructure/persistence/memory"
	"github.com/ghuser/wardrobe/services/wardrobe/infrastructure/persistence/postgres"
	"github.com/ghuser/wardrobe/services/wardrobe/infrastructure/persistence/redis"
	"github.com/ghuser/wardrobe/services/wardrobe/infrastructure/persistence/sqlite"
	"github.com/ghuser/wardrobe/services/wardrobe/infrastructure/vocabfile"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Catalog *CatalogService
	Gateway repositories.CatalogGateway
	// Media is nil when images stay inline.
	Media *media.Blob

	closers []io.Closer
}

// New wires the catalog service with infrastructure from the Application
// container and loads the persisted catalog.
func New(ctx context.Context, a *app.Application) (*Services, error) {
	cfg := a.Config
	s := &Services{}

	gw, err := s.gateway(ctx, a)
	if err != nil {
		return nil, err
	}
	s.Gateway = gw

	defaults, err := vocabfile.Load(cfg.VocabFile)
	if err != nil {
		s.Close()
		return nil, err
	}

	locale, err := language.Parse(cfg.CollationLocale)
	if err != nil {
		a.Logger.Warn("unknown collation locale, using en", "locale", cfg.CollationLocale, "error", err)
		locale = language.English
	}

	opts := []Option{
		WithLogger(a.Logger),
		WithMetrics(a.Metrics),
		WithLocale(locale),
		WithDefaultVocabulary(defaults),
	}
	if a.EventBus != nil {
		opts = append(opts, WithNotifier(notifier.NewBus(a.EventBus)))
	}
	if a.Redis != nil {
		opts = append(opts, WithStatsCache(cache.NewJSONCache[domainsvcs.Stats](a.Redis, "wardrobe:stats", cfg.StatsCacheTTL)))
	}
	if a.Blobs != nil {
		s.Media = media.NewBlob(a.Blobs)
		opts = append(opts, WithImageStore(s.Media))
	} else {
		opts = append(opts, WithImageStore(media.Inline{}))
	}

	clf, err := newClassifier(ctx, cfg)
	if err != nil {
		s.Close()
		return nil, err
	}
	if clf != nil {
		opts = append(opts, WithClassifier(clf))
		a.Logger.Info("image classifier enabled", "provider", clf.Name())
	}

	s.Catalog = NewCatalogService(gw, opts...)
	if err := s.Catalog.Load(ctx); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func (s *Services) gateway(ctx context.Context, a *app.Application) (repositories.CatalogGateway, error) {
	cfg := a.Config
	switch cfg.StorageDriver {
	case config.StorageFile, "":
		return file.New(cfg.DataFile), nil
	case config.StorageMemory:
		return memory.New(), nil
	case config.StorageSQLite:
		gw, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, gw)
		return gw, nil
	case config.StoragePostgres:
		if a.Db == nil {
			return nil, fmt.Errorf("storage driver %q needs DATABASE_URL", cfg.StorageDriver)
		}
		return postgres.NewGateway(a.Db, postgres.DefaultName), nil
	case config.StorageRedis:
		if a.Redis == nil {
			return nil, fmt.Errorf("storage driver %q needs REDIS_URL", cfg.StorageDriver)
		}
		return redis.NewGateway(a.Redis, cfg.RedisKey), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

// newClassifier returns nil when classification is switched off.
func newClassifier(ctx context.Context, cfg *config.Config) (Classifier, error) {
	switch cfg.AIProvider {
	case config.AIPalette:
		return classifier.NewPalette(), nil
	case config.AIGemini:
		g, err := classifier.NewGemini(ctx, classifier.GeminiConfig{
			APIKey: cfg.GeminiAPIKey,
			Model:  cfg.GeminiModel,
		})
		if err != nil {
			return nil, fmt.Errorf("gemini classifier: %w", err)
		}
		return g, nil
	case config.AINone, "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown ai provider %q", cfg.AIProvider)
	}
}

// Ping reports whether the catalog store is reachable, for gateways that can tell.
func (s *Services) Ping(ctx context.Context) error {
	if p, ok := s.Gateway.(interface{ Ping(context.Context) error }); ok {
		return p.Ping(ctx)
	}
	return nil
}

// Close releases gateway resources such as the SQLite handle.
func (s *Services) Close() {
	for _, c := range s.closers {
		_ = c.Close()
	}
	s.closers = nil
}
