package services

import (
	"time"

	"golang.org/x/text/language"

	"github.com/ghuser/wardrobe/pkg/logger"
	"github.com/ghuser/wardrobe/pkg/telemetry"
	"github.com/ghuser/wardrobe/services/wardrobe/domain/models"
	domainsvcs "github.com/ghuser/wardrobe/services/wardrobe/domain/services"
)

// Option configures a CatalogService.
type Option func(*CatalogService)

// WithRand pins the random source used by SuggestOutfit.
func WithRand(r domainsvcs.Rand) Option {
	return func(s *CatalogService) { s.suggester = domainsvcs.NewSuggester(r) }
}

// WithClock replaces time.Now for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *CatalogService) { s.now = now }
}

// WithIDGenerator replaces models.NewID for items and outfits.
func WithIDGenerator(gen func() models.ID) Option {
	return func(s *CatalogService) { s.newID = gen }
}

// WithImageStore sets where uploaded images go. The default keeps them inline.
func WithImageStore(images ImageStore) Option {
	return func(s *CatalogService) { s.images = images }
}

// WithClassifier enables ClassifyImage and auto-classification.
func WithClassifier(c Classifier) Option {
	return func(s *CatalogService) { s.classifier = c }
}

// WithNotifier sets the change observer.
func WithNotifier(n Notifier) Option {
	return func(s *CatalogService) { s.notifier = n }
}

// WithStatsCache enables the statistics read-through cache.
func WithStatsCache(c StatsCache) Option {
	return func(s *CatalogService) { s.stats = c }
}

// WithLogger sets the service logger.
func WithLogger(log logger.Logger) Option {
	return func(s *CatalogService) { s.log = log }
}

// WithMetrics records commit counters.
func WithMetrics(m *telemetry.CatalogMetrics) Option {
	return func(s *CatalogService) { s.metrics = m }
}

// WithLocale sets the collation locale for name sorting.
func WithLocale(tag language.Tag) Option {
	return func(s *CatalogService) { s.locale = tag }
}

// WithDefaultVocabulary replaces the built-in vocabulary used for a fresh
// catalog and by Reset.
func WithDefaultVocabulary(v models.Vocabulary) Option {
	return func(s *CatalogService) { s.defaults = v.Normalize() }
}
