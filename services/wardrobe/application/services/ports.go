package services

import (
	"context"

	"github.com/ghuser/wardrobe/services/wardrobe/domain/events"
	"github.com/ghuser/wardrobe/services/wardrobe/domain/models"
	domainsvcs "github.com/ghuser/wardrobe/services/wardrobe/domain/services"
)

// ImageStore turns uploaded images into the references kept on an item.
type ImageStore interface {
	// Store returns the reference to keep for ref. Data URIs are decoded and
	// stored; references that are already stored come back unchanged.
	Store(ctx context.Context, itemID models.ID, ref string) (string, error)

	// Release drops the stored bytes behind refs. Inline references are ignored.
	Release(ctx context.Context, refs []string) error
}

// Classifier suggests category, color and tags for an item photo.
type Classifier interface {
	Name() string
	Classify(ctx context.Context, img models.ImageUpload, vocab models.Vocabulary) (models.Classification, error)
}

// Notifier receives one event per committed change.
type Notifier interface {
	Notify(ctx context.Context, evt events.CatalogChangedEvent) error
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, evt events.CatalogChangedEvent) error

func (f NotifierFunc) Notify(ctx context.Context, evt events.CatalogChangedEvent) error {
	return f(ctx, evt)
}

// StatsCache memoizes statistics per catalog revision.
// cache.JSONCache[domainsvcs.Stats] satisfies it.
type StatsCache interface {
	Get(ctx context.Context, key string) (domainsvcs.Stats, error)
	Set(ctx context.Context, key string, v domainsvcs.Stats) error
}

type inlineImages struct{}

func (inlineImages) Store(_ context.Context, _ models.ID, ref string) (string, error) { return ref, nil }
func (inlineImages) Release(context.Context, []string) error                         { return nil }
