package subscribers

import (
	"context"
	"errors"
	"fmt"
	"path"
	"time"

	"github.com/ghuser/wardrobe/pkg/blob"
	"github.com/ghuser/wardrobe/pkg/logger"
	"github.com/ghuser/wardrobe/services/wardrobe/domain/events"
	"github.com/ghuser/wardrobe/services/wardrobe/domain/models"
	"github.com/ghuser/wardrobe/services/wardrobe/domain/repositories"
	domainsvcs "github.com/ghuser/wardrobe/services/wardrobe/domain/services"
	"github.com/ghuser/wardrobe/services/wardrobe/infrastructure/media"
)

// DefaultSweepGrace protects images uploaded for an item that is not yet
// committed.
const DefaultSweepGrace = 10 * time.Minute

const imagesPrefix = "images/"

// MediaSweeper deletes stored images that no committed item references.
// It reads the catalog through the gateway, so it sees what was persisted
// rather than the state of any one process.
type MediaSweeper struct {
	gateway repositories.CatalogGateway
	store   blob.Store
	log     logger.Logger
	grace   time.Duration
	now     func() time.Time
}

// NewMediaSweeper returns a sweeper over store. A zero grace uses DefaultSweepGrace.
func NewMediaSweeper(gw repositories.CatalogGateway, store blob.Store, log logger.Logger, grace time.Duration) *MediaSweeper {
	if grace <= 0 {
		grace = DefaultSweepGrace
	}
	return &MediaSweeper{gateway: gw, store: store, log: log, grace: grace, now: time.Now}
}

// Handler adapts the sweeper for Register.
func (m *MediaSweeper) Handler() Handler {
	return Handler{Name: "media_sweeper", Handle: m.Handle}
}

// Handle removes the image folders of deleted items and sweeps the whole
// store after updates, imports and resets.
func (m *MediaSweeper) Handle(ctx context.Context, evt events.CatalogChangedEvent) error {
	switch evt.Kind {
	case events.ItemDeleted:
		return m.dropItems(ctx, evt.EntityIDs)
	case events.ItemUpdated, events.CatalogImported, events.CatalogReset:
		_, err := m.Sweep(ctx)
		return err
	default:
		return nil
	}
}

func (m *MediaSweeper) dropItems(ctx context.Context, ids []string) error {
	doc, err := m.load(ctx)
	if err != nil {
		return err
	}
	live := make(map[models.ID]bool, len(doc.Items))
	for _, item := range doc.Items {
		live[item.ID] = true
	}

	var errs []error
	for _, id := range ids {
		if live[models.ID(id)] {
			continue
		}
		n, err := blob.DeletePrefix(ctx, m.store, path.Join("images", id)+"/")
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if n > 0 {
			m.log.InfoContext(ctx, "media: removed images of deleted item", "item_id", id, "count", n)
		}
	}
	return errors.Join(errs...)
}

// Sweep deletes unreferenced images older than the grace period and returns
// how many were removed.
func (m *MediaSweeper) Sweep(ctx context.Context) (int, error) {
	doc, err := m.load(ctx)
	if err != nil {
		return 0, err
	}
	referenced := make(map[string]bool)
	for _, item := range doc.Items {
		for _, ref := range item.Images {
			if key, ok := media.KeyOf(ref); ok {
				referenced[key] = true
			}
		}
	}

	infos, err := m.store.List(ctx, imagesPrefix)
	if err != nil {
		return 0, fmt.Errorf("media: list: %w", err)
	}
	cutoff := m.now().Add(-m.grace)
	removed := 0
	for _, info := range infos {
		if referenced[info.Key] || info.LastModified.After(cutoff) {
			continue
		}
		ok, err := m.store.Delete(ctx, info.Key)
		if err != nil {
			return removed, fmt.Errorf("media: delete %s: %w", info.Key, err)
		}
		if ok {
			removed++
		}
	}
	if removed > 0 {
		m.log.InfoContext(ctx, "media: swept orphaned images", "count", removed)
	}
	return removed, nil
}

func (m *MediaSweeper) load(ctx context.Context) (models.Document, error) {
	data, err := m.gateway.Load(ctx)
	if errors.Is(err, repositories.ErrEmpty) {
		return models.Document{}, nil
	}
	if err != nil {
		return models.Document{}, fmt.Errorf("media: load catalog: %w", err)
	}
	// Only item images matter here, so no vocabulary defaults are needed.
	doc, err := domainsvcs.DecodeDocument(data, models.Vocabulary{})
	if err != nil {
		return models.Document{}, fmt.Errorf("media: decode catalog: %w", err)
	}
	return doc, nil
}
