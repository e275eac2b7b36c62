package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/language"

	pkgcache "github.com/ghuser/wardrobe/pkg/cache"
	"github.com/ghuser/wardrobe/pkg/logger"
	"github.com/ghuser/wardrobe/pkg/telemetry"
	"github.com/ghuser/wardrobe/services/wardrobe/domain"
	"github.com/ghuser/wardrobe/services/wardrobe/domain/events"
	"github.com/ghuser/wardrobe/services/wardrobe/domain/models"
	"github.com/ghuser/wardrobe/services/wardrobe/domain/repositories"
	domainsvcs "github.com/ghuser/wardrobe/services/wardrobe/domain/services"
)

// errNoChange aborts a mutation without saving or notifying.
var errNoChange = errors.New("no change")

// CatalogService owns the in-memory catalog and is its only writer.
//
// Every mutation builds the next state on a copy, writes the whole catalog
// through the gateway and swaps the copy in only after the write succeeded.
// A failed write returns an error wrapping domain.ErrPersistence and the
// previous state stays current. Change events go out after the lock is released.
type CatalogService struct {
	mu       sync.Mutex
	st       state
	revision uint64
	bootID   string

	gateway    repositories.CatalogGateway
	images     ImageStore
	classifier Classifier
	notifier   Notifier
	stats      StatsCache
	suggester  *domainsvcs.Suggester
	log        logger.Logger
	metrics    *telemetry.CatalogMetrics
	now        func() time.Time
	newID      func() models.ID
	locale     language.Tag
	defaults   models.Vocabulary
}

// state is one consistent view of the catalog plus the working outfit.
type state struct {
	items   []models.Item
	outfits []models.Outfit
	vocab   models.Vocabulary
	working []models.ID
}

// NewCatalogService returns a service with an empty catalog. Call Load to
// read the persisted catalog.
func NewCatalogService(gateway repositories.CatalogGateway, opts ...Option) *CatalogService {
	s := &CatalogService{
		gateway:   gateway,
		images:    inlineImages{},
		suggester: domainsvcs.NewSuggester(nil),
		log:       logger.Discard(),
		now:       time.Now,
		newID:     models.NewID,
		defaults:  models.DefaultVocabulary(),
		bootID:    uuid.NewString(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.st = freshState(s.defaults)
	return s
}

// Load replaces the in-memory catalog with the persisted one. An empty store
// yields a fresh catalog with the default vocabulary.
func (s *CatalogService) Load(ctx context.Context) error {
	blob, err := s.gateway.Load(ctx)
	if errors.Is(err, repositories.ErrEmpty) {
		s.mu.Lock()
		s.st = freshState(s.defaults)
		s.revision++
		s.mu.Unlock()
		s.log.InfoContext(ctx, "catalog: starting with an empty catalog")
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: load catalog: %w", domain.ErrPersistence, err)
	}

	doc, err := domainsvcs.DecodeDocument(blob, s.defaults)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	s.mu.Lock()
	s.st = state{
		items:   s.normalizeItems(doc.Items),
		outfits: s.normalizeOutfits(doc.Outfits),
		vocab:   doc.Vocabulary().Normalize(),
	}
	s.revision++
	items, outfits := len(s.st.items), len(s.st.outfits)
	s.mu.Unlock()

	s.log.InfoContext(ctx, "catalog: loaded", "items", items, "outfits", outfits)
	return nil
}

// ---- items ----

// AddItem stores the item's images, then validates and persists the item.
func (s *CatalogService) AddItem(ctx context.Context, in ItemInput) (models.Item, error) {
	items, err := s.AddItems(ctx, []ItemInput{in})
	if err != nil {
		return models.Item{}, err
	}
	return items[0], nil
}

// AddItems adds every input or none of them, with a single save.
func (s *CatalogService) AddItems(ctx context.Context, inputs []ItemInput) ([]models.Item, error) {
	if len(inputs) == 0 {
		return nil, domain.Invalid(domain.ErrInvalidItem, "no items supplied")
	}

	drafts := make([]models.Item, 0, len(inputs))
	var fresh []string
	for i, in := range inputs {
		in = s.autoClassify(ctx, in)
		id := s.newID()
		refs, stored, err := s.storeImages(ctx, id, in.Images)
		fresh = append(fresh, stored...)
		if err != nil {
			s.release(ctx, fresh)
			return nil, s.itemError(len(inputs), i, err)
		}
		drafts = append(drafts, models.Item{
			ID:       id,
			Name:     in.Name,
			Category: in.Category,
			Color:    in.Color,
			Tags:     slices.Clone(in.Tags),
			Notes:    strings.TrimSpace(in.Notes),
			Images:   refs,
		})
	}

	out := make([]models.Item, 0, len(drafts))
	err := s.mutate(ctx, events.ItemAdded, func(next *state) ([]string, error) {
		at := models.At(s.now())
		ids := make([]string, 0, len(drafts))
		for i, item := range drafts {
			item.CreatedAt, item.UpdatedAt = at, at
			if err := domainsvcs.ValidateItem(&item, next.vocab); err != nil {
				return nil, s.itemError(len(drafts), i, err)
			}
			if next.itemIndex(item.ID) >= 0 {
				return nil, s.itemError(len(drafts), i, domain.Invalid(domain.ErrInvalidItem, "duplicate id %s", item.ID))
			}
			next.items = append(next.items, item)
			ids = append(ids, item.ID.String())
			out = append(out, item.Clone())
		}
		return ids, nil
	})
	if err != nil {
		s.release(ctx, fresh)
		return nil, err
	}
	return out, nil
}

func (s *CatalogService) itemError(total, i int, err error) error {
	if total == 1 {
		return fmt.Errorf("add item: %w", err)
	}
	return fmt.Errorf("add item %d: %w", i+1, err)
}

// UpdateItem merges patch into the item and refreshes updatedAt. Unknown ids
// return domain.ErrItemNotFound and leave the catalog untouched.
func (s *CatalogService) UpdateItem(ctx context.Context, id models.ID, patch ItemPatch) (models.Item, error) {
	if _, ok := s.GetItem(ctx, id); !ok {
		return models.Item{}, domain.ErrItemNotFound
	}

	var kept, fresh []string
	if patch.Images != nil {
		var err error
		kept, fresh, err = s.storeImages(ctx, id, *patch.Images)
		if err != nil {
			s.release(ctx, fresh)
			return models.Item{}, fmt.Errorf("update item: %w", err)
		}
	}

	var updated models.Item
	var dropped []string
	err := s.mutate(ctx, events.ItemUpdated, func(next *state) ([]string, error) {
		i := next.itemIndex(id)
		if i < 0 {
			return nil, domain.ErrItemNotFound
		}
		item := next.items[i].Clone()

		// Values the patch leaves alone stay valid even if they have since
		// been removed from the vocabulary.
		vocab := next.vocab.Clone()
		if patch.Name != nil {
			item.Name = *patch.Name
		}
		if patch.Category != nil {
			item.Category = *patch.Category
		} else {
			vocab.Add(models.KindCategories, item.Category)
		}
		if patch.Color != nil {
			item.Color = *patch.Color
		} else {
			vocab.Add(models.KindColors, item.Color)
		}
		if patch.Tags != nil {
			item.Tags = slices.Clone(*patch.Tags)
		} else {
			for _, t := range item.Tags {
				vocab.Add(models.KindTags, t)
			}
		}
		if patch.Notes != nil {
			item.Notes = strings.TrimSpace(*patch.Notes)
		}
		if patch.Images != nil {
			dropped = without(item.Images, kept)
			item.Images = kept
		}
		item.UpdatedAt = models.At(s.now())

		if err := domainsvcs.ValidateItem(&item, vocab); err != nil {
			return nil, fmt.Errorf("update item: %w", err)
		}
		next.items[i] = item
		updated = item.Clone()
		return []string{id.String()}, nil
	})
	if err != nil {
		s.release(ctx, fresh)
		return models.Item{}, err
	}
	s.release(ctx, dropped)
	return updated, nil
}

// DeleteItem removes the item and drops it from the working outfit. Outfits
// keep their reference. Deleting an unknown id is a no-op.
func (s *CatalogService) DeleteItem(ctx context.Context, id models.ID) error {
	var removed models.Item
	err := s.mutate(ctx, events.ItemDeleted, func(next *state) ([]string, error) {
		i := next.itemIndex(id)
		if i < 0 {
			return nil, errNoChange
		}
		removed = next.items[i]
		next.items = slices.Delete(next.items, i, i+1)
		next.working = slices.DeleteFunc(next.working, func(w models.ID) bool { return w == id })
		return []string{id.String()}, nil
	})
	if err != nil {
		return err
	}
	s.release(ctx, removed.Images)
	return nil
}

// GetItem returns a copy of the item with id.
func (s *CatalogService) GetItem(_ context.Context, id models.ID) (models.Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.st.itemIndex(id); i >= 0 {
		return s.st.items[i].Clone(), true
	}
	return models.Item{}, false
}

// Items returns a copy of the item collection in store order.
func (s *CatalogService) Items(_ context.Context) []models.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneItems(s.st.items)
}

// ---- working outfit ----

// AddToCurrentOutfit appends id to the working outfit. It returns false when
// the item is already there and domain.ErrItemNotFound for unknown items.
func (s *CatalogService) AddToCurrentOutfit(ctx context.Context, id models.ID) (bool, error) {
	s.mu.Lock()
	if s.st.itemIndex(id) < 0 {
		s.mu.Unlock()
		return false, domain.ErrItemNotFound
	}
	if slices.Contains(s.st.working, id) {
		s.mu.Unlock()
		return false, nil
	}
	s.st.working = append(s.st.working, id)
	evt := s.workingEventLocked()
	s.mu.Unlock()

	s.publish(ctx, evt)
	return true, nil
}

// RemoveFromCurrentOutfit drops id from the working outfit if present.
func (s *CatalogService) RemoveFromCurrentOutfit(ctx context.Context, id models.ID) {
	s.mu.Lock()
	before := len(s.st.working)
	s.st.working = slices.DeleteFunc(s.st.working, func(w models.ID) bool { return w == id })
	if len(s.st.working) == before {
		s.mu.Unlock()
		return
	}
	evt := s.workingEventLocked()
	s.mu.Unlock()
	s.publish(ctx, evt)
}

// ClearCurrentOutfit empties the working outfit.
func (s *CatalogService) ClearCurrentOutfit(ctx context.Context) {
	s.mu.Lock()
	if len(s.st.working) == 0 {
		s.mu.Unlock()
		return
	}
	s.st.working = nil
	evt := s.workingEventLocked()
	s.mu.Unlock()
	s.publish(ctx, evt)
}

// CurrentOutfit resolves the working outfit, skipping ids that no longer exist.
func (s *CatalogService) CurrentOutfit(_ context.Context) []models.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.resolve(s.st.working)
}

func (s *CatalogService) workingEventLocked() events.CatalogChangedEvent {
	ids := make([]string, len(s.st.working))
	for i, id := range s.st.working {
		ids[i] = id.String()
	}
	return events.NewCatalogChangedEvent(events.WorkingChanged, s.revision, s.now(), ids...)
}

// ---- outfits ----

// SaveOutfit snapshots the working outfit as a new outfit and bumps the usage
// count of every item in it. The working outfit is left as is.
func (s *CatalogService) SaveOutfit(ctx context.Context, name string, tags []string) (models.Outfit, error) {
	var saved models.Outfit
	err := s.mutate(ctx, events.OutfitSaved, func(next *state) ([]string, error) {
		if len(next.working) == 0 {
			return nil, domain.ErrEmptyOutfit
		}
		o, err := s.appendOutfit(next, name, next.working, tags)
		if err != nil {
			return nil, err
		}
		saved = o
		return []string{o.ID.String()}, nil
	})
	if err != nil {
		return models.Outfit{}, fmt.Errorf("save outfit: %w", err)
	}
	return saved, nil
}

// CreateOutfit saves an outfit from an explicit item selection, with the same
// rules as SaveOutfit. Every id must name an existing item.
func (s *CatalogService) CreateOutfit(ctx context.Context, in OutfitInput) (models.Outfit, error) {
	refs := uniqueIDs(in.Items)
	var created models.Outfit
	err := s.mutate(ctx, events.OutfitSaved, func(next *state) ([]string, error) {
		for _, id := range refs {
			if next.itemIndex(id) < 0 {
				return nil, fmt.Errorf("item %s: %w", id, domain.ErrItemNotFound)
			}
		}
		o, err := s.appendOutfit(next, in.Name, refs, in.Tags)
		if err != nil {
			return nil, err
		}
		created = o
		return []string{o.ID.String()}, nil
	})
	if err != nil {
		return models.Outfit{}, fmt.Errorf("create outfit: %w", err)
	}
	return created, nil
}

func (s *CatalogService) appendOutfit(next *state, name string, refs []models.ID, tags []string) (models.Outfit, error) {
	at := models.At(s.now())
	if strings.TrimSpace(name) == "" {
		name = fmt.Sprintf("Outfit %d", len(next.outfits)+1)
	}
	o := models.Outfit{
		ID:        s.newID(),
		Name:      name,
		Items:     slices.Clone(refs),
		Tags:      slices.Clone(tags),
		CreatedAt: at,
		UpdatedAt: at,
	}
	if err := domainsvcs.ValidateOutfit(&o, next.vocab); err != nil {
		return models.Outfit{}, err
	}
	for _, id := range o.Items {
		if i := next.itemIndex(id); i >= 0 {
			next.items[i].UsageCount++
		}
	}
	next.outfits = append(next.outfits, o)
	return o.Clone(), nil
}

// UpdateOutfit merges patch into the outfit. Newly referenced items must exist;
// references already on the outfit may dangle.
func (s *CatalogService) UpdateOutfit(ctx context.Context, id models.ID, patch OutfitPatch) (models.Outfit, error) {
	var updated models.Outfit
	err := s.mutate(ctx, events.OutfitUpdated, func(next *state) ([]string, error) {
		i := next.outfitIndex(id)
		if i < 0 {
			return nil, domain.ErrOutfitNotFound
		}
		o := next.outfits[i].Clone()

		// Tags the patch leaves alone stay valid after removal from the vocabulary.
		vocab := next.vocab.Clone()
		if patch.Name != nil {
			o.Name = *patch.Name
		}
		if patch.Items != nil {
			refs := uniqueIDs(*patch.Items)
			for _, ref := range refs {
				if !slices.Contains(o.Items, ref) && next.itemIndex(ref) < 0 {
					return nil, fmt.Errorf("item %s: %w", ref, domain.ErrItemNotFound)
				}
			}
			o.Items = refs
		}
		if patch.Tags != nil {
			o.Tags = slices.Clone(*patch.Tags)
		} else {
			for _, t := range o.Tags {
				vocab.Add(models.KindTags, t)
			}
		}
		if patch.LastWorn != nil {
			lw := models.At(*patch.LastWorn)
			o.LastWorn = &lw
		}
		o.UpdatedAt = models.At(s.now())
		if err := domainsvcs.ValidateOutfit(&o, vocab); err != nil {
			return nil, err
		}
		next.outfits[i] = o
		updated = o.Clone()
		return []string{id.String()}, nil
	})
	if err != nil {
		return models.Outfit{}, fmt.Errorf("update outfit: %w", err)
	}
	return updated, nil
}

// DeleteOutfit removes the outfit. It returns false when id is unknown.
func (s *CatalogService) DeleteOutfit(ctx context.Context, id models.ID) (bool, error) {
	deleted := false
	err := s.mutate(ctx, events.OutfitDeleted, func(next *state) ([]string, error) {
		i := next.outfitIndex(id)
		if i < 0 {
			return nil, errNoChange
		}
		next.outfits = slices.Delete(next.outfits, i, i+1)
		deleted = true
		return []string{id.String()}, nil
	})
	return deleted, err
}

// Outfits returns a copy of the outfit collection in store order.
func (s *CatalogService) Outfits(_ context.Context) []models.Outfit {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneOutfits(s.st.outfits)
}

// GetOutfit returns a copy of the outfit with id.
func (s *CatalogService) GetOutfit(_ context.Context, id models.ID) (models.Outfit, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.st.outfitIndex(id); i >= 0 {
		return s.st.outfits[i].Clone(), true
	}
	return models.Outfit{}, false
}

// LoadOutfit replaces the working outfit with the outfit's items that still
// exist. It returns false when the outfit is unknown.
func (s *CatalogService) LoadOutfit(ctx context.Context, id models.ID) ([]models.Item, bool) {
	s.mu.Lock()
	i := s.st.outfitIndex(id)
	if i < 0 {
		s.mu.Unlock()
		return nil, false
	}
	items := s.st.resolve(s.st.outfits[i].Items)
	s.st.working = make([]models.ID, len(items))
	for j, item := range items {
		s.st.working[j] = item.ID
	}
	evt := s.workingEventLocked()
	s.mu.Unlock()

	s.publish(ctx, evt)
	return items, true
}

// ---- queries ----

// FilterItems applies spec to a snapshot of the items. A spec without a
// locale uses the service locale.
func (s *CatalogService) FilterItems(ctx context.Context, spec domainsvcs.FilterSpec) []models.Item {
	return domainsvcs.FilterItems(s.Items(ctx), s.withLocale(spec))
}

// FilterOutfits applies spec to a snapshot of the outfits, resolving item
// references against the current items.
func (s *CatalogService) FilterOutfits(_ context.Context, spec domainsvcs.FilterSpec) []models.Outfit {
	s.mu.Lock()
	outfits := cloneOutfits(s.st.outfits)
	lookup := s.st.lookup()
	s.mu.Unlock()
	return domainsvcs.FilterOutfits(outfits, s.withLocale(spec), lookup)
}

func (s *CatalogService) withLocale(spec domainsvcs.FilterSpec) domainsvcs.FilterSpec {
	if spec.Locale == language.Und {
		spec.Locale = s.locale
	}
	return spec
}

// Statistics summarizes the catalog. Results are cached per revision when a
// cache is configured; cache failures only cost a recomputation.
func (s *CatalogService) Statistics(ctx context.Context) (domainsvcs.Stats, error) {
	s.mu.Lock()
	items := cloneItems(s.st.items)
	outfits := len(s.st.outfits)
	key := fmt.Sprintf("%s:%d", s.bootID, s.revision)
	s.mu.Unlock()

	if s.stats != nil {
		st, err := s.stats.Get(ctx, key)
		if err == nil {
			return st, nil
		}
		if !errors.Is(err, pkgcache.ErrMiss) {
			s.log.WarnContext(ctx, "catalog: stats cache read failed", "error", err)
		}
	}

	st := domainsvcs.ComputeStats(items, outfits)
	if s.stats != nil {
		if err := s.stats.Set(ctx, key, st); err != nil {
			s.log.WarnContext(ctx, "catalog: stats cache write failed", "error", err)
		}
	}
	return st, nil
}

// SuggestOutfit picks a color-compatible set of items and makes it the
// working outfit.
func (s *CatalogService) SuggestOutfit(ctx context.Context) ([]models.Item, error) {
	s.mu.Lock()
	picks, err := s.suggester.Suggest(s.st.items)
	if err != nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("suggest outfit: %w", err)
	}
	picks = cloneItems(picks)
	s.st.working = make([]models.ID, len(picks))
	for i, item := range picks {
		s.st.working[i] = item.ID
	}
	evt := s.workingEventLocked()
	s.mu.Unlock()

	s.publish(ctx, evt)
	return picks, nil
}

// ---- import / export ----

// Export returns the catalog as a portable document. Outfit references that
// no longer resolve are left out.
func (s *CatalogService) Export(_ context.Context) domainsvcs.ExportDocument {
	s.mu.Lock()
	doc := s.st.document()
	lookup := s.st.lookup()
	s.mu.Unlock()

	for i, o := range doc.Outfits {
		doc.Outfits[i].Items = slices.DeleteFunc(slices.Clone(o.Items), func(id models.ID) bool {
			_, ok := lookup(id)
			return !ok
		})
	}
	return domainsvcs.Export(doc, s.now())
}

// Import replaces items, outfits and vocabulary with the document's content
// and clears the working outfit.
func (s *CatalogService) Import(ctx context.Context, data []byte) error {
	doc, err := domainsvcs.DecodeImport(data, s.defaults)
	if err != nil {
		return err
	}

	var previous []models.Item
	err = s.mutate(ctx, events.CatalogImported, func(next *state) ([]string, error) {
		previous = next.items
		next.items = s.normalizeItems(doc.Items)
		next.outfits = s.normalizeOutfits(doc.Outfits)
		next.vocab = doc.Vocabulary()
		next.working = nil
		return nil, nil
	})
	if err != nil {
		return fmt.Errorf("import catalog: %w", err)
	}
	s.release(ctx, without(imageRefs(previous), imageRefs(doc.Items)))
	return nil
}

// Reset clears the persisted catalog and starts over with the default vocabulary.
func (s *CatalogService) Reset(ctx context.Context) error {
	s.mu.Lock()
	if err := s.gateway.Clear(ctx); err != nil {
		s.mu.Unlock()
		s.metrics.CommitFailed(ctx, string(events.CatalogReset))
		return fmt.Errorf("%w: reset catalog: %w", domain.ErrPersistence, err)
	}
	previous := s.st.items
	s.st = freshState(s.defaults)
	s.revision++
	s.metrics.Commit(ctx, string(events.CatalogReset))
	evt := events.NewCatalogChangedEvent(events.CatalogReset, s.revision, s.now())
	s.mu.Unlock()

	s.publish(ctx, evt)
	s.release(ctx, imageRefs(previous))
	return nil
}

// ---- vocabulary ----

// Vocabulary returns a copy of the current value lists.
func (s *CatalogService) Vocabulary(_ context.Context) models.Vocabulary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.vocab.Clone()
}

// AddVocabulary appends value to the list of kind. It returns false when the
// value is already present.
func (s *CatalogService) AddVocabulary(ctx context.Context, kind models.VocabularyKind, value string) (bool, error) {
	return s.editVocabulary(ctx, kind, value, (*models.Vocabulary).Add)
}

// RemoveVocabulary deletes value from the list of kind. Items using the value
// keep it. It returns false when the value is not present.
func (s *CatalogService) RemoveVocabulary(ctx context.Context, kind models.VocabularyKind, value string) (bool, error) {
	return s.editVocabulary(ctx, kind, value, (*models.Vocabulary).Remove)
}

func (s *CatalogService) editVocabulary(ctx context.Context, kind models.VocabularyKind, value string, edit func(*models.Vocabulary, models.VocabularyKind, string) bool) (bool, error) {
	kind, err := models.ParseVocabularyKind(string(kind))
	if err != nil {
		return false, domain.Invalid(domain.ErrInvalidVocabulary, "%v", err)
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return false, domain.Invalid(domain.ErrInvalidVocabulary, "%s value must not be blank", kind)
	}

	changed := false
	err = s.mutate(ctx, events.VocabularyChanged, func(next *state) ([]string, error) {
		if !edit(&next.vocab, kind, value) {
			return nil, errNoChange
		}
		changed = true
		return []string{string(kind) + ":" + value}, nil
	})
	return changed, err
}

// ---- classification ----

// ClassifyImage asks the configured provider to label img.
func (s *CatalogService) ClassifyImage(ctx context.Context, img models.ImageUpload) (models.Classification, error) {
	if s.classifier == nil {
		return models.Classification{}, domain.ErrClassifierUnavailable
	}
	if len(img.Data) == 0 {
		return models.Classification{}, domain.Invalid(domain.ErrInvalidImage, "image is empty")
	}

	start := time.Now()
	c, err := s.classifier.Classify(ctx, img, s.Vocabulary(ctx))
	s.metrics.Classified(ctx, s.classifier.Name(), time.Since(start).Seconds(), err == nil)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) || errors.Is(err, domain.ErrClassificationFailed) {
			return models.Classification{}, err
		}
		return models.Classification{}, fmt.Errorf("%w: %w", domain.ErrClassificationFailed, err)
	}
	if c.Provider == "" {
		c.Provider = s.classifier.Name()
	}
	if c.Tags == nil {
		c.Tags = []string{}
	}
	return c, nil
}

// autoClassify fills a blank category, color, name or tag list from the first
// image. Failures are logged and leave the input unchanged.
func (s *CatalogService) autoClassify(ctx context.Context, in ItemInput) ItemInput {
	if !in.AutoClassify || s.classifier == nil || len(in.Images) == 0 {
		return in
	}
	if strings.TrimSpace(in.Category) != "" && strings.TrimSpace(in.Color) != "" {
		return in
	}
	img, err := models.ParseDataURI(in.Images[0])
	if err != nil {
		return in
	}
	c, err := s.ClassifyImage(ctx, img)
	if err != nil {
		s.log.WarnContext(ctx, "catalog: auto-classification failed", "error", err)
		return in
	}
	if strings.TrimSpace(in.Category) == "" {
		in.Category = c.Category
	}
	if strings.TrimSpace(in.Color) == "" {
		in.Color = c.Color
	}
	if strings.TrimSpace(in.Name) == "" {
		in.Name = c.Name
	}
	if len(in.Tags) == 0 {
		in.Tags = c.Tags
	}
	return in
}

// ---- plumbing ----

// mutate runs fn against a copy of the state, persists the result and swaps
// it in. fn returning errNoChange makes mutate a silent no-op.
func (s *CatalogService) mutate(ctx context.Context, kind events.ChangeKind, fn func(next *state) ([]string, error)) error {
	s.mu.Lock()
	next := s.st.clone()
	ids, err := fn(&next)
	if err != nil {
		s.mu.Unlock()
		if errors.Is(err, errNoChange) {
			return nil
		}
		return err
	}
	evt, err := s.commitLocked(ctx, next, kind, ids)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.publish(ctx, evt)
	return nil
}

func (s *CatalogService) commitLocked(ctx context.Context, next state, kind events.ChangeKind, ids []string) (events.CatalogChangedEvent, error) {
	blob, err := domainsvcs.EncodeDocument(next.document())
	if err != nil {
		return events.CatalogChangedEvent{}, err
	}
	if err := s.gateway.Save(ctx, blob); err != nil {
		s.metrics.CommitFailed(ctx, string(kind))
		s.log.ErrorContext(ctx, "catalog: save failed", "kind", kind, "error", err)
		return events.CatalogChangedEvent{}, fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}
	s.st = next
	s.revision++
	s.metrics.Commit(ctx, string(kind))
	return events.NewCatalogChangedEvent(kind, s.revision, s.now(), ids...), nil
}

func (s *CatalogService) publish(ctx context.Context, evt events.CatalogChangedEvent) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, evt); err != nil {
		s.log.WarnContext(ctx, "catalog: change notification failed",
			"kind", evt.Kind, "revision", evt.Revision, "error", err)
	}
}

// storeImages returns the references to keep and the subset that was newly stored.
func (s *CatalogService) storeImages(ctx context.Context, id models.ID, refs []string) (kept, fresh []string, err error) {
	kept = make([]string, 0, len(refs))
	for i, ref := range refs {
		out, err := s.images.Store(ctx, id, ref)
		if err != nil {
			return nil, fresh, fmt.Errorf("image %d: %w", i+1, err)
		}
		if models.IsDataURI(ref) && out != ref {
			fresh = append(fresh, out)
		}
		kept = append(kept, out)
	}
	return kept, fresh, nil
}

func (s *CatalogService) release(ctx context.Context, refs []string) {
	if len(refs) == 0 {
		return
	}
	if err := s.images.Release(ctx, refs); err != nil {
		s.log.WarnContext(ctx, "catalog: releasing images failed", "count", len(refs), "error", err)
	}
}

func (s *CatalogService) normalizeItems(items []models.Item) []models.Item {
	out := make([]models.Item, 0, len(items))
	seen := make(map[models.ID]bool, len(items))
	for _, item := range items {
		item = item.Clone()
		if item.ID == "" || seen[item.ID] {
			item.ID = s.newID()
		}
		seen[item.ID] = true
		if item.Tags == nil {
			item.Tags = []string{}
		}
		if item.Images == nil {
			item.Images = []string{}
		}
		out = append(out, item)
	}
	return out
}

func (s *CatalogService) normalizeOutfits(outfits []models.Outfit) []models.Outfit {
	out := make([]models.Outfit, 0, len(outfits))
	seen := make(map[models.ID]bool, len(outfits))
	for _, o := range outfits {
		o = o.Clone()
		if o.ID == "" || seen[o.ID] {
			o.ID = s.newID()
		}
		seen[o.ID] = true
		if o.Items == nil {
			o.Items = []models.ID{}
		}
		if o.Tags == nil {
			o.Tags = []string{}
		}
		out = append(out, o)
	}
	return out
}

func freshState(vocab models.Vocabulary) state {
	return state{
		items:   []models.Item{},
		outfits: []models.Outfit{},
		vocab:   vocab.Clone(),
	}
}

func (st state) clone() state {
	return state{
		items:   cloneItems(st.items),
		outfits: cloneOutfits(st.outfits),
		vocab:   st.vocab.Clone(),
		working: slices.Clone(st.working),
	}
}

func (st state) document() models.Document {
	return models.Document{
		Items:      cloneItems(st.items),
		Outfits:    cloneOutfits(st.outfits),
		Colors:     slices.Clone(st.vocab.Colors),
		Categories: slices.Clone(st.vocab.Categories),
		Tags:       slices.Clone(st.vocab.Tags),
	}
}

func (st state) itemIndex(id models.ID) int {
	return slices.IndexFunc(st.items, func(i models.Item) bool { return i.ID == id })
}

func (st state) outfitIndex(id models.ID) int {
	return slices.IndexFunc(st.outfits, func(o models.Outfit) bool { return o.ID == id })
}

// lookup resolves ids against a snapshot of the items.
func (st state) lookup() func(models.ID) (models.Item, bool) {
	byID := make(map[models.ID]models.Item, len(st.items))
	for _, item := range st.items {
		byID[item.ID] = item.Clone()
	}
	return func(id models.ID) (models.Item, bool) {
		item, ok := byID[id]
		return item, ok
	}
}

// resolve returns the items for ids in order, skipping dangling ids.
func (st state) resolve(ids []models.ID) []models.Item {
	out := make([]models.Item, 0, len(ids))
	for _, id := range ids {
		if i := st.itemIndex(id); i >= 0 {
			out = append(out, st.items[i].Clone())
		}
	}
	return out
}

func cloneItems(items []models.Item) []models.Item {
	out := make([]models.Item, len(items))
	for i, item := range items {
		out[i] = item.Clone()
	}
	return out
}

func cloneOutfits(outfits []models.Outfit) []models.Outfit {
	out := make([]models.Outfit, len(outfits))
	for i, o := range outfits {
		out[i] = o.Clone()
	}
	return out
}

func uniqueIDs(ids []models.ID) []models.ID {
	out := make([]models.ID, 0, len(ids))
	for _, id := range ids {
		if id != "" && !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}

func imageRefs(items []models.Item) []string {
	var refs []string
	for _, item := range items {
		refs = append(refs, item.Images...)
	}
	return refs
}

// without returns the values of from that are not in keep.
func without(from, keep []string) []string {
	var out []string
	for _, v := range from {
		if !slices.Contains(keep, v) {
			out = append(out, v)
		}
	}
	return out
}
