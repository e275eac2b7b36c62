package events

import (
	"time"

	"github.com/google/uuid"
)

// TopicCatalogChanged is the Watermill topic published after every committed
// catalog mutation.
const TopicCatalogChanged = "wardrobe.catalog.changed"

// ChangeKind names the mutation that produced a CatalogChangedEvent.
type ChangeKind string

const (
	ItemAdded         ChangeKind = "item.added"
	ItemUpdated       ChangeKind = "item.updated"
	ItemDeleted       ChangeKind = "item.deleted"
	OutfitSaved       ChangeKind = "outfit.saved"
	OutfitUpdated     ChangeKind = "outfit.updated"
	OutfitDeleted     ChangeKind = "outfit.deleted"
	WorkingChanged    ChangeKind = "working_outfit.changed"
	VocabularyChanged ChangeKind = "vocabulary.changed"
	CatalogImported   ChangeKind = "catalog.imported"
	CatalogReset      ChangeKind = "catalog.reset"
)

// CatalogChangedEvent tells observers that catalog state moved to Revision.
// Consumers re-read state through the catalog service rather than trusting
// the payload. Consumers subscribe via EventBus.Subscribe(ctx, events.TopicCatalogChanged).
type CatalogChangedEvent struct {
	EventID    uuid.UUID  `json:"event_id"` // Unique publish-time identifier for deduplication
	Version    int        `json:"version"`  // Schema version; increment on breaking changes
	Kind       ChangeKind `json:"kind"`
	EntityIDs  []string   `json:"entity_ids,omitempty"`
	Revision   uint64     `json:"revision"`
	OccurredAt time.Time  `json:"occurred_at"`
}

// NewCatalogChangedEvent stamps a new event.
func NewCatalogChangedEvent(kind ChangeKind, revision uint64, at time.Time, entityIDs ...string) CatalogChangedEvent {
	return CatalogChangedEvent{
		EventID:    uuid.New(),
		Version:    1,
		Kind:       kind,
		EntityIDs:  entityIDs,
		Revision:   revision,
		OccurredAt: at.UTC(),
	}
}
