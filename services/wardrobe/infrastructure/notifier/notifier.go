// Package notifier publishes catalog change events on the event bus.
package notifier

import (
	"context"
	"fmt"

	"github.com/ghuser/wardrobe/services/wardrobe/domain/events"
)

// Publisher is the part of events.EventBus the notifier needs.
type Publisher interface {
	PublishJSON(ctx context.Context, topic string, v any, metadata map[string]string) error
}

// Bus implements the catalog Notifier on top of a Publisher.
type Bus struct {
	pub Publisher
}

// NewBus returns a notifier publishing to events.TopicCatalogChanged.
func NewBus(pub Publisher) *Bus {
	return &Bus{pub: pub}
}

func (b *Bus) Notify(ctx context.Context, evt events.CatalogChangedEvent) error {
	err := b.pub.PublishJSON(ctx, events.TopicCatalogChanged, evt, map[string]string{
		"kind":     string(evt.Kind),
		"revision": fmt.Sprint(evt.Revision),
	})
	if err != nil {
		return fmt.Errorf("publish %s: %w", evt.Kind, err)
	}
	return nil
}
