// Package subscribers reacts to catalog.changed events. The API process runs
// them in-process on the memory bus; cmd/worker runs them against the SQL bus.
//
// Handlers must be idempotent: the EventBus retries a failed message up to
// three times, and every handler runs again on each retry.
package subscribers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ghuser/wardrobe/pkg/logger"
	"github.com/ghuser/wardrobe/services/wardrobe/domain/events"
)

// Subscriber is the part of events.EventBus used here.
type Subscriber interface {
	Subscribe(ctx context.Context, topic string, handler func(context.Context, *message.Message) error) (<-chan error, error)
}

// Handler reacts to one decoded catalog event.
type Handler struct {
	Name   string
	Handle func(ctx context.Context, evt events.CatalogChangedEvent) error
}

// Register subscribes handlers to events.TopicCatalogChanged. The payload is
// decoded once per message and passed to every handler in order. Subscriber
// errors are logged until ctx is cancelled.
func Register(ctx context.Context, sub Subscriber, log logger.Logger, handlers ...Handler) error {
	errCh, err := sub.Subscribe(ctx, events.TopicCatalogChanged, dispatch(handlers))
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", events.TopicCatalogChanged, err)
	}

	// Drain subscriber errors in background so the channel never blocks.
	go func() {
		for err := range errCh {
			log.ErrorContext(ctx, "subscriber error",
				"topic", events.TopicCatalogChanged,
				"error", err,
			)
		}
	}()

	names := make([]string, len(handlers))
	for i, h := range handlers {
		names[i] = h.Name
	}
	log.Info("event subscribers registered", "topic", events.TopicCatalogChanged, "handlers", names)
	return nil
}

func dispatch(handlers []Handler) func(context.Context, *message.Message) error {
	return func(ctx context.Context, msg *message.Message) error {
		var evt events.CatalogChangedEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			return fmt.Errorf("decode %s: %w", events.TopicCatalogChanged, err)
		}
		var errs []error
		for _, h := range handlers {
			if err := h.Handle(ctx, evt); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", h.Name, err))
			}
		}
		return errors.Join(errs...)
	}
}

// AuditLog writes one structured log line per committed change.
func AuditLog(log logger.Logger) Handler {
	return Handler{
		Name: "audit_log",
		Handle: func(ctx context.Context, evt events.CatalogChangedEvent) error {
			log.InfoContext(ctx, "catalog changed",
				"event_id", evt.EventID,
				"kind", evt.Kind,
				"revision", evt.Revision,
				"entity_ids", evt.EntityIDs,
				"occurred_at", evt.OccurredAt,
			)
			return nil
		},
	}
}
