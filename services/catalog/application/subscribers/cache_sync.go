// Package subscribers keeps the catalog's item detail cache in step with
// domain events from both bounded contexts.
package subscribers

import (
	"context"
	"errors"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	"github.com/rentrobe/rentrobe/pkg/events"
	"github.com/rentrobe/rentrobe/pkg/logger"
	"github.com/rentrobe/rentrobe/pkg/telemetry"
	appsvcs "github.com/rentrobe/rentrobe/services/catalog/application/services"
	catalogdomain "github.com/rentrobe/rentrobe/services/catalog/domain"
	catalogevents "github.com/rentrobe/rentrobe/services/catalog/domain/events"
	"github.com/rentrobe/rentrobe/services/catalog/domain/repositories"
	rentalevents "github.com/rentrobe/rentrobe/services/rental/domain/events"
)

// Handler processes one message. Returning an error asks the bus to retry.
type Handler = events.Handler

// Bus is the subscribing side of the event bus.
type Bus interface {
	Subscribe(ctx context.Context, topic string, handler events.Handler) (<-chan error, error)
}

// CacheSync warms the cache for new items and drops entries whose item
// changed status, rating or visibility.
// Handlers must be idempotent: the bus retries failures before quarantining.
type CacheSync struct {
	items repositories.ItemRepository
	cache appsvcs.ItemCache
	log   logger.Logger
}

func NewCacheSync(items repositories.ItemRepository, cache appsvcs.ItemCache, log logger.Logger) *CacheSync {
	return &CacheSync{items: items, cache: cache, log: log}
}

// Handlers maps each topic to its handler.
func (s *CacheSync) Handlers() map[string]Handler {
	return map[string]Handler{
		catalogevents.TopicItemCreated:        s.HandleItemCreated,
		catalogevents.TopicItemDeactivated:    s.HandleItemDeactivated,
		rentalevents.TopicRentalStatusChanged: s.HandleRentalStatusChanged,
		rentalevents.TopicReviewSubmitted:     s.HandleReviewSubmitted,
	}
}

// Register subscribes every handler and drains subscriber errors into the log.
// Returns the registered topics.
func (s *CacheSync) Register(ctx context.Context, bus Bus) ([]string, error) {
	var topics []string
	for topic, h := range s.Handlers() {
		errCh, err := bus.Subscribe(ctx, topic, h)
		if err != nil {
			return topics, fmt.Errorf("subscribe %s: %w", topic, err)
		}
		go func(topic string) {
			for err := range errCh {
				s.log.ErrorContext(ctx, "subscriber error", "topic", topic, "error", err)
				telemetry.CaptureError(ctx, err, map[string]string{"topic": topic})
			}
		}(topic)
		topics = append(topics, topic)
	}
	return topics, nil
}

// HandleItemCreated loads the new item and stores it in the cache.
// Cache warming is best-effort; only a failed load is retried.
func (s *CacheSync) HandleItemCreated(ctx context.Context, msg *message.Message) error {
	evt, err := events.Decode[catalogevents.ItemCreatedEvent](msg)
	if err != nil {
		return err
	}
	item, err := s.items.Get(ctx, evt.ItemID)
	if errors.Is(err, catalogdomain.ErrItemNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load item %s: %w", evt.ItemID, err)
	}
	if err := s.cache.Set(ctx, appsvcs.ToCached(item)); err != nil {
		s.log.WarnContext(ctx, "cache warm failed for item.created", "item_id", evt.ItemID, "error", err)
		return nil
	}
	s.log.InfoContext(ctx, "cache warmed", "item_id", evt.ItemID)
	return nil
}

func (s *CacheSync) HandleItemDeactivated(ctx context.Context, msg *message.Message) error {
	evt, err := events.Decode[catalogevents.ItemDeactivatedEvent](msg)
	if err != nil {
		return err
	}
	return s.invalidate(ctx, evt.ItemID)
}

// HandleRentalStatusChanged drops the entry when the item's status moved.
func (s *CacheSync) HandleRentalStatusChanged(ctx context.Context, msg *message.Message) error {
	evt, err := events.Decode[rentalevents.RentalStatusChangedEvent](msg)
	if err != nil {
		return err
	}
	if evt.ItemStatus == "" {
		return nil
	}
	return s.invalidate(ctx, evt.ItemID)
}

func (s *CacheSync) HandleReviewSubmitted(ctx context.Context, msg *message.Message) error {
	evt, err := events.Decode[rentalevents.ReviewSubmittedEvent](msg)
	if err != nil {
		return err
	}
	return s.invalidate(ctx, evt.ItemID)
}

// invalidate deletes the cache entry. A failed delete is retried because a
// stale entry would keep serving the old status or rating.
func (s *CacheSync) invalidate(ctx context.Context, itemID uuid.UUID) error {
	if err := s.cache.Delete(ctx, itemID); err != nil {
		return fmt.Errorf("invalidate item %s: %w", itemID, err)
	}
	s.log.DebugContext(ctx, "cache invalidated", "item_id", itemID)
	return nil
}
