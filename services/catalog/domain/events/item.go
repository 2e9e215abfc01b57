package events

import (
	"time"

	"github.com/google/uuid"
)

// Topics published by the catalog context.
const (
	// TopicItemCreated is published when an owner lists a new item.
	TopicItemCreated = "item.created"
	// TopicItemDeactivated is published when an item is withdrawn.
	TopicItemDeactivated = "item.deactivated"
)

// ItemCreatedEvent is published after a new Item is persisted.
// Consumers subscribe via EventBus.Subscribe(ctx, events.TopicItemCreated).
type ItemCreatedEvent struct {
	EventID     uuid.UUID `json:"event_id"` // Unique publish-time identifier for deduplication
	Version     int       `json:"version"`  // Schema version; increment on breaking changes
	ItemID      uuid.UUID `json:"item_id"`
	OwnerID     uuid.UUID `json:"owner_id"`
	CategoryID  uuid.UUID `json:"category_id"`
	Title       string    `json:"title"`
	PricePerDay int64     `json:"price_per_day"` // minor units
	OccurredAt  time.Time `json:"occurred_at"`
}

// ItemDeactivatedEvent is published after an item is soft-deleted.
type ItemDeactivatedEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	Version    int       `json:"version"`
	ItemID     uuid.UUID `json:"item_id"`
	OwnerID    uuid.UUID `json:"owner_id"`
	OccurredAt time.Time `json:"occurred_at"`
}
