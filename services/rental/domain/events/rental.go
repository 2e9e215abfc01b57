package events

import (
	"time"

	"github.com/google/uuid"
)

// Topics published by the rental context.
const (
	TopicRentalRequested     = "rental.requested"
	TopicRentalStatusChanged = "rental.status_changed"
	TopicReviewSubmitted     = "review.submitted"
)

// RentalRequestedEvent is published when a renter's request is stored as pending.
type RentalRequestedEvent struct {
	EventID     uuid.UUID `json:"event_id"`
	Version     int       `json:"version"`
	RentalID    uuid.UUID `json:"rental_id"`
	ItemID      uuid.UUID `json:"item_id"`
	RenterID    uuid.UUID `json:"renter_id"`
	OwnerID     uuid.UUID `json:"owner_id"`
	StartDate   string    `json:"start_date"`
	EndDate     string    `json:"end_date"`
	TotalAmount int64     `json:"total_amount"` // minor units
	OccurredAt  time.Time `json:"occurred_at"`
}

// RentalStatusChangedEvent is published on every committed transition.
// ItemStatus is set when the transition changed the item's status.
type RentalStatusChangedEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	Version    int       `json:"version"`
	RentalID   uuid.UUID `json:"rental_id"`
	ItemID     uuid.UUID `json:"item_id"`
	ActorID    uuid.UUID `json:"actor_id"` // uuid.Nil for system transitions
	From       string    `json:"from"`
	To         string    `json:"to"`
	ItemStatus string    `json:"item_status,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ReviewSubmittedEvent is published after a review is folded into the item rating.
type ReviewSubmittedEvent struct {
	EventID      uuid.UUID `json:"event_id"`
	Version      int       `json:"version"`
	ReviewID     uuid.UUID `json:"review_id"`
	RentalID     uuid.UUID `json:"rental_id"`
	ItemID       uuid.UUID `json:"item_id"`
	Rating       int       `json:"rating"`
	ItemRating   float64   `json:"item_rating"`
	ReviewsCount int       `json:"reviews_count"`
	OccurredAt   time.Time `json:"occurred_at"`
}
