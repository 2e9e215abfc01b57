package events_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/rentrobe/rentrobe/services/rental/domain/events"
)

func jsonKeys(t *testing.T, v any) map[string]any {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("json.Marshal failed: %v", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal to map failed: %v", err)
	}
	return raw
}

func TestEventFieldNames(t *testing.T) {
	now := time.Now().UTC()
	tests := []struct {
		name   string
		event  any
		fields []string
	}{
		{
			name:   "rental requested",
			event:  events.RentalRequestedEvent{EventID: uuid.New(), Version: 1, RentalID: uuid.New(), StartDate: "2024-06-01", EndDate: "2024-06-03", TotalAmount: 160000, OccurredAt: now},
			fields: []string{"event_id", "version", "rental_id", "item_id", "renter_id", "owner_id", "start_date", "end_date", "total_amount", "occurred_at"},
		},
		{
			name:   "status changed",
			event:  events.RentalStatusChangedEvent{EventID: uuid.New(), Version: 1, From: "approved", To: "active", ItemStatus: "rented", OccurredAt: now},
			fields: []string{"event_id", "version", "rental_id", "item_id", "actor_id", "from", "to", "item_status", "occurred_at"},
		},
		{
			name:   "review submitted",
			event:  events.ReviewSubmittedEvent{EventID: uuid.New(), Version: 1, Rating: 5, ItemRating: 4.5, ReviewsCount: 2, OccurredAt: now},
			fields: []string{"event_id", "version", "review_id", "rental_id", "item_id", "rating", "item_rating", "reviews_count", "occurred_at"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := jsonKeys(t, tt.event)
			for _, f := range tt.fields {
				if _, ok := raw[f]; !ok {
					t.Errorf("expected JSON field %q", f)
				}
			}
		})
	}
}

func TestStatusChanged_OmitsUnchangedItemStatus(t *testing.T) {
	raw := jsonKeys(t, events.RentalStatusChangedEvent{From: "pending", To: "approved"})
	if _, ok := raw["item_status"]; ok {
		t.Error("item_status must be omitted when the item did not change")
	}
}

func TestTopics(t *testing.T) {
	if events.TopicRentalRequested != "rental.requested" ||
		events.TopicRentalStatusChanged != "rental.status_changed" ||
		events.TopicReviewSubmitted != "review.submitted" {
		t.Fatal("topic names changed; subscribers depend on them")
	}
}
