package events

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"

	"github.com/rentrobe/rentrobe/pkg/config"
	"github.com/rentrobe/rentrobe/pkg/logger"
)

const testTopic = "rental.status_changed"

func nopLogger() logger.Logger {
	return logger.New(&config.Config{LogLevel: "error"})
}

// newTestBus wires an EventBus over an in-process channel pub/sub.
func newTestBus(t *testing.T) (*EventBus, *gochannel.GoChannel) {
	t.Helper()
	pubsub := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 16}, watermill.NopLogger{})
	log := nopLogger()
	bus := &EventBus{
		publisher:  pubsub,
		sink:       pubsub,
		subscriber: pubsub,
		wlog:       &slogAdapter{log: log},
		log:        log,
		retry:      RetryPolicy{MaxRetries: 2, InitialInterval: time.Millisecond},
	}
	t.Cleanup(func() { _ = bus.Close() })
	return bus, pubsub
}

func publishEvent(t *testing.T, bus *EventBus) uuid.UUID {
	t.Helper()
	id := uuid.New()
	msg, err := NewMessage(id, 1, statusEvent{RentalID: "r-1", Status: "active"})
	if err != nil {
		t.Fatalf("NewMessage: %v", err)
	}
	if err := bus.Publish(context.Background(), testTopic, msg); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	return id
}

func TestSubscribe_DeliversEvent(t *testing.T) {
	bus, _ := newTestBus(t)
	got := make(chan string, 1)

	_, err := bus.Subscribe(context.Background(), testTopic, func(_ context.Context, msg *message.Message) error {
		got <- msg.Metadata.Get(MetadataEventID)
		return nil
	})
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	id := publishEvent(t, bus)

	select {
	case eventID := <-got:
		if eventID != id.String() {
			t.Fatalf("event_id = %s, want %s", eventID, id)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("event not delivered")
	}
}

func TestSubscribe_RetriesThenSucceeds(t *testing.T) {
	bus, _ := newTestBus(t)
	var calls atomic.Int32
	done := make(chan struct{})

	_, err := bus.Subscribe(context.Background(), testTopic, func(context.Context, *message.Message) error {
		if calls.Add(1) < 3 {
			return errors.New("cache unavailable")
		}
		close(done)
		return nil
	})
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	publishEvent(t, bus)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("handler never succeeded; calls=%d", calls.Load())
	}
}

func TestSubscribe_QuarantinesPoisonMessage(t *testing.T) {
	tests := []struct {
		name    string
		handler Handler
		reason  string
	}{
		{"handler keeps failing", func(context.Context, *message.Message) error {
			return errors.New("item cache down")
		}, "item cache down"},
		{"handler panics", func(context.Context, *message.Message) error {
			panic("nil listing")
		}, "nil listing"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bus, pubsub := newTestBus(t)
			poison, err := pubsub.Subscribe(context.Background(), PoisonTopic)
			if err != nil {
				t.Fatalf("subscribe poison: %v", err)
			}

			var calls atomic.Int32
			errCh, err := bus.Subscribe(context.Background(), testTopic, func(ctx context.Context, msg *message.Message) error {
				calls.Add(1)
				return tt.handler(ctx, msg)
			})
			if err != nil {
				t.Fatalf("Subscribe: %v", err)
			}
			id := publishEvent(t, bus)

			select {
			case msg := <-poison:
				msg.Ack()
				if got := msg.Metadata.Get(MetadataPoisonTopic); got != testTopic {
					t.Errorf("poison_topic = %q, want %q", got, testTopic)
				}
				if got := msg.Metadata.Get(MetadataEventID); got != id.String() {
					t.Errorf("event_id = %q, want %s", got, id)
				}
				if !strings.Contains(msg.Metadata.Get(MetadataPoisonReason), tt.reason) {
					t.Errorf("poison_reason %q does not mention %q", msg.Metadata.Get(MetadataPoisonReason), tt.reason)
				}
			case <-time.After(2 * time.Second):
				t.Fatal("message not quarantined")
			}

			select {
			case err := <-errCh:
				if !strings.Contains(err.Error(), testTopic) {
					t.Errorf("error should name the topic: %v", err)
				}
			case <-time.After(time.Second):
				t.Fatal("failure not reported on error channel")
			}
			if got := calls.Load(); got != 3 {
				t.Errorf("handler calls = %d, want 3 (first try plus two retries)", got)
			}
		})
	}
}
