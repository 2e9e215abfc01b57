package events

import (
	"context"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
)

// PoisonTopic receives messages whose handler still failed after every
// retry, with the source topic and failure in metadata.
const PoisonTopic = "rentrobe_poison"

// Metadata keys set on quarantined messages.
const (
	MetadataPoisonTopic  = "poison_topic"
	MetadataPoisonReason = "poison_reason"
)

const errBuffer = 100

// Handler processes one event. A non-nil error triggers a retry.
type Handler func(ctx context.Context, msg *message.Message) error

// Subscribe consumes topic in the background. Each message's context carries
// the publisher's trace. A handler that still fails after the retry policy
// (or panics) gets its message moved to PoisonTopic and acknowledged; the
// failure is also sent on the returned channel, which callers must drain.
// When the poison write itself fails the message is nacked for redelivery.
//
// In-flight handlers finish before Close returns.
func (q *EventBus) Subscribe(ctx context.Context, topic string, handler Handler) (<-chan error, error) {
	ch, err := q.subscriber.Subscribe(ctx, topic)
	if err != nil {
		return nil, fmt.Errorf("events: subscribe to %s: %w", topic, err)
	}
	process := q.withRetry(handler)
	errCh := make(chan error, errBuffer)

	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		defer close(errCh)

		for msg := range ch {
			msg.SetContext(extractTrace(ctx, msg))
			if _, err := process(msg); err != nil {
				err = fmt.Errorf("events: %s message %s: %w", topic, msg.UUID, err)
				q.quarantine(msg, topic, err)
				select {
				case errCh <- err:
				default:
					q.log.ErrorContext(msg.Context(), "events: error channel full, dropping error",
						"error", err, "topic", topic)
				}
				continue
			}
			msg.Ack()
		}
	}()

	return errCh, nil
}

// withRetry adapts handler to a watermill handler with panic recovery and
// exponential retries.
func (q *EventBus) withRetry(handler Handler) message.HandlerFunc {
	h := func(msg *message.Message) ([]*message.Message, error) {
		return nil, handler(msg.Context(), msg)
	}
	retry := middleware.Retry{
		MaxRetries:      q.retry.MaxRetries,
		InitialInterval: q.retry.InitialInterval,
		Multiplier:      2,
		MaxInterval:     time.Minute,
		Logger:          q.wlog,
	}
	return retry.Middleware(middleware.Recoverer(h))
}

// quarantine copies msg to PoisonTopic and acks it. A failed copy nacks msg
// so it is redelivered instead of lost.
func (q *EventBus) quarantine(msg *message.Message, topic string, cause error) {
	poison := msg.Copy()
	poison.Metadata.Set(MetadataPoisonTopic, topic)
	poison.Metadata.Set(MetadataPoisonReason, cause.Error())
	if err := q.sink.Publish(PoisonTopic, poison); err != nil {
		q.log.ErrorContext(msg.Context(), "events: poison publish failed, message will be redelivered",
			"topic", topic, "message_id", msg.UUID, "error", err)
		msg.Nack()
		return
	}
	q.log.WarnContext(msg.Context(), "events: message quarantined",
		"topic", topic, "message_id", msg.UUID, "event_id", msg.Metadata.Get(MetadataEventID))
	msg.Ack()
}
