package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/rentrobe/rentrobe/pkg/logger"
)

// Metadata keys set on every domain event message.
const (
	MetadataEventID      = "event_id"
	MetadataEventVersion = "event_version"
)

// NewMessage marshals event as the JSON payload of a new message stamped
// with the event's id and schema version.
func NewMessage(eventID uuid.UUID, version int, event any) (*message.Message, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("events: marshal %T: %w", event, err)
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set(MetadataEventID, eventID.String())
	msg.Metadata.Set(MetadataEventVersion, strconv.Itoa(version))
	return msg, nil
}

// Decode unmarshals a message payload into the event type T.
func Decode[T any](msg *message.Message) (T, error) {
	var evt T
	if err := json.Unmarshal(msg.Payload, &evt); err != nil {
		return evt, fmt.Errorf("events: decode %T: %w", evt, err)
	}
	return evt, nil
}

// Version returns the event_version stamped on msg, 0 when absent or bad.
func Version(msg *message.Message) int {
	v, err := strconv.Atoi(msg.Metadata.Get(MetadataEventVersion))
	if err != nil {
		return 0
	}
	return v
}

func injectTrace(ctx context.Context, msgs []*message.Message) {
	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)
	for _, msg := range msgs {
		for k, v := range carrier {
			msg.Metadata.Set(k, v)
		}
	}
}

func extractTrace(ctx context.Context, msg *message.Message) context.Context {
	return otel.GetTextMapPropagator().Extract(ctx, propagation.MapCarrier(msg.Metadata))
}

// slogAdapter routes watermill's logging through logger.Logger. Watermill's
// trace level is dropped.
type slogAdapter struct{ log logger.Logger }

func (a *slogAdapter) Error(msg string, err error, fields watermill.LogFields) {
	a.log.Error(msg, append(args(fields), "error", err)...)
}

func (a *slogAdapter) Info(msg string, fields watermill.LogFields) {
	a.log.Info(msg, args(fields)...)
}

func (a *slogAdapter) Debug(msg string, fields watermill.LogFields) {
	a.log.Debug(msg, args(fields)...)
}

func (a *slogAdapter) Trace(string, watermill.LogFields) {}

func (a *slogAdapter) With(fields watermill.LogFields) watermill.LoggerAdapter {
	return &slogAdapter{log: a.log.With(args(fields)...)}
}

func args(fields watermill.LogFields) []any {
	out := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		out = append(out, k, v)
	}
	return out
}
