package events

import (
	"context"
	"testing"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

type statusEvent struct {
	RentalID string `json:"rental_id"`
	Status   string `json:"status"`
}

func TestNewMessage_StampsMetadata(t *testing.T) {
	id := uuid.New()
	msg, err := NewMessage(id, 2, statusEvent{RentalID: "r-1", Status: "approved"})
	if err != nil {
		t.Fatalf("NewMessage: %v", err)
	}
	if got := msg.Metadata.Get(MetadataEventID); got != id.String() {
		t.Errorf("event_id: got %q, want %q", got, id.String())
	}
	if got := Version(msg); got != 2 {
		t.Errorf("Version: got %d, want 2", got)
	}

	decoded, err := Decode[statusEvent](msg)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if decoded.RentalID != "r-1" || decoded.Status != "approved" {
		t.Errorf("unexpected decoded event: %+v", decoded)
	}
}

func TestNewMessage_Errors(t *testing.T) {
	if _, err := NewMessage(uuid.New(), 1, make(chan int)); err == nil {
		t.Fatal("expected marshal error for channel payload")
	}
	if _, err := Decode[statusEvent](message.NewMessage("id", []byte("{not json"))); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestVersion_Missing(t *testing.T) {
	if got := Version(message.NewMessage("id", nil)); got != 0 {
		t.Fatalf("expected 0 for unversioned message, got %d", got)
	}
}

func TestTracePropagation(t *testing.T) {
	tp := sdktrace.NewTracerProvider()
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	defer tp.Shutdown(context.Background()) //nolint:errcheck

	ctx, span := otel.Tracer("test").Start(context.Background(), "approve-rental")
	defer span.End()

	msg := message.NewMessage("id", nil)
	injectTrace(ctx, []*message.Message{msg})
	got := trace.SpanContextFromContext(extractTrace(context.Background(), msg))

	if !got.IsValid() || got.TraceID() != span.SpanContext().TraceID() {
		t.Fatalf("trace not restored: want %s, got %s", span.SpanContext().TraceID(), got.TraceID())
	}
}

func TestStartForwarder_RequiresOutboxMode(t *testing.T) {
	bus := &EventBus{useForwarder: false}
	if err := bus.StartForwarder(context.Background()); err == nil {
		t.Fatal("expected error for non-forwarder EventBus")
	}
}

func TestPing_Unconnected(t *testing.T) {
	if err := (&EventBus{}).Ping(context.Background()); err == nil {
		t.Fatal("expected error without a database")
	}
}
