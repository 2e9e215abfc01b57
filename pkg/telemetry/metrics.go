package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/rentrobe/rentrobe"

// BookingMetrics holds the counters recorded by the catalog and rental
// application services. A nil *BookingMetrics is valid and records nothing,
// so services under test can be built without a meter provider.
type BookingMetrics struct {
	requests    metric.Int64Counter
	conflicts   metric.Int64Counter
	transitions metric.Int64Counter
	reviews     metric.Int64Counter
	views       metric.Int64Counter
}

// NewBookingMetricsWithMeter registers the booking counters on meter.
func NewBookingMetricsWithMeter(meter metric.Meter) (*BookingMetrics, error) {
	var (
		m   BookingMetrics
		err error
	)
	if m.requests, err = meter.Int64Counter("rental_requests_total",
		metric.WithDescription("Rental requests accepted in pending state")); err != nil {
		return nil, fmt.Errorf("rental_requests_total: %w", err)
	}
	if m.conflicts, err = meter.Int64Counter("rental_conflicts_total",
		metric.WithDescription("Rental requests or transitions refused with a conflict")); err != nil {
		return nil, fmt.Errorf("rental_conflicts_total: %w", err)
	}
	if m.transitions, err = meter.Int64Counter("rental_transitions_total",
		metric.WithDescription("Rental status transitions committed")); err != nil {
		return nil, fmt.Errorf("rental_transitions_total: %w", err)
	}
	if m.reviews, err = meter.Int64Counter("reviews_submitted_total",
		metric.WithDescription("Reviews folded into item ratings")); err != nil {
		return nil, fmt.Errorf("reviews_submitted_total: %w", err)
	}
	if m.views, err = meter.Int64Counter("item_views_total",
		metric.WithDescription("Item detail views")); err != nil {
		return nil, fmt.Errorf("item_views_total: %w", err)
	}
	return &m, nil
}

// RentalRequested counts a newly created pending rental.
func (m *BookingMetrics) RentalRequested(ctx context.Context) {
	if m == nil {
		return
	}
	m.requests.Add(ctx, 1)
}

// Conflict counts a refused request; reason is a short error code such as
// "date_overlap" or "self_rental".
func (m *BookingMetrics) Conflict(ctx context.Context, reason string) {
	if m == nil {
		return
	}
	m.conflicts.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
}

// Transition counts a committed status change.
func (m *BookingMetrics) Transition(ctx context.Context, from, to string) {
	if m == nil {
		return
	}
	m.transitions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("from", from),
		attribute.String("to", to),
	))
}

// ReviewSubmitted counts a stored review.
func (m *BookingMetrics) ReviewSubmitted(ctx context.Context) {
	if m == nil {
		return
	}
	m.reviews.Add(ctx, 1)
}

// ItemViewed counts an item detail fetch.
func (m *BookingMetrics) ItemViewed(ctx context.Context) {
	if m == nil {
		return
	}
	m.views.Add(ctx, 1)
}
