package telemetry

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func collectSums(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Sum[int64] {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("collect: %v", err)
	}
	out := make(map[string]metricdata.Sum[int64])
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if sum, ok := m.Data.(metricdata.Sum[int64]); ok {
				out[m.Name] = sum
			}
		}
	}
	return out
}

func TestBookingMetrics_Records(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer mp.Shutdown(context.Background()) //nolint:errcheck

	m, err := NewBookingMetricsWithMeter(mp.Meter("test"))
	if err != nil {
		t.Fatalf("NewBookingMetricsWithMeter: %v", err)
	}

	ctx := context.Background()
	m.RentalRequested(ctx)
	m.RentalRequested(ctx)
	m.Conflict(ctx, "date_overlap")
	m.Transition(ctx, "pending", "approved")
	m.ReviewSubmitted(ctx)
	m.ItemViewed(ctx)

	sums := collectSums(t, reader)

	if got := sums["rental_requests_total"].DataPoints[0].Value; got != 2 {
		t.Errorf("rental_requests_total = %d, want 2", got)
	}

	conflict := sums["rental_conflicts_total"].DataPoints[0]
	if reason, _ := conflict.Attributes.Value(attribute.Key("reason")); reason.AsString() != "date_overlap" {
		t.Errorf("conflict reason = %q, want date_overlap", reason.AsString())
	}

	tr := sums["rental_transitions_total"].DataPoints[0]
	from, _ := tr.Attributes.Value(attribute.Key("from"))
	to, _ := tr.Attributes.Value(attribute.Key("to"))
	if from.AsString() != "pending" || to.AsString() != "approved" {
		t.Errorf("transition attrs = %s→%s", from.AsString(), to.AsString())
	}

	for _, name := range []string{"reviews_submitted_total", "item_views_total"} {
		if got := sums[name].DataPoints[0].Value; got != 1 {
			t.Errorf("%s = %d, want 1", name, got)
		}
	}
}

func TestBookingMetrics_NilSafe(t *testing.T) {
	var m *BookingMetrics
	ctx := context.Background()
	m.RentalRequested(ctx)
	m.Conflict(ctx, "self_rental")
	m.Transition(ctx, "approved", "active")
	m.ReviewSubmitted(ctx)
	m.ItemViewed(ctx)
}
