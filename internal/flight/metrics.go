package flight

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const instrumentationName = "flights/internal/flight"

type Metrics struct {
	providerCalls   metric.Int64Counter
	providerLatency metric.Float64Histogram
	cacheLookups    metric.Int64Counter
	bookings        metric.Int64Counter
}

func NewMetrics(meter metric.Meter) (*Metrics, error) {
	providerCalls, err := meter.Int64Counter("flight.provider.calls",
		metric.WithDescription("Provider fetches by outcome"))
	if err != nil {
		return nil, err
	}
	providerLatency, err := meter.Float64Histogram("flight.provider.duration",
		metric.WithDescription("Provider fetch duration"),
		metric.WithUnit("ms"))
	if err != nil {
		return nil, err
	}
	cacheLookups, err := meter.Int64Counter("flight.cache.lookups",
		metric.WithDescription("Offer cache lookups by result"))
	if err != nil {
		return nil, err
	}
	bookings, err := meter.Int64Counter("flight.bookings",
		metric.WithDescription("Booking attempts by outcome"))
	if err != nil {
		return nil, err
	}

	return &Metrics{
		providerCalls:   providerCalls,
		providerLatency: providerLatency,
		cacheLookups:    cacheLookups,
		bookings:        bookings,
	}, nil
}

// NewNopMetrics records nothing.
func NewNopMetrics() *Metrics {
	m, _ := NewMetrics(noop.NewMeterProvider().Meter(instrumentationName))
	return m
}

func (m *Metrics) recordProvider(ctx context.Context, o ProviderOutcome, d time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("provider", o.Provider),
		attribute.String("status", string(o.Status)),
	)
	m.providerCalls.Add(ctx, 1, attrs)
	m.providerLatency.Record(ctx, float64(d)/float64(time.Millisecond), attrs)
}

func (m *Metrics) recordCache(ctx context.Context, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
}

func (m *Metrics) recordBooking(ctx context.Context, providerID ProviderID, err error) {
	status := "success"
	if err != nil {
		status = "failed"
	}
	m.bookings.Add(ctx, 1, metric.WithAttributes(
		attribute.Int("provider_id", int(providerID)),
		attribute.String("status", status),
	))
}
