package flight

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"flights/pkg/cache"
	"flights/pkg/logger"
)

func collectSum(t *testing.T, reader *sdkmetric.ManualReader, name string) int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	var total int64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok, "metric %s is not an int64 sum", name)
			for _, dp := range sum.DataPoints {
				total += dp.Value
			}
		}
	}
	return total
}

func TestMetrics_RecordsProviderAndCacheActivity(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	m, err := NewMetrics(mp.Meter("test"))
	require.NoError(t, err)

	a, b := providersAB()
	b.err = errors.New("down")
	r, err := NewRegistry(a, b)
	require.NoError(t, err)

	log := logger.NewNop()
	agg := NewAggregator(r, time.Second, log, m)
	oc := NewOfferCache(cache.NewMemoryCache(), log, m)

	for range 2 {
		_, _, err := oc.GetOrCompute(context.Background(), AllOffersCacheKey, time.Minute, agg.Aggregate)
		require.NoError(t, err)
	}

	assert.Equal(t, int64(2), collectSum(t, reader, "flight.provider.calls"))
	assert.Equal(t, int64(2), collectSum(t, reader, "flight.cache.lookups"))
}

func TestMetrics_RecordsBookings(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	m, err := NewMetrics(mp.Meter("test"))
	require.NoError(t, err)

	a, _ := providersAB()
	r, err := NewRegistry(a)
	require.NoError(t, err)
	d := NewDispatcher(r, logger.NewNop(), m)

	_, _ = d.Book(context.Background(), 1, "ABC123")
	_, _ = d.Book(context.Background(), 1, "missing")
	_, _ = d.Book(context.Background(), 8, "ABC123")

	assert.Equal(t, int64(3), collectSum(t, reader, "flight.bookings"))
}
