package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/connectivity"

	"flights/pkg/logger"
)

func TestInit_WithoutEndpoint(t *testing.T) {
	shutdown, err := Init(context.Background(), Config{ServiceName: "flights"}, logger.NewNop())

	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
	assert.Contains(t, otel.GetTextMapPropagator().Fields(), "traceparent")
}

func TestNewResource(t *testing.T) {
	res, err := newResource(context.Background(), Config{ServiceName: "flights", Environment: "test"})

	require.NoError(t, err)
	assert.Contains(t, res.Attributes(), semconv.ServiceName("flights"))
	assert.Contains(t, res.Attributes(), semconv.DeploymentEnvironment("test"))
}

func TestInit_ClosesConnectionWhenExporterFails(t *testing.T) {
	origDial, origMetric := dialCollector, newMetricExporter
	t.Cleanup(func() { dialCollector, newMetricExporter = origDial, origMetric })

	var conn *grpc.ClientConn
	dialCollector = func(endpoint string) (*grpc.ClientConn, error) {
		c, err := origDial(endpoint)
		conn = c
		return c, err
	}
	newMetricExporter = func(context.Context, ...otlpmetricgrpc.Option) (*otlpmetricgrpc.Exporter, error) {
		return nil, errors.New("exporter unavailable")
	}

	shutdown, err := Init(context.Background(), Config{Endpoint: "localhost:4317", ServiceName: "flights"}, logger.NewNop())

	assert.Nil(t, shutdown)
	assert.ErrorContains(t, err, "failed to create metric exporter")
	require.NotNil(t, conn)
	assert.Equal(t, connectivity.Shutdown, conn.GetState())
}
