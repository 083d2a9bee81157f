package telemetry

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"flights/pkg/logger"
)

type Config struct {
	Endpoint    string
	ServiceName string
	Environment string
}

type ShutdownFunc func(context.Context) error

var (
	dialCollector = func(endpoint string) (*grpc.ClientConn, error) {
		return grpc.NewClient(endpoint, grpc.WithTransportCredentials(insecure.NewCredentials()))
	}
	newMetricExporter = otlpmetricgrpc.New
)

// Init installs global tracer and meter providers exporting over OTLP gRPC.
// With no endpoint configured only the propagator is installed and the globals stay no-op.
func Init(ctx context.Context, config Config, log logger.Client) (ShutdownFunc, error) {
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	if config.Endpoint == "" {
		log.Info("OpenTelemetry export disabled, no OTLP endpoint configured")
		return func(context.Context) error { return nil }, nil
	}

	conn, err := dialCollector(config.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to create gRPC connection to collector: %w", err)
	}

	traceExporter, err := otlptracegrpc.New(ctx, otlptracegrpc.WithGRPCConn(conn))
	if err != nil {
		return nil, closeOnError(conn, fmt.Errorf("failed to create trace exporter: %w", err))
	}

	metricExporter, err := newMetricExporter(ctx, otlpmetricgrpc.WithGRPCConn(conn))
	if err != nil {
		_ = traceExporter.Shutdown(ctx)
		return nil, closeOnError(conn, fmt.Errorf("failed to create metric exporter: %w", err))
	}

	res, err := newResource(ctx, config)
	if err != nil {
		_ = traceExporter.Shutdown(ctx)
		_ = metricExporter.Shutdown(ctx)
		return nil, closeOnError(conn, err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(traceExporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.AlwaysSample())),
	)
	otel.SetTracerProvider(tp)

	mp := metric.NewMeterProvider(
		metric.WithReader(metric.NewPeriodicReader(metricExporter)),
		metric.WithResource(res),
	)
	otel.SetMeterProvider(mp)

	log.Info("OpenTelemetry initialized - sending to OTLP collector",
		logger.Field{Key: "otlp_endpoint", Value: config.Endpoint},
		logger.Field{Key: "service", Value: config.ServiceName},
	)

	shutdown := func(ctx context.Context) error {
		var errs []error
		if err := tp.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer shutdown failed: %w", err))
		}
		if err := mp.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter shutdown failed: %w", err))
		}
		if err := conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("collector connection close failed: %w", err))
		}
		return errors.Join(errs...)
	}

	return shutdown, nil
}

func closeOnError(conn *grpc.ClientConn, err error) error {
	if cerr := conn.Close(); cerr != nil {
		return errors.Join(err, fmt.Errorf("collector connection close failed: %w", cerr))
	}
	return err
}

func newResource(ctx context.Context, config Config) (*resource.Resource, error) {
	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(config.ServiceName),
			semconv.DeploymentEnvironment(config.Environment),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}
	return res, nil
}
