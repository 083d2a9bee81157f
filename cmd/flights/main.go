package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"flights/cfg"
	"flights/internal/flight"
	"flights/pkg/cache"
	"flights/pkg/events"
	"flights/pkg/flightclient"
	"flights/pkg/idgen"
	"flights/pkg/logger"
	"flights/pkg/middleware"
	"flights/pkg/telemetry"

	_ "flights/cmd/flights/docs" // swagger docs

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
)

// @title           Flight Offers API
// @version         1.0
// @description     Aggregates flight offers from several providers, filters them and books them.
// @BasePath        /
// @schemes         http
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ============
	// config
	// ============
	config, errCfg := cfg.Load()
	if errCfg != nil {
		log.Fatal(errCfg)
	}

	// ============
	// logger
	// ============
	zlogger := logger.NewZeroLog(config.AppEnv)

	// ============
	// Otel
	// ============
	shutdownOtel, err := telemetry.Init(ctx, telemetry.Config{
		Endpoint:    config.OtelConfig.Endpoint,
		ServiceName: config.OtelConfig.ServiceName,
		Environment: config.AppEnv,
	}, zlogger)
	if err != nil {
		log.Fatalf("failed to initialize OpenTelemetry: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownOtel(ctx); err != nil {
			zlogger.Error("failed to shutdown OpenTelemetry", logger.Err(err))
		}
	}()

	metrics, err := flight.NewMetrics(otel.Meter("flights/internal/flight"))
	if err != nil {
		log.Fatalf("failed to create metrics: %v", err)
	}

	// ============
	// Cache
	// ============
	var store cache.Cache
	switch config.CacheConfig.Driver {
	case cfg.CacheDriverRedis:
		store = cache.NewRedisCache(config.RedisConfig.Addr(), config.RedisConfig.Password)
	default:
		store = cache.NewMemoryCache()
	}

	// ============
	// Booking references & events
	// ============
	ids, err := idgen.NewSnowflakeGenerator(config.SnowflakeNodeID)
	if err != nil {
		log.Fatal(err)
	}

	var publisher events.Publisher = events.NopPublisher{}
	if len(config.KafkaConfig.Brokers) > 0 {
		publisher = events.NewKafkaProducer(config.KafkaConfig.Brokers, config.KafkaConfig.BookingTopic)
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			zlogger.Error("failed to close event publisher", logger.Err(err))
		}
	}()

	// ============
	// Providers
	// ============
	providers, err := buildProviders(config, zlogger)
	if err != nil {
		log.Fatal(err)
	}
	registry, err := flight.NewRegistry(providers...)
	if err != nil {
		log.Fatal(err)
	}

	// ============
	// Internal Service
	// ============
	aggregator := flight.NewAggregator(registry, config.AggregationConfig.ProviderTimeout, zlogger, metrics)
	offerCache := flight.NewOfferCache(store, zlogger, metrics)
	dispatcher := flight.NewDispatcher(registry, zlogger, metrics)
	flightSvc := flight.NewService(aggregator, offerCache, dispatcher, ids, publisher, flight.ServiceConfig{
		CacheTTL:           config.CacheConfig.TTL,
		AggregationTimeout: config.AggregationConfig.Timeout,
		BookingTimeout:     config.AggregationConfig.ProviderTimeout,
	}, zlogger)
	offerHandler := flight.NewOfferHandler(flightSvc, zlogger)

	// ============
	// HTTP
	// ============
	if config.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware(config.OtelConfig.ServiceName))
	r.Use(middleware.RequestLogger(zlogger))

	offerHandler.RegisterRoutes(r)
	initSwagger(r)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", config.AppPort),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		zlogger.Info("http server listening",
			logger.Field{Key: "addr", Value: srv.Addr},
			logger.Field{Key: "providers", Value: registry.Len()},
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	zlogger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlogger.Error("http server shutdown failed", logger.Err(err))
	}
}

func buildProviders(config *cfg.Config, zlogger logger.Client) ([]flight.Provider, error) {
	providers := []flight.Provider{
		flightclient.NewAviaOneClient(config.AviaOneClientConfig.Latency, zlogger),
		flightclient.NewAviaTwoClient(config.AviaTwoClientConfig.Latency, zlogger),
	}

	if config.RemoteClientConfig.BaseURL != "" {
		httpClient := &http.Client{
			Timeout: 5 * time.Second,
		}
		providers = append(providers, flightclient.NewRemoteClient(
			flight.ProviderID(config.RemoteClientConfig.ProviderID),
			httpClient,
			config.RemoteClientConfig.BaseURL,
			zlogger,
		))
	}

	for _, path := range config.CatalogFiles {
		c, err := flightclient.LoadCatalogClient(path, zlogger)
		if err != nil {
			return nil, err
		}
		providers = append(providers, c)
	}

	return providers, nil
}

func initSwagger(r *gin.Engine) {
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/docs", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		html := `<!DOCTYPE html>
<html>
<head>
    <title>Flight Offers API</title>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1">
</head>
<body>
    <script id="api-reference" data-url="/swagger/doc.json"></script>
    <script src="https://cdn.jsdelivr.net/npm/@scalar/api-reference"></script>
</body>
</html>`
		c.String(200, html)
	})
}
