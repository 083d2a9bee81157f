package cfg

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	CacheDriverMemory = "memory"
	CacheDriverRedis  = "redis"
)

type RedisConfig struct {
	Host     string
	Port     string
	Password string
}

func (r RedisConfig) Addr() string {
	return r.Host + ":" + r.Port
}

type CacheConfig struct {
	Driver string
	TTL    time.Duration
}

type AggregationConfig struct {
	Timeout         time.Duration
	ProviderTimeout time.Duration
}

type AviaOneClientConfig struct {
	Latency time.Duration
}

type AviaTwoClientConfig struct {
	Latency time.Duration
}

// RemoteClientConfig is optional; an empty BaseURL leaves the remote provider unregistered.
type RemoteClientConfig struct {
	BaseURL    string
	ProviderID int
}

type KafkaConfig struct {
	Brokers      []string
	BookingTopic string
}

type OtelConfig struct {
	Endpoint    string
	ServiceName string
}

type Config struct {
	AppEnv              string
	AppPort             string
	CacheConfig         CacheConfig
	RedisConfig         RedisConfig
	AggregationConfig   AggregationConfig
	AviaOneClientConfig AviaOneClientConfig
	AviaTwoClientConfig AviaTwoClientConfig
	RemoteClientConfig  RemoteClientConfig
	CatalogFiles        []string
	KafkaConfig         KafkaConfig
	OtelConfig          OtelConfig
	SnowflakeNodeID     int64
}

func Load() (*Config, error) {
	var errs []error

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed load cfg: %w", err)
	}

	appEnv := mustEnv("APP_ENV", &errs)
	appPort := envOr("APP_PORT", "8080")

	cacheDriver := envOr("CACHE_DRIVER", CacheDriverMemory)
	var redisCfg RedisConfig
	switch cacheDriver {
	case CacheDriverMemory:
	case CacheDriverRedis:
		redisCfg = RedisConfig{
			Host:     mustEnv("REDIS_HOST", &errs),
			Port:     mustEnv("REDIS_PORT", &errs),
			Password: os.Getenv("REDIS_PASSWORD"),
		}
	default:
		errs = append(errs, fmt.Errorf("invalid env: CACHE_DRIVER=%q (want memory or redis)", cacheDriver))
	}

	cacheTTLMinutes := intEnv("CACHE_TTL_MINUTES", 5, &errs)
	aggregationTimeout := intEnv("AGGREGATION_TIMEOUT_MS", 3000, &errs)
	providerTimeout := intEnv("PROVIDER_TIMEOUT_MS", 2000, &errs)
	aviaOneLatency := intEnv("AVIAONE_LATENCY_MS", 1000, &errs)
	aviaTwoLatency := intEnv("AVIATWO_LATENCY_MS", 200, &errs)
	remoteProviderID := intEnv("REMOTE_PROVIDER_ID", 3, &errs)
	nodeID := intEnv("SNOWFLAKE_NODE_ID", 1, &errs)

	if cacheTTLMinutes <= 0 {
		errs = append(errs, errors.New("invalid env: CACHE_TTL_MINUTES must be positive"))
	}
	if aggregationTimeout <= 0 || providerTimeout <= 0 {
		errs = append(errs, errors.New("invalid env: AGGREGATION_TIMEOUT_MS and PROVIDER_TIMEOUT_MS must be positive"))
	}
	if remoteProviderID <= 0 {
		errs = append(errs, errors.New("invalid env: REMOTE_PROVIDER_ID must be positive"))
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return &Config{
		AppEnv:  appEnv,
		AppPort: appPort,
		CacheConfig: CacheConfig{
			Driver: cacheDriver,
			TTL:    time.Duration(cacheTTLMinutes) * time.Minute,
		},
		RedisConfig: redisCfg,
		AggregationConfig: AggregationConfig{
			Timeout:         time.Duration(aggregationTimeout) * time.Millisecond,
			ProviderTimeout: time.Duration(providerTimeout) * time.Millisecond,
		},
		AviaOneClientConfig: AviaOneClientConfig{
			Latency: time.Duration(aviaOneLatency) * time.Millisecond,
		},
		AviaTwoClientConfig: AviaTwoClientConfig{
			Latency: time.Duration(aviaTwoLatency) * time.Millisecond,
		},
		RemoteClientConfig: RemoteClientConfig{
			BaseURL:    os.Getenv("REMOTE_PROVIDER_BASE_URL"),
			ProviderID: remoteProviderID,
		},
		CatalogFiles: listEnv("PROVIDER_CATALOG_FILES"),
		KafkaConfig: KafkaConfig{
			Brokers:      listEnv("KAFKA_BROKERS"),
			BookingTopic: envOr("KAFKA_BOOKING_TOPIC", "offers.booked"),
		},
		OtelConfig: OtelConfig{
			Endpoint:    os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
			ServiceName: envOr("OTEL_SERVICE_NAME", "flights"),
		},
		SnowflakeNodeID: int64(nodeID),
	}, nil
}

func mustEnv(key string, errs *[]error) string {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		*errs = append(*errs, errors.New("missing env: "+key))
	}
	return value
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func intEnv(key string, fallback int, errs *[]error) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		*errs = append(*errs, errors.New("conversion failed env: "+key))
		return fallback
	}
	return n
}

// listEnv splits a comma separated value, dropping blanks.
func listEnv(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
