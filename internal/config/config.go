package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	LogFile         string
	ShutdownTimeout time.Duration
	StaticDir       string

	// NeoWs catalog configuration.
	NASAAPIKey     string
	NeoWsBaseURL   string
	NeoWsTimeout   time.Duration
	NeoWsMaxPages  int
	NeoWsCacheSize int

	// Optional Kafka sink for simulation results.
	KafkaEnabled      bool
	KafkaBrokers      []string
	KafkaResultsTopic string
}

const maxSearchPages = 1000

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	neowsTimeout, err := time.ParseDuration(sharedcfg.EnvOrDefault("NEOWS_TIMEOUT", "30s"))
	if err != nil || neowsTimeout <= 0 {
		return nil, errors.New("invalid NEOWS_TIMEOUT")
	}

	maxPages, err := parseIntEnv("NEOWS_MAX_PAGES", 100)
	if err != nil || maxPages < 1 || maxPages > maxSearchPages {
		return nil, fmt.Errorf("invalid NEOWS_MAX_PAGES: must be between 1 and %d", maxSearchPages)
	}

	cacheSize, err := parseIntEnv("NEOWS_CACHE_SIZE", 256)
	if err != nil || cacheSize < 0 {
		return nil, errors.New("invalid NEOWS_CACHE_SIZE: must be a non-negative integer")
	}

	kafkaEnabled := false
	if v := os.Getenv("KAFKA_ENABLED"); v != "" {
		kafkaEnabled, err = strconv.ParseBool(v)
		if err != nil {
			return nil, errors.New("invalid KAFKA_ENABLED")
		}
	}

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		LogFile:         os.Getenv("LOG_FILE"),
		ShutdownTimeout: shutdownTimeout,
		StaticDir:       os.Getenv("STATIC_DIR"),

		NASAAPIKey:     sharedcfg.EnvOrDefault("NASA_API_KEY", "DEMO_KEY"),
		NeoWsBaseURL:   sharedcfg.EnvOrDefault("NEOWS_BASE_URL", "https://api.nasa.gov/neo/rest/v1"),
		NeoWsTimeout:   neowsTimeout,
		NeoWsMaxPages:  maxPages,
		NeoWsCacheSize: cacheSize,

		KafkaEnabled:      kafkaEnabled,
		KafkaBrokers:      sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaResultsTopic: sharedcfg.EnvOrDefault("KAFKA_RESULTS_TOPIC", "impact-simulations"),
	}

	if cfg.NASAAPIKey == "" {
		return nil, errors.New("NASA_API_KEY is required")
	}
	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is empty")
	}
	if cfg.KafkaEnabled && cfg.KafkaResultsTopic == "" {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_RESULTS_TOPIC is empty")
	}

	return cfg, nil
}

func parseIntEnv(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	return strconv.Atoi(s)
}
