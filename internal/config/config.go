// Package config loads service settings from environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultBatchSize  = 5
	maxBatchSize      = 50
	defaultBatchDelay = 250 * time.Millisecond
	maxBatchDelay     = time.Second
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	MeetingsSource  string
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Geocoder configuration.
	GeocoderBaseURL   string
	GeocoderUserAgent string
	GeocoderTimeout   time.Duration
	GeocodeBatchSize  int
	GeocodeBatchDelay time.Duration
	GeocodeSeedFile   string

	// ReloadCron is a cron expression for scheduled catalog reloads.
	// Empty disables scheduling.
	ReloadCron string

	// Kafka diagnostics sink. Disabled unless a topic is set.
	KafkaBrokers   []string
	KafkaDiagTopic string
}

// DiagnosticsEnabled reports whether the Kafka diagnostics sink is configured.
func (c *Config) DiagnosticsEnabled() bool {
	return c.KafkaDiagTopic != ""
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	geocoderTimeout, err := parseDuration("GEOCODER_TIMEOUT", "5s")
	if err != nil {
		return nil, err
	}

	batchSize, err := parseBatchSize()
	if err != nil {
		return nil, err
	}

	batchDelay, err := parseBatchDelay()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		MeetingsSource:  os.Getenv("MEETINGS_CSV_URL"),
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		GeocoderBaseURL:   envOrDefault("GEOCODER_BASE_URL", "https://nominatim.openstreetmap.org/search"),
		GeocoderUserAgent: envOrDefault("GEOCODER_USER_AGENT", "meeting-locator/1.0"),
		GeocoderTimeout:   geocoderTimeout,
		GeocodeBatchSize:  batchSize,
		GeocodeBatchDelay: batchDelay,
		GeocodeSeedFile:   os.Getenv("GEOCODE_SEED_FILE"),

		ReloadCron: os.Getenv("RELOAD_CRON"),

		KafkaBrokers:   parseBrokers(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaDiagTopic: os.Getenv("KAFKA_DIAG_TOPIC"),
	}

	if cfg.MeetingsSource == "" {
		return nil, errors.New("MEETINGS_CSV_URL is required")
	}
	if cfg.GeocoderUserAgent == "" {
		return nil, errors.New("GEOCODER_USER_AGENT must not be empty")
	}
	if cfg.DiagnosticsEnabled() && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_DIAG_TOPIC is set but KAFKA_BROKERS is empty")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDuration(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, fallback))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parseBatchSize() (int, error) {
	s := os.Getenv("GEOCODE_BATCH_SIZE")
	if s == "" {
		return defaultBatchSize, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > maxBatchSize {
		return 0, fmt.Errorf("GEOCODE_BATCH_SIZE must be between 1 and %d", maxBatchSize)
	}
	return n, nil
}

func parseBatchDelay() (time.Duration, error) {
	s := os.Getenv("GEOCODE_BATCH_DELAY")
	if s == "" {
		return defaultBatchDelay, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 || d > maxBatchDelay {
		return 0, fmt.Errorf("GEOCODE_BATCH_DELAY must be between 0 and %s", maxBatchDelay)
	}
	return d, nil
}

func parseBrokers(s string) []string {
	var brokers []string
	for _, b := range strings.Split(s, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
