package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/robfig/cron/v3"

	httpadapter "github.com/couchcryptid/meeting-locator/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/meeting-locator/internal/adapter/kafka"
	"github.com/couchcryptid/meeting-locator/internal/adapter/nominatim"
	"github.com/couchcryptid/meeting-locator/internal/catalog"
	"github.com/couchcryptid/meeting-locator/internal/config"
	"github.com/couchcryptid/meeting-locator/internal/domain"
	"github.com/couchcryptid/meeting-locator/internal/geocode"
	"github.com/couchcryptid/meeting-locator/internal/observability"
	"github.com/couchcryptid/meeting-locator/internal/source"
)

func main() {
	// Optional .env for local development.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	// Diagnostics go to the log, plus Kafka when a topic is configured.
	var sink domain.DiagnosticSink = domain.LogSink{Logger: logger}
	var publisher *kafkaadapter.Publisher
	if cfg.DiagnosticsEnabled() {
		publisher = kafkaadapter.NewPublisher(cfg.KafkaBrokers, cfg.KafkaDiagTopic, logger)
		sink = domain.MultiSink{sink, publisher}
		logger.Info("kafka diagnostics enabled", "topic", cfg.KafkaDiagTopic)
	}

	cache := geocode.NewCache()
	if cfg.GeocodeSeedFile != "" {
		seed, err := geocode.LoadSeed(cfg.GeocodeSeedFile)
		if err != nil {
			logger.Error("failed to load geocode seed", "file", cfg.GeocodeSeedFile, "error", err)
			os.Exit(1)
		}
		cache.Seed(seed)
		logger.Info("geocode cache seeded", "file", cfg.GeocodeSeedFile, "entries", len(seed))
	}

	geocoder := nominatim.NewClient(cfg.GeocoderBaseURL, cfg.GeocoderUserAgent, cfg.GeocoderTimeout, metrics, logger)
	resolver := geocode.NewResolver(geocoder, cache, geocode.Policy{
		BatchSize: cfg.GeocodeBatchSize,
		Cooldown:  cfg.GeocodeBatchDelay,
	}, metrics, logger, sink)

	loader := source.NewLoader(cfg.MeetingsSource, 30*time.Second, logger)
	builder := catalog.New(loader, resolver, metrics, logger, sink, clockwork.NewRealClock())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reload := func() {
		if err := builder.Load(ctx); err != nil {
			logger.Error("catalog load failed", "error", err)
		}
	}

	srv := httpadapter.NewServer(cfg.HTTPAddr, builder, reload, logger)

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Initial catalog load.
	go reload()

	// Scheduled reloads.
	var scheduler *cron.Cron
	if cfg.ReloadCron != "" {
		scheduler = cron.New()
		if _, err := scheduler.AddFunc(cfg.ReloadCron, reload); err != nil {
			logger.Error("invalid RELOAD_CRON expression", "expr", cfg.ReloadCron, "error", err)
			os.Exit(1)
		}
		scheduler.Start()
		logger.Info("scheduled reloads enabled", "cron", cfg.ReloadCron)
	}

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if scheduler != nil {
		<-scheduler.Stop().Done()
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if publisher != nil {
		if err := publisher.Close(); err != nil {
			logger.Error("kafka publisher close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
