package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/asteroid-impact-service/internal/adapter/httpadapter"
	kafkaadapter "github.com/couchcryptid/asteroid-impact-service/internal/adapter/kafka"
	"github.com/couchcryptid/asteroid-impact-service/internal/adapter/neows"
	"github.com/couchcryptid/asteroid-impact-service/internal/config"
	"github.com/couchcryptid/asteroid-impact-service/internal/observability"
	"github.com/couchcryptid/asteroid-impact-service/internal/simulator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger, closeLog, err := observability.NewLogger(cfg)
	if err != nil {
		slog.Error("failed to create logger", "error", err)
		os.Exit(1)
	}
	metrics := observability.NewMetrics()

	client := neows.NewClient(cfg.NASAAPIKey, cfg.NeoWsBaseURL, cfg.NeoWsTimeout, metrics, logger)
	catalog, err := neows.NewCachedCatalog(client, cfg.NeoWsCacheSize, metrics)
	if err != nil {
		logger.Error("failed to create catalog cache", "error", err)
		os.Exit(1)
	}
	logger.Info("neows catalog configured",
		"base_url", cfg.NeoWsBaseURL,
		"timeout", cfg.NeoWsTimeout,
		"max_pages", cfg.NeoWsMaxPages,
		"cache_size", cfg.NeoWsCacheSize,
	)

	// Result publishing is feature-flagged via KAFKA_ENABLED.
	var (
		publisher simulator.Publisher
		writer    *kafkaadapter.Writer
	)
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		publisher = writer
		logger.Info("result publishing enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaResultsTopic)
	} else {
		logger.Info("result publishing disabled")
	}

	svc := simulator.New(catalog, neows.DefaultAliases(), publisher, logger, metrics, cfg.NeoWsMaxPages)

	srv := httpadapter.NewServer(cfg.HTTPAddr, svc, svc, cfg.StaticDir, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
	if err := closeLog(); err != nil {
		slog.Error("log file close error", "error", err)
	}
}
