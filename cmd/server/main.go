package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"asset-dashboard-api/internal/app"
	"asset-dashboard-api/internal/config"
	"asset-dashboard-api/internal/logging"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	cfg := config.Load()

	logger := logging.New(cfg.Log, os.Stdout)
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	logger.Info("Starting asset dashboard API",
		"environment", cfg.Server.Environment,
		"upstream", cfg.Upstream.BaseURL,
		"cache_ttl", cfg.Cache.TTL,
		"circuit_breaker", cfg.Upstream.CircuitBreaker.Enabled,
	)

	application := app.New(cfg, prometheus.DefaultRegisterer, prometheus.DefaultGatherer, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := application.Run(ctx); err != nil {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}

	logger.Info("Server shutdown complete")
}
