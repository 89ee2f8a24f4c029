package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/scoreboard/go/internal/feed"
)

func main() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("could not load .env file")
	}

	// Setup logging
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	level, err := zerolog.ParseLevel(getEnv("FEED_LOG_LEVEL", "info"))
	if err != nil {
		log.Warn().Err(err).Msg("invalid FEED_LOG_LEVEL, using info")
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	// Get configuration
	port := getEnv("FEED_PORT", "8000")
	fixturePath := getEnv("FEED_FIXTURE", "")
	natsEnabled := getEnvAsBool("FEED_NATS_ENABLED", false)

	fixture := feed.DefaultFixture()
	if fixturePath != "" {
		fixture, err = feed.LoadFixture(fixturePath)
		if err != nil {
			log.Fatal().Err(err).Str("path", fixturePath).Msg("failed to load fixture")
		}
	}

	feedConfig := feed.DefaultConfig()
	feedConfig.NATSEnabled = natsEnabled
	feedConfig.NATSConfig.URL = getEnv("NATS_URL", feedConfig.NATSConfig.URL)
	feedConfig.NATSConfig.QueueGroup = getEnv("FEED_NATS_QUEUE", "")

	log.Info().
		Str("port", port).
		Str("fixture", fixturePath).
		Bool("nats", natsEnabled).
		Str("nats_url", feedConfig.NATSConfig.URL).
		Msg("starting scoreboard feed")

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := feed.NewPrometheusMetrics(registry)

	service := feed.NewService(feedConfig, feed.NewStore(fixture), clockwork.NewRealClock(), metrics)
	server := feed.NewServer(fmt.Sprintf(":%s", port), service, registry)

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start feed service (connection manager and optional NATS relay)
	go func() {
		if err := service.Start(ctx); err != nil {
			log.Error().Err(err).Msg("feed service failed")
		}
	}()

	// Start HTTP server
	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan

	log.Info().Str("signal", sig.String()).Msg("received shutdown signal")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	// Hijacked WebSocket connections are not tracked by Shutdown; the
	// service closes them when its context is cancelled.
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown failed")
	}
	cancel()

	// Give the connection manager time to send close frames
	time.Sleep(500 * time.Millisecond)

	log.Info().Msg("scoreboard feed shutdown complete")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
