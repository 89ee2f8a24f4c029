package feed

import (
	"context"
	"fmt"
	"sync"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/scoreboard/go/internal/models"
)

// Source says where a published event came from, for metrics and logs
type Source string

const (
	SourceHTTP Source = "http"
	SourceNATS Source = "nats"
)

// Config holds configuration for the feed service
type Config struct {
	ConnectionConfig ConnectionConfig
	NATSConfig       NATSConsumerConfig
	// NATSEnabled turns on the NATS relay; without it events only arrive
	// through the HTTP publish endpoint.
	NATSEnabled bool
}

func DefaultConfig() Config {
	return Config{
		ConnectionConfig: DefaultConnectionConfig(),
		NATSConfig:       DefaultNATSConsumerConfig(),
	}
}

// Service is the development scoreboard feed: an in-memory store of games
// whose new events are pushed to every connected viewer.
type Service struct {
	config      Config
	store       *Store
	connections *ConnectionManager
	metrics     MetricsCollector

	// publishMu keeps store order and broadcast order the same
	publishMu sync.Mutex
}

func NewService(config Config, store *Store, clock clockwork.Clock, metrics MetricsCollector) *Service {
	if metrics == nil {
		metrics = &NoOpMetricsCollector{}
	}
	return &Service{
		config:      config,
		store:       store,
		connections: NewConnectionManager(config.ConnectionConfig, clock, metrics),
		metrics:     metrics,
	}
}

func (s *Service) Store() *Store { return s.store }

func (s *Service) Connections() *ConnectionManager { return s.connections }

// Start runs the connection manager and, when enabled, the NATS relay until
// ctx is cancelled.
func (s *Service) Start(ctx context.Context) error {
	log.Info().Bool("nats", s.config.NATSEnabled).Msg("starting scoreboard feed")

	go s.connections.Start(ctx)

	var consumer *EventConsumer
	if s.config.NATSEnabled {
		var err error
		consumer, err = NewEventConsumer(s, s.config.NATSConfig)
		if err != nil {
			return fmt.Errorf("failed to create event consumer: %w", err)
		}
		if err := consumer.Start(); err != nil {
			consumer.Stop()
			return err
		}
	}

	<-ctx.Done()

	if consumer != nil {
		if err := consumer.Stop(); err != nil {
			log.Error().Err(err).Msg("failed to stop event consumer")
		}
	}
	log.Info().Msg("scoreboard feed stopped")
	return nil
}

// Publish appends event to the game's log and pushes it to its viewers.
func (s *Service) Publish(gameID models.ID, event models.Event, source Source) error {
	s.publishMu.Lock()
	defer s.publishMu.Unlock()

	if err := s.store.AppendEvent(gameID, event); err != nil {
		return err
	}
	s.metrics.RecordEventPublished(string(source))
	s.connections.BroadcastToGame(gameID, event)

	log.Info().
		Str("game_id", gameID.String()).
		Str("source", string(source)).
		Str("event", event.Label()).
		Msg("event published")
	return nil
}

// GetStats returns statistics about the feed
func (s *Service) GetStats() map[string]interface{} {
	stats := s.connections.GetConnectionStats()
	stats["service"] = "scoreboard_feed"
	stats["nats"] = s.config.NATSEnabled
	return stats
}
