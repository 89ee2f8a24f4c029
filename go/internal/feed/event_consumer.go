package feed

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/scoreboard/go/internal/models"
)

// SubjectPrefix is followed by the game id and ".events", e.g.
// scoreboard.games.42.events
const SubjectPrefix = "scoreboard.games."

// NATSConsumerConfig holds configuration for the NATS event relay
type NATSConsumerConfig struct {
	URL           string
	Subject       string
	QueueGroup    string
	MaxReconnects int
	ReconnectWait time.Duration
}

// DefaultNATSConsumerConfig returns default NATS relay configuration
func DefaultNATSConsumerConfig() NATSConsumerConfig {
	return NATSConsumerConfig{
		URL:           nats.DefaultURL,
		Subject:       SubjectPrefix + "*.events",
		MaxReconnects: -1,
		ReconnectWait: 2 * time.Second,
	}
}

// EventConsumer relays events published on NATS into the feed
type EventConsumer struct {
	service *Service
	nc      *nats.Conn
	sub     *nats.Subscription
	config  NATSConsumerConfig
}

func NewEventConsumer(service *Service, config NATSConsumerConfig) (*EventConsumer, error) {
	opts := []nats.Option{
		nats.Name("scoreboard-feed"),
		nats.MaxReconnects(config.MaxReconnects),
		nats.ReconnectWait(config.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Error().Err(err).Msg("NATS disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info().Str("url", nc.ConnectedUrl()).Msg("NATS reconnected")
		}),
		nats.ErrorHandler(func(nc *nats.Conn, sub *nats.Subscription, err error) {
			log.Error().Err(err).Msg("NATS error")
		}),
	}

	nc, err := nats.Connect(config.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}

	return &EventConsumer{
		service: service,
		nc:      nc,
		config:  config,
	}, nil
}

// Start subscribes to the configured subject.
func (ec *EventConsumer) Start() error {
	var (
		sub *nats.Subscription
		err error
	)
	if ec.config.QueueGroup != "" {
		sub, err = ec.nc.QueueSubscribe(ec.config.Subject, ec.config.QueueGroup, ec.handleMessage)
	} else {
		sub, err = ec.nc.Subscribe(ec.config.Subject, ec.handleMessage)
	}
	if err != nil {
		return fmt.Errorf("subscribe to %s: %w", ec.config.Subject, err)
	}
	ec.sub = sub

	log.Info().
		Str("subject", ec.config.Subject).
		Str("url", ec.nc.ConnectedUrl()).
		Msg("relaying events from NATS")
	return nil
}

func (ec *EventConsumer) handleMessage(msg *nats.Msg) {
	gameID, event, err := DecodeEventMessage(msg.Subject, msg.Data)
	if err != nil {
		log.Error().Err(err).Str("subject", msg.Subject).Msg("failed to decode NATS event")
		return
	}

	if err := ec.service.Publish(gameID, event, SourceNATS); err != nil {
		log.Error().
			Err(err).
			Str("subject", msg.Subject).
			Str("game_id", gameID.String()).
			Msg("failed to publish NATS event")
	}
}

// Stop drains the subscription and closes the connection.
func (ec *EventConsumer) Stop() error {
	log.Info().Msg("stopping NATS event consumer")
	if ec.nc == nil {
		return nil
	}
	if err := ec.nc.Drain(); err != nil {
		ec.nc.Close()
		return fmt.Errorf("drain NATS connection: %w", err)
	}
	return nil
}

// DecodeEventMessage extracts the game id from a subject of the form
// scoreboard.games.<id>.events and decodes the bare event payload.
func DecodeEventMessage(subject string, data []byte) (models.ID, models.Event, error) {
	rest, ok := strings.CutPrefix(subject, SubjectPrefix)
	if !ok {
		return "", models.Event{}, fmt.Errorf("unexpected subject %q", subject)
	}
	gameID, ok := strings.CutSuffix(rest, ".events")
	if !ok || gameID == "" || strings.Contains(gameID, ".") {
		return "", models.Event{}, fmt.Errorf("unexpected subject %q", subject)
	}

	var event models.Event
	if err := json.Unmarshal(data, &event); err != nil {
		return "", models.Event{}, fmt.Errorf("unmarshal event: %w", err)
	}
	return models.ID(gameID), event, nil
}

// EventSubject is the subject events for gameID are published on.
func EventSubject(gameID models.ID) string {
	return SubjectPrefix + gameID.String() + ".events"
}
