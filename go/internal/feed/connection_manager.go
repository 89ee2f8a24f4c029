package feed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/scoreboard/go/internal/models"
)

// ConnectionManager manages live update connections, pooled by game
type ConnectionManager struct {
	gameConnections map[models.ID]map[*Connection]bool
	mu              sync.RWMutex

	upgrader websocket.Upgrader
	config   ConnectionConfig
	clock    clockwork.Clock
	metrics  MetricsCollector

	broadcastCh chan BroadcastMessage
}

// Connection is one viewer following one game
type Connection struct {
	ID      string
	GameID  models.ID
	Conn    *websocket.Conn
	Send    chan []byte
	Manager *ConnectionManager

	ConnectedAt time.Time
}

// ConnectionConfig holds configuration for WebSocket connections
type ConnectionConfig struct {
	WriteTimeout    time.Duration
	ReadTimeout     time.Duration
	PingInterval    time.Duration
	MaxMessageSize  int64
	ReadBufferSize  int
	WriteBufferSize int
	SendBufferSize  int
	CheckOrigin     func(r *http.Request) bool
}

// BroadcastMessage is an event to deliver to every viewer of a game
type BroadcastMessage struct {
	GameID models.ID
	Event  models.Event
}

// DefaultConnectionConfig returns default WebSocket configuration
func DefaultConnectionConfig() ConnectionConfig {
	return ConnectionConfig{
		WriteTimeout:    10 * time.Second,
		ReadTimeout:     60 * time.Second,
		PingInterval:    30 * time.Second,
		MaxMessageSize:  1024,
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		SendBufferSize:  256,
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}
}

func NewConnectionManager(config ConnectionConfig, clock clockwork.Clock, metrics MetricsCollector) *ConnectionManager {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if metrics == nil {
		metrics = &NoOpMetricsCollector{}
	}
	return &ConnectionManager{
		gameConnections: make(map[models.ID]map[*Connection]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  config.ReadBufferSize,
			WriteBufferSize: config.WriteBufferSize,
			CheckOrigin:     config.CheckOrigin,
		},
		config:      config,
		clock:       clock,
		metrics:     metrics,
		broadcastCh: make(chan BroadcastMessage, 1000),
	}
}

// Start processes broadcasts until ctx is done, then closes every connection.
func (cm *ConnectionManager) Start(ctx context.Context) {
	log.Info().Msg("connection manager started")

	for {
		select {
		case <-ctx.Done():
			cm.closeAll()
			log.Info().Msg("connection manager shutting down")
			return
		case message := <-cm.broadcastCh:
			cm.handleBroadcast(message)
		}
	}
}

// UpgradeConnection upgrades an HTTP request to a live update connection for gameID
func (cm *ConnectionManager) UpgradeConnection(w http.ResponseWriter, r *http.Request, gameID models.ID) error {
	conn, err := cm.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return fmt.Errorf("failed to upgrade connection: %w", err)
	}

	connection := &Connection{
		ID:          uuid.New().String(),
		GameID:      gameID,
		Conn:        conn,
		Send:        make(chan []byte, cm.config.SendBufferSize),
		Manager:     cm,
		ConnectedAt: cm.clock.Now(),
	}

	cm.registerConnection(connection)

	go connection.writePump()
	go connection.readPump()

	log.Info().
		Str("connection_id", connection.ID).
		Str("game_id", gameID.String()).
		Msg("live connection established")

	return nil
}

func (cm *ConnectionManager) registerConnection(conn *Connection) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if cm.gameConnections[conn.GameID] == nil {
		cm.gameConnections[conn.GameID] = make(map[*Connection]bool)
	}
	cm.gameConnections[conn.GameID][conn] = true
	cm.metrics.RecordConnectionOpened()

	log.Debug().
		Str("connection_id", conn.ID).
		Str("game_id", conn.GameID.String()).
		Int("game_connections", len(cm.gameConnections[conn.GameID])).
		Msg("connection registered")
}

func (cm *ConnectionManager) unregisterConnection(conn *Connection) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	connections, exists := cm.gameConnections[conn.GameID]
	if !exists {
		return
	}
	if _, exists := connections[conn]; !exists {
		return
	}

	delete(connections, conn)
	close(conn.Send)
	cm.metrics.RecordConnectionClosed()

	if len(connections) == 0 {
		delete(cm.gameConnections, conn.GameID)
	}

	log.Info().
		Str("connection_id", conn.ID).
		Str("game_id", conn.GameID.String()).
		Dur("connected_for", cm.clock.Since(conn.ConnectedAt)).
		Msg("connection unregistered")
}

// BroadcastToGame queues event for every viewer of gameID
func (cm *ConnectionManager) BroadcastToGame(gameID models.ID, event models.Event) {
	select {
	case cm.broadcastCh <- BroadcastMessage{GameID: gameID, Event: event}:
	default:
		log.Warn().Str("game_id", gameID.String()).Msg("broadcast channel full, dropping message")
	}
}

func (cm *ConnectionManager) handleBroadcast(message BroadcastMessage) {
	cm.mu.RLock()
	connections := cm.gameConnections[message.GameID]
	targets := make([]*Connection, 0, len(connections))
	for conn := range connections {
		targets = append(targets, conn)
	}
	cm.mu.RUnlock()

	data, err := encodeEvent(message.Event)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal event for broadcast")
		return
	}

	delivered := 0
	for _, conn := range targets {
		if cm.enqueue(conn, data) {
			delivered++
		}
	}
	cm.metrics.RecordEventBroadcast(delivered)

	log.Debug().
		Str("game_id", message.GameID.String()).
		Int("connections", delivered).
		Msg("event broadcasted")
}

// encodeEvent renders the wire format: the bare event, no envelope.
// Descriptions go out as they came in, without HTML escaping.
func encodeEvent(event models.Event) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(event); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// enqueue hands data to one connection; a full buffer means the viewer is
// too slow and it is dropped.
func (cm *ConnectionManager) enqueue(conn *Connection, data []byte) (ok bool) {
	cm.mu.RLock()
	_, registered := cm.gameConnections[conn.GameID][conn]
	if registered {
		select {
		case conn.Send <- data:
			ok = true
		default:
		}
	}
	cm.mu.RUnlock()

	if registered && !ok {
		log.Warn().
			Str("connection_id", conn.ID).
			Msg("connection send buffer full, closing connection")
		cm.metrics.RecordConnectionDropped("slow_consumer")
		cm.unregisterConnection(conn)
		conn.Conn.Close()
	}
	return ok
}

func (cm *ConnectionManager) closeAll() {
	cm.mu.RLock()
	var all []*Connection
	for _, connections := range cm.gameConnections {
		for conn := range connections {
			all = append(all, conn)
		}
	}
	cm.mu.RUnlock()

	for _, conn := range all {
		cm.metrics.RecordConnectionDropped("shutdown")
		cm.unregisterConnection(conn)
	}
}

// ConnectionCount returns the number of viewers of gameID, or of all games
// when gameID is empty.
func (cm *ConnectionManager) ConnectionCount(gameID models.ID) int {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	if gameID != "" {
		return len(cm.gameConnections[gameID])
	}
	total := 0
	for _, connections := range cm.gameConnections {
		total += len(connections)
	}
	return total
}

// GetConnectionStats returns statistics about active connections
func (cm *ConnectionManager) GetConnectionStats() map[string]interface{} {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	totalConnections := 0
	gameCounts := make(map[string]int)
	for gameID, connections := range cm.gameConnections {
		totalConnections += len(connections)
		gameCounts[gameID.String()] = len(connections)
	}

	return map[string]interface{}{
		"total_connections": totalConnections,
		"active_games":      len(cm.gameConnections),
		"game_connections":  gameCounts,
	}
}

func (c *Connection) writePump() {
	ticker := time.NewTicker(c.Manager.config.PingInterval)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
		c.Manager.unregisterConnection(c)
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(c.Manager.config.WriteTimeout))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
				return
			}

			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Error().
					Err(err).
					Str("connection_id", c.ID).
					Msg("failed to write message to WebSocket")
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(c.Manager.config.WriteTimeout))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Debug().
					Err(err).
					Str("connection_id", c.ID).
					Msg("failed to send ping")
				return
			}
		}
	}
}

// readPump only watches for pongs and the viewer going away; viewers send
// no payloads.
func (c *Connection) readPump() {
	defer func() {
		c.Manager.unregisterConnection(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(c.Manager.config.MaxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(c.Manager.config.ReadTimeout))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(c.Manager.config.ReadTimeout))
		return nil
	})

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug().
					Err(err).
					Str("connection_id", c.ID).
					Msg("unexpected WebSocket close error")
			}
			return
		}
		c.Conn.SetReadDeadline(time.Now().Add(c.Manager.config.ReadTimeout))
	}
}
