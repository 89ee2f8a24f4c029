package live

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/scoreboard/go/clients/scoreboard_client"
	"github.com/mcdev12/scoreboard/go/internal/models"
)

// Dialer opens live update channels against one scoreboard service
type Dialer struct {
	baseURL string
	config  Config
	dialer  *websocket.Dialer
}

func NewDialer(baseURL string, config Config) *Dialer {
	return &Dialer{
		baseURL: baseURL,
		config:  config,
		dialer: &websocket.Dialer{
			Proxy:            http.ProxyFromEnvironment,
			HandshakeTimeout: config.HandshakeTimeout,
			ReadBufferSize:   config.ReadBufferSize,
			WriteBufferSize:  config.WriteBufferSize,
		},
	}
}

// Open starts a channel for gameID and returns at once. The connection is
// established in the background; listener.OnOpen reports readiness.
func (d *Dialer) Open(gameID models.ID, listener Listener) (Stream, error) {
	url, err := scoreboard_client.ChannelURL(d.baseURL, gameID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	ch := &Channel{
		id:       uuid.New().String(),
		gameID:   gameID,
		url:      url,
		config:   d.config,
		dialer:   d.dialer,
		listener: listener,
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}

	go ch.run()

	return ch, nil
}

// Channel is a single push connection scoped to one game
type Channel struct {
	id       string
	gameID   models.ID
	url      string
	config   Config
	dialer   *websocket.Dialer
	listener Listener

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}

	mu        sync.Mutex
	conn      *websocket.Conn
	closed    bool
	closeOnce sync.Once
}

func (c *Channel) ID() string { return c.id }

func (c *Channel) GameID() models.ID { return c.gameID }

func (c *Channel) URL() string { return c.url }

// Done is closed once the channel has delivered OnClose.
func (c *Channel) Done() <-chan struct{} { return c.done }

// Close shuts the channel down without waiting for it to drain. It is safe
// to call more than once and from any goroutine.
func (c *Channel) Close() {
	c.closeOnce.Do(func() {
		c.mu.Lock()
		c.closed = true
		conn := c.conn
		c.mu.Unlock()

		c.cancel()
		if conn != nil {
			deadline := time.Now().Add(c.config.WriteTimeout)
			msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
			if err := conn.WriteControl(websocket.CloseMessage, msg, deadline); err != nil && !errors.Is(err, websocket.ErrCloseSent) {
				log.Debug().Err(err).Str("channel_id", c.id).Msg("failed to send close frame")
			}
			conn.Close()
		}
	})
}

func (c *Channel) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func (c *Channel) run() {
	defer close(c.done)

	conn, _, err := c.dialer.DialContext(c.ctx, c.url, nil)
	if err != nil {
		if c.isClosed() {
			c.finish(true)
			return
		}
		c.fail("dial", err)
		return
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		conn.Close()
		c.finish(true)
		return
	}
	c.conn = conn
	c.mu.Unlock()

	log.Info().
		Str("channel_id", c.id).
		Str("game_id", c.gameID.String()).
		Str("url", c.url).
		Msg("live channel open")
	c.listener.OnOpen(c)

	c.readPump(conn)
}

// readPump delivers inbound events until the connection ends
func (c *Channel) readPump(conn *websocket.Conn) {
	conn.SetReadLimit(c.config.MaxMessageSize)
	c.extendDeadline(conn)
	conn.SetPingHandler(func(appData string) error {
		c.extendDeadline(conn)
		err := conn.WriteControl(websocket.PongMessage, []byte(appData), time.Now().Add(c.config.WriteTimeout))
		if errors.Is(err, websocket.ErrCloseSent) {
			return nil
		}
		return err
	})

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if c.isClosed() {
				c.finish(true)
				return
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Info().
					Str("channel_id", c.id).
					Str("game_id", c.gameID.String()).
					Msg("live channel closed by server")
				c.finish(false)
				return
			}
			c.fail("read", err)
			return
		}
		c.extendDeadline(conn)

		var event models.Event
		if err := json.Unmarshal(message, &event); err != nil {
			log.Warn().
				Err(err).
				Str("channel_id", c.id).
				Str("game_id", c.gameID.String()).
				Msg("skipping malformed event message")
			continue
		}

		if c.isClosed() {
			continue
		}
		c.listener.OnMessage(c, event)
	}
}

func (c *Channel) extendDeadline(conn *websocket.Conn) {
	if c.config.ReadTimeout > 0 {
		conn.SetReadDeadline(time.Now().Add(c.config.ReadTimeout))
	}
}

func (c *Channel) fail(op string, err error) {
	terr := &TransportError{GameID: c.gameID, Op: op, Err: err}
	log.Error().
		Err(terr).
		Str("channel_id", c.id).
		Msg("live channel error")
	c.listener.OnError(c, terr)
	c.finish(false)
}

func (c *Channel) finish(explicit bool) {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()
	if conn != nil {
		conn.Close()
	}
	c.cancel()

	log.Info().
		Str("channel_id", c.id).
		Str("game_id", c.gameID.String()).
		Bool("explicit", explicit).
		Msg("live channel closed")
	c.listener.OnClose(c, explicit)
}
