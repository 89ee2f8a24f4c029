package session

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/mcdev12/scoreboard/go/internal/live"
	"github.com/mcdev12/scoreboard/go/internal/models"
)

// Manager owns the Session. A single loop goroutine handles every
// operation, snapshot completion and channel notification in turn, so the
// session needs no locking. The one rule it keeps is close before replace:
// the old channel is closed and dropped before anything else happens.
type Manager struct {
	fetcher  GameFetcher
	opener   ChannelOpener
	renderer Renderer
	view     ViewState
	notifier Notifier

	inbox chan sessionMsg
	done  chan struct{}

	// owned by the loop
	ctx     context.Context
	session Session
	pending *pendingOpen
}

// pendingOpen is an OpenGame waiting for its snapshot
type pendingOpen struct {
	gameID     models.ID
	generation uint64
	cancel     context.CancelFunc
	reply      chan error
}

func NewManager(fetcher GameFetcher, opener ChannelOpener, renderer Renderer, view ViewState, notifier Notifier) *Manager {
	return &Manager{
		fetcher:  fetcher,
		opener:   opener,
		renderer: renderer,
		view:     view,
		notifier: notifier,
		inbox:    make(chan sessionMsg, 64),
		done:     make(chan struct{}),
	}
}

// Run processes messages until ctx is cancelled, then closes any open
// channel. It must be called exactly once.
func (m *Manager) Run(ctx context.Context) {
	m.ctx = ctx
	defer close(m.done)

	log.Info().Msg("session manager started")
	for {
		select {
		case <-ctx.Done():
			m.teardown(ErrStopped)
			log.Info().Msg("session manager stopped")
			return
		case message := <-m.inbox:
			m.handle(message)
		}
	}
}

// Done is closed once Run has returned.
func (m *Manager) Done() <-chan struct{} {
	return m.done
}

// OpenGame switches the session to gameID: the current channel is closed,
// the snapshot fetched and rendered, and a new channel opened. It returns
// once the snapshot is shown, the fetch failed, or a later OpenGame or
// CloseGame superseded it.
func (m *Manager) OpenGame(ctx context.Context, gameID models.ID) error {
	if gameID == "" {
		return ErrEmptyGameID
	}

	reply := make(chan error, 1)
	if err := m.post(ctx, openGame{gameID: gameID, reply: reply}); err != nil {
		return err
	}

	select {
	case err := <-reply:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-m.done:
		return ErrStopped
	}
}

// CloseGame closes the channel, forgets the current game and empties the view.
func (m *Manager) CloseGame(ctx context.Context) error {
	reply := make(chan struct{}, 1)
	if err := m.post(ctx, closeGame{reply: reply}); err != nil {
		return err
	}

	select {
	case <-reply:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-m.done:
		return ErrStopped
	}
}

// Session returns a copy of the current session.
func (m *Manager) Session(ctx context.Context) (Session, error) {
	reply := make(chan Session, 1)
	if err := m.post(ctx, getSession{reply: reply}); err != nil {
		return Session{}, err
	}

	select {
	case s := <-reply:
		return s, nil
	case <-ctx.Done():
		return Session{}, ctx.Err()
	case <-m.done:
		return Session{}, ErrStopped
	}
}

func (m *Manager) post(ctx context.Context, message sessionMsg) error {
	select {
	case m.inbox <- message:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-m.done:
		return ErrStopped
	}
}

// postAsync is used by goroutines the loop started; it only gives up once
// the loop is gone.
func (m *Manager) postAsync(message sessionMsg) {
	select {
	case m.inbox <- message:
	case <-m.done:
	}
}

func (m *Manager) handle(message sessionMsg) {
	switch msg := message.(type) {
	case openGame:
		m.handleOpen(msg)
	case snapshotLoaded:
		m.handleSnapshot(msg)
	case closeGame:
		m.handleClose(msg)
	case getSession:
		msg.reply <- m.session
	case channelOpened:
		m.handleChannelOpened(msg)
	case channelMessage:
		m.handleChannelMessage(msg)
	case channelFailed:
		m.handleChannelFailed(msg)
	case channelClosed:
		m.handleChannelClosed(msg)
	}
}

func (m *Manager) handleOpen(msg openGame) {
	m.teardown(ErrSuperseded)

	m.session.Generation++
	m.session.GameID = ""
	m.view.BeginFetch()

	ctx, cancel := context.WithCancel(m.ctx)
	generation := m.session.Generation
	m.pending = &pendingOpen{
		gameID:     msg.gameID,
		generation: generation,
		cancel:     cancel,
		reply:      msg.reply,
	}

	log.Debug().
		Str("game_id", msg.gameID.String()).
		Uint64("generation", generation).
		Msg("fetching game snapshot")

	go func() {
		game, err := m.fetcher.GetGame(ctx, msg.gameID)
		m.postAsync(snapshotLoaded{generation: generation, game: game, err: err})
	}()
}

func (m *Manager) handleSnapshot(msg snapshotLoaded) {
	p := m.pending
	if p == nil || p.generation != msg.generation {
		log.Debug().Uint64("generation", msg.generation).Msg("discarding stale game snapshot")
		return
	}
	m.pending = nil
	p.cancel()

	if msg.err != nil {
		log.Error().Err(msg.err).Str("game_id", p.gameID.String()).Msg("failed to load game")
		m.renderer.Clear()
		m.notifier.Notify(fmt.Errorf("could not load game %s: %w", p.gameID, msg.err))
		m.view.FetchFailed()
		p.reply <- msg.err
		return
	}

	game := msg.game
	m.session.GameID = p.gameID
	m.renderer.Reset(game.TeamAName, game.TeamBName)
	for _, event := range game.Events {
		m.renderer.Render(event)
	}

	stream, err := m.opener.Open(p.gameID, channelListener{m: m})
	if err != nil {
		log.Error().Err(err).Str("game_id", p.gameID.String()).Msg("failed to open live channel")
	} else {
		m.session.Channel = stream
	}

	m.view.GameLoaded()

	log.Info().
		Str("game_id", p.gameID.String()).
		Str("team_a", game.TeamAName).
		Str("team_b", game.TeamBName).
		Int("events", len(game.Events)).
		Msg("game opened")
	p.reply <- nil
}

func (m *Manager) handleClose(msg closeGame) {
	m.teardown(ErrSuperseded)

	m.session.Generation++
	m.session.GameID = ""
	m.renderer.Clear()
	m.view.Deselect()

	log.Info().Msg("game closed")
	msg.reply <- struct{}{}
}

// teardown closes the current channel and abandons any snapshot in flight.
func (m *Manager) teardown(reason error) {
	if ch := m.session.Channel; ch != nil {
		m.session.Channel = nil
		ch.Close()
		log.Debug().
			Str("channel_id", ch.ID()).
			Str("game_id", ch.GameID().String()).
			Msg("live channel released")
	}

	if p := m.pending; p != nil {
		m.pending = nil
		p.cancel()
		p.reply <- reason
	}
}

func (m *Manager) current(s live.Stream) bool {
	return s != nil && m.session.Channel == s
}

func (m *Manager) handleChannelOpened(msg channelOpened) {
	if !m.current(msg.stream) {
		return
	}
	log.Info().Str("game_id", m.session.GameID.String()).Msg("receiving live updates")
}

func (m *Manager) handleChannelMessage(msg channelMessage) {
	if !m.current(msg.stream) {
		log.Debug().
			Str("channel_id", msg.stream.ID()).
			Msg("dropping event from superseded channel")
		return
	}
	m.renderer.Render(msg.event)
}

// Channel errors are logged only; the close that follows decides what
// happens to the session.
func (m *Manager) handleChannelFailed(msg channelFailed) {
	log.Debug().
		Err(msg.err).
		Str("channel_id", msg.stream.ID()).
		Bool("current", m.current(msg.stream)).
		Msg("live channel reported an error")
}

func (m *Manager) handleChannelClosed(msg channelClosed) {
	if !m.current(msg.stream) {
		return
	}

	// The remote end went away. Nothing reconnects; the board keeps what it
	// has and the user is told updates stopped.
	m.session.Channel = nil
	log.Warn().
		Str("game_id", m.session.GameID.String()).
		Bool("explicit", msg.explicit).
		Msg("live channel closed unexpectedly")
	m.notifier.Warn(fmt.Sprintf("live updates for game %s stopped", m.session.GameID))
}
