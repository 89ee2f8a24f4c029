package session

import (
	"context"
	"errors"

	"github.com/mcdev12/scoreboard/go/internal/live"
	"github.com/mcdev12/scoreboard/go/internal/models"
)

var (
	ErrEmptyGameID = errors.New("game id is required")
	// ErrSuperseded is returned by OpenGame when a later selection replaced it
	ErrSuperseded = errors.New("game selection superseded")
	ErrStopped    = errors.New("session manager stopped")
)

// Session is which game is open and on which channel. It belongs to the
// manager's loop; callers only ever see copies.
type Session struct {
	GameID     models.ID
	Channel    live.Stream
	Generation uint64
}

// Live reports whether a live update channel is attached.
func (s Session) Live() bool {
	return s.Channel != nil
}

type GameFetcher interface {
	GetGame(ctx context.Context, gameID models.ID) (*models.Game, error)
}

type ChannelOpener interface {
	Open(gameID models.ID, listener live.Listener) (live.Stream, error)
}

type Renderer interface {
	Reset(teamA, teamB string)
	Clear()
	Render(event models.Event) bool
}

type ViewState interface {
	BeginFetch()
	GameLoaded()
	FetchFailed()
	Deselect()
}

// Notifier shows failures to the user. Notify is the blocking notice for a
// failed fetch; Warn is a passive status message.
type Notifier interface {
	Notify(err error)
	Warn(message string)
}
