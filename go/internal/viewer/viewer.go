package viewer

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/mcdev12/scoreboard/go/clients"
	"github.com/mcdev12/scoreboard/go/internal/models"
	"github.com/mcdev12/scoreboard/go/internal/session"
)

// ErrSuperseded is returned by SelectSport when a later selection replaced it
var ErrSuperseded = errors.New("sport selection superseded")

type Catalog interface {
	ListSports(ctx context.Context) ([]models.Sport, error)
	FetchGames(ctx context.Context, sportID models.ID) ([]models.GameSummary, error)
	ApplyGames(games []models.GameSummary)
	ResetGames()
}

type Games interface {
	OpenGame(ctx context.Context, gameID models.ID) error
	CloseGame(ctx context.Context) error
}

type ViewState interface {
	BeginFetch()
	CatalogLoaded()
	Deselect()
}

type Notifier interface {
	Notify(err error)
}

// Viewer turns the user's selections into catalog and session calls.
type Viewer struct {
	catalog  Catalog
	games    Games
	view     ViewState
	notifier Notifier

	mu          sync.Mutex
	generation  uint64
	cancelFetch context.CancelFunc
}

func New(catalog Catalog, games Games, view ViewState, notifier Notifier) *Viewer {
	return &Viewer{
		catalog:  catalog,
		games:    games,
		view:     view,
		notifier: notifier,
	}
}

// Start loads the sport catalog. The view ends up Empty either way.
func (v *Viewer) Start(ctx context.Context) error {
	v.view.BeginFetch()
	_, err := v.catalog.ListSports(ctx)
	v.view.CatalogLoaded()
	if err != nil {
		v.notifier.Notify(fmt.Errorf("could not load sports: %w", err))
		return err
	}
	return nil
}

// SelectSport reacts to a change of the sport selector. Any open game is
// closed first. An empty id clears and disables the game selector; any
// other id reloads it. A response for a sport that is no longer selected is
// dropped.
func (v *Viewer) SelectSport(ctx context.Context, sportID models.ID) error {
	generation, fetchCtx, cancel := v.begin(ctx)
	defer cancel()

	if err := v.games.CloseGame(ctx); err != nil {
		return err
	}

	if sportID == "" {
		v.catalog.ResetGames()
		v.view.Deselect()
		log.Info().Msg("sport deselected")
		return nil
	}

	v.view.BeginFetch()
	games, err := v.catalog.FetchGames(fetchCtx, sportID)

	v.mu.Lock()
	defer v.mu.Unlock()
	if generation != v.generation {
		log.Debug().Str("sport_id", sportID.String()).Msg("discarding games for superseded sport")
		return ErrSuperseded
	}

	v.view.CatalogLoaded()
	if err != nil {
		v.notifier.Notify(fmt.Errorf("could not load games: %w", err))
		return err
	}

	v.catalog.ApplyGames(games)
	log.Info().Str("sport_id", sportID.String()).Int("games", len(games)).Msg("sport selected")
	return nil
}

// SelectGame reacts to a change of the game selector.
func (v *Viewer) SelectGame(ctx context.Context, gameID models.ID) error {
	if gameID == "" {
		return v.games.CloseGame(ctx)
	}
	return v.games.OpenGame(ctx, gameID)
}

// begin starts a new sport selection and abandons the previous one's fetch.
func (v *Viewer) begin(ctx context.Context) (uint64, context.Context, context.CancelFunc) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.cancelFetch != nil {
		v.cancelFetch()
	}
	v.generation++
	fetchCtx, cancel := context.WithCancel(ctx)
	v.cancelFetch = cancel
	return v.generation, fetchCtx, cancel
}

// IsQuiet reports whether err only means a newer selection replaced the
// request.
func IsQuiet(err error) bool {
	return errors.Is(err, ErrSuperseded) ||
		errors.Is(err, session.ErrSuperseded) ||
		clients.IsCanceled(err)
}
