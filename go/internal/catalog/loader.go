package catalog

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/mcdev12/scoreboard/go/internal/models"
)

const (
	sportPlaceholder = "-- select a sport --"
	gamePlaceholder  = "-- select a game --"
)

// Loader fetches the sport and game lists and fills the two selectors.
// It never retries and never caches: every call goes to the source.
type Loader struct {
	source Source
	sports Selector
	games  Selector
}

func NewLoader(source Source, sports, games Selector) *Loader {
	return &Loader{
		source: source,
		sports: sports,
		games:  games,
	}
}

// ListSports fetches every sport. On success the sport selector is replaced
// with the sentinel entry followed by the sports in received order. On
// failure the selector keeps whatever it showed before.
func (l *Loader) ListSports(ctx context.Context) ([]models.Sport, error) {
	sports, err := l.source.GetSports(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to list sports")
		return nil, fmt.Errorf("list sports: %w", err)
	}

	options := make([]Option, 0, len(sports)+1)
	options = append(options, Option{Value: NoneSelected, Label: sportPlaceholder})
	for _, sport := range sports {
		options = append(options, Option{Value: sport.ID.String(), Label: sport.Name})
	}
	l.sports.SetOptions(options)
	l.sports.SetEnabled(true)

	log.Debug().Int("sports", len(sports)).Msg("sport catalog loaded")
	return sports, nil
}

// ListGames fetches the games of one sport. The game selector is repopulated
// and enabled only once the fetch succeeded.
func (l *Loader) ListGames(ctx context.Context, sportID models.ID) ([]models.GameSummary, error) {
	games, err := l.FetchGames(ctx, sportID)
	if err != nil {
		return nil, err
	}

	l.ApplyGames(games)
	return games, nil
}

// FetchGames is ListGames without touching the game selector, for callers
// that decide afterwards whether the result is still wanted.
func (l *Loader) FetchGames(ctx context.Context, sportID models.ID) ([]models.GameSummary, error) {
	if sportID == "" {
		return nil, ErrEmptySportID
	}

	games, err := l.source.GetGames(ctx, sportID)
	if err != nil {
		log.Error().Err(err).Str("sport_id", sportID.String()).Msg("failed to list games")
		return nil, fmt.Errorf("list games: %w", err)
	}

	log.Debug().
		Str("sport_id", sportID.String()).
		Int("games", len(games)).
		Msg("game catalog loaded")
	return games, nil
}

// ApplyGames fills the game selector from an already fetched list.
func (l *Loader) ApplyGames(games []models.GameSummary) {
	options := make([]Option, 0, len(games)+1)
	options = append(options, Option{Value: NoneSelected, Label: gamePlaceholder})
	for _, game := range games {
		options = append(options, Option{Value: game.ID.String(), Label: game.Title()})
	}
	l.games.SetOptions(options)
	l.games.SetEnabled(true)
}

// ResetGames empties and disables the game selector, as when no sport is chosen.
func (l *Loader) ResetGames() {
	l.games.SetOptions([]Option{{Value: NoneSelected, Label: gamePlaceholder}})
	l.games.SetEnabled(false)
}
