package feed

import (
	"errors"
	"fmt"
	"sync"

	"github.com/mcdev12/scoreboard/go/internal/models"
)

var (
	ErrSportNotFound = errors.New("sport not found")
	ErrGameNotFound  = errors.New("game not found")
	ErrInvalidEvent  = errors.New("invalid event")
)

// Store keeps the feed's games in memory. Nothing is persisted.
type Store struct {
	mu         sync.RWMutex
	sports     []models.Sport
	sportGames map[models.ID][]models.ID
	games      map[models.ID]*models.Game
}

func NewStore(fixture *Fixture) *Store {
	s := &Store{
		sportGames: make(map[models.ID][]models.ID),
		games:      make(map[models.ID]*models.Game),
	}

	for _, sport := range fixture.Sports {
		sportID := models.ID(sport.ID)
		s.sports = append(s.sports, models.Sport{ID: sportID, Name: sport.Name})
		ids := make([]models.ID, 0, len(sport.Games))
		for _, g := range sport.Games {
			game := &models.Game{
				ID:        models.ID(g.ID),
				TeamAName: g.TeamAName,
				TeamBName: g.TeamBName,
				Events:    make([]models.Event, 0, len(g.Events)),
			}
			for _, e := range g.Events {
				game.Events = append(game.Events, models.Event{
					Minute:      e.Minute,
					Description: e.Description,
					Team:        models.Team(e.Team),
				})
			}
			s.games[game.ID] = game
			ids = append(ids, game.ID)
		}
		s.sportGames[sportID] = ids
	}

	return s
}

func (s *Store) Sports() []models.Sport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Sport{}, s.sports...)
}

func (s *Store) Games(sportID models.ID) ([]models.GameSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids, ok := s.sportGames[sportID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSportNotFound, sportID)
	}
	games := make([]models.GameSummary, 0, len(ids))
	for _, id := range ids {
		games = append(games, s.games[id].Summary())
	}
	return games, nil
}

// Game returns a copy of the game's snapshot.
func (s *Store) Game(gameID models.ID) (models.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	game, ok := s.games[gameID]
	if !ok {
		return models.Game{}, fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}
	snapshot := *game
	snapshot.Events = append([]models.Event{}, game.Events...)
	return snapshot, nil
}

// AppendEvent records a new event at the end of the game's log.
func (s *Store) AppendEvent(gameID models.ID, event models.Event) error {
	if !event.Team.Valid() {
		return fmt.Errorf("%w: team must be A or B, got %q", ErrInvalidEvent, event.Team)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	game, ok := s.games[gameID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}
	game.Events = append(game.Events, event)
	return nil
}
