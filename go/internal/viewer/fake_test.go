package viewer

import (
	"context"
	"sync"

	"github.com/mcdev12/scoreboard/go/internal/models"
)

type FakeCatalog struct {
	ListSportsFunc func(ctx context.Context) ([]models.Sport, error)
	FetchGamesFunc func(ctx context.Context, sportID models.ID) ([]models.GameSummary, error)

	mu      sync.Mutex
	Applied [][]models.GameSummary
	Resets  int
}

func (f *FakeCatalog) ListSports(ctx context.Context) ([]models.Sport, error) {
	return f.ListSportsFunc(ctx)
}

func (f *FakeCatalog) FetchGames(ctx context.Context, sportID models.ID) ([]models.GameSummary, error) {
	return f.FetchGamesFunc(ctx, sportID)
}

func (f *FakeCatalog) ApplyGames(games []models.GameSummary) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Applied = append(f.Applied, games)
}

func (f *FakeCatalog) ResetGames() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Resets++
}

type FakeGames struct {
	mu     sync.Mutex
	Opened []models.ID
	Closes int
	Err    error
}

func (f *FakeGames) OpenGame(ctx context.Context, gameID models.ID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Opened = append(f.Opened, gameID)
	return f.Err
}

func (f *FakeGames) CloseGame(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Closes++
	return nil
}

type FakeNotifier struct {
	mu      sync.Mutex
	Notices []error
}

func (f *FakeNotifier) Notify(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Notices = append(f.Notices, err)
}
