package catalog

import (
	"context"

	"github.com/mcdev12/scoreboard/go/internal/models"
)

type FakeSource struct {
	GetSportsFunc func(ctx context.Context) ([]models.Sport, error)
	GetGamesFunc  func(ctx context.Context, sportID models.ID) ([]models.GameSummary, error)
	calls         int
}

func (f *FakeSource) GetSports(ctx context.Context) ([]models.Sport, error) {
	f.calls++
	return f.GetSportsFunc(ctx)
}

func (f *FakeSource) GetGames(ctx context.Context, sportID models.ID) ([]models.GameSummary, error) {
	f.calls++
	return f.GetGamesFunc(ctx, sportID)
}

type FakeSelector struct {
	Options []Option
	Enabled bool
	Updates int
}

func (f *FakeSelector) SetOptions(options []Option) {
	f.Options = options
	f.Updates++
}

func (f *FakeSelector) SetEnabled(enabled bool) {
	f.Enabled = enabled
}
