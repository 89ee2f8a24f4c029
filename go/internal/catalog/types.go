package catalog

import (
	"context"
	"errors"

	"github.com/mcdev12/scoreboard/go/internal/models"
)

var ErrEmptySportID = errors.New("sport id is required")

// NoneSelected is the value of the sentinel entry at the top of every selector
const NoneSelected = ""

// Option is one entry of a selector
type Option struct {
	Value string
	Label string
}

// Selector is a drop-down style chooser owned by the front end.
type Selector interface {
	SetOptions(options []Option)
	SetEnabled(enabled bool)
}

// Source is the upstream the loader reads from
type Source interface {
	GetSports(ctx context.Context) ([]models.Sport, error)
	GetGames(ctx context.Context, sportID models.ID) ([]models.GameSummary, error)
}
