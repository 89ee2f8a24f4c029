package scoreboard_client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/mcdev12/scoreboard/go/internal/models"
)

// GetSports lists every sport in the order the service returns them.
func (c *ScoreboardClient) GetSports(ctx context.Context) ([]models.Sport, error) {
	var sports []models.Sport
	if err := c.GetJSON(ctx, SportsEndpoint, &sports); err != nil {
		return nil, fmt.Errorf("failed to get sports: %w", err)
	}
	return sports, nil
}

// GetGames lists the games of one sport.
func (c *ScoreboardClient) GetGames(ctx context.Context, sportID models.ID) ([]models.GameSummary, error) {
	endpoint := fmt.Sprintf(SportGamesEndpoint, url.PathEscape(sportID.String()))

	var games []models.GameSummary
	if err := c.GetJSON(ctx, endpoint, &games); err != nil {
		return nil, fmt.Errorf("failed to get games for sport %s: %w", sportID, err)
	}
	return games, nil
}
