package scoreboard_client

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/mcdev12/scoreboard/go/internal/models"
)

// GetGame fetches the snapshot of a game: team names plus every event so far.
func (c *ScoreboardClient) GetGame(ctx context.Context, gameID models.ID) (*models.Game, error) {
	endpoint := fmt.Sprintf(GameEndpoint, url.PathEscape(gameID.String()))

	var game models.Game
	if err := c.GetJSON(ctx, endpoint, &game); err != nil {
		return nil, fmt.Errorf("failed to get game %s: %w", gameID, err)
	}
	return &game, nil
}

// ChannelURL returns the live update endpoint for a game. The scheme follows
// the service's: http becomes ws and https becomes wss.
func (c *ScoreboardClient) ChannelURL(gameID models.ID) (string, error) {
	return ChannelURL(c.BaseURL(), gameID)
}

func ChannelURL(baseURL string, gameID models.ID) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base url %q: %w", baseURL, err)
	}

	switch u.Scheme {
	case "https", "wss":
		u.Scheme = "wss"
	case "http", "ws", "":
		u.Scheme = "ws"
	default:
		return "", fmt.Errorf("unsupported base url scheme %q", u.Scheme)
	}

	// The id is escaped the same way GetGame escapes it, so both requests
	// address the same game.
	u.Path = strings.TrimRight(u.Path, "/") + fmt.Sprintf(GameChannelEndpoint, gameID)
	u.RawPath = strings.TrimRight(u.EscapedPath(), "/") + fmt.Sprintf(GameChannelEndpoint, url.PathEscape(gameID.String()))
	u.RawQuery = ""
	u.Fragment = ""
	return u.String(), nil
}
