package scoreboard_client

import (
	"github.com/mcdev12/scoreboard/go/clients"
)

// ScoreboardClient talks to the scoreboard service's JSON endpoints
type ScoreboardClient struct {
	*clients.BaseClient
}

func NewScoreboardClient(baseURL string) *ScoreboardClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	client := &ScoreboardClient{
		BaseClient: clients.NewBaseClient(baseURL),
	}

	client.SetHeader(AcceptHeader, JsonContentType)

	return client
}
