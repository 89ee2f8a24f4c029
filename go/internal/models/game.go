package models

// GameSummary is a game as listed by the sport catalog
type GameSummary struct {
	ID        ID     `json:"id"`
	TeamAName string `json:"team_a_name"`
	TeamBName string `json:"team_b_name"`
}

// Title returns the "Lions vs Tigers" label shown in the game selector.
func (g GameSummary) Title() string {
	return g.TeamAName + " vs " + g.TeamBName
}

// Game is the full snapshot of one match: both team names and every event
// known so far, in the order the feed recorded them.
type Game struct {
	ID        ID      `json:"id"`
	TeamAName string  `json:"team_a_name"`
	TeamBName string  `json:"team_b_name"`
	Events    []Event `json:"events"`
}

func (g Game) Summary() GameSummary {
	return GameSummary{ID: g.ID, TeamAName: g.TeamAName, TeamBName: g.TeamBName}
}

// TeamName returns the display name of the given side.
func (g Game) TeamName(team Team) string {
	switch team {
	case TeamA:
		return g.TeamAName
	case TeamB:
		return g.TeamBName
	default:
		return ""
	}
}
