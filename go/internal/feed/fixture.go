package feed

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mcdev12/scoreboard/go/internal/models"
)

// Fixture is the feed's starting data, usually read from a YAML file:
//
//	sports:
//	  - id: football
//	    name: Football
//	    games:
//	      - id: "1"
//	        team_a_name: Lions
//	        team_b_name: Tigers
//	        events:
//	          - {minute: 5, description: Goal, team: A}
type Fixture struct {
	Sports []FixtureSport `yaml:"sports"`
}

type FixtureSport struct {
	ID    string        `yaml:"id"`
	Name  string        `yaml:"name"`
	Games []FixtureGame `yaml:"games"`
}

type FixtureGame struct {
	ID        string         `yaml:"id"`
	TeamAName string         `yaml:"team_a_name"`
	TeamBName string         `yaml:"team_b_name"`
	Events    []FixtureEvent `yaml:"events"`
}

type FixtureEvent struct {
	Minute      float64 `yaml:"minute"`
	Description string  `yaml:"description"`
	Team        string  `yaml:"team"`
}

func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture file: %w", err)
	}
	return ParseFixture(data)
}

func ParseFixture(data []byte) (*Fixture, error) {
	var fixture Fixture
	if err := yaml.Unmarshal(data, &fixture); err != nil {
		return nil, fmt.Errorf("failed to parse fixture: %w", err)
	}
	if err := fixture.Validate(); err != nil {
		return nil, err
	}
	return &fixture, nil
}

// Validate checks ids are present and unique and every event names a side.
func (f *Fixture) Validate() error {
	sports := make(map[string]bool)
	games := make(map[string]bool)
	for _, sport := range f.Sports {
		if sport.ID == "" {
			return fmt.Errorf("sport %q has no id", sport.Name)
		}
		if sports[sport.ID] {
			return fmt.Errorf("duplicate sport id %q", sport.ID)
		}
		sports[sport.ID] = true

		for _, game := range sport.Games {
			if game.ID == "" {
				return fmt.Errorf("game in sport %q has no id", sport.ID)
			}
			if games[game.ID] {
				return fmt.Errorf("duplicate game id %q", game.ID)
			}
			games[game.ID] = true

			for i, event := range game.Events {
				if !models.Team(event.Team).Valid() {
					return fmt.Errorf("game %q event %d: team must be A or B, got %q", game.ID, i, event.Team)
				}
			}
		}
	}
	return nil
}

// DefaultFixture is served when no fixture file is configured.
func DefaultFixture() *Fixture {
	return &Fixture{
		Sports: []FixtureSport{
			{
				ID:   "football",
				Name: "Football",
				Games: []FixtureGame{
					{
						ID:        "1",
						TeamAName: "Lions",
						TeamBName: "Tigers",
						Events: []FixtureEvent{
							{Minute: 5, Description: "Goal", Team: "A"},
						},
					},
					{ID: "2", TeamAName: "Bears", TeamBName: "Wolves"},
				},
			},
			{
				ID:   "hockey",
				Name: "Hockey",
				Games: []FixtureGame{
					{ID: "3", TeamAName: "Sharks", TeamBName: "Kings"},
				},
			},
		},
	}
}
