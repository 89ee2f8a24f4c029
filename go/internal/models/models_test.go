package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    ID
		wantErr bool
	}{
		{name: "string id", input: `"g-1"`, want: "g-1"},
		{name: "numeric id", input: `42`, want: "42"},
		{name: "empty string", input: `""`, want: ""},
		{name: "object is rejected", input: `{"id":1}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var id ID
			err := json.Unmarshal([]byte(tt.input), &id)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestGameDecode(t *testing.T) {
	body := `{"id":7,"team_a_name":"Lions","team_b_name":"Tigers",
		"events":[{"minute":5,"description":"Goal","team":"A"},{"minute":12.5,"description":"Foul","team":"B"}]}`

	var game Game
	require.NoError(t, json.Unmarshal([]byte(body), &game))

	assert.Equal(t, ID("7"), game.ID)
	assert.Equal(t, "Lions vs Tigers", game.Summary().Title())
	require.Len(t, game.Events, 2)
	assert.Equal(t, "5' Goal", game.Events[0].Label())
	assert.Equal(t, "12.5' Foul", game.Events[1].Label())
	assert.Equal(t, "Tigers", game.TeamName(TeamB))
	assert.Empty(t, game.TeamName(Team("C")))
}

func TestTeamValid(t *testing.T) {
	assert.True(t, TeamA.Valid())
	assert.True(t, TeamB.Valid())
	assert.False(t, Team("").Valid())
	assert.False(t, Team("a").Valid())
}
