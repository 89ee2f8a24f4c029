package render

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/scoreboard/go/internal/models"
)

// Entry is one rendered line of a team column
type Entry struct {
	Event      models.Event
	ReceivedAt time.Time
}

func (e Entry) Label() string {
	return e.Event.Label()
}

// Display is told about every change to the board so it can redraw.
type Display interface {
	Reset(teamA, teamB string)
	Append(team models.Team, teamName string, entry Entry)
}

// Board holds the two team columns of the open game. Entries are only ever
// appended, so each column is in arrival order.
type Board struct {
	mu      sync.RWMutex
	clock   clockwork.Clock
	display Display
	teamA   string
	teamB   string
	columns map[models.Team][]Entry
}

func NewBoard(clock clockwork.Clock, display Display) *Board {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Board{
		clock:   clock,
		display: display,
		columns: make(map[models.Team][]Entry),
	}
}

// Reset empties both columns and names them for a newly opened game.
func (b *Board) Reset(teamA, teamB string) {
	b.mu.Lock()
	b.teamA = teamA
	b.teamB = teamB
	b.columns = make(map[models.Team][]Entry)
	b.mu.Unlock()

	if b.display != nil {
		b.display.Reset(teamA, teamB)
	}
}

// Clear removes everything, leaving no stale game on screen.
func (b *Board) Clear() {
	b.Reset("", "")
}

// Render appends event to the end of its team's column. Events for a team
// other than A or B have no column and are dropped.
func (b *Board) Render(event models.Event) bool {
	if !event.Team.Valid() {
		log.Warn().
			Str("team", string(event.Team)).
			Str("description", event.Description).
			Msg("dropping event for unknown team")
		return false
	}

	entry := Entry{Event: event, ReceivedAt: b.clock.Now()}

	b.mu.Lock()
	b.columns[event.Team] = append(b.columns[event.Team], entry)
	name := b.teamNameLocked(event.Team)
	b.mu.Unlock()

	if b.display != nil {
		b.display.Append(event.Team, name, entry)
	}
	return true
}

// Teams returns the names of column A and column B.
func (b *Board) Teams() (string, string) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.teamA, b.teamB
}

// Column returns the labels of one column in arrival order.
func (b *Board) Column(team models.Team) []string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	entries := b.columns[team]
	labels := make([]string, 0, len(entries))
	for _, entry := range entries {
		labels = append(labels, entry.Label())
	}
	return labels
}

// Entries returns a copy of one column.
func (b *Board) Entries(team models.Team) []Entry {
	b.mu.RLock()
	defer b.mu.RUnlock()

	entries := make([]Entry, len(b.columns[team]))
	copy(entries, b.columns[team])
	return entries
}

// Window returns the newest rows entries of each column, oldest first:
// the view of a column that is kept scrolled to its latest entry.
func (b *Board) Window(rows int) ([]Entry, []Entry) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return tail(b.columns[models.TeamA], rows), tail(b.columns[models.TeamB], rows)
}

func (b *Board) teamNameLocked(team models.Team) string {
	if team == models.TeamA {
		return b.teamA
	}
	return b.teamB
}

func tail(entries []Entry, rows int) []Entry {
	if rows <= 0 {
		return nil
	}
	start := 0
	if len(entries) > rows {
		start = len(entries) - rows
	}
	out := make([]Entry, len(entries)-start)
	copy(out, entries[start:])
	return out
}
