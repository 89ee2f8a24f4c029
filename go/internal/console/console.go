package console

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/mcdev12/scoreboard/go/internal/models"
	"github.com/mcdev12/scoreboard/go/internal/render"
	"github.com/mcdev12/scoreboard/go/internal/viewstate"
)

const columnWidth = 32

// Console is the line-oriented terminal front end. It is written to from
// both the command shell and the session loop, so every write is serialised.
type Console struct {
	mu  sync.Mutex
	out io.Writer
}

func New(out io.Writer) *Console {
	return &Console{out: out}
}

func (c *Console) printf(format string, args ...interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, format, args...)
}

// Notify shows a failed fetch.
func (c *Console) Notify(err error) {
	c.printf("! %v\n", err)
}

// Warn shows a passive status message.
func (c *Console) Warn(message string) {
	c.printf("~ %s\n", message)
}

// ShowState prints view-state transitions.
func (c *Console) ShowState(state viewstate.State) {
	c.printf("[%s]\n", state)
}

// Reset implements render.Display
func (c *Console) Reset(teamA, teamB string) {
	if teamA == "" && teamB == "" {
		c.printf("--- board cleared ---\n")
		return
	}
	c.printf("=== %s | %s ===\n", teamA, teamB)
}

// Append implements render.Display
func (c *Console) Append(team models.Team, teamName string, entry render.Entry) {
	if team == models.TeamB {
		c.printf("%*s[%s] %s\n", columnWidth, "", teamName, entry.Label())
		return
	}
	c.printf("[%s] %s\n", teamName, entry.Label())
}

// PrintBoard draws both columns side by side, scrolled to the newest rows.
func (c *Console) PrintBoard(board *render.Board, rows int) {
	teamA, teamB := board.Teams()
	if teamA == "" && teamB == "" {
		c.printf("no game open\n")
		return
	}
	a, b := board.Window(rows)

	var sb strings.Builder
	fmt.Fprintf(&sb, "%-*s%s\n", columnWidth, teamA, teamB)
	for i := 0; i < len(a) || i < len(b); i++ {
		left, right := "", ""
		if i < len(a) {
			left = a[i].Label()
		}
		if i < len(b) {
			right = b[i].Label()
		}
		fmt.Fprintf(&sb, "%-*s%s\n", columnWidth, clip(left, columnWidth-1), right)
	}
	c.printf("%s", sb.String())
}

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "~"
}
