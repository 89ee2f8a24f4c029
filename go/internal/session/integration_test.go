package session_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/scoreboard/go/clients/scoreboard_client"
	"github.com/mcdev12/scoreboard/go/internal/feed"
	"github.com/mcdev12/scoreboard/go/internal/live"
	"github.com/mcdev12/scoreboard/go/internal/models"
	"github.com/mcdev12/scoreboard/go/internal/render"
	"github.com/mcdev12/scoreboard/go/internal/session"
	"github.com/mcdev12/scoreboard/go/internal/viewstate"
)

type notices struct {
	mu       sync.Mutex
	errors   []error
	warnings []string
}

func (n *notices) Notify(err error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors = append(n.errors, err)
}

func (n *notices) Warn(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.warnings = append(n.warnings, message)
}

type feedHarness struct {
	service  *feed.Service
	server   *httptest.Server
	board    *render.Board
	view     *viewstate.Controller
	notifier *notices
	manager  *session.Manager
}

func newFeedHarness(t *testing.T, ctx context.Context) *feedHarness {
	t.Helper()

	service := feed.NewService(feed.DefaultConfig(), feed.NewStore(feed.DefaultFixture()), clockwork.NewRealClock(), nil)
	go service.Start(ctx)
	server := httptest.NewServer(feed.NewRootHandler(service, nil))
	t.Cleanup(server.Close)

	h := &feedHarness{
		service:  service,
		server:   server,
		board:    render.NewBoard(clockwork.NewFakeClock(), nil),
		view:     viewstate.NewController(),
		notifier: &notices{},
	}
	h.manager = session.NewManager(
		scoreboard_client.NewScoreboardClient(server.URL),
		live.NewDialer(server.URL, live.DefaultConfig()),
		h.board,
		h.view,
		h.notifier,
	)
	go h.manager.Run(ctx)
	return h
}

func TestManagerAgainstFeed(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h := newFeedHarness(t, ctx)
	service, board, view, notifier, manager := h.service, h.board, h.view, h.notifier, h.manager

	require.NoError(t, manager.OpenGame(ctx, "1"))
	assert.Equal(t, viewstate.Populated, view.Current())
	teamA, teamB := board.Teams()
	assert.Equal(t, "Lions", teamA)
	assert.Equal(t, "Tigers", teamB)
	assert.Equal(t, []string{"5' Goal"}, board.Column(models.TeamA))

	require.Eventually(t, func() bool {
		return service.Connections().ConnectionCount("1") == 1
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, service.Publish("1", models.Event{Minute: 12, Description: "Foul", Team: models.TeamB}, feed.SourceHTTP))
	require.NoError(t, service.Publish("1", models.Event{Minute: 30, Description: "Goal", Team: models.TeamA}, feed.SourceHTTP))

	require.Eventually(t, func() bool {
		return len(board.Column(models.TeamA)) == 2 && len(board.Column(models.TeamB)) == 1
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, []string{"5' Goal", "30' Goal"}, board.Column(models.TeamA))
	assert.Equal(t, []string{"12' Foul"}, board.Column(models.TeamB))

	require.NoError(t, manager.CloseGame(ctx))
	assert.Equal(t, viewstate.Empty, view.Current())
	assert.Empty(t, board.Column(models.TeamA))
	require.Eventually(t, func() bool {
		return service.Connections().ConnectionCount("") == 0
	}, 2*time.Second, 10*time.Millisecond)

	// A missing game is a bad response, shown to the user.
	err := manager.OpenGame(ctx, "404")
	require.Error(t, err)
	assert.Equal(t, viewstate.Empty, view.Current())

	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	assert.Len(t, notifier.errors, 1)
	assert.Empty(t, notifier.warnings)
}

func TestManagerKeepsChannelForLargeEscapedDescriptions(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h := newFeedHarness(t, ctx)
	require.NoError(t, h.manager.OpenGame(ctx, "1"))
	require.Eventually(t, func() bool {
		return h.service.Connections().ConnectionCount("1") == 1
	}, 2*time.Second, 10*time.Millisecond)

	// Close to the feed's body limit, and every character needs escaping
	// under HTML-safe JSON.
	description := strings.Repeat("<&>", 1300)
	body := fmt.Sprintf(`{"minute":1,"description":%q,"team":"A"}`, description)
	resp, err := http.Post(h.server.URL+"/games/1/events", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusAccepted, resp.StatusCode)

	require.NoError(t, h.service.Publish("1", models.Event{Minute: 2, Description: "Goal", Team: models.TeamA}, feed.SourceHTTP))

	require.Eventually(t, func() bool {
		return len(h.board.Column(models.TeamA)) == 3
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, []string{"5' Goal", "1' " + description, "2' Goal"}, h.board.Column(models.TeamA))

	current, err := h.manager.Session(ctx)
	require.NoError(t, err)
	assert.True(t, current.Live())

	h.notifier.mu.Lock()
	defer h.notifier.mu.Unlock()
	assert.Empty(t, h.notifier.warnings)
}
