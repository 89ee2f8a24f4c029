package viewer

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/scoreboard/go/clients"
	"github.com/mcdev12/scoreboard/go/internal/models"
	"github.com/mcdev12/scoreboard/go/internal/session"
	"github.com/mcdev12/scoreboard/go/internal/viewstate"
)

func TestStart(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantNotices int
	}{
		{name: "catalog loaded"},
		{name: "catalog failure", err: &clients.BadResponseError{StatusCode: 503}, wantNotices: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen []viewstate.State
			view := viewstate.NewController()
			view.Subscribe(func(s viewstate.State) { seen = append(seen, s) })
			notifier := &FakeNotifier{}

			catalog := &FakeCatalog{
				ListSportsFunc: func(ctx context.Context) ([]models.Sport, error) {
					assert.Equal(t, viewstate.Loading, view.Current())
					return nil, tt.err
				},
			}
			v := New(catalog, &FakeGames{}, view, notifier)

			err := v.Start(context.Background())
			if tt.err != nil {
				assert.ErrorIs(t, err, clients.ErrBadResponse)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, viewstate.Empty, view.Current())
			assert.NotContains(t, seen, viewstate.Populated)
			assert.Len(t, notifier.Notices, tt.wantNotices)
		})
	}
}

func TestSelectSport(t *testing.T) {
	games := []models.GameSummary{{ID: "10", TeamAName: "Lions", TeamBName: "Tigers"}}

	t.Run("loads games and closes open game", func(t *testing.T) {
		catalog := &FakeCatalog{
			FetchGamesFunc: func(ctx context.Context, sportID models.ID) ([]models.GameSummary, error) {
				assert.Equal(t, models.ID("1"), sportID)
				return games, nil
			},
		}
		sessions := &FakeGames{}
		view := viewstate.NewController()
		v := New(catalog, sessions, view, &FakeNotifier{})

		require.NoError(t, v.SelectSport(context.Background(), "1"))
		assert.Equal(t, 1, sessions.Closes)
		assert.Equal(t, [][]models.GameSummary{games}, catalog.Applied)
		assert.Equal(t, viewstate.Empty, view.Current())
	})

	t.Run("deselect resets game selector", func(t *testing.T) {
		catalog := &FakeCatalog{}
		sessions := &FakeGames{}
		view := viewstate.NewController()
		view.GameLoaded()
		v := New(catalog, sessions, view, &FakeNotifier{})

		require.NoError(t, v.SelectSport(context.Background(), ""))
		assert.Equal(t, 1, catalog.Resets)
		assert.Equal(t, 1, sessions.Closes)
		assert.Equal(t, viewstate.Empty, view.Current())
	})

	t.Run("failure notifies and leaves selector", func(t *testing.T) {
		catalog := &FakeCatalog{
			FetchGamesFunc: func(ctx context.Context, sportID models.ID) ([]models.GameSummary, error) {
				return nil, &clients.NetworkError{Method: "GET", Endpoint: "/sports/1/games", Err: assert.AnError}
			},
		}
		notifier := &FakeNotifier{}
		view := viewstate.NewController()
		v := New(catalog, &FakeGames{}, view, notifier)

		err := v.SelectSport(context.Background(), "1")
		assert.ErrorIs(t, err, clients.ErrNetwork)
		assert.Empty(t, catalog.Applied)
		assert.Len(t, notifier.Notices, 1)
		assert.Equal(t, viewstate.Empty, view.Current())
	})

	t.Run("stale response is dropped", func(t *testing.T) {
		started := make(chan struct{})
		catalog := &FakeCatalog{
			FetchGamesFunc: func(ctx context.Context, sportID models.ID) ([]models.GameSummary, error) {
				if sportID == "slow" {
					close(started)
					<-ctx.Done()
					return []models.GameSummary{{ID: "old"}}, nil
				}
				return games, nil
			},
		}
		notifier := &FakeNotifier{}
		v := New(catalog, &FakeGames{}, viewstate.NewController(), notifier)

		slow := make(chan error, 1)
		go func() { slow <- v.SelectSport(context.Background(), "slow") }()
		<-started

		require.NoError(t, v.SelectSport(context.Background(), "1"))

		select {
		case err := <-slow:
			assert.ErrorIs(t, err, ErrSuperseded)
			assert.True(t, IsQuiet(err))
		case <-time.After(2 * time.Second):
			t.Fatal("slow selection never returned")
		}
		assert.Equal(t, [][]models.GameSummary{games}, catalog.Applied)
		assert.Empty(t, notifier.Notices)
	})
}

func TestSelectGame(t *testing.T) {
	sessions := &FakeGames{}
	v := New(&FakeCatalog{}, sessions, viewstate.NewController(), &FakeNotifier{})

	require.NoError(t, v.SelectGame(context.Background(), "10"))
	require.NoError(t, v.SelectGame(context.Background(), "10"))
	require.NoError(t, v.SelectGame(context.Background(), ""))

	assert.Equal(t, []models.ID{"10", "10"}, sessions.Opened)
	assert.Equal(t, 1, sessions.Closes)
}

func TestIsQuiet(t *testing.T) {
	assert.True(t, IsQuiet(ErrSuperseded))
	assert.True(t, IsQuiet(session.ErrSuperseded))
	assert.True(t, IsQuiet(&clients.NetworkError{Err: context.Canceled}))
	assert.False(t, IsQuiet(&clients.BadResponseError{StatusCode: 500}))
}
