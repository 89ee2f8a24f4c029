package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/mcdev12/scoreboard/go/internal/live"
	"github.com/mcdev12/scoreboard/go/internal/models"
)

type FakeFetcher struct {
	GetGameFunc func(ctx context.Context, gameID models.ID) (*models.Game, error)
}

func (f *FakeFetcher) GetGame(ctx context.Context, gameID models.ID) (*models.Game, error) {
	return f.GetGameFunc(ctx, gameID)
}

type FakeStream struct {
	id     string
	gameID models.ID

	mu     sync.Mutex
	closed bool
}

func (s *FakeStream) ID() string        { return s.id }
func (s *FakeStream) GameID() models.ID { return s.gameID }

func (s *FakeStream) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

func (s *FakeStream) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// FakeOpener hands out FakeStreams and keeps the listener of each so tests
// can play the transport's part.
type FakeOpener struct {
	mu        sync.Mutex
	streams   []*FakeStream
	listeners []live.Listener
	OpenErr   error
}

func (f *FakeOpener) Open(gameID models.ID, listener live.Listener) (live.Stream, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.OpenErr != nil {
		return nil, f.OpenErr
	}
	s := &FakeStream{id: fmt.Sprintf("ch-%d", len(f.streams)+1), gameID: gameID}
	f.streams = append(f.streams, s)
	f.listeners = append(f.listeners, listener)
	return s, nil
}

func (f *FakeOpener) Stream(i int) (*FakeStream, live.Listener) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.streams[i], f.listeners[i]
}

func (f *FakeOpener) Opened() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.streams)
}

// OpenCount is the number of streams nobody has closed yet.
func (f *FakeOpener) OpenCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, s := range f.streams {
		if !s.Closed() {
			n++
		}
	}
	return n
}

type FakeNotifier struct {
	mu       sync.Mutex
	Notices  []error
	Warnings []string
}

func (f *FakeNotifier) Notify(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Notices = append(f.Notices, err)
}

func (f *FakeNotifier) Warn(message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Warnings = append(f.Warnings, message)
}

func (f *FakeNotifier) Counts() (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Notices), len(f.Warnings)
}
