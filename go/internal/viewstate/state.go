package viewstate

import "sync"

// State is the display mode of the viewer. Exactly one is active at a time.
type State int

const (
	Loading State = iota
	Empty
	Populated
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Empty:
		return "empty"
	case Populated:
		return "populated"
	default:
		return "unknown"
	}
}

// Controller tracks the active State and tells subscribers about changes.
// It holds no data beyond the mode flag.
type Controller struct {
	mu          sync.Mutex
	state       State
	subscribers []func(State)
}

// NewController creates a controller in the Loading state, which is where
// the viewer sits while the sport catalog is fetched on start-up.
func NewController() *Controller {
	return &Controller{state: Loading}
}

// Current returns the active state
func (c *Controller) Current() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Subscribe registers fn to be called after every state change.
func (c *Controller) Subscribe(fn func(State)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subscribers = append(c.subscribers, fn)
}

// BeginFetch is called whenever a catalog or snapshot fetch starts.
func (c *Controller) BeginFetch() { c.set(Loading) }

// CatalogLoaded is called when a sport or game list fetch completes,
// successfully or not. No game is selected at that point.
func (c *Controller) CatalogLoaded() { c.set(Empty) }

// Deselect is called when the sport or game selection is cleared.
func (c *Controller) Deselect() { c.set(Empty) }

// GameLoaded is called once a game snapshot has been rendered.
func (c *Controller) GameLoaded() { c.set(Populated) }

// FetchFailed returns the view to the safe Empty state after a failure.
func (c *Controller) FetchFailed() { c.set(Empty) }

func (c *Controller) set(next State) {
	c.mu.Lock()
	if c.state == next {
		c.mu.Unlock()
		return
	}
	c.state = next
	subscribers := make([]func(State), len(c.subscribers))
	copy(subscribers, c.subscribers)
	c.mu.Unlock()

	for _, fn := range subscribers {
		fn(next)
	}
}
