package live

import (
	"fmt"

	"github.com/mcdev12/scoreboard/go/internal/models"
)

// Stream is the handle a Listener receives with every notification.
type Stream interface {
	ID() string
	GameID() models.ID
	Close()
}

// Listener receives the notifications of one channel. Calls for a given
// channel are made from a single goroutine, in transport order.
type Listener interface {
	OnOpen(s Stream)
	OnMessage(s Stream, event models.Event)
	OnError(s Stream, err error)
	// OnClose is the last call for a channel. explicit is true when the
	// close was requested through Close.
	OnClose(s Stream, explicit bool)
}

// TransportError is a failure of the underlying connection.
type TransportError struct {
	GameID models.ID
	Op     string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("live channel for game %s: %s: %v", e.GameID, e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
