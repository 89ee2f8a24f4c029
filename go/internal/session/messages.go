package session

import (
	"github.com/mcdev12/scoreboard/go/internal/live"
	"github.com/mcdev12/scoreboard/go/internal/models"
)

type sessionMsg interface{ isSessionMsg() }

type openGame struct {
	gameID models.ID
	reply  chan error
}

type closeGame struct {
	reply chan struct{}
}

type getSession struct {
	reply chan Session
}

type snapshotLoaded struct {
	generation uint64
	game       *models.Game
	err        error
}

type channelOpened struct{ stream live.Stream }

type channelMessage struct {
	stream live.Stream
	event  models.Event
}

type channelFailed struct {
	stream live.Stream
	err    error
}

type channelClosed struct {
	stream   live.Stream
	explicit bool
}

func (openGame) isSessionMsg()       {}
func (closeGame) isSessionMsg()      {}
func (getSession) isSessionMsg()     {}
func (snapshotLoaded) isSessionMsg() {}
func (channelOpened) isSessionMsg()  {}
func (channelMessage) isSessionMsg() {}
func (channelFailed) isSessionMsg()  {}
func (channelClosed) isSessionMsg()  {}

// channelListener turns channel callbacks into loop messages, so they are
// handled one at a time alongside everything else.
type channelListener struct {
	m *Manager
}

func (l channelListener) OnOpen(s live.Stream) {
	l.m.postAsync(channelOpened{stream: s})
}

func (l channelListener) OnMessage(s live.Stream, event models.Event) {
	l.m.postAsync(channelMessage{stream: s, event: event})
}

func (l channelListener) OnError(s live.Stream, err error) {
	l.m.postAsync(channelFailed{stream: s, err: err})
}

func (l channelListener) OnClose(s live.Stream, explicit bool) {
	l.m.postAsync(channelClosed{stream: s, explicit: explicit})
}
