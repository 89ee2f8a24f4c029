package live

import "time"

// Config holds configuration for live update connections
type Config struct {
	HandshakeTimeout time.Duration
	WriteTimeout     time.Duration
	// ReadTimeout is how long the channel waits for any frame, pings
	// included, before treating the peer as gone.
	ReadTimeout      time.Duration
	// MaxMessageSize bounds one event frame. It leaves room for JSON
	// escaping to grow a feed's 4 KiB event body several times over.
	MaxMessageSize   int64
	ReadBufferSize   int
	WriteBufferSize  int
}

// DefaultConfig matches the feed's 30s ping interval with room to spare.
func DefaultConfig() Config {
	return Config{
		HandshakeTimeout: 10 * time.Second,
		WriteTimeout:     10 * time.Second,
		ReadTimeout:      75 * time.Second,
		MaxMessageSize:   64 << 10,
		ReadBufferSize:   1024,
		WriteBufferSize:  1024,
	}
}
