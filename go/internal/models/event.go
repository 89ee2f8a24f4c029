package models

import "strconv"

// Team identifies which side of a game an event belongs to
type Team string

const (
	TeamA Team = "A"
	TeamB Team = "B"
)

// Valid reports whether the team is one of the two columns.
func (t Team) Valid() bool {
	return t == TeamA || t == TeamB
}

// Event is a single play-by-play record. Events carry no sequence number;
// the order in which they arrive is the only ordering there is.
type Event struct {
	Minute      float64 `json:"minute"`
	Description string  `json:"description"`
	Team        Team    `json:"team"`
}

// Label formats the event the way a column shows it, e.g. "5' Goal".
func (e Event) Label() string {
	return strconv.FormatFloat(e.Minute, 'f', -1, 64) + "' " + e.Description
}
