package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ID identifies a sport or a game. The feed may send ids as JSON strings
// or numbers; both decode to the same textual form.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string {
	return string(id)
}

// Sport represents a category of games, e.g. a league or discipline
type Sport struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
}
