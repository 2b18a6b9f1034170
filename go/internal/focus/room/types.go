package room

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/mcdev12/focusroom/go/internal/models"
)

// CreateRoomRequest represents the create-room dialog input
type CreateRoomRequest struct {
	Name            string       `json:"name"`
	DurationMinutes MinutesInput `json:"duration_minutes"`
	Description     string       `json:"description"`
}

// MinutesInput is the raw duration field as typed. JSON clients may send it as
// a string or a number; validation happens in App.ParseDurationMinutes.
type MinutesInput string

func (m *MinutesInput) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*m = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*m = MinutesInput(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("duration_minutes: %w", err)
	}
	*m = MinutesInput(n.String())
	return nil
}

// JoinRoomRequest represents the join-room dialog input
type JoinRoomRequest struct {
	Code string `json:"code"`
}

// Destination is where a view navigates after create or join.
type Destination struct {
	Room models.Room `json:"room"`
	Path string      `json:"path"`
}

// Defaults holds the fallbacks applied when room parameters are absent or invalid.
type Defaults struct {
	RoomName           string `yaml:"room_name"`
	DurationMinutes    int    `yaml:"duration_minutes"`
	MaxDurationMinutes int    `yaml:"max_duration_minutes"`
}

// DefaultDefaults returns the stock room fallbacks.
func DefaultDefaults() Defaults {
	return Defaults{
		RoomName:           "Focus Room",
		DurationMinutes:    25,
		MaxDurationMinutes: 120,
	}
}
