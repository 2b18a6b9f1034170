package models

// Room is a client-side grouping identified by an opaque code.
// It has no server-side existence beyond the view that opened it.
type Room struct {
	Code            string `json:"code"`
	Name            string `json:"name"`
	DurationMinutes int    `json:"duration_minutes"`
	Description     string `json:"description,omitempty"`
}

// DurationSec returns the configured focus duration in seconds.
func (r Room) DurationSec() int {
	return r.DurationMinutes * 60
}
