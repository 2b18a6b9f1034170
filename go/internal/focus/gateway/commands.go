package gateway

// ClientAction names a command a room connection can send
type ClientAction string

const (
	ActionStart          ClientAction = "start"
	ActionPause          ClientAction = "pause"
	ActionToggle         ClientAction = "toggle"
	ActionReset          ClientAction = "reset"
	ActionSetDuration    ClientAction = "set_duration"
	ActionShareRoom      ClientAction = "share_room"
	ActionShareHighlight ClientAction = "share_highlight"
	ActionLeave          ClientAction = "leave"
)

// ClientCommand is the JSON message a client sends over the room socket
type ClientCommand struct {
	Action          ClientAction `json:"action"`
	DurationMinutes int          `json:"duration_minutes,omitempty"`
	Text            string       `json:"text,omitempty"`
}
