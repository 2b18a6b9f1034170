package models

// SessionStatus defines the lifecycle state of a focus session.
type SessionStatus string

const (
	SessionStatusIdle      SessionStatus = "IDLE"
	SessionStatusRunning   SessionStatus = "RUNNING"
	SessionStatusPaused    SessionStatus = "PAUSED"
	SessionStatusCompleted SessionStatus = "COMPLETED"
)

// IsTerminal reports whether no further ticks can apply.
func (s SessionStatus) IsTerminal() bool {
	return s == SessionStatusCompleted
}
