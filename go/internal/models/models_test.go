package models

import "testing"

func TestSessionStatusIsTerminal(t *testing.T) {
	tests := map[SessionStatus]bool{
		SessionStatusIdle:      false,
		SessionStatusRunning:   false,
		SessionStatusPaused:    false,
		SessionStatusCompleted: true,
	}
	for status, want := range tests {
		if got := status.IsTerminal(); got != want {
			t.Errorf("%s.IsTerminal() = %v, want %v", status, got, want)
		}
	}
}

func TestRoomDurationSec(t *testing.T) {
	if got := (Room{DurationMinutes: 25}).DurationSec(); got != 1500 {
		t.Fatalf("DurationSec() = %d, want 1500", got)
	}
}

func TestParticipantActivity(t *testing.T) {
	if got := (Participant{Online: true}).Activity(); got != "Focusing" {
		t.Errorf("online Activity() = %q", got)
	}
	if got := (Participant{}).Activity(); got != "Away" {
		t.Errorf("offline Activity() = %q", got)
	}
}
