package timer

import (
	"fmt"

	"github.com/mcdev12/focusroom/go/internal/models"
)

// Snapshot is a point-in-time copy of a session.
type Snapshot struct {
	DurationSec  int                  `json:"duration_sec"`
	RemainingSec int                  `json:"remaining_sec"`
	Status       models.SessionStatus `json:"status"`
	IsRunning    bool                 `json:"is_running"`
	IsPaused     bool                 `json:"is_paused"`
	Progress     float64              `json:"progress"`
}

func newSnapshot(durationSec, remainingSec int, status models.SessionStatus) Snapshot {
	s := Snapshot{
		DurationSec:  durationSec,
		RemainingSec: remainingSec,
		Status:       status,
		IsRunning:    status == models.SessionStatusRunning || status == models.SessionStatusPaused,
		IsPaused:     status == models.SessionStatusPaused,
	}
	if durationSec > 0 {
		s.Progress = float64(durationSec-remainingSec) / float64(durationSec) * 100
	}
	return s
}

// IdleSnapshot describes a session of durationSec that has not started.
func IdleSnapshot(durationSec int) Snapshot {
	return newSnapshot(durationSec, durationSec, models.SessionStatusIdle)
}

// ElapsedSec returns how many seconds have been counted down.
func (s Snapshot) ElapsedSec() int {
	return s.DurationSec - s.RemainingSec
}

// Clock formats the remaining time as MM:SS.
func (s Snapshot) Clock() string {
	return fmt.Sprintf("%02d:%02d", s.RemainingSec/60, s.RemainingSec%60)
}

// Ticking reports whether the countdown is live.
func (s Snapshot) Ticking() bool {
	return s.Status == models.SessionStatusRunning
}

// Caption is the line shown under the clock.
func (s Snapshot) Caption() string {
	if s.Ticking() {
		return "Focusing now"
	}
	return "Ready to focus"
}
