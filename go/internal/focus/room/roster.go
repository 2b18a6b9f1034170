package room

import "github.com/mcdev12/focusroom/go/internal/models"

// Roster is the participant list a single view owns.
type Roster []models.Participant

// DefaultRoster returns a fresh copy of the demo participants.
func DefaultRoster() Roster {
	return Roster{
		{ID: "1", Name: "You", Avatar: "🧑", Online: true},
		{ID: "2", Name: "Alex", Avatar: "👨", Online: true},
		{ID: "3", Name: "Sarah", Avatar: "👩", Online: true},
		{ID: "4", Name: "Mike", Avatar: "👨‍💼", Online: false},
	}
}

// Clone returns an independent copy so views never share a roster.
func (r Roster) Clone() Roster {
	if r == nil {
		return nil
	}
	out := make(Roster, len(r))
	copy(out, r)
	return out
}

// OnlineCount returns how many participants are online.
func (r Roster) OnlineCount() int {
	n := 0
	for _, p := range r {
		if p.Online {
			n++
		}
	}
	return n
}
