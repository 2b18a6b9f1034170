package models

// Participant represents a (mock) member shown in a room
type Participant struct {
	ID     string `json:"id" yaml:"id"`
	Name   string `json:"name" yaml:"name"`
	Avatar string `json:"avatar" yaml:"avatar"`
	Online bool   `json:"online" yaml:"online"`
}

// Activity returns the label shown next to the participant.
func (p Participant) Activity() string {
	if p.Online {
		return "Focusing"
	}
	return "Away"
}
