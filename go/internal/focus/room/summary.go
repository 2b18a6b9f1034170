package room

import (
	"errors"
	"fmt"
	"strings"
)

const maxFeaturedAvatars = 4

// HighlightAttribution signs a shared highlight.
const HighlightAttribution = "- You"

var (
	ErrEmptyHighlight         = errors.New("highlight is required")
	ErrHighlightAlreadyShared = errors.New("highlight already shared")
)

// Summary is the session-complete screen content
type Summary struct {
	RoomName        string   `json:"room_name"`
	Headline        string   `json:"headline"`
	Participants    Roster   `json:"participants"`
	FeaturedAvatars []string `json:"featured_avatars"`
	FocusedTogether string   `json:"focused_together"`
}

// NewSummary builds the completion summary for a room and its roster.
func NewSummary(roomName string, roster Roster) Summary {
	featured := make([]string, 0, maxFeaturedAvatars)
	for i, p := range roster {
		if i == maxFeaturedAvatars {
			break
		}
		featured = append(featured, p.Avatar)
	}

	return Summary{
		RoomName:        roomName,
		Headline:        "Great work on " + roomName,
		Participants:    roster.Clone(),
		FeaturedAvatars: featured,
		FocusedTogether: FocusedTogetherLabel(len(roster)),
	}
}

// FocusedTogetherLabel pluralizes the participant count.
func FocusedTogetherLabel(n int) string {
	if n == 1 {
		return "1 person focused together"
	}
	return fmt.Sprintf("%d people focused together", n)
}

// Completion is the post-session state owned by one view.
type Completion struct {
	Summary   Summary
	highlight string
	shared    bool
}

// NewCompletion starts the post-session state for a summary.
func NewCompletion(summary Summary) *Completion {
	return &Completion{Summary: summary}
}

// ShareHighlight records what the user accomplished. Blank text is rejected,
// and a highlight can be shared once.
func (c *Completion) ShareHighlight(text string) error {
	if c.shared {
		return ErrHighlightAlreadyShared
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyHighlight
	}
	c.highlight = text
	c.shared = true
	return nil
}

// Highlight returns the shared highlight, if any.
func (c *Completion) Highlight() (string, bool) {
	return c.highlight, c.shared
}

// QuotedHighlight renders the shared highlight the way the summary shows it.
func (c *Completion) QuotedHighlight() string {
	if !c.shared {
		return ""
	}
	return "\"" + c.highlight + "\"\n" + HighlightAttribution
}
