package room

import (
	"errors"
	"testing"

	"github.com/mcdev12/focusroom/go/internal/models"
)

func TestNewSummary(t *testing.T) {
	roster := DefaultRoster()
	roster = append(roster, models.Participant{ID: "5", Name: "Jo", Avatar: "🧑‍🎨"})

	s := NewSummary("Deep Work", roster)
	if s.Headline != "Great work on Deep Work" {
		t.Fatalf("headline = %q", s.Headline)
	}
	if len(s.FeaturedAvatars) != maxFeaturedAvatars {
		t.Fatalf("featured = %v, want %d avatars", s.FeaturedAvatars, maxFeaturedAvatars)
	}
	if s.FocusedTogether != "5 people focused together" {
		t.Fatalf("label = %q", s.FocusedTogether)
	}

	roster[0].Name = "changed"
	if s.Participants[0].Name != "You" {
		t.Fatal("summary shares roster storage with caller")
	}
}

func TestFocusedTogetherLabel(t *testing.T) {
	tests := map[int]string{
		0: "0 people focused together",
		1: "1 person focused together",
		2: "2 people focused together",
	}
	for n, want := range tests {
		if got := FocusedTogetherLabel(n); got != want {
			t.Errorf("FocusedTogetherLabel(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestShareHighlight(t *testing.T) {
	c := NewCompletion(NewSummary("Room", DefaultRoster()))

	if err := c.ShareHighlight("   "); !errors.Is(err, ErrEmptyHighlight) {
		t.Fatalf("blank highlight error = %v", err)
	}
	if _, ok := c.Highlight(); ok {
		t.Fatal("blank highlight should not be recorded")
	}
	if c.QuotedHighlight() != "" {
		t.Fatal("quoted highlight before sharing should be empty")
	}

	if err := c.ShareHighlight(" wrote the parser "); err != nil {
		t.Fatalf("ShareHighlight() error = %v", err)
	}
	text, ok := c.Highlight()
	if !ok || text != "wrote the parser" {
		t.Fatalf("Highlight() = %q, %v", text, ok)
	}
	if want := "\"wrote the parser\"\n- You"; c.QuotedHighlight() != want {
		t.Fatalf("QuotedHighlight() = %q, want %q", c.QuotedHighlight(), want)
	}

	if err := c.ShareHighlight("again"); !errors.Is(err, ErrHighlightAlreadyShared) {
		t.Fatalf("second share error = %v", err)
	}
}
