package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/focusroom/go/internal/focus/room"
	"github.com/mcdev12/focusroom/go/internal/models"
)

func newTestModel() Model {
	app := room.NewApp(room.DefaultDefaults(), nil, func() string { return "abc123" })
	return New(app, clockwork.NewFakeClock())
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case KeyEnter:
		return tea.KeyMsg{Type: tea.KeyEnter}
	case KeyEsc:
		return tea.KeyMsg{Type: tea.KeyEsc}
	case KeyTab:
		return tea.KeyMsg{Type: tea.KeyTab}
	case KeyShiftTab:
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case KeyBack:
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case KeySpace:
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case KeyCtrlC:
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	model, ok := updated.(Model)
	if !ok {
		t.Fatalf("Update returned %T", updated)
	}
	return model, cmd
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		m, _ = update(t, m, keyMsg(k))
	}
	return m
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	for _, r := range text {
		if r == ' ' {
			m = press(t, m, KeySpace)
			continue
		}
		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

// drain feeds every queued transition into the model.
func drain(t *testing.T, m Model) Model {
	t.Helper()
	for m.bridge != nil {
		select {
		case tr := <-m.bridge.transitions:
			m, _ = update(t, m, TransitionMsg{Transition: tr, bridge: m.bridge})
		default:
			return m
		}
	}
	return m
}

// newRoomModel creates a room of the given minutes through the create dialog.
func newRoomModel(t *testing.T, minutes string) Model {
	t.Helper()
	m := newTestModel()
	m = press(t, m, KeyCreate)
	m = typeText(t, m, "Deep Work")
	m = press(t, m, KeyTab, KeyBack, KeyBack)
	m = typeText(t, m, minutes)
	m = press(t, m, KeyEnter)
	if m.Screen() != ScreenRoom {
		t.Fatalf("screen = %v, want room (error %q)", m.Screen(), m.errorMessage)
	}
	t.Cleanup(m.Close)
	return m
}

func TestNewModel(t *testing.T) {
	m := newTestModel()
	if m.Screen() != ScreenLanding {
		t.Errorf("screen = %v, want landing", m.Screen())
	}
	if m.controller != nil || m.bridge != nil {
		t.Error("new model should not own a session")
	}
	view := m.View()
	for _, want := range []string{"Focus Room", "Timed Sessions", "Team Presence", "Shared Highlights"} {
		if !strings.Contains(view, want) {
			t.Errorf("landing view missing %q", want)
		}
	}
}

func TestLandingNavigation(t *testing.T) {
	m := newTestModel()

	m = press(t, m, KeyCreate)
	if m.Screen() != ScreenCreate {
		t.Fatalf("screen = %v, want create", m.Screen())
	}
	if m.createFields[fieldDuration] != "25" {
		t.Errorf("duration prefill = %q, want 25", m.createFields[fieldDuration])
	}

	m = press(t, m, KeyEsc, KeyJoin)
	if m.Screen() != ScreenJoin {
		t.Fatalf("screen = %v, want join", m.Screen())
	}

	m = press(t, m, KeyEsc)
	_, cmd := update(t, m, keyMsg(KeyQuit))
	if cmd == nil {
		t.Fatal("q on landing should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("q on landing should return tea.Quit")
	}
}

func TestCreateDisabledWhileBlank(t *testing.T) {
	m := newTestModel()
	m = press(t, m, KeyCreate, KeyEnter)
	if m.Screen() != ScreenCreate {
		t.Fatalf("blank name should keep the dialog open, screen = %v", m.Screen())
	}

	m = typeText(t, m, "Room")
	m = press(t, m, KeyTab, KeyBack, KeyBack, KeyEnter)
	if m.Screen() != ScreenCreate {
		t.Fatalf("blank duration should keep the dialog open, screen = %v", m.Screen())
	}
	if m.createReady() {
		t.Error("createReady() should be false with a blank duration")
	}
}

func TestCreateRejectsOutOfRangeDuration(t *testing.T) {
	m := newTestModel()
	m = press(t, m, KeyCreate)
	m = typeText(t, m, "Room")
	m = press(t, m, KeyTab, KeyBack, KeyBack)
	m = typeText(t, m, "500")
	m = press(t, m, KeyEnter)

	if m.Screen() != ScreenCreate {
		t.Fatalf("screen = %v, want create", m.Screen())
	}
	if !strings.Contains(m.errorMessage, "between 1 and 120") {
		t.Errorf("errorMessage = %q", m.errorMessage)
	}
}

func TestCreateDurationAcceptsDigitsOnly(t *testing.T) {
	m := newTestModel()
	m = press(t, m, KeyCreate, KeyTab)
	m = typeText(t, m, "a5 b")
	if got := m.createFields[fieldDuration]; got != "255" {
		t.Errorf("duration field = %q, want 255", got)
	}
}

func TestCreateEntersRoom(t *testing.T) {
	m := newRoomModel(t, "1")

	if m.room.Code != "abc123" || m.room.Name != "Deep Work" || m.room.DurationMinutes != 1 {
		t.Fatalf("room = %+v", m.room)
	}
	if m.snapshot.RemainingSec != 60 || m.snapshot.Status != models.SessionStatusIdle {
		t.Fatalf("snapshot = %+v", m.snapshot)
	}

	view := m.View()
	for _, want := range []string{"Deep Work", "abc123", "01:00", "Ready to focus", "3 online", "Away"} {
		if !strings.Contains(view, want) {
			t.Errorf("room view missing %q", want)
		}
	}
}

func TestJoinRoom(t *testing.T) {
	m := newTestModel()
	m = press(t, m, KeyJoin, KeyEnter)
	if m.Screen() != ScreenJoin {
		t.Fatalf("blank code should keep the dialog open, screen = %v", m.Screen())
	}

	m = typeText(t, m, "xyz789")
	m = press(t, m, KeyEnter)
	t.Cleanup(m.Close)

	if m.Screen() != ScreenRoom {
		t.Fatalf("screen = %v, want room", m.Screen())
	}
	if m.room.Code != "xyz789" || m.room.Name != "Focus Room" || m.snapshot.RemainingSec != 1500 {
		t.Fatalf("room = %+v snapshot = %+v", m.room, m.snapshot)
	}
}

func TestRoomRunsToCompletion(t *testing.T) {
	m := newRoomModel(t, "1")

	m = drain(t, press(t, m, KeySpace))
	if !m.snapshot.Ticking() || m.snapshot.Caption() != "Focusing now" {
		t.Fatalf("snapshot after space = %+v", m.snapshot)
	}

	for i := 0; i < 30; i++ {
		m.controller.Tick()
	}
	m = drain(t, m)
	for i := 0; i < 30; i++ {
		m.controller.Tick()
	}
	m = drain(t, m)

	if m.Screen() != ScreenComplete {
		t.Fatalf("screen = %v, want complete", m.Screen())
	}
	view := m.View()
	for _, want := range []string{"Session Complete!", "Great work on Deep Work", "4 people focused together"} {
		if !strings.Contains(view, want) {
			t.Errorf("complete view missing %q", want)
		}
	}

	m = press(t, m, KeyEnter)
	if _, shared := m.completion.Highlight(); shared {
		t.Fatal("blank highlight should not be shared")
	}

	m = typeText(t, m, "wrote tests")
	m = press(t, m, KeyEnter)
	text, shared := m.completion.Highlight()
	if !shared || text != "wrote tests" {
		t.Fatalf("Highlight() = %q, %v", text, shared)
	}
	if !strings.Contains(m.View(), "- You") {
		t.Error("shared highlight should be signed")
	}

	m = press(t, m, KeyEsc)
	if m.Screen() != ScreenLanding || m.controller != nil {
		t.Fatalf("esc should return home and close the session, screen = %v", m.Screen())
	}
}

func TestRoomPauseResumeReset(t *testing.T) {
	m := newRoomModel(t, "1")

	m = press(t, m, KeySpace)
	for i := 0; i < 10; i++ {
		m.controller.Tick()
	}
	m = drain(t, press(t, m, KeySpace))
	if !m.snapshot.IsPaused || m.snapshot.RemainingSec != 50 {
		t.Fatalf("paused snapshot = %+v", m.snapshot)
	}
	if !strings.Contains(m.View(), "Resume") {
		t.Error("footer should offer Resume while paused")
	}

	m = drain(t, press(t, m, KeyReset))
	if m.snapshot.Status != models.SessionStatusIdle || m.snapshot.RemainingSec != 60 {
		t.Fatalf("reset snapshot = %+v", m.snapshot)
	}
}

func TestDurationAdjustOnlyWhileNotRunning(t *testing.T) {
	m := newRoomModel(t, "25")

	m = drain(t, press(t, m, KeyLonger))
	if m.room.DurationMinutes != 26 || m.snapshot.RemainingSec != 26*60 {
		t.Fatalf("after + room = %+v snapshot = %+v", m.room, m.snapshot)
	}

	m = drain(t, press(t, m, KeyShorter, KeyShorter))
	if m.room.DurationMinutes != 24 {
		t.Fatalf("after - - duration = %d, want 24", m.room.DurationMinutes)
	}

	m = drain(t, press(t, m, KeySpace, KeyLonger))
	if m.room.DurationMinutes != 24 || m.snapshot.DurationSec != 24*60 {
		t.Fatalf("+ while running changed duration: room = %+v snapshot = %+v", m.room, m.snapshot)
	}
}

func TestDurationAdjustBounds(t *testing.T) {
	m := newRoomModel(t, "1")
	m = drain(t, press(t, m, KeyShorter))
	if m.room.DurationMinutes != 1 {
		t.Fatalf("duration = %d, want floor of 1", m.room.DurationMinutes)
	}
}

func TestShareAndLeave(t *testing.T) {
	m := newRoomModel(t, "25")

	m, cmd := update(t, m, keyMsg(KeyShare))
	if cmd == nil || !strings.Contains(m.statusText, "abc123") {
		t.Fatalf("status = %q", m.statusText)
	}
	m, _ = update(t, m, ClearStatusMsg{seq: m.statusSeq})
	if m.statusText != "" {
		t.Fatalf("status not cleared: %q", m.statusText)
	}

	oldBridge := m.bridge
	m = press(t, m, KeySpace, KeyLeave)
	if m.Screen() != ScreenLanding || m.controller != nil || m.bridge != nil {
		t.Fatalf("leave should tear down the session, screen = %v", m.Screen())
	}

	// A transition from the closed visit must be ignored.
	stale := TransitionMsg{bridge: oldBridge}
	m, cmd = update(t, m, stale)
	if cmd != nil || m.Screen() != ScreenLanding {
		t.Fatal("stale transition should be ignored")
	}
}

func TestCtrlCQuitsFromRoom(t *testing.T) {
	m := newRoomModel(t, "25")
	m, cmd := update(t, m, keyMsg(KeyCtrlC))
	if cmd == nil {
		t.Fatal("ctrl+c should quit")
	}
	if m.controller != nil {
		t.Fatal("ctrl+c should close the session")
	}
}
