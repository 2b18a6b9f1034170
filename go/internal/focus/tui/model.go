package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/focusroom/go/internal/focus/room"
	"github.com/mcdev12/focusroom/go/internal/focus/timer"
	"github.com/mcdev12/focusroom/go/internal/models"
	"github.com/rs/zerolog/log"
)

// Screen identifies what the TUI is showing.
type Screen int

const (
	ScreenLanding Screen = iota
	ScreenCreate
	ScreenJoin
	ScreenRoom
	ScreenComplete
)

// Create dialog fields, in tab order.
const (
	fieldName = iota
	fieldDuration
	fieldDescription
	fieldCount
)

const statusTimeout = 4 * time.Second

// Model is the root bubbletea model for focus-tui.
type Model struct {
	app   *room.App
	clock clockwork.Clock

	screen Screen
	width  int
	height int

	// Create dialog
	createFields [fieldCount]string
	createFocus  int

	// Join dialog
	joinCode string

	// Room visit; the controller and bridge live exactly as long as the visit
	room       models.Room
	roster     room.Roster
	controller *timer.Controller
	bridge     *sessionBridge
	snapshot   timer.Snapshot

	// Completion
	completion *room.Completion
	highlight  string

	statusText   string
	statusSeq    int
	errorMessage string
}

// New creates a Model on the landing screen.
func New(app *room.App, clock clockwork.Clock) Model {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return Model{
		app:    app,
		clock:  clock,
		screen: ScreenLanding,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.SetWindowTitle("Focus Room")
}

// Screen returns the current screen.
func (m Model) Screen() Screen {
	return m.screen
}

// Close tears down any open session. Safe to call more than once.
func (m *Model) Close() {
	if m.controller != nil {
		m.controller.Close()
		m.controller = nil
	}
	if m.bridge != nil {
		m.bridge.close()
		m.bridge = nil
	}
}

// Update processes messages and returns the updated model and any commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case TransitionMsg:
		if msg.bridge == nil || msg.bridge != m.bridge {
			// From a visit that already ended
			return m, nil
		}
		m.applyTransition(msg.Transition)
		return m, waitForTransitionCmd(m.bridge)

	case ClearStatusMsg:
		if msg.seq == m.statusSeq {
			m.statusText = ""
		}
		return m, nil
	}

	return m, nil
}

func (m *Model) applyTransition(t timer.Transition) {
	m.snapshot = t.Snapshot

	if t.Action == timer.ActionCompleted {
		m.completion = room.NewCompletion(room.NewSummary(m.room.Name, m.roster))
		m.highlight = ""
		m.screen = ScreenComplete
		log.Info().
			Str("room_code", m.room.Code).
			Int("duration_sec", t.Snapshot.DurationSec).
			Msg("focus session completed")
	}
}

// handleKey processes key presses for the current screen.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == KeyCtrlC {
		m.Close()
		return m, tea.Quit
	}

	switch m.screen {
	case ScreenLanding:
		return m.handleLandingKey(msg)
	case ScreenCreate:
		return m.handleCreateKey(msg)
	case ScreenJoin:
		return m.handleJoinKey(msg)
	case ScreenRoom:
		return m.handleRoomKey(msg)
	case ScreenComplete:
		return m.handleCompleteKey(msg)
	}
	return m, nil
}

func (m Model) handleLandingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case KeyQuit:
		return m, tea.Quit
	case KeyCreate:
		m.createFields = [fieldCount]string{}
		m.createFields[fieldDuration] = strconv.Itoa(m.app.Defaults().DurationMinutes)
		m.createFocus = fieldName
		m.errorMessage = ""
		m.screen = ScreenCreate
	case KeyJoin:
		m.joinCode = ""
		m.errorMessage = ""
		m.screen = ScreenJoin
	}
	return m, nil
}

// createReady mirrors the disabled state of the create button.
func (m Model) createReady() bool {
	return strings.TrimSpace(m.createFields[fieldName]) != "" &&
		strings.TrimSpace(m.createFields[fieldDuration]) != ""
}

func (m Model) handleCreateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case KeyEsc:
		m.errorMessage = ""
		m.screen = ScreenLanding
		return m, nil
	case KeyTab, "down":
		m.createFocus = (m.createFocus + 1) % fieldCount
		return m, nil
	case KeyShiftTab, "up":
		m.createFocus = (m.createFocus + fieldCount - 1) % fieldCount
		return m, nil
	case KeyEnter:
		if !m.createReady() {
			return m, nil
		}
		dest, err := m.app.CreateRoom(room.CreateRoomRequest{
			Name:            m.createFields[fieldName],
			DurationMinutes: room.MinutesInput(m.createFields[fieldDuration]),
			Description:     m.createFields[fieldDescription],
		})
		if err != nil {
			m.errorMessage = m.validationMessage(err)
			return m, nil
		}
		return m.enterRoom(dest.Room)
	}

	field := &m.createFields[m.createFocus]
	if m.createFocus == fieldDuration {
		*field = editText(*field, msg, isDigit)
	} else {
		*field = editText(*field, msg, nil)
	}
	return m, nil
}

func (m Model) handleJoinKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case KeyEsc:
		m.errorMessage = ""
		m.screen = ScreenLanding
		return m, nil
	case KeyEnter:
		if strings.TrimSpace(m.joinCode) == "" {
			return m, nil
		}
		dest, err := m.app.JoinRoom(room.JoinRoomRequest{Code: m.joinCode})
		if err != nil {
			m.errorMessage = m.validationMessage(err)
			return m, nil
		}
		return m.enterRoom(dest.Room)
	}

	m.joinCode = editText(m.joinCode, msg, nil)
	return m, nil
}

func (m Model) handleRoomKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case KeySpace:
		m.controller.Toggle()
	case KeyReset:
		m.controller.Reset()
	case KeyLonger, KeyLonger2:
		m.adjustDuration(1)
	case KeyShorter:
		m.adjustDuration(-1)
	case KeyShare:
		return m.setStatus("Room code " + m.room.Code + " · " + room.RoomPath(m.room))
	case KeyLeave:
		m.leave()
	}
	return m, nil
}

func (m Model) handleCompleteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	_, shared := m.completion.Highlight()

	switch msg.String() {
	case KeyEsc:
		m.leave()
		return m, nil
	case KeyEnter:
		if shared || strings.TrimSpace(m.highlight) == "" {
			return m, nil
		}
		if err := m.completion.ShareHighlight(m.highlight); err != nil {
			m.errorMessage = err.Error()
			return m, nil
		}
		m.errorMessage = ""
		return m, nil
	}

	if !shared {
		m.highlight = editText(m.highlight, msg, nil)
	}
	return m, nil
}

// enterRoom opens a fresh session for rm and starts listening to it.
func (m Model) enterRoom(rm models.Room) (tea.Model, tea.Cmd) {
	m.Close()

	bridge := newSessionBridge()
	controller, err := timer.NewController(rm.DurationSec(), timer.Options{
		Clock:    m.clock,
		OnChange: bridge.forward,
	})
	if err != nil {
		bridge.close()
		m.errorMessage = err.Error()
		return m, nil
	}

	m.room = rm
	m.roster = m.app.Roster()
	m.controller = controller
	m.bridge = bridge
	m.snapshot = controller.Snapshot()
	m.completion = nil
	m.highlight = ""
	m.errorMessage = ""
	m.statusText = ""
	m.screen = ScreenRoom

	log.Info().
		Str("room_code", rm.Code).
		Str("room_name", rm.Name).
		Int("duration_minutes", rm.DurationMinutes).
		Msg("entered room")

	return m, waitForTransitionCmd(bridge)
}

func (m *Model) leave() {
	log.Info().Str("room_code", m.room.Code).Msg("left room")
	m.Close()
	m.completion = nil
	m.highlight = ""
	m.statusText = ""
	m.screen = ScreenLanding
}

// adjustDuration changes the session length by delta minutes while not ticking.
func (m *Model) adjustDuration(delta int) {
	if m.controller.Snapshot().Ticking() {
		return
	}
	minutes := m.app.BoundDuration(m.room.DurationMinutes + delta)
	if minutes == m.room.DurationMinutes {
		return
	}
	if err := m.controller.SetDuration(minutes * 60); err != nil {
		m.errorMessage = err.Error()
		return
	}
	m.room.DurationMinutes = minutes
}

func (m Model) setStatus(text string) (tea.Model, tea.Cmd) {
	m.statusSeq++
	m.statusText = text
	seq := m.statusSeq
	return m, tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return ClearStatusMsg{seq: seq}
	})
}

func (m Model) validationMessage(err error) string {
	switch {
	case errors.Is(err, room.ErrEmptyRoomName):
		return "Room name is required"
	case errors.Is(err, room.ErrEmptyRoomCode):
		return "Room code is required"
	case errors.Is(err, room.ErrInvalidDuration):
		return fmt.Sprintf("Duration must be between 1 and %d minutes", m.app.Defaults().MaxDurationMinutes)
	}
	return err.Error()
}

// editText applies a typing key to s. allow filters runes when non-nil.
func editText(s string, msg tea.KeyMsg, allow func(rune) bool) string {
	switch msg.Type {
	case tea.KeyBackspace:
		r := []rune(s)
		if len(r) == 0 {
			return s
		}
		return string(r[:len(r)-1])
	case tea.KeySpace:
		if allow == nil {
			return s + " "
		}
		return s
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			if allow == nil || allow(r) {
				s += string(r)
			}
		}
	}
	return s
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
