package gateway

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/focusroom/go/internal/focus/room"
	"github.com/mcdev12/focusroom/go/internal/focus/timer"
	"github.com/mcdev12/focusroom/go/internal/models"
	"github.com/rs/zerolog/log"
)

var errSessionNotComplete = errors.New("session is not complete")

// roomView is the session state owned by a single connection. Nothing in it is
// shared with other connections, even those showing the same room code.
type roomView struct {
	id         string
	app        *room.App
	clock      clockwork.Clock
	controller *timer.Controller
	emit       func(*RoomEvent)

	mu         sync.Mutex
	room       models.Room
	roster     room.Roster
	completion *room.Completion
}

// newRoomView creates the view and its idle controller. emit must not block.
func newRoomView(id string, app *room.App, rm models.Room, clock clockwork.Clock, tick time.Duration, emit func(*RoomEvent)) (*roomView, error) {
	v := &roomView{
		id:     id,
		app:    app,
		clock:  clock,
		emit:   emit,
		room:   rm,
		roster: app.Roster(),
	}

	controller, err := timer.NewController(rm.DurationSec(), timer.Options{
		Clock:        clock,
		TickInterval: tick,
		OnChange:     v.onTransition,
		OnComplete:   v.onComplete,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create session controller: %w", err)
	}
	v.controller = controller

	return v, nil
}

// joined builds the RoomJoined event describing the fresh view.
func (v *roomView) joined() (*RoomEvent, error) {
	v.mu.Lock()
	payload := RoomJoinedPayload{
		Room:         v.room,
		Participants: v.roster.Clone(),
		OnlineCount:  v.roster.OnlineCount(),
		Snapshot:     v.controller.Snapshot(),
	}
	code := v.room.Code
	v.mu.Unlock()

	return newRoomEvent(code, EventTypeRoomJoined, v.clock.Now(), payload)
}

// handle applies a client command. It returns true when the client asked to leave.
func (v *roomView) handle(cmd ClientCommand) bool {
	switch cmd.Action {
	case ActionStart:
		if !v.controller.Start() {
			v.reject(cmd.Action, v.noopReason("start"))
		}
	case ActionPause:
		if !v.controller.Pause() {
			v.reject(cmd.Action, v.noopReason("pause"))
		}
	case ActionToggle:
		if !v.controller.Toggle() {
			v.reject(cmd.Action, v.noopReason("toggle"))
		}
	case ActionReset:
		v.controller.Reset()
	case ActionSetDuration:
		v.setDuration(cmd)
	case ActionShareRoom:
		v.shareRoom()
	case ActionShareHighlight:
		v.shareHighlight(cmd)
	case ActionLeave:
		return true
	default:
		v.reject(cmd.Action, fmt.Sprintf("unknown action %q", cmd.Action))
	}
	return false
}

// close stops the session ticker.
func (v *roomView) close() {
	v.controller.Close()
}

func (v *roomView) setDuration(cmd ClientCommand) {
	if err := v.app.CheckDurationMinutes(cmd.DurationMinutes); err != nil {
		v.reject(cmd.Action, err.Error())
		return
	}
	if err := v.controller.SetDuration(cmd.DurationMinutes * 60); err != nil {
		v.reject(cmd.Action, err.Error())
		return
	}

	v.mu.Lock()
	v.room.DurationMinutes = cmd.DurationMinutes
	v.mu.Unlock()
}

func (v *roomView) shareRoom() {
	v.mu.Lock()
	rm := v.room
	v.mu.Unlock()

	v.send(rm.Code, EventTypeRoomShared, v.clock.Now(), RoomSharedPayload{
		Code: rm.Code,
		Path: room.RoomPath(rm),
	})
}

func (v *roomView) shareHighlight(cmd ClientCommand) {
	v.mu.Lock()
	completion := v.completion
	code := v.room.Code
	if completion == nil {
		v.mu.Unlock()
		v.reject(cmd.Action, errSessionNotComplete.Error())
		return
	}
	err := completion.ShareHighlight(cmd.Text)
	text, _ := completion.Highlight()
	quote := completion.QuotedHighlight()
	v.mu.Unlock()

	if err != nil {
		v.reject(cmd.Action, err.Error())
		return
	}

	v.send(code, EventTypeHighlightShared, v.clock.Now(), HighlightSharedPayload{
		Highlight: text,
		Quote:     quote,
	})
}

// onTransition runs outside the controller lock and must not call back into it.
func (v *roomView) onTransition(t timer.Transition) {
	eventType, ok := eventTypeFor(t.Action)
	if !ok {
		return
	}

	v.mu.Lock()
	code := v.room.Code
	var payload interface{}
	switch t.Action {
	case timer.ActionCompleted:
		summary := room.NewSummary(v.room.Name, v.roster)
		v.completion = room.NewCompletion(summary)
		payload = SessionCompletedPayload{Snapshot: t.Snapshot, Summary: summary}
	case timer.ActionReset, timer.ActionDurationChanged:
		v.completion = nil
		payload = newSessionPayload(t.Snapshot)
	default:
		payload = newSessionPayload(t.Snapshot)
	}
	v.mu.Unlock()

	v.send(code, eventType, t.At, payload)
}

func (v *roomView) onComplete(s timer.Snapshot) {
	log.Info().
		Str("view_id", v.id).
		Int("duration_sec", s.DurationSec).
		Msg("focus session completed")
}

func (v *roomView) reject(action ClientAction, reason string) {
	v.mu.Lock()
	code := v.room.Code
	v.mu.Unlock()

	log.Debug().
		Str("view_id", v.id).
		Str("action", string(action)).
		Str("reason", reason).
		Msg("command rejected")

	v.send(code, EventTypeCommandRejected, v.clock.Now(), CommandRejectedPayload{
		Action: string(action),
		Reason: reason,
	})
}

func (v *roomView) noopReason(verb string) string {
	status := strings.ToLower(string(v.controller.Snapshot().Status))
	return fmt.Sprintf("cannot %s a session that is %s", verb, status)
}

func (v *roomView) send(code string, eventType EventType, at time.Time, payload interface{}) {
	event, err := newRoomEvent(code, eventType, at, payload)
	if err != nil {
		log.Error().Err(err).Str("view_id", v.id).Msg("failed to build room event")
		return
	}
	v.emit(event)
}
