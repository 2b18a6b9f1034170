package gateway

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mcdev12/focusroom/go/internal/focus/room"
	"github.com/mcdev12/focusroom/go/internal/focus/timer"
	"github.com/mcdev12/focusroom/go/internal/models"
)

// RoomEvent is the envelope for every message sent to a room connection
type RoomEvent struct {
	ID        string          `json:"id"`        // Event UUID
	RoomCode  string          `json:"room_code"` // Room the view is showing
	Type      EventType       `json:"type"`      // Event type
	Timestamp time.Time       `json:"timestamp"` // Event creation time
	Data      json.RawMessage `json:"data"`      // Event-specific payload
}

// EventType represents the type of room event
type EventType string

const (
	EventTypeRoomJoined       EventType = "RoomJoined"
	EventTypeSessionStarted   EventType = "SessionStarted"
	EventTypeSessionPaused    EventType = "SessionPaused"
	EventTypeSessionResumed   EventType = "SessionResumed"
	EventTypeSessionReset     EventType = "SessionReset"
	EventTypeDurationChanged  EventType = "DurationChanged"
	EventTypeTimerTick        EventType = "TimerTick"
	EventTypeSessionCompleted EventType = "SessionCompleted"
	EventTypeRoomShared       EventType = "RoomShared"
	EventTypeHighlightShared  EventType = "HighlightShared"
	EventTypeCommandRejected  EventType = "CommandRejected"
)

// Published reports whether events of this type leave the process.
// Ticks and rejections stay on the connection.
func (t EventType) Published() bool {
	return t != EventTypeTimerTick && t != EventTypeCommandRejected
}

// eventTypeFor maps a controller transition to the event sent for it.
func eventTypeFor(action timer.Action) (EventType, bool) {
	switch action {
	case timer.ActionStarted:
		return EventTypeSessionStarted, true
	case timer.ActionPaused:
		return EventTypeSessionPaused, true
	case timer.ActionResumed:
		return EventTypeSessionResumed, true
	case timer.ActionReset:
		return EventTypeSessionReset, true
	case timer.ActionDurationChanged:
		return EventTypeDurationChanged, true
	case timer.ActionTicked:
		return EventTypeTimerTick, true
	case timer.ActionCompleted:
		return EventTypeSessionCompleted, true
	default:
		return "", false
	}
}

// RoomJoinedPayload is sent once when a connection opens
type RoomJoinedPayload struct {
	Room         models.Room    `json:"room"`
	Participants room.Roster    `json:"participants"`
	OnlineCount  int            `json:"online_count"`
	Snapshot     timer.Snapshot `json:"snapshot"`
}

// SessionPayload carries the session state after a transition or tick
type SessionPayload struct {
	Snapshot timer.Snapshot `json:"snapshot"`
	Clock    string         `json:"clock"`
	Caption  string         `json:"caption"`
}

// SessionCompletedPayload carries the final state and the completion summary
type SessionCompletedPayload struct {
	Snapshot timer.Snapshot `json:"snapshot"`
	Summary  room.Summary   `json:"summary"`
}

// RoomSharedPayload exposes what someone needs to join the room
type RoomSharedPayload struct {
	Code string `json:"code"`
	Path string `json:"path"`
}

// HighlightSharedPayload echoes the accepted highlight
type HighlightSharedPayload struct {
	Highlight string `json:"highlight"`
	Quote     string `json:"quote"`
}

// CommandRejectedPayload explains why a client command had no effect
type CommandRejectedPayload struct {
	Action string `json:"action"`
	Reason string `json:"reason"`
}

func newSessionPayload(s timer.Snapshot) SessionPayload {
	return SessionPayload{Snapshot: s, Clock: s.Clock(), Caption: s.Caption()}
}

// newRoomEvent marshals payload into a RoomEvent envelope.
func newRoomEvent(roomCode string, eventType EventType, at time.Time, payload interface{}) (*RoomEvent, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s payload: %w", eventType, err)
	}

	return &RoomEvent{
		ID:        uuid.New().String(),
		RoomCode:  roomCode,
		Type:      eventType,
		Timestamp: at.UTC(),
		Data:      data,
	}, nil
}

// ParseEventPayload parses event data into the appropriate payload struct
func ParseEventPayload(event *RoomEvent) (interface{}, error) {
	var payload interface{}
	switch event.Type {
	case EventTypeRoomJoined:
		payload = &RoomJoinedPayload{}
	case EventTypeSessionStarted, EventTypeSessionPaused, EventTypeSessionResumed,
		EventTypeSessionReset, EventTypeDurationChanged, EventTypeTimerTick:
		payload = &SessionPayload{}
	case EventTypeSessionCompleted:
		payload = &SessionCompletedPayload{}
	case EventTypeRoomShared:
		payload = &RoomSharedPayload{}
	case EventTypeHighlightShared:
		payload = &HighlightSharedPayload{}
	case EventTypeCommandRejected:
		payload = &CommandRejectedPayload{}
	default:
		return nil, nil // Unknown event type
	}

	if err := json.Unmarshal(event.Data, payload); err != nil {
		return nil, err
	}
	return payload, nil
}
