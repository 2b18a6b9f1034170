package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Event is a session lifecycle notification leaving the process.
type Event struct {
	ID         uuid.UUID       `json:"id"`
	Type       string          `json:"type"`
	RoomCode   string          `json:"room_code"`
	ViewID     string          `json:"view_id"`
	OccurredAt time.Time       `json:"occurred_at"`
	Payload    json.RawMessage `json:"payload"`
}

// NewEvent marshals payload into an Event. A nil id gets a fresh one.
func NewEvent(id uuid.UUID, eventType, roomCode, viewID string, occurredAt time.Time, payload interface{}) (Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Event{}, fmt.Errorf("marshal %s payload: %w", eventType, err)
	}

	if id == uuid.Nil {
		id = uuid.New()
	}

	return Event{
		ID:         id,
		Type:       eventType,
		RoomCode:   roomCode,
		ViewID:     viewID,
		OccurredAt: occurredAt.UTC(),
		Payload:    data,
	}, nil
}

// Publisher delivers events to whatever is listening outside the process.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}
