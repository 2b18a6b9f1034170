package publisher

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
)

type fakeConn struct {
	msgs   []*nats.Msg
	err    error
	closed bool
}

func (f *fakeConn) PublishMsg(m *nats.Msg) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, m)
	return nil
}

func (f *fakeConn) Close() { f.closed = true }

func TestNATSPublisherPublish(t *testing.T) {
	conn := &fakeConn{}
	p := newNATSPublisher(conn, "focus.events")

	at := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	event, err := NewEvent(uuid.Nil, "SessionCompleted", "ab12cd", "view-1", at, map[string]int{"duration_sec": 60})
	if err != nil {
		t.Fatalf("NewEvent() error = %v", err)
	}

	if err := p.Publish(context.Background(), event); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
	if len(conn.msgs) != 1 {
		t.Fatalf("published %d messages, want 1", len(conn.msgs))
	}

	msg := conn.msgs[0]
	if msg.Subject != "focus.events.ab12cd.sessioncompleted" {
		t.Fatalf("subject = %q", msg.Subject)
	}
	if got := msg.Header.Get("Event-ID"); got != event.ID.String() {
		t.Fatalf("Event-ID header = %q", got)
	}

	var env struct {
		EventType string `json:"eventType"`
		RoomCode  string `json:"roomCode"`
		Payload   struct {
			DurationSec int `json:"duration_sec"`
		} `json:"payload"`
	}
	if err := json.Unmarshal(msg.Data, &env); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}
	if env.EventType != "SessionCompleted" || env.RoomCode != "ab12cd" || env.Payload.DurationSec != 60 {
		t.Fatalf("envelope = %+v", env)
	}
}

func TestNATSPublisherErrors(t *testing.T) {
	conn := &fakeConn{err: nats.ErrConnectionClosed}
	p := newNATSPublisher(conn, "")

	event, _ := NewEvent(uuid.Nil, "SessionStarted", "room", "v", time.Now(), nil)
	if err := p.Publish(context.Background(), event); !errors.Is(err, nats.ErrConnectionClosed) {
		t.Fatalf("Publish() error = %v, want wrapped ErrConnectionClosed", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := p.Publish(ctx, event); !errors.Is(err, context.Canceled) {
		t.Fatalf("Publish(canceled) error = %v", err)
	}

	if err := p.Close(); err != nil || !conn.closed {
		t.Fatalf("Close() err = %v closed = %v", err, conn.closed)
	}
}

func TestNewEvent(t *testing.T) {
	id := uuid.New()
	at := time.Date(2024, 5, 1, 9, 0, 0, 0, time.FixedZone("CEST", 2*60*60))

	event, err := NewEvent(id, "SessionPaused", "ab12cd", "view-1", at, json.RawMessage(`{"remaining_sec":50}`))
	if err != nil {
		t.Fatalf("NewEvent() error = %v", err)
	}
	if event.ID != id {
		t.Fatalf("ID = %s, want %s", event.ID, id)
	}
	if !event.OccurredAt.Equal(at) || event.OccurredAt.Location() != time.UTC {
		t.Fatalf("OccurredAt = %v, want %v in UTC", event.OccurredAt, at)
	}
	if string(event.Payload) != `{"remaining_sec":50}` {
		t.Fatalf("Payload = %s", event.Payload)
	}

	fresh, err := NewEvent(uuid.Nil, "SessionPaused", "ab12cd", "view-1", at, nil)
	if err != nil {
		t.Fatalf("NewEvent(nil id) error = %v", err)
	}
	if fresh.ID == uuid.Nil {
		t.Fatal("nil id should be replaced")
	}

	if _, err := NewEvent(id, "SessionPaused", "ab12cd", "view-1", at, make(chan int)); err == nil {
		t.Fatal("unmarshalable payload should fail")
	}
}

func TestSubjectToken(t *testing.T) {
	tests := map[string]string{
		"abc123":       "abc123",
		"team standup": "team_standup",
		"a.b*c>d":      "a_b_c_d",
		"  ":           "_",
		"MixedCase":    "mixedcase",
	}
	for in, want := range tests {
		if got := subjectToken(in); got != want {
			t.Errorf("subjectToken(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLogPublisher(t *testing.T) {
	p := NewLogPublisher()
	event, _ := NewEvent(uuid.Nil, "RoomShared", "room", "v", time.Now(), struct{}{})
	if err := p.Publish(context.Background(), event); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
}
