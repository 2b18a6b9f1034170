package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/focusroom/go/internal/focus/publisher"
	"github.com/mcdev12/focusroom/go/internal/focus/room"
	"github.com/mcdev12/focusroom/go/internal/models"
	"github.com/rs/zerolog/log"
)

// ConnectionManager manages WebSocket connections for focus rooms
type ConnectionManager struct {
	// Connections grouped by room code, for stats only. Each connection owns
	// its own session.
	roomConnections map[string]map[*Connection]bool
	mu              sync.RWMutex

	// Upgrader for WebSocket connections
	upgrader websocket.Upgrader

	// Connection configuration
	config ConnectionConfig

	app *room.App

	// Lifecycle events waiting for the publisher
	publisher publisher.Publisher
	publishCh chan publisher.Event
}

// Connection represents a WebSocket connection to a client
type Connection struct {
	ID       string
	RoomCode string
	Conn     *websocket.Conn
	Send     chan []byte
	Manager  *ConnectionManager

	// Connection metadata
	ConnectedAt time.Time
	LastPing    time.Time

	view *roomView

	sendMu     sync.Mutex
	sendClosed bool
}

// ConnectionConfig holds configuration for WebSocket connections
type ConnectionConfig struct {
	WriteTimeout    time.Duration
	ReadTimeout     time.Duration
	PingInterval    time.Duration
	MaxMessageSize  int64
	ReadBufferSize  int
	WriteBufferSize int
	CheckOrigin     func(r *http.Request) bool

	// Clock drives session tickers and pings. Nil means the real clock.
	Clock clockwork.Clock
	// TickInterval is one session second.
	TickInterval time.Duration
}

// DefaultConnectionConfig returns default WebSocket configuration
func DefaultConnectionConfig() ConnectionConfig {
	return ConnectionConfig{
		WriteTimeout:    10 * time.Second,
		ReadTimeout:     60 * time.Second,
		PingInterval:    30 * time.Second,
		MaxMessageSize:  1024, // 1KB max message size
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
		Clock:        clockwork.NewRealClock(),
		TickInterval: time.Second,
	}
}

// NewConnectionManager creates a new WebSocket connection manager
func NewConnectionManager(config ConnectionConfig, app *room.App, pub publisher.Publisher) *ConnectionManager {
	if config.Clock == nil {
		config.Clock = clockwork.NewRealClock()
	}
	if config.TickInterval <= 0 {
		config.TickInterval = time.Second
	}
	if pub == nil {
		pub = publisher.NewLogPublisher()
	}

	return &ConnectionManager{
		roomConnections: make(map[string]map[*Connection]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  config.ReadBufferSize,
			WriteBufferSize: config.WriteBufferSize,
			CheckOrigin:     config.CheckOrigin,
		},
		config:    config,
		app:       app,
		publisher: pub,
		publishCh: make(chan publisher.Event, 1000), // Buffer for high throughput
	}
}

// Start forwards lifecycle events to the publisher until ctx is done
func (cm *ConnectionManager) Start(ctx context.Context) {
	log.Info().Msg("connection manager started")

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("connection manager shutting down")
			return
		case event := <-cm.publishCh:
			if err := cm.publisher.Publish(ctx, event); err != nil {
				log.Error().
					Err(err).
					Str("event_type", event.Type).
					Str("room_code", event.RoomCode).
					Msg("failed to publish session event")
			}
		}
	}
}

// UpgradeConnection upgrades an HTTP connection to WebSocket and opens a
// fresh session for the given room
func (cm *ConnectionManager) UpgradeConnection(w http.ResponseWriter, r *http.Request, rm models.Room) error {
	conn, err := cm.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return fmt.Errorf("failed to upgrade connection: %w", err)
	}

	now := cm.config.Clock.Now()
	connection := &Connection{
		ID:          uuid.New().String(),
		RoomCode:    rm.Code,
		Conn:        conn,
		Send:        make(chan []byte, 256),
		Manager:     cm,
		ConnectedAt: now,
		LastPing:    now,
	}

	view, err := newRoomView(connection.ID, cm.app, rm, cm.config.Clock, cm.config.TickInterval, connection.deliver)
	if err != nil {
		conn.Close()
		return err
	}
	connection.view = view

	joined, err := view.joined()
	if err != nil {
		view.close()
		conn.Close()
		return err
	}

	cm.registerConnection(connection)
	connection.deliver(joined)

	go connection.writePump()
	go connection.readPump()

	log.Info().
		Str("connection_id", connection.ID).
		Str("room_code", rm.Code).
		Int("duration_minutes", rm.DurationMinutes).
		Msg("WebSocket connection established")

	return nil
}

// registerConnection adds a connection to the manager
func (cm *ConnectionManager) registerConnection(conn *Connection) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if cm.roomConnections[conn.RoomCode] == nil {
		cm.roomConnections[conn.RoomCode] = make(map[*Connection]bool)
	}
	cm.roomConnections[conn.RoomCode][conn] = true

	log.Debug().
		Str("connection_id", conn.ID).
		Str("room_code", conn.RoomCode).
		Int("room_connections", len(cm.roomConnections[conn.RoomCode])).
		Msg("connection registered")
}

// unregisterConnection removes a connection and tears down its session
func (cm *ConnectionManager) unregisterConnection(conn *Connection) {
	cm.mu.Lock()
	connections, exists := cm.roomConnections[conn.RoomCode]
	if !exists || !connections[conn] {
		cm.mu.Unlock()
		return
	}
	delete(connections, conn)
	if len(connections) == 0 {
		delete(cm.roomConnections, conn.RoomCode)
	}
	cm.mu.Unlock()

	conn.view.close()
	conn.closeSend()

	log.Info().
		Str("connection_id", conn.ID).
		Str("room_code", conn.RoomCode).
		Msg("connection unregistered")
}

// closeAll drops every connection. Used on shutdown.
func (cm *ConnectionManager) closeAll() {
	cm.mu.RLock()
	var all []*Connection
	for _, connections := range cm.roomConnections {
		for conn := range connections {
			all = append(all, conn)
		}
	}
	cm.mu.RUnlock()

	for _, conn := range all {
		cm.unregisterConnection(conn)
	}
}

// publish queues a lifecycle event without blocking the session.
func (cm *ConnectionManager) publish(viewID string, event *RoomEvent) {
	id, _ := uuid.Parse(event.ID)
	out, err := publisher.NewEvent(id, string(event.Type), event.RoomCode, viewID, event.Timestamp, event.Data)
	if err != nil {
		log.Error().
			Err(err).
			Str("room_code", event.RoomCode).
			Str("event_type", string(event.Type)).
			Msg("Failed to build published event")
		return
	}

	select {
	case cm.publishCh <- out:
	default:
		log.Warn().
			Str("room_code", event.RoomCode).
			Str("event_type", out.Type).
			Msg("publish channel full, dropping event")
	}
}

// ConnectionStats is the /ws/stats response
type ConnectionStats struct {
	TotalConnections int            `json:"total_connections"`
	ActiveRooms      int            `json:"active_rooms"`
	RoomConnections  map[string]int `json:"room_connections,omitempty"`
}

// GetConnectionStats returns statistics about active connections
func (cm *ConnectionManager) GetConnectionStats() ConnectionStats {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	stats := ConnectionStats{
		ActiveRooms:     len(cm.roomConnections),
		RoomConnections: make(map[string]int, len(cm.roomConnections)),
	}
	for code, connections := range cm.roomConnections {
		stats.TotalConnections += len(connections)
		stats.RoomConnections[code] = len(connections)
	}
	return stats
}

// deliver queues an event for the client. It never blocks: a client that
// cannot keep up is disconnected.
func (c *Connection) deliver(event *RoomEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Str("connection_id", c.ID).Msg("failed to marshal room event")
		return
	}

	c.sendMu.Lock()
	if c.sendClosed {
		c.sendMu.Unlock()
		return
	}
	select {
	case c.Send <- data:
		c.sendMu.Unlock()
	default:
		c.sendMu.Unlock()
		log.Warn().
			Str("connection_id", c.ID).
			Msg("connection send buffer full, closing connection")
		c.Conn.Close()
		return
	}

	if event.Type.Published() {
		c.Manager.publish(c.ID, event)
	}
}

func (c *Connection) closeSend() {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()

	if !c.sendClosed {
		c.sendClosed = true
		close(c.Send)
	}
}

// writePump handles sending messages to the WebSocket connection
func (c *Connection) writePump() {
	ticker := c.Manager.config.Clock.NewTicker(c.Manager.config.PingInterval)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
		c.Manager.unregisterConnection(c)
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(c.Manager.config.WriteTimeout))
			if !ok {
				// Channel was closed
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Error().
					Err(err).
					Str("connection_id", c.ID).
					Msg("failed to write message to WebSocket")
				return
			}

		case <-ticker.Chan():
			c.Conn.SetWriteDeadline(time.Now().Add(c.Manager.config.WriteTimeout))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Error().
					Err(err).
					Str("connection_id", c.ID).
					Msg("failed to send ping")
				return
			}
		}
	}
}

// readPump handles reading commands from the WebSocket connection
func (c *Connection) readPump() {
	defer func() {
		c.Manager.unregisterConnection(c)
	}()

	c.Conn.SetReadLimit(c.Manager.config.MaxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(c.Manager.config.ReadTimeout))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(c.Manager.config.ReadTimeout))
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Error().
					Err(err).
					Str("connection_id", c.ID).
					Msg("unexpected WebSocket close error")
			}
			return
		}

		if leave := c.handleClientMessage(message); leave {
			log.Info().Str("connection_id", c.ID).Msg("client left room")
			return
		}
		c.Conn.SetReadDeadline(time.Now().Add(c.Manager.config.ReadTimeout))
	}
}

// handleClientMessage decodes and applies a client command
func (c *Connection) handleClientMessage(message []byte) bool {
	var cmd ClientCommand
	if err := json.Unmarshal(message, &cmd); err != nil {
		log.Debug().
			Err(err).
			Str("connection_id", c.ID).
			Msg("malformed client message")
		c.view.reject("", "malformed command")
		return false
	}

	log.Debug().
		Str("connection_id", c.ID).
		Str("action", string(cmd.Action)).
		Msg("received client command")

	return c.view.handle(cmd)
}
