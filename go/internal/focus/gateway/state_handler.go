package gateway

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcdev12/focusroom/go/internal/focus/room"
	"github.com/mcdev12/focusroom/go/internal/focus/timer"
	"github.com/mcdev12/focusroom/go/internal/models"
	"github.com/rs/zerolog/log"
)

// RoomStateResponse represents what a freshly opened room view shows
type RoomStateResponse struct {
	Room         models.Room    `json:"room"`
	Participants room.Roster    `json:"participants"`
	OnlineCount  int            `json:"online_count"`
	Snapshot     timer.Snapshot `json:"snapshot"`
}

// JoinRoomResponse is returned for a valid join request
type JoinRoomResponse struct {
	Code string `json:"code"`
	Path string `json:"path"`
}

// StateHandler handles the room REST routes
type StateHandler struct {
	app *room.App
}

// NewStateHandler creates a new state handler
func NewStateHandler(app *room.App) *StateHandler {
	return &StateHandler{app: app}
}

// HandleCreateRoom handles POST /api/rooms. duration_minutes may be a string or
// a whole number.
func (h *StateHandler) HandleCreateRoom(w http.ResponseWriter, r *http.Request) {
	var req room.CreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	dest, err := h.app.CreateRoom(req)
	if err != nil {
		writeAppError(w, err, "Failed to create room")
		return
	}

	writeJSON(w, http.StatusCreated, dest)
}

// HandleJoinRoom handles POST /api/rooms/join
func (h *StateHandler) HandleJoinRoom(w http.ResponseWriter, r *http.Request) {
	var req room.JoinRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	dest, err := h.app.JoinRoom(req)
	if err != nil {
		writeAppError(w, err, "Failed to join room")
		return
	}

	writeJSON(w, http.StatusOK, JoinRoomResponse{Code: dest.Room.Code, Path: dest.Path})
}

// HandleGetRoom handles GET /api/rooms/{code}
func (h *StateHandler) HandleGetRoom(w http.ResponseWriter, r *http.Request) {
	rm := h.app.ResolveRoom(r.PathValue("code"), r.URL.Query())
	roster := h.app.Roster()

	writeJSON(w, http.StatusOK, RoomStateResponse{
		Room:         rm,
		Participants: roster,
		OnlineCount:  roster.OnlineCount(),
		Snapshot:     timer.IdleSnapshot(rm.DurationSec()),
	})
}

// RegisterStateRoutes registers the REST routes with an HTTP mux
func (h *StateHandler) RegisterStateRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/rooms", h.HandleCreateRoom)
	mux.HandleFunc("POST /api/rooms/join", h.HandleJoinRoom)
	mux.HandleFunc("GET /api/rooms/{code}", h.HandleGetRoom)
}

// writeAppError maps validation errors to 400 and everything else to 500
func writeAppError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, room.ErrEmptyRoomName),
		errors.Is(err, room.ErrEmptyRoomCode),
		errors.Is(err, room.ErrInvalidDuration):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		log.Error().Err(err).Msg(fallback)
		http.Error(w, fallback, http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}
