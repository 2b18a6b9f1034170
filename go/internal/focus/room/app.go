package room

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/mcdev12/focusroom/go/internal/models"
	"github.com/rs/zerolog/log"
)

var (
	ErrEmptyRoomName   = errors.New("room name is required")
	ErrEmptyRoomCode   = errors.New("room code is required")
	ErrInvalidDuration = errors.New("invalid duration")
)

// CodeGenerator returns a new opaque room code.
type CodeGenerator func() string

// App handles room input validation and parameter resolution
type App struct {
	defaults Defaults
	roster   Roster
	newCode  CodeGenerator
}

// NewApp creates a new room App. A nil roster falls back to DefaultRoster and a
// nil generator to NewCode.
func NewApp(defaults Defaults, roster Roster, newCode CodeGenerator) *App {
	stock := DefaultDefaults()
	if strings.TrimSpace(defaults.RoomName) == "" {
		defaults.RoomName = stock.RoomName
	}
	if defaults.MaxDurationMinutes <= 0 {
		defaults.MaxDurationMinutes = stock.MaxDurationMinutes
	}
	if defaults.DurationMinutes <= 0 || defaults.DurationMinutes > defaults.MaxDurationMinutes {
		defaults.DurationMinutes = min(stock.DurationMinutes, defaults.MaxDurationMinutes)
	}
	if len(roster) == 0 {
		roster = DefaultRoster()
	}
	if newCode == nil {
		newCode = NewCode
	}

	return &App{
		defaults: defaults,
		roster:   roster.Clone(),
		newCode:  newCode,
	}
}

// Defaults returns the fallbacks this App applies.
func (a *App) Defaults() Defaults {
	return a.defaults
}

// Roster returns a copy of the mock participants for a new view.
func (a *App) Roster() Roster {
	return a.roster.Clone()
}

// CreateRoom validates the create dialog input and returns the new room's destination
func (a *App) CreateRoom(req CreateRoomRequest) (*Destination, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("validation failed: %w", ErrEmptyRoomName)
	}

	minutes, err := a.ParseDurationMinutes(string(req.DurationMinutes))
	if err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	room := models.Room{
		Code:            a.newCode(),
		Name:            name,
		DurationMinutes: minutes,
		Description:     strings.TrimSpace(req.Description),
	}

	log.Info().
		Str("room_code", room.Code).
		Str("room_name", room.Name).
		Int("duration_minutes", room.DurationMinutes).
		Msg("created room")

	return &Destination{Room: room, Path: RoomPath(room)}, nil
}

// JoinRoom validates a room code. Codes are opaque; only emptiness is checked.
func (a *App) JoinRoom(req JoinRoomRequest) (*Destination, error) {
	code := strings.TrimSpace(req.Code)
	if code == "" {
		return nil, fmt.Errorf("validation failed: %w", ErrEmptyRoomCode)
	}

	return &Destination{
		Room: a.ResolveRoom(code, nil),
		Path: "/room/" + url.PathEscape(code),
	}, nil
}

// ResolveRoom builds the room a view shows from its route code and query
// parameters. Absent or invalid values fall back to the defaults.
func (a *App) ResolveRoom(code string, query url.Values) models.Room {
	room := models.Room{
		Code:            code,
		Name:            a.defaults.RoomName,
		DurationMinutes: a.defaults.DurationMinutes,
	}
	if query == nil {
		return room
	}

	if name := strings.TrimSpace(query.Get("name")); name != "" {
		room.Name = name
	}
	if minutes, err := a.ParseDurationMinutes(query.Get("duration")); err == nil {
		room.DurationMinutes = minutes
	}
	room.Description = strings.TrimSpace(query.Get("description"))
	return room
}

// ParseDurationMinutes accepts whole minutes in [1, MaxDurationMinutes].
func (a *App) ParseDurationMinutes(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("%w: duration is required", ErrInvalidDuration)
	}

	minutes, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a whole number of minutes", ErrInvalidDuration, raw)
	}
	if err := a.CheckDurationMinutes(minutes); err != nil {
		return 0, err
	}
	return minutes, nil
}

// CheckDurationMinutes rejects durations outside [1, MaxDurationMinutes].
func (a *App) CheckDurationMinutes(minutes int) error {
	if minutes < 1 || minutes > a.defaults.MaxDurationMinutes {
		return fmt.Errorf("%w: must be between 1 and %d minutes", ErrInvalidDuration, a.defaults.MaxDurationMinutes)
	}
	return nil
}

// BoundDuration clamps minutes into [1, MaxDurationMinutes].
func (a *App) BoundDuration(minutes int) int {
	if minutes < 1 {
		return 1
	}
	if minutes > a.defaults.MaxDurationMinutes {
		return a.defaults.MaxDurationMinutes
	}
	return minutes
}

// RoomPath returns the route a room is opened at, carrying name and duration.
func RoomPath(room models.Room) string {
	q := url.Values{}
	q.Set("name", room.Name)
	q.Set("duration", strconv.Itoa(room.DurationMinutes))
	return "/room/" + url.PathEscape(room.Code) + "?" + q.Encode()
}
