package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mcdev12/focusroom/go/internal/focus/publisher"
	"github.com/mcdev12/focusroom/go/internal/focus/room"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Config holds the settings shared by focus-server and focus-tui.
type Config struct {
	Port        string
	LogLevel    zerolog.Level
	ConfigPath  string
	NATSURL     string
	NATSSubject string
	TUILogPath  string

	Rooms  room.Defaults
	Roster room.Roster
}

// File is the optional YAML file named by FOCUS_CONFIG.
type File struct {
	Rooms  room.Defaults `yaml:"rooms"`
	Roster room.Roster   `yaml:"roster"`
}

// NewConfigFromEnv reads FOCUS_* environment variables (with defaults).
func NewConfigFromEnv() Config {
	level, err := zerolog.ParseLevel(strings.ToLower(getEnv("FOCUS_LOG_LEVEL", "info")))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	return Config{
		Port:        strconv.Itoa(getEnvAsInt("FOCUS_PORT", 8080)),
		LogLevel:    level,
		ConfigPath:  getEnv("FOCUS_CONFIG", ""),
		NATSURL:     getEnv("FOCUS_NATS_URL", ""),
		NATSSubject: getEnv("FOCUS_NATS_SUBJECT", publisher.DefaultNATSConfig().SubjectPrefix),
		TUILogPath:  getEnv("FOCUS_TUI_LOG", ""),
		Rooms:       room.DefaultDefaults(),
		Roster:      room.DefaultRoster(),
	}
}

// Load reads the environment and, when FOCUS_CONFIG is set, overlays the YAML file.
func Load() (Config, error) {
	cfg := NewConfigFromEnv()
	if cfg.ConfigPath == "" {
		return cfg, nil
	}

	file, err := LoadFile(cfg.ConfigPath)
	if err != nil {
		return cfg, err
	}
	cfg.apply(file)
	return cfg, nil
}

// LoadFile parses a YAML config file.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &file, nil
}

// apply overlays the non-zero file values.
func (c *Config) apply(file *File) {
	if file.Rooms.RoomName != "" {
		c.Rooms.RoomName = file.Rooms.RoomName
	}
	if file.Rooms.DurationMinutes > 0 {
		c.Rooms.DurationMinutes = file.Rooms.DurationMinutes
	}
	if file.Rooms.MaxDurationMinutes > 0 {
		c.Rooms.MaxDurationMinutes = file.Rooms.MaxDurationMinutes
	}
	if len(file.Roster) > 0 {
		c.Roster = file.Roster.Clone()
	}
}

// Addr is the listen address for focus-server.
func (c Config) Addr() string {
	return ":" + c.Port
}

// NATSConfig returns publisher settings. ok is false when no NATS URL is set.
func (c Config) NATSConfig() (cfg publisher.NATSConfig, ok bool) {
	cfg = publisher.DefaultNATSConfig()
	if c.NATSURL == "" {
		return cfg, false
	}
	cfg.URL = c.NATSURL
	cfg.SubjectPrefix = c.NATSSubject
	return cfg, true
}

// RoomApp builds the room App for these settings.
func (c Config) RoomApp() *room.App {
	return room.NewApp(c.Rooms, c.Roster, nil)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
