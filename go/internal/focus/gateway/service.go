package gateway

import (
	"context"
	"net/http"

	"github.com/mcdev12/focusroom/go/internal/focus/publisher"
	"github.com/mcdev12/focusroom/go/internal/focus/room"
	"github.com/rs/zerolog/log"
)

// Service is the focus room gateway: REST routes plus one session per WebSocket connection
type Service struct {
	connectionManager *ConnectionManager
	wsHandler         *WebSocketHandler
	stateHandler      *StateHandler
	publisher         publisher.Publisher
}

// Config holds configuration for the gateway service
type Config struct {
	ConnectionConfig ConnectionConfig
}

// DefaultConfig returns default configuration for the gateway
func DefaultConfig() Config {
	return Config{
		ConnectionConfig: DefaultConnectionConfig(),
	}
}

// NewService creates a new gateway service. A nil publisher logs events instead.
func NewService(config Config, app *room.App, pub publisher.Publisher) *Service {
	if pub == nil {
		pub = publisher.NewLogPublisher()
	}

	connectionManager := NewConnectionManager(config.ConnectionConfig, app, pub)

	return &Service{
		connectionManager: connectionManager,
		wsHandler:         NewWebSocketHandler(connectionManager, app),
		stateHandler:      NewStateHandler(app),
		publisher:         pub,
	}
}

// Start runs the gateway until ctx is cancelled
func (s *Service) Start(ctx context.Context) error {
	log.Info().Msg("starting focus gateway service")

	s.connectionManager.Start(ctx)

	log.Info().Msg("focus gateway service shutting down")
	return s.Stop()
}

// Stop closes every connection and the publisher
func (s *Service) Stop() error {
	s.connectionManager.closeAll()

	if err := s.publisher.Close(); err != nil {
		log.Error().Err(err).Msg("failed to close publisher")
		return err
	}

	log.Info().Msg("focus gateway service stopped")
	return nil
}

// RegisterRoutes registers the WebSocket and REST routes
func (s *Service) RegisterRoutes(mux *http.ServeMux) {
	s.wsHandler.RegisterRoutes(mux)
	s.stateHandler.RegisterStateRoutes(mux)
	log.Info().Msg("focus gateway routes registered")
}

// GetStats returns statistics about the gateway service
func (s *Service) GetStats() ConnectionStats {
	return s.connectionManager.GetConnectionStats()
}
