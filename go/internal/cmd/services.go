package main

import (
	"fmt"

	"github.com/mcdev12/focusroom/go/internal/config"
	"github.com/mcdev12/focusroom/go/internal/focus/gateway"
	"github.com/mcdev12/focusroom/go/internal/focus/publisher"
	"github.com/mcdev12/focusroom/go/internal/focus/room"
)

type Services struct {
	Rooms     *room.App
	Publisher publisher.Publisher
	Gateway   *gateway.Service
}

func setupServices(cfg config.Config) (*Services, error) {
	// Config → room app → publisher → gateway

	roomApp := cfg.RoomApp()

	var pub publisher.Publisher = publisher.NewLogPublisher()
	if natsCfg, ok := cfg.NATSConfig(); ok {
		natsPub, err := publisher.NewNATSPublisher(natsCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create NATS publisher: %w", err)
		}
		pub = natsPub
	}

	gw := gateway.NewService(gateway.DefaultConfig(), roomApp, pub)

	return &Services{
		Rooms:     roomApp,
		Publisher: pub,
		Gateway:   gw,
	}, nil
}
