package command

import (
	"fmt"

	"github.com/pixil98/go-service"

	"github.com/mike-warlet/megarealms/internal/messaging"
	"github.com/mike-warlet/megarealms/internal/room"
	"github.com/mike-warlet/megarealms/internal/server"
	"github.com/mike-warlet/megarealms/internal/session"
)

func BuildWorkers(config interface{}) (service.WorkerList, error) {
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("unable to cast config")
	}

	cat, err := cfg.Catalog.buildCatalog()
	if err != nil {
		return nil, fmt.Errorf("building catalog: %w", err)
	}

	st, err := cfg.Storage.buildStore()
	if err != nil {
		return nil, fmt.Errorf("building store: %w", err)
	}

	bus, err := cfg.Nats.buildBus()
	if err != nil {
		return nil, fmt.Errorf("building event bus: %w", err)
	}

	sessions := session.NewManager(cat, st, messaging.NewRealmPublisher(bus))
	rooms := room.NewManager(bus)
	srv := server.NewServer(cfg.Server.Port, sessions, rooms, cfg.Server.buildVerifier())

	return service.WorkerList{
		"nats": bus,
		"http": srv,
	}, nil
}
