package commands

import (
	"tableflip.dev/tasque/pkg/config"
	"tableflip.dev/tasque/pkg/engine"
	"tableflip.dev/tasque/pkg/engine/remote"
	"tableflip.dev/tasque/pkg/engine/snapshot"
)

// loadGateway builds the engine gateway from local configuration: the HTTP
// client wrapped in the offline snapshot cache.
func loadGateway() (engine.Gateway, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return snapshot.New(remote.New(cfg.EngineURL), cfg.CachePath), nil
}
