package config

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/cpm/internal/core/domain"
	"go.trai.ch/cpm/internal/core/ports"
)

// Node IDs for the config loader and the loaded configuration.
const (
	NodeID       graft.ID = "adapter.config_loader"
	ConfigNodeID graft.ID = "adapter.config"
)

func init() {
	graft.Register(graft.Node[ports.ConfigLoader]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ConfigLoader, error) {
			return NewLoader(), nil
		},
	})

	// The loaded configuration is itself a node so adapters needing concrete
	// values (registry URL, cache dir) can depend on it.
	graft.Register(graft.Node[*domain.Config]{
		ID:        ConfigNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{NodeID},
		Run: func(ctx context.Context) (*domain.Config, error) {
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}

			cwd, err := os.Getwd()
			if err != nil {
				cwd = "."
			}
			return loader.Load(cwd)
		},
	})
}
