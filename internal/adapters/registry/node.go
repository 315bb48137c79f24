package registry

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/cpm/internal/adapters/config" //nolint:depguard // Wired in adapter wiring
	"go.trai.ch/cpm/internal/core/domain"
	"go.trai.ch/cpm/internal/core/ports"
)

// NodeID is the unique identifier for the registry client Graft node.
const NodeID graft.ID = "adapter.registry_client"

func init() {
	graft.Register(graft.Node[ports.RegistryClient]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.ConfigNodeID,
		},
		Run: func(ctx context.Context) (ports.RegistryClient, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			return NewClient(cfg.RegistryURL, cfg.HTTPTimeout), nil
		},
	})
}
