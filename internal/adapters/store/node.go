package store

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/cpm/internal/adapters/config" //nolint:depguard // Wired in adapter wiring
	"go.trai.ch/cpm/internal/core/domain"
	"go.trai.ch/cpm/internal/core/ports"
)

// NodeID is the unique identifier for the installed store Graft node.
const NodeID graft.ID = "adapter.installed_store"

func init() {
	graft.Register(graft.Node[ports.InstalledStore]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.ConfigNodeID,
		},
		Run: func(ctx context.Context) (ports.InstalledStore, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			return NewStore(cfg.CacheDir)
		},
	})
}
