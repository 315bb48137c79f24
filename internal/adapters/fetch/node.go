package fetch

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/cpm/internal/adapters/config" //nolint:depguard // Wired in adapter wiring
	"go.trai.ch/cpm/internal/adapters/logger" //nolint:depguard // Wired in adapter wiring
	"go.trai.ch/cpm/internal/core/domain"
	"go.trai.ch/cpm/internal/core/ports"
)

// NodeID is the unique identifier for the fetcher Graft node.
const NodeID graft.ID = "adapter.fetcher"

func init() {
	graft.Register(graft.Node[ports.Fetcher]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.ConfigNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (ports.Fetcher, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewFetcher(cfg.CacheDir, cfg.FetchWorkers, cfg.HTTPTimeout, log), nil
		},
	})
}
