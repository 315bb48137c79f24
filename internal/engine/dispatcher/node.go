package dispatcher

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/cpm/internal/adapters/buildsys" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/cpm/internal/adapters/logger"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/cpm/internal/core/ports"
)

// NodeID is the unique identifier for the dispatcher Graft node.
const NodeID graft.ID = "engine.dispatcher"

func init() {
	graft.Register(graft.Node[*Dispatcher]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			buildsys.BackendNodeID,
			buildsys.ScriptRunnerNodeID,
			buildsys.HeadersNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Dispatcher, error) {
			backend, err := graft.Dep[ports.BuildBackend](ctx)
			if err != nil {
				return nil, err
			}

			scripts, err := graft.Dep[ports.ScriptRunner](ctx)
			if err != nil {
				return nil, err
			}

			headers, err := graft.Dep[ports.HeaderInstaller](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewDispatcher(backend, scripts, headers, log), nil
		},
	})
}
