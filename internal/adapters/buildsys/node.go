package buildsys

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/cpm/internal/adapters/logger" //nolint:depguard // Wired in adapter wiring
	"go.trai.ch/cpm/internal/core/ports"
)

// Node IDs for the build-strategy adapters.
const (
	BackendNodeID      graft.ID = "adapter.build_backend"
	ScriptRunnerNodeID graft.ID = "adapter.script_runner"
	HeadersNodeID      graft.ID = "adapter.header_installer"
)

func init() {
	graft.Register(graft.Node[ports.BuildBackend]{
		ID:        BackendNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.BuildBackend, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewCMakeBackend(log), nil
		},
	})

	graft.Register(graft.Node[ports.ScriptRunner]{
		ID:        ScriptRunnerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.ScriptRunner, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewScriptRunner(log), nil
		},
	})

	graft.Register(graft.Node[ports.HeaderInstaller]{
		ID:        HeadersNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.HeaderInstaller, error) {
			return NewHeaders(), nil
		},
	})
}
