package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/cpm/internal/adapters/config" //nolint:depguard // Wired in app layer
	"go.trai.ch/cpm/internal/adapters/fetch"  //nolint:depguard // Wired in app layer
	"go.trai.ch/cpm/internal/adapters/logger" //nolint:depguard // Wired in app layer
	"go.trai.ch/cpm/internal/adapters/store"  //nolint:depguard // Wired in app layer
	"go.trai.ch/cpm/internal/core/domain"
	"go.trai.ch/cpm/internal/core/ports"
	"go.trai.ch/cpm/internal/engine/dispatcher"
	"go.trai.ch/cpm/internal/engine/resolver"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components aggregates the application and its wired dependencies for the
// CLI entry point.
type Components struct {
	App    *App
	Config *domain.Config
	Logger ports.Logger
	Store  ports.InstalledStore
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.ConfigNodeID,
			resolver.NodeID,
			dispatcher.NodeID,
			fetch.NodeID,
			store.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			config.ConfigNodeID,
			logger.NodeID,
			store.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	cfg, err := graft.Dep[*domain.Config](ctx)
	if err != nil {
		return nil, err
	}

	res, err := graft.Dep[*resolver.Resolver](ctx)
	if err != nil {
		return nil, err
	}

	fetcher, err := graft.Dep[ports.Fetcher](ctx)
	if err != nil {
		return nil, err
	}

	disp, err := graft.Dep[*dispatcher.Dispatcher](ctx)
	if err != nil {
		return nil, err
	}

	installed, err := graft.Dep[ports.InstalledStore](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(cfg, res, fetcher, disp, installed, log), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	application, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	cfg, err := graft.Dep[*domain.Config](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	installed, err := graft.Dep[ports.InstalledStore](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:    application,
		Config: cfg,
		Logger: log,
		Store:  installed,
	}, nil
}
