// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/cpm/internal/adapters/buildsys"
	_ "go.trai.ch/cpm/internal/adapters/config"
	_ "go.trai.ch/cpm/internal/adapters/fetch"
	_ "go.trai.ch/cpm/internal/adapters/logger"
	_ "go.trai.ch/cpm/internal/adapters/registry"
	_ "go.trai.ch/cpm/internal/adapters/store"
	// Register app and engine nodes.
	_ "go.trai.ch/cpm/internal/app"
	_ "go.trai.ch/cpm/internal/engine/dispatcher"
	_ "go.trai.ch/cpm/internal/engine/resolver"
)
