package ports

import "go.trai.ch/cpm/internal/core/domain"

// ConfigLoader loads the runtime configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration starting from the given working directory,
	// applying defaults for anything not configured.
	Load(cwd string) (*domain.Config, error)
}
