// Package config provides the configuration loader for cpm.
package config

import (
	"errors"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/cpm/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct{}

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load looks for cpm.yaml in the working directory and its parents, then in
// the user config directory. A missing file yields the defaults.
func (l *Loader) Load(cwd string) (*domain.Config, error) {
	cfg := domain.DefaultConfig()

	path, found := findConfiguration(cwd)
	if !found {
		return cfg, nil
	}

	//nolint:gosec // Path comes from walking up the working directory
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	var dto configDTO
	if err := yaml.Unmarshal(data, &dto); err != nil {
		wrapped := zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
		return nil, zerr.With(wrapped, "path", path)
	}

	if err := apply(cfg, &dto); err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return cfg, nil
}

func findConfiguration(cwd string) (string, bool) {
	currentDir := cwd
	for {
		candidate := filepath.Join(currentDir, domain.ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		} else if !errors.Is(err, fs.ErrNotExist) {
			break
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	if configDir, err := os.UserConfigDir(); err == nil {
		candidate := filepath.Join(configDir, "cpm", domain.ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}
	}

	return "", false
}

func apply(cfg *domain.Config, dto *configDTO) error {
	if dto.Registry != "" {
		parsed, err := url.Parse(dto.Registry)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return zerr.With(domain.ErrInvalidConfig, "registry", dto.Registry)
		}
		cfg.RegistryURL = dto.Registry
	}

	if dto.CacheDir != "" {
		cfg.CacheDir = filepath.Clean(dto.CacheDir)
	}

	if dto.FetchWorkers != 0 {
		if dto.FetchWorkers < 1 {
			return zerr.With(domain.ErrInvalidConfig, "fetch_workers", dto.FetchWorkers)
		}
		cfg.FetchWorkers = dto.FetchWorkers
	}

	if dto.HTTPTimeout != "" {
		timeout, err := time.ParseDuration(dto.HTTPTimeout)
		if err != nil || timeout <= 0 {
			return zerr.With(domain.ErrInvalidConfig, "http_timeout", dto.HTTPTimeout)
		}
		cfg.HTTPTimeout = timeout
	}

	return nil
}
