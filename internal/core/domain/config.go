package domain

import "time"

// Configuration defaults.
const (
	DefaultRegistryURL  = "https://registry.cpppm.org"
	DefaultFetchWorkers = 4
	DefaultHTTPTimeout  = 30 * time.Second
)

// Config holds the runtime configuration for cpm.
type Config struct {
	// RegistryURL is the base URL of the package registry.
	RegistryURL string

	// CacheDir is the directory holding fetched sources, installed headers and
	// the installed-package manifest.
	CacheDir string

	// FetchWorkers bounds the number of concurrent source downloads.
	FetchWorkers int

	// HTTPTimeout applies to every registry and download request.
	HTTPTimeout time.Duration
}

// DefaultConfig returns a Config populated with defaults.
func DefaultConfig() *Config {
	return &Config{
		RegistryURL:  DefaultRegistryURL,
		CacheDir:     DefaultCacheDir(),
		FetchWorkers: DefaultFetchWorkers,
		HTTPTimeout:  DefaultHTTPTimeout,
	}
}
