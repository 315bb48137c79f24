package domain

import (
	"os"
	"path/filepath"
)

// File and directory permissions used across the cache.
const (
	DirPerm  = 0o755
	FilePerm = 0o644
)

// ConfigFileName is the name of the configuration file cpm looks for.
const ConfigFileName = "cpm.yaml"

// DefaultCacheDir returns the default cache directory for fetched sources and
// installed headers. Falls back to a dot directory in the home directory when
// the user cache dir cannot be determined.
func DefaultCacheDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "cpm")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".cpm"
	}
	return filepath.Join(home, ".cpm")
}

// SourceDir returns the cache directory holding a package's fetched artifact
// and unpacked source tree.
func SourceDir(cacheDir, name string) string {
	return filepath.Join(cacheDir, "src", name)
}

// IncludeDir returns the cache include path a header-only package installs into.
func IncludeDir(cacheDir, name string) string {
	return filepath.Join(cacheDir, "include", name)
}

// ManifestPath returns the path of the installed-package manifest snapshot.
func ManifestPath(cacheDir string) string {
	return filepath.Join(cacheDir, "installed.json")
}
