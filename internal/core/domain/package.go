// Package domain contains the core domain models for cpm.
package domain

import "time"

// BuildKind identifies the strategy used to turn a package's source into an
// installed artifact.
type BuildKind string

const (
	// BuildCMake delegates to the external CMake toolchain.
	BuildCMake BuildKind = "cmake"
	// BuildHeaderOnly installs headers by copying them into the cache include path.
	BuildHeaderOnly BuildKind = "header-only"
	// BuildCustom executes the script carried by the descriptor.
	BuildCustom BuildKind = "custom"
)

// BuildType describes how a package is built. Script is only set for
// BuildCustom packages and carries the exact script text to execute.
type BuildType struct {
	Kind   BuildKind `json:"kind"`
	Script string    `json:"script,omitempty"`
}

// Valid reports whether the build type is one of the known kinds.
func (b BuildType) Valid() bool {
	switch b.Kind {
	case BuildCMake, BuildHeaderOnly, BuildCustom:
		return true
	}
	return false
}

// Package is the descriptor the registry returns for a package name.
// It is immutable once fetched.
type Package struct {
	Name         string   `json:"name"`
	Version      string   `json:"version"`
	Dependencies []string `json:"dependencies,omitempty"`
	SourceURL    string   `json:"source_url"`

	// Checksum is the hex-encoded SHA-256 of the source artifact as published
	// by the registry. Empty when the registry does not carry one.
	Checksum string `json:"checksum,omitempty"`

	Build BuildType `json:"build_type"`
}

// FetchedPackage is a descriptor whose source artifact has been localized
// into the cache.
type FetchedPackage struct {
	Package

	// SourceDir is the directory containing the unpacked source tree
	// (or the raw artifact when the archive format is unknown).
	SourceDir string
}

// InstallRecord records a successfully built package in the installed-package
// registry. A name maps to at most one record.
type InstallRecord struct {
	Package     Package   `json:"package"`
	InstalledAt time.Time `json:"installed_at"`
}
