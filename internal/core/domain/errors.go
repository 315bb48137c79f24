package domain

import "go.trai.ch/zerr"

var (
	// ErrRegistryRequestFailed is returned when the registry cannot be reached
	// or answers with an unexpected status.
	ErrRegistryRequestFailed = zerr.New("registry request failed")

	// ErrRegistryParseFailed is returned when a registry payload cannot be decoded.
	ErrRegistryParseFailed = zerr.New("failed to parse registry response")

	// ErrPackageNotFound is returned when the registry has no descriptor for a name.
	ErrPackageNotFound = zerr.New("package not found in registry")

	// ErrInvalidDescriptor is returned when a decoded descriptor is incomplete.
	ErrInvalidDescriptor = zerr.New("invalid package descriptor")

	// ErrUnknownBuildType is returned when a descriptor declares a build type
	// the dispatcher has no strategy for.
	ErrUnknownBuildType = zerr.New("unknown build type")

	// ErrResolutionFailed wraps the first registry failure encountered while
	// expanding the dependency closure.
	ErrResolutionFailed = zerr.New("dependency resolution failed")

	// ErrFetchFailed is returned when downloading a source artifact fails.
	ErrFetchFailed = zerr.New("failed to download package source")

	// ErrChecksumMismatch is returned when a downloaded artifact does not match
	// the checksum published by the registry.
	ErrChecksumMismatch = zerr.New("source artifact checksum mismatch")

	// ErrBuildFailed is returned when building a package fails. It aborts the
	// remaining install sequence.
	ErrBuildFailed = zerr.New("build failed")

	// ErrHeaderInstallFailed is returned when copying headers into the cache
	// include path fails.
	ErrHeaderInstallFailed = zerr.New("failed to install headers")

	// ErrCacheCreateFailed is returned when the cache directory cannot be created.
	ErrCacheCreateFailed = zerr.New("failed to create cache directory")

	// ErrStoreReadFailed is returned when the installed-package manifest cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read installed-package manifest")

	// ErrStoreWriteFailed is returned when the installed-package manifest cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write installed-package manifest")

	// ErrStoreMarshalFailed is returned when the installed-package manifest cannot be marshaled.
	ErrStoreMarshalFailed = zerr.New("failed to marshal installed-package manifest")

	// ErrStoreUnmarshalFailed is returned when the installed-package manifest cannot be unmarshaled.
	ErrStoreUnmarshalFailed = zerr.New("failed to unmarshal installed-package manifest")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidConfig is returned when a config value fails validation.
	ErrInvalidConfig = zerr.New("invalid configuration value")

	// ErrNoPackageSpecified is returned when install is invoked without a package name.
	ErrNoPackageSpecified = zerr.New("no package specified")
)
