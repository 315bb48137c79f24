package ports

import "context"

// BuildBackend is the opaque native-toolchain capability used for CMake-type
// builds. The core depends only on the returned status code, never on the
// toolchain internals.
//
//go:generate go run go.uber.org/mock/mockgen -source=backend.go -destination=mocks/mock_backend.go -package=mocks
type BuildBackend interface {
	// BuildCMake configures and builds the source tree for the named package.
	// It returns the toolchain's integer status: 0 on success, nonzero on
	// build failure. A non-nil error means the toolchain could not be invoked
	// at all.
	BuildCMake(ctx context.Context, name, srcDir string) (int, error)
}

// ScriptRunner executes a package's custom build script as a scoped subprocess.
type ScriptRunner interface {
	// Run executes the script with the package source directory as working
	// directory. A nonzero exit or execution failure is returned as an error.
	Run(ctx context.Context, name, script, workDir string) error
}

// HeaderInstaller installs a header-only package by copying headers from the
// fetched source tree into the cache include path. Purely local, no external
// process involved.
type HeaderInstaller interface {
	Install(name, srcDir, includeDir string) error
}
