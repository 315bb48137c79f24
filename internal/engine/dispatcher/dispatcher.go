// Package dispatcher selects and runs the build strategy for a fetched package.
package dispatcher

import (
	"context"
	"sync"

	"go.trai.ch/cpm/internal/core/domain"
	"go.trai.ch/cpm/internal/core/ports"
	"go.trai.ch/zerr"
)

// PackageStatus represents the build state of a package.
type PackageStatus string

const (
	// StatusFetched indicates the package source is localized and the build
	// has not started.
	StatusFetched PackageStatus = "Fetched"
	// StatusBuilding indicates the build strategy is currently running.
	StatusBuilding PackageStatus = "Building"
	// StatusInstalled indicates the build finished successfully.
	StatusInstalled PackageStatus = "Installed"
	// StatusFailed indicates the build failed.
	StatusFailed PackageStatus = "Failed"
)

// Dispatcher builds one package at a time. Builds are never run concurrently:
// the build backend and custom scripts are not guaranteed reentrant.
type Dispatcher struct {
	backend ports.BuildBackend
	scripts ports.ScriptRunner
	headers ports.HeaderInstaller
	logger  ports.Logger

	mu     sync.RWMutex
	status map[string]PackageStatus
}

// NewDispatcher creates a new Dispatcher.
func NewDispatcher(
	backend ports.BuildBackend,
	scripts ports.ScriptRunner,
	headers ports.HeaderInstaller,
	logger ports.Logger,
) *Dispatcher {
	return &Dispatcher{
		backend: backend,
		scripts: scripts,
		headers: headers,
		logger:  logger,
		status:  make(map[string]PackageStatus),
	}
}

// Status returns the last observed build state of a package. Packages never
// seen by the dispatcher report StatusFetched.
func (d *Dispatcher) Status(name string) PackageStatus {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if s, ok := d.status[name]; ok {
		return s
	}
	return StatusFetched
}

func (d *Dispatcher) setStatus(name string, s PackageStatus) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.status[name] = s
}

// Build runs the build strategy matching the package's declared build type.
// On failure no state is mutated for the package beyond its status; only a
// successful return makes the package eligible for the installed registry.
func (d *Dispatcher) Build(ctx context.Context, pkg domain.FetchedPackage, includeDir string) error {
	d.setStatus(pkg.Name, StatusBuilding)

	var err error
	switch pkg.Build.Kind {
	case domain.BuildCMake:
		err = d.buildCMake(ctx, pkg)
	case domain.BuildHeaderOnly:
		err = d.installHeaders(pkg, includeDir)
	case domain.BuildCustom:
		err = d.runScript(ctx, pkg)
	default:
		err = zerr.With(domain.ErrUnknownBuildType, "build_type", string(pkg.Build.Kind))
	}

	if err != nil {
		d.setStatus(pkg.Name, StatusFailed)
		return zerr.With(err, "package", pkg.Name)
	}

	d.setStatus(pkg.Name, StatusInstalled)
	return nil
}

func (d *Dispatcher) buildCMake(ctx context.Context, pkg domain.FetchedPackage) error {
	d.logger.Info("building with cmake", "package", pkg.Name)

	status, err := d.backend.BuildCMake(ctx, pkg.Name, pkg.SourceDir)
	if err != nil {
		return zerr.Wrap(err, domain.ErrBuildFailed.Error())
	}
	if status != 0 {
		return zerr.With(domain.ErrBuildFailed, "status", status)
	}
	return nil
}

func (d *Dispatcher) installHeaders(pkg domain.FetchedPackage, includeDir string) error {
	d.logger.Info("installing headers", "package", pkg.Name)

	if err := d.headers.Install(pkg.Name, pkg.SourceDir, includeDir); err != nil {
		return zerr.Wrap(err, domain.ErrBuildFailed.Error())
	}
	return nil
}

func (d *Dispatcher) runScript(ctx context.Context, pkg domain.FetchedPackage) error {
	d.logger.Info("running build script", "package", pkg.Name)

	if err := d.scripts.Run(ctx, pkg.Name, pkg.Build.Script, pkg.SourceDir); err != nil {
		return zerr.Wrap(err, domain.ErrBuildFailed.Error())
	}
	return nil
}
