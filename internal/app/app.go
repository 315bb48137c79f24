// Package app implements the application layer for cpm.
package app

import (
	"context"
	"time"

	"go.trai.ch/cpm/internal/core/domain"
	"go.trai.ch/cpm/internal/core/ports"
	"go.trai.ch/cpm/internal/engine/dispatcher"
	"go.trai.ch/cpm/internal/engine/resolver"
	"go.trai.ch/zerr"
)

// App owns the install pipeline: resolve, fetch-all, build-each. It is the
// only component that mutates the installed-package registry and the cache
// directory.
type App struct {
	config     *domain.Config
	resolver   *resolver.Resolver
	fetcher    ports.Fetcher
	dispatcher *dispatcher.Dispatcher
	store      ports.InstalledStore
	logger     ports.Logger

	// now is swappable for deterministic install records in tests.
	now func() time.Time
}

// New creates a new App instance.
func New(
	config *domain.Config,
	res *resolver.Resolver,
	fetcher ports.Fetcher,
	disp *dispatcher.Dispatcher,
	store ports.InstalledStore,
	log ports.Logger,
) *App {
	return &App{
		config:     config,
		resolver:   res,
		fetcher:    fetcher,
		dispatcher: disp,
		store:      store,
		logger:     log,
		now:        time.Now,
	}
}

// WithClock overrides the clock used for install records. Used for testing.
func (a *App) WithClock(now func() time.Time) *App {
	a.now = now
	return a
}

// InstallOptions configures the Install operation.
type InstallOptions struct {
	// Force rebuilds packages even when an identical version is already
	// installed.
	Force bool
}

// Install resolves, fetches and builds the named package and its transitive
// dependencies.
//
// Fetch runs on a bounded worker pool; builds run strictly sequentially in
// dependency-first order, since the build backend and custom scripts are not
// guaranteed reentrant. Each successful build is committed to the installed
// registry immediately; a failure aborts the remaining sequence and already
// committed packages stay committed.
func (a *App) Install(ctx context.Context, name string, opts InstallOptions) error {
	if name == "" {
		return domain.ErrNoPackageSpecified
	}

	resolved, err := a.resolver.Resolve(ctx, name)
	if err != nil {
		return err
	}
	a.logger.Info("resolved dependencies", "root", name, "packages", len(resolved))

	pending, err := a.filterInstalled(resolved, opts.Force)
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		a.logger.Info("nothing to do, all packages installed", "root", name)
		return nil
	}

	fetched, err := a.fetcher.FetchAll(ctx, pending)
	if err != nil {
		return err
	}

	for _, pkg := range orderForBuild(fetched) {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := a.dispatcher.Build(ctx, pkg, domain.IncludeDir(a.config.CacheDir, pkg.Name)); err != nil {
			return err
		}

		record := domain.InstallRecord{Package: pkg.Package, InstalledAt: a.now()}
		if err := a.store.Put(record); err != nil {
			return zerr.With(err, "package", pkg.Name)
		}
		a.logger.Info("installed", "package", pkg.Name, "version", pkg.Version)
	}

	a.logger.Info("install complete", "root", name, "packages", len(pending))
	return nil
}

// List returns the installed-package records ordered by name.
func (a *App) List(_ context.Context) ([]domain.InstallRecord, error) {
	return a.store.List()
}

// filterInstalled drops packages whose identical version is already recorded
// in the installed registry, making a re-run idempotent.
func (a *App) filterInstalled(pkgs []domain.Package, force bool) ([]domain.Package, error) {
	if force {
		return pkgs, nil
	}

	pending := make([]domain.Package, 0, len(pkgs))
	for _, pkg := range pkgs {
		record, err := a.store.Get(pkg.Name)
		if err != nil {
			return nil, zerr.With(err, "package", pkg.Name)
		}
		if record != nil && record.Package.Version == pkg.Version {
			a.logger.Info("already installed", "package", pkg.Name, "version", pkg.Version)
			continue
		}
		pending = append(pending, pkg)
	}
	return pending, nil
}

// orderForBuild sequences fetched packages dependency-first. The resolver's
// traversal order makes no such guarantee, so the ordering is computed here,
// right before the only consumer that needs it.
func orderForBuild(fetched []domain.FetchedPackage) []domain.FetchedPackage {
	byName := make(map[string]domain.FetchedPackage, len(fetched))
	pkgs := make([]domain.Package, len(fetched))
	for i, fp := range fetched {
		byName[fp.Name] = fp
		pkgs[i] = fp.Package
	}

	ordered := make([]domain.FetchedPackage, 0, len(fetched))
	for _, pkg := range resolver.BuildOrder(pkgs) {
		ordered = append(ordered, byName[pkg.Name])
	}
	return ordered
}
