// Package resolver expands a root package name into its transitive dependency
// closure using the registry.
package resolver

import (
	"context"

	"go.trai.ch/cpm/internal/core/domain"
	"go.trai.ch/cpm/internal/core/ports"
	"go.trai.ch/zerr"
)

// Resolver walks the dependency graph implicitly: nodes are identified by
// name and edges are resolved on demand via the registry client. No in-memory
// pointer graph is built.
type Resolver struct {
	client ports.RegistryClient
}

// NewResolver creates a new Resolver backed by the given registry client.
func NewResolver(client ports.RegistryClient) *Resolver {
	return &Resolver{client: client}
}

// Resolve returns the descriptors of the root package and every package
// transitively reachable from it, deduplicated by name.
//
// The traversal is a worklist with a visited set: each distinct name is
// fetched at most once, so diamond dependencies collapse and cycles terminate
// without being reported. The output order is traversal order, not a
// dependency-first order; use BuildOrder for that.
//
// Resolution is fail-fast: the first registry failure aborts the whole call.
func (r *Resolver) Resolve(ctx context.Context, root string) ([]domain.Package, error) {
	worklist := []string{root}
	visited := make(map[string]struct{})
	var resolved []domain.Package

	for len(worklist) > 0 {
		name := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]

		if _, ok := visited[name]; ok {
			continue
		}

		pkg, err := r.client.Fetch(ctx, name)
		if err != nil {
			wrapped := zerr.Wrap(err, domain.ErrResolutionFailed.Error())
			return nil, zerr.With(wrapped, "package", name)
		}

		for _, dep := range pkg.Dependencies {
			if _, ok := visited[dep]; !ok {
				worklist = append(worklist, dep)
			}
		}

		visited[name] = struct{}{}
		resolved = append(resolved, *pkg)
	}

	return resolved, nil
}

// BuildOrder reorders the resolved set so that every package appears after
// its dependencies. Dependencies outside the set (already satisfied) are
// ignored. When a cycle prevents a full ordering, the remaining participants
// are appended in input order so the result always contains every package.
func BuildOrder(pkgs []domain.Package) []domain.Package {
	inSet := make(map[string]*domain.Package, len(pkgs))
	for i := range pkgs {
		inSet[pkgs[i].Name] = &pkgs[i]
	}

	ordered := make([]domain.Package, 0, len(pkgs))
	placed := make(map[string]struct{}, len(pkgs))

	for changed := true; changed; {
		changed = false
		for i := range pkgs {
			pkg := &pkgs[i]
			if _, done := placed[pkg.Name]; done {
				continue
			}
			if depsPlaced(pkg, inSet, placed) {
				ordered = append(ordered, *pkg)
				placed[pkg.Name] = struct{}{}
				changed = true
			}
		}
	}

	// Cycle participants: emit in input order rather than dropping them.
	for i := range pkgs {
		if _, done := placed[pkgs[i].Name]; !done {
			ordered = append(ordered, pkgs[i])
		}
	}

	return ordered
}

func depsPlaced(pkg *domain.Package, inSet map[string]*domain.Package, placed map[string]struct{}) bool {
	for _, dep := range pkg.Dependencies {
		if _, resolved := inSet[dep]; !resolved {
			continue
		}
		if _, done := placed[dep]; !done {
			return false
		}
	}
	return true
}
