package resolver_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/cpm/internal/core/domain"
	"go.trai.ch/cpm/internal/core/ports/mocks"
	"go.trai.ch/cpm/internal/engine/resolver"
	"go.uber.org/mock/gomock"
	"pgregory.net/rapid"
)

// registryFromGraph wires a mock registry so every package in deps can be
// fetched at most once. deps format: "name" -> ["dep1", "dep2"].
func registryFromGraph(ctrl *gomock.Controller, deps map[string][]string) *mocks.MockRegistryClient {
	client := mocks.NewMockRegistryClient(ctrl)
	for name, pkgDeps := range deps {
		pkg := &domain.Package{
			Name:         name,
			Version:      "1.0.0",
			Dependencies: pkgDeps,
			SourceURL:    "https://example.com/" + name + ".tar.gz",
			Build:        domain.BuildType{Kind: domain.BuildHeaderOnly},
		}
		client.EXPECT().Fetch(gomock.Any(), name).Return(pkg, nil).MaxTimes(1)
	}
	return client
}

func names(pkgs []domain.Package) []string {
	out := make([]string, len(pkgs))
	for i, p := range pkgs {
		out[i] = p.Name
	}
	return out
}

func TestResolver_TransitiveClosure(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := registryFromGraph(ctrl, map[string][]string{
		"R": {"A", "B"},
		"A": {"C"},
		"B": {},
		"C": {},
	})

	r := resolver.NewResolver(client)
	pkgs, err := r.Resolve(context.Background(), "R")
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"R", "A", "B", "C"}, names(pkgs))
}

func TestResolver_RootOnly(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := registryFromGraph(ctrl, map[string][]string{
		"solo": {},
	})

	r := resolver.NewResolver(client)
	pkgs, err := r.Resolve(context.Background(), "solo")
	require.NoError(t, err)
	require.Equal(t, []string{"solo"}, names(pkgs))
}

func TestResolver_DiamondFetchedOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	// D is reachable via both B and C; MaxTimes(1) in the helper makes a
	// second fetch fail the test.
	client := registryFromGraph(ctrl, map[string][]string{
		"A": {"B", "C"},
		"B": {"D"},
		"C": {"D"},
		"D": {},
	})

	r := resolver.NewResolver(client)
	pkgs, err := r.Resolve(context.Background(), "A")
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"A", "B", "C", "D"}, names(pkgs))
}

func TestResolver_CycleTerminates(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := registryFromGraph(ctrl, map[string][]string{
		"A": {"B"},
		"B": {"C"},
		"C": {"A"},
	})

	r := resolver.NewResolver(client)
	pkgs, err := r.Resolve(context.Background(), "A")
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"A", "B", "C"}, names(pkgs))
}

func TestResolver_SelfDependency(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := registryFromGraph(ctrl, map[string][]string{
		"loop": {"loop"},
	})

	r := resolver.NewResolver(client)
	pkgs, err := r.Resolve(context.Background(), "loop")
	require.NoError(t, err)
	require.Equal(t, []string{"loop"}, names(pkgs))
}

func TestResolver_RegistryFailureAborts(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockRegistryClient(ctrl)
	client.EXPECT().Fetch(gomock.Any(), "broken").
		Return(nil, domain.ErrPackageNotFound)

	r := resolver.NewResolver(client)
	pkgs, err := r.Resolve(context.Background(), "broken")
	require.Error(t, err)
	require.ErrorIs(t, err, domain.ErrPackageNotFound)
	require.Nil(t, pkgs)
}

func TestResolver_MidTraversalFailureAborts(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockRegistryClient(ctrl)
	root := &domain.Package{
		Name:         "root",
		Version:      "1.0.0",
		Dependencies: []string{"missing"},
		SourceURL:    "https://example.com/root.tar.gz",
		Build:        domain.BuildType{Kind: domain.BuildCMake},
	}
	client.EXPECT().Fetch(gomock.Any(), "root").Return(root, nil)
	client.EXPECT().Fetch(gomock.Any(), "missing").
		Return(nil, errors.New("registry unreachable"))

	r := resolver.NewResolver(client)
	pkgs, err := r.Resolve(context.Background(), "root")
	require.Error(t, err)
	require.Nil(t, pkgs)
}

func TestResolver_ClosureProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		// Generate a random graph over a small fixed name universe. Edges
		// only point into the universe, so every reachable name resolves.
		universe := []string{"p0", "p1", "p2", "p3", "p4", "p5"}
		graph := make(map[string][]string, len(universe))
		for _, name := range universe {
			deps := rapid.SliceOfNDistinct(
				rapid.SampledFrom(universe), 0, 3,
				func(s string) string { return s },
			).Draw(t, "deps_"+name)
			graph[name] = deps
		}
		root := rapid.SampledFrom(universe).Draw(t, "root")

		ctrl := gomock.NewController(t)
		client := registryFromGraph(ctrl, graph)

		r := resolver.NewResolver(client)
		pkgs, err := r.Resolve(context.Background(), root)
		require.NoError(t, err)

		resolved := make(map[string]struct{}, len(pkgs))
		for _, p := range pkgs {
			if _, dup := resolved[p.Name]; dup {
				t.Fatalf("package %s resolved twice", p.Name)
			}
			resolved[p.Name] = struct{}{}
		}

		// Root is present and the set is closed under dependencies.
		if _, ok := resolved[root]; !ok {
			t.Fatalf("root %s missing from result", root)
		}
		for _, p := range pkgs {
			for _, dep := range p.Dependencies {
				if _, ok := resolved[dep]; !ok {
					t.Fatalf("dependency %s of %s missing from result", dep, p.Name)
				}
			}
		}
	})
}

func TestBuildOrder_DependenciesFirst(t *testing.T) {
	pkgs := []domain.Package{
		{Name: "app", Dependencies: []string{"libfoo", "libbar"}},
		{Name: "libfoo", Dependencies: []string{"libbase"}},
		{Name: "libbar"},
		{Name: "libbase"},
	}

	ordered := resolver.BuildOrder(pkgs)
	require.Len(t, ordered, len(pkgs))

	pos := make(map[string]int, len(ordered))
	for i, p := range ordered {
		pos[p.Name] = i
	}
	require.Less(t, pos["libbase"], pos["libfoo"])
	require.Less(t, pos["libfoo"], pos["app"])
	require.Less(t, pos["libbar"], pos["app"])
}

func TestBuildOrder_IgnoresExternalDeps(t *testing.T) {
	// "zlib" was filtered out upstream (already installed); ordering must
	// not wait for it.
	pkgs := []domain.Package{
		{Name: "png", Dependencies: []string{"zlib"}},
	}

	ordered := resolver.BuildOrder(pkgs)
	require.Equal(t, []string{"png"}, names(ordered))
}

func TestBuildOrder_CycleKeepsAllPackages(t *testing.T) {
	pkgs := []domain.Package{
		{Name: "a", Dependencies: []string{"b"}},
		{Name: "b", Dependencies: []string{"a"}},
		{Name: "c"},
	}

	ordered := resolver.BuildOrder(pkgs)
	require.ElementsMatch(t, []string{"a", "b", "c"}, names(ordered))
	// The acyclic package is placed before the cycle remnant.
	require.Equal(t, "c", ordered[0].Name)
}

func TestBuildOrder_Empty(t *testing.T) {
	require.Empty(t, resolver.BuildOrder(nil))
}
