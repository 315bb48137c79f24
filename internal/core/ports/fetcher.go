package ports

import (
	"context"

	"go.trai.ch/cpm/internal/core/domain"
)

// Fetcher localizes package source artifacts into the cache.
//
//go:generate go run go.uber.org/mock/mockgen -source=fetcher.go -destination=mocks/mock_fetcher.go -package=mocks
type Fetcher interface {
	// FetchAll downloads every package's source artifact concurrently and
	// blocks until all downloads complete. The batch is fail-fast: the first
	// download error cancels the remaining work and fails the whole call.
	//
	// Results are returned in the order of the input descriptors. Packages
	// whose cached artifact passes validation are not re-downloaded.
	FetchAll(ctx context.Context, pkgs []domain.Package) ([]domain.FetchedPackage, error)
}
