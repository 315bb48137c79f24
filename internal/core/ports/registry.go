// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/cpm/internal/core/domain"
)

// RegistryClient fetches package descriptors by name from the remote registry.
// Implementations must be stateless lookups, safe under concurrent invocation.
//
//go:generate go run go.uber.org/mock/mockgen -source=registry.go -destination=mocks/mock_registry.go -package=mocks
type RegistryClient interface {
	// Fetch retrieves the descriptor for the given package name.
	// It returns domain.ErrPackageNotFound when the registry has no entry,
	// domain.ErrRegistryRequestFailed on transport failures and
	// domain.ErrRegistryParseFailed on malformed payloads.
	Fetch(ctx context.Context, name string) (*domain.Package, error)
}
