package ports

import "go.trai.ch/cpm/internal/core/domain"

// InstalledStore is the installed-package registry: it maps a package name to
// the descriptor last successfully built. A name maps to at most one record.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type InstalledStore interface {
	// Get retrieves the record for a package name.
	// Returns nil, nil if not found.
	Get(name string) (*domain.InstallRecord, error)

	// Put commits a record, replacing any previous record for the same name.
	Put(record domain.InstallRecord) error

	// List returns all records ordered by package name.
	List() ([]domain.InstallRecord, error)
}
