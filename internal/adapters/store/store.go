// Package store implements the installed-package registry.
package store

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"go.trai.ch/cpm/internal/core/domain"
	"go.trai.ch/zerr"
)

// Store implements ports.InstalledStore: an in-process map from package name
// to the record last successfully built, snapshotted to a JSON manifest in
// the cache directory so a re-run can skip already-installed packages.
type Store struct {
	manifestPath string

	mu      sync.RWMutex
	records map[string]domain.InstallRecord
}

// NewStore creates a Store rooted at the given cache directory, loading any
// existing manifest. A missing manifest is not an error.
func NewStore(cacheDir string) (*Store, error) {
	s := &Store{
		manifestPath: domain.ManifestPath(cacheDir),
		records:      make(map[string]domain.InstallRecord),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Get retrieves the record for a package name. Returns nil, nil if not found.
func (s *Store) Get(name string) (*domain.InstallRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[name]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

// Put commits a record, replacing any previous record for the same name, and
// snapshots the manifest.
func (s *Store) Put(record domain.InstallRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[record.Package.Name] = record
	return s.snapshot()
}

// List returns all records ordered by package name.
func (s *Store) List() ([]domain.InstallRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]domain.InstallRecord, 0, len(s.records))
	for _, record := range s.records {
		records = append(records, record)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Package.Name < records[j].Package.Name
	})
	return records, nil
}

func (s *Store) load() error {
	//nolint:gosec // Path is within the trusted cache directory
	data, err := os.ReadFile(s.manifestPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.Wrap(err, domain.ErrStoreReadFailed.Error())
	}

	var records []domain.InstallRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return zerr.Wrap(err, domain.ErrStoreUnmarshalFailed.Error())
	}

	for _, record := range records {
		s.records[record.Package.Name] = record
	}
	return nil
}

// snapshot writes the manifest atomically. Callers must hold the write lock.
func (s *Store) snapshot() error {
	records := make([]domain.InstallRecord, 0, len(s.records))
	for _, record := range s.records {
		records = append(records, record)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Package.Name < records[j].Package.Name
	})

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrStoreMarshalFailed.Error())
	}

	dir := filepath.Dir(s.manifestPath)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}

	tmp, err := os.CreateTemp(dir, "installed-*.json")
	if err != nil {
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}
	tmpName := tmp.Name()
	defer func() {
		if _, statErr := os.Stat(tmpName); statErr == nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}
	if err := tmp.Close(); err != nil {
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}

	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}
	if err := os.Rename(tmpName, s.manifestPath); err != nil {
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}
	return nil
}
