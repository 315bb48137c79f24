package store_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.trai.ch/cpm/internal/adapters/store"
	"go.trai.ch/cpm/internal/core/domain"
)

func record(name, version string) domain.InstallRecord {
	return domain.InstallRecord{
		Package: domain.Package{
			Name:    name,
			Version: version,
			Build:   domain.BuildType{Kind: domain.BuildCMake},
		},
		InstalledAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestStore_GetMissingReturnsNilNil(t *testing.T) {
	s, err := store.NewStore(t.TempDir())
	require.NoError(t, err)

	got, err := s.Get("absent")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestStore_PutAndGet(t *testing.T) {
	s, err := store.NewStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.Put(record("fmt", "10.2.1")))

	got, err := s.Get("fmt")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "10.2.1", got.Package.Version)
}

func TestStore_PutReplacesSameName(t *testing.T) {
	s, err := store.NewStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.Put(record("fmt", "10.2.1")))
	require.NoError(t, s.Put(record("fmt", "11.0.0")))

	got, err := s.Get("fmt")
	require.NoError(t, err)
	require.Equal(t, "11.0.0", got.Package.Version)

	records, err := s.List()
	require.NoError(t, err)
	require.Len(t, records, 1, "one record per name")
}

func TestStore_ListSortedByName(t *testing.T) {
	s, err := store.NewStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.Put(record("zlib", "1.3.1")))
	require.NoError(t, s.Put(record("fmt", "10.2.1")))
	require.NoError(t, s.Put(record("abseil", "20240116")))

	records, err := s.List()
	require.NoError(t, err)
	require.Len(t, records, 3)
	require.Equal(t, "abseil", records[0].Package.Name)
	require.Equal(t, "fmt", records[1].Package.Name)
	require.Equal(t, "zlib", records[2].Package.Name)
}

func TestStore_ManifestSurvivesReload(t *testing.T) {
	cacheDir := t.TempDir()

	s, err := store.NewStore(cacheDir)
	require.NoError(t, err)
	require.NoError(t, s.Put(record("fmt", "10.2.1")))
	require.NoError(t, s.Put(record("zlib", "1.3.1")))

	reloaded, err := store.NewStore(cacheDir)
	require.NoError(t, err)

	got, err := reloaded.Get("fmt")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "10.2.1", got.Package.Version)

	records, err := reloaded.List()
	require.NoError(t, err)
	require.Len(t, records, 2)
}

func TestStore_CorruptManifestFailsLoad(t *testing.T) {
	cacheDir := t.TempDir()
	manifest := domain.ManifestPath(cacheDir)
	require.NoError(t, os.MkdirAll(filepath.Dir(manifest), 0o755))
	require.NoError(t, os.WriteFile(manifest, []byte("{not json"), 0o644))

	_, err := store.NewStore(cacheDir)
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to unmarshal installed-package manifest")
}

func TestStore_MissingManifestIsNotAnError(t *testing.T) {
	s, err := store.NewStore(filepath.Join(t.TempDir(), "fresh"))
	require.NoError(t, err)

	records, err := s.List()
	require.NoError(t, err)
	require.Empty(t, records)
}

func TestStore_ManifestIsValidJSONOnDisk(t *testing.T) {
	cacheDir := t.TempDir()
	s, err := store.NewStore(cacheDir)
	require.NoError(t, err)
	require.NoError(t, s.Put(record("fmt", "10.2.1")))

	data, err := os.ReadFile(domain.ManifestPath(cacheDir))
	require.NoError(t, err)
	require.JSONEq(t, `[{
		"package": {
			"name": "fmt",
			"version": "10.2.1",
			"source_url": "",
			"build_type": {"kind": "cmake"}
		},
		"installed_at": "2026-08-01T12:00:00Z"
	}]`, string(data))
}
