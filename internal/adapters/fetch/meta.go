package fetch

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/cpm/internal/core/domain"
	"go.trai.ch/zerr"
)

const metaFileName = ".cpm-meta.json"

// sourceMeta records what was fetched into a package's cache directory so a
// later run can validate and reuse it without touching the network.
type sourceMeta struct {
	Name      string    `json:"name"`
	Version   string    `json:"version"`
	Checksum  string    `json:"checksum"`
	Digest    string    `json:"digest"`
	SourceDir string    `json:"source_dir"`
	FetchedAt time.Time `json:"fetched_at"`
}

func loadMeta(pkgDir string) (*sourceMeta, error) {
	//nolint:gosec // Path is within the trusted cache directory
	data, err := os.ReadFile(filepath.Join(pkgDir, metaFileName))
	if err != nil {
		return nil, err
	}

	var meta sourceMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// saveMeta writes the meta file atomically: temp file then rename.
func saveMeta(pkgDir string, meta sourceMeta) error {
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrStoreMarshalFailed.Error())
	}

	tmp, err := os.CreateTemp(pkgDir, "meta-*.json")
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
	if err := os.Rename(tmpName, filepath.Join(pkgDir, metaFileName)); err != nil {
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}
	return nil
}
