package buildsys

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/cpm/internal/core/domain"
	"go.trai.ch/zerr"
)

// Headers implements ports.HeaderInstaller: a purely local copy of a package's
// headers into the cache include path. No external process is involved.
type Headers struct{}

// NewHeaders creates a new Headers installer.
func NewHeaders() *Headers {
	return &Headers{}
}

// Install copies headers from the fetched source tree into includeDir.
// If the source tree carries an include/ directory its contents are copied
// verbatim; otherwise every header file in the tree is copied preserving its
// relative path.
func (h *Headers) Install(name, srcDir, includeDir string) error {
	root := srcDir
	if fi, err := os.Stat(filepath.Join(srcDir, "include")); err == nil && fi.IsDir() {
		root = filepath.Join(srcDir, "include")
	}

	if err := os.MkdirAll(includeDir, domain.DirPerm); err != nil {
		return zerr.Wrap(err, domain.ErrHeaderInstallFailed.Error())
	}

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() || !isHeader(path) {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		return copyFile(path, filepath.Join(includeDir, rel))
	})
	if err != nil {
		wrapped := zerr.Wrap(err, domain.ErrHeaderInstallFailed.Error())
		return zerr.With(wrapped, "package", name)
	}
	return nil
}

func isHeader(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".h", ".hpp", ".hh", ".hxx", ".ipp", ".inl":
		return true
	}
	return false
}

func copyFile(src, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), domain.DirPerm); err != nil {
		return err
	}

	in, err := os.Open(src) //nolint:gosec // Path comes from walking the fetched source tree
	if err != nil {
		return err
	}
	defer func() {
		_ = in.Close()
	}()

	out, err := os.OpenFile(dest, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, domain.FilePerm) //nolint:gosec // Path is within the cache include dir
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
