package fetch

import (
	"archive/tar"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"go.trai.ch/cpm/internal/core/domain"
)

// unpack extracts a gzip-compressed tarball into pkgDir/source and returns
// the extracted directory. Artifacts in other formats are left as-is and the
// package directory itself is the source location.
func unpack(artifact, pkgDir string) (string, error) {
	if !strings.HasSuffix(artifact, ".tar.gz") && !strings.HasSuffix(artifact, ".tgz") {
		return pkgDir, nil
	}

	srcDir := filepath.Join(pkgDir, "source")
	if err := os.RemoveAll(srcDir); err != nil {
		return "", err
	}
	if err := os.MkdirAll(srcDir, domain.DirPerm); err != nil {
		return "", err
	}

	file, err := os.Open(artifact) //nolint:gosec // Path is within the trusted cache directory
	if err != nil {
		return "", err
	}
	defer func() {
		_ = file.Close()
	}()

	gz, err := gzip.NewReader(file)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = gz.Close()
	}()

	if err := extractTar(tar.NewReader(gz), srcDir); err != nil {
		return "", err
	}
	return srcDir, nil
}

func extractTar(tr *tar.Reader, destDir string) error {
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		target, err := safeJoin(destDir, hdr.Name)
		if err != nil {
			return err
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, domain.DirPerm); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := writeEntry(target, tr); err != nil {
				return err
			}
		default:
			// Symlinks and special files are skipped: a source archive from an
			// untrusted registry must not place links outside the cache.
		}
	}
}

func writeEntry(target string, tr *tar.Reader) error {
	if err := os.MkdirAll(filepath.Dir(target), domain.DirPerm); err != nil {
		return err
	}

	out, err := os.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, domain.FilePerm) //nolint:gosec // Path checked by safeJoin
	if err != nil {
		return err
	}

	//nolint:gosec // Decompression bound is acceptable for source archives
	if _, err := io.Copy(out, tr); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

// safeJoin joins an archive entry name to the destination, rejecting entries
// that would escape it.
func safeJoin(destDir, name string) (string, error) {
	target := filepath.Join(destDir, filepath.Clean("/"+name))
	if !strings.HasPrefix(target, filepath.Clean(destDir)+string(os.PathSeparator)) && target != filepath.Clean(destDir) {
		return "", errors.New("archive entry escapes destination: " + name)
	}
	return target, nil
}
