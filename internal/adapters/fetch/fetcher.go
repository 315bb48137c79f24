// Package fetch implements the Fetcher port: concurrent, cache-aware
// retrieval of package source artifacts.
package fetch

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/schollz/progressbar/v3"
	"go.trai.ch/cpm/internal/core/domain"
	"go.trai.ch/cpm/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Fetcher implements ports.Fetcher with a bounded worker pool and a
// checksum-keyed local cache.
type Fetcher struct {
	cacheDir   string
	workers    int
	httpClient *http.Client
	logger     ports.Logger

	// progress disables the terminal progress bar when false (tests, --json).
	progress bool
}

// NewFetcher creates a Fetcher downloading into the given cache directory.
func NewFetcher(cacheDir string, workers int, timeout time.Duration, logger ports.Logger) *Fetcher {
	if workers < 1 {
		workers = 1
	}
	return &Fetcher{
		cacheDir: cacheDir,
		workers:  workers,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		logger:   logger,
		progress: true,
	}
}

// WithoutProgress disables the progress bar output.
func (f *Fetcher) WithoutProgress() *Fetcher {
	f.progress = false
	return f
}

// FetchAll downloads every package's source artifact concurrently, bounded by
// the worker count, and blocks until all downloads complete. The first error
// cancels the remaining work and fails the whole batch.
func (f *Fetcher) FetchAll(ctx context.Context, pkgs []domain.Package) ([]domain.FetchedPackage, error) {
	if len(pkgs) == 0 {
		return nil, nil
	}

	var bar *progressbar.ProgressBar
	if f.progress {
		bar = progressbar.NewOptions(len(pkgs),
			progressbar.OptionSetDescription("downloading"),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionThrottle(100*time.Millisecond),
		)
	}

	results := make([]domain.FetchedPackage, len(pkgs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(f.workers)

	for i, pkg := range pkgs {
		g.Go(func() error {
			fetched, err := f.fetchOne(ctx, pkg)
			if err != nil {
				return zerr.With(err, "package", pkg.Name)
			}
			results[i] = fetched
			if bar != nil {
				_ = bar.Add(1)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if bar != nil {
		_ = bar.Finish()
	}

	return results, nil
}

// fetchOne localizes a single package, consulting the cache before touching
// the network.
func (f *Fetcher) fetchOne(ctx context.Context, pkg domain.Package) (domain.FetchedPackage, error) {
	pkgDir := domain.SourceDir(f.cacheDir, pkg.Name)

	if srcDir, ok := f.cachedSource(pkg, pkgDir); ok {
		f.logger.Info("using cached source", "package", pkg.Name, "version", pkg.Version)
		return domain.FetchedPackage{Package: pkg, SourceDir: srcDir}, nil
	}

	f.logger.Info("downloading", "package", pkg.Name, "url", pkg.SourceURL)

	if err := os.MkdirAll(pkgDir, domain.DirPerm); err != nil {
		return domain.FetchedPackage{}, zerr.Wrap(err, domain.ErrCacheCreateFailed.Error())
	}

	artifact := filepath.Join(pkgDir, artifactName(pkg.SourceURL))
	checksum, digest, err := f.download(ctx, pkg.SourceURL, artifact)
	if err != nil {
		return domain.FetchedPackage{}, zerr.Wrap(err, domain.ErrFetchFailed.Error())
	}

	if pkg.Checksum != "" && !strings.EqualFold(pkg.Checksum, checksum) {
		err := zerr.With(domain.ErrChecksumMismatch, "expected", pkg.Checksum)
		return domain.FetchedPackage{}, zerr.With(err, "actual", checksum)
	}

	srcDir, err := unpack(artifact, pkgDir)
	if err != nil {
		return domain.FetchedPackage{}, zerr.Wrap(err, domain.ErrFetchFailed.Error())
	}

	meta := sourceMeta{
		Name:      pkg.Name,
		Version:   pkg.Version,
		Checksum:  checksum,
		Digest:    digest,
		SourceDir: srcDir,
		FetchedAt: time.Now().UTC(),
	}
	if err := saveMeta(pkgDir, meta); err != nil {
		return domain.FetchedPackage{}, err
	}

	return domain.FetchedPackage{Package: pkg, SourceDir: srcDir}, nil
}

// cachedSource reports whether a valid cached copy of the package source
// exists, keyed by (name, version) and verified against the recorded digest.
func (f *Fetcher) cachedSource(pkg domain.Package, pkgDir string) (string, bool) {
	meta, err := loadMeta(pkgDir)
	if err != nil {
		return "", false
	}
	if meta.Name != pkg.Name || meta.Version != pkg.Version {
		return "", false
	}
	if pkg.Checksum != "" && !strings.EqualFold(meta.Checksum, pkg.Checksum) {
		return "", false
	}

	artifact := filepath.Join(pkgDir, artifactName(pkg.SourceURL))
	digest, err := fileDigest(artifact)
	if err != nil || digest != meta.Digest {
		return "", false
	}

	if _, err := os.Stat(meta.SourceDir); err != nil {
		return "", false
	}

	return meta.SourceDir, true
}

// download streams the artifact to a temp file and renames it into place,
// returning the SHA-256 checksum and xxhash digest of the payload.
func (f *Fetcher) download(ctx context.Context, srcURL, dest string) (checksum, digest string, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srcURL, http.NoBody)
	if err != nil {
		return "", "", err
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", "", err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("bad status: %s", resp.Status)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), "fetch-*")
	if err != nil {
		return "", "", err
	}
	tmpName := tmp.Name()
	defer func() {
		if _, statErr := os.Stat(tmpName); statErr == nil {
			_ = os.Remove(tmpName)
		}
	}()

	sum := sha256.New()
	xx := xxhash.New()
	if _, err := io.Copy(tmp, io.TeeReader(resp.Body, io.MultiWriter(sum, xx))); err != nil {
		_ = tmp.Close()
		return "", "", err
	}
	if err := tmp.Close(); err != nil {
		return "", "", err
	}

	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return "", "", err
	}
	if err := os.Rename(tmpName, dest); err != nil {
		return "", "", err
	}

	return hex.EncodeToString(sum.Sum(nil)), fmt.Sprintf("%x", xx.Sum64()), nil
}

// fileDigest computes the xxhash digest of a file on disk.
func fileDigest(path string) (string, error) {
	file, err := os.Open(path) //nolint:gosec // Path is within the trusted cache directory
	if err != nil {
		return "", err
	}
	defer func() {
		_ = file.Close()
	}()

	xx := xxhash.New()
	if _, err := io.Copy(xx, file); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", xx.Sum64()), nil
}

// artifactName derives a stable on-disk name for the downloaded artifact.
func artifactName(srcURL string) string {
	if u, err := url.Parse(srcURL); err == nil {
		if base := path.Base(u.Path); base != "." && base != "/" && base != "" {
			return base
		}
	}
	return "artifact"
}
