// Package registry implements the RegistryClient port over the registry's
// HTTP protocol.
package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.trai.ch/cpm/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	descriptorTTL        = 10 * time.Minute
	descriptorSweepEvery = 30 * time.Minute
)

// Client implements ports.RegistryClient.
//
// Descriptors are memoized with a TTL so diamond-heavy graphs and repeated
// installs in one process do not re-query the registry. The client itself is
// stateless beyond that cache and safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	memo       *gocache.Cache
}

// NewClient creates a registry client for the given base URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		memo: gocache.New(descriptorTTL, descriptorSweepEvery),
	}
}

// Fetch retrieves the descriptor for a package name.
func (c *Client) Fetch(ctx context.Context, name string) (*domain.Package, error) {
	if pkg, ok := c.memo.Get(name); ok {
		if cached, valid := pkg.(*domain.Package); valid {
			return cached, nil
		}
	}

	pkg, err := c.query(ctx, name)
	if err != nil {
		return nil, err
	}

	c.memo.Set(name, pkg, gocache.DefaultExpiration)
	return pkg, nil
}

func (c *Client) query(ctx context.Context, name string) (*domain.Package, error) {
	endpoint := fmt.Sprintf("%s/packages/%s", c.baseURL, url.PathEscape(name))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, wrapRequestErr(err, name)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, wrapRequestErr(err, name)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, zerr.With(domain.ErrPackageNotFound, "package", name)
	case resp.StatusCode != http.StatusOK:
		err := zerr.With(domain.ErrRegistryRequestFailed, "package", name)
		return nil, zerr.With(err, "status", resp.StatusCode)
	}

	var dto packageDTO
	if err := json.NewDecoder(resp.Body).Decode(&dto); err != nil {
		wrapped := zerr.Wrap(err, domain.ErrRegistryParseFailed.Error())
		return nil, zerr.With(wrapped, "package", name)
	}

	pkg, err := dto.toDomain()
	if err != nil {
		wrapped := zerr.Wrap(err, domain.ErrRegistryParseFailed.Error())
		return nil, zerr.With(wrapped, "package", name)
	}

	return pkg, nil
}

func wrapRequestErr(err error, name string) error {
	wrapped := zerr.Wrap(err, domain.ErrRegistryRequestFailed.Error())
	return zerr.With(wrapped, "package", name)
}
