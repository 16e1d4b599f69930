package fragment

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"
)

// maxFragmentSize bounds how much of a fragment response is read
const maxFragmentSize = 4 << 20

// Fetcher retrieves fragment markup by relative path
type Fetcher interface {
	Fetch(ctx context.Context, fragmentPath string) ([]byte, error)
}

// StatusError is returned when a fragment request gets a non-success status
type StatusError struct {
	Path       string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("failed to load %s: status %d", e.Path, e.StatusCode)
}

// HTTPFetcher fetches fragments with GET requests relative to a base URL
type HTTPFetcher struct {
	client  *http.Client
	baseURL *url.URL
}

// NewHTTPFetcher creates a fetcher rooted at baseURL
func NewHTTPFetcher(baseURL string, timeout time.Duration) (*HTTPFetcher, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid fragment base URL: %w", err)
	}
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}
	return &HTTPFetcher{
		client:  &http.Client{Timeout: timeout},
		baseURL: base,
	}, nil
}

func (f *HTTPFetcher) Fetch(ctx context.Context, fragmentPath string) ([]byte, error) {
	ref, err := url.Parse(strings.TrimPrefix(fragmentPath, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid fragment path %s: %w", fragmentPath, err)
	}
	target := f.baseURL.ResolveReference(ref)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/html")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", fragmentPath, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Path: fragmentPath, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFragmentSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", fragmentPath, err)
	}
	return body, nil
}

// FSFetcher reads fragments from a file system, e.g. the static directory
type FSFetcher struct {
	fsys fs.FS
}

// NewFSFetcher creates a fetcher over fsys
func NewFSFetcher(fsys fs.FS) *FSFetcher {
	return &FSFetcher{fsys: fsys}
}

func (f *FSFetcher) Fetch(ctx context.Context, fragmentPath string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name := path.Clean(strings.TrimPrefix(fragmentPath, "/"))
	if !fs.ValidPath(name) {
		return nil, fmt.Errorf("invalid fragment path %s", fragmentPath)
	}
	body, err := fs.ReadFile(f.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", fragmentPath, err)
	}
	return body, nil
}
