package content

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"
)

const defaultMaxBytes = 4 << 20

var errTooLarge = errors.New("response too large")

// Fetcher retrieves whole documents from a read-only store by path.
// Implementations return classified retrieval errors on failure.
type Fetcher interface {
	Fetch(ctx context.Context, path string) ([]byte, error)
}

// NewHTTPClient creates an HTTP client with safe defaults: a timeout and
// redirects restricted to the original host.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &http.Client{
		Timeout: timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) == 0 {
				return nil
			}
			if req.URL.Host != via[0].URL.Host {
				return errors.New("redirect to different host blocked")
			}
			if len(via) >= 5 {
				return errors.New("too many redirects")
			}
			return nil
		},
	}
}

// HTTPFetcher reads documents from a static web host with cache bypass.
type HTTPFetcher struct {
	base     *url.URL
	client   *http.Client
	maxBytes int64
}

// NewHTTPFetcher creates a fetcher rooted at baseURL. A nil client gets
// NewHTTPClient defaults; maxBytes <= 0 uses a 4 MiB limit.
func NewHTTPFetcher(baseURL string, client *http.Client, maxBytes int64) (*HTTPFetcher, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid store URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("unsupported store URL scheme: %s", parsed.Scheme)
	}
	if client == nil {
		client = NewHTTPClient(0)
	}
	if maxBytes <= 0 {
		maxBytes = defaultMaxBytes
	}
	return &HTTPFetcher{base: parsed, client: client, maxBytes: maxBytes}, nil
}

// URL returns the absolute URL for a store path. The path is percent-encoded
// when rendered.
func (f *HTTPFetcher) URL(p string) string {
	u := *f.base
	u.RawPath = ""
	u.Path = strings.TrimSuffix(f.base.Path, "/") + "/" + strings.TrimLeft(p, "/")
	return u.String()
}

// Fetch implements Fetcher with a GET that bypasses intermediate caches. Any
// 2xx status is success.
func (f *HTTPFetcher) Fetch(ctx context.Context, p string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL(p), http.NoBody)
	if err != nil {
		return nil, newRetrievalError(p, 0, fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Cache-Control", "no-store")
	req.Header.Set("Pragma", "no-cache")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, newRetrievalError(p, 0, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newRetrievalError(p, resp.StatusCode, nil)
	}
	data, err := readLimited(resp.Body, f.maxBytes)
	if err != nil {
		return nil, newRetrievalError(p, resp.StatusCode, err)
	}
	return data, nil
}

// FSFetcher reads documents from a file system, typically a local checkout of
// the published site.
type FSFetcher struct {
	fsys     fs.FS
	maxBytes int64
}

// NewFSFetcher creates a fetcher over fsys. maxBytes <= 0 uses a 4 MiB limit.
func NewFSFetcher(fsys fs.FS, maxBytes int64) *FSFetcher {
	if maxBytes <= 0 {
		maxBytes = defaultMaxBytes
	}
	return &FSFetcher{fsys: fsys, maxBytes: maxBytes}
}

// Fetch implements Fetcher. Missing files map to status 404 so callers see the
// same failure shape as the HTTP store.
func (f *FSFetcher) Fetch(ctx context.Context, p string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, newRetrievalError(p, 0, err)
	}
	name := path.Clean(strings.TrimLeft(p, "/"))
	if !fs.ValidPath(name) {
		return nil, newRetrievalError(p, 400, fmt.Errorf("invalid path %q", p))
	}

	file, err := f.fsys.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, newRetrievalError(p, 404, err)
		}
		return nil, newRetrievalError(p, 0, err)
	}
	defer func() {
		_ = file.Close()
	}()

	if info, statErr := file.Stat(); statErr == nil && info.IsDir() {
		return nil, newRetrievalError(p, 404, fmt.Errorf("%s is a directory", name))
	}
	data, err := readLimited(file, f.maxBytes)
	if err != nil {
		return nil, newRetrievalError(p, 0, err)
	}
	return data, nil
}

func readLimited(r io.Reader, maxBytes int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return nil, errTooLarge
	}
	return data, nil
}
