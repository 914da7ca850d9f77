package content

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docnav/internal/docpath"
	"git.home.luguber.info/inful/docnav/internal/metrics"
)

// countingFetcher records every path requested.
type countingFetcher struct {
	mu    sync.Mutex
	inner Fetcher
	paths []string
}

func (c *countingFetcher) Fetch(ctx context.Context, p string) ([]byte, error) {
	c.mu.Lock()
	c.paths = append(c.paths, p)
	c.mu.Unlock()
	return c.inner.Fetch(ctx, p)
}

type recorderSpy struct {
	fetches   int
	failures  int
	fallbacks int
}

func (r *recorderSpy) ObserveFetch(_ time.Duration, ok bool) {
	r.fetches++
	if !ok {
		r.failures++
	}
}
func (r *recorderSpy) IncFallback()                                { r.fallbacks++ }
func (r *recorderSpy) ObserveCorpusBuild(time.Duration, int, bool) {}
func (r *recorderSpy) IncStubRecords(int)                          {}
func (r *recorderSpy) IncNavigation(string, metrics.ResultLabel)   {}

func TestLoadWithFallback_Verbatim(t *testing.T) {
	fsys := fstest.MapFS{"docs/intro.md": {Data: []byte("# Intro")}}
	cf := &countingFetcher{inner: NewFSFetcher(fsys, 0)}
	l := NewLoader(cf, docpath.Default())

	res, err := l.LoadWithFallback(t.Context(), "docs/intro.md")
	require.NoError(t, err)
	assert.Equal(t, "# Intro", res.Raw)
	assert.Equal(t, "docs/intro.md", res.ResolvedPath)
	assert.False(t, res.Fallback("docs/intro.md"))
	assert.Equal(t, []string{"docs/intro.md"}, cf.paths)
}

func TestLoadWithFallback_MirroredLayout(t *testing.T) {
	fsys := fstest.MapFS{"docs/docs/intro.md": {Data: []byte("mirrored")}}
	cf := &countingFetcher{inner: NewFSFetcher(fsys, 0)}
	l := NewLoader(cf, docpath.Default())

	res, err := l.LoadWithFallback(t.Context(), "docs/intro.md")
	require.NoError(t, err)
	assert.Equal(t, "mirrored", res.Raw)
	assert.Equal(t, "docs/docs/intro.md", res.ResolvedPath)
	assert.True(t, res.Fallback("docs/intro.md"))
	assert.Equal(t, []string{"docs/intro.md", "docs/docs/intro.md"}, cf.paths)
}

func TestLoadWithFallback_ReverseDirection(t *testing.T) {
	fsys := fstest.MapFS{"docs/intro.md": {Data: []byte("flat")}}
	l := NewLoader(NewFSFetcher(fsys, 0), docpath.Default())

	res, err := l.LoadWithFallback(t.Context(), "docs/docs/intro.md")
	require.NoError(t, err)
	assert.Equal(t, "docs/intro.md", res.ResolvedPath)
}

func TestLoadWithFallback_BothFailPropagatesOriginal(t *testing.T) {
	cf := &countingFetcher{inner: NewFSFetcher(fstest.MapFS{}, 0)}
	l := NewLoader(cf, docpath.Default())

	_, err := l.LoadWithFallback(t.Context(), "docs/missing.md")
	require.Error(t, err)
	assert.True(t, IsRetrievalError(err))
	p, _ := PathOf(err)
	assert.Equal(t, "docs/missing.md", p)
	status, ok := StatusOf(err)
	require.True(t, ok)
	assert.Equal(t, 404, status)
	assert.Len(t, cf.paths, 2, "at most two round trips")
}

func TestLoadWithFallback_NoAlternate(t *testing.T) {
	cf := &countingFetcher{inner: NewFSFetcher(fstest.MapFS{}, 0)}
	l := NewLoader(cf, docpath.Default())

	_, err := l.LoadWithFallback(t.Context(), "content/aboutme.md")
	require.Error(t, err)
	assert.Equal(t, []string{"content/aboutme.md"}, cf.paths)
}

func TestHTTPFetcher(t *testing.T) {
	var gotHeaders http.Header
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeaders = r.Header.Clone()
		gotPath = r.URL.EscapedPath()
		switch r.URL.Path {
		case "/site/docs/My Note.md":
			_, _ = w.Write([]byte("# Note"))
		case "/site/images/manifest.json":
			_, _ = w.Write([]byte(`{"images":["a.png"]}`))
		case "/site/broken.json":
			_, _ = w.Write([]byte(`{"images":`))
		case "/site/teapot.md":
			w.WriteHeader(http.StatusTeapot)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	f, err := NewHTTPFetcher(server.URL+"/site/", nil, 0)
	require.NoError(t, err)
	rec := &recorderSpy{}
	l := NewLoader(f, docpath.Default(), WithRecorder(rec))

	raw, err := l.Load(t.Context(), "docs/My Note.md")
	require.NoError(t, err)
	assert.Equal(t, "# Note", raw)
	assert.Equal(t, "/site/docs/My%20Note.md", gotPath)
	assert.Equal(t, "no-store", gotHeaders.Get("Cache-Control"))
	assert.Equal(t, "no-cache", gotHeaders.Get("Pragma"))

	var manifest struct {
		Images []string `json:"images"`
	}
	require.NoError(t, l.LoadJSON(t.Context(), "images/manifest.json", &manifest))
	assert.Equal(t, []string{"a.png"}, manifest.Images)

	err = l.LoadJSON(t.Context(), "broken.json", &manifest)
	require.Error(t, err)
	assert.True(t, IsDecodeError(err))
	assert.False(t, IsRetrievalError(err))

	err = l.LoadJSON(t.Context(), "missing.json", &manifest)
	require.Error(t, err)
	assert.True(t, IsRetrievalError(err))

	_, err = l.Load(t.Context(), "teapot.md")
	require.Error(t, err)
	status, _ := StatusOf(err)
	assert.Equal(t, http.StatusTeapot, status)

	assert.Equal(t, 5, rec.fetches)
	assert.Equal(t, 2, rec.failures)
}

func TestHTTPFetcherRejectsLargeBodies(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(make([]byte, 64))
	}))
	t.Cleanup(server.Close)

	f, err := NewHTTPFetcher(server.URL, nil, 16)
	require.NoError(t, err)
	_, err = f.Fetch(t.Context(), "big.md")
	require.Error(t, err)
	assert.True(t, IsRetrievalError(err))
	assert.True(t, errors.Is(err, errTooLarge))
}

func TestNewHTTPFetcherValidatesURL(t *testing.T) {
	_, err := NewHTTPFetcher("ftp://example.com", nil, 0)
	require.Error(t, err)
}

func TestFSFetcherRejectsDirectoriesAndCanceledContext(t *testing.T) {
	fsys := fstest.MapFS{"docs/a.md": {Data: []byte("a")}}
	f := NewFSFetcher(fsys, 0)

	_, err := f.Fetch(t.Context(), "docs")
	require.Error(t, err)
	status, _ := StatusOf(err)
	assert.Equal(t, 404, status)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	_, err = f.Fetch(ctx, "docs/a.md")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

type plainErrFetcher struct{}

func (plainErrFetcher) Fetch(context.Context, string) ([]byte, error) {
	return nil, errors.New("boom")
}

func TestLoaderClassifiesForeignErrors(t *testing.T) {
	l := NewLoader(plainErrFetcher{}, nil)
	_, err := l.Load(t.Context(), "docs/a.md")
	require.Error(t, err)
	assert.True(t, IsRetrievalError(err))
}
