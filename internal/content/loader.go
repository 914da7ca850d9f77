// Package content retrieves documents from the read-only document store.
//
// Nothing here caches: every call is a round trip to the store. The corpus
// package owns caching.
package content

import (
	"context"
	"encoding/json"
	"time"

	"git.home.luguber.info/inful/docnav/internal/docpath"
	"git.home.luguber.info/inful/docnav/internal/logfields"
	"git.home.luguber.info/inful/docnav/internal/metrics"
	"git.home.luguber.info/inful/docnav/internal/observability"
)

// Result is a successful retrieval through LoadWithFallback.
type Result struct {
	Raw string
	// ResolvedPath is the path that answered; it differs from the requested
	// canonical path when the mirrored layout was used.
	ResolvedPath string
}

// Fallback reports whether the mirrored layout answered instead of canonical.
func (r Result) Fallback(canonical string) bool {
	return r.ResolvedPath != canonical
}

// Loader retrieves raw documents and JSON payloads through a Fetcher.
type Loader struct {
	fetcher  Fetcher
	resolver *docpath.Resolver
	recorder metrics.Recorder
}

// Option configures a Loader.
type Option func(*Loader)

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(l *Loader) {
		if r != nil {
			l.recorder = r
		}
	}
}

// NewLoader creates a Loader. A nil resolver uses the default layout.
func NewLoader(f Fetcher, r *docpath.Resolver, opts ...Option) *Loader {
	if r == nil {
		r = docpath.Default()
	}
	l := &Loader{fetcher: f, resolver: r, recorder: metrics.NoopRecorder{}}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load retrieves the raw text at path.
func (l *Loader) Load(ctx context.Context, path string) (string, error) {
	data, err := l.fetch(ctx, path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// LoadWithFallback retrieves canonical verbatim and, on failure, exactly one
// mirrored alternate. When there is no alternate or it fails too, the first
// failure is returned. At most two round trips are made.
func (l *Loader) LoadWithFallback(ctx context.Context, canonical string) (Result, error) {
	data, err := l.fetch(ctx, canonical)
	if err == nil {
		return Result{Raw: string(data), ResolvedPath: canonical}, nil
	}

	alt, ok := l.resolver.MirrorAlternate(canonical)
	if !ok || ctx.Err() != nil {
		return Result{}, err
	}
	altData, altErr := l.fetch(ctx, alt)
	if altErr != nil {
		observability.DebugContext(ctx, "Mirrored layout also failed", logfields.Path(canonical), logfields.ResolvedPath(alt), logfields.Error(altErr))
		return Result{}, err
	}

	l.recorder.IncFallback()
	observability.DebugContext(ctx, "Loaded document from mirrored layout", logfields.Path(canonical), logfields.ResolvedPath(alt))
	return Result{Raw: string(altData), ResolvedPath: alt}, nil
}

// LoadJSON retrieves path and decodes it into v. A bad status is a retrieval
// error; a malformed payload is a decode error.
func (l *Loader) LoadJSON(ctx context.Context, path string, v any) error {
	data, err := l.fetch(ctx, path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return newDecodeError(path, err)
	}
	return nil
}

func (l *Loader) fetch(ctx context.Context, path string) ([]byte, error) {
	start := time.Now()
	data, err := l.fetcher.Fetch(ctx, path)
	elapsed := time.Since(start)
	l.recorder.ObserveFetch(elapsed, err == nil)

	if err != nil {
		if !IsRetrievalError(err) {
			err = newRetrievalError(path, 0, err)
		}
		status, _ := StatusOf(err)
		observability.DebugContext(ctx, "Fetch failed", logfields.Path(path), logfields.Status(status), logfields.DurationMS(float64(elapsed.Microseconds())/1000), logfields.Error(err))
		return nil, err
	}
	observability.DebugContext(ctx, "Fetched document", logfields.Path(path), logfields.DurationMS(float64(elapsed.Microseconds())/1000))
	return data, nil
}
