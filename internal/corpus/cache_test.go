package corpus

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_SingleFlight(t *testing.T) {
	fsys := fstest.MapFS{
		"docs/index.md": {Data: []byte("[[a]] [[b]]")},
		"docs/a.md":     {Data: []byte("a")},
		"docs/b.md":     {Data: []byte("b")},
	}
	f := newCountingFetcher(fsys)
	b := newTestBuilder(f)

	release := make(chan struct{})
	var builds atomic.Int32
	cache := NewCache(func(ctx context.Context) (*Corpus, error) {
		builds.Add(1)
		<-release
		return b.Build(ctx)
	})

	const callers = 8
	results := make([]*Corpus, callers)
	var wg sync.WaitGroup
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c, err := cache.Ensure(t.Context())
			assert.NoError(t, err)
			results[i] = c
		}()
	}
	// Let the callers pile up on the in-flight build before it proceeds.
	require.Eventually(t, func() bool { return builds.Load() == 1 }, timeout, tick)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), builds.Load())
	assert.Equal(t, 3, f.total())
	for _, c := range results {
		assert.Same(t, results[0], c)
	}

	again, err := cache.Ensure(t.Context())
	require.NoError(t, err)
	assert.Same(t, results[0], again)
	assert.Equal(t, 3, f.total())
}

func TestCache_FailedBuildIsRetried(t *testing.T) {
	var calls atomic.Int32
	want := &Corpus{}
	cache := NewCache(func(context.Context) (*Corpus, error) {
		if calls.Add(1) == 1 {
			return nil, errors.New("store down")
		}
		return want, nil
	})

	_, err := cache.Ensure(t.Context())
	require.Error(t, err)
	_, ok := cache.Current()
	assert.False(t, ok)

	got, err := cache.Ensure(t.Context())
	require.NoError(t, err)
	assert.Same(t, want, got)
}

func TestCache_Invalidate(t *testing.T) {
	var calls atomic.Int32
	cache := NewCache(func(context.Context) (*Corpus, error) {
		calls.Add(1)
		return &Corpus{}, nil
	})

	first, err := cache.Ensure(t.Context())
	require.NoError(t, err)
	cache.Invalidate()
	_, ok := cache.Current()
	assert.False(t, ok)

	second, err := cache.Ensure(t.Context())
	require.NoError(t, err)
	assert.NotSame(t, first, second)
	assert.Equal(t, int32(2), calls.Load())
}

func TestCache_InvalidateDiscardsInFlightResult(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{}, 1)
	cache := NewCache(func(context.Context) (*Corpus, error) {
		started <- struct{}{}
		<-release
		return &Corpus{}, nil
	})

	done := make(chan *Corpus)
	go func() {
		c, _ := cache.Ensure(context.Background())
		done <- c
	}()
	<-started
	cache.Invalidate()
	close(release)

	assert.NotNil(t, <-done)
	_, ok := cache.Current()
	assert.False(t, ok)
}

func TestCache_CallerCancellationDoesNotCancelBuild(t *testing.T) {
	release := make(chan struct{})
	var buildErr atomic.Value
	cache := NewCache(func(ctx context.Context) (*Corpus, error) {
		<-release
		if err := ctx.Err(); err != nil {
			buildErr.Store(err)
		}
		return &Corpus{}, nil
	})

	ctx, cancel := context.WithCancel(t.Context())
	errCh := make(chan error)
	go func() {
		_, err := cache.Ensure(ctx)
		errCh <- err
	}()
	cancel()
	require.ErrorIs(t, <-errCh, context.Canceled)

	close(release)
	require.Eventually(t, func() bool {
		_, ok := cache.Current()
		return ok
	}, timeout, tick)
	assert.Nil(t, buildErr.Load())
}

func TestCache_LateCallerReusesStoredCorpus(t *testing.T) {
	var builds atomic.Int32
	cache := NewCache(func(context.Context) (*Corpus, error) {
		builds.Add(1)
		return &Corpus{}, nil
	})

	first, err := cache.Ensure(t.Context())
	require.NoError(t, err)

	// A caller that read an empty cache before the first build stored its
	// result enters the group afterwards with the same generation.
	got, err := cache.load(t.Context(), 0)
	require.NoError(t, err)
	assert.Same(t, first, got)
	assert.Equal(t, int32(1), builds.Load())
}
