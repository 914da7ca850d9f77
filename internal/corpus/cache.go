package corpus

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	"git.home.luguber.info/inful/docnav/internal/observability"
)

// BuildFunc realizes a corpus. *Builder.Build satisfies it.
type BuildFunc func(ctx context.Context) (*Corpus, error)

// Cache holds at most one corpus and guarantees at most one build in flight.
type Cache struct {
	build BuildFunc
	group singleflight.Group

	mu         sync.Mutex
	current    *Corpus
	generation uint64
}

// NewCache creates an empty cache around build.
func NewCache(build BuildFunc) *Cache {
	return &Cache{build: build}
}

// Ensure returns the cached corpus, building it if absent. Concurrent callers
// share one build. The build runs detached from any single caller's
// cancellation; a caller whose ctx ends stops waiting and gets ctx's error.
// A failed build is not retained, so the next call retries.
func (c *Cache) Ensure(ctx context.Context) (*Corpus, error) {
	c.mu.Lock()
	if c.current != nil {
		cur := c.current
		c.mu.Unlock()
		return cur, nil
	}
	gen := c.generation
	c.mu.Unlock()

	buildCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan("corpus", func() (any, error) {
		return c.load(buildCtx, gen)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Corpus), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// load runs inside the single-flight group. A caller that saw no corpus may
// reach the group only after an earlier build stored its result, so the cache
// is checked again before building.
func (c *Cache) load(ctx context.Context, gen uint64) (*Corpus, error) {
	c.mu.Lock()
	if c.current != nil {
		cur := c.current
		c.mu.Unlock()
		return cur, nil
	}
	c.mu.Unlock()

	built, err := c.build(ctx)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generation == gen {
		c.current = built
	} else {
		observability.DebugContext(ctx, "Discarding corpus built before invalidation")
	}
	return built, nil
}

// Current returns the cached corpus without building.
func (c *Cache) Current() (*Corpus, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current, c.current != nil
}

// Invalidate drops the cached corpus. A build already in flight still answers
// its waiters but its result is not retained.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.current = nil
	c.generation++
	c.mu.Unlock()
	c.group.Forget("corpus")
}
