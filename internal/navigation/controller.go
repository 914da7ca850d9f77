// Package navigation drives a navigation from token to rendered payload.
package navigation

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/docnav/internal/content"
	"git.home.luguber.info/inful/docnav/internal/corpus"
	"git.home.luguber.info/inful/docnav/internal/frontmatter"
	"git.home.luguber.info/inful/docnav/internal/logfields"
	"git.home.luguber.info/inful/docnav/internal/markdown"
	"git.home.luguber.info/inful/docnav/internal/metrics"
	"git.home.luguber.info/inful/docnav/internal/observability"
	"git.home.luguber.info/inful/docnav/internal/route"
	"git.home.luguber.info/inful/docnav/internal/search"
)

// Controller orchestrates navigations. It is safe for concurrent use; only the
// most recently started navigation may render.
type Controller struct {
	routes     *route.Resolver
	loader     *content.Loader
	normalizer *markdown.Normalizer
	cache      *corpus.Cache
	recorder   metrics.Recorder
	siteName   string

	mu     sync.Mutex
	active string
	index  *search.Index
}

// Option configures a Controller.
type Option func(*Controller)

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(c *Controller) {
		if r != nil {
			c.recorder = r
		}
	}
}

// WithSiteName sets the prefix of page head titles.
func WithSiteName(name string) Option {
	return func(c *Controller) { c.siteName = name }
}

// NewController wires a controller. A nil normalizer uses the default layout.
func NewController(routes *route.Resolver, loader *content.Loader, normalizer *markdown.Normalizer, cache *corpus.Cache, opts ...Option) *Controller {
	if normalizer == nil {
		normalizer = markdown.NewNormalizer(nil)
	}
	c := &Controller{
		routes:     routes,
		loader:     loader,
		normalizer: normalizer,
		cache:      cache,
		recorder:   metrics.NoopRecorder{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Active returns the ID of the most recently started navigation.
func (c *Controller) Active() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

func (c *Controller) begin() string {
	id := uuid.NewString()
	c.mu.Lock()
	c.active = id
	c.mu.Unlock()
	return id
}

func (c *Controller) isActive(id string) bool {
	return c.Active() == id
}

// Navigate resolves token and calls exactly one Presenter method with the
// result, unless a newer navigation has started by then. Retrieval failures of
// the target redirect to Home. The returned error is the presenter's error or
// ctx's error; retrieval failures are never returned.
func (c *Controller) Navigate(ctx context.Context, token string, p Presenter) (Outcome, error) {
	if p == nil {
		return OutcomeFailed, errNoPresenter
	}
	id := c.begin()
	ctx = observability.WithNavigationID(ctx, id)
	ctx = observability.WithToken(ctx, token)

	d := c.routes.Resolve(token)
	observability.DebugContext(ctx, "Navigation started", logfields.RouteKind(string(d.Kind)), logfields.Path(d.CanonicalPath))

	outcome, err := c.navigate(ctx, id, d, p)
	c.recorder.IncNavigation(string(d.Kind), resultLabel(outcome))
	observability.InfoContext(ctx, "Navigation finished",
		logfields.RouteKind(string(d.Kind)),
		logfields.Outcome(string(outcome)),
		logfields.Error(err))
	return outcome, err
}

func (c *Controller) navigate(ctx context.Context, id string, d route.Descriptor, p Presenter) (Outcome, error) {
	switch d.Kind {
	case route.KindHome:
		return c.present(id, OutcomeRendered, func() error { return p.RenderHome(ctx, d) })
	case route.KindNotFound:
		return c.present(id, OutcomeNotFound, func() error { return p.RenderNotFound(ctx, d) })
	case route.KindGallery:
		var manifest json.RawMessage
		if err := c.loader.LoadJSON(ctx, d.CanonicalPath, &manifest); err != nil {
			return c.redirect(ctx, id, err, p)
		}
		g := Gallery{Route: d, Manifest: manifest}
		return c.present(id, OutcomeRendered, func() error { return p.RenderGallery(ctx, g) })
	default:
		page, err := c.loadPage(ctx, d)
		if err != nil {
			return c.redirect(ctx, id, err, p)
		}
		if !c.isActive(id) {
			return OutcomeStale, nil
		}
		if d.Kind == route.KindDocumentDetail {
			c.attachGraph(ctx, &page)
		}
		return c.present(id, OutcomeRendered, func() error { return p.RenderPage(ctx, page) })
	}
}

// present runs render only while id is still the active navigation.
func (c *Controller) present(id string, outcome Outcome, render func() error) (Outcome, error) {
	if !c.isActive(id) {
		return OutcomeStale, nil
	}
	if err := render(); err != nil {
		return OutcomeFailed, err
	}
	return outcome, nil
}

func (c *Controller) redirect(ctx context.Context, id string, cause error, p Presenter) (Outcome, error) {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return OutcomeCanceled, ctxErr
	}
	observability.WarnContext(ctx, "Target unavailable, redirecting home", logfields.Error(cause))
	home := c.routes.Home()
	return c.present(id, OutcomeRedirected, func() error { return p.RenderHome(ctx, home) })
}

func (c *Controller) loadPage(ctx context.Context, d route.Descriptor) (Page, error) {
	res, err := c.loader.LoadWithFallback(ctx, d.CanonicalPath)
	if err != nil {
		return Page{}, err
	}

	normalized := c.normalizer.Normalize(res.Raw, d.CanonicalPath)
	meta, body := frontmatter.Parse(normalized)
	heading, rest := markdown.SplitTitle(body)

	title := firstNonEmpty(meta.String("title"), heading, d.DisplayTitle)
	page := Page{
		Route:        d,
		Title:        title,
		Eyebrow:      d.Eyebrow,
		Subtitle:     d.Subtitle,
		HeadTitle:    title,
		Body:         rest,
		Tags:         meta.Strings("tags", "tag"),
		Metadata:     meta,
		ResolvedPath: res.ResolvedPath,
	}
	if c.siteName != "" {
		page.HeadTitle = c.siteName + " | " + title
	}
	return page, nil
}

// attachGraph adds series, backlinks and neighbours. A corpus failure leaves
// the page without graph context.
func (c *Controller) attachGraph(ctx context.Context, page *Page) {
	cur, err := c.cache.Ensure(ctx)
	if err != nil {
		observability.WarnContext(ctx, "Corpus unavailable, rendering without graph context", logfields.Error(err))
		return
	}

	path := page.Route.CanonicalPath
	if doc, ok := cur.Lookup(path); ok {
		page.Document = doc
	}
	if sc, ok := cur.SeriesOf(path); ok {
		page.Series = &sc
	}
	page.Backlinks = cur.BacklinksFor(path)
	prev, next := cur.Neighbours(path)
	page.PrevNext = PrevNext{Prev: prev, Next: next}
}

// Search builds the corpus if needed and queries it. The search index is
// rebuilt whenever the cache hands back a different corpus.
func (c *Controller) Search(ctx context.Context, text string) ([]*corpus.Document, error) {
	cur, err := c.cache.Ensure(ctx)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if c.index == nil || c.index.Corpus() != cur {
		c.index = search.New(cur)
	}
	idx := c.index
	c.mu.Unlock()

	observability.DebugContext(ctx, "Searching corpus", logfields.Query(text), logfields.Documents(len(cur.Documents)))
	return idx.Query(text), nil
}

// Corpus returns the current corpus, building it if needed.
func (c *Controller) Corpus(ctx context.Context) (*corpus.Corpus, error) {
	return c.cache.Ensure(ctx)
}

func resultLabel(o Outcome) metrics.ResultLabel {
	switch o {
	case OutcomeStale:
		return metrics.ResultStale
	case OutcomeCanceled:
		return metrics.ResultCanceled
	case OutcomeFailed, OutcomeRedirected:
		return metrics.ResultFailed
	default:
		return metrics.ResultSuccess
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

var errNoPresenter = errors.New("navigation: nil presenter")
