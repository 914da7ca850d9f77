package corpus

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"

	"git.home.luguber.info/inful/docnav/internal/content"
	"git.home.luguber.info/inful/docnav/internal/docpath"
	ferrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/logfields"
	"git.home.luguber.info/inful/docnav/internal/markdown"
	"git.home.luguber.info/inful/docnav/internal/metrics"
	"git.home.luguber.info/inful/docnav/internal/observability"
	"git.home.luguber.info/inful/docnav/internal/util/sets"
)

const (
	defaultConcurrency   = 6
	defaultSummaryLength = 180
)

// Options configures a Builder. Zero values select defaults.
type Options struct {
	// IndexPath is the canonical path of the documents index.
	IndexPath     string
	Concurrency   int
	Locale        string
	SummaryLength int
	Recorder      metrics.Recorder
}

// Builder realizes a Corpus from the documents index.
type Builder struct {
	loader   *content.Loader
	resolver *docpath.Resolver
	deriver  deriver
	opts     Options
	locale   language.Tag
}

// NewBuilder creates a Builder retrieving through loader.
func NewBuilder(loader *content.Loader, r *docpath.Resolver, opts Options) *Builder {
	if r == nil {
		r = docpath.Default()
	}
	if opts.IndexPath == "" {
		opts.IndexPath = r.Canonical("index")
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = defaultConcurrency
	}
	if opts.SummaryLength <= 0 {
		opts.SummaryLength = defaultSummaryLength
	}
	if opts.Recorder == nil {
		opts.Recorder = metrics.NoopRecorder{}
	}
	locale, err := language.Parse(opts.Locale)
	if err != nil {
		locale = language.English
	}
	return &Builder{
		loader:   loader,
		resolver: r,
		deriver:  deriver{normalizer: markdown.NewNormalizer(r), summaryLength: opts.SummaryLength},
		opts:     opts,
		locale:   locale,
	}
}

// Build retrieves the index, every document it links to, and derives the
// graph. Documents that cannot be retrieved become stub records. Only a failed
// index retrieval or cancellation of ctx fails the build.
func (b *Builder) Build(ctx context.Context) (*Corpus, error) {
	start := time.Now()
	ctx = observability.WithStage(ctx, "corpus")

	c, err := b.build(ctx)
	elapsed := time.Since(start)
	if err != nil {
		b.opts.Recorder.ObserveCorpusBuild(elapsed, 0, false)
		observability.WarnContext(ctx, "Corpus build failed", logfields.Path(b.opts.IndexPath), logfields.Error(err))
		return nil, err
	}

	stubs := c.Stubs()
	b.opts.Recorder.ObserveCorpusBuild(elapsed, len(c.Documents), true)
	b.opts.Recorder.IncStubRecords(stubs)
	observability.InfoContext(ctx, "Corpus built",
		logfields.Documents(len(c.Documents)),
		logfields.Stubs(stubs),
		logfields.DurationMS(float64(elapsed.Microseconds())/1000))
	return c, nil
}

func (b *Builder) build(ctx context.Context) (*Corpus, error) {
	index, err := b.loader.LoadWithFallback(ctx, b.opts.IndexPath)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryCorpus, "failed to load documents index").
			WithContext("path", b.opts.IndexPath).
			Retryable().
			Build()
	}

	normalized := b.deriver.normalizer.Normalize(index.Raw, b.opts.IndexPath)
	links := b.entries(normalized)

	docs := make([]*Document, len(links))
	g := new(errgroup.Group)
	g.SetLimit(b.opts.Concurrency)
	for i, link := range links {
		g.Go(func() error {
			docs[i] = b.fetchRecord(ctx, link)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("corpus build interrupted: %w", err)
	}

	c := &Corpus{
		Documents: docs,
		ByPath:    make(map[string]*Document, len(docs)),
		IndexPath: b.opts.IndexPath,
		BuiltAt:   time.Now(),
	}
	for _, d := range docs {
		c.ByPath[d.CanonicalPath] = d
	}
	c.Series = deriveSeries(docs, b.locale)
	c.Tags = deriveTags(docs)
	c.Backlinks = deriveBacklinks(docs, b.resolver)
	return c, nil
}

// entries scans the index for document links. The index itself is never an
// entry, in either layout.
func (b *Builder) entries(normalized string) []markdown.DocLink {
	excluded := sets.New(b.opts.IndexPath)
	if alt, ok := b.resolver.MirrorAlternate(b.opts.IndexPath); ok {
		excluded.Add(alt)
	}

	var out []markdown.DocLink
	for _, link := range markdown.ScanDocumentLinks(normalized, b.opts.IndexPath, b.resolver) {
		if !excluded.Has(link.Target) {
			out = append(out, link)
		}
	}
	return out
}

func (b *Builder) fetchRecord(ctx context.Context, link markdown.DocLink) *Document {
	res, err := b.loader.LoadWithFallback(ctx, link.Target)
	if err != nil {
		observability.DebugContext(ctx, "Using stub record", logfields.Path(link.Target), logfields.Error(err))
		return stub(link.Target, link.Text)
	}
	return b.deriver.record(link.Target, res.ResolvedPath, res.Raw, link.Text)
}
