package corpus

import (
	"context"
	"sync"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docnav/internal/content"
	"git.home.luguber.info/inful/docnav/internal/docpath"
	ferrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
)

type countingFetcher struct {
	mu    sync.Mutex
	inner content.Fetcher
	calls map[string]int
}

func newCountingFetcher(fsys fstest.MapFS) *countingFetcher {
	return &countingFetcher{inner: content.NewFSFetcher(fsys, 0), calls: map[string]int{}}
}

func (c *countingFetcher) Fetch(ctx context.Context, p string) ([]byte, error) {
	c.mu.Lock()
	c.calls[p]++
	c.mu.Unlock()
	return c.inner.Fetch(ctx, p)
}

func (c *countingFetcher) total() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, v := range c.calls {
		n += v
	}
	return n
}

func newTestBuilder(f content.Fetcher) *Builder {
	r := docpath.Default()
	return NewBuilder(content.NewLoader(f, r), r, Options{Locale: "en"})
}

func paths(docs []*Document) []string {
	out := make([]string, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.CanonicalPath)
	}
	return out
}

func TestBuild_SeriesOrder(t *testing.T) {
	fsys := fstest.MapFS{
		"docs/index.md": {Data: []byte("# Docs\n\n- [A](docs/a.md)\n- [[B]]\n")},
		"docs/a.md":     {Data: []byte("---\ntitle: A\nseries: S\norder: 1\n---\nfirst\n")},
		"docs/b.md":     {Data: []byte("---\ntitle: B\nseries: S\norder: 2\n---\nsecond\n")},
	}
	c, err := newTestBuilder(newCountingFetcher(fsys)).Build(t.Context())
	require.NoError(t, err)

	assert.Equal(t, []string{"docs/a.md", "docs/b.md"}, paths(c.Documents))
	assert.Equal(t, []string{"docs/a.md", "docs/b.md"}, paths(c.Series["S"]))
	_, hasIndex := c.Lookup("docs/index.md")
	assert.False(t, hasIndex)
}

func TestBuild_SeriesTiesUseTitleThenPath(t *testing.T) {
	fsys := fstest.MapFS{
		"docs/index.md": {Data: []byte("[[zeta]] [[alpha]] [[beta]] [[gamma]]")},
		"docs/zeta.md":  {Data: []byte("---\nseries: S\norder: 1\ntitle: Zeta\n---\n")},
		"docs/alpha.md": {Data: []byte("---\nseries: S\norder: 1\ntitle: alpha\n---\n")},
		"docs/beta.md":  {Data: []byte("---\nseries: S\norder: 0\ntitle: Beta\n---\n")},
		"docs/gamma.md": {Data: []byte("---\nseries: S\norder: 1\ntitle: Zeta\n---\n")},
	}
	c, err := newTestBuilder(newCountingFetcher(fsys)).Build(t.Context())
	require.NoError(t, err)

	assert.Equal(t, []string{"docs/beta.md", "docs/alpha.md", "docs/gamma.md", "docs/zeta.md"}, paths(c.Series["S"]))
}

func TestBuild_Backlinks(t *testing.T) {
	fsys := fstest.MapFS{
		"docs/index.md": {Data: []byte("[[a]] [[b]] [[c]]")},
		"docs/a.md":     {Data: []byte("See [[b]] and [missing](missing.md).")},
		"docs/b.md":     {Data: []byte("Back to [A](a.md) and [[b]] itself.")},
		"docs/c.md":     {Data: []byte("Links to [[a]] and [[b]].\n\n```\n[[c]]\n```\n")},
	}
	c, err := newTestBuilder(newCountingFetcher(fsys)).Build(t.Context())
	require.NoError(t, err)

	assert.Equal(t, []string{"docs/a.md", "docs/c.md"}, paths(c.BacklinksFor("docs/b.md")))
	assert.Equal(t, []string{"docs/b.md", "docs/c.md"}, paths(c.BacklinksFor("docs/a.md")))
	assert.Empty(t, c.BacklinksFor("docs/c.md"))

	// Targets need not be records.
	assert.Equal(t, []string{"docs/a.md"}, paths(c.Backlinks["docs/missing.md"]))
	_, ok := c.Lookup("docs/missing.md")
	assert.False(t, ok)

	// Self references are indexed but filtered by BacklinksFor.
	assert.Contains(t, paths(c.Backlinks["docs/b.md"]), "docs/b.md")
}

func TestBuild_StubsForFailedDocuments(t *testing.T) {
	fsys := fstest.MapFS{
		"docs/index.md":   {Data: []byte("[Getting Started](docs/gone.md) [[present]]")},
		"docs/present.md": {Data: []byte("---\ntags: go\n---\n# Present\nbody")},
	}
	c, err := newTestBuilder(newCountingFetcher(fsys)).Build(t.Context())
	require.NoError(t, err)
	require.Len(t, c.Documents, 2)

	gone := c.Documents[0]
	assert.True(t, gone.Stub)
	assert.Equal(t, "Getting Started", gone.Title)
	assert.Empty(t, gone.Tags)
	assert.Empty(t, gone.Body)
	assert.Equal(t, 1, gone.ReadingMinutes)
	assert.Equal(t, 1, c.Stubs())

	present := c.Documents[1]
	assert.False(t, present.Stub)
	assert.Equal(t, "Present", present.Title)
	assert.Equal(t, []string{"docs/present.md"}, paths(c.Tags["go"]))
}

func TestBuild_MirroredLayout(t *testing.T) {
	fsys := fstest.MapFS{
		"docs/docs/index.md": {Data: []byte("[[guide]]")},
		"docs/docs/guide.md": {Data: []byte("# Guide\n")},
	}
	c, err := newTestBuilder(newCountingFetcher(fsys)).Build(t.Context())
	require.NoError(t, err)

	doc, ok := c.Lookup("docs/guide.md")
	require.True(t, ok)
	assert.Equal(t, "docs/docs/guide.md", doc.ResolvedPath)
	assert.Equal(t, "Guide", doc.Title)
}

func TestBuild_IndexFailure(t *testing.T) {
	_, err := newTestBuilder(newCountingFetcher(fstest.MapFS{})).Build(t.Context())
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryCorpus))
	assert.True(t, content.IsRetrievalError(err))
}

func TestBuild_CanceledContextFails(t *testing.T) {
	fsys := fstest.MapFS{
		"docs/index.md": {Data: []byte("[[a]]")},
		"docs/a.md":     {Data: []byte("a")},
	}
	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	_, err := newTestBuilder(newCountingFetcher(fsys)).Build(ctx)
	require.Error(t, err)
}

func TestNeighboursAndByDate(t *testing.T) {
	fsys := fstest.MapFS{
		"docs/index.md": {Data: []byte("[[one]] [[two]] [[three]] [[four]]")},
		"docs/one.md":   {Data: []byte("---\ndate: 2024-01-02\n---\n")},
		"docs/two.md":   {Data: []byte("---\nseries: S\norder: 2\ndate: 2024-03-01\n---\n")},
		"docs/three.md": {Data: []byte("plain")},
		"docs/four.md":  {Data: []byte("---\nseries: S\norder: 1\n---\n")},
	}
	c, err := newTestBuilder(newCountingFetcher(fsys)).Build(t.Context())
	require.NoError(t, err)

	prev, next := c.Neighbours("docs/three.md")
	assert.Equal(t, "docs/two.md", prev.CanonicalPath)
	assert.Equal(t, "docs/four.md", next.CanonicalPath)

	prev, next = c.Neighbours("docs/two.md")
	assert.Equal(t, "docs/four.md", prev.CanonicalPath)
	assert.Nil(t, next)

	sc, ok := c.SeriesOf("docs/two.md")
	require.True(t, ok)
	assert.Equal(t, 1, sc.Position)

	assert.Equal(t, []string{"docs/two.md", "docs/one.md"}, paths(c.ByDate()))
}

func TestChanged(t *testing.T) {
	fsys := fstest.MapFS{
		"docs/index.md": {Data: []byte("[[a]] [[b]]")},
		"docs/a.md":     {Data: []byte("alpha")},
		"docs/b.md":     {Data: []byte("beta")},
	}
	b := newTestBuilder(newCountingFetcher(fsys))
	first, err := b.Build(t.Context())
	require.NoError(t, err)

	fsys["docs/b.md"] = &fstest.MapFile{Data: []byte("beta, revised")}
	second, err := b.Build(t.Context())
	require.NoError(t, err)

	assert.Equal(t, []string{"docs/b.md"}, second.Changed(first))
	assert.Equal(t, []string{"docs/a.md", "docs/b.md"}, second.Changed(nil))
}
