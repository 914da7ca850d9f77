package navigation

import (
	"context"
	"encoding/json"

	"git.home.luguber.info/inful/docnav/internal/corpus"
	"git.home.luguber.info/inful/docnav/internal/frontmatter"
	"git.home.luguber.info/inful/docnav/internal/route"
)

// Presenter receives render instructions. Exactly one method is called per
// navigation that is still active when its content is ready.
type Presenter interface {
	RenderHome(ctx context.Context, r route.Descriptor) error
	RenderPage(ctx context.Context, p Page) error
	RenderGallery(ctx context.Context, g Gallery) error
	RenderNotFound(ctx context.Context, r route.Descriptor) error
}

// Page is the payload for static pages and document routes.
type Page struct {
	Route    route.Descriptor
	Title    string
	Eyebrow  string
	Subtitle string
	// HeadTitle is the window title, prefixed with the site name.
	HeadTitle string
	// Body is the normalized markup with metadata and title line removed.
	Body         string
	Tags         []string
	Metadata     frontmatter.Metadata
	ResolvedPath string

	// Graph context, present only for document routes when the corpus is
	// available.
	Series    *corpus.SeriesContext
	Backlinks []*corpus.Document
	PrevNext  PrevNext
	// Document is the corpus record for the page, if any.
	Document *corpus.Document
}

// PrevNext holds the neighbouring records. Either may be nil.
type PrevNext struct {
	Prev *corpus.Document
	Next *corpus.Document
}

// Gallery is the payload for the gallery route. The manifest is passed through
// undecoded beyond validation.
type Gallery struct {
	Route    route.Descriptor
	Manifest json.RawMessage
}

// Outcome describes how a navigation ended.
type Outcome string

const (
	OutcomeRendered   Outcome = "rendered"
	OutcomeNotFound   Outcome = "not_found"
	OutcomeRedirected Outcome = "redirected"
	// OutcomeStale means a newer navigation started before this one finished;
	// nothing was rendered.
	OutcomeStale    Outcome = "stale"
	OutcomeCanceled Outcome = "canceled"
	OutcomeFailed   Outcome = "failed"
)
