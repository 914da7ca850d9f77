// Package route maps navigation tokens to route descriptors.
//
// Resolution is pure and total: every token yields a descriptor and nothing
// here performs I/O.
package route

import (
	"net/url"
	"strings"

	"git.home.luguber.info/inful/docnav/internal/config"
	"git.home.luguber.info/inful/docnav/internal/docpath"
)

// Kind classifies a resolved route.
type Kind string

const (
	KindHome           Kind = "home"
	KindStaticPage     Kind = "static_page"
	KindDocumentDetail Kind = "document_detail"
	KindGallery        Kind = "gallery"
	KindNotFound       Kind = "not_found"
)

const homeSlug = "home"

// Descriptor is the resolved form of a navigation token.
type Descriptor struct {
	Kind Kind
	// CanonicalPath is the store path of the target content. Empty for Home
	// and NotFound.
	CanonicalPath string
	DisplayTitle  string
	Eyebrow       string
	Subtitle      string
	// Token is the token as received.
	Token string
	// Key names the navigation section to highlight.
	Key string
	// Fragment is the in-page anchor carried after a second '#', as in
	// "#/docs/guide#setup".
	Fragment string
}

// Loads reports whether the route renders a document retrieved from the store.
func (d Descriptor) Loads() bool {
	return d.Kind == KindStaticPage || d.Kind == KindDocumentDetail
}

// Resolver resolves tokens against a fixed route table.
type Resolver struct {
	site    config.SiteConfig
	routes  config.RoutesConfig
	content config.ContentConfig
	paths   *docpath.Resolver
	static  map[string]config.StaticRoute
}

// New builds a Resolver from configuration.
func New(cfg *config.Config) *Resolver {
	static := make(map[string]config.StaticRoute, len(cfg.Routes.Static))
	for _, s := range cfg.Routes.Static {
		static[s.Slug] = s
	}
	return &Resolver{
		site:    cfg.Site,
		routes:  cfg.Routes,
		content: cfg.Content,
		paths:   docpath.New(cfg.Content.Layout()),
		static:  static,
	}
}

// Home returns the Home descriptor.
func (r *Resolver) Home() Descriptor {
	return Descriptor{
		Kind:         KindHome,
		DisplayTitle: r.site.HomeTitle,
		Eyebrow:      r.site.HomeEyebrow,
		Subtitle:     r.site.HomeSubtitle,
		Token:        homeSlug,
		Key:          homeSlug,
	}
}

// Resolve maps token to a descriptor. It never fails: unknown tokens follow
// the configured unmatched policy.
func (r *Resolver) Resolve(token string) Descriptor {
	key := strings.TrimPrefix(token, "#")
	key = strings.TrimPrefix(key, "/")
	key, fragment, _ := strings.Cut(key, "#")

	d := r.resolve(key)
	d.Token = token
	if d.Kind != KindNotFound {
		d.Fragment = fragment
	}
	return d
}

func (r *Resolver) resolve(key string) Descriptor {
	switch {
	case key == "" || key == homeSlug:
		return r.Home()
	case key == r.routes.Docs.Slug:
		return r.docsIndex()
	case key == r.routes.Gallery.Slug:
		g := r.routes.Gallery
		return Descriptor{
			Kind:          KindGallery,
			CanonicalPath: g.Manifest,
			DisplayTitle:  g.Title,
			Eyebrow:       g.Eyebrow,
			Subtitle:      g.Subtitle,
			Key:           g.Slug,
		}
	}

	if s, ok := r.static[key]; ok {
		return Descriptor{
			Kind:          KindStaticPage,
			CanonicalPath: s.Path,
			DisplayTitle:  s.Title,
			Eyebrow:       s.Eyebrow,
			Subtitle:      s.Subtitle,
			Key:           s.Slug,
		}
	}

	if rest, ok := strings.CutPrefix(key, r.routes.Docs.Slug+"/"); ok {
		return r.document(rest)
	}
	return r.unmatched()
}

func (r *Resolver) docsIndex() Descriptor {
	d := r.routes.Docs
	return Descriptor{
		Kind:          KindDocumentDetail,
		CanonicalPath: r.content.IndexPath(),
		DisplayTitle:  d.Title,
		Eyebrow:       d.Eyebrow,
		Subtitle:      d.Subtitle,
		Key:           d.Slug,
	}
}

func (r *Resolver) document(rest string) Descriptor {
	slug := strings.TrimSuffix(rest, r.content.Extension)
	if decoded, err := url.PathUnescape(slug); err == nil {
		slug = decoded
	}
	if alias, ok := r.routes.Aliases[slug]; ok {
		slug = alias
	}
	if slug == "" {
		return r.docsIndex()
	}

	d := r.routes.Docs
	return Descriptor{
		Kind:          KindDocumentDetail,
		CanonicalPath: r.content.DocsDir + "/" + slug + r.content.Extension,
		DisplayTitle:  docpath.Humanize(slug),
		Eyebrow:       d.Eyebrow,
		Subtitle:      d.DetailSubtitle,
		Key:           d.Slug,
	}
}

func (r *Resolver) unmatched() Descriptor {
	if r.routes.Unmatched == config.UnmatchedHome {
		return r.Home()
	}
	return Descriptor{
		Kind:         KindNotFound,
		DisplayTitle: "Not Found",
		Eyebrow:      "404",
		Subtitle:     "The page you are looking for does not exist.",
	}
}

// DocumentToken returns the token that navigates to the document at canonical.
func (r *Resolver) DocumentToken(canonical string) string {
	if canonical == r.content.IndexPath() {
		return r.routes.Docs.Slug
	}
	return r.routes.Docs.Slug + "/" + r.paths.Slug(canonical)
}
