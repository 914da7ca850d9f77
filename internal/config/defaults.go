package config

import "time"

const (
	defaultTimeout         = 10 * time.Second
	defaultMaxBytes        = 4 << 20
	defaultConcurrency     = 6
	defaultSummaryLength   = 180
	defaultDocsDir         = "docs"
	defaultDocsIndex       = "index.md"
	defaultExtension       = ".md"
	defaultLocale          = "en"
	defaultGalleryManifest = "images/manifest.json"
)

func applyDefaults(cfg *Config) {
	applySiteDefaults(&cfg.Site)
	applyStoreDefaults(&cfg.Store)
	applyContentDefaults(&cfg.Content)
	applyRouteDefaults(&cfg.Routes)

	if cfg.Corpus.Concurrency <= 0 {
		cfg.Corpus.Concurrency = defaultConcurrency
	}
	if cfg.Corpus.RefreshInterval < 0 {
		cfg.Corpus.RefreshInterval = 0
	}

	cfg.Logging.Level = NormalizeLogLevel(string(cfg.Logging.Level))
	cfg.Logging.Format = NormalizeLogFormat(string(cfg.Logging.Format))
}

func applySiteDefaults(s *SiteConfig) {
	if s.Name == "" {
		s.Name = "TTAWDTT"
	}
	if s.HomeTitle == "" {
		s.HomeTitle = "Home"
	}
	if s.HomeEyebrow == "" {
		s.HomeEyebrow = "Home"
	}
	if s.HomeSubtitle == "" {
		s.HomeSubtitle = "A HeroUI-inspired template for GitHub Pages."
	}
}

func applyStoreDefaults(s *StoreConfig) {
	if s.Timeout <= 0 {
		s.Timeout = defaultTimeout
	}
	if s.MaxBytes <= 0 {
		s.MaxBytes = defaultMaxBytes
	}
}

func applyContentDefaults(c *ContentConfig) {
	if c.DocsDir == "" {
		c.DocsDir = defaultDocsDir
	}
	if c.DocsIndex == "" {
		c.DocsIndex = defaultDocsIndex
	}
	if c.MirrorDir == "" {
		c.MirrorDir = c.DocsDir
	}
	if c.Extension == "" {
		c.Extension = defaultExtension
	}
	if len(c.Roots) == 0 {
		c.Roots = []string{"docs", "content", "images", "assets"}
	}
	if c.Locale == "" {
		c.Locale = defaultLocale
	}
	if c.SummaryLength <= 0 {
		c.SummaryLength = defaultSummaryLength
	}
}

func applyRouteDefaults(r *RoutesConfig) {
	r.Unmatched = NormalizeUnmatchedPolicy(string(r.Unmatched))

	if r.Static == nil {
		r.Static = []StaticRoute{{
			Slug:     "about",
			Path:     "content/aboutme.md",
			Title:    "About Me",
			Eyebrow:  "About",
			Subtitle: "Personal profile and background.",
		}}
	}

	d := &r.Docs
	if d.Slug == "" {
		d.Slug = "docs"
	}
	if d.Title == "" {
		d.Title = "Docs"
	}
	if d.Eyebrow == "" {
		d.Eyebrow = "Docs"
	}
	if d.Subtitle == "" {
		d.Subtitle = "Guides and long-form writing."
	}
	if d.DetailSubtitle == "" {
		d.DetailSubtitle = "Reading mode"
	}

	g := &r.Gallery
	if g.Slug == "" {
		g.Slug = "images"
	}
	if g.Manifest == "" {
		g.Manifest = defaultGalleryManifest
	}
	if g.Title == "" {
		g.Title = "Images"
	}
	if g.Eyebrow == "" {
		g.Eyebrow = "Gallery"
	}
	if g.Subtitle == "" {
		g.Subtitle = "Photos and visual notes."
	}
}
