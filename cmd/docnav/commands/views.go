package commands

import (
	"encoding/json"
	"io"
	"time"

	"git.home.luguber.info/inful/docnav/internal/corpus"
	"git.home.luguber.info/inful/docnav/internal/navigation"
	"git.home.luguber.info/inful/docnav/internal/route"
)

type routeView struct {
	Kind          route.Kind `json:"kind"`
	Token         string     `json:"token"`
	CanonicalPath string     `json:"canonical_path,omitempty"`
	Title         string     `json:"title"`
	Eyebrow       string     `json:"eyebrow,omitempty"`
	Subtitle      string     `json:"subtitle,omitempty"`
	Key           string     `json:"key,omitempty"`
	Fragment      string     `json:"fragment,omitempty"`
}

func newRouteView(d route.Descriptor) routeView {
	return routeView{
		Kind:          d.Kind,
		Token:         d.Token,
		CanonicalPath: d.CanonicalPath,
		Title:         d.DisplayTitle,
		Eyebrow:       d.Eyebrow,
		Subtitle:      d.Subtitle,
		Key:           d.Key,
		Fragment:      d.Fragment,
	}
}

type docRef struct {
	Path  string `json:"path"`
	Title string `json:"title"`
	Token string `json:"token"`
}

type documentView struct {
	docRef
	ResolvedPath   string     `json:"resolved_path"`
	Tags           []string   `json:"tags,omitempty"`
	Series         string     `json:"series,omitempty"`
	Order          float64    `json:"order,omitempty"`
	Summary        string     `json:"summary,omitempty"`
	Date           *time.Time `json:"date,omitempty"`
	ReadingMinutes int        `json:"reading_minutes"`
	Fingerprint    string     `json:"fingerprint,omitempty"`
	Stub           bool       `json:"stub,omitempty"`
}

type seriesView struct {
	Name     string   `json:"name"`
	Position int      `json:"position"`
	Entries  []docRef `json:"entries"`
}

type pageView struct {
	Route     routeView      `json:"route"`
	Title     string         `json:"title"`
	HeadTitle string         `json:"head_title"`
	Eyebrow   string         `json:"eyebrow"`
	Subtitle  string         `json:"subtitle"`
	Tags      []string       `json:"tags,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	Series    *seriesView    `json:"series,omitempty"`
	Backlinks []docRef       `json:"backlinks,omitempty"`
	Prev      *docRef        `json:"prev,omitempty"`
	Next      *docRef        `json:"next,omitempty"`
	Body      string         `json:"body,omitempty"`
	HTML      string         `json:"html,omitempty"`
}

type corpusView struct {
	IndexPath string              `json:"index_path"`
	BuiltAt   time.Time           `json:"built_at"`
	Documents []documentView      `json:"documents"`
	Series    map[string][]docRef `json:"series"`
	Tags      map[string][]docRef `json:"tags"`
	Backlinks map[string][]docRef `json:"backlinks"`
}

func (a *app) ref(d *corpus.Document) docRef {
	return docRef{Path: d.CanonicalPath, Title: d.Title, Token: a.routes.DocumentToken(d.CanonicalPath)}
}

func (a *app) refs(docs []*corpus.Document) []docRef {
	out := make([]docRef, 0, len(docs))
	for _, d := range docs {
		out = append(out, a.ref(d))
	}
	return out
}

func (a *app) optionalRef(d *corpus.Document) *docRef {
	if d == nil {
		return nil
	}
	r := a.ref(d)
	return &r
}

func (a *app) documentView(d *corpus.Document) documentView {
	v := documentView{
		docRef:         a.ref(d),
		ResolvedPath:   d.ResolvedPath,
		Tags:           d.Tags,
		Series:         d.Series,
		Order:          d.Order,
		Summary:        d.Summary,
		ReadingMinutes: d.ReadingMinutes,
		Fingerprint:    d.Fingerprint,
		Stub:           d.Stub,
	}
	if d.Dated() {
		date := d.Date
		v.Date = &date
	}
	return v
}

func (a *app) pageView(p navigation.Page) pageView {
	v := pageView{
		Route:     newRouteView(p.Route),
		Title:     p.Title,
		HeadTitle: p.HeadTitle,
		Eyebrow:   p.Eyebrow,
		Subtitle:  p.Subtitle,
		Tags:      p.Tags,
		Metadata:  p.Metadata.ToMap(),
		Backlinks: a.refs(p.Backlinks),
		Prev:      a.optionalRef(p.PrevNext.Prev),
		Next:      a.optionalRef(p.PrevNext.Next),
		Body:      p.Body,
	}
	if p.Series != nil {
		v.Series = &seriesView{Name: p.Series.Name, Position: p.Series.Position, Entries: a.refs(p.Series.Entries)}
	}
	return v
}

func (a *app) corpusView(c *corpus.Corpus) corpusView {
	v := corpusView{
		IndexPath: c.IndexPath,
		BuiltAt:   c.BuiltAt,
		Documents: make([]documentView, 0, len(c.Documents)),
		Series:    make(map[string][]docRef, len(c.Series)),
		Tags:      make(map[string][]docRef, len(c.Tags)),
		Backlinks: make(map[string][]docRef, len(c.Backlinks)),
	}
	for _, d := range c.Documents {
		v.Documents = append(v.Documents, a.documentView(d))
	}
	for name, docs := range c.Series {
		v.Series[name] = a.refs(docs)
	}
	for tag, docs := range c.Tags {
		v.Tags[tag] = a.refs(docs)
	}
	for target := range c.Backlinks {
		if refs := a.refs(c.BacklinksFor(target)); len(refs) > 0 {
			v.Backlinks[target] = refs
		}
	}
	return v
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
