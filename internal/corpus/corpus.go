package corpus

import (
	"slices"
	"time"
)

// Corpus is the realized document graph. It is replaced wholesale on rebuild
// and never mutated after Build returns.
type Corpus struct {
	// Documents in first-discovery order from the index scan.
	Documents []*Document
	ByPath    map[string]*Document
	// Backlinks maps a target path to the records that reference it. Targets
	// need not exist in ByPath.
	Backlinks map[string][]*Document
	// Series maps a series name to its records sorted by order, then title.
	Series map[string][]*Document
	// Tags maps a tag to its records in discovery order.
	Tags map[string][]*Document

	IndexPath string
	BuiltAt   time.Time
}

// SeriesContext locates a record inside its series.
type SeriesContext struct {
	Name string
	// Position is zero based.
	Position int
	Entries  []*Document
}

// Lookup returns the record for a canonical path.
func (c *Corpus) Lookup(path string) (*Document, bool) {
	if c == nil {
		return nil, false
	}
	doc, ok := c.ByPath[path]
	return doc, ok
}

// BacklinksFor returns the records referencing path, excluding path itself.
func (c *Corpus) BacklinksFor(path string) []*Document {
	if c == nil {
		return nil
	}
	var out []*Document
	for _, src := range c.Backlinks[path] {
		if src.CanonicalPath != path {
			out = append(out, src)
		}
	}
	return out
}

// SeriesOf returns the series context of the record at path.
func (c *Corpus) SeriesOf(path string) (SeriesContext, bool) {
	doc, ok := c.Lookup(path)
	if !ok || doc.Series == "" {
		return SeriesContext{}, false
	}
	entries := c.Series[doc.Series]
	pos := slices.IndexFunc(entries, func(d *Document) bool { return d.CanonicalPath == path })
	if pos < 0 {
		return SeriesContext{}, false
	}
	return SeriesContext{Name: doc.Series, Position: pos, Entries: entries}, true
}

// Neighbours returns the previous and next records for path: series neighbours
// when the record belongs to a series, discovery-order neighbours otherwise.
// Either may be nil.
func (c *Corpus) Neighbours(path string) (prev, next *Document) {
	entries := []*Document(nil)
	pos := -1
	if sc, ok := c.SeriesOf(path); ok {
		entries, pos = sc.Entries, sc.Position
	} else if c != nil {
		entries = c.Documents
		pos = slices.IndexFunc(entries, func(d *Document) bool { return d.CanonicalPath == path })
	}
	if pos < 0 {
		return nil, nil
	}
	if pos > 0 {
		prev = entries[pos-1]
	}
	if pos+1 < len(entries) {
		next = entries[pos+1]
	}
	return prev, next
}

// ByDate returns dated records, newest first. Records with equal dates keep
// discovery order.
func (c *Corpus) ByDate() []*Document {
	if c == nil {
		return nil
	}
	var dated []*Document
	for _, d := range c.Documents {
		if d.Dated() {
			dated = append(dated, d)
		}
	}
	slices.SortStableFunc(dated, func(a, b *Document) int {
		return b.Date.Compare(a.Date)
	})
	return dated
}

// Stubs returns the number of placeholder records.
func (c *Corpus) Stubs() int {
	if c == nil {
		return 0
	}
	n := 0
	for _, d := range c.Documents {
		if d.Stub {
			n++
		}
	}
	return n
}

// Changed lists the canonical paths whose content differs from prev: new
// records and records with a different fingerprint, in discovery order.
func (c *Corpus) Changed(prev *Corpus) []string {
	if c == nil {
		return nil
	}
	var out []string
	for _, d := range c.Documents {
		old, ok := prev.Lookup(d.CanonicalPath)
		if !ok || old.Fingerprint != d.Fingerprint || old.Stub != d.Stub {
			out = append(out, d.CanonicalPath)
		}
	}
	return out
}
