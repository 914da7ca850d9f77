// Package corpus builds and caches the cross-linked document graph reachable
// from the documents index.
package corpus

import (
	"time"

	"git.home.luguber.info/inful/docnav/internal/frontmatter"
)

// Document is one record of the corpus. Records are immutable once built; a
// rebuild produces new records.
type Document struct {
	// CanonicalPath is the stable identity used as a key everywhere.
	CanonicalPath string
	// ResolvedPath is the path that answered retrieval. It differs from
	// CanonicalPath when the mirrored layout was used.
	ResolvedPath string

	Title  string
	Tags   []string
	Series string
	Order  float64

	Summary   string
	PlainText string
	// Body is the normalized markup with metadata and title line removed.
	Body string
	// RawNormalized is the full normalized text, metadata included.
	RawNormalized string

	Date           time.Time
	ReadingMinutes int
	Metadata       frontmatter.Metadata
	Fingerprint    string

	// Stub marks a placeholder for an index entry that could not be retrieved.
	Stub bool
}

// Dated reports whether the record carries a publication date.
func (d *Document) Dated() bool {
	return !d.Date.IsZero()
}
