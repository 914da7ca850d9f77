// Package search filters the corpus by free text.
package search

import (
	"strings"

	"git.home.luguber.info/inful/docnav/internal/corpus"
)

// Index is a precomputed view of a corpus for substring queries. It is bound
// to one corpus and must be rebuilt when the corpus is replaced.
type Index struct {
	corpus  *corpus.Corpus
	entries []entry
}

type entry struct {
	doc     *corpus.Document
	title   string
	summary string
	tags    string
}

// New builds an index over c.
func New(c *corpus.Corpus) *Index {
	idx := &Index{corpus: c}
	if c == nil {
		return idx
	}
	idx.entries = make([]entry, 0, len(c.Documents))
	for _, d := range c.Documents {
		idx.entries = append(idx.entries, entry{
			doc:     d,
			title:   strings.ToLower(d.Title),
			summary: strings.ToLower(d.Summary),
			tags:    strings.ToLower(strings.Join(d.Tags, " ")),
		})
	}
	return idx
}

// Corpus returns the corpus the index was built over.
func (idx *Index) Corpus() *corpus.Corpus {
	return idx.corpus
}

// Query returns the documents whose title, summary or tags contain text,
// ignoring case, in discovery order. A blank query matches everything.
func (idx *Index) Query(text string) []*corpus.Document {
	blank := strings.TrimSpace(text) == ""
	q := strings.ToLower(text)
	out := make([]*corpus.Document, 0)
	for _, e := range idx.entries {
		if blank || strings.Contains(e.title, q) || strings.Contains(e.summary, q) || strings.Contains(e.tags, q) {
			out = append(out, e.doc)
		}
	}
	return out
}

// Query searches c without keeping an index.
func Query(c *corpus.Corpus, text string) []*corpus.Document {
	return New(c).Query(text)
}
