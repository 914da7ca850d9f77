package corpus

import (
	"cmp"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"git.home.luguber.info/inful/docnav/internal/docpath"
	"git.home.luguber.info/inful/docnav/internal/markdown"
	"git.home.luguber.info/inful/docnav/internal/util/sets"
)

// deriveSeries groups records by series name and orders each group by order,
// then title under locale-aware collation, then canonical path.
func deriveSeries(docs []*Document, locale language.Tag) map[string][]*Document {
	series := make(map[string][]*Document)
	for _, d := range docs {
		if d.Series != "" {
			series[d.Series] = append(series[d.Series], d)
		}
	}

	// A collator is not safe for concurrent use; one per build.
	col := collate.New(locale)
	for _, entries := range series {
		slices.SortStableFunc(entries, func(a, b *Document) int {
			switch {
			case a.Order < b.Order:
				return -1
			case a.Order > b.Order:
				return 1
			}
			if c := col.CompareString(a.Title, b.Title); c != 0 {
				return c
			}
			return cmp.Compare(a.CanonicalPath, b.CanonicalPath)
		})
	}
	return series
}

func deriveTags(docs []*Document) map[string][]*Document {
	tags := make(map[string][]*Document)
	for _, d := range docs {
		var seen sets.Ordered[string]
		for _, t := range d.Tags {
			if seen.Add(t) {
				tags[t] = append(tags[t], d)
			}
		}
	}
	return tags
}

// deriveBacklinks rescans every record's normalized text and indexes each
// referenced target to its source, whether or not the target is a record.
func deriveBacklinks(docs []*Document, r *docpath.Resolver) map[string][]*Document {
	backlinks := make(map[string][]*Document)
	for _, src := range docs {
		if src.RawNormalized == "" {
			continue
		}
		for _, link := range markdown.ScanDocumentLinks(src.RawNormalized, src.CanonicalPath, r) {
			backlinks[link.Target] = append(backlinks[link.Target], src)
		}
	}
	return backlinks
}
