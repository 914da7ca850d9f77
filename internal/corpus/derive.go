package corpus

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"git.home.luguber.info/inful/docnav/internal/docpath"
	"git.home.luguber.info/inful/docnav/internal/frontmatter"
	"git.home.luguber.info/inful/docnav/internal/markdown"
)

const wordsPerMinute = 200

// deriver turns normalized documents into records.
type deriver struct {
	normalizer    *markdown.Normalizer
	summaryLength int
}

// record builds a Document from a retrieved document. linkText is the text of
// the index link that led to it and serves as a title fallback.
func (d deriver) record(canonical, resolved, raw, linkText string) *Document {
	normalized := d.normalizer.Normalize(raw, canonical)
	meta, body := frontmatter.Parse(normalized)
	heading, rest := markdown.SplitTitle(body)
	plain := markdown.PlainText(rest)

	doc := &Document{
		CanonicalPath:  canonical,
		ResolvedPath:   resolved,
		Title:          firstNonEmpty(meta.String("title"), heading, linkText, docpath.HumanizeName(canonical)),
		Tags:           meta.Strings("tags", "tag"),
		Series:         meta.String("series"),
		Summary:        firstNonEmpty(meta.String("summary", "description"), truncateRunes(plain, d.summaryLength)),
		PlainText:      plain,
		Body:           rest,
		RawNormalized:  normalized,
		ReadingMinutes: ReadingMinutes(plain),
		Metadata:       meta,
		Fingerprint:    fingerprint(meta, rest),
	}
	if order, ok := meta.Float("order"); ok {
		doc.Order = order
	}
	if date, ok := meta.Time("date", "time", "updated"); ok {
		doc.Date = date
	}
	return doc
}

// stub builds the placeholder for an index entry whose retrieval failed.
func stub(canonical, linkText string) *Document {
	return &Document{
		CanonicalPath:  canonical,
		ResolvedPath:   canonical,
		Title:          firstNonEmpty(linkText, docpath.HumanizeName(canonical)),
		Metadata:       frontmatter.Metadata{},
		ReadingMinutes: 1,
		Stub:           true,
	}
}

// ReadingMinutes estimates reading time at 200 words per minute, rounded up,
// never less than one minute. Each Han, Hiragana, Katakana or Hangul rune counts
// as a word because those scripts do not separate words with spaces.
func ReadingMinutes(plain string) int {
	words := 0
	inWord := false
	for _, r := range plain {
		switch {
		case isIdeographic(r):
			words++
			inWord = false
		case unicode.IsSpace(r):
			inWord = false
		default:
			if !inWord {
				words++
				inWord = true
			}
		}
	}
	minutes := int(math.Ceil(float64(words) / wordsPerMinute))
	return max(minutes, 1)
}

func isIdeographic(r rune) bool {
	return unicode.In(r, unicode.Han, unicode.Hiragana, unicode.Katakana, unicode.Hangul)
}

func truncateRunes(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return strings.TrimSpace(s[:i])
		}
		count++
	}
	return s
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
