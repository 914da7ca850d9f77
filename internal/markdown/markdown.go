// Package markdown rewrites, scans and flattens Markdown documents.
package markdown

import (
	"net/url"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"git.home.luguber.info/inful/docnav/internal/docpath"
	"git.home.luguber.info/inful/docnav/internal/util/sets"
)

var md = goldmark.New(goldmark.WithExtensions(extension.GFM))

// ParseBody parses a Markdown body (frontmatter already removed) into a Goldmark AST.
func ParseBody(body []byte) gmast.Node {
	return md.Parser().Parse(text.NewReader(body))
}

type scannedLink struct {
	offset int
	link   DocLink
}

// ScanDocumentLinks finds every reference from the document at owner to another
// document: native links whose destination ends in the document extension and
// raw `[[...]]` references. Fragments and queries are dropped, external links are
// ignored and the result is deduplicated by target in first-seen order.
func ScanDocumentLinks(body, owner string, r *docpath.Resolver) []DocLink {
	src := []byte(body)
	found := scanNativeLinks(src, owner, r)
	found = append(found, scanWikilinks(src, r)...)
	sort.SliceStable(found, func(i, j int) bool { return found[i].offset < found[j].offset })

	var seen sets.Ordered[string]
	links := make([]DocLink, 0, len(found))
	for _, f := range found {
		if seen.Add(f.link.Target) {
			links = append(links, f.link)
		}
	}
	return links
}

func scanNativeLinks(src []byte, owner string, r *docpath.Resolver) []scannedLink {
	var out []scannedLink
	last := 0
	_ = gmast.Walk(ParseBody(src), func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		if off, ok := nodeOffset(n); ok {
			last = off
		}
		link, ok := n.(*gmast.Link)
		if !ok {
			return gmast.WalkContinue, nil
		}
		target, ok := documentTarget(string(link.Destination), owner, r)
		if !ok {
			return gmast.WalkContinue, nil
		}
		offset := last
		if off, ok := firstTextOffset(link); ok {
			offset = off
		}
		out = append(out, scannedLink{
			offset: offset,
			link: DocLink{
				Kind:   LinkKindInline,
				Target: target,
				Text:   strings.TrimSpace(nodeText(link, src)),
			},
		})
		return gmast.WalkSkipChildren, nil
	})
	return out
}

// documentTarget turns a link destination into a canonical document path.
func documentTarget(dest, owner string, r *docpath.Resolver) (string, bool) {
	dest = strings.TrimSpace(dest)
	if dest == "" || docpath.IsExternal(dest) {
		return "", false
	}
	if i := strings.IndexAny(dest, "?#"); i >= 0 {
		dest = dest[:i]
	}
	if decoded, err := url.PathUnescape(dest); err == nil {
		dest = decoded
	}
	if !r.IsDocument(dest) {
		return "", false
	}
	return r.ResolveAssetPath(dest, owner), true
}

func scanWikilinks(src []byte, r *docpath.Resolver) []scannedLink {
	stage := WikilinkStage{Resolver: r}
	protected := codeSpans(src)

	var out []scannedLink
	for _, m := range wikilinkPattern.FindAllSubmatchIndex(src, -1) {
		if m[0] > 0 && src[m[0]-1] == '!' {
			continue
		}
		if len(dropProtected([]Edit{{Start: m[0], End: m[1]}}, protected)) == 0 {
			continue
		}
		target := strings.TrimSpace(string(src[m[2]:m[3]]))
		if target == "" {
			continue
		}
		resolved := stage.resolveTarget(target, "")
		if !r.IsDocument(resolved) {
			continue
		}
		var display string
		if m[6] >= 0 {
			display = strings.TrimSpace(string(src[m[6]:m[7]]))
		}
		out = append(out, scannedLink{
			offset: m[0],
			link:   DocLink{Kind: LinkKindWikilink, Target: resolved, Text: display},
		})
	}
	return out
}

// nodeOffset returns the source offset of a node when it carries one.
func nodeOffset(n gmast.Node) (int, bool) {
	if t, ok := n.(*gmast.Text); ok {
		return t.Segment.Start, true
	}
	if n.Type() == gmast.TypeBlock && n.Lines().Len() > 0 {
		return n.Lines().At(0).Start, true
	}
	return 0, false
}

// firstTextOffset returns the offset of the first text segment below n.
func firstTextOffset(n gmast.Node) (int, bool) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*gmast.Text); ok {
			return t.Segment.Start, true
		}
		if off, ok := firstTextOffset(c); ok {
			return off, true
		}
	}
	return 0, false
}

// nodeText concatenates the literal text below n.
func nodeText(n gmast.Node, src []byte) string {
	var b strings.Builder
	_ = gmast.Walk(n, func(c gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch v := c.(type) {
		case *gmast.Text:
			b.Write(v.Segment.Value(src))
			if v.SoftLineBreak() || v.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *gmast.String:
			b.Write(v.Value)
		}
		return gmast.WalkContinue, nil
	})
	return b.String()
}

// PlainText flattens Markdown into whitespace-collapsed text. Code blocks, raw
// HTML and images are skipped; link text and inline code are kept.
func PlainText(body string) string {
	src := []byte(body)
	var b strings.Builder
	_ = gmast.Walk(ParseBody(src), func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		switch n.Kind() {
		case gmast.KindFencedCodeBlock, gmast.KindCodeBlock, gmast.KindHTMLBlock, gmast.KindRawHTML, gmast.KindImage:
			return gmast.WalkSkipChildren, nil
		}
		if !entering {
			if n.Type() == gmast.TypeBlock {
				b.WriteByte(' ')
			}
			return gmast.WalkContinue, nil
		}
		switch v := n.(type) {
		case *gmast.Text:
			b.Write(v.Segment.Value(src))
			if v.SoftLineBreak() || v.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *gmast.String:
			b.Write(v.Value)
		}
		return gmast.WalkContinue, nil
	})
	return strings.Join(strings.Fields(b.String()), " ")
}
