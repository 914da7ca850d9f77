// Package render turns normalized document bodies into HTML for display.
package render

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var externalPattern = regexp.MustCompile(`^https?://`)

// Renderer converts Markdown to HTML and rewrites document links into
// navigation tokens.
type Renderer struct {
	md        goldmark.Markdown
	docsSlug  string
	docsDir   string
	extension string
}

// New creates a Renderer. docsSlug is the route slug of document pages,
// docsDir the store directory of documents and extension the document
// extension.
func New(docsSlug, docsDir, extension string) *Renderer {
	return &Renderer{
		md:        newMarkdown(),
		docsSlug:  docsSlug,
		docsDir:   docsDir,
		extension: extension,
	}
}

func newMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			gmhtml.WithUnsafe(),
		),
	)
}

// HTML renders body and rewrites its links.
func (r *Renderer) HTML(body string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(body), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return r.RewriteLinks(buf.String())
}

// RewriteLinks rewrites anchors in an HTML fragment. Links to documents become
// document tokens ("guide.md" becomes "#/docs/guide"), absolute http(s) links
// open in a new tab and fragment-only links are left alone.
func (r *Renderer) RewriteLinks(fragment string) (string, error) {
	bodyCtx := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), bodyCtx)
	if err != nil {
		return "", fmt.Errorf("parse rendered html: %w", err)
	}

	var buf bytes.Buffer
	for _, n := range nodes {
		r.rewrite(n)
		if err := html.Render(&buf, n); err != nil {
			return "", fmt.Errorf("write rendered html: %w", err)
		}
	}
	return buf.String(), nil
}

func (r *Renderer) rewrite(n *html.Node) {
	if n.Type == html.ElementNode && n.DataAtom == atom.A {
		r.rewriteAnchor(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		r.rewrite(c)
	}
}

func (r *Renderer) rewriteAnchor(n *html.Node) {
	idx := -1
	for i, a := range n.Attr {
		if a.Key == "href" {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	href := n.Attr[idx].Val
	switch {
	case href == "" || strings.HasPrefix(href, "#"):
		return
	case externalPattern.MatchString(href):
		setAttr(n, "target", "_blank")
		setAttr(n, "rel", "noopener")
	default:
		if doc, ok := r.documentHref(href); ok {
			n.Attr[idx].Val = doc
		}
	}
}

// documentHref maps a store link to a document token. The query is dropped
// and a fragment is kept after a second '#'.
func (r *Renderer) documentHref(href string) (string, bool) {
	target, fragment, _ := strings.Cut(href, "#")
	target, _, _ = strings.Cut(target, "?")
	if !strings.HasSuffix(target, r.extension) || strings.Contains(target, ":") {
		return "", false
	}
	clean := strings.TrimPrefix(target, "./")
	clean = strings.TrimPrefix(clean, "/")
	clean = strings.TrimPrefix(clean, r.docsDir+"/")
	clean = strings.TrimSuffix(clean, r.extension)

	token := "#/" + r.docsSlug + "/" + clean
	if fragment != "" {
		token += "#" + fragment
	}
	return token, true
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}
