package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"git.home.luguber.info/inful/docnav/internal/docpath"
)

func TestScanDocumentLinks(t *testing.T) {
	body := "# Index\n\n" +
		"- [Intro](intro.md)\n" +
		"- [Setup guide](./guide/setup.md#install)\n" +
		"- [[notes|Notes]]\n" +
		"- [Intro again](intro.md?x=1)\n" +
		"- [External](https://example.com/readme.md)\n" +
		"- [Image page](images/cat.png)\n" +
		"- [Spaced](My%20Note.md)\n" +
		"- ![[pic.png]]\n" +
		"\n```\n[Hidden](hidden.md) [[hidden-too]]\n```\n"

	links := ScanDocumentLinks(body, "docs/index.md", docpath.Default())

	assert.Equal(t, []DocLink{
		{Kind: LinkKindInline, Target: "docs/intro.md", Text: "Intro"},
		{Kind: LinkKindInline, Target: "docs/guide/setup.md", Text: "Setup guide"},
		{Kind: LinkKindWikilink, Target: "docs/notes.md", Text: "Notes"},
		{Kind: LinkKindInline, Target: "docs/My Note.md", Text: "Spaced"},
	}, links)
}

func TestScanDocumentLinksFirstSeenOrderAcrossSyntaxes(t *testing.T) {
	body := "[[b]] then [A](a.md) then [B again](b.md)"
	links := ScanDocumentLinks(body, "docs/index.md", docpath.Default())

	targets := make([]string, len(links))
	for i, l := range links {
		targets[i] = l.Target
	}
	assert.Equal(t, []string{"docs/b.md", "docs/a.md"}, targets)
}

func TestScanDocumentLinksOnNormalizedText(t *testing.T) {
	raw := "See [[alpha]] and [[beta#x|Beta]]."
	links := ScanDocumentLinks(Normalize(raw, "docs/index.md"), "docs/index.md", docpath.Default())

	assert.Len(t, links, 2)
	assert.Equal(t, "docs/alpha.md", links[0].Target)
	assert.Equal(t, "alpha", links[0].Text)
	assert.Equal(t, "docs/beta.md", links[1].Target)
	assert.Equal(t, "Beta", links[1].Text)
}

func TestSplitTitle(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantTitle string
		wantRest  string
	}{
		{"leading heading", "# Hello\n\nBody text\n", "Hello", "Body text\n"},
		{"blank lines first", "\n\n#   Spaced Title  \nBody", "Spaced Title", "Body"},
		{"closing hashes", "# Title ##\nBody", "Title", "Body"},
		{"second level ignored", "## Sub\nBody", "", "## Sub\nBody"},
		{"text first", "Intro\n# Late\n", "", "Intro\n# Late\n"},
		{"empty", "", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, rest := SplitTitle(tt.body)
			assert.Equal(t, tt.wantTitle, title)
			assert.Equal(t, tt.wantRest, rest)
		})
	}
}

func TestPlainText(t *testing.T) {
	body := "# Heading\n\nSome *emphasis* and a [link](x.md).\n\n" +
		"```go\nfunc hidden() {}\n```\n\n" +
		"![alt text](pic.png)\n\n" +
		"<div>raw</div>\n\n" +
		"- item `code`\n- second\n"

	assert.Equal(t, "Heading Some emphasis and a link. item code second", PlainText(body))
}
