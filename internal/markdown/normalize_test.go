package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docnav/internal/docpath"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		owner string
		want  string
	}{
		{
			name:  "embed resolved against owner",
			raw:   "![[diagram.png|Flow]]",
			owner: "docs/guide/intro.md",
			want:  "![Flow](docs/guide/diagram.png)",
		},
		{
			name:  "embed alt defaults to target",
			raw:   "![[images/cat.png]]",
			owner: "docs/a.md",
			want:  "![images/cat.png](images/cat.png)",
		},
		{
			name:  "embed percent normalized",
			raw:   "![[my photo.jpg]] ![[already%20encoded.jpg]]",
			owner: "docs/a.md",
			want:  "![my photo.jpg](docs/my%20photo.jpg) ![already%20encoded.jpg](docs/already%20encoded.jpg)",
		},
		{
			name:  "embed with malformed escape encoded only",
			raw:   "![[100%.png]]",
			owner: "docs/a.md",
			want:  "![100%.png](docs/100%25.png)",
		},
		{
			name:  "embed from mirror owner rerooted",
			raw:   "![[pic.png]]",
			owner: "docs/docs/notes/a.md",
			want:  "![pic.png](docs/notes/pic.png)",
		},
		{
			name:  "bare wikilink",
			raw:   "See [[intro]].",
			owner: "docs/index.md",
			want:  "See [intro](docs/intro.md).",
		},
		{
			name:  "wikilink with fragment and display",
			raw:   "[[Getting Started#First Steps|start here]]",
			owner: "docs/index.md",
			want:  "[start here](docs/Getting%20Started.md#First%20Steps)",
		},
		{
			name:  "wikilink with extension resolved relative",
			raw:   "[[setup.md|Setup]]",
			owner: "docs/guide/index.md",
			want:  "[Setup](docs/guide/setup.md)",
		},
		{
			name:  "empty wikilink target untouched",
			raw:   "[[  |label]] and [[]]",
			owner: "docs/a.md",
			want:  "[[  |label]] and [[]]",
		},
		{
			name:  "empty embed untouched",
			raw:   "![[ |alt]]",
			owner: "docs/a.md",
			want:  "![[ |alt]]",
		},
		{
			name:  "native syntax untouched",
			raw:   "[a](docs/a.md) ![b](images/b.png)",
			owner: "docs/a.md",
			want:  "[a](docs/a.md) ![b](images/b.png)",
		},
		{
			name:  "code is never rewritten",
			raw:   "`[[inline]]`\n\n```\n[[fenced]]\n```\n[[real]]",
			owner: "docs/a.md",
			want:  "`[[inline]]`\n\n```\n[[fenced]]\n```\n[real](docs/real.md)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.raw, tt.owner))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"![[a b.png|A]] then [[note#sec|Note]] and [[other]]",
		"plain text with [native](docs/x.md)",
		"[[ |kept]] ![[ ]] `[[code]]`",
		"mixed ![[x.png]][[y]]",
	}
	for _, in := range inputs {
		once := Normalize(in, "docs/docs/a.md")
		assert.Equal(t, once, Normalize(once, "docs/docs/a.md"), "input %q", in)
	}
}

func TestNormalizeStageOrder(t *testing.T) {
	n := NewNormalizer(docpath.Default())
	require.Equal(t, []string{"embeds", "wikilinks"}, n.Stages())

	// Running wikilinks alone leaves embeds for the embed stage.
	wikiOnly := NewPipeline(WikilinkStage{Resolver: docpath.Default()})
	assert.Equal(t, "![[pic.png]]", wikiOnly.Normalize("![[pic.png]]", "docs/a.md"))
	assert.Equal(t, "![pic.png](docs/pic.png)", n.Normalize("![[pic.png]]", "docs/a.md"))
}

type overlappingStage struct{}

func (overlappingStage) Name() string { return "broken" }

func (overlappingStage) Edits([]byte, string) []Edit {
	return []Edit{{Start: 0, End: 3}, {Start: 1, End: 2}}
}

func TestNormalizeSkipsBrokenStage(t *testing.T) {
	n := NewPipeline(overlappingStage{}, WikilinkStage{Resolver: docpath.Default()})
	assert.Equal(t, "[a](docs/a.md)", n.Normalize("[[a]]", "docs/index.md"))
}

func TestURIHelpers(t *testing.T) {
	assert.Equal(t, "docs/a%20b.png", encodeURI("docs/a b.png"))
	assert.Equal(t, "%C3%A9t%C3%A9", encodeURI("été"))
	assert.Equal(t, "a/b?c=d#e", encodeURI("a/b?c=d#e"))

	got, err := decodeURI("a%20b%2Fc")
	require.NoError(t, err)
	assert.Equal(t, "a b%2Fc", got)

	_, err = decodeURI("bad%2")
	assert.Error(t, err)
	_, err = decodeURI("%FF")
	assert.Error(t, err)

	assert.Equal(t, "a%20b", normalizeURI("a%20b"))
	assert.Equal(t, "50%25", normalizeURI("50%"))
}
