package markdown

import (
	"log/slog"
	"path"
	"regexp"
	"strings"

	"git.home.luguber.info/inful/docnav/internal/docpath"
	"git.home.luguber.info/inful/docnav/internal/logfields"
)

// Stage is one named rewrite pass of the normalizer. A stage reports the edits
// it wants against its input; it never modifies text itself.
type Stage interface {
	Name() string
	Edits(src []byte, owner string) []Edit
}

// Normalizer rewrites wiki-style references into native Markdown. Stages run in
// order, each against the previous stage's output. Text inside code is never
// rewritten.
type Normalizer struct {
	stages []Stage
}

// NewNormalizer builds the default pipeline: embeds first, so an embed is never
// picked up by the plain reference pattern, then wikilinks. A nil resolver
// uses the default layout.
func NewNormalizer(r *docpath.Resolver) *Normalizer {
	if r == nil {
		r = docpath.Default()
	}
	return NewPipeline(EmbedStage{Resolver: r}, WikilinkStage{Resolver: r})
}

// NewPipeline builds a normalizer from explicit stages.
func NewPipeline(stages ...Stage) *Normalizer {
	return &Normalizer{stages: stages}
}

// Stages returns the stage names in execution order.
func (n *Normalizer) Stages() []string {
	names := make([]string, len(n.stages))
	for i, s := range n.stages {
		names[i] = s.Name()
	}
	return names
}

// Normalize applies every stage to raw for the document at owner. It is pure
// and never fails; a stage whose edits cannot be applied is skipped.
func (n *Normalizer) Normalize(raw, owner string) string {
	src := []byte(raw)
	for _, stage := range n.stages {
		edits := dropProtected(stage.Edits(src, owner), codeSpans(src))
		out, err := ApplyEdits(src, edits)
		if err != nil {
			slog.Warn("Skipping normalizer stage", logfields.Stage(stage.Name()), logfields.Path(owner), logfields.Error(err))
			continue
		}
		src = out
	}
	return string(src)
}

var defaultNormalizer = NewNormalizer(docpath.Default())

// Normalize rewrites raw using the default layout.
func Normalize(raw, owner string) string {
	return defaultNormalizer.Normalize(raw, owner)
}

var embedPattern = regexp.MustCompile(`!\[\[([^\]|]*)(?:\|([^\]]*))?\]\]`)

// EmbedStage rewrites `![[target|alt]]` into `![alt](path)`. The path is
// resolved relative to the owning document and percent-normalized.
type EmbedStage struct {
	Resolver *docpath.Resolver
}

func (EmbedStage) Name() string { return "embeds" }

func (s EmbedStage) Edits(src []byte, owner string) []Edit {
	var edits []Edit
	for _, m := range embedPattern.FindAllSubmatchIndex(src, -1) {
		target := strings.TrimSpace(string(src[m[2]:m[3]]))
		if target == "" {
			continue
		}
		alt := target
		if m[4] >= 0 {
			if a := strings.TrimSpace(string(src[m[4]:m[5]])); a != "" {
				alt = a
			}
		}
		dest := normalizeURI(s.Resolver.ResolveAssetPath(target, owner))
		edits = append(edits, Edit{
			Start:       m[0],
			End:         m[1],
			Replacement: []byte("![" + alt + "](" + dest + ")"),
		})
	}
	return edits
}

var wikilinkPattern = regexp.MustCompile(`\[\[([^\]|#]*)(?:#([^\]|]*))?(?:\|([^\]]*))?\]\]`)

// WikilinkStage rewrites `[[target#fragment|display]]` into `[display](dest)`.
// A target without an extension names a document in the documents directory.
type WikilinkStage struct {
	Resolver *docpath.Resolver
}

func (WikilinkStage) Name() string { return "wikilinks" }

func (s WikilinkStage) Edits(src []byte, owner string) []Edit {
	var edits []Edit
	for _, m := range wikilinkPattern.FindAllSubmatchIndex(src, -1) {
		// An embed left untouched by the previous stage stays untouched.
		if m[0] > 0 && src[m[0]-1] == '!' {
			continue
		}
		target := strings.TrimSpace(string(src[m[2]:m[3]]))
		if target == "" {
			continue
		}
		display := target
		if m[6] >= 0 {
			if d := strings.TrimSpace(string(src[m[6]:m[7]])); d != "" {
				display = d
			}
		}
		dest := normalizeURI(s.resolveTarget(target, owner))
		if m[4] >= 0 {
			if frag := strings.TrimSpace(string(src[m[4]:m[5]])); frag != "" {
				dest += "#" + encodeURI(frag)
			}
		}
		edits = append(edits, Edit{
			Start:       m[0],
			End:         m[1],
			Replacement: []byte("[" + display + "](" + dest + ")"),
		})
	}
	return edits
}

func (s WikilinkStage) resolveTarget(target, owner string) string {
	if path.Ext(target) == "" {
		return s.Resolver.Canonical(target)
	}
	return s.Resolver.ResolveAssetPath(target, owner)
}
