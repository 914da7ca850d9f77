// Package docpath computes store paths for documents and the assets they reference.
//
// All functions are pure: output depends only on the configured Layout and the
// arguments, never on the store.
package docpath

import (
	"path"
	"regexp"
	"strings"
)

// Layout describes the physical layout of the content store.
type Layout struct {
	DocsDir   string   // Documents directory, e.g. "docs"
	MirrorDir string   // Nested mirror directory inside DocsDir, e.g. "docs"
	Extension string   // Document extension including the dot, e.g. ".md"
	Roots     []string // Known top-level content directories
}

// DefaultLayout is the layout of the original site.
func DefaultLayout() Layout {
	return Layout{
		DocsDir:   "docs",
		MirrorDir: "docs",
		Extension: ".md",
		Roots:     []string{"docs", "content", "images", "assets"},
	}
}

// Resolver resolves references relative to owning documents.
type Resolver struct {
	layout       Layout
	docsPrefix   string
	mirrorPrefix string
}

// New creates a Resolver for layout. Empty fields fall back to DefaultLayout.
func New(layout Layout) *Resolver {
	def := DefaultLayout()
	if layout.DocsDir == "" {
		layout.DocsDir = def.DocsDir
	}
	if layout.MirrorDir == "" {
		layout.MirrorDir = layout.DocsDir
	}
	if layout.Extension == "" {
		layout.Extension = def.Extension
	}
	if len(layout.Roots) == 0 {
		layout.Roots = def.Roots
	}
	return &Resolver{
		layout:       layout,
		docsPrefix:   layout.DocsDir + "/",
		mirrorPrefix: layout.DocsDir + "/" + layout.MirrorDir + "/",
	}
}

// Default returns a Resolver for DefaultLayout.
func Default() *Resolver { return New(DefaultLayout()) }

// Layout returns the layout the resolver was built with.
func (r *Resolver) Layout() Layout { return r.layout }

var schemePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*:`)

// IsExternal reports whether ref must never be rewritten: protocol-prefixed
// (including data: and mailto:), protocol-relative, root-rooted or
// fragment-only references.
func IsExternal(ref string) bool {
	return schemePattern.MatchString(ref) ||
		strings.HasPrefix(ref, "/") ||
		strings.HasPrefix(ref, "#")
}

// UnderRoot reports whether p starts with one of the known content roots.
func (r *Resolver) UnderRoot(p string) bool {
	first, _, _ := strings.Cut(p, "/")
	for _, root := range r.layout.Roots {
		if first == root {
			return true
		}
	}
	return false
}

// ResolveAssetPath computes the store path for reference as written inside the
// document at owner.
//
// External references and references already under a content root are returned
// unchanged. Other references are joined against the owner's directory; an owner
// inside the nested mirror directory is treated as living in its top-level
// sibling so both layouts resolve to the same path.
func (r *Resolver) ResolveAssetPath(reference, owner string) string {
	ref := strings.TrimSpace(reference)
	if ref == "" || IsExternal(ref) || r.UnderRoot(ref) {
		return ref
	}
	for strings.HasPrefix(ref, "./") {
		ref = ref[2:]
	}
	return path.Join(r.ownerDir(owner), ref)
}

func (r *Resolver) ownerDir(owner string) string {
	if strings.HasPrefix(owner, r.mirrorPrefix) {
		owner = r.docsPrefix + strings.TrimPrefix(owner, r.mirrorPrefix)
	}
	dir := path.Dir(owner)
	if dir == "." {
		return ""
	}
	return dir
}

// FallbackCandidates lists alternate locations for a resolved asset path in
// priority order: the mirrored layout, the owner's own directory and then every
// content root. The result is deduplicated and never contains resolved itself.
func (r *Resolver) FallbackCandidates(resolved, owner string) []string {
	if resolved == "" || IsExternal(resolved) {
		return nil
	}

	base := path.Base(resolved)
	candidates := make([]string, 0, len(r.layout.Roots)+2)
	seen := map[string]bool{resolved: true}
	add := func(p string) {
		if p == "" || seen[p] {
			return
		}
		seen[p] = true
		candidates = append(candidates, p)
	}

	if alt, ok := r.MirrorAlternate(resolved); ok {
		add(alt)
	}
	if owner != "" {
		add(path.Join(path.Dir(owner), base))
	}
	for _, root := range r.layout.Roots {
		add(path.Join(root, base))
	}
	return candidates
}

// MirrorAlternate toggles p between the two physical layouts of the documents
// directory: "docs/x" and "docs/docs/x". Paths outside the documents directory
// have no alternate.
func (r *Resolver) MirrorAlternate(p string) (string, bool) {
	switch {
	case strings.HasPrefix(p, r.mirrorPrefix):
		return r.docsPrefix + strings.TrimPrefix(p, r.mirrorPrefix), true
	case strings.HasPrefix(p, r.docsPrefix):
		return r.mirrorPrefix + strings.TrimPrefix(p, r.docsPrefix), true
	default:
		return "", false
	}
}

// Canonical expands a bare document name into its canonical path in the
// documents directory: "intro" becomes "docs/intro.md". Names that already
// carry the documents prefix or the extension keep them.
func (r *Resolver) Canonical(name string) string {
	n := strings.TrimSpace(name)
	n = strings.TrimLeft(n, "/")
	for strings.HasPrefix(n, "./") {
		n = n[2:]
	}
	if !strings.HasPrefix(n, r.docsPrefix) {
		n = r.docsPrefix + n
	}
	if !strings.HasSuffix(n, r.layout.Extension) {
		n += r.layout.Extension
	}
	return path.Clean(n)
}

// IsDocument reports whether p names a document by its extension.
func (r *Resolver) IsDocument(p string) bool {
	return strings.HasSuffix(strings.ToLower(p), strings.ToLower(r.layout.Extension))
}

// Slug returns the documents-relative name of a canonical path without the
// extension: "docs/guide/intro.md" becomes "guide/intro".
func (r *Resolver) Slug(canonical string) string {
	s := strings.TrimPrefix(canonical, r.mirrorPrefix)
	s = strings.TrimPrefix(s, r.docsPrefix)
	return strings.TrimSuffix(s, r.layout.Extension)
}
