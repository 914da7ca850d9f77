package markdown

// LinkKind records which syntax produced a DocLink.
type LinkKind string

const (
	LinkKindInline   LinkKind = "inline"
	LinkKindWikilink LinkKind = "wikilink"
)

// DocLink is a cross-document reference found by ScanDocumentLinks.
type DocLink struct {
	Kind LinkKind
	// Target is the canonical path of the referenced document.
	Target string
	// Text is the link text as written, empty for wikilinks without display text.
	Text string
}
