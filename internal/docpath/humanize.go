package docpath

import (
	"path"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Humanize turns a route slug into a display title. '-' and '_' become spaces
// and each word of every path segment gets an upper case first letter, so
// "guide/intro" becomes "Guide/Intro". Existing capitals are kept.
func Humanize(slug string) string {
	slug = strings.Trim(strings.TrimSpace(slug), "/")
	if slug == "" || slug == "." {
		return ""
	}
	// Casers keep state and are not safe for concurrent use.
	caser := cases.Title(language.Und, cases.NoLower)
	segments := strings.Split(slug, "/")
	for i, seg := range segments {
		seg = strings.NewReplacer("-", " ", "_", " ").Replace(seg)
		segments[i] = caser.String(strings.Join(strings.Fields(seg), " "))
	}
	return strings.Join(segments, "/")
}

// HumanizeName humanizes the file name of p with its directory and extension
// dropped: "docs/guide/api-v2.md" becomes "Api V2".
func HumanizeName(p string) string {
	name := path.Base(strings.TrimSpace(p))
	if ext := path.Ext(name); ext != "" && ext != name {
		name = strings.TrimSuffix(name, ext)
	}
	if name == "." || name == "/" {
		return ""
	}
	return Humanize(name)
}
