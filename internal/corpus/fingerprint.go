package corpus

import (
	"strings"

	"github.com/inful/mdfp"

	"git.home.luguber.info/inful/docnav/internal/frontmatter"
)

// fingerprint computes the content fingerprint of a document from its metadata
// and body. A stored fingerprint field is excluded so the value is stable.
func fingerprint(meta frontmatter.Metadata, body string) string {
	forHash := make(frontmatter.Metadata, len(meta))
	for k, v := range meta {
		if k == mdfp.FingerprintField {
			continue
		}
		forHash[k] = v
	}

	fm := ""
	if len(forHash) > 0 {
		// Serialization of coerced values cannot fail; an error leaves fm empty.
		if serialized, err := frontmatter.SerializeYAML(forHash); err == nil {
			fm = strings.TrimSuffix(string(serialized), "\n")
		}
	}
	return mdfp.CalculateFingerprintFromParts(fm, body)
}
