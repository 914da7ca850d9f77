package markdown

import (
	"regexp"
	"strings"
)

var headingPattern = regexp.MustCompile(`^#\s+(.+?)(?:\s+#+)?\s*$`)

// SplitTitle extracts a leading level-one heading. Only the first non-blank
// line is considered; when it is `# Title`, the title is returned and the line
// is removed from the body together with the blank lines that preceded it.
// Otherwise title is empty and body is returned unchanged.
func SplitTitle(body string) (title, rest string) {
	remaining := body
	for remaining != "" {
		line, after, _ := strings.Cut(remaining, "\n")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			remaining = after
			continue
		}
		m := headingPattern.FindStringSubmatch(trimmed)
		if m == nil {
			return "", body
		}
		return strings.TrimSpace(m[1]), strings.TrimLeft(after, "\r\n")
	}
	return "", body
}
