// Package frontmatter splits a document into its leading metadata block and body.
//
// The block format is deliberately loose: a `---` line, `key: value` lines and a
// closing `---` line. Values are coerced into scalars, numbers or sequences;
// nested YAML is not supported.
package frontmatter

import (
	"regexp"
	"strconv"
	"strings"
)

const delimiter = "---"

// Split separates a `---` delimited block from the body.
//
// The opening delimiter must be the first line and the closing delimiter must be
// a line of its own; the body may be empty. Trailing whitespace on either
// delimiter line is tolerated. If no well-formed block is found, had is false
// and body is the full input.
func Split(content string) (block string, body string, had bool) {
	first, rest, ok := cutLine(content)
	if !ok || strings.TrimRight(first, " \t\r") != delimiter {
		return "", content, false
	}

	offset := len(content) - len(rest)
	for pos := offset; pos < len(content); {
		line, next, _ := cutLine(content[pos:])
		if strings.TrimRight(line, " \t\r") == delimiter {
			return content[offset:pos], next, true
		}
		pos = len(content) - len(next)
	}
	return "", content, false
}

// cutLine returns the first line of s (without its '\n') and the remainder.
// ok reports whether a line terminator or end of input closed the line.
func cutLine(s string) (line, rest string, ok bool) {
	if s == "" {
		return "", "", false
	}
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i], s[i+1:], true
	}
	return s, "", true
}

// Parse splits markup into metadata and body. Absence of a well-formed block
// yields empty metadata and the input unchanged. Parse never fails.
func Parse(markup string) (Metadata, string) {
	block, body, had := Split(markup)
	if !had {
		return Metadata{}, markup
	}
	return ParseBlock(block), body
}

// ParseBlock parses the lines between the delimiters. Blank lines, lines
// starting with '#' and lines without a ':' are ignored. Later keys win.
func ParseBlock(block string) Metadata {
	meta := Metadata{}
	for _, line := range strings.Split(block, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		key, raw, found := strings.Cut(trimmed, ":")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		meta[key] = coerce(key, strings.TrimSpace(raw))
	}
	return meta
}

var numericPattern = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)$`)

func coerce(key, raw string) Value {
	if isSequenceKey(key) {
		return Sequence(splitList(raw)...)
	}
	if isBracketed(raw) {
		return Sequence(splitList(raw)...)
	}
	if isWholeQuoted(raw) {
		return Scalar(raw[1 : len(raw)-1])
	}
	if strings.Contains(raw, ",") {
		return Sequence(splitList(raw)...)
	}
	if numericPattern.MatchString(raw) {
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return Number(f, raw)
		}
	}
	return Scalar(raw)
}

func isSequenceKey(key string) bool {
	k := strings.ToLower(key)
	return k == "tags" || k == "tag"
}

func isBracketed(s string) bool {
	return len(s) >= 2 && s[0] == '[' && s[len(s)-1] == ']'
}

func isQuoted(s string) bool {
	if len(s) < 2 {
		return false
	}
	q := s[0]
	return (q == '"' || q == '\'') && s[len(s)-1] == q
}

// isWholeQuoted reports whether s is a single quoted string: the closing
// quote is the only other quote of the same kind. `"a", "b"` is a list.
func isWholeQuoted(s string) bool {
	return isQuoted(s) && strings.IndexByte(s[1:len(s)-1], s[0]) < 0
}

// splitList splits a bracketed or comma-separated list into trimmed,
// quote-stripped, non-empty items.
func splitList(raw string) []string {
	if isBracketed(raw) {
		raw = raw[1 : len(raw)-1]
	}
	var items []string
	for _, part := range strings.Split(raw, ",") {
		item := strings.TrimSpace(part)
		if isQuoted(item) {
			item = strings.TrimSpace(item[1 : len(item)-1])
		}
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}
