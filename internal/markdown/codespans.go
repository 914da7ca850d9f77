package markdown

import (
	"bytes"
	"strings"
)

// span is a half-open byte range [start, end).
type span struct {
	start, end int
}

// codeSpans returns the byte ranges of fenced code blocks and inline code spans.
// Rewrite stages leave text inside these ranges alone.
func codeSpans(src []byte) []span {
	var spans []span

	inFence := false
	activeFence := ""
	fenceStart := 0

	for pos := 0; pos < len(src); {
		end := bytes.IndexByte(src[pos:], '\n')
		next := len(src)
		if end >= 0 {
			next = pos + end + 1
		}
		line := string(src[pos:next])
		trimmed := strings.TrimSpace(line)

		if fence := fenceMarker(trimmed); fence != "" {
			switch {
			case !inFence:
				inFence, activeFence, fenceStart = true, fence, pos
			case fence == activeFence:
				inFence, activeFence = false, ""
				spans = append(spans, span{fenceStart, next})
			}
			pos = next
			continue
		}
		if !inFence {
			spans = append(spans, inlineCodeSpans(line, pos)...)
		}
		pos = next
	}

	if inFence {
		// An unclosed fence runs to the end of the document.
		spans = append(spans, span{fenceStart, len(src)})
	}
	return spans
}

func fenceMarker(trimmed string) string {
	switch {
	case strings.HasPrefix(trimmed, "```"):
		return "```"
	case strings.HasPrefix(trimmed, "~~~"):
		return "~~~"
	default:
		return ""
	}
}

// inlineCodeSpans finds backtick-delimited spans within a single line. offset
// is the line's position in the document.
func inlineCodeSpans(line string, offset int) []span {
	if !strings.Contains(line, "`") {
		return nil
	}

	var spans []span
	for i := 0; i < len(line); {
		if line[i] != '`' {
			i++
			continue
		}

		run := 1
		for i+run < len(line) && line[i+run] == '`' {
			run++
		}

		marker := strings.Repeat("`", run)
		closeRel := strings.Index(line[i+run:], marker)
		if closeRel == -1 {
			// Unclosed code span; the backticks are literal.
			i += run
			continue
		}

		end := i + run + closeRel + run
		spans = append(spans, span{offset + i, offset + end})
		i = end
	}
	return spans
}

// dropProtected removes edits that touch any protected span.
func dropProtected(edits []Edit, protected []span) []Edit {
	if len(protected) == 0 {
		return edits
	}
	kept := edits[:0]
	for _, e := range edits {
		touched := false
		for _, s := range protected {
			if e.overlaps(s) {
				touched = true
				break
			}
		}
		if !touched {
			kept = append(kept, e)
		}
	}
	return kept
}
