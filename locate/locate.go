// Package locate maps segmented lines back to their position in the source
// text.
//
// Segmentation only inserts line boundaries, so every line's words appear in
// the source in order. Spans scans forward from the end of the previous
// match, which keeps repeated lines (choruses) attached to the right
// occurrence. Whitespace between words is matched loosely because packed
// lines join their pieces with a single space.
package locate

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Span is a byte range [Start, End) of the source text.
type Span struct {
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`
}

// Len returns the span length in bytes.
func (s Span) Len() int {
	return s.End - s.Start
}

// Text returns the source text covered by the span.
func (s Span) Text(raw string) string {
	return raw[s.Start:s.End]
}

// Spans locates each line in raw. A line that cannot be found gets ok=false
// at its index and does not move the scan position.
func Spans(raw string, lines []string) ([]Span, []bool) {
	spans := make([]Span, len(lines))
	found := make([]bool, len(lines))

	cursor := 0
	for i, line := range lines {
		if span, ok := Find(raw, line, cursor); ok {
			spans[i], found[i] = span, true
			cursor = span.End
		}
	}
	return spans, found
}

// Find returns the first occurrence of line in raw at or after byte offset
// from. Runs of whitespace in line match any non-empty run of whitespace
// in raw.
func Find(raw, line string, from int) (Span, bool) {
	words := strings.Fields(line)
	if len(words) == 0 || from < 0 || from > len(raw) {
		return Span{}, false
	}

	for off := from; off < len(raw); {
		idx := strings.Index(raw[off:], words[0])
		if idx < 0 {
			return Span{}, false
		}
		start := off + idx
		if end, ok := matchRest(raw, start+len(words[0]), words[1:]); ok {
			return Span{Start: start, End: end}, true
		}
		_, size := utf8.DecodeRuneInString(raw[start:])
		off = start + size
	}
	return Span{}, false
}

func matchRest(raw string, pos int, words []string) (int, bool) {
	for _, w := range words {
		next := skipSpace(raw, pos)
		if next == pos || !strings.HasPrefix(raw[next:], w) {
			return 0, false
		}
		pos = next + len(w)
	}
	return pos, true
}

func skipSpace(raw string, pos int) int {
	for pos < len(raw) {
		r, size := utf8.DecodeRuneInString(raw[pos:])
		if !unicode.IsSpace(r) {
			break
		}
		pos += size
	}
	return pos
}
