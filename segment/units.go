package segment

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/randalmurphal/lyricseg/measure"
)

// kind classifies a unit for delimiter scanning.
type kind uint8

const (
	kindText kind = iota
	kindSpace
	kindTerminator // . ! ? ！ ？
	kindClause     // , ， ; ； : ：
	kindDash       // - – —
)

// unit is one measured cluster of a paragraph.
type unit struct {
	text  string
	width int
	kind  kind

	// period is set for unprotected '.' units; used for ellipsis detection.
	period bool
}

func classify(r rune) kind {
	switch r {
	case '.', '!', '?', '！', '？':
		return kindTerminator
	case ',', '，', ';', '；', ':', '：':
		return kindClause
	case '-', '–', '—':
		return kindDash
	}
	if unicode.IsSpace(r) {
		return kindSpace
	}
	return kindText
}

func allSpace(s string) bool {
	for _, r := range s {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// toUnits measures a paragraph and classifies each cluster. Periods at the
// offsets in protected are demoted to plain text.
func toUnits(clusters []measure.Cluster, protected map[int]bool) []unit {
	units := make([]unit, len(clusters))
	offset := 0
	for i, c := range clusters {
		r, _ := utf8.DecodeRuneInString(c.Text)
		u := unit{text: c.Text, width: c.Width, kind: classify(r)}
		if u.kind == kindSpace && !allSpace(c.Text) {
			// A space carrying a combining mark is content.
			u.kind = kindText
		}
		if r == '.' {
			if protected[offset] {
				u.kind = kindText
			} else {
				u.period = true
			}
		}
		units[i] = u
		offset += len(c.Text)
	}
	return units
}

// trimUnits drops leading and trailing whitespace units.
func trimUnits(units []unit) []unit {
	start, end := 0, len(units)
	for start < end && units[start].kind == kindSpace {
		start++
	}
	for end > start && units[end-1].kind == kindSpace {
		end--
	}
	return units[start:end]
}

func widthOf(units []unit) int {
	w := 0
	for _, u := range units {
		w += u.width
	}
	return w
}

func textOf(units []unit) string {
	var sb strings.Builder
	for _, u := range units {
		sb.WriteString(u.text)
	}
	return sb.String()
}
