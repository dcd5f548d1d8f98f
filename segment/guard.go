package segment

import (
	"regexp"
	"strings"
)

// DefaultAbbreviations lists honorifics whose trailing period never ends a
// sentence. Matching is case-insensitive and word-boundary delimited.
var DefaultAbbreviations = []string{
	"Mr", "Mrs", "Ms", "Dr", "Sr", "Jr", "St", "Vs",
	"Prof", "Gen", "Rep", "Sen",
}

// initialPattern matches a single uppercase letter followed by a period.
var initialPattern = regexp.MustCompile(`\b[A-Z]\.`)

// guard finds periods that belong to abbreviations or initials.
//
// Protected periods are reported as byte offsets instead of being replaced
// in the text, so no character has to be reserved as a placeholder and the
// output is built from the untouched input.
type guard struct {
	abbreviations *regexp.Regexp
}

func newGuard(abbreviations []string) *guard {
	alternatives := make([]string, 0, len(abbreviations))
	seen := make(map[string]bool, len(abbreviations))
	for _, a := range abbreviations {
		a = strings.TrimSuffix(strings.TrimSpace(a), ".")
		key := strings.ToLower(a)
		if a == "" || seen[key] {
			continue
		}
		seen[key] = true
		alternatives = append(alternatives, regexp.QuoteMeta(a))
	}

	g := &guard{}
	if len(alternatives) > 0 {
		g.abbreviations = regexp.MustCompile(`(?i)\b(?:` + strings.Join(alternatives, "|") + `)\.`)
	}
	return g
}

// protect returns the byte offsets of periods in text that must not be
// treated as sentence terminators.
func (g *guard) protect(text string) map[int]bool {
	if !strings.Contains(text, ".") {
		return nil
	}

	protected := make(map[int]bool)
	mark := func(re *regexp.Regexp) {
		for _, loc := range re.FindAllStringIndex(text, -1) {
			protected[loc[1]-1] = true
		}
	}
	if g.abbreviations != nil {
		mark(g.abbreviations)
	}
	mark(initialPattern)
	return protected
}
