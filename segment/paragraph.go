package segment

import "strings"

// splitIntoParagraphs splits text on "\n" or "\r\n" and returns the trimmed,
// non-empty paragraphs in order. Blank separator lines are not preserved.
func splitIntoParagraphs(text string) []string {
	var paragraphs []string
	for _, p := range strings.Split(text, "\n") {
		if p = strings.TrimSpace(p); p != "" {
			paragraphs = append(paragraphs, p)
		}
	}
	return paragraphs
}
