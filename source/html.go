package source

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// blockElements start and end on their own line.
var blockElements = map[atom.Atom]bool{
	atom.P:          true,
	atom.Div:        true,
	atom.Li:         true,
	atom.Blockquote: true,
	atom.Pre:        true,
	atom.H1:         true,
	atom.H2:         true,
	atom.H3:         true,
	atom.H4:         true,
	atom.H5:         true,
	atom.H6:         true,
	atom.Tr:         true,
	atom.Section:    true,
	atom.Article:    true,
}

// skippedElements contribute no text.
var skippedElements = map[atom.Atom]bool{
	atom.Script:   true,
	atom.Style:    true,
	atom.Head:     true,
	atom.Template: true,
	atom.Noscript: true,
}

// ExtractHTML returns the text of an HTML document with one line per
// block element or <br>. Text inside <pre> keeps its own line breaks.
func ExtractHTML(r io.Reader) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	var sb strings.Builder
	pre := 0
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			if pre > 0 {
				sb.WriteString(n.Data)
			} else {
				sb.WriteString(collapseSpace(n.Data))
			}
			return
		case html.ElementNode:
			if skippedElements[n.DataAtom] {
				return
			}
			if n.DataAtom == atom.Br {
				sb.WriteByte('\n')
				return
			}
		}

		block := n.Type == html.ElementNode && blockElements[n.DataAtom]
		if block {
			sb.WriteByte('\n')
		}
		isPre := n.Type == html.ElementNode && n.DataAtom == atom.Pre
		if isPre {
			pre++
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if isPre {
			pre--
		}
		if block {
			sb.WriteByte('\n')
		}
	}
	walk(doc)

	return sb.String(), nil
}

// collapseSpace replaces each whitespace run with one space. HTML source
// line breaks are layout, not lyric line breaks.
func collapseSpace(s string) string {
	var sb strings.Builder
	space := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			if !space {
				sb.WriteByte(' ')
			}
			space = true
			continue
		}
		space = false
		sb.WriteRune(r)
	}
	return sb.String()
}

// looksLikeHTML reports whether text appears to be an HTML fragment.
func looksLikeHTML(text string) bool {
	head := strings.ToLower(strings.TrimSpace(text))
	if len(head) > 512 {
		head = head[:512]
	}
	if !strings.HasPrefix(head, "<") {
		return false
	}
	for _, marker := range []string{"<!doctype html", "<html", "<body", "<p", "<div", "<br", "<pre"} {
		if strings.Contains(head, marker) {
			return true
		}
	}
	return false
}
