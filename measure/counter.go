package measure

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Mode names a measurement strategy.
type Mode string

const (
	// Runes counts Unicode code points.
	Runes Mode = "runes"

	// Graphemes counts grapheme clusters.
	Graphemes Mode = "graphemes"

	// Cells counts terminal display cells.
	Cells Mode = "cells"
)

// ErrUnknownMode indicates an unsupported measurement mode.
var ErrUnknownMode = errors.New("unknown measure mode")

// Cluster is the smallest unit of text a line may be cut between.
type Cluster struct {
	// Text is the cluster's source text.
	Text string

	// Width is the cluster's length contribution.
	Width int
}

// Counter measures text length.
type Counter interface {
	// Count returns the length of the text.
	Count(text string) int

	// FitsInLimit returns true if the text length is within limit.
	FitsInLimit(text string, limit int) bool

	// Clusters splits text into units whose widths sum to Count(text).
	Clusters(text string) []Cluster
}

// Modes returns all supported modes.
func Modes() []Mode {
	return []Mode{Runes, Graphemes, Cells}
}

// ParseMode converts a mode name to a Mode.
// An empty name selects Runes.
func ParseMode(name string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(name))) {
	case "", Runes:
		return Runes, nil
	case Graphemes:
		return Graphemes, nil
	case Cells:
		return Cells, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, name)
	}
}

// New creates a counter for the given mode.
func New(mode Mode) (Counter, error) {
	switch mode {
	case "", Runes:
		return NewRuneCounter(), nil
	case Graphemes:
		return NewGraphemeCounter(), nil
	case Cells:
		return NewCellCounter(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
}

// RuneCounter counts Unicode code points.
type RuneCounter struct{}

// NewRuneCounter creates a code point counter.
func NewRuneCounter() *RuneCounter {
	return &RuneCounter{}
}

// Count returns the number of runes in text.
func (c *RuneCounter) Count(text string) int {
	return utf8.RuneCountInString(text)
}

// FitsInLimit returns true if text has at most limit runes.
func (c *RuneCounter) FitsInLimit(text string, limit int) bool {
	return c.Count(text) <= limit
}

// Clusters returns one cluster of width 1 per rune.
func (c *RuneCounter) Clusters(text string) []Cluster {
	clusters := make([]Cluster, 0, len(text))
	for i := 0; i < len(text); {
		// Invalid UTF-8 yields size 1, matching how range counts it.
		_, size := utf8.DecodeRuneInString(text[i:])
		clusters = append(clusters, Cluster{Text: text[i : i+size], Width: 1})
		i += size
	}
	return clusters
}

// GraphemeCounter counts user-perceived characters.
type GraphemeCounter struct{}

// NewGraphemeCounter creates a grapheme cluster counter.
func NewGraphemeCounter() *GraphemeCounter {
	return &GraphemeCounter{}
}

// Count returns the number of grapheme clusters in text.
func (c *GraphemeCounter) Count(text string) int {
	return uniseg.GraphemeClusterCount(text)
}

// FitsInLimit returns true if text has at most limit grapheme clusters.
func (c *GraphemeCounter) FitsInLimit(text string, limit int) bool {
	return c.Count(text) <= limit
}

// Clusters returns one cluster of width 1 per grapheme cluster.
func (c *GraphemeCounter) Clusters(text string) []Cluster {
	return graphemes(text, func(string) int { return 1 })
}

// CellCounter counts terminal display cells.
type CellCounter struct {
	// EastAsianAmbiguousWide treats ambiguous-width characters as wide.
	EastAsianAmbiguousWide bool
}

// NewCellCounter creates a cell width counter using narrow ambiguous widths.
func NewCellCounter() *CellCounter {
	return &CellCounter{}
}

// Count returns the display width of text in cells.
func (c *CellCounter) Count(text string) int {
	total := 0
	for _, cl := range c.Clusters(text) {
		total += cl.Width
	}
	return total
}

// FitsInLimit returns true if text occupies at most limit cells.
func (c *CellCounter) FitsInLimit(text string, limit int) bool {
	return c.Count(text) <= limit
}

// Clusters returns grapheme clusters weighted by cell width.
func (c *CellCounter) Clusters(text string) []Cluster {
	cond := runewidth.NewCondition()
	cond.EastAsianWidth = c.EastAsianAmbiguousWide
	return graphemes(text, func(cluster string) int {
		// Width is taken from the base rune; combining marks add nothing.
		r, _ := utf8.DecodeRuneInString(cluster)
		return cond.RuneWidth(r)
	})
}

func graphemes(text string, width func(string) int) []Cluster {
	var clusters []Cluster
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		s := gr.Str()
		clusters = append(clusters, Cluster{Text: s, Width: width(s)})
	}
	return clusters
}
