// Package measure provides length measurement for lyric segmentation.
//
// Segmentation decisions compare a line's length against a target length.
// What counts as "one character" depends on where the lines are displayed,
// so the measurement is pluggable.
//
// # Counter
//
// The Counter interface measures text and splits it into display units:
//
//	counter := measure.NewRuneCounter()
//	n := counter.Count("Hello, world!")        // 13
//	fits := counter.FitsInLimit("text", 14)    // true
//
// Three modes are available:
//
//   - Runes: one unit per Unicode code point (default)
//   - Graphemes: one unit per user-perceived character (grapheme cluster)
//   - Cells: grapheme clusters weighted by terminal cell width, so
//     East Asian wide characters count as two
//
// Select a counter by name, e.g. from configuration:
//
//	counter, err := measure.New(measure.Cells)
//
// # Clusters
//
// Clusters splits text into the units a segmenter may cut between. A cut
// never falls inside a cluster, so grapheme and cell counters never separate
// a base character from its combining marks.
package measure
