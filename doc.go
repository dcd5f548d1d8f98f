// Package lyricseg splits song lyrics into display lines.
//
// lyricseg is a small toolkit built around one algorithm: given free-form
// lyric text and a target line length, produce lines that stay close to the
// target, break at sentence and clause punctuation where possible, and never
// lose or repeat source text. Each subpackage can be used independently:
//
//   - segment: the line segmentation algorithm
//   - measure: rune, grapheme and terminal-cell length counting
//   - locate: map output lines back to byte spans of the source
//   - source: load lyrics from files, legacy charsets and HTML
//   - render: text, JSON and YAML output plus its JSON Schema
//   - config: defaults, config files and LYRICSEG_* environment variables
//   - watch: re-segment a file on every save
//
// # Quick Start
//
// Segmentation:
//
//	import "github.com/randalmurphal/lyricseg/segment"
//	lines := segment.Lyrics("Hello world. This is a test sentence that is quite long indeed.", 20)
//	// ["Hello world.", "This is a test", "sentence that is", "quite long indeed."]
//
// Highlighting the source of a line:
//
//	import "github.com/randalmurphal/lyricseg/locate"
//	spans, found := locate.Spans(raw, lines)
//
// Command line:
//
//	lyricseg split --limit 20 song.txt
//	lyricseg watch --format json song.txt
//	lyricseg schema
package lyricseg
