// Package source reads raw lyric text from files and streams.
//
// Lyrics arrive in whatever shape they were saved: legacy single-byte
// charsets, UTF-16 with a byte order mark, or HTML copied from a web page.
// A Loader normalizes all of these to a plain UTF-8 string whose line breaks
// separate paragraphs, ready for segmentation.
//
// # Encoding
//
// With no explicit charset, input is decoded as follows:
//
//   - a byte order mark selects UTF-8 or UTF-16
//   - valid UTF-8 is used as-is
//   - anything else is treated as windows-1252
//
// # HTML
//
// HTML input keeps only its text. Block elements and <br> become line
// breaks, whitespace inside a text run collapses to single spaces, and
// script and style content is dropped.
package source
