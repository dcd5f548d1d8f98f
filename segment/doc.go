// Package segment splits lyric text into display lines.
//
// Given free-form text and a target line length, segmentation produces an
// ordered list of lines that stay within a length tolerance, break at
// semantic boundaries where possible, and never drop or repeat source text.
//
// # Pipeline
//
// Each call runs the same pipeline:
//
//  1. Paragraphs: the input is split on line breaks; blank lines are dropped
//     and every paragraph is segmented independently.
//  2. Abbreviations: periods of honorifics ("Dr.", "Mrs.") and initials
//     ("J. Smith") are marked so they never end a sentence.
//  3. Cascade: a segment that fits is emitted as-is. Otherwise it is split on
//     sentence punctuation, then clause punctuation, then whitespace, and the
//     pieces are repacked into lines close to the target length.
//  4. Fallback: text without usable whitespace is cut at the target length.
//
// # Basic Usage
//
//	lines := segment.Lyrics(text, 14)
//
// With a custom length counter or extra abbreviations:
//
//	s := segment.New().
//	    WithCounter(measure.NewCellCounter()).
//	    WithAbbreviations("Capt", "Lt")
//	lines, err := s.Segment(text, 20)
//
// # Tolerance
//
// A line is not held to the exact target. Thresholds derives the bounds:
// a segment up to max(1.5*limit, limit+5) is kept whole, packed lines stay
// under 1.3*limit, and the whitespace fallback only accepts cuts between
// 0.4*limit and 1.4*limit. See NewThresholds.
//
// # Determinism
//
// Segmentation is a pure function of its inputs. A configured Segmenter
// holds no per-call state and may be shared between goroutines.
package segment
