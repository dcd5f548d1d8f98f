// Package render writes segmented lyrics as text, JSON or YAML documents.
//
// A Document records the lines together with the settings that produced
// them, so a stored line list can be re-derived or validated later. Schema
// returns the JSON Schema of the document for consumers of the JSON and
// YAML output.
package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/invopop/jsonschema"
	"gopkg.in/yaml.v3"

	"github.com/randalmurphal/lyricseg/locate"
	"github.com/randalmurphal/lyricseg/measure"
)

// Format names an output encoding.
type Format string

const (
	// Text writes one line per output line.
	Text Format = "text"

	// JSON writes an indented JSON document.
	JSON Format = "json"

	// YAML writes a YAML document.
	YAML Format = "yaml"
)

// ErrUnknownFormat indicates an unsupported output format.
var ErrUnknownFormat = errors.New("unknown output format")

// Formats returns all supported formats.
func Formats() []Format {
	return []Format{Text, JSON, YAML}
}

// ParseFormat converts a format name to a Format.
// An empty name selects Text.
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(name))) {
	case "", Text:
		return Text, nil
	case JSON:
		return JSON, nil
	case YAML, "yml":
		return YAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// Document is the structured output of one segmentation run.
type Document struct {
	// Source names the input, e.g. a file path or "-" for stdin.
	Source string `json:"source,omitempty" yaml:"source,omitempty" jsonschema:"description=Input file path or - for stdin"`

	// Limit is the target line length used.
	Limit int `json:"limit" yaml:"limit" jsonschema:"minimum=1,description=Target line length"`

	// Measure is the length measurement mode used.
	Measure measure.Mode `json:"measure" yaml:"measure" jsonschema:"enum=runes,enum=graphemes,enum=cells"`

	// Lines holds the output lines in reading order.
	Lines []Line `json:"lines" yaml:"lines"`
}

// Line is one display line.
type Line struct {
	Index int    `json:"index" yaml:"index" jsonschema:"minimum=0"`
	Text  string `json:"text" yaml:"text" jsonschema:"minLength=1"`
	Width int    `json:"width" yaml:"width" jsonschema:"minimum=0,description=Length of the line under the measure mode"`

	// Span is the line's byte range in the source, when requested.
	Span *locate.Span `json:"span,omitempty" yaml:"span,omitempty"`
}

// NewDocument builds a document from segmented lines.
func NewDocument(lines []string, limit int, mode measure.Mode, counter measure.Counter) *Document {
	doc := &Document{
		Limit:   limit,
		Measure: mode,
		Lines:   make([]Line, len(lines)),
	}
	for i, text := range lines {
		doc.Lines[i] = Line{Index: i, Text: text, Width: counter.Count(text)}
	}
	return doc
}

// WithSource sets the document's source name.
func (d *Document) WithSource(source string) *Document {
	d.Source = source
	return d
}

// WithSpans attaches the byte range of each line within raw.
// Lines that cannot be located are left without a span.
func (d *Document) WithSpans(raw string) *Document {
	texts := make([]string, len(d.Lines))
	for i, l := range d.Lines {
		texts[i] = l.Text
	}
	spans, found := locate.Spans(raw, texts)
	for i := range d.Lines {
		if found[i] {
			span := spans[i]
			d.Lines[i].Span = &span
		}
	}
	return d
}

// Texts returns the line texts in order.
func (d *Document) Texts() []string {
	texts := make([]string, len(d.Lines))
	for i, l := range d.Lines {
		texts[i] = l.Text
	}
	return texts
}

// Write encodes doc to w in the given format.
func Write(w io.Writer, doc *Document, format Format) error {
	switch format {
	case Text, "":
		for _, l := range doc.Lines {
			if _, err := fmt.Fprintln(w, l.Text); err != nil {
				return fmt.Errorf("write text: %w", err)
			}
		}
		return nil

	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil

	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return nil

	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Schema returns the JSON Schema describing Document.
func Schema() ([]byte, error) {
	r := &jsonschema.Reflector{
		ExpandedStruct: true,
	}
	schema := r.Reflect(&Document{})
	schema.Title = "lyricseg document"
	schema.Description = "Display lines produced by lyric segmentation."

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	return data, nil
}
