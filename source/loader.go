package source

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Format names an input format.
type Format string

const (
	// Auto picks HTML or Text from the file extension and content.
	Auto Format = "auto"

	// Text is plain text with one lyric line per line.
	Text Format = "text"

	// HTML is an HTML document or fragment.
	HTML Format = "html"
)

// Stdin is the path that selects standard input.
const Stdin = "-"

// ErrUnknownFormat indicates an unsupported input format.
var ErrUnknownFormat = errors.New("unknown input format")

// ParseFormat converts a format name to a Format.
// An empty name selects Auto.
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(name))) {
	case "", Auto:
		return Auto, nil
	case Text, "txt", "plain":
		return Text, nil
	case HTML, "htm":
		return HTML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// Loader reads lyric text.
type Loader struct {
	// Charset is the IANA charset of the input. Empty detects it.
	Charset string

	// Format selects how input is interpreted.
	Format Format

	stdin io.Reader
}

// NewLoader creates a loader that detects charset and format.
func NewLoader() *Loader {
	return &Loader{Format: Auto, stdin: os.Stdin}
}

// WithCharset sets the input charset.
func (l *Loader) WithCharset(charset string) *Loader {
	l.Charset = charset
	return l
}

// WithFormat sets the input format.
func (l *Loader) WithFormat(format Format) *Loader {
	l.Format = format
	return l
}

// WithStdin replaces the reader used for the Stdin path.
func (l *Loader) WithStdin(r io.Reader) *Loader {
	l.stdin = r
	return l
}

// Load reads and decodes the file at path, or standard input for "-".
func (l *Loader) Load(path string) (string, error) {
	var r io.Reader
	if path == Stdin {
		r = l.stdin
		if r == nil {
			r = os.Stdin
		}
	} else {
		f, err := os.Open(path)
		if err != nil {
			return "", fmt.Errorf("open lyrics: %w", err)
		}
		defer f.Close()
		r = f
	}
	return l.Read(r, path)
}

// Read decodes lyrics from r. name is used for format detection by
// extension and may be empty.
func (l *Loader) Read(r io.Reader, name string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read lyrics: %w", err)
	}

	charset := l.Charset
	if charset == "" {
		charset = DetectCharset(data)
		slog.Debug("detected input charset", slog.String("source", name), slog.String("charset", charset))
	}
	text, err := Decode(data, charset)
	if err != nil {
		return "", err
	}

	format := l.Format
	if format == "" || format == Auto {
		format = detectFormat(name, text)
	}
	if format == HTML {
		return ExtractHTML(strings.NewReader(text))
	}
	return text, nil
}

func detectFormat(name, text string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".html", ".htm", ".xhtml":
		return HTML
	case ".txt", ".lrc", ".lyrics":
		return Text
	}
	if looksLikeHTML(text) {
		return HTML
	}
	return Text
}
