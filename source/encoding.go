package source

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrUnknownEncoding indicates a charset name with no available decoder.
var ErrUnknownEncoding = errors.New("unknown encoding")

// FallbackCharset is assumed for input that is not valid UTF-8.
const FallbackCharset = "windows-1252"

// LookupEncoding resolves an IANA charset name such as "latin1" or
// "Shift_JIS".
func LookupEncoding(name string) (encoding.Encoding, error) {
	enc, err := ianaindex.IANA.Encoding(strings.TrimSpace(name))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
	}
	if enc == nil {
		// Known to the index but without an implementation.
		return nil, fmt.Errorf("%w: %q is not supported", ErrUnknownEncoding, name)
	}
	return enc, nil
}

// DetectCharset guesses the charset of data from its byte order mark and
// UTF-8 validity.
func DetectCharset(data []byte) string {
	switch {
	case len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF:
		return "utf-8"
	case len(data) >= 2 && data[0] == 0xFE && data[1] == 0xFF:
		return "utf-16be"
	case len(data) >= 2 && data[0] == 0xFF && data[1] == 0xFE:
		return "utf-16le"
	case utf8.Valid(data):
		return "utf-8"
	default:
		return FallbackCharset
	}
}

// Decode converts data in the given charset to UTF-8. An empty charset is
// detected. A byte order mark, if present, overrides the charset and is
// removed.
func Decode(data []byte, charset string) (string, error) {
	if charset == "" {
		charset = DetectCharset(data)
	}
	enc, err := LookupEncoding(charset)
	if err != nil {
		return "", err
	}

	out, _, err := transform.Bytes(unicode.BOMOverride(enc.NewDecoder()), data)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", charset, err)
	}
	return string(out), nil
}
