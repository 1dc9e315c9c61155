package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dalemusser/recursosayuda/internal/app/system/csvutil"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

var (
	// ErrUndecodable is returned when the table cannot be read under the
	// primary encoding nor under the fallback.
	ErrUndecodable = errors.New("resource table could not be decoded")

	// ErrMalformedTable is returned when the bytes decode as UTF-8 but the
	// table itself cannot be parsed. No other encoding is tried.
	ErrMalformedTable = errors.New("resource table could not be parsed")

	// ErrUnknownEncoding is returned by LookupEncoding for unsupported names.
	ErrUnknownEncoding = errors.New("unknown encoding")

	errInvalidUTF8 = errors.New("input is not valid UTF-8")
)

const (
	EncodingUTF8        = "utf-8"
	EncodingLatin1      = "latin-1"
	EncodingWindows1252 = "windows-1252"
)

// LookupEncoding maps a fallback encoding name to its decoder. "" and "none"
// disable the fallback and return a nil encoding.
func LookupEncoding(name string) (encoding.Encoding, string, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none":
		return nil, "", nil
	case "latin-1", "latin1", "iso-8859-1", "iso8859-1":
		return charmap.ISO8859_1, EncodingLatin1, nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252, EncodingWindows1252, nil
	default:
		return nil, "", fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
	}
}

// decoded is a parsed table and the encoding it was read under.
type decoded struct {
	table    csvutil.Table
	encoding string
}

// decode parses raw as UTF-8 when the bytes are valid UTF-8; a parse error
// then is a malformed table, not an encoding problem. Otherwise it retries
// once under fallback, keeping both errors when that also fails.
func decode(raw []byte, fallback encoding.Encoding, fallbackName string, opts csvutil.ReadOptions) (decoded, error) {
	if utf8.Valid(raw) {
		t, err := csvutil.ReadTable(bytes.NewReader(raw), opts)
		if err != nil {
			return decoded{}, fmt.Errorf("%w: %w", ErrMalformedTable, err)
		}
		return decoded{table: t, encoding: EncodingUTF8}, nil
	}

	primaryErr := fmt.Errorf("%s: %w", EncodingUTF8, errInvalidUTF8)
	if fallback == nil {
		return decoded{}, fmt.Errorf("%w: %w", ErrUndecodable, primaryErr)
	}

	t, err := csvutil.ReadTable(fallback.NewDecoder().Reader(bytes.NewReader(raw)), opts)
	if err != nil {
		return decoded{}, fmt.Errorf("%w: %w", ErrUndecodable,
			errors.Join(primaryErr, fmt.Errorf("%s: %w", fallbackName, err)))
	}
	return decoded{table: t, encoding: fallbackName}, nil
}
