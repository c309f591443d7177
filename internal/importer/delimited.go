package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Supported text encodings for delimited sources.
const (
	EncodingUTF8        = "utf-8"
	EncodingWindows1252 = "windows-1252"
)

// DelimitedParser parses CSV-like text exports.
type DelimitedParser struct {
	Name     string
	Comma    rune
	Encoding string
	Exts     []string
}

// Format returns the parser name.
func (p *DelimitedParser) Format() string { return p.Name }

// Extensions returns the file extensions handled by this parser.
func (p *DelimitedParser) Extensions() []string { return p.Exts }

// Parse decodes r and returns all records. Rows may be shorter than the header.
func (p *DelimitedParser) Parse(r io.Reader) ([][]string, error) {
	decoded, err := decode(r, p.Encoding)
	if err != nil {
		return nil, err
	}

	cr := csv.NewReader(decoded)
	if p.Comma != 0 {
		cr.Comma = p.Comma
	}
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", p.Name, err)
	}
	return records, nil
}

// decode wraps r so the CSV reader always sees UTF-8 without a byte-order mark.
func decode(r io.Reader, encoding string) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "", EncodingUTF8, "utf8":
		return transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())), nil
	case EncodingWindows1252, "cp1252":
		return transform.NewReader(r, charmap.Windows1252.NewDecoder()), nil
	default:
		return nil, fmt.Errorf("unsupported encoding %q", encoding)
	}
}
