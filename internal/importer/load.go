package importer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/fraudlens/fraudlens/internal/amount"
	"github.com/fraudlens/fraudlens/internal/logger"
	"github.com/fraudlens/fraudlens/internal/model"
)

// Default column names of the fraud dataset.
const (
	DefaultCategoryColumn    = "Agency"
	DefaultSubcategoryColumn = "Program or Activity"
	DefaultAmountColumn      = "Confirmed Fraud"
)

// Columns names the header cells holding each record field.
type Columns struct {
	Category    string
	Subcategory string
	Amount      string
}

// DefaultColumns returns the column layout of the published fraud dataset.
func DefaultColumns() Columns {
	return Columns{
		Category:    DefaultCategoryColumn,
		Subcategory: DefaultSubcategoryColumn,
		Amount:      DefaultAmountColumn,
	}
}

// Options control how a source is decoded.
type Options struct {
	Columns   Columns
	Encoding  string // delimited text only
	Delimiter string // single character, delimited text only
	Sheet     string // workbooks only
}

func (o Options) delimiter() rune {
	if o.Delimiter == "" {
		return ','
	}
	return []rune(o.Delimiter)[0]
}

func (o Options) columns() Columns {
	def := DefaultColumns()
	c := o.Columns
	if c.Category == "" {
		c.Category = def.Category
	}
	if c.Subcategory == "" {
		c.Subcategory = def.Subcategory
	}
	if c.Amount == "" {
		c.Amount = def.Amount
	}
	return c
}

// Load reads the whole source at path and returns cleaned records.
// Either every row loads or an error is returned.
func Load(ctx context.Context, path string, opts Options) ([]model.Record, error) {
	log := logger.FromContext(ctx)

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &NotFoundError{Path: path}
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	p := DefaultRegistry(opts).ForPath(path)
	if p == nil {
		return nil, fmt.Errorf("no parser for %s", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rows, err := p.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	records, err := Clean(rows, opts.columns())
	if err != nil {
		return nil, fmt.Errorf("cleaning %s: %w", path, err)
	}

	log.Info().
		Str("path", path).
		Str("format", p.Format()).
		Int("records", len(records)).
		Msg("loaded fraud data")
	return records, nil
}

// Clean trims the header row, locates the named columns and parses every amount.
// Row numbers in errors are 1-based and count the header.
func Clean(rows [][]string, cols Columns) ([]model.Record, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyData
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.TrimSpace(h)
	}
	if !hasColumns(header) {
		return nil, ErrEmptyData
	}

	catIdx, err := columnIndex(header, cols.Category)
	if err != nil {
		return nil, err
	}
	subIdx, err := columnIndex(header, cols.Subcategory)
	if err != nil {
		return nil, err
	}
	amtIdx, err := columnIndex(header, cols.Amount)
	if err != nil {
		return nil, err
	}

	records := make([]model.Record, 0, len(rows)-1)
	for i, rec := range rows[1:] {
		if isBlank(rec) {
			continue
		}
		if len(rec) > len(header) {
			return nil, fmt.Errorf("row %d: expected %d fields, got %d", i+2, len(header), len(rec))
		}

		amt, err := amount.Parse(cell(rec, amtIdx))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}

		records = append(records, model.Record{
			Category:    cell(rec, catIdx),
			Subcategory: cell(rec, subIdx),
			Amount:      amt,
		})
	}
	return records, nil
}

func columnIndex(header []string, name string) (int, error) {
	for i, h := range header {
		if h == name {
			return i, nil
		}
	}
	return -1, &MissingColumnError{Column: name, Header: header}
}

func hasColumns(header []string) bool {
	for _, h := range header {
		if h != "" {
			return true
		}
	}
	return false
}

func isBlank(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// cell returns rec[i], or "" when a short row omits trailing fields.
func cell(rec []string, i int) string {
	if i < len(rec) {
		return rec[i]
	}
	return ""
}
