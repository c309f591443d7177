package importer

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// XLSXParser reads one worksheet of an Office Open XML workbook.
type XLSXParser struct {
	Sheet string // empty = first sheet
}

// Format returns the parser name.
func (p *XLSXParser) Format() string { return "xlsx" }

// Extensions returns the file extensions handled by this parser.
func (p *XLSXParser) Extensions() []string { return []string{".xlsx", ".xlsm"} }

// Parse returns the rows of the configured sheet.
func (p *XLSXParser) Parse(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheet := p.Sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, fmt.Errorf("worksheet %q not found", sheet)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading worksheet %q: %w", sheet, err)
	}
	return rows, nil
}
