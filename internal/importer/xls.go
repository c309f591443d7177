package importer

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/extrame/xls"
)

// maxXLSColumns is the BIFF8 column limit.
const maxXLSColumns = 256

// XLSParser reads one worksheet of a legacy BIFF workbook.
type XLSParser struct {
	Sheet string // empty = first sheet
}

// Format returns the parser name.
func (p *XLSParser) Format() string { return "xls" }

// Extensions returns the file extensions handled by this parser.
func (p *XLSParser) Extensions() []string { return []string{".xls"} }

// Parse returns the rows of the configured sheet. Rows the sheet never stored
// are skipped and trailing empty cells are dropped.
func (p *XLSParser) Parse(r io.Reader) ([][]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading workbook: %w", err)
	}

	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	if wb == nil {
		return nil, errors.New("opening workbook: no workbook stream")
	}

	sheet := p.findSheet(wb)
	if sheet == nil {
		return nil, fmt.Errorf("worksheet %q not found", p.Sheet)
	}

	var rows [][]string
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := rowAt(sheet, i)
		if row == nil {
			continue
		}
		// Rows written without a ROW record report no columns.
		width := row.LastCol()
		if width <= 0 {
			width = maxXLSColumns
		}
		cells := make([]string, width)
		for j := range cells {
			cells[j] = row.Col(j)
		}
		rows = append(rows, trimTrailing(cells))
	}
	return rows, nil
}

func (p *XLSParser) findSheet(wb *xls.WorkBook) *xls.WorkSheet {
	if p.Sheet == "" {
		if wb.NumSheets() == 0 {
			return nil
		}
		return wb.GetSheet(0)
	}
	for i := 0; i < wb.NumSheets(); i++ {
		if s := wb.GetSheet(i); s != nil && s.Name == p.Sheet {
			return s
		}
	}
	return nil
}

// rowAt returns nil for a row index the sheet has no entry for. WorkSheet.Row
// dereferences the stored row unchecked and panics on gaps.
func rowAt(sheet *xls.WorkSheet, i int) (row *xls.Row) {
	defer func() {
		if recover() != nil {
			row = nil
		}
	}()
	return sheet.Row(i)
}

func trimTrailing(cells []string) []string {
	n := len(cells)
	for n > 0 && cells[n-1] == "" {
		n--
	}
	return cells[:n]
}
