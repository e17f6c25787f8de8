// =============================================================================
// Sales Bonus Analyzer - XLSX Reader
// =============================================================================
//
// This module reads a register export workbook into the sheet model.
// Only the first worksheet is consumed; the register never writes more
// than one, and anything beyond it is decoration. The file handle is
// opened, fully consumed and released inside ReadXLSX — nothing retains
// it afterward.
//
// Rows are requested with raw cell values so date cells arrive as their
// underlying serial numbers instead of locale-formatted strings. The
// date normalizer owns the decoding from there.
//
// =============================================================================

package sheet

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ReadXLSX reads the first worksheet of a workbook into a Sheet.
func ReadXLSX(path string) (*Sheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	name := f.GetSheetName(0)
	if name == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rawRows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read rows from sheet %q: %w", name, err)
	}

	s := &Sheet{Name: name, Rows: make([]Row, 0, len(rawRows))}
	for _, rawRow := range rawRows {
		row := make(Row, len(rawRow))
		for i, raw := range rawRow {
			row[i] = Classify(raw)
		}
		s.Rows = append(s.Rows, row)
	}

	return s, nil
}
