// =============================================================================
// Sales Bonus Analyzer - Header Locator
// =============================================================================
//
// Register exports do not put the header row in a fixed place. A file may
// open with blank rows, a store name, a date range banner, or nothing at
// all before the real column labels appear. This module scans the sheet
// top to bottom and accepts the first row whose labels cover the full
// required set.
//
// The scan is a pure function over the sheet model. The single fatal
// outcome — no row qualifies — is a typed error carrying the required
// labels so the caller can report exactly what was expected.
//
// =============================================================================

package header

import (
	"fmt"
	"strings"

	"github.com/eshel-dev/salesbonus/internal/sheet"
)

// ColumnMap maps a column label to its zero-based column index within the
// header row.
type ColumnMap map[string]int

// NotFoundError is returned when no row of the sheet contains every
// required column label.
type NotFoundError struct {
	// Required is the label set that had to appear together in one row.
	Required []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no header row found containing all required columns: %s",
		strings.Join(e.Required, ", "))
}

// Locate scans rows top to bottom for the header row.
//
// For each row it builds a label→index map from the trimmed, non-empty
// cell values. When the same label appears twice in one row the later
// occurrence wins. The first row whose labels form a superset of the
// required set is accepted; blank rows, free-text banners and rows with
// unrelated columns are naturally skipped because they never cover the
// required set.
//
// Locate returns the zero-based row index and the column map, or a
// *NotFoundError when the sheet has no qualifying row.
func Locate(s *sheet.Sheet, required []string) (int, ColumnMap, error) {
	for rowIdx, row := range s.Rows {
		cols := make(ColumnMap)
		for colIdx, cell := range row {
			label := cell.String()
			if label == "" {
				continue
			}
			cols[label] = colIdx
		}

		if len(cols) == 0 {
			continue
		}
		if containsAll(cols, required) {
			return rowIdx, cols, nil
		}
	}

	return 0, nil, &NotFoundError{Required: required}
}

// containsAll reports whether every required label is present in the map.
func containsAll(cols ColumnMap, required []string) bool {
	for _, label := range required {
		if _, ok := cols[label]; !ok {
			return false
		}
	}
	return true
}
