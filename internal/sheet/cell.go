// =============================================================================
// Sales Bonus Analyzer - Sheet Model
// =============================================================================
//
// This module defines the in-memory representation of a tabular export.
// Cells are kind-tagged rather than raw strings so that downstream stages
// can branch on what a cell actually holds: text, a number, a native
// date-time, or nothing. The distinction matters most for date decoding,
// where a numeric cell must be treated as a spreadsheet serial day count
// and never as free text.
//
// =============================================================================

package sheet

import (
	"strconv"
	"strings"
	"time"
)

// CellKind discriminates the value variants a cell can hold.
type CellKind int

const (
	// KindEmpty marks a cell with no value.
	KindEmpty CellKind = iota

	// KindText marks a free-text cell.
	KindText

	// KindNumber marks a numeric cell. Spreadsheet date cells arrive as
	// numbers too, carrying a serial day count.
	KindNumber

	// KindTime marks a cell holding a native date-time value.
	KindTime
)

// Cell is a single kind-tagged cell value.
type Cell struct {
	Kind   CellKind
	Text   string
	Number float64
	Time   time.Time
}

// EmptyCell returns a cell with no value.
func EmptyCell() Cell {
	return Cell{Kind: KindEmpty}
}

// TextCell returns a free-text cell.
func TextCell(s string) Cell {
	return Cell{Kind: KindText, Text: s}
}

// NumberCell returns a numeric cell.
func NumberCell(n float64) Cell {
	return Cell{Kind: KindNumber, Number: n}
}

// TimeCell returns a cell holding a native date-time value.
func TimeCell(t time.Time) Cell {
	return Cell{Kind: KindTime, Time: t}
}

// IsEmpty reports whether the cell holds no usable value.
func (c Cell) IsEmpty() bool {
	return c.Kind == KindEmpty || (c.Kind == KindText && strings.TrimSpace(c.Text) == "")
}

// String returns the canonical text form of the cell. Numbers are
// rendered without trailing zeros so an invoice numbered 1024 reads the
// same whether the source cell was numeric or text.
func (c Cell) String() string {
	switch c.Kind {
	case KindText:
		return strings.TrimSpace(c.Text)
	case KindNumber:
		return strconv.FormatFloat(c.Number, 'f', -1, 64)
	case KindTime:
		return c.Time.Format("2006-01-02 15:04:05")
	default:
		return ""
	}
}

// Classify converts a raw string value into a kind-tagged cell. Values
// that parse as a number become numeric cells; this is what keeps serial
// date counts out of the free-text date formats later on.
func Classify(raw string) Cell {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return EmptyCell()
	}
	if n, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return NumberCell(n)
	}
	return TextCell(trimmed)
}

// Row is an ordered sequence of cells.
type Row []Cell

// Cell returns the cell at the given column index, or an empty cell when
// the row is shorter than the index. Export rows are routinely ragged.
func (r Row) Cell(idx int) Cell {
	if idx < 0 || idx >= len(r) {
		return EmptyCell()
	}
	return r[idx]
}

// IsEmpty reports whether every cell in the row is empty.
func (r Row) IsEmpty() bool {
	for _, c := range r {
		if !c.IsEmpty() {
			return false
		}
	}
	return true
}

// Sheet is an ordered sequence of rows read from a single worksheet.
// It is the read-only source of truth for one analysis run.
type Sheet struct {
	// Name is the worksheet name (or the file name for CSV input).
	Name string

	// Rows holds every row of the sheet, top to bottom, including any
	// decorative rows above the real header.
	Rows []Row
}
