package sheet

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
)

// writeFixture builds a small workbook on disk and returns its path.
func writeFixture(t *testing.T, set func(f *excelize.File)) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	set(f)

	path := filepath.Join(t.TempDir(), "export.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("failed to save fixture workbook: %v", err)
	}
	return path
}

func TestReadXLSXClassifiesCells(t *testing.T) {
	path := writeFixture(t, func(f *excelize.File) {
		f.SetCellValue("Sheet1", "A1", "חנות מרכזית")
		f.SetCellValue("Sheet1", "A3", "item")
		f.SetCellValue("Sheet1", "B3", 19.9)
		f.SetCellValue("Sheet1", "C3", 3)
	})

	s, err := ReadXLSX(path)
	if err != nil {
		t.Fatalf("ReadXLSX() error: %v", err)
	}

	if len(s.Rows) < 3 {
		t.Fatalf("expected at least 3 rows, got %d", len(s.Rows))
	}
	if got := s.Rows[0].Cell(0); got.Kind != KindText {
		t.Errorf("A1 kind = %v, want KindText", got.Kind)
	}
	if !s.Rows[1].IsEmpty() {
		t.Errorf("row 2 should be empty")
	}
	if got := s.Rows[2].Cell(1); got.Kind != KindNumber || got.Number != 19.9 {
		t.Errorf("B3 = %+v, want number 19.9", got)
	}
	if got := s.Rows[2].Cell(2); got.Kind != KindNumber || got.Number != 3 {
		t.Errorf("C3 = %+v, want number 3", got)
	}
}

// A native date cell round-trips through the raw serial value into the
// calendar date that was written.
func TestReadXLSXDateRoundTrip(t *testing.T) {
	written := time.Date(2024, time.January, 15, 14, 30, 0, 0, time.UTC)
	path := writeFixture(t, func(f *excelize.File) {
		f.SetCellValue("Sheet1", "A1", written)
	})

	s, err := ReadXLSX(path)
	if err != nil {
		t.Fatalf("ReadXLSX() error: %v", err)
	}

	cell := s.Rows[0].Cell(0)
	if cell.Kind != KindNumber {
		t.Fatalf("date cell kind = %v, want KindNumber (raw serial)", cell.Kind)
	}

	got, err := NormalizeDate(cell)
	if err != nil {
		t.Fatalf("NormalizeDate() error: %v", err)
	}
	want := DateOf(written)
	if got != want {
		t.Errorf("round-tripped date = %v, want %v", got, want)
	}
}

func TestReadXLSXMissingFile(t *testing.T) {
	if _, err := ReadXLSX(filepath.Join(t.TempDir(), "nope.xlsx")); err == nil {
		t.Error("expected an error for a missing file")
	}
}
