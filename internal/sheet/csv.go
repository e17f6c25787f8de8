// =============================================================================
// Sales Bonus Analyzer - CSV Reader
// =============================================================================
//
// Some registers export CSV instead of a workbook. This module reads such
// a file into the same sheet model the XLSX reader produces, so the rest
// of the pipeline is oblivious to the source format. Cells are classified
// the same way: numeric-looking fields become numbers, everything else
// stays text, and the header locator still has to find the real header
// row among whatever decoration precedes it.
//
// The file is parsed line by line rather than in one ReadAll pass, because
// the bulk reader drops blank lines. Blank lines must survive as empty
// rows: a sheet row index has to match the line number of the file, or the
// skipped-row log and the inspect output point at the wrong lines.
//
// =============================================================================

package sheet

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ReadCSV reads a delimited text export into a Sheet. Blank lines become
// empty rows, keeping row indices aligned with the file's line numbers.
func ReadCSV(path string, delimiter rune) (*Sheet, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	s := &Sheet{Name: filepath.Base(path)}

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			s.Rows = append(s.Rows, Row{})
			continue
		}

		reader := csv.NewReader(strings.NewReader(line))
		reader.Comma = delimiter
		// Export rows are ragged and occasionally carry stray quotes.
		reader.FieldsPerRecord = -1
		reader.LazyQuotes = true

		record, err := reader.Read()
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV line %d: %w", len(s.Rows)+1, err)
		}

		row := make(Row, len(record))
		for i, field := range record {
			row[i] = Classify(field)
		}
		s.Rows = append(s.Rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	return s, nil
}
