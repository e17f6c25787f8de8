// =============================================================================
// Sales Bonus Analyzer - Transaction Aggregator
// =============================================================================
//
// This module turns raw export rows into per-employee, per-day sales
// statistics. The key subtlety is that the export is line-item grained:
// one invoice (one customer transaction) usually spans several rows. Line
// items are therefore grouped by (employee, date, invoice id) and summed
// into one transaction total before any per-day statistics exist.
//
// Row handling is deliberately lenient. Rows with an unparseable date, a
// missing employee or a missing unit price are skipped and accounted for,
// never treated as errors — real exports always contain subtotal rows,
// footer junk and half-filled lines.
//
// =============================================================================

package aggregate

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/eshel-dev/salesbonus/internal/config"
	"github.com/eshel-dev/salesbonus/internal/header"
	"github.com/eshel-dev/salesbonus/internal/sheet"
)

// =============================================================================
// DATA STRUCTURES
// =============================================================================

// LineItem is one raw data row after resolution: a quantity of a unit
// sold at a price, attributed to an employee, a date and an invoice.
// Line items are ephemeral — they exist only until invoice grouping.
type LineItem struct {
	Employee string
	Invoice  string
	Date     sheet.Date
	Amount   decimal.Decimal
}

// invoiceKey identifies the transaction a line item belongs to. Line
// items sharing a key are summed into exactly one transaction total.
type invoiceKey struct {
	Employee string
	Date     sheet.Date
	Invoice  string
}

// SkippedRow records one data row that was dropped during the scan,
// with the zero-based sheet row index and the reason.
type SkippedRow struct {
	Row    int
	Reason string
}

// Skip reasons.
const (
	SkipBadDate         = "unparseable date"
	SkipMissingEmployee = "missing employee"
	SkipMissingPrice    = "missing unit price"
)

// DailyStats holds the aggregated per-employee, per-day statistics.
// It is mutated only while Aggregate runs and is immutable afterward.
type DailyStats struct {
	// Totals maps employee → date → the transaction totals of that day.
	// One entry per distinct invoice, regardless of line item count.
	Totals map[string]map[sheet.Date][]decimal.Decimal

	// Counts maps employee → date → number of transactions that day.
	Counts map[string]map[sheet.Date]int

	// Skipped lists the data rows dropped during the scan.
	Skipped []SkippedRow

	// RowsScanned is the number of data rows inspected below the header.
	RowsScanned int

	// LineItems is the number of rows that contributed a line item.
	LineItems int
}

// Employees returns the employees in sorted order.
func (s *DailyStats) Employees() []string {
	emps := make([]string, 0, len(s.Totals))
	for emp := range s.Totals {
		emps = append(emps, emp)
	}
	sort.Strings(emps)
	return emps
}

// DatesFor returns the employee's active dates in ascending order.
func (s *DailyStats) DatesFor(employee string) []sheet.Date {
	daily := s.Totals[employee]
	dates := make([]sheet.Date, 0, len(daily))
	for d := range daily {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

// TransactionCount returns the total number of transactions across all
// employees and days.
func (s *DailyStats) TransactionCount() int {
	var n int
	for _, daily := range s.Counts {
		for _, cnt := range daily {
			n += cnt
		}
	}
	return n
}

// =============================================================================
// AGGREGATION
// =============================================================================

// Aggregate scans the data rows strictly below the header row and builds
// the per-employee, per-day statistics.
//
// For each row it resolves employee, invoice id, raw date and unit price
// through the column map, plus the quantity when that column exists
// (quantity defaults to 1 when the column is absent or the cell is empty
// or zero). The line amount is unit price × quantity. After the scan,
// every (employee, date, invoice) group is folded into one transaction
// total.
func Aggregate(s *sheet.Sheet, headerRow int, cols header.ColumnMap, labels config.ColumnLabels) *DailyStats {
	stats := &DailyStats{
		Totals: make(map[string]map[sheet.Date][]decimal.Decimal),
		Counts: make(map[string]map[sheet.Date]int),
	}

	invoiceIdx := cols[labels.Invoice]
	employeeIdx := cols[labels.Employee]
	dateIdx := cols[labels.Date]
	priceIdx := cols[labels.UnitPrice]
	quantityIdx, hasQuantity := cols[labels.Quantity]

	// Line items grouped by invoice key, keeping first-seen key order so
	// the per-day totals lists come out deterministic.
	lines := make(map[invoiceKey][]decimal.Decimal)
	var keyOrder []invoiceKey

	for i := headerRow + 1; i < len(s.Rows); i++ {
		row := s.Rows[i]
		if row.IsEmpty() {
			continue
		}
		stats.RowsScanned++

		date, err := sheet.NormalizeDate(row.Cell(dateIdx))
		if err != nil {
			stats.skip(i, SkipBadDate)
			continue
		}

		employee := row.Cell(employeeIdx).String()
		if employee == "" {
			stats.skip(i, SkipMissingEmployee)
			continue
		}

		priceCell := row.Cell(priceIdx)
		if priceCell.Kind != sheet.KindNumber {
			stats.skip(i, SkipMissingPrice)
			continue
		}
		unitPrice := decimal.NewFromFloat(priceCell.Number)

		quantity := decimal.NewFromInt(1)
		if hasQuantity {
			if q := row.Cell(quantityIdx); q.Kind == sheet.KindNumber && q.Number != 0 {
				quantity = decimal.NewFromFloat(q.Number)
			}
		}

		key := invoiceKey{
			Employee: employee,
			Date:     date,
			Invoice:  row.Cell(invoiceIdx).String(),
		}
		if _, seen := lines[key]; !seen {
			keyOrder = append(keyOrder, key)
		}
		lines[key] = append(lines[key], unitPrice.Mul(quantity))
		stats.LineItems++
	}

	// Fold each invoice into one transaction total.
	for _, key := range keyOrder {
		total := decimal.Zero
		for _, amount := range lines[key] {
			total = total.Add(amount)
		}

		if stats.Totals[key.Employee] == nil {
			stats.Totals[key.Employee] = make(map[sheet.Date][]decimal.Decimal)
			stats.Counts[key.Employee] = make(map[sheet.Date]int)
		}
		stats.Totals[key.Employee][key.Date] = append(stats.Totals[key.Employee][key.Date], total)
		stats.Counts[key.Employee][key.Date]++
	}

	return stats
}

func (s *DailyStats) skip(row int, reason string) {
	s.Skipped = append(s.Skipped, SkippedRow{Row: row, Reason: reason})
}
