// =============================================================================
// Sales Bonus Analyzer - Report Formatter
// =============================================================================
//
// This module renders the aggregated results into the text report the
// store owner reads, plus tabular summary rows for any front end that
// wants to display tables instead of text.
//
// Everything here is a pure function of its inputs: no I/O, no hidden
// state. The same inputs always produce byte-identical output — employees
// are rendered in sorted order and dates ascending, because map iteration
// order is not a layout engine.
//
// The text layout deliberately mirrors the legacy report: 50-character
// section rules, tab-separated day tables, two-decimal amounts with the
// currency symbol trailing.
//
// =============================================================================

package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/eshel-dev/salesbonus/internal/aggregate"
	"github.com/eshel-dev/salesbonus/internal/bonus"
	"github.com/eshel-dev/salesbonus/internal/config"
)

const ruleWidth = 50

// =============================================================================
// TEXT REPORT
// =============================================================================

// BuildText renders the full text report: the overall bonus summary
// (employees who earned a bonus), one category breakdown section per
// earning employee, and one day-by-day table per employee with dates
// ascending.
func BuildText(totals bonus.Totals, breakdown bonus.Breakdown, stats *aggregate.DailyStats, currency string, wording config.ReportStrings) string {
	var b strings.Builder
	employees := stats.Employees()

	// Overall summary. Employees who earned nothing are left out, as in
	// the legacy report; their daily tables below still show the sales.
	b.WriteString(wording.SummaryTitle + "\n")
	b.WriteString(strings.Repeat("=", ruleWidth) + "\n")
	for _, emp := range employees {
		if total := totals[emp]; !total.IsZero() {
			fmt.Fprintf(&b, "%s: %s %s\n", emp, total.StringFixed(2), currency)
		}
	}
	b.WriteString("\n")

	// Per-employee category breakdown.
	for _, emp := range employees {
		categories := breakdown[emp]
		if len(categories) == 0 {
			continue
		}
		b.WriteString(emp + "\n")
		b.WriteString(strings.Repeat("-", ruleWidth) + "\n")
		for _, cat := range sortedCategories(categories) {
			fmt.Fprintf(&b, "%s: %s %s\n", cat, categories[cat].StringFixed(2), currency)
		}
		b.WriteString("\n")
	}

	// Per-employee daily tables.
	for _, emp := range employees {
		b.WriteString(emp + "\n")
		b.WriteString(strings.Repeat("=", ruleWidth) + "\n")
		fmt.Fprintf(&b, "%-10s\t%-15s\t%s\n",
			wording.DateHeader, wording.AverageHeader, wording.TotalHeader)
		b.WriteString(strings.Repeat("=", ruleWidth) + "\n")

		for _, date := range stats.DatesFor(emp) {
			total := sumDay(stats.Totals[emp][date])
			avg := dayAverage(total, stats.Counts[emp][date])
			fmt.Fprintf(&b, "%-10s\t%12s\t\t%10s\n",
				date.Format("02.01"), avg.StringFixed(2), total.StringFixed(2))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// =============================================================================
// TABULAR SUMMARIES
// =============================================================================

// SummaryRow is one employee's totals for the summary table.
type SummaryRow struct {
	Employee       string
	TotalBonus     decimal.Decimal
	TotalSales     decimal.Decimal
	Transactions   int
	AveragePerSale decimal.Decimal
}

// BuildSummary produces one row per employee, sorted by total bonus
// descending with the employee name as tie-break.
func BuildSummary(totals bonus.Totals, stats *aggregate.DailyStats) []SummaryRow {
	rows := make([]SummaryRow, 0, len(stats.Totals))

	for _, emp := range stats.Employees() {
		sales := decimal.Zero
		var count int
		for date, dayTotals := range stats.Totals[emp] {
			sales = sales.Add(sumDay(dayTotals))
			count += stats.Counts[emp][date]
		}

		rows = append(rows, SummaryRow{
			Employee:       emp,
			TotalBonus:     totals[emp],
			TotalSales:     sales,
			Transactions:   count,
			AveragePerSale: dayAverage(sales, count),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].TotalBonus.Equal(rows[j].TotalBonus) {
			return rows[i].TotalBonus.GreaterThan(rows[j].TotalBonus)
		}
		return rows[i].Employee < rows[j].Employee
	})
	return rows
}

// DailyRow is one day of one employee's performance.
type DailyRow struct {
	Date         string
	Total        decimal.Decimal
	Transactions int
	Average      decimal.Decimal
}

// BuildEmployeeDaily produces the employee's day rows, most recent day
// first. An unknown employee yields no rows.
func BuildEmployeeDaily(employee string, stats *aggregate.DailyStats) []DailyRow {
	dates := stats.DatesFor(employee)
	rows := make([]DailyRow, 0, len(dates))

	// DatesFor is ascending; walk it backwards.
	for i := len(dates) - 1; i >= 0; i-- {
		date := dates[i]
		total := sumDay(stats.Totals[employee][date])
		count := stats.Counts[employee][date]
		rows = append(rows, DailyRow{
			Date:         date.Format("02.01.2006"),
			Total:        total,
			Transactions: count,
			Average:      dayAverage(total, count),
		})
	}
	return rows
}

// =============================================================================
// HELPERS
// =============================================================================

func sumDay(totals []decimal.Decimal) decimal.Decimal {
	sum := decimal.Zero
	for _, t := range totals {
		sum = sum.Add(t)
	}
	return sum
}

// dayAverage guards the zero-count case: a day with no transactions
// averages to zero rather than dividing by zero.
func dayAverage(total decimal.Decimal, count int) decimal.Decimal {
	if count == 0 {
		return decimal.Zero
	}
	return total.Div(decimal.NewFromInt(int64(count)))
}

func sortedCategories(categories map[string]decimal.Decimal) []string {
	keys := make([]string, 0, len(categories))
	for k := range categories {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
