package report

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/eshel-dev/salesbonus/internal/aggregate"
	"github.com/eshel-dev/salesbonus/internal/bonus"
	"github.com/eshel-dev/salesbonus/internal/config"
	"github.com/eshel-dev/salesbonus/internal/sheet"
)

var wording = config.ReportStrings{
	SummaryTitle:  "Bonus Summary",
	DateHeader:    "Date",
	AverageHeader: "Average",
	TotalHeader:   "Total",
}

func d(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func testStats() *aggregate.DailyStats {
	feb13 := sheet.Date{Year: 2024, Month: time.February, Day: 13}
	feb14 := sheet.Date{Year: 2024, Month: time.February, Day: 14}
	return &aggregate.DailyStats{
		Totals: map[string]map[sheet.Date][]decimal.Decimal{
			"Dana": {
				feb13: {d(250), d(800)},
				feb14: {d(100)},
			},
			"Omer": {
				feb13: {d(90)},
			},
		},
		Counts: map[string]map[sheet.Date]int{
			"Dana": {feb13: 2, feb14: 1},
			"Omer": {feb13: 1},
		},
	}
}

func TestBuildText(t *testing.T) {
	totals := bonus.Totals{"Dana": d(65), "Omer": d(0)}
	breakdown := bonus.Breakdown{
		"Dana": {
			"over 400": d(20),
			"over 700": d(10),
			"average":  d(35),
		},
	}

	out := BuildText(totals, breakdown, testStats(), "₪", wording)

	for _, want := range []string{
		"Bonus Summary\n" + strings.Repeat("=", 50),
		"Dana: 65.00 ₪",
		"over 400: 20.00 ₪",
		"over 700: 10.00 ₪",
		"average: 35.00 ₪",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q\n%s", want, out)
		}
	}

	// Omer earned no bonus: no summary line, no breakdown section, but
	// still a daily table.
	if strings.Contains(out, "Omer: 0.00") {
		t.Error("zero-bonus employee should not appear in the summary")
	}
	if strings.Contains(out, "Omer\n"+strings.Repeat("-", 50)) {
		t.Error("employee without categories should have no breakdown section")
	}
	if !strings.Contains(out, "Omer\n"+strings.Repeat("=", 50)) {
		t.Error("every employee should have a daily table")
	}

	// Day rows are ascending: 13.02 before 14.02, average then total.
	idx13 := strings.Index(out, "13.02")
	idx14 := strings.Index(out, "14.02")
	if idx13 < 0 || idx14 < 0 || idx14 < idx13 {
		t.Errorf("day rows out of order: 13.02 at %d, 14.02 at %d", idx13, idx14)
	}
	if !strings.Contains(out, "525.00") {
		t.Error("13.02 average 525.00 missing")
	}
	if !strings.Contains(out, "1050.00") {
		t.Error("13.02 total 1050.00 missing")
	}
}

func TestBuildTextDeterministic(t *testing.T) {
	totals := bonus.Totals{"Dana": d(65), "Omer": d(0)}
	breakdown := bonus.Breakdown{"Dana": {"over 400": d(20)}}
	stats := testStats()

	first := BuildText(totals, breakdown, stats, "₪", wording)
	for i := 0; i < 10; i++ {
		if got := BuildText(totals, breakdown, stats, "₪", wording); got != first {
			t.Fatal("report output is not deterministic")
		}
	}
}

func TestBuildSummary(t *testing.T) {
	totals := bonus.Totals{"Dana": d(65), "Omer": d(0)}
	rows := BuildSummary(totals, testStats())

	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}

	// Sorted by bonus descending.
	if rows[0].Employee != "Dana" || rows[1].Employee != "Omer" {
		t.Errorf("row order = [%s %s], want [Dana Omer]", rows[0].Employee, rows[1].Employee)
	}

	dana := rows[0]
	if !dana.TotalSales.Equal(d(1150)) {
		t.Errorf("Dana sales = %s, want 1150", dana.TotalSales)
	}
	if dana.Transactions != 3 {
		t.Errorf("Dana transactions = %d, want 3", dana.Transactions)
	}
	if want := decimal.NewFromFloat(1150.0 / 3); !dana.AveragePerSale.Sub(want).Abs().LessThan(decimal.NewFromFloat(0.01)) {
		t.Errorf("Dana average = %s, want ~%s", dana.AveragePerSale, want)
	}
}

func TestBuildSummaryTieBreaksOnName(t *testing.T) {
	totals := bonus.Totals{"Dana": d(10), "Omer": d(10)}
	rows := BuildSummary(totals, testStats())

	if rows[0].Employee != "Dana" || rows[1].Employee != "Omer" {
		t.Errorf("equal bonuses should sort by name, got [%s %s]",
			rows[0].Employee, rows[1].Employee)
	}
}

func TestBuildEmployeeDaily(t *testing.T) {
	rows := BuildEmployeeDaily("Dana", testStats())

	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}

	// Most recent day first.
	if rows[0].Date != "14.02.2024" || rows[1].Date != "13.02.2024" {
		t.Errorf("day order = [%s %s], want most recent first", rows[0].Date, rows[1].Date)
	}
	if !rows[1].Total.Equal(d(1050)) {
		t.Errorf("13.02 total = %s, want 1050", rows[1].Total)
	}
	if rows[1].Transactions != 2 {
		t.Errorf("13.02 transactions = %d, want 2", rows[1].Transactions)
	}
	if !rows[1].Average.Equal(d(525)) {
		t.Errorf("13.02 average = %s, want 525", rows[1].Average)
	}
}

func TestBuildEmployeeDailyUnknownEmployee(t *testing.T) {
	if rows := BuildEmployeeDaily("Nobody", testStats()); len(rows) != 0 {
		t.Errorf("unknown employee should yield no rows, got %d", len(rows))
	}
}
