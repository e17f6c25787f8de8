// =============================================================================
// Sales Bonus Analyzer - Date Normalization
// =============================================================================
//
// Register exports encode transaction dates inconsistently: some cells are
// native date-times, some are raw spreadsheet serial numbers, and some are
// free text in one of a few layouts. NormalizeDate folds all of them into
// a single calendar-date type or an explicit decode failure. Callers treat
// failure as "skip this row" — a malformed date is expected noise in a
// real export, never a reason to abort.
//
// =============================================================================

package sheet

import (
	"errors"
	"math"
	"time"
)

// ErrNoDate is returned when a cell does not hold a recognizable date.
var ErrNoDate = errors.New("cell does not contain a recognizable date")

// serialEpoch is day zero of the spreadsheet serial date system.
// Using 1899-12-30 absorbs the historical leap-year quirk for every
// serial the register can actually produce.
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// textDateFormats are tried in order against free-text cells. The
// date-time layouts must come before the bare-date layouts: otherwise
// "13/02/2024 09:30" would fail the shorter parse and be dropped. Each
// padded layout is followed by a non-padded fallback, because the
// register writes "1/2/2024" as readily as "01/02/2024".
var textDateFormats = []string{
	"02/01/2006 15:04",
	"2/1/2006 15:04",
	"2006-01-02",
	"2006-1-2",
	"02/01/2006",
	"2/1/2006",
}

// Date is a calendar date. It is comparable, so it serves directly as a
// map key for the per-day aggregation.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf truncates a time to its calendar date.
func DateOf(t time.Time) Date {
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// Time returns the date at midnight UTC.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// Before reports whether d comes before other.
func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// Format renders the date using a reference-time layout.
func (d Date) Format(layout string) string {
	return d.Time().Format(layout)
}

func (d Date) String() string {
	return d.Format("2006-01-02")
}

// NormalizeDate converts a cell into a calendar date.
//
// The rules are applied in priority order:
//  1. A native date-time cell contributes its date component.
//  2. A numeric cell is a spreadsheet serial day count; the fractional
//     time-of-day part is truncated.
//  3. A text cell is parsed against textDateFormats, first match wins.
//  4. Anything else fails with ErrNoDate.
//
// NormalizeDate never panics on malformed input.
func NormalizeDate(c Cell) (Date, error) {
	switch c.Kind {
	case KindTime:
		return DateOf(c.Time), nil

	case KindNumber:
		days := math.Floor(c.Number)
		if days < 0 || days > math.MaxInt32 {
			return Date{}, ErrNoDate
		}
		return DateOf(serialEpoch.AddDate(0, 0, int(days))), nil

	case KindText:
		for _, layout := range textDateFormats {
			if t, err := time.Parse(layout, c.String()); err == nil {
				return DateOf(t), nil
			}
		}
		return Date{}, ErrNoDate

	default:
		return Date{}, ErrNoDate
	}
}
