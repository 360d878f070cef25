package util

import (
	"time"
)

const layout = "2006-01-02"

func NewDate(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func DateLte(t1, t2 time.Time) bool {
	return t1.Before(t2) || t1.Format(layout) == t2.Format(layout)
}

// WholeMonthsBetween counts complete calendar months from `from` to `to`.
// The month only counts once the day-of-month comes around, so
// Jan 15 -> Mar 14 is 1 and Jan 15 -> Mar 15 is 2. Negative when `to`
// precedes `from`.
func WholeMonthsBetween(from, to time.Time) int {
	months := (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
	if to.Day() < from.Day() {
		months--
	}
	return months
}

// MonthKey buckets a date into its calendar month. Keys sort
// chronologically as strings.
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// MonthStart normalizes a date to the first of its calendar month. Month
// arithmetic anchored here can't overflow short months: May 31 minus three
// months must land in February, not slide into March.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
