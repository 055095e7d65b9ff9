// Package age turns an extracted photo date into the label stamped onto the
// photo: either a baby-age description measured against a reference birth
// date, or a plain timestamp.
package age

import (
	"fmt"
	"time"

	"github.com/Nomadcxx/photostamp/internal/dateparse"
)

// Calculator describes photo dates relative to a reference (birth) date.
// The reference is injected rather than hardcoded so tests and multi-child
// setups can supply their own.
type Calculator struct {
	Reference dateparse.Date
}

// NewCalculator returns a Calculator anchored at the given reference date.
func NewCalculator(reference dateparse.Date) Calculator {
	return Calculator{Reference: reference}
}

// Describe renders the age label for a photo date.
//
// Dates before the reference yield "距离出生N天". Dates on or after it are
// described as months plus days using calendar alignment: "1 month" always
// means the same day-of-month one month later, so a negative day delta
// borrows the full length of the month preceding the photo month (repeating
// while it stays negative), and a negative month delta borrows a year.
func (c Calculator) Describe(d dateparse.Date) string {
	if before(d, c.Reference) {
		return fmt.Sprintf("距离出生%d天", daysBetween(d, c.Reference))
	}

	years := d.Year - c.Reference.Year
	months := d.Month - c.Reference.Month
	days := d.Day - c.Reference.Day

	// A single borrow covers references up to day 28; a reference on the
	// 29th-31st followed by a short month (March 1 after a Jan 31 birth)
	// needs another, so keep borrowing until the day count is whole.
	prevMonth, prevYear := d.Month, d.Year
	for days < 0 {
		months--
		prevMonth--
		if prevMonth == 0 {
			prevMonth, prevYear = 12, prevYear-1
		}
		days += daysInMonth(prevYear, prevMonth)
	}

	for months < 0 {
		months += 12
		years--
	}

	totalMonths := years*12 + months

	switch {
	case totalMonths == 0:
		return fmt.Sprintf("%d天", days)
	case days == 0:
		return fmt.Sprintf("%d个月", totalMonths)
	default:
		return fmt.Sprintf("%d个月%d天", totalMonths, days)
	}
}

// Timestamp renders the extracted date verbatim as "YYYY.MM.DD".
func Timestamp(d dateparse.Date) string {
	return d.String()
}

// daysInMonth returns the length of a month, with the Gregorian leap rule
// applied to February.
func daysInMonth(year, month int) int {
	switch month {
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	case 4, 6, 9, 11:
		return 30
	default:
		if isLeap(year) {
			return 29
		}
		return 28
	}
}

func isLeap(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

// before reports whether a sorts earlier than b as whole calendar dates.
func before(a, b dateparse.Date) bool {
	return midnight(a).Before(midnight(b))
}

// daysBetween counts whole days from a to b.
func daysBetween(a, b dateparse.Date) int {
	return int(midnight(b).Sub(midnight(a)).Hours() / 24)
}

// midnight anchors a date at 00:00 UTC. time.Date normalizes out-of-range
// days (extraction allows e.g. April 31), keeping the day arithmetic total.
func midnight(d dateparse.Date) time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
}
