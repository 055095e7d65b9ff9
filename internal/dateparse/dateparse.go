// Package dateparse recovers calendar dates embedded in photo filenames.
//
// Matching runs an ordered rule list: delimited triples ("2022.09.21",
// "2022-09-21", "2022_09_21") are considered more reliable and win over
// contiguous digit runs ("IMG_xxx20250904"). Each rule takes the leftmost
// textual occurrence in the name.
package dateparse

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// Date is a plain year/month/day value. Fields are range-checked on
// extraction (year 2000-2099, month 1-12, day 1-31) but never validated
// against the true length of the month, so values like April 31 pass.
type Date struct {
	Year  int
	Month int
	Day   int
}

// String renders the date as "YYYY.MM.DD" with zero-padded fields.
func (d Date) String() string {
	return fmt.Sprintf("%04d.%02d.%02d", d.Year, d.Month, d.Day)
}

var (
	// Year, then month and day, each separated by one of . - _ (the two
	// separators need not be the same character).
	delimitedRegex = regexp.MustCompile(`(\d{4})[.\-_](\d{2})[.\-_](\d{2})`)

	// Years 2020-2099 immediately followed by four digits read as MMDD.
	contiguousRegex = regexp.MustCompile(`(20[2-9]\d)(\d{4})`)
)

// rule matches one filename date shape. Rules are evaluated in order and
// the first rule whose leftmost match passes range validation wins; a rule
// whose match fails validation does not keep searching, the next rule runs.
type rule func(name string) (Date, bool)

var rules = []rule{
	matchDelimited,
	matchContiguous,
}

// Extract parses a filename (extension included or not) into the date it
// embeds. The second return is false when no rule matched or the matched
// numbers were out of range.
func Extract(filename string) (Date, bool) {
	base := filepath.Base(filename)
	name := strings.TrimSuffix(base, filepath.Ext(base))

	for _, match := range rules {
		if d, ok := match(name); ok {
			return d, true
		}
	}

	return Date{}, false
}

func matchDelimited(name string) (Date, bool) {
	m := delimitedRegex.FindStringSubmatch(name)
	if m == nil {
		return Date{}, false
	}

	d := Date{
		Year:  atoi(m[1]),
		Month: atoi(m[2]),
		Day:   atoi(m[3]),
	}
	return d, valid(d)
}

func matchContiguous(name string) (Date, bool) {
	m := contiguousRegex.FindStringSubmatch(name)
	if m == nil {
		return Date{}, false
	}

	d := Date{
		Year:  atoi(m[1]),
		Month: atoi(m[2][:2]),
		Day:   atoi(m[2][2:]),
	}
	return d, valid(d)
}

// valid applies the coarse range checks. Day is only bounded by 31;
// whether the day exists in the specific month is deliberately not checked.
func valid(d Date) bool {
	if d.Year < 2000 || d.Year > 2099 {
		return false
	}
	if d.Month < 1 || d.Month > 12 {
		return false
	}
	if d.Day < 1 || d.Day > 31 {
		return false
	}
	return true
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
