// Package schedule holds the parsed yearly prayer-time table for one zone.
//
// A Schedule is built once from the raw CSV feed and never mutated; a new
// load replaces it wholesale in the Store. Lookups are by calendar date.
package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Malaysia is the zone every JAKIM table is published in. It has a single
// offset and no daylight saving.
var Malaysia = time.FixedZone("MYT", 8*60*60)

// Date is a calendar day with no time-of-day or zone attached.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the calendar date of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// IsZero reports whether d is the zero Date (an unparsed row date).
func (d Date) IsZero() bool {
	return d == Date{}
}

// AddDays returns the date n days after d, crossing month and year ends.
func (d Date) AddDays(n int) Date {
	return DateOf(time.Date(d.Year, d.Month, d.Day+n, 12, 0, 0, 0, time.UTC))
}

// At anchors a wall-clock time to this date in loc.
func (d Date) At(hour, min int, loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, hour, min, 0, 0, loc)
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// ParseDate parses either "DD/MM/YYYY" or "YYYY-MM-DD".
// Single-digit day and month parts are accepted in both forms.
func ParseDate(raw string) (Date, error) {
	s := strings.TrimSpace(raw)

	var parts []string
	var dayFirst bool
	switch {
	case strings.Contains(s, "/"):
		parts = strings.Split(s, "/")
		dayFirst = true
	case strings.Contains(s, "-"):
		parts = strings.Split(s, "-")
	default:
		return Date{}, fmt.Errorf("invalid date %q: expected DD/MM/YYYY or YYYY-MM-DD", raw)
	}
	if len(parts) != 3 {
		return Date{}, fmt.Errorf("invalid date %q: expected three parts", raw)
	}

	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return Date{}, fmt.Errorf("invalid date %q: %w", raw, err)
		}
		nums[i] = n
	}

	d := Date{Year: nums[0], Month: time.Month(nums[1]), Day: nums[2]}
	if dayFirst {
		d = Date{Year: nums[2], Month: time.Month(nums[1]), Day: nums[0]}
	}

	// time.Date normalises 31/02 into March; reject anything that moved.
	if d.Month < time.January || d.Month > time.December ||
		DateOf(time.Date(d.Year, d.Month, d.Day, 12, 0, 0, 0, time.UTC)) != d {
		return Date{}, fmt.Errorf("invalid date %q: day out of range", raw)
	}

	return d, nil
}
