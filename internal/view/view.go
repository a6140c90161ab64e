// Package view derives which schedule rows are visible for a month and a
// free-text search. Everything here is a pure function of its inputs.
package view

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/smokyabdulrahman/waktu-solat/internal/prayer"
	"github.com/smokyabdulrahman/waktu-solat/internal/schedule"
)

// Filter selects rows by month (0-11) and optional search text.
type Filter struct {
	Month  int
	Search string
}

// Line is one visible row plus its presentation attributes.
type Line struct {
	Row   schedule.Row
	Today bool
}

// Apply returns the rows of s that pass both the month filter and the search
// filter, in schedule order. An empty search text disables the search filter.
func Apply(s *schedule.Schedule, f Filter, today schedule.Date) []Line {
	if s == nil {
		return nil
	}

	fold := cases.Fold()
	term := fold.String(f.Search)

	var lines []Line
	for _, r := range s.Rows {
		if !InMonth(r, f.Month) {
			continue
		}
		if term != "" && !strings.Contains(fold.String(r.Text()), term) {
			continue
		}
		lines = append(lines, Line{Row: r, Today: IsToday(r, today)})
	}
	return lines
}

// InMonth reports whether the row's date falls in month (0-11).
// Rows without a parsable date are never in any month.
func InMonth(r schedule.Row, month int) bool {
	return r.HasDate() && int(r.Date.Month)-1 == month
}

// IsToday reports whether the row is dated today.
func IsToday(r schedule.Row, today schedule.Date) bool {
	return r.HasDate() && r.Date == today
}

// TodayIndex returns the position of today's line, or -1.
func TodayIndex(lines []Line) int {
	for i, l := range lines {
		if l.Today {
			return i
		}
	}
	return -1
}

// defaultHeaders names the columns of the standard JAKIM export.
var defaultHeaders = []string{
	"Tarikh Miladi", "Tarikh Hijri", "Hari",
	"Imsak", "Subuh", "Syuruk", "Zohor", "Asar", "Maghrib", "Isyak",
}

// Headers returns column titles for a table of width columns read with
// layout. Column 0 is the date and the prayer columns sit at the layout's
// offset; anything else is left untitled unless the layout is the default.
func Headers(layout schedule.Layout, width int) []string {
	if width < layout.TimeColumn+schedule.PrayerCount {
		width = layout.TimeColumn + schedule.PrayerCount
	}
	out := make([]string, width)
	if layout == schedule.DefaultLayout() {
		copy(out, defaultHeaders)
		return out
	}
	out[0] = "Tarikh"
	for i, name := range prayer.Names {
		out[layout.TimeColumn+i] = name
	}
	return out
}

// Width returns the widest row in lines, in cells.
func Width(lines []Line) int {
	w := 0
	for _, l := range lines {
		if len(l.Row.Fields) > w {
			w = len(l.Row.Fields)
		}
	}
	return w
}

// Cells returns the row's cells padded to width.
func Cells(r schedule.Row, width int) []string {
	out := make([]string, width)
	copy(out, r.Fields)
	return out
}
