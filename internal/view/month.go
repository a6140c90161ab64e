package view

import (
	"fmt"

	"github.com/smokyabdulrahman/waktu-solat/internal/schedule"
)

// MonthNames are the Malay month labels, indexed 0-11.
var MonthNames = [12]string{
	"Januari", "Februari", "Mac", "April", "Mei", "Jun",
	"Julai", "Ogos", "September", "Oktober", "November", "Disember",
}

// Cursor is the selected month inside the schedule's fixed year.
type Cursor struct {
	Year  int
	Month int // 0-11
}

// NewCursor starts at today's month when today falls in year, otherwise at
// January of year.
func NewCursor(year int, today schedule.Date) Cursor {
	if today.Year == year {
		return Cursor{Year: year, Month: int(today.Month) - 1}
	}
	return Cursor{Year: year}
}

// Navigate moves by delta months, clamping at January and December of the
// same year. It never wraps into an adjacent year.
func (c Cursor) Navigate(delta int) Cursor {
	c.Month = clampMonth(c.Month + delta)
	return c
}

// Set jumps to month (0-11), clamped.
func (c Cursor) Set(month int) Cursor {
	c.Month = clampMonth(month)
	return c
}

// Label renders e.g. "Oktober 2025".
func (c Cursor) Label() string {
	return fmt.Sprintf("%s %d", MonthNames[clampMonth(c.Month)], c.Year)
}

func clampMonth(m int) int {
	switch {
	case m < 0:
		return 0
	case m > 11:
		return 11
	default:
		return m
	}
}
