package schedule

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"
)

// PrayerCount is the number of timed columns every row carries, in the fixed
// order Imsak, Subuh, Syuruk, Zohor, Asar, Maghrib, Isyak.
const PrayerCount = 7

// DefaultTimeColumn is where Imsak sits in the JAKIM export
// (Tarikh Miladi, Tarikh Hijri, Hari, Imsak, ...).
const DefaultTimeColumn = 3

// Layout describes where the prayer columns live in a feed row.
type Layout struct {
	// TimeColumn is the 0-based index of the Imsak cell.
	TimeColumn int
}

// DefaultLayout returns the layout of the JAKIM yearly CSV files.
func DefaultLayout() Layout {
	return Layout{TimeColumn: DefaultTimeColumn}
}

// Row is one calendar day of the feed.
type Row struct {
	// Fields are the trimmed cells exactly as displayed.
	Fields []string
	// Date is zero when the first cell did not parse.
	Date Date
	// Times holds the raw prayer tokens; a missing cell is "".
	Times [PrayerCount]string
}

// HasDate reports whether the row's date cell parsed.
func (r Row) HasDate() bool {
	return !r.Date.IsZero()
}

// Text is the concatenation of every displayed cell.
func (r Row) Text() string {
	return strings.Join(r.Fields, "")
}

// Schedule is an immutable, ordered set of rows with a date index.
type Schedule struct {
	Zone string
	Rows []Row

	byDate map[Date]int
}

// New builds a Schedule from rows, indexing them by date.
// When two rows share a date the first one wins.
func New(zone string, rows []Row) *Schedule {
	s := &Schedule{Zone: zone, Rows: rows, byDate: make(map[Date]int, len(rows))}
	for i, r := range rows {
		if !r.HasDate() {
			continue
		}
		if _, dup := s.byDate[r.Date]; !dup {
			s.byDate[r.Date] = i
		}
	}
	return s
}

// Day returns the row for date d.
func (s *Schedule) Day(d Date) (Row, bool) {
	if s == nil {
		return Row{}, false
	}
	i, ok := s.byDate[d]
	if !ok {
		return Row{}, false
	}
	return s.Rows[i], true
}

// Len returns the number of rows, including undated ones.
func (s *Schedule) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Rows)
}

// Year returns the year of the first dated row, or 0 if none parsed.
func (s *Schedule) Year() int {
	if s == nil {
		return 0
	}
	for _, r := range s.Rows {
		if r.HasDate() {
			return r.Date.Year
		}
	}
	return 0
}

// Decode reads a CSV feed: the first line is a header and is discarded,
// blank lines are skipped, and each remaining line is split on ',' with
// every cell trimmed.
func Decode(zone string, r io.Reader, layout Layout) (*Schedule, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var rows []Row
	header := true
	for sc.Scan() {
		line := sc.Text()
		if header {
			header = false
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		rows = append(rows, parseRow(line, layout))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read schedule for %s: %w", zone, err)
	}

	return New(zone, rows), nil
}

// DecodeBytes is Decode over an in-memory body.
func DecodeBytes(zone string, body []byte, layout Layout) (*Schedule, error) {
	return Decode(zone, bytes.NewReader(body), layout)
}

func parseRow(line string, layout Layout) Row {
	cells := strings.Split(line, ",")
	for i := range cells {
		cells[i] = strings.TrimSpace(cells[i])
	}

	row := Row{Fields: cells}
	if d, err := ParseDate(cells[0]); err == nil {
		row.Date = d
	}
	for i := 0; i < PrayerCount; i++ {
		col := layout.TimeColumn + i
		if col >= 0 && col < len(cells) {
			row.Times[i] = cells[col]
		}
	}
	return row
}
