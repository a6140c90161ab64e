package schedule

import (
	"strings"
	"testing"
	"time"
)

const sampleCSV = `Tarikh Miladi,Tarikh Hijri,Hari,Imsak,Subuh,Syuruk,Zohor,Asar,Maghrib,Isyak
01/01/2025,01-Rejab-1446,Rabu,5:52 AM,6:02 AM,7:13 AM,1:17 PM,4:41 PM,7:17 PM,8:32 PM

2025-01-02,02-Rejab-1446,Khamis,5:53 AM,6:03 AM,7:14 AM,1:17 PM,4:41 PM,7:18 PM,8:32 PM
not-a-date,x,y,5:53 AM
`

// ---------------------------------------------------------------------------
// ParseDate
// ---------------------------------------------------------------------------

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    Date
		wantErr bool
	}{
		{"day first", "01/02/2025", Date{2025, time.February, 1}, false},
		{"year first", "2025-02-01", Date{2025, time.February, 1}, false},
		{"single digits", "1/2/2025", Date{2025, time.February, 1}, false},
		{"padded", "  31/12/2025 ", Date{2025, time.December, 31}, false},
		{"leap day", "29/02/2024", Date{2024, time.February, 29}, false},
		{"non leap day", "29/02/2025", Date{}, true},
		{"month 13", "2025-13-01", Date{}, true},
		{"two parts", "01/2025", Date{}, true},
		{"no separator", "20250101", Date{}, true},
		{"letters", "aa/bb/cccc", Date{}, true},
		{"empty", "", Date{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseDate(%q) expected error, got %v", tt.raw, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDate(%q) unexpected error: %v", tt.raw, err)
			}
			if got != tt.want {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestDate_AddDays(t *testing.T) {
	tests := []struct {
		from Date
		n    int
		want Date
	}{
		{Date{2025, time.January, 31}, 1, Date{2025, time.February, 1}},
		{Date{2025, time.December, 31}, 1, Date{2026, time.January, 1}},
		{Date{2024, time.February, 28}, 1, Date{2024, time.February, 29}},
		{Date{2025, time.March, 1}, -1, Date{2025, time.February, 28}},
	}
	for _, tt := range tests {
		if got := tt.from.AddDays(tt.n); got != tt.want {
			t.Errorf("%v.AddDays(%d) = %v, want %v", tt.from, tt.n, got, tt.want)
		}
	}
}

func TestDateOf_UsesLocation(t *testing.T) {
	kl := time.FixedZone("MYT", 8*3600)
	// 2025-01-01 20:00 UTC is already Jan 2 in Kuala Lumpur.
	instant := time.Date(2025, 1, 1, 20, 0, 0, 0, time.UTC).In(kl)
	if got := DateOf(instant); got != (Date{2025, time.January, 2}) {
		t.Errorf("DateOf = %v, want 2025-01-02", got)
	}
}

// ---------------------------------------------------------------------------
// ParseClock
// ---------------------------------------------------------------------------

func TestParseClock(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantH   int
		wantM   int
		wantErr bool
	}{
		{"midnight", "12:00 AM", 0, 0, false},
		{"noon", "12:00 PM", 12, 0, false},
		{"afternoon", "1:05 PM", 13, 5, false},
		{"last minute", "11:59 PM", 23, 59, false},
		{"morning two digit hour", "05:52 AM", 5, 52, false},
		{"lower case meridiem", "7:13 am", 7, 13, false},
		{"extra spaces", "  7:13   PM ", 19, 13, false},
		{"missing meridiem", "7:13", 0, 0, true},
		{"24 hour form", "19:13 PM", 0, 0, true},
		{"hour zero", "0:30 AM", 0, 0, true},
		{"one digit minute", "7:3 AM", 0, 0, true},
		{"minute 60", "7:60 AM", 0, 0, true},
		{"bad meridiem", "7:13 XM", 0, 0, true},
		{"column label", "Imsak", 0, 0, true},
		{"empty", "", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseClock(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseClock(%q) expected error, got %+v", tt.raw, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseClock(%q) unexpected error: %v", tt.raw, err)
			}
			if got.Hour != tt.wantH || got.Minute != tt.wantM {
				t.Errorf("ParseClock(%q) = %02d:%02d, want %02d:%02d",
					tt.raw, got.Hour, got.Minute, tt.wantH, tt.wantM)
			}
		})
	}
}

func TestClock_RoundTrip(t *testing.T) {
	for _, raw := range []string{"12:00 AM", "12:00 PM", "1:05 PM", "11:59 PM", "5:52 AM"} {
		c, err := ParseClock(raw)
		if err != nil {
			t.Fatalf("ParseClock(%q): %v", raw, err)
		}
		if got := c.String(); got != raw {
			t.Errorf("round trip %q -> %+v -> %q", raw, c, got)
		}
	}
}

func TestClock_On(t *testing.T) {
	c := Clock{Hour: 13, Minute: 17}
	got := c.On(Date{2025, time.January, 1}, time.UTC)
	want := time.Date(2025, 1, 1, 13, 17, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("On = %v, want %v", got, want)
	}
}

// ---------------------------------------------------------------------------
// Decode
// ---------------------------------------------------------------------------

func TestDecode(t *testing.T) {
	s, err := Decode("SGR01", strings.NewReader(sampleCSV), DefaultLayout())
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}

	if s.Len() != 3 {
		t.Fatalf("Len = %d, want 3 (header and blank line dropped)", s.Len())
	}
	if s.Zone != "SGR01" {
		t.Errorf("Zone = %q", s.Zone)
	}
	if s.Year() != 2025 {
		t.Errorf("Year = %d, want 2025", s.Year())
	}

	first := s.Rows[0]
	if first.Times[0] != "5:52 AM" || first.Times[6] != "8:32 PM" {
		t.Errorf("first row times = %v", first.Times)
	}
	if first.Fields[2] != "Rabu" {
		t.Errorf("fields not preserved: %v", first.Fields)
	}

	if s.Rows[2].HasDate() {
		t.Error("undated row should have a zero date")
	}
	if s.Rows[2].Times[1] != "" {
		t.Errorf("missing cell should be empty, got %q", s.Rows[2].Times[1])
	}
}

func TestDecode_CRLF(t *testing.T) {
	body := "h\r\n01/01/2025,a,b,5:52 AM\r\n"
	s, err := DecodeBytes("X", []byte(body), DefaultLayout())
	if err != nil {
		t.Fatalf("DecodeBytes: %v", err)
	}
	if s.Len() != 1 || s.Rows[0].Times[0] != "5:52 AM" {
		t.Errorf("unexpected rows: %+v", s.Rows)
	}
}

func TestDecode_CustomLayout(t *testing.T) {
	body := "Date,Imsak,Subuh\n01/01/2025,5:52 AM,6:02 AM\n"
	s, err := DecodeBytes("X", []byte(body), Layout{TimeColumn: 1})
	if err != nil {
		t.Fatalf("DecodeBytes: %v", err)
	}
	if got := s.Rows[0].Times[1]; got != "6:02 AM" {
		t.Errorf("Subuh = %q, want 6:02 AM", got)
	}
}

func TestDecode_HeaderOnly(t *testing.T) {
	s, err := DecodeBytes("X", []byte("only,a,header\n"), DefaultLayout())
	if err != nil {
		t.Fatalf("DecodeBytes: %v", err)
	}
	if s.Len() != 0 || s.Year() != 0 {
		t.Errorf("expected empty schedule, got %d rows", s.Len())
	}
}

func TestSchedule_Day(t *testing.T) {
	s, _ := Decode("SGR01", strings.NewReader(sampleCSV), DefaultLayout())

	row, ok := s.Day(Date{2025, time.January, 2})
	if !ok {
		t.Fatal("Day(2025-01-02) not found")
	}
	if row.Fields[2] != "Khamis" {
		t.Errorf("wrong row: %v", row.Fields)
	}

	if _, ok := s.Day(Date{2025, time.January, 3}); ok {
		t.Error("Day(2025-01-03) should be absent")
	}

	var nilSched *Schedule
	if _, ok := nilSched.Day(Date{2025, time.January, 1}); ok {
		t.Error("nil schedule should report no rows")
	}
}

func TestSchedule_DuplicateDateFirstWins(t *testing.T) {
	body := "h\n01/01/2025,first\n2025-01-01,second\n"
	s, _ := DecodeBytes("X", []byte(body), DefaultLayout())
	row, ok := s.Day(Date{2025, time.January, 1})
	if !ok || row.Fields[1] != "first" {
		t.Errorf("Day = %v, %v; want first row", row.Fields, ok)
	}
}

func TestRow_Text(t *testing.T) {
	r := Row{Fields: []string{"01/01/2025", "Rabu", "5:52 AM"}}
	if got := r.Text(); got != "01/01/2025Rabu5:52 AM" {
		t.Errorf("Text = %q", got)
	}
}
