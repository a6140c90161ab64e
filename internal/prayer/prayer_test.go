package prayer

import (
	"testing"
	"time"

	"github.com/smokyabdulrahman/waktu-solat/internal/schedule"
)

var kl = time.FixedZone("MYT", 8*3600)

// at builds an instant on 2025-01-<day> in Kuala Lumpur time.
func at(t *testing.T, day, hour, min, sec int) time.Time {
	t.Helper()
	return time.Date(2025, 1, day, hour, min, sec, 0, kl)
}

func row(date string, times ...string) string {
	line := date + ",hijri,hari"
	for _, tm := range times {
		line += "," + tm
	}
	return line
}

// sampleSchedule holds 1 and 2 January 2025.
func sampleSchedule(t *testing.T) *schedule.Schedule {
	t.Helper()
	body := "Tarikh,Hijri,Hari,Imsak,Subuh,Syuruk,Zohor,Asar,Maghrib,Isyak\n" +
		row("01/01/2025", "5:52 AM", "6:02 AM", "7:13 AM", "1:17 PM", "4:41 PM", "7:17 PM", "8:32 PM") + "\n" +
		row("02/01/2025", "5:53 AM", "6:03 AM", "7:14 AM", "1:17 PM", "4:41 PM", "7:18 PM", "8:32 PM") + "\n"
	s, err := schedule.DecodeBytes("SGR01", []byte(body), schedule.DefaultLayout())
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	return s
}

// ---------------------------------------------------------------------------
// ParseRow / NextPrayer
// ---------------------------------------------------------------------------

func TestParseRow_SkipsMalformed(t *testing.T) {
	r := schedule.Row{
		Date:  schedule.Date{Year: 2025, Month: time.January, Day: 1},
		Times: [7]string{"5:52 AM", "", "bad", "1:17 PM", "4:41 PM", "7:17 PM", "8:32 PM"},
	}
	prayers := ParseRow(r, kl)
	if len(prayers) != 5 {
		t.Fatalf("expected 5 parsed prayers, got %d", len(prayers))
	}
	if prayers[0].Name != "Imsak" || prayers[1].Name != "Zohor" {
		t.Errorf("unexpected order: %v", prayers)
	}
	if h := prayers[1].Time.Hour(); h != 13 {
		t.Errorf("Zohor hour = %d, want 13", h)
	}
}

func TestNextPrayer_StrictlyAfter(t *testing.T) {
	prayers := []Prayer{
		{Name: "Zohor", Time: at(t, 1, 13, 17, 0)},
		{Name: "Asar", Time: at(t, 1, 16, 41, 0)},
	}
	next := NextPrayer(prayers, at(t, 1, 13, 17, 0))
	if next == nil || next.Name != "Asar" {
		t.Errorf("NextPrayer at exactly Zohor = %v, want Asar", next)
	}
	if NextPrayer(prayers, at(t, 1, 23, 0, 0)) != nil {
		t.Error("expected nil after the last prayer")
	}
}

// ---------------------------------------------------------------------------
// Resolve
// ---------------------------------------------------------------------------

func TestResolve(t *testing.T) {
	s := sampleSchedule(t)

	tests := []struct {
		name       string
		now        time.Time
		wantNext   string
		wantActive string
		wantTime   time.Time
	}{
		{"before imsak wraps to isyak", at(t, 1, 3, 0, 0), "Imsak", "Isyak", at(t, 1, 5, 52, 0)},
		{"between imsak and subuh", at(t, 1, 5, 55, 0), "Subuh", "Imsak", at(t, 1, 6, 2, 0)},
		{"just after syuruk", at(t, 1, 7, 15, 0), "Zohor", "Syuruk", at(t, 1, 13, 17, 0)},
		{"dhuha start inclusive", at(t, 1, 7, 23, 0), "Zohor", "Dhuha", at(t, 1, 13, 17, 0)},
		{"mid dhuha", at(t, 1, 10, 0, 0), "Zohor", "Dhuha", at(t, 1, 13, 17, 0)},
		{"exactly zohor", at(t, 1, 13, 17, 0), "Asar", "Zohor", at(t, 1, 16, 41, 0)},
		{"after isyak uses tomorrow imsak", at(t, 1, 21, 0, 0), "Imsak", "Isyak", at(t, 2, 5, 53, 0)},
		{"exactly isyak", at(t, 1, 20, 32, 0), "Imsak", "Isyak", at(t, 2, 5, 53, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, ok := Resolve(s, tt.now)
			if !ok {
				t.Fatal("Resolve reported nothing")
			}
			if st.Next.Name != tt.wantNext {
				t.Errorf("Next = %s, want %s", st.Next.Name, tt.wantNext)
			}
			if st.Active != tt.wantActive {
				t.Errorf("Active = %s, want %s", st.Active, tt.wantActive)
			}
			if !st.Next.Time.Equal(tt.wantTime) {
				t.Errorf("Next.Time = %v, want %v", st.Next.Time, tt.wantTime)
			}
		})
	}
}

func TestResolve_NoTodayRow(t *testing.T) {
	s := sampleSchedule(t)
	if _, ok := Resolve(s, at(t, 5, 12, 0, 0)); ok {
		t.Error("expected nothing to report without today's row")
	}
	if _, ok := Resolve(nil, at(t, 1, 12, 0, 0)); ok {
		t.Error("expected nothing to report for a nil schedule")
	}
}

func TestResolve_NoTomorrowRow(t *testing.T) {
	s := sampleSchedule(t)
	// 2 Jan is the last row; after its Isyak there is no tomorrow.
	if _, ok := Resolve(s, at(t, 2, 22, 0, 0)); ok {
		t.Error("expected nothing to report when tomorrow's row is absent")
	}
}

func TestResolve_TomorrowImsakUnparsable(t *testing.T) {
	body := "h\n" +
		row("01/01/2025", "5:52 AM", "6:02 AM", "7:13 AM", "1:17 PM", "4:41 PM", "7:17 PM", "8:32 PM") + "\n" +
		row("02/01/2025", "n/a", "6:03 AM") + "\n"
	s, _ := schedule.DecodeBytes("X", []byte(body), schedule.DefaultLayout())
	if _, ok := Resolve(s, at(t, 1, 21, 0, 0)); ok {
		t.Error("expected nothing when tomorrow's Imsak does not parse")
	}
}

func TestResolve_AllTodayMalformedFallsBackToTomorrow(t *testing.T) {
	body := "h\n" +
		row("01/01/2025", "x", "x", "x", "x", "x", "x", "x") + "\n" +
		row("02/01/2025", "5:53 AM") + "\n"
	s, _ := schedule.DecodeBytes("X", []byte(body), schedule.DefaultLayout())

	st, ok := Resolve(s, at(t, 1, 9, 0, 0))
	if !ok {
		t.Fatal("expected tomorrow's Imsak")
	}
	if st.Next.Name != "Imsak" || !st.Next.Time.Equal(at(t, 2, 5, 53, 0)) {
		t.Errorf("Next = %+v", st.Next)
	}
	if st.Active != "Isyak" {
		t.Errorf("Active = %s, want Isyak", st.Active)
	}
}

func TestResolve_Remaining(t *testing.T) {
	s := sampleSchedule(t)
	now := at(t, 1, 12, 5, 30).Add(400 * time.Millisecond)

	st, ok := Resolve(s, now)
	if !ok {
		t.Fatal("Resolve reported nothing")
	}
	// 13:17:00 - 12:05:30.4 = 1h 11m 29.6s, truncated.
	want := Remaining{Hours: 1, Minutes: 11, Seconds: 29}
	if st.Remaining != want {
		t.Errorf("Remaining = %+v, want %+v", st.Remaining, want)
	}
}

// ---------------------------------------------------------------------------
// Split
// ---------------------------------------------------------------------------

func TestSplit(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want Remaining
	}{
		{0, Remaining{}},
		{-time.Minute, Remaining{}},
		{999 * time.Millisecond, Remaining{0, 0, 0}},
		{61 * time.Second, Remaining{0, 1, 1}},
		{25*time.Hour + 59*time.Minute + 59*time.Second, Remaining{25, 59, 59}},
	}
	for _, tt := range tests {
		if got := Split(tt.d); got != tt.want {
			t.Errorf("Split(%v) = %+v, want %+v", tt.d, got, tt.want)
		}
	}
}
