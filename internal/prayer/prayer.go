// Package prayer resolves which prayer period is active and which one comes
// next, given the current instant and a loaded schedule.
package prayer

import (
	"time"

	"github.com/smokyabdulrahman/waktu-solat/internal/schedule"
)

// Prayer represents a single prayer with its name and time.
type Prayer struct {
	Name string
	Time time.Time
}

// Names lists the scheduled periods in the order they appear in every row.
var Names = [schedule.PrayerCount]string{
	"Imsak", "Subuh", "Syuruk", "Zohor", "Asar", "Maghrib", "Isyak",
}

// Dhuha is the unscheduled period between Syuruk+10min and Zohor.
const Dhuha = "Dhuha"

const (
	idxImsak  = 0
	idxSyuruk = 2
	idxZohor  = 3

	dhuhaDelay = 10 * time.Minute
)

// ShortNames maps prayer names to compact abbreviations for status bars.
var ShortNames = map[string]string{
	"Imsak":   "Im",
	"Subuh":   "S",
	"Syuruk":  "Sy",
	"Dhuha":   "D",
	"Zohor":   "Z",
	"Asar":    "A",
	"Maghrib": "M",
	"Isyak":   "I",
}

// State is the resolved view of "now" against the schedule.
type State struct {
	Active    string
	Next      Prayer
	Remaining Remaining
}

// Remaining is a duration split into whole hours, minutes and seconds.
type Remaining struct {
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`
}

// Split truncates d into hours, minutes mod 60 and seconds mod 60.
// Negative durations collapse to zero.
func Split(d time.Duration) Remaining {
	if d < 0 {
		return Remaining{}
	}
	return Remaining{
		Hours:   int(d / time.Hour),
		Minutes: int(d/time.Minute) % 60,
		Seconds: int(d/time.Second) % 60,
	}
}

// ParseRow anchors the row's seven tokens to its date in loc.
// Tokens that are missing or malformed are left out; order is preserved.
func ParseRow(row schedule.Row, loc *time.Location) []Prayer {
	prayers := make([]Prayer, 0, len(Names))
	for i, name := range Names {
		c, err := schedule.ParseClock(row.Times[i])
		if err != nil {
			continue
		}
		prayers = append(prayers, Prayer{Name: name, Time: c.On(row.Date, loc)})
	}
	return prayers
}

// NextPrayer finds the first prayer strictly after now.
// A prayer whose time equals now has already begun and is not returned.
func NextPrayer(prayers []Prayer, now time.Time) *Prayer {
	for i := range prayers {
		if prayers[i].Time.After(now) {
			return &prayers[i]
		}
	}
	return nil
}

// Resolve computes the active period and the next prayer for now.
// It reports false when today's row is missing, or when every prayer today
// has passed and tomorrow's Imsak is unavailable.
func Resolve(s *schedule.Schedule, now time.Time) (State, bool) {
	loc := now.Location()
	today := schedule.DateOf(now)

	row, ok := s.Day(today)
	if !ok {
		return State{}, false
	}

	next := NextPrayer(ParseRow(row, loc), now)
	if next == nil {
		next = tomorrowImsak(s, today.AddDays(1), loc)
	}
	if next == nil {
		return State{}, false
	}

	return State{
		Active:    activePeriod(row, next.Name, now),
		Next:      *next,
		Remaining: Split(next.Time.Sub(now)),
	}, true
}

func tomorrowImsak(s *schedule.Schedule, tomorrow schedule.Date, loc *time.Location) *Prayer {
	row, ok := s.Day(tomorrow)
	if !ok {
		return nil
	}
	c, err := schedule.ParseClock(row.Times[idxImsak])
	if err != nil {
		return nil
	}
	return &Prayer{Name: Names[idxImsak], Time: c.On(tomorrow, loc)}
}

// activePeriod is the period preceding next in the fixed cycle, unless now
// falls inside today's Dhuha window.
func activePeriod(row schedule.Row, next string, now time.Time) string {
	if inDhuha(row, now) {
		return Dhuha
	}
	i := indexOf(next)
	if i <= 0 {
		return Names[len(Names)-1]
	}
	return Names[i-1]
}

func inDhuha(row schedule.Row, now time.Time) bool {
	syuruk, err := schedule.ParseClock(row.Times[idxSyuruk])
	if err != nil {
		return false
	}
	zohor, err := schedule.ParseClock(row.Times[idxZohor])
	if err != nil {
		return false
	}
	start := syuruk.On(row.Date, now.Location()).Add(dhuhaDelay)
	end := zohor.On(row.Date, now.Location())
	return !now.Before(start) && now.Before(end)
}

func indexOf(name string) int {
	for i, n := range Names {
		if n == name {
			return i
		}
	}
	return -1
}
