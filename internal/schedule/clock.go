package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Clock is a wall-clock time of day on the 24-hour clock.
type Clock struct {
	Hour   int
	Minute int
}

// ParseClock parses a 12-hour token such as "5:52 AM" or "12:05 PM".
//
// The hour may be one or two digits (1-12), the minute is always two digits,
// and the meridiem is a separate AM or PM token (case-insensitive).
// PM adds 12 hours unless the hour is 12; AM maps 12 to 0.
func ParseClock(raw string) (Clock, error) {
	fields := strings.Fields(raw)
	if len(fields) != 2 {
		return Clock{}, fmt.Errorf("invalid time %q: expected \"H:MM AM|PM\"", raw)
	}

	hm := strings.Split(fields[0], ":")
	if len(hm) != 2 || len(hm[0]) < 1 || len(hm[0]) > 2 || len(hm[1]) != 2 {
		return Clock{}, fmt.Errorf("invalid time %q: expected \"H:MM AM|PM\"", raw)
	}

	hour, err := strconv.Atoi(hm[0])
	if err != nil || hour < 1 || hour > 12 {
		return Clock{}, fmt.Errorf("invalid hour in %q", raw)
	}
	min, err := strconv.Atoi(hm[1])
	if err != nil || min < 0 || min > 59 {
		return Clock{}, fmt.Errorf("invalid minute in %q", raw)
	}

	switch strings.ToUpper(fields[1]) {
	case "AM":
		if hour == 12 {
			hour = 0
		}
	case "PM":
		if hour != 12 {
			hour += 12
		}
	default:
		return Clock{}, fmt.Errorf("invalid meridiem in %q", raw)
	}

	return Clock{Hour: hour, Minute: min}, nil
}

// On anchors the clock to date d in loc.
func (c Clock) On(d Date, loc *time.Location) time.Time {
	return d.At(c.Hour, c.Minute, loc)
}

// String formats the clock back to the 12-hour "H:MM AM|PM" form.
func (c Clock) String() string {
	meridiem := "AM"
	if c.Hour >= 12 {
		meridiem = "PM"
	}
	h := c.Hour % 12
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%d:%02d %s", h, c.Minute, meridiem)
}
