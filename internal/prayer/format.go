package prayer

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
)

// Format constants for display modes.
const (
	FormatTimeRemaining      = "time-remaining"
	FormatNextPrayerTime     = "next-prayer-time"
	FormatNameAndTime        = "name-and-time"
	FormatNameAndRemaining   = "name-and-remaining"
	FormatShortNameAndTime   = "short-name-and-time"
	FormatShortNameAndRemain = "short-name-and-remaining"
	FormatFull               = "full"
)

// Go layouts for the two supported clock styles.
const (
	Layout24h = "15:04"
	Layout12h = "3:04 PM"
)

// FormatData is the data passed to custom Go templates.
type FormatData struct {
	Name      string // Next prayer, e.g. "Zohor"
	ShortName string // Abbreviated name, e.g. "Z"
	Time      string // Formatted prayer time, e.g. "13:17" or "1:17 PM"
	Remaining string // Compact remaining time, e.g. "2h 15m"
	Active    string // Period in effect now, e.g. "Dhuha"
	Hours     int
	Minutes   int
	Seconds   int
}

// String renders the remaining time the way the countdown banner shows it.
func (r Remaining) String() string {
	return fmt.Sprintf("%d jam %d minit %d saat", r.Hours, r.Minutes, r.Seconds)
}

// Compact renders "Xh Ym", or "Ym" under an hour.
func (r Remaining) Compact() string {
	if r.Hours > 0 {
		return fmt.Sprintf("%dh %dm", r.Hours, r.Minutes)
	}
	return fmt.Sprintf("%dm", r.Minutes)
}

// TimeLayout maps a "12h"/"24h" setting to a Go time layout.
func TimeLayout(setting string) string {
	if setting == "12h" {
		return Layout12h
	}
	return Layout24h
}

// FormatOutput formats a resolved state for display according to mode.
// timeFormat is a Go layout such as Layout24h.
//
// If mode contains "{{", it is treated as a custom Go template string.
// Available fields: .Name, .ShortName, .Time, .Remaining, .Active,
// .Hours, .Minutes, .Seconds
//
// Example: "{{.Name}} in {{.Remaining}}" -> "Zohor in 2h 15m"
func FormatOutput(st State, mode string, timeFormat string) string {
	p := st.Next
	remaining := st.Remaining.Compact()
	timeStr := p.Time.Format(timeFormat)
	short := ShortNames[p.Name]

	if strings.Contains(mode, "{{") {
		return formatCustom(mode, FormatData{
			Name:      p.Name,
			ShortName: short,
			Time:      timeStr,
			Remaining: remaining,
			Active:    st.Active,
			Hours:     st.Remaining.Hours,
			Minutes:   st.Remaining.Minutes,
			Seconds:   st.Remaining.Seconds,
		})
	}

	switch mode {
	case FormatTimeRemaining:
		return remaining
	case FormatNextPrayerTime:
		return timeStr
	case FormatNameAndTime:
		return fmt.Sprintf("%s %s", p.Name, timeStr)
	case FormatNameAndRemaining:
		return fmt.Sprintf("%s %s", p.Name, remaining)
	case FormatShortNameAndTime:
		return fmt.Sprintf("%s %s", short, timeStr)
	case FormatShortNameAndRemain:
		return fmt.Sprintf("%s %s", short, remaining)
	case FormatFull:
		return fmt.Sprintf("%s %s (%s)", p.Name, timeStr, remaining)
	default:
		return fmt.Sprintf("%s %s", p.Name, timeStr)
	}
}

// ValidFormat reports whether mode is a named format or a template.
func ValidFormat(mode string) bool {
	if strings.Contains(mode, "{{") {
		return true
	}
	switch mode {
	case FormatTimeRemaining, FormatNextPrayerTime, FormatNameAndTime,
		FormatNameAndRemaining, FormatShortNameAndTime, FormatShortNameAndRemain, FormatFull:
		return true
	}
	return false
}

// formatCustom executes a user-provided Go template string against the FormatData.
func formatCustom(tmpl string, data FormatData) string {
	t, err := template.New("custom").Parse(tmpl)
	if err != nil {
		return fmt.Sprintf("template-err: %v", err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return fmt.Sprintf("template-err: %v", err)
	}

	return buf.String()
}

// RowTimes formats the row's parsed prayers with layout, keyed by name.
// Unparsable tokens are omitted.
func RowTimes(prayers []Prayer, layout string) map[string]string {
	out := make(map[string]string, len(prayers))
	for _, p := range prayers {
		out[p.Name] = p.Time.Format(layout)
	}
	return out
}
