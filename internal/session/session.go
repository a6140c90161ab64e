// Package session holds the user's current selection (zone, month, search)
// as an immutable value. Each user action is a transition returning the new
// value and the side effect the caller must perform.
package session

import (
	"strings"

	"github.com/smokyabdulrahman/waktu-solat/internal/schedule"
	"github.com/smokyabdulrahman/waktu-solat/internal/view"
)

// Effect tells the caller what to do after a transition.
type Effect int

const (
	// EffectNone means re-filtering the loaded schedule is enough.
	EffectNone Effect = iota
	// EffectReload means the schedule for Context.Zone must be loaded again.
	EffectReload
)

func (e Effect) String() string {
	switch e {
	case EffectReload:
		return "reload"
	default:
		return "none"
	}
}

// Context is the selection state. The zero value has no zone.
type Context struct {
	Zone   string
	Cursor view.Cursor
	Search string
	Today  schedule.Date
}

// New starts a session for zone with the cursor on today's month.
func New(zone string, today schedule.Date) Context {
	return Context{
		Zone:   strings.ToUpper(strings.TrimSpace(zone)),
		Cursor: view.NewCursor(today.Year, today),
		Today:  today,
	}
}

// Filter returns the view filter for the current selection.
func (c Context) Filter() view.Filter {
	return view.Filter{Month: c.Cursor.Month, Search: c.Search}
}

// SelectZone switches to zone. A blank zone is ignored.
func (c Context) SelectZone(zone string) (Context, Effect) {
	zone = strings.ToUpper(strings.TrimSpace(zone))
	if zone == "" {
		return c, EffectNone
	}
	c.Zone = zone
	return c, EffectReload
}

// NavigateMonth moves the month cursor by delta, clamped to the year.
func (c Context) NavigateMonth(delta int) (Context, Effect) {
	c.Cursor = c.Cursor.Navigate(delta)
	return c, EffectNone
}

// SetSearch updates the search text. Clearing it reloads the schedule.
func (c Context) SetSearch(text string) (Context, Effect) {
	c.Search = text
	if text == "" {
		return c, EffectReload
	}
	return c, EffectNone
}

// JumpToday moves the cursor to today's month when today falls in the
// loaded year, otherwise to January.
func (c Context) JumpToday() (Context, Effect) {
	c.Cursor = view.NewCursor(c.Cursor.Year, c.Today)
	return c, EffectNone
}

// Loaded adopts the year of a freshly loaded schedule. The month is kept
// unless the year changed, in which case the cursor restarts from today.
func (c Context) Loaded(year int) Context {
	if year == 0 || year == c.Cursor.Year {
		return c
	}
	c.Cursor = view.NewCursor(year, c.Today)
	return c
}

// Tick records the current date. It reports whether the day rolled over.
func (c Context) Tick(today schedule.Date) (Context, bool) {
	if today == c.Today {
		return c, false
	}
	c.Today = today
	return c, true
}
