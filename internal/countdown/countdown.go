// Package countdown turns the resolved prayer state into the two banner
// lines shown under the table. It is driven once per second.
package countdown

import (
	"fmt"
	"time"

	"github.com/smokyabdulrahman/waktu-solat/internal/prayer"
	"github.com/smokyabdulrahman/waktu-solat/internal/schedule"
)

// Frame is what one tick renders.
type Frame struct {
	Next   string // "Waktu seterusnya: Zohor dalam 1 jam 2 minit 3 saat"
	Active string // "Sedang dalam waktu: Dhuha"
	State  prayer.State
}

// Presenter reads the store on every tick; it keeps no state between ticks.
type Presenter struct {
	store *schedule.Store
	now   func() time.Time
}

// New creates a Presenter. A nil now uses time.Now.
func New(store *schedule.Store, now func() time.Time) *Presenter {
	if now == nil {
		now = time.Now
	}
	return &Presenter{store: store, now: now}
}

// Tick resolves the current state. ok is false when nothing is loaded or the
// schedule has no row for today (or, after Isyak, for tomorrow); the banner
// should then be left blank.
func (p *Presenter) Tick() (Frame, bool) {
	sched := p.store.Schedule()
	if sched == nil {
		return Frame{}, false
	}

	st, ok := prayer.Resolve(sched, p.now())
	if !ok {
		return Frame{}, false
	}
	return Render(st), true
}

// Render builds the banner lines for st.
func Render(st prayer.State) Frame {
	return Frame{
		Next:   NextLine(st),
		Active: ActiveLine(st),
		State:  st,
	}
}

// NextLine renders "Waktu seterusnya: <name> dalam H jam M minit S saat".
func NextLine(st prayer.State) string {
	return fmt.Sprintf("Waktu seterusnya: %s dalam %s", st.Next.Name, st.Remaining)
}

// ActiveLine renders "Sedang dalam waktu: <name>".
func ActiveLine(st prayer.State) string {
	return fmt.Sprintf("Sedang dalam waktu: %s", st.Active)
}
