package schedule

import (
	"sync"
	"time"
)

// Snapshot is the Store content at a point in time.
type Snapshot struct {
	Zone      string
	Schedule  *Schedule // nil when nothing is loaded
	LoadedAt  time.Time
	LastError error
}

// Loaded reports whether a schedule is available.
func (s Snapshot) Loaded() bool {
	return s.Schedule != nil
}

// Store coordinates concurrent replacement of the current schedule.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Replace publishes sched for zone, discarding whatever was loaded before.
func (s *Store) Replace(zone string, sched *Schedule) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot = Snapshot{
		Zone:     zone,
		Schedule: sched,
		LoadedAt: time.Now(),
	}
}

// Fail empties the store and records why the load for zone failed.
func (s *Store) Fail(zone string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot = Snapshot{
		Zone:      zone,
		LoadedAt:  time.Now(),
		LastError: err,
	}
}

// Snapshot returns a copy of the current content. The Schedule itself is
// immutable and is shared.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.snapshot
}

// Schedule returns the loaded schedule, or nil.
func (s *Store) Schedule() *Schedule {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot.Schedule
}
