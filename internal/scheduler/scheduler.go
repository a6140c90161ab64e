// Package scheduler runs the periodic UI refresh loops (countdown, clocks,
// slideshow) on a single gocron scheduler. Each registration hands back a
// Handle that cancels just that loop.
package scheduler

import (
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Scheduler wraps a gocron scheduler.
type Scheduler struct {
	scheduler gocron.Scheduler
	log       zerolog.Logger
}

// Handle identifies one registered loop.
type Handle struct {
	id        uuid.UUID
	name      string
	scheduler gocron.Scheduler
}

// New creates a stopped scheduler.
func New(log zerolog.Logger) (*Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}
	return &Scheduler{scheduler: s, log: log}, nil
}

// Every runs fn every interval, starting as soon as the scheduler runs.
// A run that would overlap a still-running previous run is skipped.
func (s *Scheduler) Every(name string, interval time.Duration, fn func()) (Handle, error) {
	if interval <= 0 {
		return Handle{}, fmt.Errorf("job %s: interval must be positive, got %s", name, interval)
	}

	job, err := s.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(fn),
		gocron.WithName(name),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return Handle{}, fmt.Errorf("failed to schedule %s: %w", name, err)
	}

	s.log.Debug().Str("job", name).Str("id", job.ID().String()).Dur("interval", interval).Msg("job scheduled")
	return Handle{id: job.ID(), name: name, scheduler: s.scheduler}, nil
}

// Start begins running registered jobs.
func (s *Scheduler) Start() {
	s.scheduler.Start()
}

// Shutdown stops every job and waits for running ones to finish.
func (s *Scheduler) Shutdown() error {
	if err := s.scheduler.Shutdown(); err != nil {
		return fmt.Errorf("scheduler shutdown: %w", err)
	}
	return nil
}

// Len returns the number of registered jobs.
func (s *Scheduler) Len() int {
	return len(s.scheduler.Jobs())
}

// ID returns the job's unique identifier.
func (h Handle) ID() uuid.UUID {
	return h.id
}

// Name returns the name given at registration.
func (h Handle) Name() string {
	return h.name
}

// Cancel removes the job. Cancelling twice is an error.
func (h Handle) Cancel() error {
	if h.scheduler == nil {
		return fmt.Errorf("job %s was never scheduled", h.name)
	}
	if err := h.scheduler.RemoveJob(h.id); err != nil {
		return fmt.Errorf("cancel %s: %w", h.name, err)
	}
	return nil
}
