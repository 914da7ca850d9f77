package refresh

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	"git.home.luguber.info/inful/docnav/internal/logfields"
)

// Scheduler invalidates the corpus on a fixed interval.
type Scheduler struct {
	scheduler gocron.Scheduler
	interval  time.Duration
}

// NewScheduler creates a scheduler that invalidates target every interval and
// then runs after, if set. It does nothing until Start.
func NewScheduler(interval time.Duration, target Invalidator, after Hook) (*Scheduler, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("refresh interval must be positive, got %s", interval)
	}
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}

	task := func() {
		target.Invalidate()
		slog.Info("Corpus invalidated on schedule", slog.Duration("interval", interval))
		if after != nil {
			after()
		}
	}
	if _, err := s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(task),
		gocron.WithName("corpus-refresh"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	); err != nil {
		_ = s.Shutdown()
		return nil, fmt.Errorf("failed to create refresh job: %w", err)
	}
	return &Scheduler{scheduler: s, interval: interval}, nil
}

// Start begins the schedule.
func (s *Scheduler) Start() {
	slog.Info("Starting refresh scheduler", slog.Duration("interval", s.interval))
	s.scheduler.Start()
}

// Stop shuts the scheduler down and waits for a running job.
func (s *Scheduler) Stop() error {
	slog.Info("Stopping refresh scheduler")
	if err := s.scheduler.Shutdown(); err != nil {
		slog.Error("Refresh scheduler shutdown failed", logfields.Error(err))
		return err
	}
	return nil
}
