package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron"
)

// Job is one scheduled unit of work. Errors are logged, never fatal.
type Job func(ctx context.Context) error

// Scheduler runs jobs on cron specs with seconds, e.g. "0 0 1 * * 1" for
// Monday 01:00.
type Scheduler struct {
	cron *cron.Cron
	log  *slog.Logger
	ctx  context.Context
}

func New(loc *time.Location, log *slog.Logger) *Scheduler {
	if loc == nil {
		loc = time.Local
	}
	return &Scheduler{
		cron: cron.NewWithLocation(loc),
		log:  log,
		ctx:  context.Background(),
	}
}

// Add registers job under name.
func (s *Scheduler) Add(name, spec string, job Job) error {
	if _, err := cron.Parse(spec); err != nil {
		return fmt.Errorf("Failed to parse schedule %q: %w", spec, err)
	}
	return s.cron.AddFunc(spec, func() {
		start := time.Now()
		s.log.Info("job started", "job", name)
		if err := job(s.ctx); err != nil {
			s.log.Error("job failed", "job", name, "error", err)
			return
		}
		s.log.Info("job finished", "job", name, "took", time.Since(start).String())
	})
}

// Run starts the scheduler and blocks until ctx is done.
func (s *Scheduler) Run(ctx context.Context) {
	s.ctx = ctx
	s.cron.Start()
	<-ctx.Done()
	s.cron.Stop()
}

// Next returns the first activation of spec after from.
func Next(spec string, from time.Time) (time.Time, error) {
	sched, err := cron.Parse(spec)
	if err != nil {
		return time.Time{}, fmt.Errorf("Failed to parse schedule %q: %w", spec, err)
	}
	return sched.Next(from), nil
}
