package scheduler

import (
	"context"
	"log/slog"
	"time"
)

// Runner is one full digest pass. Satisfied by *pipeline.Pipeline.
type Runner interface {
	Run(ctx context.Context) error
}

// Scheduler owns the daemon loop: one immediate pass, then a pass per tick.
// The primary deployment remains a one-shot run triggered by cron or a
// systemd timer; this loop exists for environments without one.
type Scheduler struct {
	runner   Runner
	interval time.Duration
	logger   *slog.Logger
}

// NewScheduler creates a scheduler that runs the pipeline at the given interval.
func NewScheduler(runner Runner, interval time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		runner:   runner,
		interval: interval,
		logger:   logger,
	}
}

// Run starts the loop. A failed pass is logged, not fatal: the next tick
// tries again. Returns nil when ctx is cancelled (graceful shutdown).
func (s *Scheduler) Run(ctx context.Context) error {
	s.logger.Info("starting scheduler", "interval", s.interval.String())

	s.runOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("shutting down scheduler")
			return nil
		case <-time.After(s.interval):
			s.runOnce(ctx)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	if err := s.runner.Run(ctx); err != nil {
		s.logger.Error("pass failed", "error", err)
	}
}
