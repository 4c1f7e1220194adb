package scheduler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"
)

type countingRunner struct {
	runs int
	err  error
}

func (r *countingRunner) Run(_ context.Context) error {
	r.runs++
	return r.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRun_ImmediatePassThenTicks(t *testing.T) {
	r := &countingRunner{}
	s := NewScheduler(r, 20*time.Millisecond, discardLogger())

	ctx, cancel := context.WithTimeout(context.Background(), 70*time.Millisecond)
	defer cancel()

	if err := s.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}

	// One immediate pass plus at least one tick.
	if r.runs < 2 {
		t.Errorf("runs = %d, want at least 2", r.runs)
	}
}

func TestRun_PassFailureIsNotFatal(t *testing.T) {
	r := &countingRunner{err: errors.New("fetch blew up")}
	s := NewScheduler(r, 15*time.Millisecond, discardLogger())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if err := s.Run(ctx); err != nil {
		t.Fatalf("Run should swallow pass errors, got %v", err)
	}
	if r.runs < 2 {
		t.Errorf("failing passes should not stop the loop, runs = %d", r.runs)
	}
}

func TestRun_CancelledContextReturnsNil(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewScheduler(&countingRunner{}, time.Minute, discardLogger())
	if err := s.Run(ctx); err != nil {
		t.Fatalf("Run with cancelled ctx = %v, want nil", err)
	}
}
