package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gardencam/internal/core/domain"
)

// Runner runs a single cycle.
type Runner interface {
	Run(ctx context.Context) *domain.CycleResult
}

// Loop triggers a Runner every interval. Cycles run in the loop goroutine,
// so a slow cycle delays the next one instead of overlapping it; ticks missed
// meanwhile collapse into one.
type Loop struct {
	runner   Runner
	interval time.Duration
	logger   *slog.Logger
}

// NewLoop creates a new Loop.
func NewLoop(runner Runner, interval time.Duration, logger *slog.Logger) (*Loop, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("interval must be > 0, got %s", interval)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Loop{runner: runner, interval: interval, logger: logger}, nil
}

// Run blocks until ctx is done. The first cycle starts one interval after Run.
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	l.logger.Info("Capture loop started", "interval", l.interval)
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Capture loop stopped")
			return ctx.Err()
		case <-ticker.C:
			l.runOne(ctx)
		}
	}
}

// RunOnce runs exactly one cycle and returns its error.
func (l *Loop) RunOnce(ctx context.Context) error {
	return l.runOne(ctx).Err
}

func (l *Loop) runOne(ctx context.Context) *domain.CycleResult {
	result := l.runner.Run(ctx)
	if elapsed := result.CompletedAt.Sub(result.StartedAt); elapsed > l.interval {
		l.logger.Warn("Cycle took longer than the interval", "elapsed", elapsed, "interval", l.interval)
	}
	return result
}
