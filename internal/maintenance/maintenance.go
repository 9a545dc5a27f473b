// Package maintenance runs the periodic cleanup of the in-memory
// stores: expired cache entries and idle rate-limit buckets.
package maintenance

import (
	"context"
	"log/slog"
	"time"
)

type sweeper interface {
	Sweep() int
}

type pruner interface {
	Prune(maxIdle time.Duration) int
}

type Runner struct {
	cache    sweeper
	limiter  pruner
	interval time.Duration
	maxIdle  time.Duration
	logger   *slog.Logger
	stopCh   chan struct{}
}

type RunnerConfig struct {
	Interval time.Duration
	MaxIdle  time.Duration
}

func NewRunner(cache sweeper, limiter pruner, cfg RunnerConfig, logger *slog.Logger) *Runner {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Minute
	}
	if cfg.MaxIdle <= 0 {
		cfg.MaxIdle = 10 * time.Minute
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Runner{
		cache:    cache,
		limiter:  limiter,
		interval: cfg.Interval,
		maxIdle:  cfg.MaxIdle,
		logger:   logger,
		stopCh:   make(chan struct{}),
	}
}

func (r *Runner) Start(ctx context.Context) {
	r.logger.Info("maintenance started", "interval", r.interval.String())
	ticker := time.NewTicker(r.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				r.logger.Info("maintenance stopped")
				close(r.stopCh)
				return
			case <-ticker.C:
				r.RunOnce()
			}
		}
	}()
}

func (r *Runner) StopWait(timeout time.Duration) {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	select {
	case <-r.stopCh:
	case <-time.After(timeout):
	}
}

func (r *Runner) RunOnce() {
	if r.cache != nil {
		if swept := r.cache.Sweep(); swept > 0 {
			r.logger.Debug("cache entries swept", "count", swept)
		}
	}
	if r.limiter != nil {
		if pruned := r.limiter.Prune(r.maxIdle); pruned > 0 {
			r.logger.Debug("rate limit buckets pruned", "count", pruned)
		}
	}
}
