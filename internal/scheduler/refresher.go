// Package scheduler drives the periodic refresh of running comparison
// duration tokens.
package scheduler

import (
	"context"
	"time"

	"elapse/internal/logger"
)

// Refresher invokes fn on a fixed interval until the context ends.
// fn is expected to submit work to the dispatcher rather than touch
// shared state itself.
type Refresher struct {
	interval time.Duration
	fn       func(context.Context) error
}

// NewRefresher builds a refresher. Intervals below one second are
// clamped to one second.
func NewRefresher(interval time.Duration, fn func(context.Context) error) *Refresher {
	if interval < time.Second {
		interval = time.Second
	}
	return &Refresher{interval: interval, fn: fn}
}

// Run ticks until ctx is done. Refresh errors are logged and the loop
// keeps going; a broken tick must not stop future ones.
func (r *Refresher) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	logger.Infof("duration refresh every %v", r.interval)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := r.fn(ctx); err != nil {
				logger.Warnf("duration refresh failed: %v", err)
			}
		}
	}
}
