package scheduler

import (
	"context"
	"sync"
	"time"

	"BookmarkDigest/internal/ports"
)

// IntervalScheduler fires the job immediately on start and then on a fixed
// interval. Good enough for a weekly cadence; cron expressions are not needed.
type IntervalScheduler struct {
	interval time.Duration

	mu      sync.Mutex
	stop    chan struct{}
	stopped bool
}

var _ ports.Scheduler = (*IntervalScheduler)(nil)

// NewIntervalScheduler builds a scheduler; a non-positive interval defaults
// to seven days.
func NewIntervalScheduler(interval time.Duration) *IntervalScheduler {
	if interval <= 0 {
		interval = 7 * 24 * time.Hour
	}
	return &IntervalScheduler{interval: interval}
}

// Start runs the job once right away, then on every tick until Stop or
// context cancellation. A second Start is a no-op.
func (s *IntervalScheduler) Start(ctx context.Context, job func(time.Time)) error {
	if job == nil {
		return nil
	}

	s.mu.Lock()
	if s.stop != nil {
		s.mu.Unlock()
		return nil
	}
	stop := make(chan struct{})
	s.stop = stop
	s.mu.Unlock()

	// The goroutine holds its own reference to the stop channel so Stop
	// never races with the select below.
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		job(time.Now())
		for {
			select {
			case t := <-ticker.C:
				job(t)
			case <-ctx.Done():
				return
			case <-stop:
				return
			}
		}
	}()

	return nil
}

// Stop halts the ticker goroutine. Safe to call more than once.
func (s *IntervalScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stop == nil || s.stopped {
		return nil
	}
	s.stopped = true
	close(s.stop)
	return nil
}
