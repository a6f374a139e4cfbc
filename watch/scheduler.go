// ABOUTME: Interval scheduler driving poll cycles
// ABOUTME: Single-slot manual trigger, no overlapping cycles, runs until cancelled
package watch

import (
	"context"
	"log"
	"time"
)

// Runner is one unit of scheduled work, a poll cycle in practice.
type Runner interface {
	Run(ctx context.Context) error
}

// Scheduler fires the runner on a fixed interval. Cycles run on the
// scheduler's own goroutine only, so they cannot overlap; manual triggers
// land in a single-slot channel and coalesce while a cycle is in flight.
type Scheduler struct {
	runner   Runner
	interval time.Duration
	trigger  chan struct{}
}

func NewScheduler(runner Runner, interval time.Duration) *Scheduler {
	return &Scheduler{
		runner:   runner,
		interval: interval,
		trigger:  make(chan struct{}, 1),
	}
}

// Trigger requests one out-of-band cycle without waiting for the interval.
// Safe from any goroutine; triggers arriving while one is pending coalesce.
func (s *Scheduler) Trigger() {
	select {
	case s.trigger <- struct{}{}:
	default:
	}
}

// Start runs an initial cycle, then blocks firing cycles until ctx is
// cancelled. Cycle failures are logged and the loop waits for the next tick.
func (s *Scheduler) Start(ctx context.Context) {
	log.Printf("scheduler: checking every %s", s.interval)

	s.runOnce(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("scheduler: stopped")
			return
		case <-ticker.C:
			s.runOnce(ctx)
		case <-s.trigger:
			log.Println("scheduler: manual trigger")
			s.runOnce(ctx)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	if err := s.runner.Run(ctx); err != nil {
		log.Printf("scheduler: cycle failed: %v", err)
	}
}
