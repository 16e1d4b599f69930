package scheduler

import (
	"log"
	"time"

	"github.com/go-co-op/gocron"
)

// Sweeper drops expired in-memory state and reports how much it removed
type Sweeper interface {
	CleanupExpired() int
}

// SweeperFunc adapts a function to Sweeper
type SweeperFunc func() int

func (f SweeperFunc) CleanupExpired() int {
	return f()
}

// Scheduler runs periodic housekeeping tasks
type Scheduler struct {
	scheduler *gocron.Scheduler
	interval  time.Duration
	sweepers  map[string]Sweeper
}

// New creates a scheduler that runs every sweeper once per interval
func New(interval time.Duration, sweepers map[string]Sweeper) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		interval:  interval,
		sweepers:  sweepers,
	}
}

// Start schedules the sweep and begins running it in the background
func (s *Scheduler) Start() error {
	if _, err := s.scheduler.Every(s.interval).Do(s.Sweep); err != nil {
		return err
	}
	s.scheduler.StartAsync()
	return nil
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// Sweep runs every sweeper once
func (s *Scheduler) Sweep() {
	for name, sweeper := range s.sweepers {
		if removed := sweeper.CleanupExpired(); removed > 0 {
			log.Printf("Cleanup %s: removed %d entries", name, removed)
		}
	}
}
