package scheduler

import (
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/osse101/TrainerBot_Go/internal/worker"
)

// Scheduler enqueues jobs onto a worker pool at fixed intervals
type Scheduler struct {
	cron       gocron.Scheduler
	workerPool *worker.Pool
}

// New creates a new scheduler feeding pool
func New(pool *worker.Pool) (*Scheduler, error) {
	cron, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}
	return &Scheduler{cron: cron, workerPool: pool}, nil
}

// Schedule registers a job to run every interval once Start is called.
// Runs are skipped while the pool queue is full.
func (s *Scheduler) Schedule(interval time.Duration, job worker.Job) error {
	_, err := s.cron.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			s.workerPool.Enqueue(job)
		}),
		gocron.WithName(job.Name()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule %s: %w", job.Name(), err)
	}
	return nil
}

// Start begins running scheduled jobs
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops all scheduled jobs
func (s *Scheduler) Stop() error {
	return s.cron.Shutdown()
}
