package scheduler

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"
)

// Job is one scheduled refresh.
type Job func(ctx context.Context)

// Scheduler runs the refresh job on a cron schedule. Overlapping runs are
// skipped so the history file is never read and written concurrently.
type Scheduler struct {
	Cron *cron.Cron
	Job  Job
	Ctx  context.Context
}

// NewScheduler creates a new Scheduler with seconds-enabled cron specs.
func NewScheduler(ctx context.Context, job Job) *Scheduler {
	return &Scheduler{
		Cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.Recover(cron.DefaultLogger), cron.SkipIfStillRunning(cron.DefaultLogger)),
		),
		Job: job,
		Ctx: ctx,
	}
}

// Register adds the refresh job under spec.
func (s *Scheduler) Register(spec string) error {
	if _, err := s.Cron.AddFunc(spec, s.run); err != nil {
		return fmt.Errorf("register refresh task %q: %w", spec, err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Println("[INFO] scheduler stopped")
}

// RunNow executes the job immediately (RUN_ON_START / manual trigger).
func (s *Scheduler) RunNow() {
	s.run()
}

func (s *Scheduler) run() {
	if s.Ctx.Err() != nil {
		return
	}
	log.Println("[INFO] running scheduled refresh")
	s.Job(s.Ctx)
}
