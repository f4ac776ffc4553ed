// Package scheduler owns the periodic housekeeping jobs. The scheduler is
// constructed and started by the composition root, never a package singleton,
// so tests and alternative entry points can run the jobs directly.
package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

type Scheduler struct {
	cron *cron.Cron
	jobs *Jobs
}

// New wires the standard job table:
//
//	05:00 site time  — STNK/KIR expiry alerts
//	05:00 site time  — previous-cycle tracker verification
//	hourly           — retry unsent telegram notifications
func New(loc *time.Location, jobs *Jobs) (*Scheduler, error) {
	c := cron.New(cron.WithLocation(loc))

	register := func(spec, name string, fn func(context.Context) error) error {
		_, err := c.AddFunc(spec, func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()
			if err := fn(ctx); err != nil {
				log.Printf("[ERROR] job %s: %v", name, err)
			}
		})
		return err
	}

	if err := register("0 5 * * *", "check_expiry", jobs.CheckExpiry); err != nil {
		return nil, err
	}
	if err := register("0 5 * * *", "tracker_audit", jobs.TrackerAudit); err != nil {
		return nil, err
	}
	if err := register("@hourly", "retry_notifications", jobs.RetryNotifications); err != nil {
		return nil, err
	}

	return &Scheduler{cron: c, jobs: jobs}, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	log.Printf("[INFO] scheduler started (%d jobs)", len(s.cron.Entries()))
}

// Stop halts scheduling and waits for running jobs to finish.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop().Done()
	select {
	case <-done:
	case <-ctx.Done():
		log.Printf("[WARN] scheduler stop timed out with jobs still running")
	}
}
