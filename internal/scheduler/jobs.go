package scheduler

import (
	"context"
	"database/sql"
	"log"
	"time"

	"P2H-backend/internal/p2h"
	"P2H-backend/internal/shift"
	"P2H-backend/internal/telegram"
	"P2H-backend/internal/vehicles"
)

const (
	expiryAlertDays = 30
	retryBatchSize  = 50
)

type Jobs struct {
	vehicles *vehicles.Service
	telegram *telegram.Service
	trackers *p2h.Store
	loc      *time.Location
}

func NewJobs(db *sql.DB, vs *vehicles.Service, tg *telegram.Service, loc *time.Location) *Jobs {
	return &Jobs{
		vehicles: vs,
		telegram: tg,
		trackers: p2h.NewStore(db),
		loc:      loc,
	}
}

// today is the shifted operational date: the job fires at 05:00, right at
// rollover, and must attribute its work to the new day.
func (j *Jobs) today() time.Time {
	return shift.OperationalDate(shift.PolicyShift, time.Now().In(j.loc))
}

// CheckExpiry sends one alert per vehicle per document for STNK/KIR expiring
// within 30 days. Dedup against the audit log keeps the daily run from
// spamming the chat.
func (j *Jobs) CheckExpiry(ctx context.Context) error {
	today := j.today()
	docs, err := j.vehicles.ListExpiring(ctx, today, expiryAlertDays)
	if err != nil {
		return err
	}

	sent := 0
	for _, d := range docs {
		if err := j.telegram.NotifyExpiry(ctx, d, today); err != nil {
			log.Printf("[WARN] expiry alert for unit %s (%s) failed: %v", d.Vehicle.HullNumber, d.DocType, err)
			continue
		}
		sent++
	}
	log.Printf("[INFO] expiry check done: %d documents within %d days, %d alerts processed",
		len(docs), expiryAlertDays, sent)
	return nil
}

// RetryNotifications drains the unsent-notification queue.
func (j *Jobs) RetryNotifications(ctx context.Context) error {
	sent, err := j.telegram.RetryUnsent(ctx, retryBatchSize)
	if err != nil {
		return err
	}
	if sent > 0 {
		log.Printf("[INFO] resent %d queued telegram notifications", sent)
	}
	return nil
}

// TrackerAudit logs the closing count for the previous operational cycle.
// Trackers are created on demand and never deleted, so there is nothing to
// reset; this is the daily verification line for operations.
func (j *Jobs) TrackerAudit(ctx context.Context) error {
	date := j.today().Format(shift.DateLayout)
	n, err := j.trackers.CountTrackersBefore(ctx, date)
	if err != nil {
		return err
	}
	log.Printf("[INFO] operational rollover verified: %d trackers archived from previous cycles", n)
	return nil
}
