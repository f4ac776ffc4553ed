package telegram

import (
	"context"
	"database/sql"
	"time"
)

type DBTX interface {
	ExecContext(ctx context.Context, q string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, q string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, q string, args ...any) *sql.Row
}

type Store struct{ db DBTX }

func NewStore(db DBTX) *Store { return &Store{db: db} }

// Insert records the notification before the send attempt, so a crash
// mid-send still leaves an auditable unsent row for the retry job.
func (s *Store) Insert(ctx context.Context, n *Notification) (uint64, error) {
	const q = `
	INSERT INTO telegram_notifications
	(notification_type, vehicle_id, report_id, message, is_sent, retry_count, created_at)
	VALUES (?, ?, ?, ?, 0, 0, UTC_TIMESTAMP())`
	res, err := s.db.ExecContext(ctx, q, string(n.Type), n.VehicleID, n.ReportID, n.Message)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

func (s *Store) MarkSent(ctx context.Context, id uint64) error {
	_, err := s.db.ExecContext(ctx, `
	UPDATE telegram_notifications
	SET is_sent = 1, sent_at = UTC_TIMESTAMP(), error_message = NULL
	WHERE notification_id = ?`, id)
	return err
}

func (s *Store) MarkFailed(ctx context.Context, id uint64, reason string) error {
	_, err := s.db.ExecContext(ctx, `
	UPDATE telegram_notifications
	SET error_message = ?, retry_count = retry_count + 1
	WHERE notification_id = ?`, reason, id)
	return err
}

// ListUnsent returns retryable notifications, oldest first. Rows past
// maxRetries stay in the table for the audit trail but are no longer picked.
func (s *Store) ListUnsent(ctx context.Context, maxRetries, limit int) ([]Notification, error) {
	rows, err := s.db.QueryContext(ctx, `
	SELECT notification_id, notification_type, vehicle_id, report_id, message,
	       is_sent, sent_at, error_message, retry_count, created_at
	FROM telegram_notifications
	WHERE is_sent = 0 AND retry_count < ?
	ORDER BY created_at ASC
	LIMIT ?`, maxRetries, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Notification
	for rows.Next() {
		var n Notification
		var typ string
		if err := rows.Scan(&n.NotificationID, &typ, &n.VehicleID, &n.ReportID,
			&n.Message, &n.IsSent, &n.SentAt, &n.ErrorMessage, &n.RetryCount, &n.CreatedAt); err != nil {
			return nil, err
		}
		n.Type = NotificationType(typ)
		out = append(out, n)
	}
	return out, rows.Err()
}

// ExistsSince reports whether a notification of this type was already created
// for the vehicle since the given instant. Used to cap expiry alerts at one
// per vehicle per operational day.
func (s *Store) ExistsSince(ctx context.Context, vehicleID uint64, typ NotificationType, since time.Time) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `
	SELECT 1 FROM telegram_notifications
	WHERE vehicle_id = ? AND notification_type = ? AND created_at >= ?
	LIMIT 1`, vehicleID, string(typ), since.UTC()).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
