package p2h

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"strings"
)

type DBTX interface {
	ExecContext(ctx context.Context, q string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, q string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, q string, args ...any) *sql.Row
}

type Store struct{ db DBTX }

func NewStore(db DBTX) *Store { return &Store{db: db} }

// ===== daily tracker =====

const trackerColumns = `
	tracker_id, vehicle_id, DATE_FORMAT(date, '%Y-%m-%d') AS date,
	shift_1_done, shift_1_report_id,
	shift_2_done, shift_2_report_id,
	shift_3_done, shift_3_report_id,
	final_status, submission_count, updated_at`

func scanTracker(row interface{ Scan(dest ...any) error }) (DailyTracker, error) {
	var r trackerRow
	if err := row.Scan(
		&r.TrackerID, &r.VehicleID, &r.Date,
		&r.Shift1Done, &r.Shift1ReportID,
		&r.Shift2Done, &r.Shift2ReportID,
		&r.Shift3Done, &r.Shift3ReportID,
		&r.FinalStatus, &r.SubmissionCount, &r.UpdatedAt,
	); err != nil {
		return DailyTracker{}, err
	}
	return r.toModel(), nil
}

// GetTracker returns the tracker for (vehicle, operational date), or nil if
// none exists yet. Read-only status queries go through here and must not
// create rows.
func (s *Store) GetTracker(ctx context.Context, vehicleID uint64, date string) (*DailyTracker, error) {
	q := `SELECT` + trackerColumns + ` FROM p2h_daily_tracker WHERE vehicle_id = ? AND date = ?`
	t, err := scanTracker(s.db.QueryRowContext(ctx, q, vehicleID, date))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

// GetOrCreateTracker: idempotent upsert on UNIQUE (vehicle_id, date). Safe
// under concurrent calls for the same key; the losing INSERT collapses into
// a no-op and both callers read the same row back.
func (s *Store) GetOrCreateTracker(ctx context.Context, vehicleID uint64, date string) (DailyTracker, error) {
	const ins = `
	INSERT INTO p2h_daily_tracker (vehicle_id, date, final_status, submission_count, updated_at)
	VALUES (?, ?, 'red', 0, UTC_TIMESTAMP())
	ON DUPLICATE KEY UPDATE tracker_id = tracker_id`
	if _, err := s.db.ExecContext(ctx, ins, vehicleID, date); err != nil {
		return DailyTracker{}, err
	}

	t, err := s.GetTracker(ctx, vehicleID, date)
	if err != nil {
		return DailyTracker{}, err
	}
	if t == nil {
		return DailyTracker{}, ErrInternal("tracker upserted but not found")
	}
	return *t, nil
}

// MarkShiftDone flips one shift flag to true and records which report
// satisfied it. The `shift_N_done = 0` condition is the authoritative guard
// against two submissions racing for the same shift: exactly one wins,
// the other sees ok=false.
//
// final_status is recomputed in-row (MySQL applies SET clauses left to
// right, so the flag is already 1 when the CASE runs); requiredShifts is the
// policy's shift count.
func (s *Store) MarkShiftDone(ctx context.Context, trackerID uint64, shiftNumber int, reportID uint64, requiredShifts int) (bool, error) {
	if shiftNumber < 1 || shiftNumber > 3 {
		return false, ErrInvalid(fmt.Sprintf("invalid shift number %d", shiftNumber))
	}

	q := fmt.Sprintf(`
	UPDATE p2h_daily_tracker
	SET shift_%[1]d_done = 1,
	    shift_%[1]d_report_id = ?,
	    submission_count = submission_count + 1,
	    final_status = CASE
	        WHEN (shift_1_done + shift_2_done + shift_3_done) >= ? THEN 'green'
	        WHEN (shift_1_done + shift_2_done + shift_3_done) >= 1 THEN 'yellow'
	        ELSE 'red' END,
	    updated_at = UTC_TIMESTAMP()
	WHERE tracker_id = ? AND shift_%[1]d_done = 0`, shiftNumber)

	res, err := s.db.ExecContext(ctx, q, reportID, requiredShifts, trackerID)
	if err != nil {
		return false, err
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return aff == 1, nil
}

// CountTrackersBefore counts trackers older than the given operational date.
// Used by the 05:00 verification job for the closing log line.
func (s *Store) CountTrackersBefore(ctx context.Context, date string) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM p2h_daily_tracker WHERE date < ?`, date).Scan(&n)
	return n, err
}

// ===== reports =====

const reportColumns = `
	report_id, report_ulid, vehicle_id, user_id, shift_number, odometer,
	overall_status, DATE_FORMAT(submission_date, '%Y-%m-%d') AS submission_date,
	submission_time, created_at`

func scanReport(row interface{ Scan(dest ...any) error }) (Report, error) {
	var r reportRow
	if err := row.Scan(
		&r.ReportID, &r.ReportULID, &r.VehicleID, &r.UserID, &r.ShiftNumber,
		&r.Odometer, &r.OverallStatus, &r.SubmissionDate, &r.SubmissionTime, &r.CreatedAt,
	); err != nil {
		return Report{}, err
	}
	return r.toModel(), nil
}

func (s *Store) InsertReport(ctx context.Context, r Report) (uint64, error) {
	const q = `
	INSERT INTO p2h_reports
	(report_ulid, vehicle_id, user_id, shift_number, odometer, overall_status,
	 submission_date, submission_time, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, UTC_TIMESTAMP())`
	res, err := s.db.ExecContext(ctx, q,
		r.ReportULID, r.VehicleID, r.UserID, r.ShiftNumber, r.Odometer,
		string(r.OverallStatus), r.SubmissionDate, r.SubmissionTime.UTC())
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

func (s *Store) InsertDetails(ctx context.Context, reportID uint64, details []DetailSubmit) error {
	if len(details) == 0 {
		return nil
	}
	var (
		buf  bytes.Buffer
		args []any
	)
	buf.WriteString(`INSERT INTO p2h_details (report_id, checklist_item_id, status, note) VALUES `)
	for i, d := range details {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString("(?, ?, ?, ?)")
		args = append(args, reportID, d.ChecklistItemID, string(d.Status), d.Note)
	}
	_, err := s.db.ExecContext(ctx, buf.String(), args...)
	return err
}

func (s *Store) GetReportByULID(ctx context.Context, ulid string) (Report, error) {
	q := `SELECT` + reportColumns + ` FROM p2h_reports WHERE report_ulid = ?`
	return scanReport(s.db.QueryRowContext(ctx, q, ulid))
}

func (s *Store) GetDetails(ctx context.Context, reportID uint64) ([]Detail, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT detail_id, report_id, checklist_item_id, status, note FROM p2h_details WHERE report_id = ? ORDER BY detail_id`, reportID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Detail
	for rows.Next() {
		var d Detail
		var st string
		if err := rows.Scan(&d.DetailID, &d.ReportID, &d.ChecklistItemID, &st, &d.Note); err != nil {
			return nil, err
		}
		d.Status = InspectionStatus(st)
		out = append(out, d)
	}
	return out, rows.Err()
}

// ListReports: dynamic WHERE + ORDER + LIMIT/OFFSET, with a matching COUNT.
func (s *Store) ListReports(ctx context.Context, q ListReportsQuery) ([]Report, int64, error) {
	var (
		buf    bytes.Buffer
		args   []any
		wheres []string
	)

	buf.WriteString(`SELECT` + reportColumns + ` FROM p2h_reports`)

	if q.VehicleID != nil {
		wheres = append(wheres, "vehicle_id = ?")
		args = append(args, *q.VehicleID)
	}
	if q.UserID != nil {
		wheres = append(wheres, "user_id = ?")
		args = append(args, *q.UserID)
	}
	if q.From != nil && *q.From != "" {
		wheres = append(wheres, "submission_date >= ?")
		args = append(args, *q.From)
	}
	if q.To != nil && *q.To != "" {
		wheres = append(wheres, "submission_date <= ?")
		args = append(args, *q.To)
	}
	if q.Status != nil && *q.Status != "" {
		wheres = append(wheres, "overall_status = ?")
		args = append(args, *q.Status)
	}
	if len(wheres) > 0 {
		buf.WriteString(" WHERE " + strings.Join(wheres, " AND "))
	}

	switch q.Sort {
	case SortSubmittedAsc:
		buf.WriteString(" ORDER BY submission_date ASC, submission_time ASC, report_id ASC")
	default:
		buf.WriteString(" ORDER BY submission_date DESC, submission_time DESC, report_id DESC")
	}

	limit := q.Limit
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}
	buf.WriteString(fmt.Sprintf(" LIMIT %d OFFSET %d", limit, offset))

	rows, err := s.db.QueryContext(ctx, buf.String(), args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Report
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var cntBuf bytes.Buffer
	cntBuf.WriteString("SELECT COUNT(*) FROM p2h_reports")
	if len(wheres) > 0 {
		cntBuf.WriteString(" WHERE " + strings.Join(wheres, " AND "))
	}
	var total int64
	if err := s.db.QueryRowContext(ctx, cntBuf.String(), args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}
