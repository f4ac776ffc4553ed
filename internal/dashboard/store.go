package dashboard

import (
	"bytes"
	"context"
	"database/sql"
	"strings"
	"time"
)

type DBTX interface {
	ExecContext(ctx context.Context, q string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, q string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, q string, args ...any) *sql.Row
}

type Store struct{ db DBTX }

func NewStore(db DBTX) *Store { return &Store{db: db} }

func (s *Store) CountVehicles(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM vehicles`).Scan(&n)
	return n, err
}

// CountReportsByStatus tallies reports per overall status, optionally bounded
// by submission_date.
func (s *Store) CountReportsByStatus(ctx context.Context, from, to *string) (StatusCounts, error) {
	var (
		buf    bytes.Buffer
		args   []any
		wheres []string
	)
	buf.WriteString(`SELECT overall_status, COUNT(*) FROM p2h_reports`)
	if from != nil && *from != "" {
		wheres = append(wheres, "submission_date >= ?")
		args = append(args, *from)
	}
	if to != nil && *to != "" {
		wheres = append(wheres, "submission_date <= ?")
		args = append(args, *to)
	}
	if len(wheres) > 0 {
		buf.WriteString(" WHERE " + strings.Join(wheres, " AND "))
	}
	buf.WriteString(" GROUP BY overall_status")

	rows, err := s.db.QueryContext(ctx, buf.String(), args...)
	if err != nil {
		return StatusCounts{}, err
	}
	defer rows.Close()

	var out StatusCounts
	for rows.Next() {
		var status string
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			return StatusCounts{}, err
		}
		switch status {
		case "normal":
			out.Normal = n
		case "abnormal":
			out.Abnormal = n
		case "warning":
			out.Warning = n
		}
	}
	return out, rows.Err()
}

// CountVehiclesReportedOn counts distinct vehicles with at least one report
// filed under the given date. Feeds the pending-P2H figure.
func (s *Store) CountVehiclesReportedOn(ctx context.Context, date string) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(DISTINCT vehicle_id) FROM p2h_reports WHERE submission_date = ?`, date).Scan(&n)
	return n, err
}

// MonthlyCounts returns per-month status tallies for one year, in a single
// grouped query. Index 0 is January.
func (s *Store) MonthlyCounts(ctx context.Context, year int, vehicleType *string) ([12]StatusCounts, error) {
	var out [12]StatusCounts

	var (
		buf  bytes.Buffer
		args []any
	)
	buf.WriteString(`
	SELECT MONTH(r.submission_date), r.overall_status, COUNT(*)
	FROM p2h_reports r`)
	if vehicleType != nil && *vehicleType != "" {
		buf.WriteString(` JOIN vehicles v ON v.vehicle_id = r.vehicle_id WHERE YEAR(r.submission_date) = ? AND v.vehicle_type = ?`)
		args = append(args, year, *vehicleType)
	} else {
		buf.WriteString(` WHERE YEAR(r.submission_date) = ?`)
		args = append(args, year)
	}
	buf.WriteString(` GROUP BY MONTH(r.submission_date), r.overall_status`)

	rows, err := s.db.QueryContext(ctx, buf.String(), args...)
	if err != nil {
		return out, err
	}
	defer rows.Close()

	for rows.Next() {
		var month int
		var status string
		var n int64
		if err := rows.Scan(&month, &status, &n); err != nil {
			return out, err
		}
		if month < 1 || month > 12 {
			continue
		}
		switch status {
		case "normal":
			out[month-1].Normal = n
		case "abnormal":
			out[month-1].Abnormal = n
		case "warning":
			out[month-1].Warning = n
		}
	}
	return out, rows.Err()
}

// VehicleTypeStatus tallies reports for one vehicle type, optionally bounded
// by submission_date.
func (s *Store) VehicleTypeStatus(ctx context.Context, vehicleType string, from, to *string) (StatusCounts, error) {
	var (
		buf  bytes.Buffer
		args []any
	)
	buf.WriteString(`
	SELECT r.overall_status, COUNT(*)
	FROM p2h_reports r
	JOIN vehicles v ON v.vehicle_id = r.vehicle_id
	WHERE v.vehicle_type = ?`)
	args = append(args, vehicleType)
	if from != nil && *from != "" {
		buf.WriteString(" AND r.submission_date >= ?")
		args = append(args, *from)
	}
	if to != nil && *to != "" {
		buf.WriteString(" AND r.submission_date <= ?")
		args = append(args, *to)
	}
	buf.WriteString(" GROUP BY r.overall_status")

	rows, err := s.db.QueryContext(ctx, buf.String(), args...)
	if err != nil {
		return StatusCounts{}, err
	}
	defer rows.Close()

	var out StatusCounts
	for rows.Next() {
		var status string
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			return StatusCounts{}, err
		}
		switch status {
		case "normal":
			out.Normal = n
		case "abnormal":
			out.Abnormal = n
		case "warning":
			out.Warning = n
		}
	}
	return out, rows.Err()
}

func (s *Store) VehicleTypes(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT vehicle_type FROM vehicles WHERE vehicle_type <> '' ORDER BY vehicle_type ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var vt string
		if err := rows.Scan(&vt); err != nil {
			return nil, err
		}
		out = append(out, vt)
	}
	return out, rows.Err()
}

// RecentReports returns the latest submissions joined with vehicle and
// submitter info for the dashboard feed.
func (s *Store) RecentReports(ctx context.Context, limit int) ([]RecentReport, error) {
	const q = `
	SELECT r.report_ulid,
	       DATE_FORMAT(r.submission_date, '%Y-%m-%d'),
	       r.submission_time, r.overall_status,
	       v.hull_number, v.plate_number, v.vehicle_type, v.brand,
	       u.full_name, u.nik
	FROM p2h_reports r
	JOIN vehicles v ON v.vehicle_id = r.vehicle_id
	JOIN users u ON u.user_id = r.user_id
	ORDER BY r.submission_date DESC, r.submission_time DESC, r.report_id DESC
	LIMIT ?`

	rows, err := s.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RecentReport
	for rows.Next() {
		var r RecentReport
		var submitted time.Time
		if err := rows.Scan(&r.ReportULID, &r.SubmissionDate, &submitted, &r.OverallStatus,
			&r.HullNumber, &r.PlateNumber, &r.VehicleType, &r.Brand,
			&r.SubmittedBy, &r.SubmitterNIK); err != nil {
			return nil, err
		}
		r.SubmissionTime = submitted.UTC().Format(time.RFC3339)
		out = append(out, r)
	}
	return out, rows.Err()
}
