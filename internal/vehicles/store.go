package vehicles

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

const vehicleColumns = `
	vehicle_id, hull_number, hull_color, plate_number, vehicle_type, brand, location,
	shift_policy,
	DATE_FORMAT(stnk_expiry, '%Y-%m-%d') AS stnk_expiry,
	DATE_FORMAT(kir_expiry, '%Y-%m-%d') AS kir_expiry,
	is_active, created_at, updated_at`

func scanVehicle(row interface{ Scan(dest ...any) error }) (Vehicle, error) {
	var r vehicleRow
	if err := row.Scan(
		&r.VehicleID, &r.HullNumber, &r.HullColor, &r.PlateNumber, &r.VehicleType,
		&r.Brand, &r.Location, &r.ShiftPolicy, &r.STNKExpiry, &r.KIRExpiry,
		&r.IsActive, &r.CreatedAt, &r.UpdatedAt,
	); err != nil {
		return Vehicle{}, err
	}
	return r.toModel(), nil
}

func (s *Store) Insert(ctx context.Context, in CreateVehicleRequest) (uint64, error) {
	const q = `
	INSERT INTO vehicles
	(hull_number, hull_color, plate_number, vehicle_type, brand, location, shift_policy,
	 stnk_expiry, kir_expiry, is_active, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, 1, UTC_TIMESTAMP(), UTC_TIMESTAMP())`
	res, err := s.db.ExecContext(ctx, q,
		in.HullNumber, in.HullColor, in.PlateNumber, in.VehicleType, in.Brand,
		in.Location, in.ShiftPolicy, in.STNKExpiry, in.KIRExpiry)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

func (s *Store) GetByID(ctx context.Context, id uint64) (Vehicle, error) {
	q := `SELECT` + vehicleColumns + ` FROM vehicles WHERE vehicle_id = ?`
	return scanVehicle(s.db.QueryRowContext(ctx, q, id))
}

func (s *Store) GetByHullNumber(ctx context.Context, hull string) (Vehicle, error) {
	q := `SELECT` + vehicleColumns + ` FROM vehicles WHERE hull_number = ?`
	return scanVehicle(s.db.QueryRowContext(ctx, q, hull))
}

// Update applies only the non-nil fields. Returns affected row count.
func (s *Store) Update(ctx context.Context, id uint64, in UpdateVehicleRequest) (int64, error) {
	var (
		sets []string
		args []any
	)
	add := func(col string, v any) {
		sets = append(sets, col+" = ?")
		args = append(args, v)
	}
	if in.HullNumber != nil {
		add("hull_number", *in.HullNumber)
	}
	if in.HullColor != nil {
		add("hull_color", *in.HullColor)
	}
	if in.PlateNumber != nil {
		add("plate_number", *in.PlateNumber)
	}
	if in.VehicleType != nil {
		add("vehicle_type", *in.VehicleType)
	}
	if in.Brand != nil {
		add("brand", *in.Brand)
	}
	if in.Location != nil {
		add("location", *in.Location)
	}
	if in.ShiftPolicy != nil {
		add("shift_policy", *in.ShiftPolicy)
	}
	if in.STNKExpiry != nil {
		add("stnk_expiry", *in.STNKExpiry)
	}
	if in.KIRExpiry != nil {
		add("kir_expiry", *in.KIRExpiry)
	}
	if in.IsActive != nil {
		add("is_active", *in.IsActive)
	}
	if len(sets) == 0 {
		return 0, nil
	}
	sets = append(sets, "updated_at = UTC_TIMESTAMP()")

	q := "UPDATE vehicles SET " + strings.Join(sets, ", ") + " WHERE vehicle_id = ?"
	args = append(args, id)
	res, err := s.db.ExecContext(ctx, q, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Deactivate is a soft delete: inactive vehicles are rejected by the P2H
// submission guard but keep their report history.
func (s *Store) Deactivate(ctx context.Context, id uint64) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE vehicles SET is_active = 0, updated_at = UTC_TIMESTAMP() WHERE vehicle_id = ?`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// List: dynamic WHERE + ORDER + LIMIT/OFFSET, with a matching COUNT.
func (s *Store) List(ctx context.Context, q ListQuery) ([]Vehicle, int64, error) {
	var (
		buf    bytes.Buffer
		args   []any
		wheres []string
	)

	buf.WriteString(`SELECT` + vehicleColumns + ` FROM vehicles`)

	if q.HullNumber != nil && *q.HullNumber != "" {
		wheres = append(wheres, "hull_number LIKE ?")
		args = append(args, "%"+*q.HullNumber+"%")
	}
	if q.ShiftPolicy != nil && *q.ShiftPolicy != "" {
		wheres = append(wheres, "shift_policy = ?")
		args = append(args, *q.ShiftPolicy)
	}
	if q.VehicleType != nil && *q.VehicleType != "" {
		wheres = append(wheres, "vehicle_type = ?")
		args = append(args, *q.VehicleType)
	}
	if q.ActiveOnly {
		wheres = append(wheres, "is_active = 1")
	}
	if len(wheres) > 0 {
		buf.WriteString(" WHERE " + strings.Join(wheres, " AND "))
	}

	switch q.Sort {
	case SortHullNumberDesc:
		buf.WriteString(" ORDER BY hull_number DESC, vehicle_id DESC")
	case SortCreatedAtDesc:
		buf.WriteString(" ORDER BY created_at DESC, vehicle_id DESC")
	case SortCreatedAtAsc:
		buf.WriteString(" ORDER BY created_at ASC, vehicle_id ASC")
	default:
		buf.WriteString(" ORDER BY hull_number ASC, vehicle_id ASC")
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

	var out []Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var cntBuf bytes.Buffer
	cntBuf.WriteString("SELECT COUNT(*) FROM vehicles")
	if len(wheres) > 0 {
		cntBuf.WriteString(" WHERE " + strings.Join(wheres, " AND "))
	}
	var total int64
	if err := s.db.QueryRowContext(ctx, cntBuf.String(), args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// ListActive returns all active vehicles, used by the scheduler jobs.
func (s *Store) ListActive(ctx context.Context) ([]Vehicle, error) {
	q := `SELECT` + vehicleColumns + ` FROM vehicles WHERE is_active = 1 ORDER BY hull_number ASC`
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
