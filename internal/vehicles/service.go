package vehicles

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	mysql "github.com/go-sql-driver/mysql"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"P2H-backend/internal/shift"
)

// ===== Error model (same shape as p2h/auth) =====
type Code string

const (
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
	CodeNotFound        Code = "NOT_FOUND"
	CodeConflict        Code = "CONFLICT"
	CodeInternal        Code = "INTERNAL"
)

type APIError struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string      { return fmt.Sprintf("%s: %s", e.Code, e.Message) }
func ErrInvalid(msg string) *APIError  { return &APIError{Code: CodeInvalidArgument, Message: msg} }
func ErrNotFound(msg string) *APIError { return &APIError{Code: CodeNotFound, Message: msg} }
func ErrConflict(msg string) *APIError { return &APIError{Code: CodeConflict, Message: msg} }

func toHTTPStatus(err error) int {
	var api *APIError
	if errors.As(err, &api) {
		switch api.Code {
		case CodeInvalidArgument:
			return 400
		case CodeNotFound:
			return 404
		case CodeConflict:
			return 409
		default:
			return 500
		}
	}
	return 500
}

// ===== Service =====

type Service struct {
	store *Store
}

func NewService(db *sql.DB) *Service { return &Service{store: NewStore(db)} }

// Brand names arrive in mixed casing from the field ("TOYOTA", "hino");
// normalize for display.
var brandCaser = cases.Title(language.Indonesian)

func normalizeBrand(b *string) *string {
	if b == nil {
		return nil
	}
	v := strings.TrimSpace(*b)
	if v == "" {
		return nil
	}
	v = brandCaser.String(strings.ToLower(v))
	return &v
}

func validDate(s *string) bool {
	if s == nil || *s == "" {
		return true
	}
	_, err := time.ParseInLocation(shift.DateLayout, *s, time.UTC)
	return err == nil
}

// POST /vehicles
func (s *Service) Create(ctx context.Context, in CreateVehicleRequest) (VehicleResponse, error) {
	in.HullNumber = strings.ToUpper(strings.TrimSpace(in.HullNumber))
	if in.HullNumber == "" || strings.TrimSpace(in.PlateNumber) == "" {
		return VehicleResponse{}, ErrInvalid("hull_number and plate_number are required")
	}
	if !shift.Policy(in.ShiftPolicy).Valid() {
		return VehicleResponse{}, ErrInvalid("shift_policy must be one of shift, non_shift, long_shift")
	}
	if !validDate(in.STNKExpiry) || !validDate(in.KIRExpiry) {
		return VehicleResponse{}, ErrInvalid("stnk_expiry and kir_expiry must be YYYY-MM-DD")
	}
	in.Brand = normalizeBrand(in.Brand)

	id, err := s.store.Insert(ctx, in)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == 1062 {
			return VehicleResponse{}, ErrConflict("hull_number already exists")
		}
		return VehicleResponse{}, err
	}

	v, err := s.store.GetByID(ctx, id)
	if err != nil {
		return VehicleResponse{}, err
	}
	return v.toDTO(), nil
}

// GET /vehicles/:vehicle_id
func (s *Service) Get(ctx context.Context, id uint64) (VehicleResponse, error) {
	v, err := s.store.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return VehicleResponse{}, ErrNotFound("vehicle not found")
		}
		return VehicleResponse{}, err
	}
	return v.toDTO(), nil
}

// GET /scan/:hull_number — exact lookup by hull number, the entry point of
// the field QR flow.
func (s *Service) GetByHull(ctx context.Context, hull string) (VehicleResponse, error) {
	hull = strings.ToUpper(strings.TrimSpace(hull))
	if hull == "" {
		return VehicleResponse{}, ErrInvalid("hull_number is required")
	}
	v, err := s.store.GetByHullNumber(ctx, hull)
	if err != nil {
		if err == sql.ErrNoRows {
			return VehicleResponse{}, ErrNotFound("vehicle not found")
		}
		return VehicleResponse{}, err
	}
	return v.toDTO(), nil
}

// GetModel is the collaborator entry point for the p2h package: it needs the
// shift policy and active flag, not the DTO.
func (s *Service) GetModel(ctx context.Context, id uint64) (Vehicle, error) {
	v, err := s.store.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return Vehicle{}, ErrNotFound("vehicle not found")
		}
		return Vehicle{}, err
	}
	return v, nil
}

// GET /vehicles
func (s *Service) List(ctx context.Context, q ListQuery) (ListResponse, error) {
	if q.Sort == "" {
		q.Sort = DefaultSort
	}
	items, total, err := s.store.List(ctx, q)
	if err != nil {
		return ListResponse{}, err
	}
	out := make([]VehicleResponse, 0, len(items))
	for _, v := range items {
		out = append(out, v.toDTO())
	}
	return ListResponse{Items: out, Total: total}, nil
}

// PUT /vehicles/:vehicle_id
func (s *Service) Update(ctx context.Context, id uint64, in UpdateVehicleRequest) (VehicleResponse, error) {
	if in.ShiftPolicy != nil && !shift.Policy(*in.ShiftPolicy).Valid() {
		return VehicleResponse{}, ErrInvalid("shift_policy must be one of shift, non_shift, long_shift")
	}
	if !validDate(in.STNKExpiry) || !validDate(in.KIRExpiry) {
		return VehicleResponse{}, ErrInvalid("stnk_expiry and kir_expiry must be YYYY-MM-DD")
	}
	in.Brand = normalizeBrand(in.Brand)

	n, err := s.store.Update(ctx, id, in)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == 1062 {
			return VehicleResponse{}, ErrConflict("hull_number already exists")
		}
		return VehicleResponse{}, err
	}
	if n == 0 {
		// Either the vehicle is missing or nothing changed; distinguish.
		if _, err := s.store.GetByID(ctx, id); err == sql.ErrNoRows {
			return VehicleResponse{}, ErrNotFound("vehicle not found")
		}
	}
	return s.Get(ctx, id)
}

// DELETE /vehicles/:vehicle_id (soft delete)
func (s *Service) Deactivate(ctx context.Context, id uint64) error {
	n, err := s.store.Deactivate(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound("vehicle not found")
	}
	return nil
}

// ListExpiring returns active vehicles whose STNK or KIR expires within the
// given number of days from today (operational date). Feeds the 05:00 job.
func (s *Service) ListExpiring(ctx context.Context, today time.Time, withinDays int) ([]ExpiringDocument, error) {
	all, err := s.store.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	var out []ExpiringDocument
	check := func(v Vehicle, docType string, expiry *string) {
		if expiry == nil || *expiry == "" {
			return
		}
		d, err := time.ParseInLocation(shift.DateLayout, *expiry, today.Location())
		if err != nil {
			return
		}
		days := int(d.Sub(today).Hours() / 24)
		if days <= withinDays {
			out = append(out, ExpiringDocument{Vehicle: v, DocType: docType, ExpiryDate: *expiry, DaysLeft: days})
		}
	}
	for _, v := range all {
		check(v, "STNK", v.STNKExpiry)
		check(v, "KIR", v.KIRExpiry)
	}
	return out, nil
}
