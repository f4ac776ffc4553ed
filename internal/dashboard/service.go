package dashboard

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	"P2H-backend/internal/shift"
)

// ===== Error model (same shape as p2h/vehicles) =====

type Code string

const (
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
	CodeInternal        Code = "INTERNAL"
)

type APIError struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string     { return fmt.Sprintf("%s: %s", e.Code, e.Message) }
func ErrInvalid(msg string) *APIError { return &APIError{Code: CodeInvalidArgument, Message: msg} }

func toHTTPStatus(err error) int {
	var api *APIError
	if errors.As(err, &api) && api.Code == CodeInvalidArgument {
		return 400
	}
	return 500
}

// ===== Service =====

var monthNamesID = [12]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

type Service struct {
	store *Store
	loc   *time.Location
	nowFn func() time.Time
}

func NewService(db *sql.DB, loc *time.Location) *Service {
	return &Service{store: NewStore(db), loc: loc, nowFn: time.Now}
}

func (s *Service) now() time.Time { return s.nowFn().In(s.loc) }

func validDate(s *string) bool {
	if s == nil || *s == "" {
		return true
	}
	_, err := time.ParseInLocation(shift.DateLayout, *s, time.UTC)
	return err == nil
}

// pendingVehicles is the fleet minus the vehicles that already reported
// today, floored at zero (a vehicle can file more than once per day).
func pendingVehicles(totalVehicles, reportedToday int64) int64 {
	if reportedToday >= totalVehicles {
		return 0
	}
	return totalVehicles - reportedToday
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

// summarize folds the twelve monthly tallies into year totals with
// percentages per status.
func summarize(months [12]StatusCounts) MonthlySummary {
	var sum MonthlySummary
	for _, m := range months {
		sum.TotalNormal += m.Normal
		sum.TotalAbnormal += m.Abnormal
		sum.TotalWarning += m.Warning
	}
	sum.TotalReports = sum.TotalNormal + sum.TotalAbnormal + sum.TotalWarning
	if sum.TotalReports > 0 {
		total := float64(sum.TotalReports)
		sum.NormalPercentage = round2(float64(sum.TotalNormal) / total * 100)
		sum.AbnormalPercentage = round2(float64(sum.TotalAbnormal) / total * 100)
		sum.WarningPercentage = round2(float64(sum.TotalWarning) / total * 100)
	}
	return sum
}

// validYear bounds the monthly view to a sane range around the current year.
func validYear(year, currentYear int) bool {
	return year >= MinReportYear && year <= currentYear+5
}

// GET /dashboard/statistics
func (s *Service) Statistics(ctx context.Context, from, to *string) (StatisticsResponse, error) {
	if !validDate(from) || !validDate(to) {
		return StatisticsResponse{}, ErrInvalid("start_date and end_date must be YYYY-MM-DD")
	}

	totalVehicles, err := s.store.CountVehicles(ctx)
	if err != nil {
		return StatisticsResponse{}, err
	}
	counts, err := s.store.CountReportsByStatus(ctx, from, to)
	if err != nil {
		return StatisticsResponse{}, err
	}

	today := s.now().Format(shift.DateLayout)
	reportedToday, err := s.store.CountVehiclesReportedOn(ctx, today)
	if err != nil {
		return StatisticsResponse{}, err
	}

	return StatisticsResponse{
		TotalVehicles:     totalVehicles,
		TotalNormal:       counts.Normal,
		TotalAbnormal:     counts.Abnormal,
		TotalWarning:      counts.Warning,
		TotalCompletedP2H: counts.Total(),
		TotalPendingP2H:   pendingVehicles(totalVehicles, reportedToday),
		From:              from,
		To:                to,
	}, nil
}

// GET /dashboard/monthly-reports
func (s *Service) MonthlyReports(ctx context.Context, year int, vehicleType *string) (MonthlyReportsResponse, error) {
	currentYear := s.now().Year()
	if year == 0 {
		year = currentYear
	}
	if !validYear(year, currentYear) {
		return MonthlyReportsResponse{}, ErrInvalid(
			fmt.Sprintf("year must be between %d and %d", MinReportYear, currentYear+5))
	}

	months, err := s.store.MonthlyCounts(ctx, year, vehicleType)
	if err != nil {
		return MonthlyReportsResponse{}, err
	}

	out := MonthlyReportsResponse{
		Year:        year,
		VehicleType: "all",
		Months:      make([]MonthCounts, 0, 12),
		Summary:     summarize(months),
	}
	if vehicleType != nil && *vehicleType != "" {
		out.VehicleType = *vehicleType
	}
	for i, m := range months {
		out.Months = append(out.Months, MonthCounts{Month: monthNamesID[i], StatusCounts: m})
	}
	return out, nil
}

// GET /dashboard/vehicle-type-status
func (s *Service) VehicleTypeStatus(ctx context.Context, vehicleType string, from, to *string) (VehicleTypeStatusResponse, error) {
	if vehicleType == "" {
		return VehicleTypeStatusResponse{}, ErrInvalid("vehicle_type is required")
	}
	if !validDate(from) || !validDate(to) {
		return VehicleTypeStatusResponse{}, ErrInvalid("start_date and end_date must be YYYY-MM-DD")
	}

	counts, err := s.store.VehicleTypeStatus(ctx, vehicleType, from, to)
	if err != nil {
		return VehicleTypeStatusResponse{}, err
	}
	return VehicleTypeStatusResponse{
		VehicleType:  vehicleType,
		StatusCounts: counts,
		Total:        counts.Total(),
	}, nil
}

// GET /dashboard/vehicle-types
func (s *Service) VehicleTypes(ctx context.Context) (VehicleTypesResponse, error) {
	types, err := s.store.VehicleTypes(ctx)
	if err != nil {
		return VehicleTypesResponse{}, err
	}
	if types == nil {
		types = []string{}
	}
	return VehicleTypesResponse{VehicleTypes: types}, nil
}

// GET /dashboard/recent-reports
func (s *Service) RecentReports(ctx context.Context, limit int) (RecentReportsResponse, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	if limit > MaxRecentLimit {
		limit = MaxRecentLimit
	}

	reports, err := s.store.RecentReports(ctx, limit)
	if err != nil {
		return RecentReportsResponse{}, err
	}
	if reports == nil {
		reports = []RecentReport{}
	}
	return RecentReportsResponse{Reports: reports}, nil
}
