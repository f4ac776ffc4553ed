package p2h

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"time"

	"github.com/oklog/ulid/v2"

	platformdb "P2H-backend/internal/platform/db"
	"P2H-backend/internal/shift"
	"P2H-backend/internal/vehicles"
)

// VehicleSource supplies the vehicle's shift policy and active flag. The
// vehicles service satisfies this.
type VehicleSource interface {
	GetModel(ctx context.Context, id uint64) (vehicles.Vehicle, error)
}

// Notifier is the alert fan-out collaborator. Invoked after commit when a
// report's overall status is not normal; delivery and retry semantics are the
// implementation's problem, not this package's.
type Notifier interface {
	NotifyInspection(ctx context.Context, v vehicles.Vehicle, r Report) error
}

type Service struct {
	db       *sql.DB
	store    *Store
	vehicles VehicleSource
	notifier Notifier
	loc      *time.Location
	nowFn    func() time.Time
}

func NewService(db *sql.DB, vs VehicleSource, n Notifier, loc *time.Location) *Service {
	return &Service{
		db:       db,
		store:    NewStore(db),
		vehicles: vs,
		notifier: n,
		loc:      loc,
		nowFn:    time.Now,
	}
}

// now is the wall clock in the site operating timezone.
func (s *Service) now() time.Time { return s.nowFn().In(s.loc) }

// loadVehicle resolves the vehicle and enforces the hard preconditions:
// unknown or inactive vehicles are rejected before any shift logic runs.
func (s *Service) loadVehicle(ctx context.Context, id uint64) (vehicles.Vehicle, error) {
	v, err := s.vehicles.GetModel(ctx, id)
	if err != nil {
		var api *vehicles.APIError
		if errors.As(err, &api) && api.Code == vehicles.CodeNotFound {
			return vehicles.Vehicle{}, ErrNotFound("Kendaraan tidak ditemukan")
		}
		return vehicles.Vehicle{}, err
	}
	if !v.IsActive {
		return vehicles.Vehicle{}, &APIError{Code: CodeVehicleInactive, Message: "Kendaraan sedang dalam status non-aktif"}
	}
	return v, nil
}

// GET /p2h/can-submit — advisory pre-check for the form. The verdict can go
// stale between this call and Submit; Submit re-evaluates inside the
// transaction.
func (s *Service) CanSubmit(ctx context.Context, vehicleID uint64, selectedShift int) (CanSubmitResponse, error) {
	v, err := s.loadVehicle(ctx, vehicleID)
	if err != nil {
		return CanSubmitResponse{}, err
	}

	now := s.now()
	date := shift.OperationalDate(v.ShiftPolicy, now).Format(shift.DateLayout)
	if selectedShift == 0 {
		selectedShift = shift.CurrentShift(v.ShiftPolicy, now)
	}

	tracker, err := s.store.GetTracker(ctx, vehicleID, date)
	if err != nil {
		return CanSubmitResponse{}, err
	}

	dec := EvaluateSubmission(v.ShiftPolicy, tracker, selectedShift, now)
	return CanSubmitResponse{
		Allowed:      dec.Allowed,
		Code:         string(dec.Code),
		Reason:       dec.Reason,
		CurrentShift: shift.CurrentShift(v.ShiftPolicy, now),
		Date:         date,
	}, nil
}

// POST /p2h/reports
func (s *Service) Submit(ctx context.Context, userID uint64, in SubmitRequest) (ReportResponse, error) {
	if len(in.Details) == 0 {
		return ReportResponse{}, ErrInvalid("details are required")
	}
	for _, d := range in.Details {
		if !d.Status.Valid() {
			return ReportResponse{}, ErrInvalid("detail status must be normal, warning or abnormal")
		}
	}

	v, err := s.loadVehicle(ctx, in.VehicleID)
	if err != nil {
		return ReportResponse{}, err
	}

	now := s.now()
	date := shift.OperationalDate(v.ShiftPolicy, now).Format(shift.DateLayout)

	// Shift under which the report is filed. Non-shift vehicles always file
	// under 1; for the others an omitted shift defaults to the current one.
	shiftNumber := in.ShiftNumber
	if v.ShiftPolicy == shift.PolicyNonShift {
		shiftNumber = 1
	} else if shiftNumber == 0 {
		shiftNumber = shift.CurrentShift(v.ShiftPolicy, now)
	}

	overall := CalculateOverallStatus(in.Details)

	report := Report{
		ReportULID:     ulid.Make().String(),
		VehicleID:      v.VehicleID,
		UserID:         userID,
		ShiftNumber:    shiftNumber,
		Odometer:       in.Odometer,
		OverallStatus:  overall,
		SubmissionDate: date,
		SubmissionTime: now,
	}

	err = platformdb.RunInTx(ctx, s.db, nil, func(ctx context.Context, tx platformdb.DBTX) error {
		st := NewStore(tx)

		tracker, err := st.GetOrCreateTracker(ctx, v.VehicleID, date)
		if err != nil {
			return err
		}

		// Advisory fast-fail; MarkShiftDone below is the authoritative guard.
		if dec := EvaluateSubmission(v.ShiftPolicy, &tracker, shiftNumber, now); !dec.Allowed {
			return &APIError{Code: dec.Code, Message: dec.Reason}
		}

		reportID, err := st.InsertReport(ctx, report)
		if err != nil {
			return err
		}
		report.ReportID = reportID
		if err := st.InsertDetails(ctx, reportID, in.Details); err != nil {
			return err
		}

		ok, err := st.MarkShiftDone(ctx, tracker.TrackerID, shiftNumber, reportID, v.ShiftPolicy.ShiftCount())
		if err != nil {
			return err
		}
		if !ok {
			// Lost the race: another submission claimed this shift after our
			// snapshot. Roll the whole report back.
			return &APIError{Code: CodeAlreadySubmitted,
				Message: "P2H untuk shift ini sudah diisi oleh pengguna lain"}
		}
		return nil
	})
	if err != nil {
		return ReportResponse{}, err
	}

	log.Printf("[INFO] P2H report %s recorded for unit %s (shift %d, status %s)",
		report.ReportULID, v.HullNumber, shiftNumber, overall)

	// Alert fan-out only for problem reports. Fire and forget: delivery must
	// not delay or fail the submission.
	if overall != StatusNormal && s.notifier != nil {
		go func(v vehicles.Vehicle, r Report) {
			nctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := s.notifier.NotifyInspection(nctx, v, r); err != nil {
				log.Printf("[WARN] P2H alert for unit %s failed: %v", v.HullNumber, err)
			}
		}(v, report)
	}

	return report.toDTO(), nil
}

// VehicleStatus is the dashboard/scan status for one vehicle, today. Pure
// read: an absent tracker reads as nothing-done and is NOT created here.
func (s *Service) VehicleStatus(ctx context.Context, vehicleID uint64) (StatusResponse, error) {
	v, err := s.vehicles.GetModel(ctx, vehicleID)
	if err != nil {
		var api *vehicles.APIError
		if errors.As(err, &api) && api.Code == vehicles.CodeNotFound {
			return StatusResponse{}, ErrNotFound("Unit tidak terdaftar")
		}
		return StatusResponse{}, err
	}

	now := s.now()
	date := shift.OperationalDate(v.ShiftPolicy, now).Format(shift.DateLayout)

	tracker, err := s.store.GetTracker(ctx, vehicleID, date)
	if err != nil {
		return StatusResponse{}, err
	}

	st := AggregateStatus(v.ShiftPolicy, tracker, now)
	return StatusResponse{
		VehicleID:       v.VehicleID,
		HullNumber:      v.HullNumber,
		HullColor:       v.HullColor,
		ShiftPolicy:     string(v.ShiftPolicy),
		CurrentShift:    st.CurrentShift,
		StatusLabel:     st.Color.Label(),
		ColorCode:       st.Color.String(),
		ShiftsCompleted: st.ShiftsCompleted,
		// Any submission today unlocks the vehicle; the "Lengkap" label still
		// requires full completion.
		CompletedToday: st.Color != ColorRed,
		Date:           date,
	}, nil
}

// ShiftInfo feeds the submission form: which windows exist for this vehicle,
// which are already done, and which one is current.
func (s *Service) ShiftInfo(ctx context.Context, vehicleID uint64) (ShiftInfoResponse, error) {
	v, err := s.loadVehicle(ctx, vehicleID)
	if err != nil {
		return ShiftInfoResponse{}, err
	}

	now := s.now()
	date := shift.OperationalDate(v.ShiftPolicy, now).Format(shift.DateLayout)

	tracker, err := s.store.GetTracker(ctx, vehicleID, date)
	if err != nil {
		return ShiftInfoResponse{}, err
	}

	windows := shift.Windows(v.ShiftPolicy)
	out := make([]ShiftWindow, 0, len(windows))
	for _, w := range windows {
		out = append(out, ShiftWindow{
			Number:         w.Number,
			Start:          w.Start,
			End:            w.End,
			ToleranceStart: w.ToleranceStart,
			Done:           tracker.ShiftDone(w.Number),
		})
	}

	return ShiftInfoResponse{
		ShiftPolicy:  string(v.ShiftPolicy),
		CurrentShift: shift.CurrentShift(v.ShiftPolicy, now),
		InWindow:     shift.InSubmissionWindow(v.ShiftPolicy, now),
		Date:         date,
		Windows:      out,
	}, nil
}

// GET /p2h/reports
func (s *Service) ListReports(ctx context.Context, q ListReportsQuery) (ListReportsResponse, error) {
	if q.Sort == "" {
		q.Sort = DefaultSort
	}
	items, total, err := s.store.ListReports(ctx, q)
	if err != nil {
		return ListReportsResponse{}, err
	}
	out := make([]ReportResponse, 0, len(items))
	for _, r := range items {
		out = append(out, r.toDTO())
	}
	return ListReportsResponse{Items: out, Total: total}, nil
}

// GET /p2h/reports/:report_ulid
func (s *Service) GetReport(ctx context.Context, reportULID string) (ReportWithDetails, error) {
	r, err := s.store.GetReportByULID(ctx, reportULID)
	if err != nil {
		if err == sql.ErrNoRows {
			return ReportWithDetails{}, ErrNotFound("Laporan P2H tidak ditemukan")
		}
		return ReportWithDetails{}, err
	}
	details, err := s.store.GetDetails(ctx, r.ReportID)
	if err != nil {
		return ReportWithDetails{}, err
	}

	out := ReportWithDetails{ReportResponse: r.toDTO()}
	for _, d := range details {
		out.Details = append(out.Details, DetailResponse{
			ChecklistItemID: d.ChecklistItemID,
			Status:          d.Status,
			Note:            d.Note,
		})
	}
	return out, nil
}
