package p2h

import "time"

const (
	SortSubmittedDesc = "submitted_desc"
	SortSubmittedAsc  = "submitted_asc"
	DefaultPageLimit  = 50
	MaxPageLimit      = 200
	DefaultSort       = SortSubmittedDesc
)

// ===== Requests =====

type DetailSubmit struct {
	ChecklistItemID uint64           `json:"checklist_item_id" binding:"required"`
	Status          InspectionStatus `json:"status" binding:"required"`
	Note            *string          `json:"keterangan,omitempty"`
}

type SubmitRequest struct {
	VehicleID   uint64         `json:"vehicle_id" binding:"required"`
	ShiftNumber int            `json:"shift_number"`
	Odometer    *int           `json:"odometer,omitempty"`
	Details     []DetailSubmit `json:"details" binding:"required"`
}

type ListReportsQuery struct {
	VehicleID *uint64
	UserID    *uint64
	From      *string // YYYY-MM-DD (submission_date)
	To        *string
	Status    *string
	Limit     int
	Offset    int
	Sort      string
}

// ===== Responses =====

type ReportResponse struct {
	ReportULID     string           `json:"report_id"`
	VehicleID      uint64           `json:"vehicle_id"`
	UserID         uint64           `json:"user_id"`
	ShiftNumber    int              `json:"shift_number"`
	Odometer       *int             `json:"odometer,omitempty"`
	OverallStatus  InspectionStatus `json:"overall_status"`
	SubmissionDate string           `json:"submission_date"`
	SubmissionTime time.Time        `json:"submission_time"`
}

type DetailResponse struct {
	ChecklistItemID uint64           `json:"checklist_item_id"`
	Status          InspectionStatus `json:"status"`
	Note            *string          `json:"keterangan,omitempty"`
}

type ReportWithDetails struct {
	ReportResponse
	Details []DetailResponse `json:"details"`
}

type ListReportsResponse struct {
	Items []ReportResponse `json:"items"`
	Total int64            `json:"total"`
}

type CanSubmitResponse struct {
	Allowed      bool   `json:"allowed"`
	Code         string `json:"code,omitempty"`
	Reason       string `json:"reason"`
	CurrentShift int    `json:"current_shift"`
	Date         string `json:"operational_date"`
}

// StatusResponse is the dashboard/scan view of one vehicle's day.
type StatusResponse struct {
	VehicleID       uint64  `json:"vehicle_id"`
	HullNumber      string  `json:"hull_number"`
	HullColor       *string `json:"hull_color,omitempty"`
	ShiftPolicy     string  `json:"shift_policy"`
	CurrentShift    int     `json:"current_shift"`
	StatusLabel     string  `json:"status_p2h"`
	ColorCode       string  `json:"color_code"`
	ShiftsCompleted []int   `json:"shifts_completed"`
	CompletedToday  bool    `json:"p2h_completed_today"`
	Date            string  `json:"operational_date"`
}

// ShiftInfoResponse feeds the submission form's shift dropdown.
type ShiftInfoResponse struct {
	ShiftPolicy  string        `json:"shift_policy"`
	CurrentShift int           `json:"current_shift"`
	InWindow     bool          `json:"in_submission_window"`
	Date         string        `json:"operational_date"`
	Windows      []ShiftWindow `json:"windows"`
}

type ShiftWindow struct {
	Number         int    `json:"shift_number"`
	Start          string `json:"start"`
	End            string `json:"end"`
	ToleranceStart string `json:"tolerance_start"`
	Done           bool   `json:"done"`
}

func (r Report) toDTO() ReportResponse {
	return ReportResponse{
		ReportULID:     r.ReportULID,
		VehicleID:      r.VehicleID,
		UserID:         r.UserID,
		ShiftNumber:    r.ShiftNumber,
		Odometer:       r.Odometer,
		OverallStatus:  r.OverallStatus,
		SubmissionDate: r.SubmissionDate,
		SubmissionTime: r.SubmissionTime,
	}
}
