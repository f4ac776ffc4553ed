package p2h

import "time"

// InspectionStatus is the result of one checklist item, or of the whole
// report (worst-case over items).
type InspectionStatus string

const (
	StatusNormal   InspectionStatus = "normal"
	StatusWarning  InspectionStatus = "warning"
	StatusAbnormal InspectionStatus = "abnormal"
)

func (s InspectionStatus) Valid() bool {
	switch s {
	case StatusNormal, StatusWarning, StatusAbnormal:
		return true
	}
	return false
}

// Color is the dashboard indicator for a vehicle's daily completion.
type Color int

const (
	ColorRed Color = iota
	ColorYellow
	ColorGreen
)

func (c Color) String() string {
	switch c {
	case ColorGreen:
		return "green"
	case ColorYellow:
		return "yellow"
	default:
		return "red"
	}
}

// Label renders the operator-facing completion label. Only green counts as
// complete.
func (c Color) Label() string {
	if c == ColorGreen {
		return "Lengkap"
	}
	return "Belum Lengkap"
}

// DailyTracker is the per-vehicle-per-operational-day submission record.
// UNIQUE (vehicle_id, date); created lazily, mutated in place, never deleted.
// Done flags only ever go false -> true within a day.
type DailyTracker struct {
	TrackerID       uint64
	VehicleID       uint64
	Date            string // operational date, YYYY-MM-DD
	Shift1Done      bool
	Shift1ReportID  *uint64
	Shift2Done      bool
	Shift2ReportID  *uint64
	Shift3Done      bool
	Shift3ReportID  *uint64
	FinalStatus     Color
	SubmissionCount int
	UpdatedAt       time.Time
}

// ShiftDone reports whether the given shift's flag is set. Unknown shift
// numbers read as done so the guard fails closed.
func (t *DailyTracker) ShiftDone(n int) bool {
	if t == nil {
		return false
	}
	switch n {
	case 1:
		return t.Shift1Done
	case 2:
		return t.Shift2Done
	case 3:
		return t.Shift3Done
	}
	return true
}

// DoneCount is the number of completed shifts.
func (t *DailyTracker) DoneCount() int {
	if t == nil {
		return 0
	}
	n := 0
	for _, done := range []bool{t.Shift1Done, t.Shift2Done, t.Shift3Done} {
		if done {
			n++
		}
	}
	return n
}

// Report is the P2H report header.
type Report struct {
	ReportID       uint64
	ReportULID     string
	VehicleID      uint64
	UserID         uint64
	ShiftNumber    int
	Odometer       *int
	OverallStatus  InspectionStatus
	SubmissionDate string // operational date, YYYY-MM-DD
	SubmissionTime time.Time
	CreatedAt      time.Time
}

// Detail is one checklist answer belonging to a report.
type Detail struct {
	DetailID        uint64
	ReportID        uint64
	ChecklistItemID uint64
	Status          InspectionStatus
	Note            *string
}

// DB rows (scan targets)

type trackerRow struct {
	TrackerID       uint64
	VehicleID       uint64
	Date            string
	Shift1Done      bool
	Shift1ReportID  *uint64
	Shift2Done      bool
	Shift2ReportID  *uint64
	Shift3Done      bool
	Shift3ReportID  *uint64
	FinalStatus     string
	SubmissionCount int
	UpdatedAt       time.Time
}

func (r trackerRow) toModel() DailyTracker {
	return DailyTracker{
		TrackerID:       r.TrackerID,
		VehicleID:       r.VehicleID,
		Date:            r.Date,
		Shift1Done:      r.Shift1Done,
		Shift1ReportID:  r.Shift1ReportID,
		Shift2Done:      r.Shift2Done,
		Shift2ReportID:  r.Shift2ReportID,
		Shift3Done:      r.Shift3Done,
		Shift3ReportID:  r.Shift3ReportID,
		FinalStatus:     parseColor(r.FinalStatus),
		SubmissionCount: r.SubmissionCount,
		UpdatedAt:       r.UpdatedAt.UTC(),
	}
}

func parseColor(s string) Color {
	switch s {
	case "green":
		return ColorGreen
	case "yellow":
		return ColorYellow
	default:
		return ColorRed
	}
}

type reportRow struct {
	ReportID       uint64
	ReportULID     string
	VehicleID      uint64
	UserID         uint64
	ShiftNumber    int
	Odometer       *int
	OverallStatus  string
	SubmissionDate string
	SubmissionTime time.Time
	CreatedAt      time.Time
}

func (r reportRow) toModel() Report {
	return Report{
		ReportID:       r.ReportID,
		ReportULID:     r.ReportULID,
		VehicleID:      r.VehicleID,
		UserID:         r.UserID,
		ShiftNumber:    r.ShiftNumber,
		Odometer:       r.Odometer,
		OverallStatus:  InspectionStatus(r.OverallStatus),
		SubmissionDate: r.SubmissionDate,
		SubmissionTime: r.SubmissionTime.UTC(),
		CreatedAt:      r.CreatedAt.UTC(),
	}
}
