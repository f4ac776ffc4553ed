package dashboard

const (
	DefaultRecentLimit = 10
	MaxRecentLimit     = 50

	// Accepted year range for the monthly view.
	MinReportYear = 2020
)

// StatusCounts is a report tally split by overall status.
type StatusCounts struct {
	Normal   int64 `json:"normal"`
	Abnormal int64 `json:"abnormal"`
	Warning  int64 `json:"warning"`
}

func (c StatusCounts) Total() int64 { return c.Normal + c.Abnormal + c.Warning }

type StatisticsResponse struct {
	TotalVehicles     int64   `json:"total_vehicles"`
	TotalNormal       int64   `json:"total_normal"`
	TotalAbnormal     int64   `json:"total_abnormal"`
	TotalWarning      int64   `json:"total_warning"`
	TotalCompletedP2H int64   `json:"total_completed_p2h"`
	TotalPendingP2H   int64   `json:"total_pending_p2h"`
	From              *string `json:"start_date,omitempty"`
	To                *string `json:"end_date,omitempty"`
}

// MonthCounts is one month's tally for the yearly chart.
type MonthCounts struct {
	Month string `json:"month"` // Indonesian month name
	StatusCounts
}

type MonthlySummary struct {
	TotalNormal        int64   `json:"total_normal"`
	TotalAbnormal      int64   `json:"total_abnormal"`
	TotalWarning       int64   `json:"total_warning"`
	TotalReports       int64   `json:"total_reports"`
	NormalPercentage   float64 `json:"normal_percentage"`
	AbnormalPercentage float64 `json:"abnormal_percentage"`
	WarningPercentage  float64 `json:"warning_percentage"`
}

type MonthlyReportsResponse struct {
	Year        int            `json:"year"`
	VehicleType string         `json:"vehicle_type"`
	Months      []MonthCounts  `json:"monthly_data"`
	Summary     MonthlySummary `json:"summary"`
}

type VehicleTypeStatusResponse struct {
	VehicleType string `json:"vehicle_type"`
	StatusCounts
	Total int64 `json:"total"`
}

type VehicleTypesResponse struct {
	VehicleTypes []string `json:"vehicle_types"`
}

// RecentReport is one row of the dashboard's latest-submissions feed.
type RecentReport struct {
	ReportULID     string  `json:"report_id"`
	SubmissionDate string  `json:"submission_date"`
	SubmissionTime string  `json:"submission_time"`
	OverallStatus  string  `json:"overall_status"`
	HullNumber     string  `json:"hull_number"`
	PlateNumber    string  `json:"plate_number"`
	VehicleType    string  `json:"vehicle_type"`
	Brand          *string `json:"brand,omitempty"`
	SubmittedBy    string  `json:"submitted_by"`
	SubmitterNIK   string  `json:"submitter_nik"`
}

type RecentReportsResponse struct {
	Reports []RecentReport `json:"reports"`
}
