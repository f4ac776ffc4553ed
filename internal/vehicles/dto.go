package vehicles

import "time"

const (
	SortHullNumberAsc  = "hull_number_asc"
	SortHullNumberDesc = "hull_number_desc"
	SortCreatedAtDesc  = "created_at_desc"
	SortCreatedAtAsc   = "created_at_asc"
	DefaultPageLimit   = 50
	MaxPageLimit       = 200
	DefaultSort        = SortHullNumberAsc
)

// ===== Requests =====

type CreateVehicleRequest struct {
	HullNumber  string  `json:"hull_number" binding:"required"`
	HullColor   *string `json:"hull_color,omitempty"`
	PlateNumber string  `json:"plate_number" binding:"required"`
	VehicleType string  `json:"vehicle_type" binding:"required"`
	Brand       *string `json:"brand,omitempty"`
	Location    *string `json:"location,omitempty"`
	ShiftPolicy string  `json:"shift_policy" binding:"required"`
	STNKExpiry  *string `json:"stnk_expiry,omitempty"` // YYYY-MM-DD
	KIRExpiry   *string `json:"kir_expiry,omitempty"`
}

type UpdateVehicleRequest struct {
	HullNumber  *string `json:"hull_number,omitempty"`
	HullColor   *string `json:"hull_color,omitempty"`
	PlateNumber *string `json:"plate_number,omitempty"`
	VehicleType *string `json:"vehicle_type,omitempty"`
	Brand       *string `json:"brand,omitempty"`
	Location    *string `json:"location,omitempty"`
	ShiftPolicy *string `json:"shift_policy,omitempty"`
	STNKExpiry  *string `json:"stnk_expiry,omitempty"`
	KIRExpiry   *string `json:"kir_expiry,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

type ListQuery struct {
	HullNumber  *string
	ShiftPolicy *string
	VehicleType *string
	ActiveOnly  bool
	Limit       int
	Offset      int
	Sort        string
}

// ===== Responses =====

type VehicleResponse struct {
	VehicleID   uint64    `json:"vehicle_id"`
	HullNumber  string    `json:"hull_number"`
	HullColor   *string   `json:"hull_color,omitempty"`
	PlateNumber string    `json:"plate_number"`
	VehicleType string    `json:"vehicle_type"`
	Brand       *string   `json:"brand,omitempty"`
	Location    *string   `json:"location,omitempty"`
	ShiftPolicy string    `json:"shift_policy"`
	STNKExpiry  *string   `json:"stnk_expiry,omitempty"`
	KIRExpiry   *string   `json:"kir_expiry,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ListResponse struct {
	Items []VehicleResponse `json:"items"`
	Total int64             `json:"total"`
}
