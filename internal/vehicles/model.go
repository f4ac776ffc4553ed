package vehicles

import (
	"time"

	"P2H-backend/internal/shift"
)

// DB row (scan target)
type vehicleRow struct {
	VehicleID   uint64
	HullNumber  string
	HullColor   *string
	PlateNumber string
	VehicleType string
	Brand       *string
	Location    *string
	ShiftPolicy string
	STNKExpiry  *string // DATE -> "YYYY-MM-DD"
	KIRExpiry   *string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Vehicle is the model shared between service and store, and consumed by the
// p2h and telegram packages.
type Vehicle struct {
	VehicleID   uint64
	HullNumber  string
	HullColor   *string
	PlateNumber string
	VehicleType string
	Brand       *string
	Location    *string
	ShiftPolicy shift.Policy
	STNKExpiry  *string
	KIRExpiry   *string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (r vehicleRow) toModel() Vehicle {
	return Vehicle{
		VehicleID:   r.VehicleID,
		HullNumber:  r.HullNumber,
		HullColor:   r.HullColor,
		PlateNumber: r.PlateNumber,
		VehicleType: r.VehicleType,
		Brand:       r.Brand,
		Location:    r.Location,
		ShiftPolicy: shift.Policy(r.ShiftPolicy),
		STNKExpiry:  r.STNKExpiry,
		KIRExpiry:   r.KIRExpiry,
		IsActive:    r.IsActive,
		CreatedAt:   r.CreatedAt.UTC(),
		UpdatedAt:   r.UpdatedAt.UTC(),
	}
}

func (v Vehicle) toDTO() VehicleResponse {
	return VehicleResponse{
		VehicleID:   v.VehicleID,
		HullNumber:  v.HullNumber,
		HullColor:   v.HullColor,
		PlateNumber: v.PlateNumber,
		VehicleType: v.VehicleType,
		Brand:       v.Brand,
		Location:    v.Location,
		ShiftPolicy: string(v.ShiftPolicy),
		STNKExpiry:  v.STNKExpiry,
		KIRExpiry:   v.KIRExpiry,
		IsActive:    v.IsActive,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
}

// ExpiringDocument pairs a vehicle with a document that is about to expire.
// DocType is "STNK" or "KIR".
type ExpiringDocument struct {
	Vehicle    Vehicle
	DocType    string
	ExpiryDate string
	DaysLeft   int
}
