package p2h

import (
	"time"

	"P2H-backend/internal/shift"
)

// VehicleStatus is the dashboard view of one vehicle's day.
type VehicleStatus struct {
	Color           Color
	ShiftsCompleted []int
	CurrentShift    int
}

// AggregateStatus computes the red/yellow/green indicator from the tracker
// snapshot. tracker == nil (nothing filed yet today) reads as all-false; a
// status query must never create a tracker as a side effect.
//
//	NON_SHIFT:  green if done, else red (no yellow)
//	SHIFT:      green if all 3 done, yellow if some, red if none
//	LONG_SHIFT: green if both done, yellow if one, red if none
func AggregateStatus(policy shift.Policy, tracker *DailyTracker, now time.Time) VehicleStatus {
	count := policy.ShiftCount()

	completed := make([]int, 0, count)
	for n := 1; n <= count; n++ {
		if tracker.ShiftDone(n) {
			completed = append(completed, n)
		}
	}

	var color Color
	switch {
	case len(completed) >= count:
		color = ColorGreen
	case len(completed) > 0:
		color = ColorYellow
	default:
		color = ColorRed
	}
	// NON_SHIFT is two-state by construction: count==1 never yields yellow.

	return VehicleStatus{
		Color:           color,
		ShiftsCompleted: completed,
		CurrentShift:    shift.CurrentShift(policy, now),
	}
}
