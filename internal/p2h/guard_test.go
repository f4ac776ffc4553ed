package p2h

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"P2H-backend/internal/shift"
)

var wita = time.FixedZone("WITA", 8*60*60)

func at(hour, min int) time.Time {
	return time.Date(2025, 3, 10, hour, min, 0, 0, wita)
}

func TestEvaluateSubmission_Shift(t *testing.T) {
	// 08:00 -> current shift 1, fresh tracker: allowed.
	dec := EvaluateSubmission(shift.PolicyShift, nil, 1, at(8, 0))
	require.True(t, dec.Allowed)

	// 08:10 -> filing shift 2 during shift 1 is rejected even though shift 2
	// is still open.
	dec = EvaluateSubmission(shift.PolicyShift, nil, 2, at(8, 10))
	require.False(t, dec.Allowed)
	assert.Equal(t, CodeShiftMismatch, dec.Code)
	assert.Contains(t, dec.Reason, "Shift 1")

	// Shift 1 already done: rejected on re-submit.
	tr := &DailyTracker{Shift1Done: true}
	dec = EvaluateSubmission(shift.PolicyShift, tr, 1, at(8, 0))
	require.False(t, dec.Allowed)
	assert.Equal(t, CodeAlreadySubmitted, dec.Code)

	// But shift 2 opens once the clock reaches its window.
	dec = EvaluateSubmission(shift.PolicyShift, tr, 2, at(15, 0))
	assert.True(t, dec.Allowed)
}

func TestEvaluateSubmission_NonShift(t *testing.T) {
	// 17:30 is outside the 06:00-16:00 window: rejected regardless of tracker.
	for _, tr := range []*DailyTracker{nil, {Shift1Done: true}} {
		dec := EvaluateSubmission(shift.PolicyNonShift, tr, 1, at(17, 30))
		require.False(t, dec.Allowed)
		assert.Equal(t, CodeOutsideWindow, dec.Code)
	}

	// 05:00 counts via the one-hour tolerance.
	dec := EvaluateSubmission(shift.PolicyNonShift, nil, 1, at(5, 0))
	assert.True(t, dec.Allowed)

	// Once filed, a second attempt the same day is rejected.
	dec = EvaluateSubmission(shift.PolicyNonShift, &DailyTracker{Shift1Done: true}, 1, at(9, 0))
	require.False(t, dec.Allowed)
	assert.Equal(t, CodeAlreadySubmitted, dec.Code)
}

func TestEvaluateSubmission_LongShift(t *testing.T) {
	// 10:00 -> long shift 1.
	dec := EvaluateSubmission(shift.PolicyLongShift, nil, 1, at(10, 0))
	require.True(t, dec.Allowed)

	dec = EvaluateSubmission(shift.PolicyLongShift, nil, 2, at(10, 0))
	require.False(t, dec.Allowed)
	assert.Equal(t, CodeShiftMismatch, dec.Code)
	assert.Contains(t, dec.Reason, "Long Shift 1")

	// 20:00 -> long shift 2, shift 2 already done.
	dec = EvaluateSubmission(shift.PolicyLongShift, &DailyTracker{Shift2Done: true}, 2, at(20, 0))
	require.False(t, dec.Allowed)
	assert.Equal(t, CodeAlreadySubmitted, dec.Code)
}

// A nil tracker must behave exactly like an all-false one.
func TestEvaluateSubmission_NilTrackerEqualsFresh(t *testing.T) {
	fresh := &DailyTracker{}
	times := []time.Time{at(8, 0), at(15, 0), at(23, 0)}
	for _, now := range times {
		sel := shift.CurrentShift(shift.PolicyShift, now)
		a := EvaluateSubmission(shift.PolicyShift, nil, sel, now)
		b := EvaluateSubmission(shift.PolicyShift, fresh, sel, now)
		assert.Equal(t, a, b)
	}
}

func TestCalculateOverallStatus(t *testing.T) {
	note := "rem blong"
	tests := []struct {
		name    string
		details []DetailSubmit
		want    InspectionStatus
	}{
		{"all normal", []DetailSubmit{{Status: StatusNormal}, {Status: StatusNormal}}, StatusNormal},
		{"abnormal present", []DetailSubmit{{Status: StatusNormal}, {Status: StatusAbnormal, Note: &note}}, StatusAbnormal},
		{"warning beats abnormal", []DetailSubmit{{Status: StatusAbnormal}, {Status: StatusWarning}}, StatusWarning},
		{"warning alone", []DetailSubmit{{Status: StatusWarning}}, StatusWarning},
		{"empty", nil, StatusNormal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CalculateOverallStatus(tt.details))
		})
	}
}

func TestTrackerShiftDone(t *testing.T) {
	var nilTracker *DailyTracker
	assert.False(t, nilTracker.ShiftDone(1))
	assert.Equal(t, 0, nilTracker.DoneCount())

	tr := &DailyTracker{Shift1Done: true, Shift3Done: true}
	assert.True(t, tr.ShiftDone(1))
	assert.False(t, tr.ShiftDone(2))
	assert.True(t, tr.ShiftDone(3))
	assert.Equal(t, 2, tr.DoneCount())

	// out-of-range shifts read as done so the guard fails closed
	assert.True(t, tr.ShiftDone(4))
	assert.True(t, tr.ShiftDone(0))
}
