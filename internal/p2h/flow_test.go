package p2h

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"P2H-backend/internal/shift"
)

// applyMark mirrors what the store's conditional update does to a tracker
// row, so the guard -> mark -> aggregate cycle can be exercised end to end
// without a database.
func applyMark(tr *DailyTracker, shiftNumber int, reportID uint64, required int) bool {
	if tr.ShiftDone(shiftNumber) {
		return false
	}
	switch shiftNumber {
	case 1:
		tr.Shift1Done, tr.Shift1ReportID = true, &reportID
	case 2:
		tr.Shift2Done, tr.Shift2ReportID = true, &reportID
	case 3:
		tr.Shift3Done, tr.Shift3ReportID = true, &reportID
	default:
		return false
	}
	tr.SubmissionCount++
	switch {
	case tr.DoneCount() >= required:
		tr.FinalStatus = ColorGreen
	case tr.DoneCount() >= 1:
		tr.FinalStatus = ColorYellow
	default:
		tr.FinalStatus = ColorRed
	}
	return true
}

// Full day of a SHIFT vehicle: three submissions, one per window, with the
// dashboard color moving red -> yellow -> yellow -> green.
func TestSubmissionFlow_ShiftVehicleFullDay(t *testing.T) {
	policy := shift.PolicyShift
	tr := &DailyTracker{TrackerID: 1, VehicleID: 7, Date: "2025-03-10"}

	steps := []struct {
		now       time.Time
		selected  int
		wantColor Color
	}{
		{at(8, 0), 1, ColorYellow},
		{at(15, 30), 2, ColorYellow},
		{at(23, 45), 3, ColorGreen},
	}

	for i, step := range steps {
		dec := EvaluateSubmission(policy, tr, step.selected, step.now)
		require.True(t, dec.Allowed, "step %d: %s", i, dec.Reason)

		require.True(t, applyMark(tr, step.selected, uint64(100+i), policy.ShiftCount()))

		st := AggregateStatus(policy, tr, step.now)
		assert.Equal(t, step.wantColor, st.Color, "step %d", i)
		assert.Equal(t, step.wantColor, tr.FinalStatus, "denormalized color, step %d", i)
	}

	assert.Equal(t, 3, tr.SubmissionCount)
	assert.Equal(t, "Lengkap", tr.FinalStatus.Label())
}

// Two submissions racing for the same shift: the conditional mark lets
// exactly one through.
func TestSubmissionFlow_RaceOneWinner(t *testing.T) {
	policy := shift.PolicyLongShift
	tr := &DailyTracker{TrackerID: 2, VehicleID: 8, Date: "2025-03-10"}
	now := at(9, 0)

	// Both callers snapshot the tracker before either has marked: both pass
	// the advisory guard.
	decA := EvaluateSubmission(policy, tr, 1, now)
	decB := EvaluateSubmission(policy, tr, 1, now)
	require.True(t, decA.Allowed)
	require.True(t, decB.Allowed)

	wonA := applyMark(tr, 1, 201, policy.ShiftCount())
	wonB := applyMark(tr, 1, 202, policy.ShiftCount())
	assert.True(t, wonA)
	assert.False(t, wonB)
	assert.Equal(t, 1, tr.SubmissionCount)
	require.NotNil(t, tr.Shift1ReportID)
	assert.Equal(t, uint64(201), *tr.Shift1ReportID)

	// The loser's re-evaluation now sees the flag set.
	dec := EvaluateSubmission(policy, tr, 1, now)
	require.False(t, dec.Allowed)
	assert.Equal(t, CodeAlreadySubmitted, dec.Code)
}

// Monotonicity: no operation in this package resets a done flag within the
// same operational date.
func TestSubmissionFlow_FlagsNeverReset(t *testing.T) {
	policy := shift.PolicyShift
	tr := &DailyTracker{}
	require.True(t, applyMark(tr, 1, 1, policy.ShiftCount()))

	// Repeated marks, guard evaluations and aggregations leave it set.
	applyMark(tr, 1, 2, policy.ShiftCount())
	EvaluateSubmission(policy, tr, 1, at(8, 0))
	AggregateStatus(policy, tr, at(8, 0))

	assert.True(t, tr.Shift1Done)
	assert.Equal(t, uint64(1), *tr.Shift1ReportID)
	assert.Equal(t, 1, tr.SubmissionCount)
}
