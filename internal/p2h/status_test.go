package p2h

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"P2H-backend/internal/shift"
)

func TestAggregateStatus_Shift(t *testing.T) {
	now := at(8, 0) // shift 1

	tests := []struct {
		name      string
		tracker   *DailyTracker
		wantColor Color
		wantDone  []int
	}{
		{"absent tracker", nil, ColorRed, []int{}},
		{"none done", &DailyTracker{}, ColorRed, []int{}},
		{"one done", &DailyTracker{Shift1Done: true}, ColorYellow, []int{1}},
		{"two done", &DailyTracker{Shift1Done: true, Shift2Done: true}, ColorYellow, []int{1, 2}},
		{"all done", &DailyTracker{Shift1Done: true, Shift2Done: true, Shift3Done: true}, ColorGreen, []int{1, 2, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := AggregateStatus(shift.PolicyShift, tt.tracker, now)
			assert.Equal(t, tt.wantColor, st.Color)
			assert.Equal(t, tt.wantDone, st.ShiftsCompleted)
			assert.Equal(t, 1, st.CurrentShift)
		})
	}
}

func TestAggregateStatus_LongShift(t *testing.T) {
	now := at(20, 0) // long shift 2

	st := AggregateStatus(shift.PolicyLongShift, &DailyTracker{Shift1Done: true, Shift2Done: true}, now)
	assert.Equal(t, ColorGreen, st.Color)
	assert.Equal(t, "Lengkap", st.Color.Label())
	assert.Equal(t, []int{1, 2}, st.ShiftsCompleted)
	assert.Equal(t, 2, st.CurrentShift)

	st = AggregateStatus(shift.PolicyLongShift, &DailyTracker{Shift2Done: true}, now)
	assert.Equal(t, ColorYellow, st.Color)
	assert.Equal(t, []int{2}, st.ShiftsCompleted)

	st = AggregateStatus(shift.PolicyLongShift, nil, now)
	assert.Equal(t, ColorRed, st.Color)
}

// NON_SHIFT is two-state: never yellow.
func TestAggregateStatus_NonShift(t *testing.T) {
	now := at(9, 0)

	st := AggregateStatus(shift.PolicyNonShift, &DailyTracker{Shift1Done: true}, now)
	assert.Equal(t, ColorGreen, st.Color)
	assert.Equal(t, []int{1}, st.ShiftsCompleted)

	st = AggregateStatus(shift.PolicyNonShift, nil, now)
	assert.Equal(t, ColorRed, st.Color)
	assert.Equal(t, "Belum Lengkap", st.Color.Label())
}

// Shift-3 flags left over from a policy change must not leak into a
// LONG_SHIFT vehicle's completion list.
func TestAggregateStatus_IgnoresShiftsBeyondPolicy(t *testing.T) {
	tr := &DailyTracker{Shift1Done: true, Shift2Done: true, Shift3Done: true}
	st := AggregateStatus(shift.PolicyLongShift, tr, at(10, 0))
	assert.Equal(t, ColorGreen, st.Color)
	assert.Equal(t, []int{1, 2}, st.ShiftsCompleted)
}

func TestColorRendering(t *testing.T) {
	assert.Equal(t, "red", ColorRed.String())
	assert.Equal(t, "yellow", ColorYellow.String())
	assert.Equal(t, "green", ColorGreen.String())

	assert.Equal(t, "Lengkap", ColorGreen.Label())
	assert.Equal(t, "Belum Lengkap", ColorYellow.Label())
	assert.Equal(t, "Belum Lengkap", ColorRed.Label())

	assert.Equal(t, ColorGreen, parseColor("green"))
	assert.Equal(t, ColorYellow, parseColor("yellow"))
	assert.Equal(t, ColorRed, parseColor("red"))
	assert.Equal(t, ColorRed, parseColor(""))
}
