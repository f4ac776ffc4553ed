package shift

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var wita = time.FixedZone("WITA", 8*60*60)

func at(hour, min int) time.Time {
	return time.Date(2025, 3, 10, hour, min, 0, 0, wita)
}

func TestOperationalDate_RolloverAt5(t *testing.T) {
	tests := []struct {
		policy Policy
		now    time.Time
		want   string
	}{
		{PolicyShift, at(4, 59), "2025-03-09"},
		{PolicyShift, at(0, 0), "2025-03-09"},
		{PolicyShift, at(5, 0), "2025-03-10"},
		{PolicyShift, at(23, 30), "2025-03-10"},
		{PolicyLongShift, at(2, 15), "2025-03-09"},
		{PolicyLongShift, at(5, 0), "2025-03-10"},
		// Non-shift vehicles reset at midnight, not 05:00.
		{PolicyNonShift, at(0, 30), "2025-03-10"},
		{PolicyNonShift, at(4, 59), "2025-03-10"},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s_%02d%02d", tt.policy, tt.now.Hour(), tt.now.Minute()), func(t *testing.T) {
			got := OperationalDate(tt.policy, tt.now)
			assert.Equal(t, tt.want, got.Format(DateLayout))
			assert.Equal(t, wita, got.Location())
		})
	}
}

func TestOperationalDate_MonthBoundary(t *testing.T) {
	now := time.Date(2025, 3, 1, 1, 0, 0, 0, wita)
	assert.Equal(t, "2025-02-28", OperationalDate(PolicyShift, now).Format(DateLayout))
}

func TestCurrentShift_Shift(t *testing.T) {
	tests := []struct {
		now  time.Time
		want int
	}{
		{at(6, 0), 1}, // tolerance entry for 07:00 start
		{at(8, 0), 1},
		{at(13, 59), 1},
		{at(14, 0), 2}, // tolerance entry for 15:00 start
		{at(21, 59), 2},
		{at(22, 0), 3}, // tolerance entry for 23:00 start
		{at(23, 59), 3},
		{at(0, 0), 3},
		{at(5, 59), 3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CurrentShift(PolicyShift, tt.now), "at %02d:%02d", tt.now.Hour(), tt.now.Minute())
	}
}

// Every hour of the day must map to exactly one valid shift.
func TestCurrentShift_Total(t *testing.T) {
	for _, p := range []Policy{PolicyShift, PolicyLongShift, PolicyNonShift} {
		for h := 0; h < 24; h++ {
			got := CurrentShift(p, at(h, 30))
			require.GreaterOrEqual(t, got, 1, "%s at %02d:30", p, h)
			require.LessOrEqual(t, got, p.ShiftCount(), "%s at %02d:30", p, h)
		}
	}
}

func TestCurrentShift_LongShift(t *testing.T) {
	assert.Equal(t, 1, CurrentShift(PolicyLongShift, at(6, 0)))
	assert.Equal(t, 1, CurrentShift(PolicyLongShift, at(17, 59)))
	assert.Equal(t, 2, CurrentShift(PolicyLongShift, at(18, 0)))
	assert.Equal(t, 2, CurrentShift(PolicyLongShift, at(3, 0)))
}

func TestCurrentShift_NonShiftAlwaysOne(t *testing.T) {
	for h := 0; h < 24; h++ {
		assert.Equal(t, 1, CurrentShift(PolicyNonShift, at(h, 0)))
	}
}

func TestInSubmissionWindow(t *testing.T) {
	// NON_SHIFT: 06:00-16:00, lower bound tolerant to 05:00.
	assert.False(t, InSubmissionWindow(PolicyNonShift, at(4, 59)))
	assert.True(t, InSubmissionWindow(PolicyNonShift, at(5, 0)))
	assert.True(t, InSubmissionWindow(PolicyNonShift, at(15, 59)))
	assert.False(t, InSubmissionWindow(PolicyNonShift, at(16, 0)))
	assert.False(t, InSubmissionWindow(PolicyNonShift, at(17, 30)))

	// Shifts can always file: any time belongs to some shift.
	for h := 0; h < 24; h++ {
		assert.True(t, InSubmissionWindow(PolicyShift, at(h, 0)))
		assert.True(t, InSubmissionWindow(PolicyLongShift, at(h, 0)))
	}
}

func TestPolicy(t *testing.T) {
	assert.True(t, PolicyShift.Valid())
	assert.True(t, PolicyNonShift.Valid())
	assert.True(t, PolicyLongShift.Valid())
	assert.False(t, Policy("daily").Valid())

	assert.Equal(t, 3, PolicyShift.ShiftCount())
	assert.Equal(t, 2, PolicyLongShift.ShiftCount())
	assert.Equal(t, 1, PolicyNonShift.ShiftCount())
}

func TestWindows(t *testing.T) {
	ws := Windows(PolicyShift)
	require.Len(t, ws, 3)
	assert.Equal(t, "06:00", ws[0].ToleranceStart)
	assert.Equal(t, "07:00", ws[0].Start)

	require.Len(t, Windows(PolicyLongShift), 2)
	require.Len(t, Windows(PolicyNonShift), 1)
}
