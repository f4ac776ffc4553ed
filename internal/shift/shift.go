// Package shift maps wall-clock time to operational dates and shift numbers
// for the three vehicle shift policies used on site. Everything here is pure:
// callers pass a time.Time already localized to the site timezone.
package shift

import "time"

// Policy is the per-vehicle shift configuration, keyed by hull number color.
type Policy string

const (
	PolicyShift     Policy = "shift"      // kuning - 3x/day, rollover 05:00
	PolicyNonShift  Policy = "non_shift"  // hijau & biru - 1x/day, rollover 00:00
	PolicyLongShift Policy = "long_shift" // 2x/day, rollover 05:00
)

const (
	DateLayout = "2006-01-02"

	// Shifted vehicles belong to the previous operational day until 05:00.
	rolloverHour = 5

	// Non-shift vehicles may only submit between 06:00 and 16:00, with the
	// lower bound tolerant one hour backward.
	nonShiftOpenHour      = 6
	nonShiftCloseHour     = 16
	nonShiftToleranceHour = 1
)

func (p Policy) Valid() bool {
	switch p {
	case PolicyShift, PolicyNonShift, PolicyLongShift:
		return true
	}
	return false
}

// ShiftCount is the number of submission windows per operational day.
func (p Policy) ShiftCount() int {
	switch p {
	case PolicyShift:
		return 3
	case PolicyLongShift:
		return 2
	default:
		return 1
	}
}

// OperationalDate returns the logical day the given moment belongs to, as a
// midnight time.Time in now's location. SHIFT and LONG_SHIFT roll over at
// 05:00 so that a 02:00 shift-3 submission still counts for yesterday.
// NON_SHIFT uses the plain calendar date.
func OperationalDate(p Policy, now time.Time) time.Time {
	if p != PolicyNonShift && now.Hour() < rolloverHour {
		now = now.AddDate(0, 0, -1)
	}
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, now.Location())
}

// CurrentShift returns the shift number the given moment falls into. The
// function is total: every hour of the day maps to exactly one shift.
//
// Nominal windows carry a one-hour backward tolerance so crews can file at
// handover, which shifts every boundary one hour earlier:
//
//	SHIFT      07-15 / 15-23 / 23-07  ->  [06,14) / [14,22) / rest
//	LONG_SHIFT 07-19 / 19-07          ->  [06,18) / rest
func CurrentShift(p Policy, now time.Time) int {
	h := now.Hour()
	switch p {
	case PolicyLongShift:
		if h >= 6 && h < 18 {
			return 1
		}
		return 2
	case PolicyShift:
		switch {
		case h >= 6 && h < 14:
			return 1
		case h >= 14 && h < 22:
			return 2
		default:
			return 3
		}
	default:
		// Non-shift vehicles always file under shift 1.
		return 1
	}
}

// InSubmissionWindow reports whether a submission is permitted at all right
// now. SHIFT/LONG_SHIFT vehicles can always file (any time is some shift);
// NON_SHIFT vehicles only inside the 06:00-16:00 window (05:00 with
// tolerance).
func InSubmissionWindow(p Policy, now time.Time) bool {
	if p != PolicyNonShift {
		return true
	}
	h := now.Hour()
	return h >= nonShiftOpenHour-nonShiftToleranceHour && h < nonShiftCloseHour
}

// Window describes one submission window for form display.
type Window struct {
	Number         int    `json:"shift_number"`
	Start          string `json:"start"`
	End            string `json:"end"`
	ToleranceStart string `json:"tolerance_start"`
}

// Windows returns the nominal windows for a policy, in shift order.
func Windows(p Policy) []Window {
	switch p {
	case PolicyShift:
		return []Window{
			{Number: 1, Start: "07:00", End: "15:00", ToleranceStart: "06:00"},
			{Number: 2, Start: "15:00", End: "23:00", ToleranceStart: "14:00"},
			{Number: 3, Start: "23:00", End: "07:00", ToleranceStart: "22:00"},
		}
	case PolicyLongShift:
		return []Window{
			{Number: 1, Start: "07:00", End: "19:00", ToleranceStart: "06:00"},
			{Number: 2, Start: "19:00", End: "07:00", ToleranceStart: "18:00"},
		}
	default:
		return []Window{
			{Number: 1, Start: "06:00", End: "16:00", ToleranceStart: "05:00"},
		}
	}
}
