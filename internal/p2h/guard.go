package p2h

import (
	"fmt"
	"time"

	"P2H-backend/internal/shift"
)

// Decision is the submission guard's verdict. Reason carries the
// operator-facing message when Allowed is false.
type Decision struct {
	Allowed bool
	Code    Code
	Reason  string
}

func allow() Decision {
	return Decision{Allowed: true, Reason: "P2H dapat diisi"}
}

func reject(code Code, reason string) Decision {
	return Decision{Allowed: false, Code: code, Reason: reason}
}

// EvaluateSubmission decides whether selectedShift may be filed for a vehicle
// with the given policy, right now, against a snapshot of the day's tracker.
// tracker == nil means no submission yet today.
//
// Pure decision over the snapshot: the "already submitted" answer here is
// advisory (fast-fail); the conditional update in MarkShiftDone is the
// authoritative guard against racing submissions.
func EvaluateSubmission(policy shift.Policy, tracker *DailyTracker, selectedShift int, now time.Time) Decision {
	switch policy {
	case shift.PolicyNonShift:
		// 1x/day, only inside the 06:00-16:00 window.
		if !shift.InSubmissionWindow(policy, now) {
			return reject(CodeOutsideWindow, "P2H non-shift hanya dapat diisi pada jam 06:00-16:00")
		}
		if tracker.ShiftDone(1) {
			return reject(CodeAlreadySubmitted, "P2H sudah diisi hari ini untuk kendaraan non-shift")
		}
		return allow()

	case shift.PolicyLongShift:
		actual := shift.CurrentShift(policy, now)
		if selectedShift != actual {
			return reject(CodeShiftMismatch, fmt.Sprintf(
				"Saat ini adalah Long Shift %d (bukan Long Shift %d). Pilih shift yang sesuai.",
				actual, selectedShift))
		}
		if tracker.ShiftDone(selectedShift) {
			return reject(CodeAlreadySubmitted, fmt.Sprintf(
				"P2H long shift %d sudah diisi hari ini", selectedShift))
		}
		return allow()

	default: // shift.PolicyShift
		actual := shift.CurrentShift(policy, now)
		// Shifts must be filed in their own window: filing shift 2 while the
		// clock says shift 1 is rejected even if shift 2 is still open.
		if selectedShift != actual {
			return reject(CodeShiftMismatch, fmt.Sprintf(
				"Saat ini adalah Shift %d (bukan Shift %d). Pilih shift yang sesuai dengan jam saat ini.",
				actual, selectedShift))
		}
		if tracker.ShiftDone(selectedShift) {
			return reject(CodeAlreadySubmitted, fmt.Sprintf(
				"P2H shift %d sudah diisi untuk unit ini hari ini", selectedShift))
		}
		return allow()
	}
}

// CalculateOverallStatus is the worst-case severity across checklist answers.
// Priority: WARNING > ABNORMAL > NORMAL.
func CalculateOverallStatus(details []DetailSubmit) InspectionStatus {
	overall := StatusNormal
	for _, d := range details {
		if d.Status == StatusWarning {
			return StatusWarning
		}
		if d.Status == StatusAbnormal {
			overall = StatusAbnormal
		}
	}
	return overall
}
