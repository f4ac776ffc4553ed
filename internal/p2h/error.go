package p2h

import (
	"errors"
	"fmt"
)

// ===== Error model (same shape as vehicles/auth, plus guard rejection codes) =====

type Code string

const (
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
	CodeNotFound        Code = "NOT_FOUND"
	CodeConflict        Code = "CONFLICT"
	CodeInternal        Code = "INTERNAL"

	// Submission guard rejections. These are expected operator mistakes,
	// not faults: they surface as validation messages, never 5xx.
	CodeOutsideWindow    Code = "OUTSIDE_SUBMISSION_WINDOW"
	CodeShiftMismatch    Code = "SHIFT_MISMATCH"
	CodeAlreadySubmitted Code = "SHIFT_ALREADY_SUBMITTED"
	CodeVehicleInactive  Code = "VEHICLE_INACTIVE"
)

type APIError struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string      { return fmt.Sprintf("%s: %s", e.Code, e.Message) }
func ErrInvalid(msg string) *APIError  { return &APIError{Code: CodeInvalidArgument, Message: msg} }
func ErrNotFound(msg string) *APIError { return &APIError{Code: CodeNotFound, Message: msg} }
func ErrConflict(msg string) *APIError { return &APIError{Code: CodeConflict, Message: msg} }
func ErrInternal(msg string) *APIError { return &APIError{Code: CodeInternal, Message: msg} }

func toHTTPStatus(err error) int {
	var api *APIError
	if errors.As(err, &api) {
		switch api.Code {
		case CodeInvalidArgument:
			return 400
		case CodeNotFound:
			return 404
		case CodeConflict, CodeAlreadySubmitted:
			return 409
		case CodeOutsideWindow, CodeShiftMismatch, CodeVehicleInactive:
			return 422
		default:
			return 500
		}
	}
	return 500
}
