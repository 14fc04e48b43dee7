package response

import (
	"errors"
	"net/http"

	"github.com/wasabi-works/shift-payroll-backend/internal/domain/actionlog"
	"github.com/wasabi-works/shift-payroll-backend/internal/domain/attendance"
	"github.com/wasabi-works/shift-payroll-backend/internal/domain/auth"
	"github.com/wasabi-works/shift-payroll-backend/internal/domain/employee"
	"github.com/wasabi-works/shift-payroll-backend/internal/domain/master/branch"
	"github.com/wasabi-works/shift-payroll-backend/internal/domain/payroll"
	"github.com/wasabi-works/shift-payroll-backend/internal/domain/settings"
	"github.com/wasabi-works/shift-payroll-backend/internal/domain/shift"
	"github.com/wasabi-works/shift-payroll-backend/internal/pkg/period"
	"github.com/wasabi-works/shift-payroll-backend/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrAdminOnly):
		Forbidden(w, "Administrator access required")
	case errors.Is(err, auth.ErrForbidden):
		Forbidden(w, "Access denied")

	// Master data errors
	case errors.Is(err, branch.ErrBranchNotFound):
		NotFound(w, "Branch not found")
	case errors.Is(err, branch.ErrBranchNameExists):
		Conflict(w, "Branch name already exists")
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrInvalidCurrentPassword),
		errors.Is(err, settings.ErrInvalidCurrentPassword):
		Unauthorized(w, err.Error())

	// Scheduling errors
	case errors.Is(err, shift.ErrShiftNotFound):
		NotFound(w, "Shift request not found")
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrRecordLocked):
		Locked(w, "Attendance record is approved and can no longer be edited", nil)
	case errors.Is(err, attendance.ErrEmptyPatch),
		errors.Is(err, actionlog.ErrInvalidLimit),
		errors.Is(err, payroll.ErrInvalidYear),
		errors.Is(err, payroll.ErrInvalidMonth),
		errors.Is(err, period.ErrInvalidDate),
		errors.Is(err, period.ErrInvalidMode),
		errors.Is(err, period.ErrInvalidMonth),
		errors.Is(err, period.ErrInvalidPart):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
