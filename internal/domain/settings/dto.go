package settings

import (
	"github.com/shopspring/decimal"
	"github.com/wasabi-works/shift-payroll-backend/internal/pkg/validator"
)

type SettingsResponse struct {
	DefaultStartHour int             `json:"default_start_hour"`
	DefaultEndHour   int             `json:"default_end_hour"`
	GlobalHourlyRate decimal.Decimal `json:"global_hourly_rate"`
	ShiftLockDate    string          `json:"shift_lock_date"`
}

func ToResponse(s SystemSettings) SettingsResponse {
	return SettingsResponse{
		DefaultStartHour: s.DefaultStartHour,
		DefaultEndHour:   s.DefaultEndHour,
		GlobalHourlyRate: s.GlobalHourlyRate,
		ShiftLockDate:    s.ShiftLockDate,
	}
}

type UpdateSettingsRequest struct {
	DefaultStartHour *int             `json:"default_start_hour,omitempty"`
	DefaultEndHour   *int             `json:"default_end_hour,omitempty"`
	GlobalHourlyRate *decimal.Decimal `json:"global_hourly_rate,omitempty"`
	ShiftLockDate    *string          `json:"shift_lock_date,omitempty"`
}

// Apply merges the request into current and validates the merged result.
func (r *UpdateSettingsRequest) Apply(current SystemSettings) (SystemSettings, error) {
	next := current
	if r.DefaultStartHour != nil {
		next.DefaultStartHour = *r.DefaultStartHour
	}
	if r.DefaultEndHour != nil {
		next.DefaultEndHour = *r.DefaultEndHour
	}
	if r.GlobalHourlyRate != nil {
		next.GlobalHourlyRate = *r.GlobalHourlyRate
	}
	if r.ShiftLockDate != nil {
		next.ShiftLockDate = *r.ShiftLockDate
	}

	var errs validator.ValidationErrors

	if !validator.IsValidHour(next.DefaultStartHour) {
		errs = append(errs, validator.ValidationError{
			Field:   "default_start_hour",
			Message: "default_start_hour must be between 0 and 23",
		})
	}
	if !validator.IsValidHour(next.DefaultEndHour) {
		errs = append(errs, validator.ValidationError{
			Field:   "default_end_hour",
			Message: "default_end_hour must be between 0 and 23",
		})
	}
	if next.DefaultEndHour <= next.DefaultStartHour {
		errs = append(errs, validator.ValidationError{
			Field:   "default_end_hour",
			Message: "default_end_hour must be after default_start_hour",
		})
	}
	if next.GlobalHourlyRate.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "global_hourly_rate",
			Message: "global_hourly_rate must not be negative",
		})
	}
	if next.ShiftLockDate != "" {
		if _, ok := validator.IsValidDate(next.ShiftLockDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "shift_lock_date",
				Message: "shift_lock_date must be YYYY-MM-DD",
			})
		}
	}

	if len(errs) > 0 {
		return current, errs
	}

	return next, nil
}

type ChangeAdminPasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (r *ChangeAdminPasswordRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.CurrentPassword) {
		errs = append(errs, validator.ValidationError{
			Field:   "current_password",
			Message: "current_password is required",
		})
	}
	if !validator.IsValidPassword(r.NewPassword) {
		errs = append(errs, validator.ValidationError{
			Field:   "new_password",
			Message: "new_password must be at least 4 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
