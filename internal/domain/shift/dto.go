package shift

import (
	"github.com/wasabi-works/shift-payroll-backend/internal/pkg/period"
	"github.com/wasabi-works/shift-payroll-backend/internal/pkg/validator"
)

// SubmitEntry is the employee's choice for one date of the period.
type SubmitEntry struct {
	Date      string `json:"date"`
	IsWorking bool   `json:"is_working"`
	BranchID  string `json:"branch_id,omitempty"`
	StartTime string `json:"start_time,omitempty"`
	EndTime   string `json:"end_time,omitempty"`
}

type SubmitPeriodRequest struct {
	EmployeeID string                 `json:"-"`
	Period     period.HalfMonthPeriod `json:"period"`
	Entries    []SubmitEntry          `json:"entries"`
}

func (r *SubmitPeriodRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	dates, err := r.Period.Dates()
	if err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "period",
			Message: err.Error(),
		})
	}

	seen := make(map[string]bool)
	for i, e := range r.Entries {
		field := "entries[" + validator.Itoa(i) + "]"
		if err == nil && !validator.IsInSlice(e.Date, dates) {
			errs = append(errs, validator.ValidationError{
				Field:   field + ".date",
				Message: "date is outside the submitted period",
			})
		}
		if seen[e.Date] {
			errs = append(errs, validator.ValidationError{
				Field:   field + ".date",
				Message: "date appears more than once",
			})
		}
		seen[e.Date] = true

		if e.StartTime != "" && !validator.IsValidTimeOfDay(e.StartTime) {
			errs = append(errs, validator.ValidationError{
				Field:   field + ".start_time",
				Message: "start_time must be HH:MM",
			})
		}
		if e.EndTime != "" && !validator.IsValidTimeOfDay(e.EndTime) {
			errs = append(errs, validator.ValidationError{
				Field:   field + ".end_time",
				Message: "end_time must be HH:MM",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ShiftDayResponse struct {
	Date      string `json:"date"`
	IsWorking bool   `json:"is_working"`
	BranchID  string `json:"branch_id"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	// Approved days are frozen by an administrator; Closed days are past the submission lock date.
	Approved bool `json:"approved"`
	Closed   bool `json:"closed"`
}

type PeriodResponse struct {
	Period period.HalfMonthPeriod `json:"period"`
	Prev   period.HalfMonthPeriod `json:"prev"`
	Next   period.HalfMonthPeriod `json:"next"`
	Days   []ShiftDayResponse     `json:"days"`
}

type SubmitPeriodResponse struct {
	Saved   int      `json:"saved"`
	Skipped []string `json:"skipped"`
}
