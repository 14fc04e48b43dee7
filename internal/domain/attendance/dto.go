package attendance

import (
	"github.com/shopspring/decimal"
	"github.com/wasabi-works/shift-payroll-backend/internal/pkg/period"
	"github.com/wasabi-works/shift-payroll-backend/internal/pkg/timeofday"
	"github.com/wasabi-works/shift-payroll-backend/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type RecordResponse struct {
	ID         string          `json:"id"`
	EmployeeID string          `json:"employee_id"`
	BranchID   string          `json:"branch_id"`
	Date       string          `json:"date"`
	IsWorking  bool            `json:"is_working"`
	StartTime  string          `json:"start_time"`
	EndTime    string          `json:"end_time"`
	Hours      float64         `json:"hours"`
	IsApproved bool            `json:"is_approved"`
	Bonus      decimal.Decimal `json:"bonus"`
}

func ToResponse(r Record) RecordResponse {
	return RecordResponse{
		ID:         r.ID,
		EmployeeID: r.EmployeeID,
		BranchID:   r.BranchID,
		Date:       r.Date,
		IsWorking:  r.IsWorking,
		StartTime:  r.StartTime,
		EndTime:    r.EndTime,
		Hours:      float64(r.Minutes()) / 60,
		IsApproved: r.IsApproved,
		Bonus:      r.Bonus,
	}
}

type RowResponse struct {
	RecordResponse
	EmployeeName string `json:"employee_name"`
	BranchName   string `json:"branch_name"`
	Stored       bool   `json:"stored"`
}

type DayResponse struct {
	Date         string        `json:"date"`
	Weekday      string        `json:"weekday"`
	WorkingCount int           `json:"working_count"`
	Approved     bool          `json:"approved"`
	Rows         []RowResponse `json:"rows"`
}

type BoardResponse struct {
	Reference string        `json:"reference"`
	Mode      period.Mode   `json:"mode"`
	Days      []DayResponse `json:"days"`
}

func ToBoardResponse(reference string, mode period.Mode, days []Day) BoardResponse {
	resp := BoardResponse{Reference: reference, Mode: mode, Days: make([]DayResponse, 0, len(days))}
	for _, d := range days {
		day := DayResponse{
			Date:         d.Date,
			WorkingCount: d.WorkingCount,
			Approved:     d.Approved,
			Rows:         make([]RowResponse, 0, len(d.Rows)),
		}
		if t, err := period.ParseDate(d.Date); err == nil {
			day.Weekday = t.Weekday().String()
		}
		for _, row := range d.Rows {
			day.Rows = append(day.Rows, RowResponse{
				RecordResponse: ToResponse(row.Record),
				EmployeeName:   row.EmployeeName,
				BranchName:     row.BranchName,
				Stored:         row.Stored,
			})
		}
		resp.Days = append(resp.Days, day)
	}
	return resp
}

// EditRecordRequest changes fields of one employee's record on one date.
type EditRecordRequest struct {
	EmployeeID string `json:"-"`
	Date       string `json:"-"`
	Patch
}

func (r *EditRecordRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be YYYY-MM-DD",
		})
	}
	if r.Patch.IsEmpty() {
		errs = append(errs, validator.ValidationError{
			Field:   "patch",
			Message: ErrEmptyPatch.Error(),
		})
	}
	if r.BranchID != nil && validator.IsEmpty(*r.BranchID) {
		errs = append(errs, validator.ValidationError{
			Field:   "branch_id",
			Message: "branch_id must not be empty",
		})
	}
	if r.StartTime != nil && !timeofday.Valid(*r.StartTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start_time must be HH:MM",
		})
	}
	if r.EndTime != nil && !timeofday.Valid(*r.EndTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end_time must be HH:MM",
		})
	}
	if r.Bonus != nil && r.Bonus.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "bonus",
			Message: "bonus must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type EditRecordResponse struct {
	Record  RecordResponse `json:"record"`
	Changed []string       `json:"changed"`
}

// CommitRequest approves every employee on the listed dates, or on the dates of Reference
// enumerated with Mode when Dates is empty.
type CommitRequest struct {
	Dates     []string    `json:"dates,omitempty"`
	Reference string      `json:"reference,omitempty"`
	Mode      period.Mode `json:"mode,omitempty"`
}

func (r *CommitRequest) Validate() error {
	var errs validator.ValidationErrors

	for i, d := range r.Dates {
		if _, ok := validator.IsValidDate(d); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "dates[" + validator.Itoa(i) + "]",
				Message: "date must be YYYY-MM-DD",
			})
		}
	}
	if len(r.Dates) == 0 && r.Reference != "" {
		if _, ok := validator.IsValidDate(r.Reference); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "reference",
				Message: "reference must be YYYY-MM-DD",
			})
		}
		if _, err := period.ParseMode(string(r.Mode)); err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "mode",
				Message: "mode must be one of DAY, WEEK, MONTH, HALF_MONTH",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ResolveDates returns the dates the request covers. Call after Validate.
func (r *CommitRequest) ResolveDates() ([]string, error) {
	if len(r.Dates) > 0 || r.Reference == "" {
		return uniqueSorted(r.Dates), nil
	}
	mode, err := period.ParseMode(string(r.Mode))
	if err != nil {
		return nil, err
	}
	return period.Enumerate(r.Reference, mode)
}

type CommitResponse struct {
	Dates    []string `json:"dates"`
	Approved int      `json:"approved"`
}
