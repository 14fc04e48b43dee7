package employee

import (
	"github.com/shopspring/decimal"
	"github.com/wasabi-works/shift-payroll-backend/internal/pkg/validator"
)

type EmployeeResponse struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	BranchID   string          `json:"branch_id"`
	BranchName string          `json:"branch_name"`
	HourlyRate decimal.Decimal `json:"hourly_rate"`
}

type CreateEmployeeRequest struct {
	Name       string           `json:"name"`
	BranchID   *string          `json:"branch_id,omitempty"`
	HourlyRate *decimal.Decimal `json:"hourly_rate,omitempty"`
	Password   string           `json:"password"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if len(r.Name) > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 100 characters",
		})
	}
	if r.HourlyRate != nil && r.HourlyRate.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "hourly_rate",
			Message: "hourly_rate must not be negative",
		})
	}
	if !validator.IsValidPassword(r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must be at least 4 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateEmployeeRequest struct {
	ID         string           `json:"-"`
	Name       *string          `json:"name,omitempty"`
	BranchID   *string          `json:"branch_id,omitempty"`
	HourlyRate *decimal.Decimal `json:"hourly_rate,omitempty"`
	Password   *string          `json:"password,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}
	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not be empty",
		})
	}
	if r.HourlyRate != nil && r.HourlyRate.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "hourly_rate",
			Message: "hourly_rate must not be negative",
		})
	}
	if r.Password != nil && !validator.IsValidPassword(*r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must be at least 4 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// RegistryEntry is one row of a full registry replacement. An empty ID registers a new employee.
type RegistryEntry struct {
	ID         string          `json:"id,omitempty"`
	Name       string          `json:"name"`
	BranchID   string          `json:"branch_id"`
	HourlyRate decimal.Decimal `json:"hourly_rate"`
	Password   *string         `json:"password,omitempty"`
}

type SyncRegistryRequest struct {
	Employees []RegistryEntry `json:"employees"`
}

func (r *SyncRegistryRequest) Validate() error {
	var errs validator.ValidationErrors

	seen := make(map[string]bool)
	for i, e := range r.Employees {
		field := "employees[" + validator.Itoa(i) + "]"
		if validator.IsEmpty(e.Name) {
			errs = append(errs, validator.ValidationError{
				Field:   field + ".name",
				Message: "name is required",
			})
		}
		if e.HourlyRate.IsNegative() {
			errs = append(errs, validator.ValidationError{
				Field:   field + ".hourly_rate",
				Message: "hourly_rate must not be negative",
			})
		}
		if e.ID == "" && (e.Password == nil || !validator.IsValidPassword(*e.Password)) {
			errs = append(errs, validator.ValidationError{
				Field:   field + ".password",
				Message: "new employees need a password of at least 4 characters",
			})
		}
		if e.ID != "" {
			if seen[e.ID] {
				errs = append(errs, validator.ValidationError{
					Field:   field + ".id",
					Message: "duplicate employee id",
				})
			}
			seen[e.ID] = true
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ChangePasswordRequest struct {
	EmployeeID      string `json:"-"`
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (r *ChangePasswordRequest) Validate() error {
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

type SyncRegistryResponse struct {
	Added     int                `json:"added"`
	Updated   int                `json:"updated"`
	Removed   int                `json:"removed"`
	Employees []EmployeeResponse `json:"employees"`
}
