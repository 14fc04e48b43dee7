package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID       string
	Name     string
	BranchID string
	// HourlyRate of zero means the global default rate applies.
	HourlyRate   decimal.Decimal
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UnknownName is displayed wherever an employee reference cannot be resolved.
const UnknownName = "UNASSIGNED"

// EffectiveRate returns the employee's own rate when positive, else the global rate.
func (e Employee) EffectiveRate(globalRate decimal.Decimal) decimal.Decimal {
	if e.HourlyRate.IsPositive() {
		return e.HourlyRate
	}
	return globalRate
}

// Find returns the employee with the given id.
func Find(employees []Employee, id string) (Employee, bool) {
	for _, e := range employees {
		if e.ID == id {
			return e, true
		}
	}
	return Employee{}, false
}

// NameOf returns the employee's name, or UnknownName for a dangling id.
func NameOf(employees []Employee, id string) string {
	if e, ok := Find(employees, id); ok {
		return e.Name
	}
	return UnknownName
}
