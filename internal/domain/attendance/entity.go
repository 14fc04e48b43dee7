package attendance

import (
	"github.com/shopspring/decimal"
	"github.com/wasabi-works/shift-payroll-backend/internal/domain/shift"
	"github.com/wasabi-works/shift-payroll-backend/internal/pkg/timeofday"
)

// Record is the authoritative attendance for one employee on one date. At most one exists per
// (EmployeeID, Date). Once IsApproved is set the record is final for payroll.
type Record struct {
	ID         string
	EmployeeID string
	BranchID   string
	Date       string
	IsWorking  bool
	StartTime  string
	EndTime    string
	IsApproved bool
	// Bonus is a non-negative amount added to the day's pay.
	Bonus decimal.Decimal
}

func (r Record) Key() shift.Key {
	return shift.Key{EmployeeID: r.EmployeeID, Date: r.Date}
}

// Minutes is the worked duration, zero for a day off or an unusable time range.
func (r Record) Minutes() int {
	if !r.IsWorking {
		return 0
	}
	return timeofday.MinutesBetween(r.StartTime, r.EndTime)
}

// Index maps (employee, date) to its record. When the input holds duplicates the last one wins.
func Index(records []Record) map[shift.Key]Record {
	idx := make(map[shift.Key]Record, len(records))
	for _, r := range records {
		idx[r.Key()] = r
	}
	return idx
}

// ApprovedDates returns the dates on which employeeID has an approved record.
func ApprovedDates(records []Record, employeeID string) map[string]bool {
	dates := make(map[string]bool)
	for _, r := range records {
		if r.EmployeeID == employeeID && r.IsApproved {
			dates[r.Date] = true
		}
	}
	return dates
}

// SyntheticID is the deterministic id of a record derived rather than stored.
func SyntheticID(employeeID, date string) string {
	return employeeID + "-" + date
}
