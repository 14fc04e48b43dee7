package attendance

import (
	"github.com/wasabi-works/shift-payroll-backend/internal/domain/employee"
	"github.com/wasabi-works/shift-payroll-backend/internal/domain/master/branch"
)

// Row is one employee's effective record on a board, with display names resolved.
type Row struct {
	Record
	EmployeeName string
	BranchName   string
	// Stored is false when the record was derived rather than read from the store.
	Stored bool
}

// Day groups the rows of one date.
type Day struct {
	Date         string
	Rows         []Row
	WorkingCount int
	// Approved is true when every row of the day is approved.
	Approved bool
}

// Board resolves every employee on every date. Employees keep their input order within a day.
func Board(dates []string, employees []employee.Employee, branches []branch.Branch, resolver *Resolver) []Day {
	days := make([]Day, 0, len(dates))
	for _, date := range dates {
		day := Day{Date: date, Rows: make([]Row, 0, len(employees)), Approved: len(employees) > 0}
		for _, emp := range employees {
			rec := resolver.Resolve(emp.ID, date)
			day.Rows = append(day.Rows, Row{
				Record:       rec,
				EmployeeName: emp.Name,
				BranchName:   branch.NameOf(branches, rec.BranchID),
				Stored:       resolver.Stored(emp.ID, date),
			})
			if rec.IsWorking {
				day.WorkingCount++
			}
			if !rec.IsApproved {
				day.Approved = false
			}
		}
		days = append(days, day)
	}
	return days
}
