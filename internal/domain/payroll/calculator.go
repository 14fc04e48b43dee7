package payroll

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/wasabi-works/shift-payroll-backend/internal/domain/attendance"
	"github.com/wasabi-works/shift-payroll-backend/internal/domain/employee"
	"github.com/wasabi-works/shift-payroll-backend/internal/pkg/period"
)

var sixty = decimal.NewFromInt(60)

// LineItem is one payable day on an employee's statement.
type LineItem struct {
	Date      string
	BranchID  string
	StartTime string
	EndTime   string
	Minutes   int
	Hours     decimal.Decimal
	// Pay is the day's hours at the effective rate, rounded to a whole unit.
	Pay   decimal.Decimal
	Bonus decimal.Decimal
	Total decimal.Decimal
}

// EmployeeSummary is the month's pay for one employee.
type EmployeeSummary struct {
	EmployeeID   string
	Name         string
	Rate         decimal.Decimal
	Days         int
	TotalMinutes int
	TotalHours   decimal.Decimal
	BasePay      decimal.Decimal
	TotalBonus   decimal.Decimal
	Total        decimal.Decimal
	Items        []LineItem
}

// Summary is the payroll of every employee for one month.
type Summary struct {
	Year         int
	Month        int
	Employees    []EmployeeSummary
	CompanyTotal decimal.Decimal
	CompanyHours decimal.Decimal
}

// Payable reports whether rec counts toward employeeID's pay for the month: it must be a worked,
// approved day of that employee inside the month.
func Payable(rec attendance.Record, employeeID string, year, month int) bool {
	return rec.EmployeeID == employeeID &&
		rec.IsWorking &&
		rec.IsApproved &&
		period.InMonth(rec.Date, year, month)
}

// Compute aggregates approved, worked records into per-employee pay for the month. Employees keep
// their input order; records of unknown employees are ignored.
func Compute(
	employees []employee.Employee,
	records []attendance.Record,
	year, month int,
	globalRate decimal.Decimal,
) Summary {
	summary := Summary{
		Year:         year,
		Month:        month,
		Employees:    make([]EmployeeSummary, 0, len(employees)),
		CompanyTotal: decimal.Zero,
		CompanyHours: decimal.Zero,
	}

	byEmployee := make(map[string][]attendance.Record)
	for _, rec := range records {
		byEmployee[rec.EmployeeID] = append(byEmployee[rec.EmployeeID], rec)
	}

	for _, emp := range employees {
		es := computeEmployee(emp, byEmployee[emp.ID], year, month, globalRate)
		summary.CompanyTotal = summary.CompanyTotal.Add(es.Total)
		summary.CompanyHours = summary.CompanyHours.Add(es.TotalHours)
		summary.Employees = append(summary.Employees, es)
	}

	return summary
}

func computeEmployee(emp employee.Employee, records []attendance.Record, year, month int, globalRate decimal.Decimal) EmployeeSummary {
	rate := emp.EffectiveRate(globalRate)
	es := EmployeeSummary{
		EmployeeID: emp.ID,
		Name:       emp.Name,
		Rate:       rate,
		TotalBonus: decimal.Zero,
		Items:      []LineItem{},
	}

	for _, rec := range records {
		if !Payable(rec, emp.ID, year, month) {
			continue
		}
		minutes := rec.Minutes()
		pay := payFor(minutes, rate)
		es.Items = append(es.Items, LineItem{
			Date:      rec.Date,
			BranchID:  rec.BranchID,
			StartTime: rec.StartTime,
			EndTime:   rec.EndTime,
			Minutes:   minutes,
			Hours:     hoursOf(minutes),
			Pay:       pay,
			Bonus:     rec.Bonus,
			Total:     pay.Add(rec.Bonus),
		})
		es.TotalMinutes += minutes
		es.TotalBonus = es.TotalBonus.Add(rec.Bonus)
	}

	sort.SliceStable(es.Items, func(i, j int) bool {
		return es.Items[i].Date < es.Items[j].Date
	})

	es.Days = len(es.Items)
	es.TotalHours = hoursOf(es.TotalMinutes)
	es.BasePay = payFor(es.TotalMinutes, rate)
	es.Total = es.BasePay.Add(es.TotalBonus)

	return es
}

// payFor rounds minutes at an hourly rate to the nearest whole unit, halves rounding up.
func payFor(minutes int, rate decimal.Decimal) decimal.Decimal {
	return decimal.NewFromInt(int64(minutes)).Mul(rate).Div(sixty).Round(0)
}

func hoursOf(minutes int) decimal.Decimal {
	return decimal.NewFromInt(int64(minutes)).DivRound(sixty, 4)
}

// Find returns the summary of employeeID.
func (s Summary) Find(employeeID string) (EmployeeSummary, bool) {
	for _, es := range s.Employees {
		if es.EmployeeID == employeeID {
			return es, true
		}
	}
	return EmployeeSummary{}, false
}
