package payroll

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wasabi-works/shift-payroll-backend/internal/domain/attendance"
	"github.com/wasabi-works/shift-payroll-backend/internal/domain/employee"
)

var globalRate = decimal.NewFromInt(15000)

func worked(empID, date, start, end string, bonus int64) attendance.Record {
	return attendance.Record{
		ID:         empID + "-" + date,
		EmployeeID: empID,
		BranchID:   "b1",
		Date:       date,
		IsWorking:  true,
		StartTime:  start,
		EndTime:    end,
		IsApproved: true,
		Bonus:      decimal.NewFromInt(bonus),
	}
}

func TestCompute_GlobalRateExample(t *testing.T) {
	employees := []employee.Employee{{ID: "e1", Name: "Ana"}}
	records := []attendance.Record{
		worked("e1", "2024-03-05", "09:00", "15:30", 0),
		worked("e1", "2024-03-04", "09:00", "17:00", 5000),
	}

	s := Compute(employees, records, 2024, 3, globalRate)

	require.Len(t, s.Employees, 1)
	es := s.Employees[0]
	assert.True(t, es.Rate.Equal(globalRate))
	assert.Equal(t, 2, es.Days)
	assert.Equal(t, 870, es.TotalMinutes)
	assert.True(t, es.TotalHours.Equal(decimal.RequireFromString("14.5")), es.TotalHours.String())
	assert.True(t, es.BasePay.Equal(decimal.NewFromInt(217500)), es.BasePay.String())
	assert.True(t, es.TotalBonus.Equal(decimal.NewFromInt(5000)))
	assert.True(t, es.Total.Equal(decimal.NewFromInt(222500)), es.Total.String())

	require.Len(t, es.Items, 2)
	assert.Equal(t, "2024-03-04", es.Items[0].Date)
	assert.True(t, es.Items[0].Pay.Equal(decimal.NewFromInt(120000)))
	assert.True(t, es.Items[0].Total.Equal(decimal.NewFromInt(125000)))
	assert.Equal(t, "2024-03-05", es.Items[1].Date)
	assert.True(t, es.Items[1].Pay.Equal(decimal.NewFromInt(97500)))
}

func TestCompute_ExcludesUnpayable(t *testing.T) {
	employees := []employee.Employee{{ID: "e1", Name: "Ana"}}
	unapproved := worked("e1", "2024-03-06", "09:00", "17:00", 1000)
	unapproved.IsApproved = false
	dayOff := worked("e1", "2024-03-07", "09:00", "17:00", 1000)
	dayOff.IsWorking = false
	records := []attendance.Record{
		worked("e1", "2024-03-04", "09:00", "17:00", 0),
		unapproved,
		dayOff,
		worked("e1", "2024-04-01", "09:00", "17:00", 0),
		worked("e1", "2024-02-29", "09:00", "17:00", 0),
		worked("ghost", "2024-03-04", "09:00", "17:00", 0),
	}

	s := Compute(employees, records, 2024, 3, globalRate)

	es := s.Employees[0]
	assert.Equal(t, 1, es.Days)
	assert.Equal(t, 480, es.TotalMinutes)
	assert.True(t, es.Total.Equal(decimal.NewFromInt(120000)))
	assert.True(t, s.CompanyTotal.Equal(es.Total))
}

func TestCompute_PersonalRateAndRounding(t *testing.T) {
	employees := []employee.Employee{
		{ID: "e1", Name: "Ana", HourlyRate: decimal.NewFromInt(10001)},
		{ID: "e2", Name: "Budi"},
	}
	records := []attendance.Record{
		// 30 minutes at 10001/h is 5000.5 and rounds up.
		worked("e1", "2024-03-04", "09:00", "09:30", 0),
		// 20 minutes at 15000/h is exactly 5000.
		worked("e2", "2024-03-04", "09:00", "09:20", 0),
	}

	s := Compute(employees, records, 2024, 3, globalRate)

	assert.True(t, s.Employees[0].Rate.Equal(decimal.NewFromInt(10001)))
	assert.True(t, s.Employees[0].BasePay.Equal(decimal.NewFromInt(5001)), s.Employees[0].BasePay.String())
	assert.True(t, s.Employees[1].BasePay.Equal(decimal.NewFromInt(5000)), s.Employees[1].BasePay.String())
	assert.True(t, s.CompanyTotal.Equal(decimal.NewFromInt(10001)))
}

func TestCompute_CompanyTotalsAreSums(t *testing.T) {
	employees := []employee.Employee{
		{ID: "e1", HourlyRate: decimal.NewFromInt(10001)},
		{ID: "e2", HourlyRate: decimal.NewFromInt(10001)},
		{ID: "e3"},
	}
	records := []attendance.Record{
		worked("e1", "2024-03-04", "09:00", "09:30", 0),
		worked("e2", "2024-03-04", "09:00", "09:30", 250),
		worked("e3", "2024-03-09", "13:00", "22:00", 0),
	}

	s := Compute(employees, records, 2024, 3, globalRate)

	total := decimal.Zero
	hours := decimal.Zero
	for _, es := range s.Employees {
		total = total.Add(es.Total)
		hours = hours.Add(es.TotalHours)
	}
	assert.True(t, s.CompanyTotal.Equal(total))
	assert.True(t, s.CompanyHours.Equal(hours))
	assert.True(t, s.CompanyHours.Equal(decimal.NewFromInt(10)))
}

func TestCompute_Empty(t *testing.T) {
	s := Compute(nil, nil, 2024, 3, globalRate)

	assert.Empty(t, s.Employees)
	assert.True(t, s.CompanyTotal.IsZero())
	assert.True(t, s.CompanyHours.IsZero())

	s = Compute([]employee.Employee{{ID: "e1"}}, nil, 2024, 3, globalRate)
	require.Len(t, s.Employees, 1)
	assert.True(t, s.Employees[0].Total.IsZero())
	assert.Empty(t, s.Employees[0].Items)
}

func TestCompute_MalformedTimesContributeZero(t *testing.T) {
	employees := []employee.Employee{{ID: "e1"}}
	records := []attendance.Record{
		worked("e1", "2024-03-04", "", "17:00", 300),
		worked("e1", "2024-03-05", "22:00", "06:00", 0),
	}

	s := Compute(employees, records, 2024, 3, globalRate)

	es := s.Employees[0]
	assert.Equal(t, 2, es.Days)
	assert.Equal(t, 0, es.TotalMinutes)
	assert.True(t, es.BasePay.IsZero())
	assert.True(t, es.Total.Equal(decimal.NewFromInt(300)))
}

func TestSummary_Find(t *testing.T) {
	s := Compute([]employee.Employee{{ID: "e1", Name: "Ana"}}, nil, 2024, 3, globalRate)

	es, ok := s.Find("e1")
	assert.True(t, ok)
	assert.Equal(t, "Ana", es.Name)

	_, ok = s.Find("nope")
	assert.False(t, ok)
}

func TestPeriodRequest_Validate(t *testing.T) {
	assert.NoError(t, (&PeriodRequest{Year: 2024, Month: 3}).Validate())
	assert.Error(t, (&PeriodRequest{Year: 2024, Month: 13}).Validate())
	assert.Error(t, (&PeriodRequest{Year: 1999, Month: 1}).Validate())
}
