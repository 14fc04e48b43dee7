package attendance

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/wasabi-works/shift-payroll-backend/internal/domain/master/branch"
	"github.com/wasabi-works/shift-payroll-backend/internal/domain/settings"
	"github.com/wasabi-works/shift-payroll-backend/internal/domain/shift"
)

var (
	testBranches = []branch.Branch{{ID: "b1", Name: "Main"}, {ID: "b2", Name: "Harbor"}}
	testSettings = settings.SystemSettings{
		DefaultStartHour: 9,
		DefaultEndHour:   17,
		GlobalHourlyRate: decimal.NewFromInt(15000),
	}
)

func TestResolve_DefaultWhenNothingStored(t *testing.T) {
	rec := Resolve("e1", "2024-03-15", nil, nil, testBranches, testSettings)

	assert.Equal(t, "e1-2024-03-15", rec.ID)
	assert.Equal(t, "e1", rec.EmployeeID)
	assert.Equal(t, "2024-03-15", rec.Date)
	assert.False(t, rec.IsWorking)
	assert.False(t, rec.IsApproved)
	assert.Equal(t, "b1", rec.BranchID)
	assert.Equal(t, "09:00", rec.StartTime)
	assert.Equal(t, "17:00", rec.EndTime)
	assert.True(t, rec.Bonus.IsZero())
}

func TestResolve_DefaultWithoutBranches(t *testing.T) {
	rec := Resolve("e1", "2024-03-15", nil, nil, nil, testSettings)

	assert.Equal(t, "", rec.BranchID)
	assert.False(t, rec.IsWorking)
}

func TestResolve_MapsShiftRequest(t *testing.T) {
	requests := []shift.ShiftRequest{{
		ID: "req-1", EmployeeID: "e1", BranchID: "b2", Date: "2024-03-15",
		IsWorking: true, StartTime: "10:00", EndTime: "18:30",
	}}

	rec := Resolve("e1", "2024-03-15", requests, nil, testBranches, testSettings)

	assert.Equal(t, "e1-2024-03-15", rec.ID)
	assert.Equal(t, "b2", rec.BranchID)
	assert.True(t, rec.IsWorking)
	assert.Equal(t, "10:00", rec.StartTime)
	assert.Equal(t, "18:30", rec.EndTime)
	assert.False(t, rec.IsApproved)
	assert.True(t, rec.Bonus.IsZero())
}

func TestResolve_StoredRecordWins(t *testing.T) {
	requests := []shift.ShiftRequest{{
		ID: "req-1", EmployeeID: "e1", BranchID: "b2", Date: "2024-03-15",
		IsWorking: true, StartTime: "10:00", EndTime: "18:00",
	}}
	stored := Record{
		ID: "att-1", EmployeeID: "e1", BranchID: "b1", Date: "2024-03-15",
		IsWorking: false, StartTime: "12:00", EndTime: "13:00",
		IsApproved: true, Bonus: decimal.NewFromInt(5000),
	}

	rec := Resolve("e1", "2024-03-15", requests, []Record{stored}, testBranches, testSettings)

	assert.Equal(t, stored, rec)
}

func TestResolve_Idempotent(t *testing.T) {
	requests := []shift.ShiftRequest{{ID: "r", EmployeeID: "e1", BranchID: "b1", Date: "2024-03-14", IsWorking: true, StartTime: "09:00", EndTime: "12:00"}}
	r := NewResolver(requests, nil, testBranches, testSettings)

	for _, date := range []string{"2024-03-14", "2024-03-15"} {
		first := r.Resolve("e1", date)
		second := r.Resolve("e1", date)
		assert.Equal(t, first, second)
		assert.Equal(t, first, Resolve("e1", date, requests, nil, testBranches, testSettings))
	}
}

func TestResolve_OtherEmployeesIgnored(t *testing.T) {
	requests := []shift.ShiftRequest{{ID: "r", EmployeeID: "e2", BranchID: "b2", Date: "2024-03-15", IsWorking: true, StartTime: "09:00", EndTime: "12:00"}}
	overrides := []Record{{ID: "a", EmployeeID: "e2", Date: "2024-03-15", IsApproved: true}}

	rec := Resolve("e1", "2024-03-15", requests, overrides, testBranches, testSettings)

	assert.False(t, rec.IsWorking)
	assert.False(t, rec.IsApproved)
	assert.Equal(t, "e1-2024-03-15", rec.ID)
}

func TestResolver_Stored(t *testing.T) {
	r := NewResolver(nil, []Record{{ID: "a", EmployeeID: "e1", Date: "2024-03-15"}}, testBranches, testSettings)

	assert.True(t, r.Stored("e1", "2024-03-15"))
	assert.False(t, r.Stored("e1", "2024-03-16"))
}

func TestRecord_Minutes(t *testing.T) {
	tests := []struct {
		name string
		rec  Record
		want int
	}{
		{"working", Record{IsWorking: true, StartTime: "09:00", EndTime: "17:00"}, 480},
		{"day off", Record{IsWorking: false, StartTime: "09:00", EndTime: "17:00"}, 0},
		{"reversed", Record{IsWorking: true, StartTime: "17:00", EndTime: "09:00"}, 0},
		{"empty", Record{IsWorking: true, StartTime: "", EndTime: "17:00"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rec.Minutes())
		})
	}
}

func TestApprovedDates(t *testing.T) {
	records := []Record{
		{EmployeeID: "e1", Date: "2024-03-01", IsApproved: true},
		{EmployeeID: "e1", Date: "2024-03-02", IsApproved: false},
		{EmployeeID: "e2", Date: "2024-03-03", IsApproved: true},
	}

	assert.Equal(t, map[string]bool{"2024-03-01": true}, ApprovedDates(records, "e1"))
}
