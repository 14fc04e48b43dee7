package attendance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wasabi-works/shift-payroll-backend/internal/domain/employee"
	"github.com/wasabi-works/shift-payroll-backend/internal/domain/master/branch"
	"github.com/wasabi-works/shift-payroll-backend/internal/domain/shift"
)

func TestBoard(t *testing.T) {
	employees := []employee.Employee{{ID: "e1", Name: "Ana"}, {ID: "e2", Name: "Budi"}}
	requests := []shift.ShiftRequest{
		{ID: "r1", EmployeeID: "e1", BranchID: "gone", Date: "2024-03-11", IsWorking: true, StartTime: "09:00", EndTime: "17:00"},
	}
	overrides := []Record{
		{ID: "a1", EmployeeID: "e1", BranchID: "b1", Date: "2024-03-12", IsApproved: true},
		{ID: "a2", EmployeeID: "e2", BranchID: "b1", Date: "2024-03-12", IsApproved: true},
	}
	r := NewResolver(requests, overrides, testBranches, testSettings)

	days := Board([]string{"2024-03-11", "2024-03-12"}, employees, testBranches, r)

	require.Len(t, days, 2)

	first := days[0]
	assert.Equal(t, "2024-03-11", first.Date)
	assert.Equal(t, 1, first.WorkingCount)
	assert.False(t, first.Approved)
	require.Len(t, first.Rows, 2)
	assert.Equal(t, "Ana", first.Rows[0].EmployeeName)
	assert.Equal(t, branch.UnassignedName, first.Rows[0].BranchName)
	assert.False(t, first.Rows[0].Stored)
	assert.Equal(t, "Main", first.Rows[1].BranchName)

	second := days[1]
	assert.True(t, second.Approved)
	assert.True(t, second.Rows[0].Stored)
}

func TestBoard_Empty(t *testing.T) {
	r := NewResolver(nil, nil, nil, testSettings)

	days := Board([]string{"2024-03-11"}, nil, nil, r)

	require.Len(t, days, 1)
	assert.Empty(t, days[0].Rows)
	assert.False(t, days[0].Approved)
	assert.Empty(t, Board(nil, nil, nil, r))
}
