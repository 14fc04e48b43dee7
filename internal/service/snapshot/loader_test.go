package snapshot

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wasabi-works/shift-payroll-backend/internal/domain/attendance"
	"github.com/wasabi-works/shift-payroll-backend/internal/domain/employee"
	"github.com/wasabi-works/shift-payroll-backend/internal/domain/master/branch"
	"github.com/wasabi-works/shift-payroll-backend/internal/domain/settings"
	"github.com/wasabi-works/shift-payroll-backend/internal/domain/shift"
	"github.com/wasabi-works/shift-payroll-backend/internal/repository/memory"
)

type staticSettings struct {
	s   settings.SystemSettings
	err error
}

func (f staticSettings) Current(context.Context) (settings.SystemSettings, error) {
	return f.s, f.err
}

func seeded(t *testing.T) *memory.Store {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	_, err := store.Branches().Create(ctx, branch.Branch{ID: "b1", Name: "Main"})
	require.NoError(t, err)
	_, err = store.Employees().Create(ctx, employee.Employee{ID: "e1", Name: "Aiko", BranchID: "b1"})
	require.NoError(t, err)
	require.NoError(t, store.Shifts().UpsertMany(ctx, []shift.ShiftRequest{
		{ID: "s1", EmployeeID: "e1", BranchID: "b1", Date: "2024-03-01", IsWorking: true, StartTime: "10:00", EndTime: "18:00"},
	}))
	_, err = store.Attendance().UpsertMany(ctx, []attendance.Record{
		{ID: "e1-2024-03-02", EmployeeID: "e1", BranchID: "b1", Date: "2024-03-02", IsWorking: true, StartTime: "09:00", EndTime: "12:00", IsApproved: true},
	})
	require.NoError(t, err)
	return store
}

func TestLoadAndLoadSerialAgree(t *testing.T) {
	ctx := context.Background()
	store := seeded(t)
	cfg := settings.SystemSettings{DefaultStartHour: 13, DefaultEndHour: 22, GlobalHourlyRate: decimal.NewFromInt(15000)}
	loader := NewLoader(store.Branches(), store.Employees(), store.Shifts(), store.Attendance(), staticSettings{s: cfg})

	parallel, err := loader.Load(ctx)
	require.NoError(t, err)
	serial, err := loader.LoadSerial(ctx)
	require.NoError(t, err)

	assert.Equal(t, serial, parallel)
	assert.Len(t, parallel.Branches, 1)
	assert.Len(t, parallel.Employees, 1)
	assert.Len(t, parallel.Requests, 1)
	assert.Len(t, parallel.Records, 1)
	assert.Equal(t, 13, parallel.Settings.DefaultStartHour)
}

func TestLoadPropagatesErrors(t *testing.T) {
	store := seeded(t)
	boom := errors.New("boom")
	loader := NewLoader(store.Branches(), store.Employees(), store.Shifts(), store.Attendance(), staticSettings{err: boom})

	_, err := loader.Load(context.Background())
	assert.ErrorIs(t, err, boom)
	_, err = loader.LoadSerial(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestSnapshotResolver(t *testing.T) {
	store := seeded(t)
	cfg := settings.SystemSettings{DefaultStartHour: 13, DefaultEndHour: 22}
	loader := NewLoader(store.Branches(), store.Employees(), store.Shifts(), store.Attendance(), staticSettings{s: cfg})

	snap, err := loader.Load(context.Background())
	require.NoError(t, err)

	r := snap.Resolver()
	fromRequest := r.Resolve("e1", "2024-03-01")
	assert.Equal(t, "10:00", fromRequest.StartTime)
	assert.False(t, fromRequest.IsApproved)

	override := r.Resolve("e1", "2024-03-02")
	assert.True(t, override.IsApproved)

	fallback := r.Resolve("e1", "2024-03-03")
	assert.Equal(t, "13:00", fallback.StartTime)
	assert.Equal(t, "22:00", fallback.EndTime)

	assert.Equal(t, "Aiko", snap.EmployeeName("e1"))
	assert.Equal(t, branch.UnassignedName, snap.BranchName("gone"))
}
