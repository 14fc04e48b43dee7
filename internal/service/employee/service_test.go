package employee

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wasabi-works/shift-payroll-backend/internal/domain/actionlog"
	"github.com/wasabi-works/shift-payroll-backend/internal/domain/employee"
	"github.com/wasabi-works/shift-payroll-backend/internal/domain/master/branch"
	"github.com/wasabi-works/shift-payroll-backend/internal/pkg/ids"
	"github.com/wasabi-works/shift-payroll-backend/internal/pkg/metrics"
	"github.com/wasabi-works/shift-payroll-backend/internal/pkg/sse"
	"github.com/wasabi-works/shift-payroll-backend/internal/repository/memory"
	actionlogsvc "github.com/wasabi-works/shift-payroll-backend/internal/service/actionlog"
	"golang.org/x/crypto/bcrypt"
)

func strPtr(s string) *string { return &s }

func setup(t *testing.T) (employee.EmployeeService, *memory.Store, actionlog.ActionLogService) {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	hub := sse.NewHub()
	logs := actionlogsvc.NewActionLogService(store.ActionLogs(), hub, metrics.New(), 0)

	for _, b := range []branch.Branch{{ID: "b1", Name: "Main"}, {ID: "b2", Name: "Harbor"}} {
		_, err := store.Branches().Create(ctx, b)
		require.NoError(t, err)
	}

	svc := NewEmployeeService(store.Employees(), store.Branches(), store, logs, actionlog.NewEmitter(ids.New, time.Now), hub)
	return svc, store, logs
}

func TestCreateDefaultsToFirstBranchAndGlobalRate(t *testing.T) {
	ctx := context.Background()
	svc, store, logs := setup(t)

	resp, err := svc.Create(ctx, employee.CreateEmployeeRequest{Name: "Aiko", Password: "pass1"})
	require.NoError(t, err)
	assert.Equal(t, "b1", resp.BranchID)
	assert.Equal(t, "Main", resp.BranchName)
	assert.True(t, resp.HourlyRate.IsZero())

	stored, err := store.Employees().GetByID(ctx, resp.ID)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("pass1")))

	entries, err := logs.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, actionlog.ActionStaffAdded, entries[0].Action)
}

func TestCreateRejectsInvalidRequest(t *testing.T) {
	svc, _, _ := setup(t)
	rate := decimal.NewFromInt(-1)
	_, err := svc.Create(context.Background(), employee.CreateEmployeeRequest{Name: "", HourlyRate: &rate, Password: "x"})
	require.Error(t, err)
}

func TestUpdateLogsChangedFields(t *testing.T) {
	ctx := context.Background()
	svc, _, logs := setup(t)

	created, err := svc.Create(ctx, employee.CreateEmployeeRequest{Name: "Aiko", Password: "pass1"})
	require.NoError(t, err)

	rate := decimal.NewFromInt(18000)
	updated, err := svc.Update(ctx, employee.UpdateEmployeeRequest{ID: created.ID, BranchID: strPtr("b2"), HourlyRate: &rate})
	require.NoError(t, err)
	assert.Equal(t, "Harbor", updated.BranchName)
	assert.True(t, updated.HourlyRate.Equal(rate))

	entries, err := logs.List(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, actionlog.ActionStaffUpdated, entries[0].Action)
	assert.Equal(t, "Updated employee Aiko: branch_id, hourly_rate", entries[0].Details)

	_, err = svc.Update(ctx, employee.UpdateEmployeeRequest{ID: "missing", Name: strPtr("X")})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestDanglingBranchRendersUnassigned(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := setup(t)

	created, err := svc.Create(ctx, employee.CreateEmployeeRequest{Name: "Aiko", BranchID: strPtr("b2"), Password: "pass1"})
	require.NoError(t, err)
	require.NoError(t, store.Branches().Delete(ctx, "b2"))

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, branch.UnassignedName, got.BranchName)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := setup(t)

	created, err := svc.Create(ctx, employee.CreateEmployeeRequest{Name: "Aiko", Password: "pass1"})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, created.ID), employee.ErrEmployeeNotFound)
}

func TestSyncRegistry(t *testing.T) {
	ctx := context.Background()
	svc, _, logs := setup(t)

	keep, err := svc.Create(ctx, employee.CreateEmployeeRequest{Name: "Aiko", Password: "pass1"})
	require.NoError(t, err)
	drop, err := svc.Create(ctx, employee.CreateEmployeeRequest{Name: "Ben", Password: "pass2"})
	require.NoError(t, err)

	resp, err := svc.SyncRegistry(ctx, employee.SyncRegistryRequest{Employees: []employee.RegistryEntry{
		{ID: keep.ID, Name: "Aiko T.", BranchID: "b2", HourlyRate: decimal.NewFromInt(16000)},
		{Name: "Chika", BranchID: "b1", Password: strPtr("pass3")},
	}})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Added)
	assert.Equal(t, 1, resp.Updated)
	assert.Equal(t, 1, resp.Removed)
	require.Len(t, resp.Employees, 2)

	_, err = svc.Get(ctx, drop.ID)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	entries, err := logs.List(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, actionlog.ActionMasterSync, entries[0].Action)
	assert.Equal(t, "Employee registry synced: 1 added, 1 updated, 1 removed", entries[0].Details)
}

func TestSyncRegistryIsAtomic(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := setup(t)

	existing, err := svc.Create(ctx, employee.CreateEmployeeRequest{Name: "Aiko", Password: "pass1"})
	require.NoError(t, err)

	_, err = svc.SyncRegistry(ctx, employee.SyncRegistryRequest{Employees: []employee.RegistryEntry{
		{Name: "Chika", BranchID: "b1", Password: strPtr("pass3")},
		{ID: "ghost", Name: "Ghost", BranchID: "b1"},
	}})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, existing.ID, list[0].ID)
}

func TestChangeOwnPassword(t *testing.T) {
	ctx := context.Background()
	svc, _, logs := setup(t)

	created, err := svc.Create(ctx, employee.CreateEmployeeRequest{Name: "Aiko", Password: "pass1"})
	require.NoError(t, err)

	err = svc.ChangeOwnPassword(ctx, employee.ChangePasswordRequest{EmployeeID: created.ID, CurrentPassword: "nope", NewPassword: "pass9"})
	assert.ErrorIs(t, err, employee.ErrInvalidCurrentPassword)

	err = svc.ChangeOwnPassword(ctx, employee.ChangePasswordRequest{EmployeeID: created.ID, CurrentPassword: "pass1", NewPassword: "pass9"})
	require.NoError(t, err)

	entries, err := logs.List(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, actionlog.ActionProfileUpdate, entries[0].Action)
	assert.Equal(t, "Aiko updated their password.", entries[0].Details)
}
