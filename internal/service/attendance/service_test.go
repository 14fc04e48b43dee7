package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wasabi-works/shift-payroll-backend/internal/domain/actionlog"
	"github.com/wasabi-works/shift-payroll-backend/internal/domain/attendance"
	"github.com/wasabi-works/shift-payroll-backend/internal/domain/employee"
	"github.com/wasabi-works/shift-payroll-backend/internal/domain/master/branch"
	"github.com/wasabi-works/shift-payroll-backend/internal/domain/settings"
	"github.com/wasabi-works/shift-payroll-backend/internal/domain/shift"
	"github.com/wasabi-works/shift-payroll-backend/internal/pkg/ids"
	"github.com/wasabi-works/shift-payroll-backend/internal/pkg/metrics"
	"github.com/wasabi-works/shift-payroll-backend/internal/pkg/period"
	"github.com/wasabi-works/shift-payroll-backend/internal/pkg/sse"
	"github.com/wasabi-works/shift-payroll-backend/internal/repository/memory"
	actionlogsvc "github.com/wasabi-works/shift-payroll-backend/internal/service/actionlog"
	"github.com/wasabi-works/shift-payroll-backend/internal/service/master"
	"github.com/wasabi-works/shift-payroll-backend/internal/service/snapshot"
)

func ptr[T any](v T) *T { return &v }

type testEnv struct {
	store   *memory.Store
	svc     attendance.AttendanceService
	logs    actionlog.ActionLogService
	hub     *sse.Hub
	metrics *metrics.Metrics
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	hub := sse.NewHub()
	m := metrics.New()
	logs := actionlogsvc.NewActionLogService(store.ActionLogs(), hub, m, 0)
	emitter := actionlog.NewEmitter(ids.New, time.Now)

	for _, b := range []branch.Branch{{ID: "b1", Name: "Main"}, {ID: "b2", Name: "Harbor"}} {
		_, err := store.Branches().Create(ctx, b)
		require.NoError(t, err)
	}
	for _, e := range []employee.Employee{{ID: "e1", Name: "Aiko", BranchID: "b1"}, {ID: "e2", Name: "Ben", BranchID: "b2"}} {
		_, err := store.Employees().Create(ctx, e)
		require.NoError(t, err)
	}
	require.NoError(t, store.Shifts().UpsertMany(ctx, []shift.ShiftRequest{
		{ID: "s1", EmployeeID: "e1", BranchID: "b2", Date: "2024-03-04", IsWorking: true, StartTime: "10:00", EndTime: "18:30"},
	}))

	settingsSvc := master.NewSettingsService(store.Settings(), logs, emitter, hub, settings.SystemSettings{
		DefaultStartHour: 9,
		DefaultEndHour:   17,
		GlobalHourlyRate: decimal.NewFromInt(15000),
	}, "")
	loader := snapshot.NewLoader(store.Branches(), store.Employees(), store.Shifts(), store.Attendance(), settingsSvc)

	return &testEnv{
		store:   store,
		svc:     NewAttendanceService(loader, store.Attendance(), store, logs, emitter, hub, m),
		logs:    logs,
		hub:     hub,
		metrics: m,
	}
}

func TestBoardResolvesEveryEmployee(t *testing.T) {
	env := newTestEnv(t)

	board, err := env.svc.Board(context.Background(), "2024-03-04", period.ModeWeek)
	require.NoError(t, err)
	require.Len(t, board.Days, 7)

	monday := board.Days[0]
	assert.Equal(t, "2024-03-04", monday.Date)
	assert.Equal(t, "Monday", monday.Weekday)
	require.Len(t, monday.Rows, 2)
	assert.Equal(t, 1, monday.WorkingCount)
	assert.False(t, monday.Approved)

	aiko := monday.Rows[0]
	assert.Equal(t, "Aiko", aiko.EmployeeName)
	assert.Equal(t, "Harbor", aiko.BranchName)
	assert.InDelta(t, 8.5, aiko.Hours, 1e-9)
	assert.False(t, aiko.Stored)
}

func TestBoardRejectsBadReference(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.svc.Board(context.Background(), "not-a-date", period.ModeDay)
	require.Error(t, err)
}

func TestEditPersistsAndLogs(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	resp, err := env.svc.Edit(ctx, attendance.EditRecordRequest{
		EmployeeID: "e2",
		Date:       "2024-03-05",
		Patch: attendance.Patch{
			IsWorking: ptr(true),
			Bonus:     ptr(decimal.NewFromInt(5000)),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"is_working", "bonus"}, resp.Changed)
	assert.True(t, resp.Record.IsWorking)
	assert.Equal(t, "09:00", resp.Record.StartTime)

	stored, err := env.store.Attendance().GetByKey(ctx, "e2", "2024-03-05")
	require.NoError(t, err)
	assert.Equal(t, "e2-2024-03-05", stored.ID)
	assert.True(t, stored.Bonus.Equal(decimal.NewFromInt(5000)))

	entries, err := env.logs.List(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, actionlog.ActionAttendanceMod, entries[0].Action)
	assert.Equal(t, "Updated Ben for 2024-03-05: is_working, bonus", entries[0].Details)
	assert.Equal(t, float64(1), testutil.ToFloat64(env.metrics.AttendanceEdits.WithLabelValues(metrics.EditApplied)))
}

func TestEditWithoutChangesWritesNothing(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	resp, err := env.svc.Edit(ctx, attendance.EditRecordRequest{
		EmployeeID: "e1",
		Date:       "2024-03-04",
		Patch:      attendance.Patch{StartTime: ptr("10:00")},
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Changed)

	_, err = env.store.Attendance().GetByKey(ctx, "e1", "2024-03-04")
	assert.ErrorIs(t, err, attendance.ErrRecordNotFound)
}

func TestEditUnknownEmployee(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.svc.Edit(context.Background(), attendance.EditRecordRequest{
		EmployeeID: "ghost",
		Date:       "2024-03-04",
		Patch:      attendance.Patch{IsWorking: ptr(true)},
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestEditAfterCommitIsRejected(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	_, err := env.svc.Commit(ctx, attendance.CommitRequest{Dates: []string{"2024-03-04"}})
	require.NoError(t, err)

	resp, err := env.svc.Edit(ctx, attendance.EditRecordRequest{
		EmployeeID: "e1",
		Date:       "2024-03-04",
		Patch:      attendance.Patch{EndTime: ptr("20:00")},
	})
	assert.ErrorIs(t, err, attendance.ErrRecordLocked)
	assert.Equal(t, "18:30", resp.Record.EndTime)
	assert.True(t, resp.Record.IsApproved)

	stored, err := env.store.Attendance().GetByKey(ctx, "e1", "2024-03-04")
	require.NoError(t, err)
	assert.Equal(t, "18:30", stored.EndTime)
	assert.Equal(t, float64(1), testutil.ToFloat64(env.metrics.AttendanceEdits.WithLabelValues(metrics.EditRejectedLocked)))
}

func TestCommitApprovesRange(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	resp, err := env.svc.Commit(ctx, attendance.CommitRequest{Reference: "2024-03-06", Mode: period.ModeWeek})
	require.NoError(t, err)
	assert.Len(t, resp.Dates, 7)
	assert.Equal(t, 14, resp.Approved)

	records, err := env.store.Attendance().List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 14)
	for _, r := range records {
		assert.True(t, r.IsApproved)
	}

	board, err := env.svc.Board(ctx, "2024-03-04", period.ModeDay)
	require.NoError(t, err)
	assert.True(t, board.Days[0].Approved)
	assert.Equal(t, "b2", board.Days[0].Rows[0].BranchID)

	// Committing again locks nothing new.
	again, err := env.svc.Commit(ctx, attendance.CommitRequest{Dates: []string{"2024-03-04"}})
	require.NoError(t, err)
	assert.Zero(t, again.Approved)

	assert.Equal(t, float64(2), testutil.ToFloat64(env.metrics.AttendanceCommits))
	assert.Equal(t, float64(14), testutil.ToFloat64(env.metrics.AttendanceCommittedRecords))

	entries, err := env.logs.List(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Verified attendance for 2024-03-04 to 2024-03-10 (14 records locked)", entries[1].Details)
}

func TestCommitIsAllOrNothing(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	env.store.FailAttendanceWritesAfter(3)
	_, err := env.svc.Commit(ctx, attendance.CommitRequest{Dates: []string{"2024-03-04", "2024-03-05", "2024-03-06"}})
	require.ErrorIs(t, err, memory.ErrInjected)

	records, err := env.store.Attendance().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Zero(t, testutil.ToFloat64(env.metrics.AttendanceCommits))
}

func TestCommitEmptyRangeIsNoop(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	ch, cancel := env.hub.Subscribe(sse.TopicAll)
	defer cancel()

	for _, req := range []attendance.CommitRequest{{}, {Dates: []string{}}} {
		resp, err := env.svc.Commit(ctx, req)
		require.NoError(t, err)
		assert.Empty(t, resp.Dates)
		assert.NotNil(t, resp.Dates)
		assert.Zero(t, resp.Approved)
	}

	records, err := env.store.Attendance().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)

	entries, err := env.logs.List(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Zero(t, testutil.ToFloat64(env.metrics.AttendanceCommits))

	select {
	case ev := <-ch:
		t.Fatalf("unexpected event %s", ev.Name)
	default:
	}
}

func TestCommitNotifiesEveryone(t *testing.T) {
	env := newTestEnv(t)
	ch, cancel := env.hub.Subscribe(sse.TopicAll)
	defer cancel()

	_, err := env.svc.Commit(context.Background(), attendance.CommitRequest{Dates: []string{"2024-03-04"}})
	require.NoError(t, err)

	select {
	case ev := <-ch:
		assert.Equal(t, sse.EventAttendanceChanged, ev.Name)
	case <-time.After(time.Second):
		t.Fatal("expected attendance.changed event")
	}
}
