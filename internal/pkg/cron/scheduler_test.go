package cron

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wasabi-works/shift-payroll-backend/internal/domain/actionlog"
	"github.com/wasabi-works/shift-payroll-backend/internal/pkg/metrics"
	"github.com/wasabi-works/shift-payroll-backend/internal/pkg/sse"
	"github.com/wasabi-works/shift-payroll-backend/internal/repository/memory"
	actionlogsvc "github.com/wasabi-works/shift-payroll-backend/internal/service/actionlog"
)

func TestSchedulerRunsImmediateAndTicks(t *testing.T) {
	var runs atomic.Int32
	s := NewScheduler()
	s.AddJob(Job{
		Name:      "count",
		Interval:  10 * time.Millisecond,
		Immediate: true,
		Fn: func(context.Context) error {
			runs.Add(1)
			return nil
		},
	})

	s.Start(context.Background())
	assert.Eventually(t, func() bool { return runs.Load() >= 3 }, time.Second, 5*time.Millisecond)
	s.Stop()

	after := runs.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, runs.Load())
}

func TestSchedulerStopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})

	s := NewScheduler()
	s.AddJob(Job{
		Name:     "wait",
		Interval: time.Hour,
		Fn:       func(context.Context) error { return nil },
	})
	s.Start(ctx)
	cancel()

	go func() {
		s.Stop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop")
	}
}

func TestRunOnceContinuesAfterFailure(t *testing.T) {
	var second bool
	s := NewScheduler()
	s.AddJob(Job{Name: "fail", Interval: time.Hour, Fn: func(context.Context) error { return errors.New("boom") }})
	s.AddJob(Job{Name: "ok", Interval: time.Hour, Fn: func(context.Context) error { second = true; return nil }})

	s.RunOnce(context.Background())
	assert.True(t, second)
}

func TestPruneActionLogsJob(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	logs := actionlogsvc.NewActionLogService(store.ActionLogs(), sse.NewHub(), metrics.New(), 2)

	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, store.ActionLogs().Append(ctx, actionlog.Entry{
			ID:        fmt.Sprintf("log-%d", i),
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			Action:    actionlog.ActionStaffAdded,
		}))
	}

	s := NewScheduler()
	NewRetentionJobs(logs, time.Hour).RegisterJobs(s)
	s.RunOnce(ctx)

	entries, err := logs.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "log-4", entries[0].ID)
	assert.Equal(t, "log-3", entries[1].ID)
}
