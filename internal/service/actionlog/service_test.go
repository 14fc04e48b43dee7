package actionlog

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wasabi-works/shift-payroll-backend/internal/domain/actionlog"
	"github.com/wasabi-works/shift-payroll-backend/internal/pkg/metrics"
	"github.com/wasabi-works/shift-payroll-backend/internal/pkg/sse"
	"github.com/wasabi-works/shift-payroll-backend/internal/repository/memory"
)

func seqEmitter() *actionlog.Emitter {
	n := 0
	base := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	return actionlog.NewEmitter(
		func() string { n++; return fmt.Sprintf("log-%03d", n) },
		func() time.Time { return base.Add(time.Duration(n) * time.Minute) },
	)
}

func TestRecordPublishesToAdmins(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	hub := sse.NewHub()
	ch, cancel := hub.Subscribe(sse.TopicAdmin)
	defer cancel()

	svc := NewActionLogService(store.ActionLogs(), hub, metrics.New(), 0)
	svc.Record(ctx, seqEmitter().SiteAdded("Main"))

	select {
	case ev := <-ch:
		assert.Equal(t, sse.EventLogsChanged, ev.Name)
		resp, ok := ev.Data.(actionlog.EntryResponse)
		require.True(t, ok)
		assert.Equal(t, actionlog.ActionSiteAdded, resp.Action)
	case <-time.After(time.Second):
		t.Fatal("expected logs.changed event")
	}

	entries, err := svc.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Deployed site: Main", entries[0].Details)
}

func TestListNewestFirstAndLimit(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := NewActionLogService(store.ActionLogs(), sse.NewHub(), metrics.New(), 0)
	em := seqEmitter()

	for i := 0; i < 5; i++ {
		svc.Record(ctx, em.StaffAdded(fmt.Sprintf("emp-%d", i)))
	}

	entries, err := svc.List(ctx, 3)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "Registered employee: emp-4", entries[0].Details)
	assert.Equal(t, "Registered employee: emp-2", entries[2].Details)

	_, err = svc.List(ctx, MaxListLimit+1)
	assert.ErrorIs(t, err, actionlog.ErrInvalidLimit)
	_, err = svc.List(ctx, -1)
	assert.ErrorIs(t, err, actionlog.ErrInvalidLimit)
}

func TestPruneKeepsNewest(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	m := metrics.New()
	svc := NewActionLogService(store.ActionLogs(), sse.NewHub(), m, 3)
	em := seqEmitter()

	for i := 0; i < 7; i++ {
		svc.Record(ctx, em.StaffAdded(fmt.Sprintf("emp-%d", i)))
	}

	removed, err := svc.Prune(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), removed)
	assert.Equal(t, float64(4), testutil.ToFloat64(m.ActionLogsPruned))

	entries, err := svc.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "Registered employee: emp-6", entries[0].Details)

	removed, err = svc.Prune(ctx)
	require.NoError(t, err)
	assert.Zero(t, removed)
}
