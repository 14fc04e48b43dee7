package realtime

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wasabi-works/shift-payroll-backend/internal/pkg/sse"
)

func TestBridge_EncodeDecode(t *testing.T) {
	local := NewBridge(nil, sse.NewHub(), "test")
	other := NewBridge(nil, sse.NewHub(), "test")

	payload, err := local.encode(sse.Event{
		Topic: sse.TopicAll,
		Name:  sse.EventAttendanceChanged,
		Data:  map[string]any{"dates": []string{"2024-03-15"}},
	})
	require.NoError(t, err)

	event, remote, err := other.decode(payload)
	require.NoError(t, err)
	assert.True(t, remote)
	assert.Equal(t, sse.TopicAll, event.Topic)
	assert.Equal(t, sse.EventAttendanceChanged, event.Name)
	assert.JSONEq(t, `{"dates":["2024-03-15"]}`, string(event.Data.(json.RawMessage)))

	_, remote, err = local.decode(payload)
	require.NoError(t, err)
	assert.False(t, remote)
}

func TestBridge_DecodeRejectsGarbage(t *testing.T) {
	b := NewBridge(nil, sse.NewHub(), "test")

	_, _, err := b.decode("not json")
	assert.Error(t, err)

	_, _, err = b.decode(`{"origin":"x"}`)
	assert.Error(t, err)
}

func TestBridge_Redis(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	rdbA, err := NewRedisClient(ctx, addr, "", 0)
	require.NoError(t, err)
	defer rdbA.Close()
	rdbB, err := NewRedisClient(ctx, addr, "", 0)
	require.NoError(t, err)
	defer rdbB.Close()

	hubB := sse.NewHub()
	a := NewBridge(rdbA, sse.NewHub(), "shiftpay-test")
	b := NewBridge(rdbB, hubB, "shiftpay-test")

	events, cleanup := hubB.Subscribe(sse.TopicAll)
	defer cleanup()

	go func() { _ = b.Run(ctx) }()
	time.Sleep(200 * time.Millisecond)

	a.Publish(sse.Event{Topic: sse.TopicAll, Name: sse.EventSettingsChanged})

	select {
	case ev := <-events:
		assert.Equal(t, sse.EventSettingsChanged, ev.Name)
	case <-ctx.Done():
		t.Fatal("event not relayed")
	}
}
