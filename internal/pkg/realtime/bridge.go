// Package realtime relays change notifications between instances over Redis Pub/Sub.
package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/wasabi-works/shift-payroll-backend/internal/pkg/sse"
)

const publishTimeout = 2 * time.Second

type envelope struct {
	Origin string          `json:"origin"`
	Topic  string          `json:"topic"`
	Event  string          `json:"event"`
	Data   json.RawMessage `json:"data,omitempty"`
}

// Bridge delivers events to the local hub and republishes them on a Redis channel. Events received
// from other instances are fed into the local hub.
type Bridge struct {
	rdb     goredis.UniversalClient
	hub     *sse.Hub
	channel string
	origin  string
}

func NewBridge(rdb goredis.UniversalClient, hub *sse.Hub, channel string) *Bridge {
	return &Bridge{
		rdb:     rdb,
		hub:     hub,
		channel: channel,
		origin:  uuid.NewString(),
	}
}

// Publish implements sse.Publisher.
func (b *Bridge) Publish(event sse.Event) {
	b.hub.Publish(event)

	payload, err := b.encode(event)
	if err != nil {
		slog.Error("failed to encode realtime event", "event", event.Name, "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	if err := b.rdb.Publish(ctx, b.channel, payload).Err(); err != nil {
		slog.Warn("failed to publish realtime event", "event", event.Name, "channel", b.channel, "error", err)
	}
}

// Run relays remote events into the hub until ctx is done.
func (b *Bridge) Run(ctx context.Context) error {
	pubsub := b.rdb.Subscribe(ctx, b.channel)
	defer pubsub.Close()

	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", b.channel, err)
	}
	slog.Info("realtime bridge subscribed", "channel", b.channel)

	messages := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			event, remote, err := b.decode(msg.Payload)
			if err != nil {
				slog.Warn("dropping malformed realtime event", "error", err)
				continue
			}
			if remote {
				b.hub.Publish(event)
			}
		}
	}
}

func (b *Bridge) encode(event sse.Event) (string, error) {
	env := envelope{Origin: b.origin, Topic: event.Topic, Event: event.Name}
	if event.Data != nil {
		data, err := json.Marshal(event.Data)
		if err != nil {
			return "", err
		}
		env.Data = data
	}
	payload, err := json.Marshal(env)
	if err != nil {
		return "", err
	}
	return string(payload), nil
}

// decode returns the event and whether it came from another instance.
func (b *Bridge) decode(payload string) (sse.Event, bool, error) {
	var env envelope
	if err := json.Unmarshal([]byte(payload), &env); err != nil {
		return sse.Event{}, false, err
	}
	if env.Topic == "" || env.Event == "" {
		return sse.Event{}, false, fmt.Errorf("event without topic or name")
	}
	event := sse.Event{Topic: env.Topic, Name: env.Event}
	if len(env.Data) > 0 {
		event.Data = env.Data
	}
	return event, env.Origin != b.origin, nil
}

// NewRedisClient connects to addr and verifies the connection.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*goredis.Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}

	return rdb, nil
}
