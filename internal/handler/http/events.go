package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/wasabi-works/shift-payroll-backend/internal/domain/auth"
	"github.com/wasabi-works/shift-payroll-backend/internal/pkg/jwt"
	"github.com/wasabi-works/shift-payroll-backend/internal/pkg/metrics"
	"github.com/wasabi-works/shift-payroll-backend/internal/pkg/sse"
)

const keepaliveInterval = 30 * time.Second

// Subscriber opens a subscription on a set of topics.
type Subscriber interface {
	Subscribe(topics ...string) (chan sse.Event, func())
}

type EventHandler interface {
	Stream(w http.ResponseWriter, r *http.Request)
}

type eventHandlerImpl struct {
	hub        Subscriber
	jwtService jwt.Service
	metrics    *metrics.Metrics
}

func NewEventHandler(hub Subscriber, jwtService jwt.Service, m *metrics.Metrics) EventHandler {
	return &eventHandlerImpl{
		hub:        hub,
		jwtService: jwtService,
		metrics:    m,
	}
}

// topicsFor returns the topics a session may listen on.
func topicsFor(claims auth.Claims) []string {
	if claims.IsAdmin() {
		return []string{sse.TopicAll, sse.TopicAdmin}
	}
	return []string{sse.TopicAll, sse.EmployeeTopic(claims.EmployeeID)}
}

// Stream handles the SSE connection for change notifications
func (h *eventHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	// EventSource cannot send headers, so the token travels in the query
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		http.Error(w, "Missing token", http.StatusUnauthorized)
		return
	}

	claims, err := h.jwtService.ValidateSSEToken(tokenStr)
	if err != nil {
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cleanup := h.hub.Subscribe(topicsFor(claims)...)
	defer cleanup()

	h.metrics.EventSubscribers.Inc()
	defer h.metrics.EventSubscribers.Dec()

	fmt.Fprintf(w, "event: connected\ndata: {\"status\":\"connected\",\"role\":%q}\n\n", claims.Role)
	flusher.Flush()

	keepalive := time.NewTicker(keepaliveInterval)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event.Data)
			if err != nil {
				slog.Error("failed to encode event", "event", event.Name, "error", err)
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Name, data)
			flusher.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
