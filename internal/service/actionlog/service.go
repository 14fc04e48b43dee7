package actionlog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/wasabi-works/shift-payroll-backend/internal/domain/actionlog"
	"github.com/wasabi-works/shift-payroll-backend/internal/pkg/metrics"
	"github.com/wasabi-works/shift-payroll-backend/internal/pkg/sse"
)

// MaxListLimit bounds a single page of the log.
const MaxListLimit = actionlog.DefaultRetention

type actionLogServiceImpl struct {
	repo      actionlog.ActionLogRepository
	publisher sse.Publisher
	metrics   *metrics.Metrics
	keep      int
}

func NewActionLogService(repo actionlog.ActionLogRepository, publisher sse.Publisher, m *metrics.Metrics, keep int) actionlog.ActionLogService {
	if keep <= 0 {
		keep = actionlog.DefaultRetention
	}
	return &actionLogServiceImpl{
		repo:      repo,
		publisher: publisher,
		metrics:   m,
		keep:      keep,
	}
}

// Record implements actionlog.ActionLogService.
func (s *actionLogServiceImpl) Record(ctx context.Context, entry actionlog.Entry) {
	if err := s.repo.Append(ctx, entry); err != nil {
		slog.Error("failed to append action log", "action", entry.Action, "error", err)
		return
	}
	s.publisher.Publish(sse.Event{
		Topic: sse.TopicAdmin,
		Name:  sse.EventLogsChanged,
		Data:  actionlog.ToResponse(entry),
	})
}

// List implements actionlog.ActionLogService.
func (s *actionLogServiceImpl) List(ctx context.Context, limit int) ([]actionlog.EntryResponse, error) {
	if limit == 0 {
		limit = MaxListLimit
	}
	if limit < 0 || limit > MaxListLimit {
		return nil, actionlog.ErrInvalidLimit
	}

	entries, err := s.repo.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list action logs: %w", err)
	}

	responses := make([]actionlog.EntryResponse, 0, len(entries))
	for _, e := range entries {
		responses = append(responses, actionlog.ToResponse(e))
	}
	return responses, nil
}

// Prune implements actionlog.ActionLogService.
func (s *actionLogServiceImpl) Prune(ctx context.Context) (int64, error) {
	removed, err := s.repo.Prune(ctx, s.keep)
	if err != nil {
		return 0, fmt.Errorf("failed to prune action logs: %w", err)
	}
	if removed > 0 {
		s.metrics.IncPruned(removed)
		slog.Info("action logs pruned", "removed", removed, "kept", s.keep)
	}
	return removed, nil
}
