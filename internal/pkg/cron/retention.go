package cron

import (
	"context"
	"time"

	"github.com/wasabi-works/shift-payroll-backend/internal/domain/actionlog"
)

// RetentionJobs trims the action log to its configured size.
type RetentionJobs struct {
	logs     actionlog.ActionLogService
	interval time.Duration
}

func NewRetentionJobs(logs actionlog.ActionLogService, interval time.Duration) *RetentionJobs {
	if interval <= 0 {
		interval = time.Hour
	}
	return &RetentionJobs{logs: logs, interval: interval}
}

func (j *RetentionJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob(Job{
		Name:      "prune_action_logs",
		Interval:  j.interval,
		Immediate: true,
		Fn:        j.PruneActionLogs,
	})
}

func (j *RetentionJobs) PruneActionLogs(ctx context.Context) error {
	_, err := j.logs.Prune(ctx)
	return err
}
