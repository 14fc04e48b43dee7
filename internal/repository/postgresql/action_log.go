package postgresql

import (
	"context"
	"fmt"

	"github.com/wasabi-works/shift-payroll-backend/internal/domain/actionlog"
	"github.com/wasabi-works/shift-payroll-backend/internal/pkg/database"
)

type actionLogRepositoryImpl struct {
	db *database.DB
}

func NewActionLogRepository(db *database.DB) actionlog.ActionLogRepository {
	return &actionLogRepositoryImpl{db: db}
}

// Append implements actionlog.ActionLogRepository.
func (r *actionLogRepositoryImpl) Append(ctx context.Context, entry actionlog.Entry) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx,
		`INSERT INTO action_logs (id, timestamp, action, details) VALUES ($1, $2, $3, $4)`,
		entry.ID, entry.Timestamp, string(entry.Action), entry.Details,
	)
	if err != nil {
		return fmt.Errorf("failed to append action log: %w", err)
	}

	return nil
}

// List implements actionlog.ActionLogRepository.
func (r *actionLogRepositoryImpl) List(ctx context.Context, limit int) ([]actionlog.Entry, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, timestamp, action, details
		FROM action_logs
		ORDER BY timestamp DESC, id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list action logs: %w", err)
	}
	defer rows.Close()

	entries := []actionlog.Entry{}
	for rows.Next() {
		var e actionlog.Entry
		var action string
		if err := rows.Scan(&e.ID, &e.Timestamp, &action, &e.Details); err != nil {
			return nil, fmt.Errorf("failed to scan action log: %w", err)
		}
		e.Action = actionlog.Action(action)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return entries, nil
}

// Prune implements actionlog.ActionLogRepository.
func (r *actionLogRepositoryImpl) Prune(ctx context.Context, keep int) (int64, error) {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `
		DELETE FROM action_logs
		WHERE id NOT IN (
			SELECT id FROM action_logs ORDER BY timestamp DESC, id DESC LIMIT $1
		)
	`, keep)
	if err != nil {
		return 0, fmt.Errorf("failed to prune action logs: %w", err)
	}

	return commandTag.RowsAffected(), nil
}
