package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/wasabi-works/shift-payroll-backend/internal/domain/shift"
	"github.com/wasabi-works/shift-payroll-backend/internal/pkg/database"
)

type shiftRepositoryImpl struct {
	db *database.DB
}

func NewShiftRepository(db *database.DB) shift.ShiftRepository {
	return &shiftRepositoryImpl{db: db}
}

const shiftColumns = `id, employee_id, branch_id, date::text, is_working, start_time, end_time`

func collectShifts(rows pgx.Rows) ([]shift.ShiftRequest, error) {
	defer rows.Close()

	requests := []shift.ShiftRequest{}
	for rows.Next() {
		var s shift.ShiftRequest
		if err := rows.Scan(&s.ID, &s.EmployeeID, &s.BranchID, &s.Date, &s.IsWorking, &s.StartTime, &s.EndTime); err != nil {
			return nil, fmt.Errorf("failed to scan shift request: %w", err)
		}
		requests = append(requests, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return requests, nil
}

// List implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) List(ctx context.Context) ([]shift.ShiftRequest, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+shiftColumns+` FROM shift_requests ORDER BY date ASC, employee_id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list shift requests: %w", err)
	}

	return collectShifts(rows)
}

// ListByEmployee implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, from, to string) ([]shift.ShiftRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + shiftColumns + `
		FROM shift_requests
		WHERE employee_id = $1 AND date BETWEEN $2::date AND $3::date
		ORDER BY date ASC
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list shift requests for employee %s: %w", employeeID, err)
	}

	return collectShifts(rows)
}

// UpsertMany implements shift.ShiftRepository. Callers that need all-or-nothing semantics run it
// inside a transaction.
func (r *shiftRepositoryImpl) UpsertMany(ctx context.Context, requests []shift.ShiftRequest) error {
	if len(requests) == 0 {
		return nil
	}
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO shift_requests (id, employee_id, branch_id, date, is_working, start_time, end_time, updated_at)
		VALUES ($1, $2, $3, $4::date, $5, $6, $7, NOW())
		ON CONFLICT (employee_id, date) DO UPDATE SET
			branch_id = EXCLUDED.branch_id,
			is_working = EXCLUDED.is_working,
			start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			updated_at = NOW()
	`

	for _, s := range requests {
		if _, err := q.Exec(ctx, query, s.ID, s.EmployeeID, s.BranchID, s.Date, s.IsWorking, s.StartTime, s.EndTime); err != nil {
			return fmt.Errorf("failed to upsert shift request %s/%s: %w", s.EmployeeID, s.Date, err)
		}
	}

	return nil
}
