package shift

import "context"

type ShiftRepository interface {
	List(ctx context.Context) ([]ShiftRequest, error)
	ListByEmployee(ctx context.Context, employeeID string, from, to string) ([]ShiftRequest, error)
	// UpsertMany writes requests keyed by (employee_id, date).
	UpsertMany(ctx context.Context, requests []ShiftRequest) error
}
