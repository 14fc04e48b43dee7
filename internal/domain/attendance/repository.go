package attendance

import "context"

type AttendanceRepository interface {
	List(ctx context.Context) ([]Record, error)
	ListRange(ctx context.Context, from, to string) ([]Record, error)
	GetByKey(ctx context.Context, employeeID, date string) (Record, error)
	// Upsert writes rec keyed by (employee_id, date). It returns ErrRecordLocked when the stored
	// row is already approved.
	Upsert(ctx context.Context, rec Record) error
	// UpsertMany writes records, leaving approved rows untouched, and returns the number written.
	UpsertMany(ctx context.Context, records []Record) (int, error)
}
