package attendance

import (
	"context"

	"github.com/wasabi-works/shift-payroll-backend/internal/pkg/period"
)

type AttendanceService interface {
	// Board resolves every employee on each date of the window around reference.
	Board(ctx context.Context, reference string, mode period.Mode) (BoardResponse, error)
	Get(ctx context.Context, employeeID, date string) (RecordResponse, error)
	Edit(ctx context.Context, req EditRecordRequest) (EditRecordResponse, error)
	// Commit approves every employee on the requested dates as one atomic write.
	Commit(ctx context.Context, req CommitRequest) (CommitResponse, error)
}
