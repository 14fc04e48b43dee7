package actionlog

import "context"

type ActionLogService interface {
	// Record persists entry. Failures are logged and never fail the calling operation.
	Record(ctx context.Context, entry Entry)
	List(ctx context.Context, limit int) ([]EntryResponse, error)
	Prune(ctx context.Context) (int64, error)
}
