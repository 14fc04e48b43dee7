package actionlog

import "context"

type ActionLogRepository interface {
	Append(ctx context.Context, entry Entry) error
	// List returns at most limit entries, newest first.
	List(ctx context.Context, limit int) ([]Entry, error)
	// Prune deletes everything except the newest keep entries and returns the number deleted.
	Prune(ctx context.Context, keep int) (int64, error)
}
