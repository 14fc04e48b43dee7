package branch

import "context"

// BranchService manages work sites. Every mutation appends one action log entry.
type BranchService interface {
	Create(ctx context.Context, req CreateBranchRequest) (BranchResponse, error)
	List(ctx context.Context) ([]BranchResponse, error)
	Rename(ctx context.Context, req UpdateBranchRequest) (BranchResponse, error)
	Delete(ctx context.Context, id string) error
}
