package master

import (
	"context"
	"errors"
	"fmt"

	"github.com/wasabi-works/shift-payroll-backend/internal/domain/actionlog"
	"github.com/wasabi-works/shift-payroll-backend/internal/domain/master/branch"
	"github.com/wasabi-works/shift-payroll-backend/internal/pkg/ids"
	"github.com/wasabi-works/shift-payroll-backend/internal/pkg/sse"
)

type branchServiceImpl struct {
	branchRepo branch.BranchRepository
	logs       actionlog.ActionLogService
	emitter    *actionlog.Emitter
	publisher  sse.Publisher
}

func NewBranchService(
	branchRepo branch.BranchRepository,
	logs actionlog.ActionLogService,
	emitter *actionlog.Emitter,
	publisher sse.Publisher,
) branch.BranchService {
	return &branchServiceImpl{
		branchRepo: branchRepo,
		logs:       logs,
		emitter:    emitter,
		publisher:  publisher,
	}
}

// ==================== BRANCH OPERATIONS ====================

func (s *branchServiceImpl) Create(ctx context.Context, req branch.CreateBranchRequest) (branch.BranchResponse, error) {
	if err := req.Validate(); err != nil {
		return branch.BranchResponse{}, err
	}

	created, err := s.branchRepo.Create(ctx, branch.Branch{ID: ids.New(), Name: req.Name})
	if err != nil {
		if errors.Is(err, branch.ErrBranchNameExists) {
			return branch.BranchResponse{}, err
		}
		return branch.BranchResponse{}, fmt.Errorf("failed to create branch: %w", err)
	}

	s.logs.Record(ctx, s.emitter.SiteAdded(created.Name))
	s.notify()

	return branch.ToResponse(created), nil
}

func (s *branchServiceImpl) List(ctx context.Context) ([]branch.BranchResponse, error) {
	branches, err := s.branchRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}

	responses := make([]branch.BranchResponse, 0, len(branches))
	for _, b := range branches {
		responses = append(responses, branch.ToResponse(b))
	}
	return responses, nil
}

func (s *branchServiceImpl) Rename(ctx context.Context, req branch.UpdateBranchRequest) (branch.BranchResponse, error) {
	if err := req.Validate(); err != nil {
		return branch.BranchResponse{}, err
	}

	existing, err := s.branchRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, branch.ErrBranchNotFound) {
			return branch.BranchResponse{}, err
		}
		return branch.BranchResponse{}, fmt.Errorf("failed to get branch: %w", err)
	}
	if existing.Name == req.Name {
		return branch.ToResponse(existing), nil
	}

	if err := s.branchRepo.Rename(ctx, req.ID, req.Name); err != nil {
		if errors.Is(err, branch.ErrBranchNotFound) || errors.Is(err, branch.ErrBranchNameExists) {
			return branch.BranchResponse{}, err
		}
		return branch.BranchResponse{}, fmt.Errorf("failed to rename branch: %w", err)
	}

	s.logs.Record(ctx, s.emitter.SiteRenamed(existing.Name, req.Name))
	s.notify()

	existing.Name = req.Name
	return branch.ToResponse(existing), nil
}

// Delete removes the branch. Employees and records still pointing at it render as unassigned.
func (s *branchServiceImpl) Delete(ctx context.Context, id string) error {
	existing, err := s.branchRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, branch.ErrBranchNotFound) {
			return err
		}
		return fmt.Errorf("failed to get branch: %w", err)
	}

	if err := s.branchRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, branch.ErrBranchNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete branch: %w", err)
	}

	s.logs.Record(ctx, s.emitter.SiteRemoved(existing.Name))
	s.notify()
	return nil
}

func (s *branchServiceImpl) notify() {
	s.publisher.Publish(sse.Event{Topic: sse.TopicAll, Name: sse.EventMasterChanged})
}
