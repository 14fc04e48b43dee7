package employee

import (
	"context"
	"errors"
	"fmt"

	"github.com/wasabi-works/shift-payroll-backend/internal/domain/actionlog"
	"github.com/wasabi-works/shift-payroll-backend/internal/domain/employee"
	"github.com/wasabi-works/shift-payroll-backend/internal/domain/master/branch"
	"github.com/wasabi-works/shift-payroll-backend/internal/pkg/database"
	"github.com/wasabi-works/shift-payroll-backend/internal/pkg/ids"
	"github.com/wasabi-works/shift-payroll-backend/internal/pkg/sse"
	"golang.org/x/crypto/bcrypt"
)

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	branchRepo   branch.BranchRepository
	tx           database.Transactor
	logs         actionlog.ActionLogService
	emitter      *actionlog.Emitter
	publisher    sse.Publisher
}

func NewEmployeeService(
	employeeRepo employee.EmployeeRepository,
	branchRepo branch.BranchRepository,
	tx database.Transactor,
	logs actionlog.ActionLogService,
	emitter *actionlog.Emitter,
	publisher sse.Publisher,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		employeeRepo: employeeRepo,
		branchRepo:   branchRepo,
		tx:           tx,
		logs:         logs,
		emitter:      emitter,
		publisher:    publisher,
	}
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (s *EmployeeServiceImpl) branches(ctx context.Context) ([]branch.Branch, error) {
	branches, err := s.branchRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}
	return branches, nil
}

func toResponse(e employee.Employee, branches []branch.Branch) employee.EmployeeResponse {
	return employee.EmployeeResponse{
		ID:         e.ID,
		Name:       e.Name,
		BranchID:   e.BranchID,
		BranchName: branch.NameOf(branches, e.BranchID),
		HourlyRate: e.HourlyRate,
	}
}

// Create registers an employee. An omitted branch falls back to the first branch.
func (s *EmployeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	branches, err := s.branches(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	newEmployee := employee.Employee{
		ID:           ids.New(),
		Name:         req.Name,
		BranchID:     branch.FirstID(branches),
		PasswordHash: hash,
	}
	if req.BranchID != nil && *req.BranchID != "" {
		newEmployee.BranchID = *req.BranchID
	}
	if req.HourlyRate != nil {
		newEmployee.HourlyRate = *req.HourlyRate
	}

	created, err := s.employeeRepo.Create(ctx, newEmployee)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to create employee: %w", err)
	}

	s.logs.Record(ctx, s.emitter.StaffAdded(created.Name))
	s.notify()

	return toResponse(created, branches), nil
}

func (s *EmployeeServiceImpl) Get(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	e, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.EmployeeResponse{}, err
		}
		return employee.EmployeeResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	branches, err := s.branches(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return toResponse(e, branches), nil
}

func (s *EmployeeServiceImpl) List(ctx context.Context) ([]employee.EmployeeResponse, error) {
	employees, err := s.employeeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	branches, err := s.branches(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		responses = append(responses, toResponse(e, branches))
	}
	return responses, nil
}

func (s *EmployeeServiceImpl) Update(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	existing, err := s.employeeRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.EmployeeResponse{}, err
		}
		return employee.EmployeeResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	updated := existing
	var fields []string
	if req.Name != nil && *req.Name != existing.Name {
		updated.Name = *req.Name
		fields = append(fields, "name")
	}
	if req.BranchID != nil && *req.BranchID != existing.BranchID {
		updated.BranchID = *req.BranchID
		fields = append(fields, "branch_id")
	}
	if req.HourlyRate != nil && !req.HourlyRate.Equal(existing.HourlyRate) {
		updated.HourlyRate = *req.HourlyRate
		fields = append(fields, "hourly_rate")
	}
	if req.Password != nil {
		hash, err := hashPassword(*req.Password)
		if err != nil {
			return employee.EmployeeResponse{}, fmt.Errorf("failed to hash password: %w", err)
		}
		updated.PasswordHash = hash
		fields = append(fields, "password")
	}

	branches, err := s.branches(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	if len(fields) == 0 {
		return toResponse(existing, branches), nil
	}

	if err := s.employeeRepo.Update(ctx, updated); err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to update employee: %w", err)
	}

	s.logs.Record(ctx, s.emitter.StaffUpdated(updated.Name, fields))
	s.notify()

	return toResponse(updated, branches), nil
}

// Delete removes the employee. Their shift requests and attendance stay and render as unassigned.
func (s *EmployeeServiceImpl) Delete(ctx context.Context, id string) error {
	existing, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return err
		}
		return fmt.Errorf("failed to get employee: %w", err)
	}

	if err := s.employeeRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}

	s.logs.Record(ctx, s.emitter.StaffRemoved(existing.Name))
	s.notify()
	return nil
}

// SyncRegistry upserts every listed employee and deletes the rest in one transaction. Listed ids
// must already exist; entries without an id are registered.
func (s *EmployeeServiceImpl) SyncRegistry(ctx context.Context, req employee.SyncRegistryRequest) (employee.SyncRegistryResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.SyncRegistryResponse{}, err
	}

	// bcrypt is slow; hash outside the transaction.
	hashes := make([]string, len(req.Employees))
	for i, entry := range req.Employees {
		if entry.Password == nil {
			continue
		}
		hash, err := hashPassword(*entry.Password)
		if err != nil {
			return employee.SyncRegistryResponse{}, fmt.Errorf("failed to hash password: %w", err)
		}
		hashes[i] = hash
	}

	var resp employee.SyncRegistryResponse
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		existing, err := s.employeeRepo.List(ctx)
		if err != nil {
			return fmt.Errorf("failed to list employees: %w", err)
		}

		listed := make(map[string]bool, len(req.Employees))
		for i, entry := range req.Employees {
			if entry.ID == "" {
				created, err := s.employeeRepo.Create(ctx, employee.Employee{
					ID:           ids.New(),
					Name:         entry.Name,
					BranchID:     entry.BranchID,
					HourlyRate:   entry.HourlyRate,
					PasswordHash: hashes[i],
				})
				if err != nil {
					return fmt.Errorf("failed to create employee: %w", err)
				}
				listed[created.ID] = true
				resp.Added++
				continue
			}

			current, ok := employee.Find(existing, entry.ID)
			if !ok {
				return fmt.Errorf("employee %s: %w", entry.ID, employee.ErrEmployeeNotFound)
			}
			current.Name = entry.Name
			current.BranchID = entry.BranchID
			current.HourlyRate = entry.HourlyRate
			if hashes[i] != "" {
				current.PasswordHash = hashes[i]
			}
			if err := s.employeeRepo.Update(ctx, current); err != nil {
				return fmt.Errorf("failed to update employee: %w", err)
			}
			listed[entry.ID] = true
			resp.Updated++
		}

		for _, e := range existing {
			if listed[e.ID] {
				continue
			}
			if err := s.employeeRepo.Delete(ctx, e.ID); err != nil {
				return fmt.Errorf("failed to delete employee: %w", err)
			}
			resp.Removed++
		}
		return nil
	})
	if err != nil {
		return employee.SyncRegistryResponse{}, err
	}

	list, err := s.List(ctx)
	if err != nil {
		return employee.SyncRegistryResponse{}, err
	}
	resp.Employees = list

	s.logs.Record(ctx, s.emitter.MasterSync(resp.Added, resp.Updated, resp.Removed))
	s.notify()

	return resp, nil
}

func (s *EmployeeServiceImpl) ChangeOwnPassword(ctx context.Context, req employee.ChangePasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	e, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return err
		}
		return fmt.Errorf("failed to get employee: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(e.PasswordHash), []byte(req.CurrentPassword)) != nil {
		return employee.ErrInvalidCurrentPassword
	}

	hash, err := hashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.employeeRepo.UpdatePasswordHash(ctx, e.ID, hash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	s.logs.Record(ctx, s.emitter.PasswordChanged(e.Name))
	return nil
}

func (s *EmployeeServiceImpl) notify() {
	s.publisher.Publish(sse.Event{Topic: sse.TopicAll, Name: sse.EventMasterChanged})
}
