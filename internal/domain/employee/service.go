package employee

import "context"

type EmployeeService interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	Get(ctx context.Context, id string) (EmployeeResponse, error)
	List(ctx context.Context) ([]EmployeeResponse, error)
	Update(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id string) error

	// SyncRegistry replaces the whole registry atomically.
	SyncRegistry(ctx context.Context, req SyncRegistryRequest) (SyncRegistryResponse, error)

	// ChangeOwnPassword lets an employee rotate their own password.
	ChangeOwnPassword(ctx context.Context, req ChangePasswordRequest) error
}
