// Package snapshot loads the complete in-memory view the scheduling and payroll core work on.
package snapshot

import (
	"context"
	"fmt"

	"github.com/wasabi-works/shift-payroll-backend/internal/domain/attendance"
	"github.com/wasabi-works/shift-payroll-backend/internal/domain/employee"
	"github.com/wasabi-works/shift-payroll-backend/internal/domain/master/branch"
	"github.com/wasabi-works/shift-payroll-backend/internal/domain/settings"
	"github.com/wasabi-works/shift-payroll-backend/internal/domain/shift"
	"golang.org/x/sync/errgroup"
)

// Snapshot is a fully loaded, read-only copy of every collection.
type Snapshot struct {
	Branches  []branch.Branch
	Employees []employee.Employee
	Requests  []shift.ShiftRequest
	Records   []attendance.Record
	Settings  settings.SystemSettings
}

// SettingsSource yields the effective settings, defaults included.
type SettingsSource interface {
	Current(ctx context.Context) (settings.SystemSettings, error)
}

type Loader struct {
	branchRepo     branch.BranchRepository
	employeeRepo   employee.EmployeeRepository
	shiftRepo      shift.ShiftRepository
	attendanceRepo attendance.AttendanceRepository
	settings       SettingsSource
}

func NewLoader(
	branchRepo branch.BranchRepository,
	employeeRepo employee.EmployeeRepository,
	shiftRepo shift.ShiftRepository,
	attendanceRepo attendance.AttendanceRepository,
	settings SettingsSource,
) *Loader {
	return &Loader{
		branchRepo:     branchRepo,
		employeeRepo:   employeeRepo,
		shiftRepo:      shiftRepo,
		attendanceRepo: attendanceRepo,
		settings:       settings,
	}
}

// Load reads every collection concurrently. Do not call it with a transaction in ctx; a pgx.Tx
// cannot serve concurrent queries. Use LoadSerial there.
func (l *Loader) Load(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		snap.Branches, err = l.branchRepo.List(gctx)
		if err != nil {
			return fmt.Errorf("failed to list branches: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		snap.Employees, err = l.employeeRepo.List(gctx)
		if err != nil {
			return fmt.Errorf("failed to list employees: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		snap.Requests, err = l.shiftRepo.List(gctx)
		if err != nil {
			return fmt.Errorf("failed to list shift requests: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		snap.Records, err = l.attendanceRepo.List(gctx)
		if err != nil {
			return fmt.Errorf("failed to list attendance records: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		snap.Settings, err = l.settings.Current(gctx)
		if err != nil {
			return fmt.Errorf("failed to load settings: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// LoadSerial reads the same collections one after another, so it is safe inside WithinTx.
func (l *Loader) LoadSerial(ctx context.Context) (Snapshot, error) {
	var (
		snap Snapshot
		err  error
	)
	if snap.Branches, err = l.branchRepo.List(ctx); err != nil {
		return Snapshot{}, fmt.Errorf("failed to list branches: %w", err)
	}
	if snap.Employees, err = l.employeeRepo.List(ctx); err != nil {
		return Snapshot{}, fmt.Errorf("failed to list employees: %w", err)
	}
	if snap.Requests, err = l.shiftRepo.List(ctx); err != nil {
		return Snapshot{}, fmt.Errorf("failed to list shift requests: %w", err)
	}
	if snap.Records, err = l.attendanceRepo.List(ctx); err != nil {
		return Snapshot{}, fmt.Errorf("failed to list attendance records: %w", err)
	}
	if snap.Settings, err = l.settings.Current(ctx); err != nil {
		return Snapshot{}, fmt.Errorf("failed to load settings: %w", err)
	}
	return snap, nil
}

// Resolver builds the attendance resolver over this snapshot.
func (s Snapshot) Resolver() *attendance.Resolver {
	return attendance.NewResolver(s.Requests, s.Records, s.Branches, s.Settings)
}

func (s Snapshot) EmployeeName(id string) string {
	return employee.NameOf(s.Employees, id)
}

func (s Snapshot) BranchName(id string) string {
	return branch.NameOf(s.Branches, id)
}
