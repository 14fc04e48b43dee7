// Package memory holds in-process implementations of the repositories. They back the service tests
// and local runs without a database.
package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/wasabi-works/shift-payroll-backend/internal/domain/actionlog"
	"github.com/wasabi-works/shift-payroll-backend/internal/domain/attendance"
	"github.com/wasabi-works/shift-payroll-backend/internal/domain/employee"
	"github.com/wasabi-works/shift-payroll-backend/internal/domain/master/branch"
	"github.com/wasabi-works/shift-payroll-backend/internal/domain/settings"
	"github.com/wasabi-works/shift-payroll-backend/internal/domain/shift"
)

// ErrInjected is returned by writes after FailAttendanceWritesAfter has been armed.
var ErrInjected = errors.New("injected write failure")

type state struct {
	branches   []branch.Branch
	employees  []employee.Employee
	shifts     map[shift.Key]shift.ShiftRequest
	attendance map[shift.Key]attendance.Record
	settings   *settings.SystemSettings
	logs       []actionlog.Entry
}

func (s state) clone() state {
	c := state{
		branches:   append([]branch.Branch(nil), s.branches...),
		employees:  append([]employee.Employee(nil), s.employees...),
		shifts:     make(map[shift.Key]shift.ShiftRequest, len(s.shifts)),
		attendance: make(map[shift.Key]attendance.Record, len(s.attendance)),
		logs:       append([]actionlog.Entry(nil), s.logs...),
	}
	for k, v := range s.shifts {
		c.shifts[k] = v
	}
	for k, v := range s.attendance {
		c.attendance[k] = v
	}
	if s.settings != nil {
		cp := *s.settings
		c.settings = &cp
	}
	return c
}

// Store is a mutex-guarded snapshot of every table.
type Store struct {
	mu   sync.Mutex
	txMu sync.Mutex
	st   state

	attendanceWritesLeft int
	failAttendance       bool
}

func NewStore() *Store {
	return &Store{st: state{
		shifts:     make(map[shift.Key]shift.ShiftRequest),
		attendance: make(map[shift.Key]attendance.Record),
	}}
}

// WithinTx implements database.Transactor for tests. Transactions are serialized with each other
// but not with plain repository calls. On error the whole store is restored to its state at the
// start of fn, so writes made concurrently outside the transaction are discarded as well.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	saved := s.st.clone()
	s.mu.Unlock()

	if err := fn(ctx); err != nil {
		s.mu.Lock()
		s.st = saved
		s.mu.Unlock()
		return err
	}
	return nil
}

// FailAttendanceWritesAfter makes attendance writes fail once n more have succeeded.
func (s *Store) FailAttendanceWritesAfter(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failAttendance = true
	s.attendanceWritesLeft = n
}

func (s *Store) Branches() branch.BranchRepository { return branchRepo{s} }
func (s *Store) Employees() employee.EmployeeRepository { return employeeRepo{s} }
func (s *Store) Settings() settings.SettingsRepository { return settingsRepo{s} }
func (s *Store) Shifts() shift.ShiftRepository { return shiftRepo{s} }
func (s *Store) Attendance() attendance.AttendanceRepository { return attendanceRepo{s} }
func (s *Store) ActionLogs() actionlog.ActionLogRepository { return actionLogRepo{s} }

func sortedShifts(m map[shift.Key]shift.ShiftRequest, keep func(shift.ShiftRequest) bool) []shift.ShiftRequest {
	out := []shift.ShiftRequest{}
	for _, v := range m {
		if keep == nil || keep(v) {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].EmployeeID < out[j].EmployeeID
	})
	return out
}

func sortedRecords(m map[shift.Key]attendance.Record, keep func(attendance.Record) bool) []attendance.Record {
	out := []attendance.Record{}
	for _, v := range m {
		if keep == nil || keep(v) {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].EmployeeID < out[j].EmployeeID
	})
	return out
}
