package memory

import (
	"context"
	"sort"
	"time"

	"github.com/wasabi-works/shift-payroll-backend/internal/domain/actionlog"
	"github.com/wasabi-works/shift-payroll-backend/internal/domain/attendance"
	"github.com/wasabi-works/shift-payroll-backend/internal/domain/employee"
	"github.com/wasabi-works/shift-payroll-backend/internal/domain/master/branch"
	"github.com/wasabi-works/shift-payroll-backend/internal/domain/settings"
	"github.com/wasabi-works/shift-payroll-backend/internal/domain/shift"
)

type branchRepo struct{ s *Store }

func (r branchRepo) Create(_ context.Context, b branch.Branch) (branch.Branch, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.st.branches {
		if existing.Name == b.Name {
			return branch.Branch{}, branch.ErrBranchNameExists
		}
	}
	now := time.Now().UTC()
	b.CreatedAt, b.UpdatedAt = now, now
	r.s.st.branches = append(r.s.st.branches, b)
	return b, nil
}

func (r branchRepo) GetByID(_ context.Context, id string) (branch.Branch, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, b := range r.s.st.branches {
		if b.ID == id {
			return b, nil
		}
	}
	return branch.Branch{}, branch.ErrBranchNotFound
}

func (r branchRepo) List(_ context.Context) ([]branch.Branch, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return append([]branch.Branch{}, r.s.st.branches...), nil
}

func (r branchRepo) Rename(_ context.Context, id string, name string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, b := range r.s.st.branches {
		if b.Name == name && b.ID != id {
			return branch.ErrBranchNameExists
		}
	}
	for i, b := range r.s.st.branches {
		if b.ID == id {
			r.s.st.branches[i].Name = name
			r.s.st.branches[i].UpdatedAt = time.Now().UTC()
			return nil
		}
	}
	return branch.ErrBranchNotFound
}

func (r branchRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, b := range r.s.st.branches {
		if b.ID == id {
			r.s.st.branches = append(r.s.st.branches[:i:i], r.s.st.branches[i+1:]...)
			return nil
		}
	}
	return branch.ErrBranchNotFound
}

type employeeRepo struct{ s *Store }

func (r employeeRepo) Create(_ context.Context, e employee.Employee) (employee.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := time.Now().UTC()
	e.CreatedAt, e.UpdatedAt = now, now
	r.s.st.employees = append(r.s.st.employees, e)
	return e, nil
}

func (r employeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if e, ok := employee.Find(r.s.st.employees, id); ok {
		return e, nil
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r employeeRepo) List(_ context.Context) ([]employee.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return append([]employee.Employee{}, r.s.st.employees...), nil
}

func (r employeeRepo) Update(_ context.Context, e employee.Employee) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, existing := range r.s.st.employees {
		if existing.ID == e.ID {
			e.CreatedAt = existing.CreatedAt
			e.UpdatedAt = time.Now().UTC()
			r.s.st.employees[i] = e
			return nil
		}
	}
	return employee.ErrEmployeeNotFound
}

func (r employeeRepo) UpdatePasswordHash(_ context.Context, id string, hash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, existing := range r.s.st.employees {
		if existing.ID == id {
			r.s.st.employees[i].PasswordHash = hash
			return nil
		}
	}
	return employee.ErrEmployeeNotFound
}

func (r employeeRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, e := range r.s.st.employees {
		if e.ID == id {
			r.s.st.employees = append(r.s.st.employees[:i:i], r.s.st.employees[i+1:]...)
			return nil
		}
	}
	return employee.ErrEmployeeNotFound
}

type settingsRepo struct{ s *Store }

func (r settingsRepo) Get(_ context.Context) (settings.SystemSettings, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.st.settings == nil {
		return settings.SystemSettings{}, settings.ErrSettingsNotFound
	}
	return *r.s.st.settings, nil
}

func (r settingsRepo) Upsert(_ context.Context, in settings.SystemSettings) (settings.SystemSettings, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	in.UpdatedAt = time.Now().UTC()
	r.s.st.settings = &in
	return in, nil
}

type shiftRepo struct{ s *Store }

func (r shiftRepo) List(_ context.Context) ([]shift.ShiftRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return sortedShifts(r.s.st.shifts, nil), nil
}

func (r shiftRepo) ListByEmployee(_ context.Context, employeeID string, from, to string) ([]shift.ShiftRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return sortedShifts(r.s.st.shifts, func(s shift.ShiftRequest) bool {
		return s.EmployeeID == employeeID && s.Date >= from && s.Date <= to
	}), nil
}

func (r shiftRepo) UpsertMany(_ context.Context, requests []shift.ShiftRequest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, req := range requests {
		if prev, ok := r.s.st.shifts[req.Key()]; ok {
			req.ID = prev.ID
		}
		r.s.st.shifts[req.Key()] = req
	}
	return nil
}

type attendanceRepo struct{ s *Store }

func (r attendanceRepo) List(_ context.Context) ([]attendance.Record, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return sortedRecords(r.s.st.attendance, nil), nil
}

func (r attendanceRepo) ListRange(_ context.Context, from, to string) ([]attendance.Record, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return sortedRecords(r.s.st.attendance, func(a attendance.Record) bool {
		return a.Date >= from && a.Date <= to
	}), nil
}

func (r attendanceRepo) GetByKey(_ context.Context, employeeID, date string) (attendance.Record, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if rec, ok := r.s.st.attendance[shift.Key{EmployeeID: employeeID, Date: date}]; ok {
		return rec, nil
	}
	return attendance.Record{}, attendance.ErrRecordNotFound
}

// write applies the same approved-row guard as the SQL upsert. Caller holds mu.
func (r attendanceRepo) write(rec attendance.Record) (bool, error) {
	if r.s.failAttendance {
		if r.s.attendanceWritesLeft == 0 {
			return false, ErrInjected
		}
		r.s.attendanceWritesLeft--
	}
	prev, ok := r.s.st.attendance[rec.Key()]
	if ok && prev.IsApproved {
		return false, nil
	}
	if ok {
		rec.ID = prev.ID
	}
	r.s.st.attendance[rec.Key()] = rec
	return true, nil
}

func (r attendanceRepo) Upsert(_ context.Context, rec attendance.Record) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	written, err := r.write(rec)
	if err != nil {
		return err
	}
	if !written {
		return attendance.ErrRecordLocked
	}
	return nil
}

func (r attendanceRepo) UpsertMany(_ context.Context, records []attendance.Record) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, rec := range records {
		written, err := r.write(rec)
		if err != nil {
			return n, err
		}
		if written {
			n++
		}
	}
	return n, nil
}

type actionLogRepo struct{ s *Store }

func (r actionLogRepo) Append(_ context.Context, entry actionlog.Entry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.st.logs = append(r.s.st.logs, entry)
	return nil
}

func (r actionLogRepo) newestFirst() []actionlog.Entry {
	out := make([]actionlog.Entry, 0, len(r.s.st.logs))
	for i := len(r.s.st.logs) - 1; i >= 0; i-- {
		out = append(out, r.s.st.logs[i])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out
}

func (r actionLogRepo) List(_ context.Context, limit int) ([]actionlog.Entry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := r.newestFirst()
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r actionLogRepo) Prune(_ context.Context, keep int) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := r.newestFirst()
	if len(out) <= keep {
		return 0, nil
	}
	removed := int64(len(out) - keep)
	kept := make([]actionlog.Entry, 0, keep)
	for i := keep - 1; i >= 0; i-- {
		kept = append(kept, out[i])
	}
	r.s.st.logs = kept
	return removed, nil
}
