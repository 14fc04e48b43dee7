package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/wasabi-works/shift-payroll-backend/internal/domain/actionlog"
	"github.com/wasabi-works/shift-payroll-backend/internal/domain/attendance"
	"github.com/wasabi-works/shift-payroll-backend/internal/domain/employee"
	"github.com/wasabi-works/shift-payroll-backend/internal/pkg/database"
	"github.com/wasabi-works/shift-payroll-backend/internal/pkg/metrics"
	"github.com/wasabi-works/shift-payroll-backend/internal/pkg/period"
	"github.com/wasabi-works/shift-payroll-backend/internal/pkg/sse"
	"github.com/wasabi-works/shift-payroll-backend/internal/service/snapshot"
)

type AttendanceServiceImpl struct {
	loader *snapshot.Loader
	attendance.AttendanceRepository
	tx        database.Transactor
	logs      actionlog.ActionLogService
	emitter   *actionlog.Emitter
	publisher sse.Publisher
	metrics   *metrics.Metrics
}

func NewAttendanceService(
	loader *snapshot.Loader,
	attendanceRepo attendance.AttendanceRepository,
	tx database.Transactor,
	logs actionlog.ActionLogService,
	emitter *actionlog.Emitter,
	publisher sse.Publisher,
	m *metrics.Metrics,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		loader:               loader,
		AttendanceRepository: attendanceRepo,
		tx:                   tx,
		logs:                 logs,
		emitter:              emitter,
		publisher:            publisher,
		metrics:              m,
	}
}

// Board implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Board(ctx context.Context, reference string, mode period.Mode) (attendance.BoardResponse, error) {
	dates, err := period.Enumerate(reference, mode)
	if err != nil {
		return attendance.BoardResponse{}, err
	}

	snap, err := s.loader.Load(ctx)
	if err != nil {
		return attendance.BoardResponse{}, err
	}

	days := attendance.Board(dates, snap.Employees, snap.Branches, snap.Resolver())
	return attendance.ToBoardResponse(reference, mode, days), nil
}

// Get implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Get(ctx context.Context, employeeID, date string) (attendance.RecordResponse, error) {
	if _, err := period.ParseDate(date); err != nil {
		return attendance.RecordResponse{}, err
	}

	snap, err := s.loader.Load(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	if _, ok := employee.Find(snap.Employees, employeeID); !ok {
		return attendance.RecordResponse{}, employee.ErrEmployeeNotFound
	}

	return attendance.ToResponse(snap.Resolver().Resolve(employeeID, date)), nil
}

// Edit implements attendance.AttendanceService. A rejected edit returns the unchanged record
// together with attendance.ErrRecordLocked.
func (s *AttendanceServiceImpl) Edit(ctx context.Context, req attendance.EditRecordRequest) (attendance.EditRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.EditRecordResponse{}, err
	}

	snap, err := s.loader.Load(ctx)
	if err != nil {
		return attendance.EditRecordResponse{}, err
	}
	emp, ok := employee.Find(snap.Employees, req.EmployeeID)
	if !ok {
		return attendance.EditRecordResponse{}, employee.ErrEmployeeNotFound
	}

	current := snap.Resolver().Resolve(req.EmployeeID, req.Date)
	result, err := attendance.ApplyEdit(current, req.Patch)
	if errors.Is(err, attendance.ErrRecordLocked) {
		return s.rejectLocked(result.Record)
	}
	if len(result.Changed) == 0 {
		return attendance.EditRecordResponse{Record: attendance.ToResponse(result.Record), Changed: []string{}}, nil
	}

	if err := s.AttendanceRepository.Upsert(ctx, result.Record); err != nil {
		if errors.Is(err, attendance.ErrRecordLocked) {
			// Approved between the read and the write.
			stored, getErr := s.AttendanceRepository.GetByKey(ctx, req.EmployeeID, req.Date)
			if getErr != nil {
				return attendance.EditRecordResponse{}, fmt.Errorf("failed to reload locked record: %w", getErr)
			}
			return s.rejectLocked(stored)
		}
		return attendance.EditRecordResponse{}, fmt.Errorf("failed to save attendance record: %w", err)
	}

	s.metrics.IncEdit(metrics.EditApplied)
	s.logs.Record(ctx, s.emitter.AttendanceEdited(emp.Name, req.Date, result.Changed))
	s.notify(req.EmployeeID)

	return attendance.EditRecordResponse{
		Record:  attendance.ToResponse(result.Record),
		Changed: result.Changed,
	}, nil
}

func (s *AttendanceServiceImpl) rejectLocked(rec attendance.Record) (attendance.EditRecordResponse, error) {
	s.metrics.IncEdit(metrics.EditRejectedLocked)
	slog.Warn("edit rejected on approved attendance record", "employee_id", rec.EmployeeID, "date", rec.Date)
	return attendance.EditRecordResponse{Record: attendance.ToResponse(rec), Changed: []string{}}, attendance.ErrRecordLocked
}

// Commit implements attendance.AttendanceService. The snapshot is read and the approvals are
// written in one transaction; readers see none or all of the range. An empty range succeeds
// without writing, logging or publishing.
func (s *AttendanceServiceImpl) Commit(ctx context.Context, req attendance.CommitRequest) (attendance.CommitResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.CommitResponse{}, err
	}
	dates, err := req.ResolveDates()
	if err != nil {
		return attendance.CommitResponse{}, err
	}
	if len(dates) == 0 {
		slog.Info("attendance commit with an empty date range")
		return attendance.CommitResponse{Dates: []string{}, Approved: 0}, nil
	}

	var approved int
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		snap, err := s.loader.LoadSerial(ctx)
		if err != nil {
			return err
		}

		result := attendance.CommitApprovals(dates, snap.Employees, snap.Requests, snap.Records, snap.Branches, snap.Settings)
		approved, err = s.AttendanceRepository.UpsertMany(ctx, result.Committed)
		if err != nil {
			return fmt.Errorf("failed to commit attendance: %w", err)
		}
		return nil
	})
	if err != nil {
		return attendance.CommitResponse{}, err
	}

	s.metrics.IncCommit(approved)
	s.logs.Record(ctx, s.emitter.DailyVerify(dates, approved))
	s.publisher.Publish(sse.Event{
		Topic: sse.TopicAll,
		Name:  sse.EventAttendanceChanged,
		Data:  map[string]interface{}{"dates": dates, "approved": approved},
	})
	slog.Info("attendance committed", "from", dates[0], "to", dates[len(dates)-1], "approved", approved)

	return attendance.CommitResponse{Dates: dates, Approved: approved}, nil
}

func (s *AttendanceServiceImpl) notify(employeeID string) {
	s.publisher.Publish(sse.Event{Topic: sse.TopicAdmin, Name: sse.EventAttendanceChanged, Data: map[string]string{"employee_id": employeeID}})
	s.publisher.Publish(sse.Event{Topic: sse.EmployeeTopic(employeeID), Name: sse.EventAttendanceChanged})
}
