package shift

import (
	"context"
	"fmt"

	"github.com/wasabi-works/shift-payroll-backend/internal/domain/actionlog"
	"github.com/wasabi-works/shift-payroll-backend/internal/domain/attendance"
	"github.com/wasabi-works/shift-payroll-backend/internal/domain/employee"
	"github.com/wasabi-works/shift-payroll-backend/internal/domain/master/branch"
	"github.com/wasabi-works/shift-payroll-backend/internal/domain/shift"
	"github.com/wasabi-works/shift-payroll-backend/internal/pkg/database"
	"github.com/wasabi-works/shift-payroll-backend/internal/pkg/ids"
	"github.com/wasabi-works/shift-payroll-backend/internal/pkg/metrics"
	"github.com/wasabi-works/shift-payroll-backend/internal/pkg/period"
	"github.com/wasabi-works/shift-payroll-backend/internal/pkg/sse"
	"github.com/wasabi-works/shift-payroll-backend/internal/service/snapshot"
)

type shiftServiceImpl struct {
	loader    *snapshot.Loader
	shiftRepo shift.ShiftRepository
	tx        database.Transactor
	logs      actionlog.ActionLogService
	emitter   *actionlog.Emitter
	publisher sse.Publisher
	metrics   *metrics.Metrics
}

func NewShiftService(
	loader *snapshot.Loader,
	shiftRepo shift.ShiftRepository,
	tx database.Transactor,
	logs actionlog.ActionLogService,
	emitter *actionlog.Emitter,
	publisher sse.Publisher,
	m *metrics.Metrics,
) shift.ShiftService {
	return &shiftServiceImpl{
		loader:    loader,
		shiftRepo: shiftRepo,
		tx:        tx,
		logs:      logs,
		emitter:   emitter,
		publisher: publisher,
		metrics:   m,
	}
}

// GetPeriod returns the employee's request for each date of p, filled with defaults where absent.
func (s *shiftServiceImpl) GetPeriod(ctx context.Context, employeeID string, p period.HalfMonthPeriod) (shift.PeriodResponse, error) {
	dates, err := p.Dates()
	if err != nil {
		return shift.PeriodResponse{}, err
	}

	snap, err := s.loader.Load(ctx)
	if err != nil {
		return shift.PeriodResponse{}, err
	}

	emp, ok := employee.Find(snap.Employees, employeeID)
	if !ok {
		return shift.PeriodResponse{}, employee.ErrEmployeeNotFound
	}

	requests := shift.Index(snap.Requests)
	approved := attendance.ApprovedDates(snap.Records, employeeID)
	homeBranch := emp.BranchID
	if homeBranch == "" {
		homeBranch = branch.FirstID(snap.Branches)
	}

	days := make([]shift.ShiftDayResponse, 0, len(dates))
	for _, date := range dates {
		day := shift.ShiftDayResponse{
			Date:      date,
			BranchID:  homeBranch,
			StartTime: snap.Settings.DefaultStartTime(),
			EndTime:   snap.Settings.DefaultEndTime(),
			Approved:  approved[date],
			Closed:    snap.Settings.IsSubmissionClosed(date),
		}
		if req, ok := requests[shift.Key{EmployeeID: employeeID, Date: date}]; ok {
			day.IsWorking = req.IsWorking
			day.BranchID = req.BranchID
			day.StartTime = req.StartTime
			day.EndTime = req.EndTime
		}
		days = append(days, day)
	}

	return shift.PeriodResponse{
		Period: p,
		Prev:   p.Prev(),
		Next:   p.Next(),
		Days:   days,
	}, nil
}

// SubmitPeriod replaces the employee's requests for the period. Approved dates and dates on or
// before the lock date keep their stored request.
func (s *shiftServiceImpl) SubmitPeriod(ctx context.Context, req shift.SubmitPeriodRequest) (shift.SubmitPeriodResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.SubmitPeriodResponse{}, err
	}
	dates, err := req.Period.Dates()
	if err != nil {
		return shift.SubmitPeriodResponse{}, err
	}

	var (
		result shift.SubmissionResult
		name   string
	)
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		snap, err := s.loader.LoadSerial(ctx)
		if err != nil {
			return err
		}

		emp, ok := employee.Find(snap.Employees, req.EmployeeID)
		if !ok {
			return employee.ErrEmployeeNotFound
		}
		name = emp.Name

		approved := attendance.ApprovedDates(snap.Records, emp.ID)
		locked := func(date string) bool {
			return approved[date] || snap.Settings.IsSubmissionClosed(date)
		}

		result = shift.MergeSubmission(snap.Requests, emp.ID, dates, req.Entries, locked, shift.Defaults{
			HomeBranchID:  emp.BranchID,
			FirstBranchID: branch.FirstID(snap.Branches),
			StartTime:     snap.Settings.DefaultStartTime(),
			EndTime:       snap.Settings.DefaultEndTime(),
		}, ids.New)

		if err := s.shiftRepo.UpsertMany(ctx, result.Written); err != nil {
			return fmt.Errorf("failed to save shift requests: %w", err)
		}
		return nil
	})
	if err != nil {
		return shift.SubmitPeriodResponse{}, err
	}

	s.metrics.IncShiftSubmission()
	s.logs.Record(ctx, s.emitter.ShiftSubmitted(name, req.Period.String(), len(result.Written), len(result.Skipped)))
	s.publisher.Publish(sse.Event{Topic: sse.TopicAdmin, Name: sse.EventShiftsChanged, Data: map[string]string{"employee_id": req.EmployeeID}})
	s.publisher.Publish(sse.Event{Topic: sse.EmployeeTopic(req.EmployeeID), Name: sse.EventShiftsChanged})

	skipped := result.Skipped
	if skipped == nil {
		skipped = []string{}
	}
	return shift.SubmitPeriodResponse{Saved: len(result.Written), Skipped: skipped}, nil
}
