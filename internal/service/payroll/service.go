package payroll

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/wasabi-works/shift-payroll-backend/internal/domain/employee"
	"github.com/wasabi-works/shift-payroll-backend/internal/domain/payroll"
	"github.com/wasabi-works/shift-payroll-backend/internal/pkg/export"
	"github.com/wasabi-works/shift-payroll-backend/internal/pkg/metrics"
	"github.com/wasabi-works/shift-payroll-backend/internal/service/snapshot"
)

const (
	runSummary   = "summary"
	runStatement = "statement"
	runPDF       = "pdf"
	runWorkbook  = "xlsx"
)

type payrollServiceImpl struct {
	loader  *snapshot.Loader
	metrics *metrics.Metrics
}

func NewPayrollService(loader *snapshot.Loader, m *metrics.Metrics) payroll.PayrollService {
	return &payrollServiceImpl{loader: loader, metrics: m}
}

func (s *payrollServiceImpl) compute(ctx context.Context, req payroll.PeriodRequest) (payroll.Summary, snapshot.Snapshot, error) {
	if err := req.Validate(); err != nil {
		return payroll.Summary{}, snapshot.Snapshot{}, err
	}

	snap, err := s.loader.Load(ctx)
	if err != nil {
		return payroll.Summary{}, snapshot.Snapshot{}, err
	}

	summary := payroll.Compute(snap.Employees, snap.Records, req.Year, req.Month, snap.Settings.GlobalHourlyRate)
	return summary, snap, nil
}

func (s *payrollServiceImpl) Summary(ctx context.Context, req payroll.PeriodRequest) (payroll.SummaryResponse, error) {
	summary, _, err := s.compute(ctx, req)
	if err != nil {
		return payroll.SummaryResponse{}, err
	}
	s.metrics.IncPayrollRun(runSummary)
	return payroll.ToSummaryResponse(summary), nil
}

func (s *payrollServiceImpl) statement(ctx context.Context, req payroll.PeriodRequest) (payroll.EmployeeSummaryResponse, error) {
	summary, snap, err := s.compute(ctx, req)
	if err != nil {
		return payroll.EmployeeSummaryResponse{}, err
	}

	es, ok := summary.Find(req.EmployeeID)
	if !ok {
		return payroll.EmployeeSummaryResponse{}, employee.ErrEmployeeNotFound
	}
	return payroll.ToEmployeeResponse(es, snap.BranchName, true), nil
}

func (s *payrollServiceImpl) Statement(ctx context.Context, req payroll.PeriodRequest) (payroll.EmployeeSummaryResponse, error) {
	resp, err := s.statement(ctx, req)
	if err != nil {
		return payroll.EmployeeSummaryResponse{}, err
	}
	s.metrics.IncPayrollRun(runStatement)
	return resp, nil
}

func (s *payrollServiceImpl) StatementPDF(ctx context.Context, req payroll.PeriodRequest) (payroll.ExportFile, error) {
	resp, err := s.statement(ctx, req)
	if err != nil {
		return payroll.ExportFile{}, err
	}

	content, err := export.StatementPDF(resp, req.Year, req.Month)
	if err != nil {
		slog.Error("failed to render statement", "employee_id", req.EmployeeID, "error", err)
		return payroll.ExportFile{}, err
	}
	s.metrics.IncPayrollRun(runPDF)

	return payroll.ExportFile{
		Filename:    fmt.Sprintf("statement-%s-%04d-%02d.pdf", req.EmployeeID, req.Year, req.Month),
		ContentType: export.ContentTypePDF,
		Content:     content,
	}, nil
}

func (s *payrollServiceImpl) Workbook(ctx context.Context, req payroll.PeriodRequest) (payroll.ExportFile, error) {
	summary, snap, err := s.compute(ctx, req)
	if err != nil {
		return payroll.ExportFile{}, err
	}

	statements := make([]payroll.EmployeeSummaryResponse, 0, len(summary.Employees))
	for _, es := range summary.Employees {
		statements = append(statements, payroll.ToEmployeeResponse(es, snap.BranchName, true))
	}

	content, err := export.Workbook(payroll.ToSummaryResponse(summary), statements)
	if err != nil {
		slog.Error("failed to render payroll workbook", "year", req.Year, "month", req.Month, "error", err)
		return payroll.ExportFile{}, err
	}
	s.metrics.IncPayrollRun(runWorkbook)

	return payroll.ExportFile{
		Filename:    fmt.Sprintf("payroll-%04d-%02d.xlsx", req.Year, req.Month),
		ContentType: export.ContentTypeXLSX,
		Content:     content,
	}, nil
}
