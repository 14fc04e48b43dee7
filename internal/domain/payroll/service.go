package payroll

import "context"

type PayrollService interface {
	Summary(ctx context.Context, req PeriodRequest) (SummaryResponse, error)
	// Statement returns one employee's month with its per-day lines.
	Statement(ctx context.Context, req PeriodRequest) (EmployeeSummaryResponse, error)
	StatementPDF(ctx context.Context, req PeriodRequest) (ExportFile, error)
	Workbook(ctx context.Context, req PeriodRequest) (ExportFile, error)
}
