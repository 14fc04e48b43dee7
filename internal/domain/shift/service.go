package shift

import (
	"context"

	"github.com/wasabi-works/shift-payroll-backend/internal/pkg/period"
)

type ShiftService interface {
	GetPeriod(ctx context.Context, employeeID string, p period.HalfMonthPeriod) (PeriodResponse, error)
	SubmitPeriod(ctx context.Context, req SubmitPeriodRequest) (SubmitPeriodResponse, error)
}
