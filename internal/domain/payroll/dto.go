package payroll

import (
	"github.com/shopspring/decimal"
	"github.com/wasabi-works/shift-payroll-backend/internal/pkg/validator"
)

// PeriodRequest selects one calendar month.
type PeriodRequest struct {
	EmployeeID string `json:"employee_id,omitempty"`
	Year       int    `json:"year"`
	Month      int    `json:"month"`
}

func (r *PeriodRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Year < 2000 || r.Year > 2100 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: ErrInvalidYear.Error(),
		})
	}
	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: ErrInvalidMonth.Error(),
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type LineItemResponse struct {
	Date      string          `json:"date"`
	BranchID  string          `json:"branch_id"`
	Branch    string          `json:"branch"`
	StartTime string          `json:"start_time"`
	EndTime   string          `json:"end_time"`
	Hours     decimal.Decimal `json:"hours"`
	Pay       decimal.Decimal `json:"pay"`
	Bonus     decimal.Decimal `json:"bonus"`
	Total     decimal.Decimal `json:"total"`
}

type EmployeeSummaryResponse struct {
	EmployeeID string             `json:"employee_id"`
	Name       string             `json:"name"`
	Rate       decimal.Decimal    `json:"rate"`
	Days       int                `json:"days"`
	TotalHours decimal.Decimal    `json:"total_hours"`
	BasePay    decimal.Decimal    `json:"base_pay"`
	TotalBonus decimal.Decimal    `json:"total_bonus"`
	Total      decimal.Decimal    `json:"total"`
	Items      []LineItemResponse `json:"items,omitempty"`
}

type SummaryResponse struct {
	Year         int                       `json:"year"`
	Month        int                       `json:"month"`
	Employees    []EmployeeSummaryResponse `json:"employees"`
	CompanyTotal decimal.Decimal           `json:"company_total"`
	CompanyHours decimal.Decimal           `json:"company_hours"`
}

// ToEmployeeResponse converts es. branchName resolves branch ids for display; withItems controls
// whether the per-day lines are included.
func ToEmployeeResponse(es EmployeeSummary, branchName func(id string) string, withItems bool) EmployeeSummaryResponse {
	resp := EmployeeSummaryResponse{
		EmployeeID: es.EmployeeID,
		Name:       es.Name,
		Rate:       es.Rate,
		Days:       es.Days,
		TotalHours: es.TotalHours,
		BasePay:    es.BasePay,
		TotalBonus: es.TotalBonus,
		Total:      es.Total,
	}
	if !withItems {
		return resp
	}
	resp.Items = make([]LineItemResponse, 0, len(es.Items))
	for _, it := range es.Items {
		resp.Items = append(resp.Items, LineItemResponse{
			Date:      it.Date,
			BranchID:  it.BranchID,
			Branch:    branchName(it.BranchID),
			StartTime: it.StartTime,
			EndTime:   it.EndTime,
			Hours:     it.Hours,
			Pay:       it.Pay,
			Bonus:     it.Bonus,
			Total:     it.Total,
		})
	}
	return resp
}

func ToSummaryResponse(s Summary) SummaryResponse {
	resp := SummaryResponse{
		Year:         s.Year,
		Month:        s.Month,
		Employees:    make([]EmployeeSummaryResponse, 0, len(s.Employees)),
		CompanyTotal: s.CompanyTotal,
		CompanyHours: s.CompanyHours,
	}
	for _, es := range s.Employees {
		resp.Employees = append(resp.Employees, ToEmployeeResponse(es, nil, false))
	}
	return resp
}

// ExportFile is a rendered document ready to be streamed to the client.
type ExportFile struct {
	Filename    string
	ContentType string
	Content     []byte
}
