package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/wasabi-works/shift-payroll-backend/internal/domain/auth"
	"github.com/wasabi-works/shift-payroll-backend/internal/domain/payroll"
	"github.com/wasabi-works/shift-payroll-backend/internal/handler/http/response"
)

type PayrollHandler interface {
	Summary(w http.ResponseWriter, r *http.Request)
	Statement(w http.ResponseWriter, r *http.Request)
	StatementPDF(w http.ResponseWriter, r *http.Request)
	ExportWorkbook(w http.ResponseWriter, r *http.Request)

	// Employee self-service
	MyStatement(w http.ResponseWriter, r *http.Request)
	MyStatementPDF(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
	now            func() time.Time
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{
		payrollService: payrollService,
		now:            time.Now,
	}
}

// periodFromQuery reads ?year&month, defaulting to the current month.
func (h *payrollHandlerImpl) periodFromQuery(r *http.Request, employeeID string) payroll.PeriodRequest {
	now := h.now()
	return payroll.PeriodRequest{
		EmployeeID: employeeID,
		Year:       getIntQueryParam(r, "year", now.Year()),
		Month:      getIntQueryParam(r, "month", int(now.Month())),
	}
}

func (h *payrollHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.Summary(r.Context(), h.periodFromQuery(r, ""))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) Statement(w http.ResponseWriter, r *http.Request) {
	h.statement(w, r, chi.URLParam(r, "employeeID"))
}

func (h *payrollHandlerImpl) StatementPDF(w http.ResponseWriter, r *http.Request) {
	h.statementPDF(w, r, chi.URLParam(r, "employeeID"))
}

func (h *payrollHandlerImpl) ExportWorkbook(w http.ResponseWriter, r *http.Request) {
	file, err := h.payrollService.Workbook(r.Context(), h.periodFromQuery(r, ""))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.File(w, file.Filename, file.ContentType, file.Content)
}

func (h *payrollHandlerImpl) MyStatement(w http.ResponseWriter, r *http.Request) {
	claims, ok := getClaims(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}
	h.statement(w, r, claims.EmployeeID)
}

func (h *payrollHandlerImpl) MyStatementPDF(w http.ResponseWriter, r *http.Request) {
	claims, ok := getClaims(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}
	h.statementPDF(w, r, claims.EmployeeID)
}

func (h *payrollHandlerImpl) statement(w http.ResponseWriter, r *http.Request, employeeID string) {
	result, err := h.payrollService.Statement(r.Context(), h.periodFromQuery(r, employeeID))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) statementPDF(w http.ResponseWriter, r *http.Request, employeeID string) {
	file, err := h.payrollService.StatementPDF(r.Context(), h.periodFromQuery(r, employeeID))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.File(w, file.Filename, file.ContentType, file.Content)
}
