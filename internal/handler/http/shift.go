package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/wasabi-works/shift-payroll-backend/internal/domain/auth"
	"github.com/wasabi-works/shift-payroll-backend/internal/domain/shift"
	"github.com/wasabi-works/shift-payroll-backend/internal/handler/http/response"
	"github.com/wasabi-works/shift-payroll-backend/internal/pkg/period"
)

type ShiftHandler interface {
	GetMyPeriod(w http.ResponseWriter, r *http.Request)
	SubmitMyPeriod(w http.ResponseWriter, r *http.Request)
}

type shiftHandlerImpl struct {
	shiftService shift.ShiftService
	now          func() time.Time
}

func NewShiftHandler(shiftService shift.ShiftService) ShiftHandler {
	return &shiftHandlerImpl{
		shiftService: shiftService,
		now:          time.Now,
	}
}

// GetMyPeriod returns one half-month of the caller's shift requests. Missing query parameters
// fall back to the period containing today.
func (h *shiftHandlerImpl) GetMyPeriod(w http.ResponseWriter, r *http.Request) {
	claims, ok := getClaims(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	current := period.HalfMonthOf(h.now())
	p := period.HalfMonthPeriod{
		Year:  getIntQueryParam(r, "year", current.Year),
		Month: getIntQueryParam(r, "month", current.Month),
		Part:  getIntQueryParam(r, "part", current.Part),
	}

	result, err := h.shiftService.GetPeriod(r.Context(), claims.EmployeeID, p)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *shiftHandlerImpl) SubmitMyPeriod(w http.ResponseWriter, r *http.Request) {
	claims, ok := getClaims(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	var req shift.SubmitPeriodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("SubmitMyPeriod decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = claims.EmployeeID

	result, err := h.shiftService.SubmitPeriod(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shift requests saved", result)
}
