package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/wasabi-works/shift-payroll-backend/internal/domain/attendance"
	"github.com/wasabi-works/shift-payroll-backend/internal/handler/http/response"
	"github.com/wasabi-works/shift-payroll-backend/internal/pkg/period"
)

type AttendanceHandler interface {
	Board(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Edit(w http.ResponseWriter, r *http.Request)
	Commit(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
	now               func() time.Time
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
		now:               time.Now,
	}
}

// Board handles GET /attendance?date=YYYY-MM-DD&mode=DAY|WEEK|MONTH|HALF_MONTH.
// date defaults to today and mode to DAY.
func (h *attendanceHandlerImpl) Board(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	reference := query.Get("date")
	if reference == "" {
		reference = period.FormatDate(h.now())
	}
	mode := period.ModeDay
	if raw := query.Get("mode"); raw != "" {
		parsed, err := period.ParseMode(raw)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		mode = parsed
	}

	result, err := h.attendanceService.Board(r.Context(), reference, mode)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *attendanceHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.Get(r.Context(), chi.URLParam(r, "employeeID"), chi.URLParam(r, "date"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Edit patches one record. A locked record answers 409 with the stored record as data.
func (h *attendanceHandlerImpl) Edit(w http.ResponseWriter, r *http.Request) {
	var req attendance.EditRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Edit attendance decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = chi.URLParam(r, "employeeID")
	req.Date = chi.URLParam(r, "date")

	result, err := h.attendanceService.Edit(r.Context(), req)
	if errors.Is(err, attendance.ErrRecordLocked) {
		response.Locked(w, err.Error(), result)
		return
	}
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance updated", result)
}

func (h *attendanceHandlerImpl) Commit(w http.ResponseWriter, r *http.Request) {
	var req attendance.CommitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Commit attendance decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.Commit(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance approved", result)
}
