package http

import (
	"net/http"

	"github.com/wasabi-works/shift-payroll-backend/internal/domain/actionlog"
	"github.com/wasabi-works/shift-payroll-backend/internal/handler/http/response"
)

type ActionLogHandler interface {
	List(w http.ResponseWriter, r *http.Request)
}

type actionLogHandlerImpl struct {
	actionLogService actionlog.ActionLogService
}

func NewActionLogHandler(actionLogService actionlog.ActionLogService) ActionLogHandler {
	return &actionLogHandlerImpl{
		actionLogService: actionLogService,
	}
}

// List returns the newest entries first; ?limit defaults to the retention size.
func (h *actionLogHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.actionLogService.List(r.Context(), getIntQueryParam(r, "limit", 0))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
