package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/punchcard-hr/attendance-backend-go/internal/domain/timesheet"
	"github.com/punchcard-hr/attendance-backend-go/internal/handler/http/response"
)

type TimesheetHandler interface {
	GetMyTimesheet(w http.ResponseWriter, r *http.Request)
	GetEmployeeTimesheet(w http.ResponseWriter, r *http.Request)
}

type timesheetHandlerImpl struct {
	timesheetService timesheet.TimesheetService
}

func NewTimesheetHandler(timesheetService timesheet.TimesheetService) TimesheetHandler {
	return &timesheetHandlerImpl{
		timesheetService: timesheetService,
	}
}

func parseTimesheetFilter(r *http.Request) timesheet.Filter {
	var filter timesheet.Filter

	filter.Mode = r.URL.Query().Get("mode")
	if d := r.URL.Query().Get("days"); d != "" {
		if days, err := strconv.Atoi(d); err == nil {
			filter.Days = days
		}
	}
	if m := r.URL.Query().Get("month"); m != "" {
		filter.Month = &m
	}

	return filter
}

// GetMyTimesheet implements TimesheetHandler.
func (h *timesheetHandlerImpl) GetMyTimesheet(w http.ResponseWriter, r *http.Request) {
	filter := parseTimesheetFilter(r)

	result, err := h.timesheetService.GetMyTimesheet(r.Context(), filter)
	if err != nil {
		slog.Error("GetMyTimesheet service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetEmployeeTimesheet implements TimesheetHandler.
func (h *timesheetHandlerImpl) GetEmployeeTimesheet(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")
	filter := parseTimesheetFilter(r)

	result, err := h.timesheetService.GetEmployeeTimesheet(r.Context(), employeeID, filter)
	if err != nil {
		slog.Error("GetEmployeeTimesheet service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
