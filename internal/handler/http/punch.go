package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/punchcard-hr/attendance-backend-go/internal/domain/punch"
	"github.com/punchcard-hr/attendance-backend-go/internal/handler/http/response"
)

type PunchHandler interface {
	PunchIn(w http.ResponseWriter, r *http.Request)
	PunchOut(w http.ResponseWriter, r *http.Request)
	GetMyEvents(w http.ResponseWriter, r *http.Request)
}

type punchHandlerImpl struct {
	punchService punch.PunchService
}

func NewPunchHandler(punchService punch.PunchService) PunchHandler {
	return &punchHandlerImpl{
		punchService: punchService,
	}
}

// PunchIn implements PunchHandler.
func (h *punchHandlerImpl) PunchIn(w http.ResponseWriter, r *http.Request) {
	var req punch.PunchRequest

	// Body is optional, a bare punch carries no location
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			slog.Error("PunchIn decode error", "error", err)
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	event, err := h.punchService.PunchIn(r.Context(), req)
	if err != nil {
		slog.Error("PunchIn service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Clock-in recorded successfully", event)
}

// PunchOut implements PunchHandler.
func (h *punchHandlerImpl) PunchOut(w http.ResponseWriter, r *http.Request) {
	var req punch.PunchRequest

	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			slog.Error("PunchOut decode error", "error", err)
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	event, err := h.punchService.PunchOut(r.Context(), req)
	if err != nil {
		slog.Error("PunchOut service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Clock-out recorded successfully", event)
}

// GetMyEvents implements PunchHandler.
func (h *punchHandlerImpl) GetMyEvents(w http.ResponseWriter, r *http.Request) {
	var filter punch.MyEventsFilter

	if startDate := r.URL.Query().Get("start_date"); startDate != "" {
		filter.StartDate = &startDate
	}
	if endDate := r.URL.Query().Get("end_date"); endDate != "" {
		filter.EndDate = &endDate
	}
	if p := r.URL.Query().Get("page"); p != "" {
		if pageNum, err := strconv.Atoi(p); err == nil && pageNum > 0 {
			filter.Page = pageNum
		}
	}
	if l := r.URL.Query().Get("limit"); l != "" {
		if limitNum, err := strconv.Atoi(l); err == nil && limitNum > 0 {
			filter.Limit = limitNum
		}
	}

	result, err := h.punchService.GetMyEvents(r.Context(), filter)
	if err != nil {
		slog.Error("GetMyEvents service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Events, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: result.TotalPages,
	})
}
