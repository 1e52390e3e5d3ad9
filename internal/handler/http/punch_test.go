package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/punchcard-hr/attendance-backend-go/internal/domain/punch"
	"github.com/stretchr/testify/assert"
)

type fakePunchService struct {
	punchInResp  punch.ClockEventResponse
	punchOutResp punch.ClockEventResponse
	eventsResp   punch.ListEventsResponse
	err          error

	lastRequest *punch.PunchRequest
	lastFilter  *punch.MyEventsFilter
}

func (f *fakePunchService) PunchIn(ctx context.Context, req punch.PunchRequest) (punch.ClockEventResponse, error) {
	f.lastRequest = &req
	return f.punchInResp, f.err
}

func (f *fakePunchService) PunchOut(ctx context.Context, req punch.PunchRequest) (punch.ClockEventResponse, error) {
	f.lastRequest = &req
	return f.punchOutResp, f.err
}

func (f *fakePunchService) GetMyEvents(ctx context.Context, filter punch.MyEventsFilter) (punch.ListEventsResponse, error) {
	f.lastFilter = &filter
	return f.eventsResp, f.err
}

func TestPunchHandler_PunchIn_Success(t *testing.T) {
	svc := &fakePunchService{
		punchInResp: punch.ClockEventResponse{
			ID:         "event-1",
			EmployeeID: "emp-1",
			Event:      "IN",
			Timestamp:  "2024-01-10T02:05:00Z",
		},
	}
	handler := NewPunchHandler(svc)

	lat, lng := -6.2, 106.8
	body, _ := json.Marshal(punch.PunchRequest{Latitude: &lat, Longitude: &lng})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/punches/in", bytes.NewReader(body))
	w := httptest.NewRecorder()

	handler.PunchIn(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]interface{}
	err := json.NewDecoder(w.Body).Decode(&resp)
	assert.NoError(t, err)
	assert.True(t, resp["success"].(bool))

	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "event-1", data["id"])
	assert.Equal(t, "IN", data["event"])

	assert.NotNil(t, svc.lastRequest)
	assert.Equal(t, lat, *svc.lastRequest.Latitude)
}

func TestPunchHandler_PunchIn_EmptyBody(t *testing.T) {
	svc := &fakePunchService{
		punchInResp: punch.ClockEventResponse{ID: "event-2", Event: "IN"},
	}
	handler := NewPunchHandler(svc)

	// A bare punch without a body is valid
	req := httptest.NewRequest(http.MethodPost, "/api/v1/punches/in", nil)
	w := httptest.NewRecorder()

	handler.PunchIn(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NotNil(t, svc.lastRequest)
	assert.Nil(t, svc.lastRequest.Latitude)
}

func TestPunchHandler_PunchIn_InvalidJSON(t *testing.T) {
	svc := &fakePunchService{}
	handler := NewPunchHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/punches/in", bytes.NewReader([]byte("{not-json")))
	w := httptest.NewRecorder()

	handler.PunchIn(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, svc.lastRequest)
}

func TestPunchHandler_PunchIn_HalfLocation(t *testing.T) {
	svc := &fakePunchService{}
	handler := NewPunchHandler(svc)

	lat := -6.2
	body, _ := json.Marshal(punch.PunchRequest{Latitude: &lat})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/punches/in", bytes.NewReader(body))
	w := httptest.NewRecorder()

	handler.PunchIn(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestPunchHandler_PunchOut_Success(t *testing.T) {
	svc := &fakePunchService{
		punchOutResp: punch.ClockEventResponse{ID: "event-3", Event: "OUT"},
	}
	handler := NewPunchHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/punches/out", nil)
	w := httptest.NewRecorder()

	handler.PunchOut(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]interface{}
	err := json.NewDecoder(w.Body).Decode(&resp)
	assert.NoError(t, err)
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "OUT", data["event"])
}

func TestPunchHandler_GetMyEvents_ParsesQuery(t *testing.T) {
	svc := &fakePunchService{
		eventsResp: punch.ListEventsResponse{
			TotalCount: 2,
			Page:       2,
			Limit:      10,
			TotalPages: 1,
			Events: []punch.ClockEventResponse{
				{ID: "e1", Event: "OUT"},
				{ID: "e2", Event: "IN"},
			},
		},
	}
	handler := NewPunchHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/punches/my?start_date=2024-01-01&end_date=2024-01-31&page=2&limit=10", nil)
	w := httptest.NewRecorder()

	handler.GetMyEvents(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	assert.NotNil(t, svc.lastFilter)
	assert.Equal(t, "2024-01-01", *svc.lastFilter.StartDate)
	assert.Equal(t, "2024-01-31", *svc.lastFilter.EndDate)
	assert.Equal(t, 2, svc.lastFilter.Page)
	assert.Equal(t, 10, svc.lastFilter.Limit)

	var resp map[string]interface{}
	err := json.NewDecoder(w.Body).Decode(&resp)
	assert.NoError(t, err)
	meta := resp["meta"].(map[string]interface{})
	assert.Equal(t, float64(2), meta["total_items"])
}
