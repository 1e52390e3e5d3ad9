package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/punchcard-hr/attendance-backend-go/internal/domain/employee"
	"github.com/punchcard-hr/attendance-backend-go/internal/domain/timesheet"
	"github.com/stretchr/testify/assert"
)

type fakeTimesheetService struct {
	resp timesheet.TimesheetResponse
	err  error

	lastEmployeeID string
	lastFilter     *timesheet.Filter
}

func (f *fakeTimesheetService) GetMyTimesheet(ctx context.Context, filter timesheet.Filter) (timesheet.TimesheetResponse, error) {
	f.lastFilter = &filter
	return f.resp, f.err
}

func (f *fakeTimesheetService) GetEmployeeTimesheet(ctx context.Context, employeeID string, filter timesheet.Filter) (timesheet.TimesheetResponse, error) {
	f.lastEmployeeID = employeeID
	f.lastFilter = &filter
	return f.resp, f.err
}

func TestTimesheetHandler_GetMyTimesheet_Success(t *testing.T) {
	svc := &fakeTimesheetService{
		resp: timesheet.TimesheetResponse{
			EmployeeID:   "emp-1",
			EmployeeName: "Jane Smith",
			Timezone:     "Asia/Jakarta",
			ShiftStart:   "09:00",
			Days: []timesheet.DaySummaryResponse{
				{Date: "2024-01-10", Classification: "WORKED", TotalMinutes: 475},
			},
		},
	}
	handler := NewTimesheetHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/timesheets/my?mode=rolling&days=7", nil)
	w := httptest.NewRecorder()

	handler.GetMyTimesheet(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	assert.NotNil(t, svc.lastFilter)
	assert.Equal(t, "rolling", svc.lastFilter.Mode)
	assert.Equal(t, 7, svc.lastFilter.Days)

	var resp map[string]interface{}
	err := json.NewDecoder(w.Body).Decode(&resp)
	assert.NoError(t, err)
	assert.True(t, resp["success"].(bool))

	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "emp-1", data["employee_id"])
	assert.Equal(t, "09:00", data["shift_start"])
}

func TestTimesheetHandler_GetMyTimesheet_MonthMode(t *testing.T) {
	svc := &fakeTimesheetService{}
	handler := NewTimesheetHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/timesheets/my?mode=month&month=2024-02", nil)
	w := httptest.NewRecorder()

	handler.GetMyTimesheet(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotNil(t, svc.lastFilter)
	assert.Equal(t, "month", svc.lastFilter.Mode)
	assert.Equal(t, "2024-02", *svc.lastFilter.Month)
}

func TestTimesheetHandler_GetEmployeeTimesheet_PassesURLParam(t *testing.T) {
	svc := &fakeTimesheetService{
		resp: timesheet.TimesheetResponse{EmployeeID: "emp-2"},
	}
	handler := NewTimesheetHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/timesheets/employees/emp-2", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", "emp-2")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	w := httptest.NewRecorder()

	handler.GetEmployeeTimesheet(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "emp-2", svc.lastEmployeeID)
}

func TestTimesheetHandler_GetEmployeeTimesheet_NotFound(t *testing.T) {
	svc := &fakeTimesheetService{err: employee.ErrEmployeeNotFound}
	handler := NewTimesheetHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/timesheets/employees/missing", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", "missing")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	w := httptest.NewRecorder()

	handler.GetEmployeeTimesheet(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
