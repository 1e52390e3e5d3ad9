package timesheet

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
	"github.com/punchcard-hr/attendance-backend-go/internal/domain/employee"
	"github.com/punchcard-hr/attendance-backend-go/internal/domain/punch"
	"github.com/punchcard-hr/attendance-backend-go/internal/domain/timesheet"
	"github.com/punchcard-hr/attendance-backend-go/internal/pkg/database"
)

type TimesheetServiceImpl struct {
	db *database.DB
	punch.PunchRepository
	employee.EmployeeRepository
	calculator *Calculator
}

func NewTimesheetService(
	db *database.DB,
	punchRepo punch.PunchRepository,
	employeeRepo employee.EmployeeRepository,
) timesheet.TimesheetService {
	return &TimesheetServiceImpl{
		db:                 db,
		PunchRepository:    punchRepo,
		EmployeeRepository: employeeRepo,
		calculator:         NewCalculator(),
	}
}

// GetMyTimesheet implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) GetMyTimesheet(ctx context.Context, filter timesheet.Filter) (timesheet.TimesheetResponse, error) {
	if err := filter.Validate(); err != nil {
		return timesheet.TimesheetResponse{}, err
	}

	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return timesheet.TimesheetResponse{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return timesheet.TimesheetResponse{}, fmt.Errorf("company_id claim is missing or invalid")
	}

	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return timesheet.TimesheetResponse{}, fmt.Errorf("employee_id claim is missing or invalid")
	}

	return s.buildForEmployee(ctx, employeeID, companyID, filter)
}

// GetEmployeeTimesheet implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) GetEmployeeTimesheet(ctx context.Context, employeeID string, filter timesheet.Filter) (timesheet.TimesheetResponse, error) {
	if err := filter.Validate(); err != nil {
		return timesheet.TimesheetResponse{}, err
	}

	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return timesheet.TimesheetResponse{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return timesheet.TimesheetResponse{}, fmt.Errorf("company_id claim is missing or invalid")
	}

	return s.buildForEmployee(ctx, employeeID, companyID, filter)
}

func (s *TimesheetServiceImpl) buildForEmployee(ctx context.Context, employeeID, companyID string, filter timesheet.Filter) (timesheet.TimesheetResponse, error) {
	emp, err := s.EmployeeRepository.GetByID(ctx, employeeID, companyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, employee.ErrEmployeeNotFound) {
			return timesheet.TimesheetResponse{}, employee.ErrEmployeeNotFound
		}
		return timesheet.TimesheetResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	loc := emp.Location()
	shiftStartMin := emp.ShiftStartMinutes()

	// Read the clock once per request; open segments grow on the next call.
	nowUTC := time.Now().UTC()

	var start, end time.Time
	switch filter.Mode {
	case timesheet.ModeMonth:
		monthStart, err := time.Parse("2006-01", *filter.Month)
		if err != nil {
			return timesheet.TimesheetResponse{}, fmt.Errorf("invalid month: %w", err)
		}
		start, end = MonthRange(monthStart.Year(), monthStart.Month(), loc)
	default:
		start, end = RollingRange(nowUTC, filter.Days, loc)
	}

	// The local day window widened by one day bound is the UTC fetch window.
	events, err := s.PunchRepository.ListByEmployeeAndRange(ctx, employeeID, start.UTC(), end.AddDate(0, 0, 1).UTC(), companyID)
	if err != nil {
		return timesheet.TimesheetResponse{}, fmt.Errorf("failed to list clock events: %w", err)
	}

	days := s.calculator.BuildRange(events, start, end, loc, shiftStartMin, nowUTC)

	return timesheet.TimesheetResponse{
		EmployeeID:   emp.ID,
		EmployeeName: emp.FullName,
		Timezone:     emp.Timezone,
		ShiftStart:   formatShiftStart(shiftStartMin),
		StartDate:    start.Format("2006-01-02"),
		EndDate:      end.Format("2006-01-02"),
		GeneratedAt:  nowUTC.Format(time.RFC3339),
		Days:         mapDaysToResponse(days),
	}, nil
}

func mapDaysToResponse(days []timesheet.DaySummary) []timesheet.DaySummaryResponse {
	responses := make([]timesheet.DaySummaryResponse, 0, len(days))
	for _, summary := range days {
		segments := make([]timesheet.SegmentResponse, 0, len(summary.Segments))
		for _, seg := range summary.Segments {
			segments = append(segments, timesheet.SegmentResponse{
				InTime:          seg.InTime.UTC().Format(time.RFC3339),
				OutTime:         timeToStringPtr(seg.OutTime),
				DurationMinutes: seg.DurationMinutes,
				Open:            seg.Open(),
			})
		}

		responses = append(responses, timesheet.DaySummaryResponse{
			Date:           summary.Date.Format("2006-01-02"),
			DayOfWeek:      summary.Date.Weekday().String(),
			Classification: string(summary.Classification),
			Segments:       segments,
			TotalMinutes:   summary.TotalMinutes,
			Arrival: timesheet.ArrivalResponse{
				Status:      string(summary.Arrival.Status),
				FirstInTime: timeToStringPtr(summary.Arrival.FirstInTime),
				LateMinutes: summary.Arrival.LateMinutes,
			},
			LogStatus: string(summary.LogStatus),
		})
	}
	return responses
}

// timeToStringPtr safely converts a *time.Time to an ISO-8601 UTC string.
func timeToStringPtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.UTC().Format(time.RFC3339)
	return &formatted
}

func formatShiftStart(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
