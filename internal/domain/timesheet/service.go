package timesheet

import (
	"context"
)

// TimesheetService derives per-day summaries from raw clock events
type TimesheetService interface {
	// GetMyTimesheet builds the timesheet for the authenticated employee
	GetMyTimesheet(ctx context.Context, filter Filter) (TimesheetResponse, error)

	// GetEmployeeTimesheet builds the timesheet for any employee (manager/owner)
	GetEmployeeTimesheet(ctx context.Context, employeeID string, filter Filter) (TimesheetResponse, error)
}
