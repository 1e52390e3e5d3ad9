package timesheet

import (
	"time"

	"github.com/punchcard-hr/attendance-backend-go/internal/pkg/validator"
)

// Range modes. Rolling ends today in the employee's timezone; month covers a
// full calendar month.
const (
	ModeRolling = "rolling"
	ModeMonth   = "month"
)

type Filter struct {
	Mode  string  `json:"mode"`
	Days  int     `json:"days"`            // rolling mode, default 7
	Month *string `json:"month,omitempty"` // month mode, YYYY-MM
}

func (f *Filter) Validate() error {
	var errs validator.ValidationErrors

	if f.Mode == "" {
		f.Mode = ModeRolling
	}
	if !validator.IsInSlice(f.Mode, []string{ModeRolling, ModeMonth}) {
		errs = append(errs, validator.ValidationError{
			Field:   "mode",
			Message: "mode must be one of: rolling, month",
		})
	}

	switch f.Mode {
	case ModeRolling:
		if f.Days == 0 {
			f.Days = 7 // Default window
		}
		if f.Days < 1 || f.Days > 92 {
			errs = append(errs, validator.ValidationError{
				Field:   "days",
				Message: "days must be between 1 and 92",
			})
		}
	case ModeMonth:
		if f.Month == nil || *f.Month == "" {
			errs = append(errs, validator.ValidationError{
				Field:   "month",
				Message: "month is required for month mode",
			})
		} else if _, err := time.Parse("2006-01", *f.Month); err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "month",
				Message: "month must be in YYYY-MM format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type SegmentResponse struct {
	InTime          string  `json:"in_time"`
	OutTime         *string `json:"out_time,omitempty"`
	DurationMinutes int     `json:"duration_minutes"`
	Open            bool    `json:"open"`
}

type ArrivalResponse struct {
	Status      string  `json:"status"`
	FirstInTime *string `json:"first_in_time,omitempty"`
	LateMinutes int     `json:"late_minutes"`
}

type DaySummaryResponse struct {
	Date           string            `json:"date"` // YYYY-MM-DD
	DayOfWeek      string            `json:"day_of_week"`
	Classification string            `json:"classification"`
	Segments       []SegmentResponse `json:"segments"`
	TotalMinutes   int               `json:"total_minutes"`
	Arrival        ArrivalResponse   `json:"arrival"`
	LogStatus      string            `json:"log_status"`
}

type TimesheetResponse struct {
	EmployeeID   string               `json:"employee_id"`
	EmployeeName string               `json:"employee_name"`
	Timezone     string               `json:"timezone"`
	ShiftStart   string               `json:"shift_start"` // HH:MM local
	StartDate    string               `json:"start_date"`
	EndDate      string               `json:"end_date"`
	GeneratedAt  string               `json:"generated_at"` // the "now" used for open segments
	Days         []DaySummaryResponse `json:"days"`
}
