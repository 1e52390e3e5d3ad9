package employee

import (
	"time"

	"github.com/punchcard-hr/attendance-backend-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	Email        string  `json:"email"`
	Password     string  `json:"password"`
	EmployeeCode string  `json:"employee_code"`
	FullName     string  `json:"full_name"`
	Position     *string `json:"position,omitempty"`
	Timezone     string  `json:"timezone"`
	ShiftStart   *string `json:"shift_start,omitempty"` // HH:MM local; nil means 09:00
	HireDate     string  `json:"hire_date"`             // YYYY-MM-DD
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is required",
		})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must be a valid email address",
		})
	}

	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password is required",
		})
	} else if len(r.Password) < 8 {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must be at least 8 characters",
		})
	}

	if validator.IsEmpty(r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_code",
			Message: "employee_code is required",
		})
	}

	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name is required",
		})
	}

	if !validator.IsValidTimezone(r.Timezone) {
		errs = append(errs, validator.ValidationError{
			Field:   "timezone",
			Message: "timezone must be a valid IANA timezone name",
		})
	}

	if r.ShiftStart != nil {
		if _, err := time.Parse("15:04", *r.ShiftStart); err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "shift_start",
				Message: "shift_start must be in HH:MM format",
			})
		}
	}

	if validator.IsEmpty(r.HireDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "hire_date",
			Message: "hire_date is required",
		})
	} else if _, ok := validator.IsValidDate(r.HireDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "hire_date",
			Message: "hire_date must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ShiftStartMinutes converts the optional HH:MM shift start to minutes past
// local midnight. Call only after Validate.
func (r *CreateEmployeeRequest) ShiftStartMinutes() *int {
	if r.ShiftStart == nil {
		return nil
	}
	t, err := time.Parse("15:04", *r.ShiftStart)
	if err != nil {
		return nil
	}
	min := t.Hour()*60 + t.Minute()
	return &min
}

type ListFilter struct {
	Name   *string `json:"name,omitempty"`
	Status *string `json:"status,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *ListFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1 // Default page
	}

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 20 // Default limit
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	if f.Status != nil && *f.Status != "" {
		if !validator.IsInSlice(*f.Status, []string{string(EmploymentStatusActive), string(EmploymentStatusResigned)}) {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of: active, resigned",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type EmployeeResponse struct {
	ID               string  `json:"id"`
	EmployeeCode     string  `json:"employee_code"`
	FullName         string  `json:"full_name"`
	Position         *string `json:"position,omitempty"`
	Timezone         string  `json:"timezone"`
	ShiftStart       string  `json:"shift_start"` // HH:MM local
	HireDate         string  `json:"hire_date"`
	EmploymentStatus string  `json:"employment_status"`
}

type ListEmployeeResponse struct {
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"total_pages"`
	Employees  []EmployeeResponse `json:"employees"`
}
