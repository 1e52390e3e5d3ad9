package employee

import (
	"time"
)

type EmploymentStatus string

const (
	EmploymentStatusActive   EmploymentStatus = "active"
	EmploymentStatusResigned EmploymentStatus = "resigned"
)

// DefaultShiftStartMinutes is 09:00 local, used when an employee has no
// assigned shift start.
const DefaultShiftStartMinutes = 9 * 60

type Employee struct {
	ID               string
	UserID           *string
	CompanyID        string
	EmployeeCode     string
	FullName         string
	Position         *string
	Timezone         string // IANA name, e.g. "Asia/Jakarta"
	ShiftStartMin    *int   // minutes past local midnight; nil means default
	HireDate         time.Time
	EmploymentStatus EmploymentStatus
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        *time.Time
}

// ShiftStartMinutes returns the assigned shift start, falling back to 09:00.
func (e *Employee) ShiftStartMinutes() int {
	if e.ShiftStartMin == nil {
		return DefaultShiftStartMinutes
	}
	return *e.ShiftStartMin
}

// Location resolves the employee timezone, falling back to UTC on bad data.
func (e *Employee) Location() *time.Location {
	loc, err := time.LoadLocation(e.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
