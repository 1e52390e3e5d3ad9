package punch

import (
	"time"
)

type Kind string

const (
	KindIn  Kind = "IN"
	KindOut Kind = "OUT"
)

// ClockEvent is one recorded punch. RecordedAt is stored in UTC; callers
// convert to the employee's local timezone for day bucketing and display.
type ClockEvent struct {
	ID         string
	EmployeeID string
	CompanyID  string
	Kind       Kind
	RecordedAt time.Time
	Latitude   *float64
	Longitude  *float64
	Address    *string
	FlaggedAt  *time.Time
	CreatedAt  time.Time

	// DTO
	EmployeeName *string
}

// HasLocation reports whether the punch carried geolocation.
func (e *ClockEvent) HasLocation() bool {
	return e.Latitude != nil && e.Longitude != nil
}
