package timesheet

import (
	"time"
)

// Classification of one calendar day.
type Classification string

const (
	ClassificationWeekendOff Classification = "WEEKEND_OFF"
	ClassificationWorked     Classification = "WORKED"
	ClassificationNoData     Classification = "NO_DATA"
)

// ArrivalStatus relative to the employee's shift start.
type ArrivalStatus string

const (
	ArrivalOnTime ArrivalStatus = "ON_TIME"
	ArrivalLate   ArrivalStatus = "LATE"
	ArrivalNone   ArrivalStatus = "NONE"
)

// LogStatus describes segment completeness for a day.
type LogStatus string

const (
	LogComplete LogStatus = "COMPLETE" // all segments closed
	LogOpen     LogStatus = "OPEN"     // at least one segment has no out
	LogEmpty    LogStatus = "EMPTY"    // no segments at all
)

// Segment is a derived worked interval between a paired IN and OUT.
// OutTime nil means the employee is still clocked in within the window.
// Segments are rebuilt from raw events on every request, never persisted.
type Segment struct {
	InTime          time.Time
	OutTime         *time.Time
	DurationMinutes int
}

// Open reports whether the segment has no matching OUT.
func (s *Segment) Open() bool {
	return s.OutTime == nil
}

// Arrival is the first-IN lateness verdict for a day.
type Arrival struct {
	Status      ArrivalStatus
	FirstInTime *time.Time
	LateMinutes int
}

// DaySummary is the aggregated, classified view of one calendar day.
// Date is midnight in the employee's timezone.
type DaySummary struct {
	Date           time.Time
	Classification Classification
	Segments       []Segment
	TotalMinutes   int
	Arrival        Arrival
	LogStatus      LogStatus
}
