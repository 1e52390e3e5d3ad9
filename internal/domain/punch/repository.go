package punch

import (
	"context"
	"time"
)

// PunchRepository defines data access for clock events.
// All methods include companyID to prevent cross-company data access.
type PunchRepository interface {
	// Create inserts a new clock event
	Create(ctx context.Context, event ClockEvent) (ClockEvent, error)

	// ListByEmployeeAndRange returns the events for one employee whose
	// RecordedAt falls in [from, to), ascending by RecordedAt.
	ListByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time, companyID string) ([]ClockEvent, error)

	// ListMyEvents returns events for one employee with pagination,
	// descending by RecordedAt.
	ListMyEvents(ctx context.Context, employeeID string, filter MyEventsFilter, companyID string) ([]ClockEvent, int64, error)

	// ListStaleOpenIns returns IN events older than cutoff with no later
	// event for the same employee and not yet flagged.
	ListStaleOpenIns(ctx context.Context, cutoff time.Time) ([]ClockEvent, error)

	// Flag marks an event for admin follow-up.
	Flag(ctx context.Context, id string, at time.Time) error
}
