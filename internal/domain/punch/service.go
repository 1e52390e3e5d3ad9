package punch

import (
	"context"
)

// PunchService defines business logic for punch recording
type PunchService interface {
	// PunchIn records an IN event for the authenticated employee
	PunchIn(ctx context.Context, req PunchRequest) (ClockEventResponse, error)

	// PunchOut records an OUT event for the authenticated employee
	PunchOut(ctx context.Context, req PunchRequest) (ClockEventResponse, error)

	// GetMyEvents lists raw events for the authenticated employee
	GetMyEvents(ctx context.Context, filter MyEventsFilter) (ListEventsResponse, error)
}
