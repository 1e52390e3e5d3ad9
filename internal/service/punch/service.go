package punch

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/punchcard-hr/attendance-backend-go/internal/domain/employee"
	"github.com/punchcard-hr/attendance-backend-go/internal/domain/punch"
	"github.com/punchcard-hr/attendance-backend-go/internal/pkg/database"
)

type PunchServiceImpl struct {
	db *database.DB
	punch.PunchRepository
	employee.EmployeeRepository
}

func NewPunchService(
	db *database.DB,
	punchRepo punch.PunchRepository,
	employeeRepo employee.EmployeeRepository,
) punch.PunchService {
	return &PunchServiceImpl{
		db:                 db,
		PunchRepository:    punchRepo,
		EmployeeRepository: employeeRepo,
	}
}

// PunchIn implements punch.PunchService.
func (s *PunchServiceImpl) PunchIn(ctx context.Context, req punch.PunchRequest) (punch.ClockEventResponse, error) {
	return s.record(ctx, punch.KindIn, req)
}

// PunchOut implements punch.PunchService.
func (s *PunchServiceImpl) PunchOut(ctx context.Context, req punch.PunchRequest) (punch.ClockEventResponse, error) {
	return s.record(ctx, punch.KindOut, req)
}

// record inserts a raw clock event. No pairing validation happens here: a
// duplicate IN or an OUT without a preceding IN is stored as-is, and the
// timesheet derivation degrades gracefully when it reads the sequence back.
func (s *PunchServiceImpl) record(ctx context.Context, kind punch.Kind, req punch.PunchRequest) (punch.ClockEventResponse, error) {
	if err := req.Validate(); err != nil {
		return punch.ClockEventResponse{}, err
	}

	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return punch.ClockEventResponse{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return punch.ClockEventResponse{}, fmt.Errorf("company_id claim is missing or invalid")
	}

	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return punch.ClockEventResponse{}, fmt.Errorf("employee_id claim is missing or invalid")
	}

	// A valid token may outlive the employee record; reject punches for
	// removed or resigned employees.
	emp, err := s.EmployeeRepository.GetByID(ctx, employeeID, companyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return punch.ClockEventResponse{}, employee.ErrEmployeeNotFound
		}
		return punch.ClockEventResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}
	if emp.EmploymentStatus != employee.EmploymentStatusActive {
		return punch.ClockEventResponse{}, employee.ErrEmployeeNotFound
	}

	id, err := uuid.NewV7()
	if err != nil {
		return punch.ClockEventResponse{}, fmt.Errorf("failed to generate event id: %w", err)
	}

	event := punch.ClockEvent{
		ID:         id.String(),
		EmployeeID: employeeID,
		CompanyID:  companyID,
		Kind:       kind,

		// Absolute instant, stored UTC; local-day bucketing happens at read
		// time against the employee timezone.
		RecordedAt: time.Now().UTC(),

		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Address:   req.Address,
	}

	created, err := s.PunchRepository.Create(ctx, event)
	if err != nil {
		return punch.ClockEventResponse{}, fmt.Errorf("failed to create clock event: %w", err)
	}

	return mapEventToResponse(created), nil
}

// GetMyEvents implements punch.PunchService.
func (s *PunchServiceImpl) GetMyEvents(ctx context.Context, filter punch.MyEventsFilter) (punch.ListEventsResponse, error) {
	if err := filter.Validate(); err != nil {
		return punch.ListEventsResponse{}, err
	}

	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return punch.ListEventsResponse{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return punch.ListEventsResponse{}, fmt.Errorf("company_id claim is missing or invalid")
	}

	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return punch.ListEventsResponse{}, fmt.Errorf("employee_id claim is missing or invalid")
	}

	events, total, err := s.PunchRepository.ListMyEvents(ctx, employeeID, filter, companyID)
	if err != nil {
		return punch.ListEventsResponse{}, fmt.Errorf("failed to list my events: %w", err)
	}

	responses := make([]punch.ClockEventResponse, 0, len(events))
	for _, ev := range events {
		responses = append(responses, mapEventToResponse(ev))
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))

	return punch.ListEventsResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Events:     responses,
	}, nil
}

// mapEventToResponse converts a ClockEvent entity to its wire shape
func mapEventToResponse(ev punch.ClockEvent) punch.ClockEventResponse {
	return punch.ClockEventResponse{
		ID:           ev.ID,
		EmployeeID:   ev.EmployeeID,
		EmployeeName: ev.EmployeeName,
		Event:        string(ev.Kind),
		Timestamp:    ev.RecordedAt.UTC().Format(time.RFC3339),
		HasAddress:   ev.HasLocation(),
		Latitude:     ev.Latitude,
		Longitude:    ev.Longitude,
		Address:      ev.Address,
		Flagged:      ev.FlaggedAt != nil,
	}
}
