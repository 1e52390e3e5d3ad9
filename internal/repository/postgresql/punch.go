package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/punchcard-hr/attendance-backend-go/internal/domain/punch"
	"github.com/punchcard-hr/attendance-backend-go/internal/pkg/database"
)

type punchRepositoryImpl struct {
	db *database.DB
}

func NewPunchRepository(db *database.DB) punch.PunchRepository {
	return &punchRepositoryImpl{db: db}
}

// Create implements punch.PunchRepository.
func (r *punchRepositoryImpl) Create(ctx context.Context, event punch.ClockEvent) (punch.ClockEvent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO clock_events (
			id, employee_id, company_id, kind, recorded_at,
			latitude, longitude, address
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`

	err := q.QueryRow(ctx, query,
		event.ID,
		event.EmployeeID,
		event.CompanyID,
		event.Kind,
		event.RecordedAt,
		event.Latitude,
		event.Longitude,
		event.Address,
	).Scan(&event.CreatedAt)
	if err != nil {
		return punch.ClockEvent{}, fmt.Errorf("failed to create clock event: %w", err)
	}

	return event, nil
}

// ListByEmployeeAndRange implements punch.PunchRepository.
func (r *punchRepositoryImpl) ListByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time, companyID string) ([]punch.ClockEvent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, company_id, kind, recorded_at,
			   latitude, longitude, address, flagged_at, created_at
		FROM clock_events
		WHERE employee_id = $1
		  AND company_id = $2
		  AND recorded_at >= $3
		  AND recorded_at < $4
		ORDER BY recorded_at ASC
	`

	rows, err := q.Query(ctx, query, employeeID, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list clock events: %w", err)
	}
	defer rows.Close()

	var events []punch.ClockEvent
	for rows.Next() {
		var ev punch.ClockEvent
		if err := rows.Scan(
			&ev.ID,
			&ev.EmployeeID,
			&ev.CompanyID,
			&ev.Kind,
			&ev.RecordedAt,
			&ev.Latitude,
			&ev.Longitude,
			&ev.Address,
			&ev.FlaggedAt,
			&ev.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan clock event: %w", err)
		}
		events = append(events, ev)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate clock events: %w", err)
	}

	return events, nil
}

// ListMyEvents implements punch.PunchRepository.
func (r *punchRepositoryImpl) ListMyEvents(ctx context.Context, employeeID string, filter punch.MyEventsFilter, companyID string) ([]punch.ClockEvent, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"employee_id = $1", "company_id = $2"}
	args := []interface{}{employeeID, companyID}
	argIdx := 3

	if filter.StartDate != nil && *filter.StartDate != "" {
		conditions = append(conditions, fmt.Sprintf("recorded_at >= $%d", argIdx))
		args = append(args, *filter.StartDate)
		argIdx++
	}

	if filter.EndDate != nil && *filter.EndDate != "" {
		// End date is inclusive, so compare against the next day.
		conditions = append(conditions, fmt.Sprintf("recorded_at < $%d::date + INTERVAL '1 day'", argIdx))
		args = append(args, *filter.EndDate)
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM clock_events WHERE %s`, whereClause)

	var totalCount int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count clock events: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, employee_id, company_id, kind, recorded_at,
			   latitude, longitude, address, flagged_at, created_at
		FROM clock_events
		WHERE %s
		ORDER BY recorded_at DESC
		LIMIT $%d OFFSET $%d
	`, whereClause, argIdx, argIdx+1)

	offset := (filter.Page - 1) * filter.Limit
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list clock events: %w", err)
	}
	defer rows.Close()

	var events []punch.ClockEvent
	for rows.Next() {
		var ev punch.ClockEvent
		if err := rows.Scan(
			&ev.ID,
			&ev.EmployeeID,
			&ev.CompanyID,
			&ev.Kind,
			&ev.RecordedAt,
			&ev.Latitude,
			&ev.Longitude,
			&ev.Address,
			&ev.FlaggedAt,
			&ev.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan clock event: %w", err)
		}
		events = append(events, ev)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate clock events: %w", err)
	}

	return events, totalCount, nil
}

// ListStaleOpenIns implements punch.PunchRepository.
func (r *punchRepositoryImpl) ListStaleOpenIns(ctx context.Context, cutoff time.Time) ([]punch.ClockEvent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT c.id, c.employee_id, c.company_id, c.kind, c.recorded_at,
			   c.latitude, c.longitude, c.address, c.flagged_at, c.created_at,
			   e.full_name AS employee_name
		FROM clock_events c
		LEFT JOIN employees e ON e.id = c.employee_id
		WHERE c.kind = 'IN'
		  AND c.recorded_at < $1
		  AND c.flagged_at IS NULL
		  AND NOT EXISTS (
			SELECT 1 FROM clock_events later
			WHERE later.employee_id = c.employee_id
			  AND later.recorded_at > c.recorded_at
		  )
	`

	rows, err := q.Query(ctx, query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to list stale open clock-ins: %w", err)
	}
	defer rows.Close()

	var events []punch.ClockEvent
	for rows.Next() {
		var ev punch.ClockEvent
		if err := rows.Scan(
			&ev.ID,
			&ev.EmployeeID,
			&ev.CompanyID,
			&ev.Kind,
			&ev.RecordedAt,
			&ev.Latitude,
			&ev.Longitude,
			&ev.Address,
			&ev.FlaggedAt,
			&ev.CreatedAt,
			&ev.EmployeeName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan clock event: %w", err)
		}
		events = append(events, ev)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate clock events: %w", err)
	}

	return events, nil
}

// Flag implements punch.PunchRepository.
func (r *punchRepositoryImpl) Flag(ctx context.Context, id string, at time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE clock_events
		SET flagged_at = $1
		WHERE id = $2 AND flagged_at IS NULL
	`
	_, err := q.Exec(ctx, query, at, id)
	if err != nil {
		return fmt.Errorf("failed to flag clock event: %w", err)
	}
	return nil
}
