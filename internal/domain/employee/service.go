package employee

import (
	"context"
)

// EmployeeService defines business logic for employee directory access
type EmployeeService interface {
	// Create provisions a login account and its employee record for the
	// caller's company
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)

	// List returns the employees of the caller's company
	List(ctx context.Context, filter ListFilter) (ListEmployeeResponse, error)

	// Get returns one employee of the caller's company
	Get(ctx context.Context, id string) (EmployeeResponse, error)
}
