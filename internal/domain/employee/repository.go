package employee

import (
	"context"
)

// EmployeeRepository defines data access for employee records.
// Every lookup carries companyID to keep tenants isolated.
type EmployeeRepository interface {
	// Create inserts a new employee record
	Create(ctx context.Context, emp Employee) (Employee, error)
	GetByID(ctx context.Context, id string, companyID string) (Employee, error)
	List(ctx context.Context, filter ListFilter, companyID string) ([]Employee, int64, error)
}
