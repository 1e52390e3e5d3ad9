package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/punchcard-hr/attendance-backend-go/internal/domain/employee"
	"github.com/punchcard-hr/attendance-backend-go/internal/pkg/database"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (
			user_id, company_id, employee_code, full_name, position,
			timezone, shift_start_min, hire_date, employment_status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		emp.UserID,
		emp.CompanyID,
		emp.EmployeeCode,
		emp.FullName,
		emp.Position,
		emp.Timezone,
		emp.ShiftStartMin,
		emp.HireDate,
		emp.EmploymentStatus,
	).Scan(&emp.ID, &emp.CreatedAt, &emp.UpdatedAt)
	if err != nil {
		return employee.Employee{}, err
	}

	return emp, nil
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, company_id, employee_code, full_name, position,
			   timezone, shift_start_min, hire_date, employment_status,
			   created_at, updated_at, deleted_at
		FROM employees
		WHERE id = $1
		  AND company_id = $2
		  AND deleted_at IS NULL
	`

	var emp employee.Employee
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&emp.ID,
		&emp.UserID,
		&emp.CompanyID,
		&emp.EmployeeCode,
		&emp.FullName,
		&emp.Position,
		&emp.Timezone,
		&emp.ShiftStartMin,
		&emp.HireDate,
		&emp.EmploymentStatus,
		&emp.CreatedAt,
		&emp.UpdatedAt,
		&emp.DeletedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, err
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by id: %w", err)
	}

	return emp, nil
}

// List implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) List(ctx context.Context, filter employee.ListFilter, companyID string) ([]employee.Employee, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"company_id = $1", "deleted_at IS NULL"}
	args := []interface{}{companyID}
	argIdx := 2

	if filter.Name != nil && *filter.Name != "" {
		conditions = append(conditions, fmt.Sprintf("full_name ILIKE $%d", argIdx))
		args = append(args, "%"+*filter.Name+"%")
		argIdx++
	}

	if filter.Status != nil && *filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("employment_status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM employees WHERE %s`, whereClause)

	var totalCount int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count employees: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, user_id, company_id, employee_code, full_name, position,
			   timezone, shift_start_min, hire_date, employment_status,
			   created_at, updated_at, deleted_at
		FROM employees
		WHERE %s
		ORDER BY full_name ASC
		LIMIT $%d OFFSET $%d
	`, whereClause, argIdx, argIdx+1)

	offset := (filter.Page - 1) * filter.Limit
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var emp employee.Employee
		if err := rows.Scan(
			&emp.ID,
			&emp.UserID,
			&emp.CompanyID,
			&emp.EmployeeCode,
			&emp.FullName,
			&emp.Position,
			&emp.Timezone,
			&emp.ShiftStartMin,
			&emp.HireDate,
			&emp.EmploymentStatus,
			&emp.CreatedAt,
			&emp.UpdatedAt,
			&emp.DeletedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate employees: %w", err)
	}

	return employees, totalCount, nil
}
