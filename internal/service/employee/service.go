package employee

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/punchcard-hr/attendance-backend-go/internal/domain/employee"
	"github.com/punchcard-hr/attendance-backend-go/internal/domain/user"
	"github.com/punchcard-hr/attendance-backend-go/internal/pkg/database"
	"github.com/punchcard-hr/attendance-backend-go/internal/repository/postgresql"
	"golang.org/x/crypto/bcrypt"
)

type EmployeeServiceImpl struct {
	db       database.Transactor
	userRepo user.UserRepository
	employee.EmployeeRepository
}

func NewEmployeeService(db database.Transactor, userRepo user.UserRepository, employeeRepo employee.EmployeeRepository) employee.EmployeeService {
	return &EmployeeServiceImpl{
		db:                 db,
		userRepo:           userRepo,
		EmployeeRepository: employeeRepo,
	}
}

func companyIDFromClaims(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", fmt.Errorf("company_id claim is missing or invalid")
	}
	return companyID, nil
}

// Create implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	companyID, err := companyIDFromClaims(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	_, err = s.userRepo.GetByEmail(ctx, req.Email)
	if err == nil {
		return employee.EmployeeResponse{}, user.ErrEmailExists
	}
	if err != pgx.ErrNoRows {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}
	passwordHash := string(hash)

	hireDate, err := time.Parse("2006-01-02", req.HireDate)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to parse hire date: %w", err)
	}

	var created employee.Employee
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		newUser, err := s.userRepo.Create(txCtx, user.User{
			CompanyID:    &companyID,
			Email:        req.Email,
			PasswordHash: &passwordHash,
			Role:         user.RoleEmployee,
		})
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}

		created, err = s.EmployeeRepository.Create(txCtx, employee.Employee{
			UserID:           &newUser.ID,
			CompanyID:        companyID,
			EmployeeCode:     req.EmployeeCode,
			FullName:         req.FullName,
			Position:         req.Position,
			Timezone:         req.Timezone,
			ShiftStartMin:    req.ShiftStartMinutes(),
			HireDate:         hireDate,
			EmploymentStatus: employee.EmploymentStatusActive,
		})
		if err != nil {
			return fmt.Errorf("failed to create employee: %w", err)
		}
		return nil
	})
	if err != nil {
		// Check for duplicate employee code (unique constraint violation)
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505": // unique_violation
				return employee.EmployeeResponse{}, employee.ErrEmployeeCodeExists
			}
		}
		return employee.EmployeeResponse{}, err
	}

	return mapEmployeeToResponse(created), nil
}

// List implements employee.EmployeeService.
func (s *EmployeeServiceImpl) List(ctx context.Context, filter employee.ListFilter) (employee.ListEmployeeResponse, error) {
	if err := filter.Validate(); err != nil {
		return employee.ListEmployeeResponse{}, err
	}

	companyID, err := companyIDFromClaims(ctx)
	if err != nil {
		return employee.ListEmployeeResponse{}, err
	}

	employees, totalCount, err := s.EmployeeRepository.List(ctx, filter, companyID)
	if err != nil {
		return employee.ListEmployeeResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		responses = append(responses, mapEmployeeToResponse(emp))
	}

	totalPages := int(math.Ceil(float64(totalCount) / float64(filter.Limit)))

	return employee.ListEmployeeResponse{
		TotalCount: totalCount,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Employees:  responses,
	}, nil
}

// Get implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Get(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	companyID, err := companyIDFromClaims(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, id, companyID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.EmployeeResponse{}, employee.ErrEmployeeNotFound
		}
		return employee.EmployeeResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return mapEmployeeToResponse(emp), nil
}

func mapEmployeeToResponse(emp employee.Employee) employee.EmployeeResponse {
	shift := emp.ShiftStartMinutes()
	return employee.EmployeeResponse{
		ID:               emp.ID,
		EmployeeCode:     emp.EmployeeCode,
		FullName:         emp.FullName,
		Position:         emp.Position,
		Timezone:         emp.Timezone,
		ShiftStart:       fmt.Sprintf("%02d:%02d", shift/60, shift%60),
		HireDate:         emp.HireDate.Format("2006-01-02"),
		EmploymentStatus: string(emp.EmploymentStatus),
	}
}
