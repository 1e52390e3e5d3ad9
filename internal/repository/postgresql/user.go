package postgresql

import (
	"context"

	"github.com/punchcard-hr/attendance-backend-go/internal/domain/user"
	"github.com/punchcard-hr/attendance-backend-go/internal/pkg/database"
)

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepositoryImpl{db: db}
}

// GetByEmail implements user.UserRepository.
func (r *userRepositoryImpl) GetByEmail(ctx context.Context, email string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT u.id, u.company_id, u.email, u.password_hash, u.role,
			   u.oauth_provider, u.oauth_provider_id, u.email_verified,
			   u.created_at, u.updated_at,
			   e.id AS employee_id
		FROM users u
		LEFT JOIN employees e ON e.user_id = u.id AND e.deleted_at IS NULL
		WHERE u.email = $1
	`

	var found user.User
	err := q.QueryRow(ctx, query, email).Scan(
		&found.ID,
		&found.CompanyID,
		&found.Email,
		&found.PasswordHash,
		&found.Role,
		&found.OAuthProvider,
		&found.OAuthProviderID,
		&found.EmailVerified,
		&found.CreatedAt,
		&found.UpdatedAt,
		&found.EmployeeID,
	)
	if err != nil {
		return user.User{}, err
	}

	return found, nil
}

// GetByID implements user.UserRepository.
func (r *userRepositoryImpl) GetByID(ctx context.Context, id string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT u.id, u.company_id, u.email, u.password_hash, u.role,
			   u.oauth_provider, u.oauth_provider_id, u.email_verified,
			   u.created_at, u.updated_at,
			   e.id AS employee_id
		FROM users u
		LEFT JOIN employees e ON e.user_id = u.id AND e.deleted_at IS NULL
		WHERE u.id = $1
	`

	var found user.User
	err := q.QueryRow(ctx, query, id).Scan(
		&found.ID,
		&found.CompanyID,
		&found.Email,
		&found.PasswordHash,
		&found.Role,
		&found.OAuthProvider,
		&found.OAuthProviderID,
		&found.EmailVerified,
		&found.CreatedAt,
		&found.UpdatedAt,
		&found.EmployeeID,
	)
	if err != nil {
		return user.User{}, err
	}

	return found, nil
}

// Create implements user.UserRepository.
func (r *userRepositoryImpl) Create(ctx context.Context, newUser user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO users (
			company_id, email, password_hash, role, oauth_provider, oauth_provider_id, email_verified
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		newUser.CompanyID,
		newUser.Email,
		newUser.PasswordHash,
		newUser.Role,
		newUser.OAuthProvider,
		newUser.OAuthProviderID,
		newUser.EmailVerified,
	).Scan(&newUser.ID, &newUser.CreatedAt, &newUser.UpdatedAt)
	if err != nil {
		return user.User{}, err
	}

	return newUser, nil
}

// LinkGoogleAccount implements user.UserRepository.
func (r *userRepositoryImpl) LinkGoogleAccount(ctx context.Context, googleID string, email string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	updateQuery := `
		UPDATE users
		SET oauth_provider = $1, oauth_provider_id = $2, email_verified = TRUE, updated_at = NOW()
		WHERE email = $3
		RETURNING id, company_id, email, password_hash, role, oauth_provider, oauth_provider_id,
				  email_verified, created_at, updated_at
	`

	var updated user.User
	err := q.QueryRow(ctx, updateQuery, "google", googleID, email).Scan(
		&updated.ID,
		&updated.CompanyID,
		&updated.Email,
		&updated.PasswordHash,
		&updated.Role,
		&updated.OAuthProvider,
		&updated.OAuthProviderID,
		&updated.EmailVerified,
		&updated.CreatedAt,
		&updated.UpdatedAt,
	)
	if err != nil {
		return user.User{}, err
	}

	return updated, nil
}

// UpdatePassword implements user.UserRepository.
func (r *userRepositoryImpl) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users
		SET password_hash = $1, updated_at = NOW()
		WHERE id = $2
	`
	_, err := q.Exec(ctx, query, passwordHash, userID)
	return err
}
