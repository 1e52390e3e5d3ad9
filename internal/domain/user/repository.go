package user

import (
	"context"
)

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	Create(ctx context.Context, newUser User) (User, error)
	// LinkGoogleAccount attaches a Google subject ID to an existing account
	// matched by email, marking the email verified.
	LinkGoogleAccount(ctx context.Context, googleID string, email string) (User, error)
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
}
