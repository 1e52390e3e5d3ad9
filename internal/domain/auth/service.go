package auth

import (
	"context"
)

// AuthService defines business logic for authentication
type AuthService interface {
	// Login authenticates with email and password and issues a token pair
	Login(ctx context.Context, loginReq LoginRequest, sessionTrackReq SessionTrackingRequest) (TokenResponse, error)

	// RefreshToken revokes the presented refresh token and issues a new token pair
	RefreshToken(ctx context.Context, req RefreshTokenRequest, sessionTrackReq SessionTrackingRequest) (TokenResponse, error)

	// Logout revokes the refresh token
	Logout(ctx context.Context, token string) error

	// LoginWithGoogle signs in (or links) a Google-verified account and issues a token pair
	LoginWithGoogle(ctx context.Context, googleEmail string, googleID string, sessionTrackReq SessionTrackingRequest) (TokenResponse, error)

	// ChangePassword verifies the caller's current password and replaces it
	ChangePassword(ctx context.Context, req ChangePasswordRequest) error
}
