package auth

import "errors"

var (
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrInvalidToken        = errors.New("invalid or expired token")
	ErrTokenExpired        = errors.New("token has expired")
	ErrRefreshTokenRevoked = errors.New("refresh token has been revoked")
	ErrUserNotFound        = errors.New("user not found")

	ErrRefreshTokenCookieNotFound = errors.New("refresh token cookie not found")
	ErrRefreshTokenCookieEmpty    = errors.New("refresh token cookie is empty")
	ErrStateCookieEmpty           = errors.New("oauth state cookie is empty")
	ErrStateParamEmpty            = errors.New("oauth state parameter is empty")
	ErrStateMismatch              = errors.New("oauth state mismatch")
	ErrCodeValueEmpty             = errors.New("oauth code value is empty")
	ErrGoogleAccessDeniedByUser   = errors.New("google access denied by user")
)
