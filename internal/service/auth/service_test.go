package auth

import (
	"context"
	"testing"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
	"github.com/punchcard-hr/attendance-backend-go/internal/domain/auth"
	"github.com/punchcard-hr/attendance-backend-go/internal/domain/user"
	"github.com/punchcard-hr/attendance-backend-go/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	users       map[string]user.User // keyed by email
	updatedHash string
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	u, ok := f.users[email]
	if !ok {
		return user.User{}, pgx.ErrNoRows
	}
	return u, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return user.User{}, pgx.ErrNoRows
}

func (f *fakeUserRepo) Create(ctx context.Context, newUser user.User) (user.User, error) {
	return newUser, nil
}

func (f *fakeUserRepo) LinkGoogleAccount(ctx context.Context, googleID string, email string) (user.User, error) {
	u := f.users[email]
	provider := "google"
	u.OAuthProvider = &provider
	u.OAuthProviderID = &googleID
	f.users[email] = u
	return u, nil
}

func (f *fakeUserRepo) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	f.updatedHash = passwordHash
	return nil
}

// fakeTx satisfies pgx.Tx for WithTransaction, which only ever calls
// Commit and Rollback on it.
type fakeTx struct {
	pgx.Tx
}

func (fakeTx) Commit(ctx context.Context) error   { return nil }
func (fakeTx) Rollback(ctx context.Context) error { return nil }

type fakeTransactor struct{}

func (fakeTransactor) BeginTx(ctx context.Context) (pgx.Tx, error) {
	return fakeTx{}, nil
}

type fakeJWTRepo struct {
	stored  map[string]string // token -> userID
	revoked map[string]bool
}

func newFakeJWTRepo() *fakeJWTRepo {
	return &fakeJWTRepo{stored: map[string]string{}, revoked: map[string]bool{}}
}

func (f *fakeJWTRepo) CreateRefreshToken(ctx context.Context, userID, token string, expiresAt int64, sessionReq auth.SessionTrackingRequest) error {
	f.stored[token] = userID
	return nil
}

func (f *fakeJWTRepo) IsRefreshTokenRevoked(ctx context.Context, token string) (bool, error) {
	return f.revoked[token], nil
}

func (f *fakeJWTRepo) RevokeRefreshToken(ctx context.Context, token string) error {
	f.revoked[token] = true
	return nil
}

func testJWTService() jwt.Service {
	return jwt.NewJWTService("test-secret-key", "1h", "24h")
}

func repoWithUser(t *testing.T, email, password string) *fakeUserRepo {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	hashed := string(hash)
	return &fakeUserRepo{users: map[string]user.User{
		email: {
			ID:           "user-1",
			Email:        email,
			PasswordHash: &hashed,
			Role:         user.RoleEmployee,
		},
	}}
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc := NewAuthService(nil, &fakeUserRepo{users: map[string]user.User{}}, testJWTService(), nil)

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	}, auth.SessionTrackingRequest{})

	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := repoWithUser(t, "jane@example.com", "correct-password")
	svc := NewAuthService(nil, repo, testJWTService(), nil)

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "jane@example.com",
		Password: "wrong-password",
	}, auth.SessionTrackingRequest{})

	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_OAuthOnlyAccount(t *testing.T) {
	// No password hash stored, password login must fail
	repo := &fakeUserRepo{users: map[string]user.User{
		"oauth@example.com": {
			ID:    "user-2",
			Email: "oauth@example.com",
			Role:  user.RoleEmployee,
		},
	}}
	svc := NewAuthService(nil, repo, testJWTService(), nil)

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "oauth@example.com",
		Password: "anything",
	}, auth.SessionTrackingRequest{})

	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLoginWithGoogle_UnknownEmail(t *testing.T) {
	svc := NewAuthService(nil, &fakeUserRepo{users: map[string]user.User{}}, testJWTService(), nil)

	_, err := svc.LoginWithGoogle(context.Background(), "nobody@example.com", "google-sub-1", auth.SessionTrackingRequest{})

	assert.ErrorIs(t, err, auth.ErrUserNotFound)
}

func TestLogin_Success(t *testing.T) {
	repo := repoWithUser(t, "jane@example.com", "correct-password")
	jwtRepo := newFakeJWTRepo()
	svc := NewAuthService(fakeTransactor{}, repo, testJWTService(), jwtRepo)

	resp, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "jane@example.com",
		Password: "correct-password",
	}, auth.SessionTrackingRequest{IPAddress: "10.0.0.1", UserAgent: "go-test"})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Greater(t, resp.AccessTokenExpiresIn, int64(0))
	assert.Equal(t, "user-1", jwtRepo.stored[resp.RefreshToken])
}

func TestLoginWithGoogle_LinksProviderAndIssuesTokens(t *testing.T) {
	repo := repoWithUser(t, "jane@example.com", "irrelevant")
	jwtRepo := newFakeJWTRepo()
	svc := NewAuthService(fakeTransactor{}, repo, testJWTService(), jwtRepo)

	resp, err := svc.LoginWithGoogle(context.Background(), "jane@example.com", "google-sub-1", auth.SessionTrackingRequest{})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "user-1", jwtRepo.stored[resp.RefreshToken])
	linked := repo.users["jane@example.com"]
	require.NotNil(t, linked.OAuthProviderID)
	assert.Equal(t, "google-sub-1", *linked.OAuthProviderID)
}

func TestRefreshToken_RotatesPair(t *testing.T) {
	jwtSvc := testJWTService()
	repo := repoWithUser(t, "jane@example.com", "correct-password")
	jwtRepo := newFakeJWTRepo()
	svc := NewAuthService(fakeTransactor{}, repo, jwtSvc, jwtRepo)

	oldToken, _, err := jwtSvc.GenerateRefreshToken("user-1")
	require.NoError(t, err)
	jwtRepo.stored[oldToken] = "user-1"

	resp, err := svc.RefreshToken(context.Background(), auth.RefreshTokenRequest{
		RefreshToken: oldToken,
	}, auth.SessionTrackingRequest{})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.True(t, jwtRepo.revoked[oldToken], "old refresh token should be revoked")
	assert.Equal(t, "user-1", jwtRepo.stored[resp.RefreshToken])
}

func TestRefreshToken_RevokedTokenRejected(t *testing.T) {
	jwtSvc := testJWTService()
	repo := repoWithUser(t, "jane@example.com", "correct-password")
	jwtRepo := newFakeJWTRepo()
	svc := NewAuthService(fakeTransactor{}, repo, jwtSvc, jwtRepo)

	oldToken, _, err := jwtSvc.GenerateRefreshToken("user-1")
	require.NoError(t, err)
	jwtRepo.revoked[oldToken] = true

	_, err = svc.RefreshToken(context.Background(), auth.RefreshTokenRequest{
		RefreshToken: oldToken,
	}, auth.SessionTrackingRequest{})

	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)
}

func TestRefreshToken_GarbageToken(t *testing.T) {
	svc := NewAuthService(nil, &fakeUserRepo{users: map[string]user.User{}}, testJWTService(), nil)

	_, err := svc.RefreshToken(context.Background(), auth.RefreshTokenRequest{
		RefreshToken: "not-a-jwt",
	}, auth.SessionTrackingRequest{})

	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestRefreshToken_AccessTokenRejected(t *testing.T) {
	jwtSvc := testJWTService()
	svc := NewAuthService(nil, &fakeUserRepo{users: map[string]user.User{}}, jwtSvc, nil)

	// An access token is structurally valid but carries type "access"
	accessToken, _, err := jwtSvc.GenerateAccessToken("user-1", "jane@example.com", nil, nil, user.RoleEmployee)
	assert.NoError(t, err)

	_, err = svc.RefreshToken(context.Background(), auth.RefreshTokenRequest{
		RefreshToken: accessToken,
	}, auth.SessionTrackingRequest{})

	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func userContext(t *testing.T, userID string) context.Context {
	t.Helper()
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ja.Encode(map[string]interface{}{
		"user_id": userID,
		"type":    "access",
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func TestChangePassword_Success(t *testing.T) {
	repo := repoWithUser(t, "jane@example.com", "old-password")
	svc := NewAuthService(nil, repo, testJWTService(), nil)

	err := svc.ChangePassword(userContext(t, "user-1"), auth.ChangePasswordRequest{
		CurrentPassword: "old-password",
		NewPassword:     "brand-new-password",
	})

	require.NoError(t, err)
	require.NotEmpty(t, repo.updatedHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.updatedHash), []byte("brand-new-password")))
}

func TestChangePassword_WrongCurrentPassword(t *testing.T) {
	repo := repoWithUser(t, "jane@example.com", "old-password")
	svc := NewAuthService(nil, repo, testJWTService(), nil)

	err := svc.ChangePassword(userContext(t, "user-1"), auth.ChangePasswordRequest{
		CurrentPassword: "not-the-password",
		NewPassword:     "brand-new-password",
	})

	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	assert.Empty(t, repo.updatedHash)
}

func TestChangePassword_OAuthOnlyAccount(t *testing.T) {
	repo := &fakeUserRepo{users: map[string]user.User{
		"oauth@example.com": {
			ID:    "user-2",
			Email: "oauth@example.com",
			Role:  user.RoleEmployee,
		},
	}}
	svc := NewAuthService(nil, repo, testJWTService(), nil)

	err := svc.ChangePassword(userContext(t, "user-2"), auth.ChangePasswordRequest{
		CurrentPassword: "anything",
		NewPassword:     "brand-new-password",
	})

	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestChangePassword_MissingClaims(t *testing.T) {
	repo := repoWithUser(t, "jane@example.com", "old-password")
	svc := NewAuthService(nil, repo, testJWTService(), nil)

	err := svc.ChangePassword(context.Background(), auth.ChangePasswordRequest{
		CurrentPassword: "old-password",
		NewPassword:     "brand-new-password",
	})

	assert.Error(t, err)
	assert.Empty(t, repo.updatedHash)
}
