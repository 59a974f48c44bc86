package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forkfulapp/forkful-server/internal/auth"
	"github.com/forkfulapp/forkful-server/internal/errors"
)

const testKeyHex = "0000000000000000000000000000000000000000000000000000000000000000"

func newAuthService(t *testing.T) *AuthService {
	t.Helper()

	s := newTestStore(t)
	tokens, err := auth.NewTokenService(testKeyHex, 15*time.Minute, 30*24*time.Hour)
	require.NoError(t, err)

	return NewAuthService(s, tokens, testLogger())
}

func validRegisterRequest() RegisterRequest {
	return RegisterRequest{
		Email:     "alice@example.com",
		Username:  "alice",
		Password:  "correct-horse",
		FirstName: "Alice",
		LastName:  "Smith",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, validRegisterRequest())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(user.ID, "usr-"))
	assert.NotEqual(t, "correct-horse", user.PasswordHash)

	resp, err := svc.Login(ctx, LoginRequest{Email: "alice@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, resp.User.ID)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)

	// The access token verifies back to the same user.
	verified, err := svc.VerifyAccessToken(ctx, resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, verified.ID)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, validRegisterRequest())
	require.NoError(t, err)

	dup := validRegisterRequest()
	dup.Username = "alice2"
	_, err = svc.Register(ctx, dup)
	assert.True(t, errors.Is(err, errors.ErrAlreadyExists))
}

func TestRegister_Validation(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	req := validRegisterRequest()
	req.Email = "not-an-email"
	_, err := svc.Register(ctx, req)
	assert.True(t, errors.Is(err, errors.ErrValidation))

	req = validRegisterRequest()
	req.Password = "short"
	_, err = svc.Register(ctx, req)
	assert.True(t, errors.Is(err, errors.ErrValidation))
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, validRegisterRequest())
	require.NoError(t, err)

	_, err = svc.Login(ctx, LoginRequest{Email: "alice@example.com", Password: "wrong-password"})
	assert.True(t, errors.Is(err, errors.ErrInvalidCredentials))

	// Unknown email yields the same error code as a wrong password.
	_, err = svc.Login(ctx, LoginRequest{Email: "nobody@example.com", Password: "whatever-here"})
	assert.True(t, errors.Is(err, errors.ErrInvalidCredentials))
}

func TestRefresh_RotatesToken(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, validRegisterRequest())
	require.NoError(t, err)
	login, err := svc.Login(ctx, LoginRequest{Email: "alice@example.com", Password: "correct-horse"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(ctx, RefreshRequest{RefreshToken: login.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)

	// The old refresh token is revoked after rotation.
	_, err = svc.Refresh(ctx, RefreshRequest{RefreshToken: login.RefreshToken})
	assert.True(t, errors.Is(err, errors.ErrTokenExpired))
}

func TestRefresh_UnknownToken(t *testing.T) {
	svc := newAuthService(t)

	_, err := svc.Refresh(context.Background(), RefreshRequest{RefreshToken: "bogus"})
	assert.True(t, errors.Is(err, errors.ErrUnauthorized))
}

func TestLogout(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, validRegisterRequest())
	require.NoError(t, err)
	login, err := svc.Login(ctx, LoginRequest{Email: "alice@example.com", Password: "correct-horse"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, login.RefreshToken))

	_, err = svc.Refresh(ctx, RefreshRequest{RefreshToken: login.RefreshToken})
	assert.True(t, errors.Is(err, errors.ErrTokenExpired))

	// Logging out an unknown token is not an error.
	assert.NoError(t, svc.Logout(ctx, "bogus"))
}

func TestVerifyAccessToken_Invalid(t *testing.T) {
	svc := newAuthService(t)

	_, err := svc.VerifyAccessToken(context.Background(), "v4.local.garbage")
	assert.True(t, errors.Is(err, errors.ErrUnauthorized))
}
