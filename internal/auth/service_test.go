// internal/auth/service_test.go

package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/kritsanan1/thai-vid-match/internal/config"
)

func newTestService() Service {
	cfg := &config.Config{
		JWTSecret:          "test-secret",
		BCryptCost:         bcrypt.MinCost,
		AccessTokenExpiry:  time.Hour,
		RefreshTokenExpiry: 24 * time.Hour,
	}
	return NewService(NewMemoryRepository(), cfg)
}

func TestSignUpIssuesTokenPair(t *testing.T) {
	svc := newTestService()

	resp, err := svc.SignUp(context.Background(), &SignUpRequest{
		Email:    "nok@example.com",
		Password: "correct-horse-battery",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.User.ID)
	assert.Equal(t, "nok@example.com", resp.User.Email)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)

	claims, err := svc.ValidateAccessToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, TokenTypeAccess, claims.Type)
}

func TestSignUpRejectsDuplicateEmail(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	req := &SignUpRequest{Email: "nok@example.com", Password: "correct-horse-battery"}
	_, err := svc.SignUp(ctx, req)
	require.NoError(t, err)

	_, err = svc.SignUp(ctx, req)
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestSignUpRejectsShortPassword(t *testing.T) {
	svc := newTestService()

	_, err := svc.SignUp(context.Background(), &SignUpRequest{
		Email:    "nok@example.com",
		Password: "short",
	})
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestSignInWithCorrectPassword(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.SignUp(ctx, &SignUpRequest{Email: "nok@example.com", Password: "correct-horse-battery"})
	require.NoError(t, err)

	resp, err := svc.SignIn(ctx, &SignInRequest{Email: "nok@example.com", Password: "correct-horse-battery"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestSignInRejectsWrongPassword(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.SignUp(ctx, &SignUpRequest{Email: "nok@example.com", Password: "correct-horse-battery"})
	require.NoError(t, err)

	_, err = svc.SignIn(ctx, &SignInRequest{Email: "nok@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSignInUnknownEmailLooksLikeBadCredentials(t *testing.T) {
	svc := newTestService()

	_, err := svc.SignIn(context.Background(), &SignInRequest{
		Email:    "ghost@example.com",
		Password: "whatever-password",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshExchangesTokenPair(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	signup, err := svc.SignUp(ctx, &SignUpRequest{Email: "nok@example.com", Password: "correct-horse-battery"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(ctx, &RefreshRequest{RefreshToken: signup.RefreshToken})
	require.NoError(t, err)
	assert.Equal(t, signup.User.ID, refreshed.User.ID)
	assert.NotEmpty(t, refreshed.AccessToken)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	signup, err := svc.SignUp(ctx, &SignUpRequest{Email: "nok@example.com", Password: "correct-horse-battery"})
	require.NoError(t, err)

	// An access token is not accepted where a refresh token is expected
	_, err = svc.Refresh(ctx, &RefreshRequest{RefreshToken: signup.AccessToken})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateAccessTokenRejectsRefreshToken(t *testing.T) {
	svc := newTestService()

	signup, err := svc.SignUp(context.Background(), &SignUpRequest{
		Email:    "nok@example.com",
		Password: "correct-horse-battery",
	})
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(signup.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateAccessTokenRejectsGarbage(t *testing.T) {
	svc := newTestService()

	_, err := svc.ValidateAccessToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
