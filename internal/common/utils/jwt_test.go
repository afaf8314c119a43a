// internal/common/utils/jwt_test.go

package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func testClaims(expiry time.Duration) *JWTClaims {
	now := time.Now()
	return &JWTClaims{
		UserID:    "2c3f8a6e-7b1d-4e2a-9f00-1b2c3d4e5f60",
		Email:     "nok@example.com",
		Type:      "access",
		ExpiresAt: now.Add(expiry).Unix(),
		IssuedAt:  now.Unix(),
		Issuer:    "thai-vid-match",
	}
}

func TestJWTRoundTrip(t *testing.T) {
	claims := testClaims(time.Hour)

	token, err := GenerateJWT(claims, testSecret)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsed, err := ValidateJWT(token, testSecret)
	require.NoError(t, err)

	assert.Equal(t, claims.UserID, parsed.UserID)
	assert.Equal(t, claims.Email, parsed.Email)
	assert.Equal(t, claims.Type, parsed.Type)
	assert.Equal(t, claims.Issuer, parsed.Issuer)
}

func TestValidateJWTRejectsWrongSecret(t *testing.T) {
	token, err := GenerateJWT(testClaims(time.Hour), testSecret)
	require.NoError(t, err)

	_, err = ValidateJWT(token, "different-secret")
	assert.Error(t, err)
}

func TestValidateJWTRejectsExpiredToken(t *testing.T) {
	token, err := GenerateJWT(testClaims(-time.Minute), testSecret)
	require.NoError(t, err)

	_, err = ValidateJWT(token, testSecret)
	assert.Error(t, err)
}

func TestValidateJWTRejectsMalformedToken(t *testing.T) {
	_, err := ValidateJWT("not.a.token", testSecret)
	assert.Error(t, err)
}
