package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestGenerateAndValidateToken(t *testing.T) {
	token, err := GenerateToken("user-1", testSecret, "dailyflow", 1)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "dailyflow", claims.Issuer)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken("user-1", testSecret, "dailyflow", 1)
	require.NoError(t, err)

	_, err = ValidateToken(token, "other-secret")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenExpired(t *testing.T) {
	now := time.Now().Add(-2 * time.Hour)
	claims := Claims{
		UserID: "user-1",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = ValidateToken(token, testSecret)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateTokenFallsBackToSubject(t *testing.T) {
	claims := jwt.RegisteredClaims{
		Subject:   "user-2",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	parsed, err := ValidateToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "user-2", parsed.UserID)
}

func TestValidateTokenGarbage(t *testing.T) {
	_, err := ValidateToken("not-a-token", testSecret)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
