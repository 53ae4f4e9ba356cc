package utils

import (
	"testing"

	"arcbank/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func TestGenerateAndParseToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	access, refresh, err := GenerateTokens(&models.UserClaims{
		UserID:       1,
		Email:        "user@example.com",
		Role:         "user",
		Permissions:  models.GetDefaultPermissions("user"),
		TokenVersion: 2,
	})
	assert.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)

	claims, err := ParseToken(access)
	assert.NoError(t, err)
	assert.Equal(t, uint(1), claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, 2, claims.TokenVersion)
	assert.Equal(t, "arcbank-api", claims.Issuer)
}

func TestParseTokenRejectsUnsignedToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	// A token claiming alg "none" must never validate, whatever its
	// signature field holds.
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, models.UserClaims{
		UserID: 1,
		Role:   "admin",
	})
	tokenString, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	assert.NoError(t, err)

	_, err = ParseToken(tokenString)
	assert.Error(t, err)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	access, _, err := GenerateTokens(&models.UserClaims{UserID: 1})
	assert.NoError(t, err)

	t.Setenv("JWT_SECRET", "a-different-secret")
	_, err = ParseToken(access)
	assert.Error(t, err)
}

func TestTokensRequireConfiguredSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, _, err := GenerateTokens(&models.UserClaims{UserID: 1})
	assert.Error(t, err)

	_, err = ParseToken("whatever")
	assert.Error(t, err)
}
