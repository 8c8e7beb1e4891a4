package utils

import (
	"testing"
	"time"

	"taskhive/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signTestToken(t *testing.T, method jwt.SigningMethod, secret string, claims IdentityClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(method, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestParseIdentityToken(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"

	tokenString := signTestToken(t, jwt.SigningMethodHS256, "test-secret", IdentityClaims{
		Email:     "ada@example.com",
		FullName:  "Ada Lovelace",
		FirstName: "Ada",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "auth0|abc123",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	claims, err := ParseIdentityToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, "auth0|abc123", claims.Subject)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.Equal(t, "Ada Lovelace", claims.FullName)
}

func TestParseIdentityTokenRejectsWrongSecret(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"

	tokenString := signTestToken(t, jwt.SigningMethodHS256, "other-secret", IdentityClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "auth0|abc123"},
	})

	_, err := ParseIdentityToken(tokenString)
	assert.Error(t, err)
}

func TestParseIdentityTokenRejectsExpired(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"

	tokenString := signTestToken(t, jwt.SigningMethodHS256, "test-secret", IdentityClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "auth0|abc123",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})

	_, err := ParseIdentityToken(tokenString)
	assert.Error(t, err)
}

func TestParseIdentityTokenRequiresSubject(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"

	tokenString := signTestToken(t, jwt.SigningMethodHS256, "test-secret", IdentityClaims{
		Email: "ada@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	_, err := ParseIdentityToken(tokenString)
	assert.Error(t, err)
}
