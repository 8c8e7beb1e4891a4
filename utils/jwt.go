package utils

import (
	"errors"

	"taskhive/config"

	"github.com/golang-jwt/jwt/v5"
)

// IdentityClaims are the claims the external auth provider places in
// the tokens it issues. Only the subject is guaranteed; the naming
// claims vary by provider.
type IdentityClaims struct {
	Email       string `json:"email"`
	FullName    string `json:"name"`
	FirstName   string `json:"given_name"`
	LastName    string `json:"family_name"`
	AccountName string `json:"preferred_username"`
	jwt.RegisteredClaims
}

// ParseIdentityToken validates a provider-issued token and returns its
// claims. The subject carries the caller's external identity.
func ParseIdentityToken(tokenString string) (*IdentityClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &IdentityClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(config.AppConfig.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*IdentityClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Subject == "" {
		return nil, errors.New("token has no subject")
	}
	return claims, nil
}
