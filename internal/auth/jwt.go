// Package auth implements first-party credentials: HS256 access tokens,
// bcrypt password hashing and opaque verification/reset tokens.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	apperrors "github.com/tahseel-app/tahseel-backend/errors"
)

// AccessTokenTTL is the lifetime of an issued access token.
const AccessTokenTTL = 24 * time.Hour

// Claims is the claim set carried by access tokens.
type Claims struct {
	jwt.RegisteredClaims
}

// IssueAccessToken signs a token for the given user ID.
func IssueAccessToken(userID, secret string) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(AccessTokenTTL)),
			Issuer:    "tahseel",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.ServerError, "failed to sign access token")
	}
	return signed, nil
}

// ValidateAccessToken parses and verifies a token, returning the user ID.
func ValidateAccessToken(tokenString, secret string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{},
		func(token *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil || !token.Valid {
		return "", apperrors.Unauthorized("invalid_token", "Invalid or expired token")
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || claims.Subject == "" {
		return "", apperrors.Unauthorized("invalid_claims", "Invalid token structure")
	}

	return claims.Subject, nil
}
