package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the token claims the client cares about. The client never
// verifies the signature; it only inspects what the server issued to decide
// whether a login is still worth presenting.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// ParseClaims extracts the claims of a bearer token without verifying it.
func ParseClaims(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tokenStr, claims); err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	return claims, nil
}

// GetEmailFromToken returns the email claim of a bearer token.
func GetEmailFromToken(tokenStr string) (string, error) {
	claims, err := ParseClaims(tokenStr)
	if err != nil {
		return "", err
	}
	return claims.Email, nil
}

// TokenExpired reports whether the token is past its expiry. A token that
// cannot be parsed or carries no expiry counts as expired.
func TokenExpired(tokenStr string) bool {
	claims, err := ParseClaims(tokenStr)
	if err != nil || claims.ExpiresAt == nil {
		return true
	}
	return claims.ExpiresAt.Before(time.Now())
}
