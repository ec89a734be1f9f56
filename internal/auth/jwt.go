package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrTokenInvalid covers malformed access tokens.
	ErrTokenInvalid = errors.New("invalid token")
	// ErrTokenExpired marks a structurally valid but expired access token.
	ErrTokenExpired = errors.New("token expired")
)

// Claims is the JWT payload of a backend-issued access token. The backend
// may omit role and username; callers must handle empty values.
type Claims struct {
	Role     string `json:"role,omitempty"`
	Username string `json:"username,omitempty"`
	jwt.RegisteredClaims
}

// Decode extracts claims from an access token without verifying the
// signature. The signing key lives only on the backend; this client, like
// any browser, can merely read the payload. Expiry is still enforced
// locally so stale credentials are purged without a network round-trip.
func Decode(tokenStr string) (Claims, error) {
	var claims Claims
	if _, _, err := jwt.NewParser().ParseUnverified(tokenStr, &claims); err != nil {
		return Claims{}, ErrTokenInvalid
	}
	if claims.ExpiresAt != nil && time.Now().After(claims.ExpiresAt.Time) {
		return Claims{}, ErrTokenExpired
	}
	return claims, nil
}
