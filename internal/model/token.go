package model

import (
	"time"

	"github.com/google/uuid"
)

// TokenManager generates and validates signed access tokens.
type TokenManager interface {
	GenerateAccessToken(user User) (token string, jti string, err error)
	// ParseAccessToken verifies signature, algorithm and expiry.
	ParseAccessToken(token string) (AccessClaims, error)
	// ParseAccessTokenIgnoreExpiry verifies signature and algorithm but
	// leaves the wall-clock expiry comparison to the caller. Used by the
	// refresh flow, which expects the access token to be expired.
	ParseAccessTokenIgnoreExpiry(token string) (AccessClaims, error)
}

// AccessClaims are the verified claims extracted from an access token.
type AccessClaims struct {
	UserID    uuid.UUID
	Email     string
	JTI       string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
