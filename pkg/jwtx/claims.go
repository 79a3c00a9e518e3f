package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is the default bearer token lifetime. Short-lived so a
// stolen token has a bounded window even without explicit revocation.
const DefaultTokenTTL = 1 * time.Hour

// Claims are the access-token claims carried inside every signed token.
type Claims struct {
	jwt.RegisteredClaims

	// UserID is the numeric id of the authenticated user.
	UserID int64 `json:"uid"`

	// Username for the authenticated user.
	Username string `json:"username,omitempty"`
}

// NewClaims builds minimally-correct claims for a user session.
func NewClaims(userID int64, username, issuer string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID:   userID,
		Username: username,
	}
}

// TTLRemaining reports how long until the token expires naturally. Zero or
// negative means the token has already expired.
func (c *Claims) TTLRemaining(now time.Time) time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	return c.ExpiresAt.Sub(now)
}
