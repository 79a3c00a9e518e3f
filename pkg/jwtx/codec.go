package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is the single failure kind surfaced by Codec.Verify.
// Bad signature, malformed payload and natural expiry all collapse into it
// so a caller probing tokens learns nothing about which check failed.
var ErrInvalidToken = errors.New("jwtx: invalid or expired token")

// Verifier validates a signed token and gives back the claims if it's legit.
type Verifier interface {
	Verify(token string) (*Claims, error)
}

// Codec issues and verifies HS256-signed tokens. It is stateless and safe
// for concurrent use; the signing secret and expiry horizon are fixed at
// construction.
type Codec struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewCodec creates a Codec from a signing secret, issuer and token TTL.
// A non-positive ttl falls back to DefaultTokenTTL.
func NewCodec(secret, issuer string, ttl time.Duration) *Codec {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &Codec{secret: []byte(secret), issuer: issuer, ttl: ttl}
}

// TTL returns the configured expiry horizon.
func (c *Codec) TTL() time.Duration { return c.ttl }

// Issue signs a token for the given user and returns the compact encoding
// together with the claims it carries.
func (c *Codec) Issue(userID int64, username string, now time.Time) (string, Claims, error) {
	claims := NewClaims(userID, username, c.issuer, c.ttl, now.UTC())

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", Claims{}, fmt.Errorf("jwtx: sign: %w", err)
	}
	return signed, claims, nil
}

// Verify checks signature, shape and expiry of a compact token. Every
// failure mode is reported as ErrInvalidToken.
func (c *Codec) Verify(tokenStr string) (*Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	)

	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		return c.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
