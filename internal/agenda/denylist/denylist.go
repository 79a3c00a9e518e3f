// Package denylist tracks revoked access tokens until they would have
// expired anyway. Tokens are keyed by digest, never stored whole.
package denylist

import (
	"context"
	"time"

	"github.com/agendaapi/agenda/pkg/cryptox"
)

// Digest reduces a token to its storage key. Two presentations of the same
// bearer string always produce the same digest.
func Digest(token string) string {
	return cryptox.FingerprintToken(token)
}

// Store records revoked token digests with a bounded lifetime.
type Store interface {
	// Revoke marks a digest as revoked for ttl. A ttl of zero or less means
	// the token is already expired and nothing needs recording.
	Revoke(ctx context.Context, digest string, ttl time.Duration) error

	// IsRevoked reports whether a digest has been revoked. An error means
	// the answer is unknown and the caller must not admit the token.
	IsRevoked(ctx context.Context, digest string) (bool, error)

	// Ping verifies the backing store is reachable.
	Ping(ctx context.Context) error
}
