package jwtx

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-0123456789"

func TestIssueAndVerifyRoundTrip(t *testing.T) {
	t.Parallel()

	codec := NewCodec(testSecret, "agenda-test", time.Hour)
	now := time.Now()

	token, issued, err := codec.Issue(42, "maria", now)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.True(t, issued.ExpiresAt.After(issued.IssuedAt.Time))

	claims, err := codec.Verify(token)
	require.NoError(t, err)
	require.Equal(t, int64(42), claims.UserID)
	require.Equal(t, "maria", claims.Username)
	require.Equal(t, "agenda-test", claims.Issuer)
	require.WithinDuration(t, now.Add(time.Hour), claims.ExpiresAt.Time, 2*time.Second)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	t.Parallel()

	codec := NewCodec(testSecret, "agenda-test", time.Hour)

	// Issue in the past so the token is already expired.
	token, _, err := codec.Issue(1, "joao", time.Now().Add(-2*time.Hour))
	require.NoError(t, err)

	_, err = codec.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	t.Parallel()

	codec := NewCodec(testSecret, "agenda-test", time.Hour)
	other := NewCodec("a-different-secret", "agenda-test", time.Hour)

	token, _, err := other.Issue(1, "joao", time.Now())
	require.NoError(t, err)

	_, err = codec.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	t.Parallel()

	codec := NewCodec(testSecret, "agenda-test", time.Hour)

	for _, raw := range []string{"", "garbage", "a.b.c", "header.payload"} {
		_, err := codec.Verify(raw)
		require.ErrorIs(t, err, ErrInvalidToken, "input %q", raw)
	}
}

func TestVerifyRejectsTamperedPayload(t *testing.T) {
	t.Parallel()

	codec := NewCodec(testSecret, "agenda-test", time.Hour)
	token, _, err := codec.Issue(1, "joao", time.Now())
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	parts[1] = "eyJ1aWQiOjk5OX0" // {"uid":999}

	_, err = codec.Verify(strings.Join(parts, "."))
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsUnsignedAlgorithm(t *testing.T) {
	t.Parallel()

	codec := NewCodec(testSecret, "agenda-test", time.Hour)

	claims := NewClaims(7, "maria", "agenda-test", time.Hour, time.Now())
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = codec.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestTTLRemaining(t *testing.T) {
	t.Parallel()

	now := time.Now()
	claims := NewClaims(1, "joao", "agenda-test", time.Hour, now)

	require.InDelta(t, time.Hour, claims.TTLRemaining(now), float64(time.Second))
	require.LessOrEqual(t, claims.TTLRemaining(now.Add(2*time.Hour)), time.Duration(0))

	var empty Claims
	require.Equal(t, time.Duration(0), empty.TTLRemaining(now))
}
