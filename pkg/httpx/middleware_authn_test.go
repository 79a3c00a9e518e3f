package httpx

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/agendaapi/agenda/pkg/cryptox"
	"github.com/agendaapi/agenda/pkg/jwtx"
)

type fakeRevocations struct {
	revoked map[string]bool
	err     error
}

func (f *fakeRevocations) IsRevoked(_ context.Context, digest string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.revoked[digest], nil
}

func echoIdentity() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, _ := UserIDFromContext(r.Context())
		username, _ := UsernameFromContext(r.Context())
		WriteSuccess(w, http.StatusOK, map[string]any{"id": id, "username": username})
	})
}

func TestAuthn(t *testing.T) {
	t.Parallel()

	codec := jwtx.NewCodec("test-secret-please-rotate", "agenda-test", time.Hour)
	token, _, err := codec.Issue(42, "alice", time.Now())
	require.NoError(t, err)

	t.Run("missing authorization header", func(t *testing.T) {
		t.Parallel()

		h := Chain(echoIdentity(), Authn(codec, &fakeRevocations{}))
		req := httptest.NewRequest(http.MethodGet, "/v1/contacts", nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Body.String(), MsgMissingToken)
	})

	t.Run("malformed authorization header", func(t *testing.T) {
		t.Parallel()

		h := Chain(echoIdentity(), Authn(codec, &fakeRevocations{}))
		req := httptest.NewRequest(http.MethodGet, "/v1/contacts", nil)
		req.Header.Set("Authorization", "Basic abc123")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Body.String(), MsgMissingToken)
	})

	t.Run("invalid token", func(t *testing.T) {
		t.Parallel()

		h := Chain(echoIdentity(), Authn(codec, &fakeRevocations{}))
		req := httptest.NewRequest(http.MethodGet, "/v1/contacts", nil)
		req.Header.Set("Authorization", "Bearer not.a.token")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Body.String(), MsgInvalidToken)
	})

	t.Run("valid token passes and populates context", func(t *testing.T) {
		t.Parallel()

		h := Chain(echoIdentity(), Authn(codec, &fakeRevocations{}))
		req := httptest.NewRequest(http.MethodGet, "/v1/contacts", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), `"id":42`)
		require.Contains(t, rec.Body.String(), `"username":"alice"`)
	})

	t.Run("revoked token gets the invalid-token message", func(t *testing.T) {
		t.Parallel()

		revocations := &fakeRevocations{revoked: map[string]bool{
			cryptox.FingerprintToken(token): true,
		}}
		h := Chain(echoIdentity(), Authn(codec, revocations))
		req := httptest.NewRequest(http.MethodGet, "/v1/contacts", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Body.String(), MsgInvalidToken)
	})

	t.Run("revocation store outage fails closed", func(t *testing.T) {
		t.Parallel()

		revocations := &fakeRevocations{err: errors.New("connection refused")}
		h := Chain(echoIdentity(), Authn(codec, revocations))
		req := httptest.NewRequest(http.MethodGet, "/v1/contacts", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.Contains(t, rec.Body.String(), MsgInternal)
	})

	t.Run("raw token is available downstream for revocation", func(t *testing.T) {
		t.Parallel()

		var got string
		h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, _ = TokenFromContext(r.Context())
			WriteSuccess(w, http.StatusOK, nil)
		}), Authn(codec, &fakeRevocations{}))

		req := httptest.NewRequest(http.MethodPost, "/v1/users/logout", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, token, got)
	})
}
