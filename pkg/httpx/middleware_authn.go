package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/agendaapi/agenda/pkg/cryptox"
	"github.com/agendaapi/agenda/pkg/jwtx"
	"github.com/agendaapi/agenda/pkg/slogx"
)

// RevocationChecker reports whether a token digest has been revoked.
// Implementations must return an error when the backing store cannot be
// reached, so the gate can fail closed.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, digest string) (bool, error)
}

// Authn guards a route behind bearer-token authentication. Requests pass
// only when the token carries a valid signature, has not expired, and has
// not been revoked. Verification runs before the revocation lookup so
// garbage tokens never hit the store.
func Authn(verifier jwtx.Verifier, revoked RevocationChecker) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				WriteError(w, http.StatusUnauthorized, MsgMissingToken)
				return
			}

			claims, err := verifier.Verify(token)
			if err != nil {
				WriteError(w, http.StatusUnauthorized, MsgInvalidToken)
				return
			}

			isRevoked, err := revoked.IsRevoked(r.Context(), cryptox.FingerprintToken(token))
			if err != nil {
				slogx.FromContext(r.Context()).Error("revocation check failed", "error", err)
				WriteError(w, http.StatusInternalServerError, MsgInternal)
				return
			}
			if isRevoked {
				// Same message as an invalid token, so callers cannot
				// distinguish a revoked token from a forged one.
				WriteError(w, http.StatusUnauthorized, MsgInvalidToken)
				return
			}

			ctx := WithClaims(r.Context(), claims)
			ctx = WithUserID(ctx, claims.UserID)
			ctx = WithUsername(ctx, claims.Username)
			ctx = WithToken(ctx, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", false
	}
	return token, true
}
