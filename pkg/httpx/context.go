package httpx

import (
	"context"

	"github.com/agendaapi/agenda/pkg/jwtx"
)

type ctxKey int

const (
	ctxKeyUserID ctxKey = iota
	ctxKeyUsername
	ctxKeyClaims
	ctxKeyToken
	ctxKeyPayload
)

// WithUserID stores the authenticated user's ID in the context.
func WithUserID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, ctxKeyUserID, id)
}

// UserIDFromContext returns the authenticated user's ID, or false when the
// request did not pass through the auth middleware.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(ctxKeyUserID).(int64)
	return id, ok
}

// WithUsername stores the authenticated username in the context.
func WithUsername(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, ctxKeyUsername, username)
}

// UsernameFromContext returns the authenticated username.
func UsernameFromContext(ctx context.Context) (string, bool) {
	u, ok := ctx.Value(ctxKeyUsername).(string)
	return u, ok
}

// WithClaims stores the verified token claims in the context.
func WithClaims(ctx context.Context, claims *jwtx.Claims) context.Context {
	return context.WithValue(ctx, ctxKeyClaims, claims)
}

// ClaimsFromContext returns the verified token claims.
func ClaimsFromContext(ctx context.Context) (*jwtx.Claims, bool) {
	c, ok := ctx.Value(ctxKeyClaims).(*jwtx.Claims)
	return c, ok
}

// WithToken stores the raw bearer token so logout can revoke it.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, ctxKeyToken, token)
}

// TokenFromContext returns the raw bearer token of the request.
func TokenFromContext(ctx context.Context) (string, bool) {
	t, ok := ctx.Value(ctxKeyToken).(string)
	return t, ok
}

// WithPayload stores the decoded JSON body after validation.
func WithPayload(ctx context.Context, payload map[string]any) context.Context {
	return context.WithValue(ctx, ctxKeyPayload, payload)
}

// PayloadFromContext returns the decoded JSON body. Handlers behind
// ValidateJSON can rely on the payload being present and well formed.
func PayloadFromContext(ctx context.Context) map[string]any {
	p, _ := ctx.Value(ctxKeyPayload).(map[string]any)
	return p
}
