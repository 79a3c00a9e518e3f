package httpx

import (
	"net/http"
	"runtime/debug"

	"github.com/agendaapi/agenda/pkg/slogx"
)

// Recover converts handler panics into a 500 envelope instead of a dropped
// connection. Outside production the panic value is echoed in the response
// body to speed up debugging.
func Recover(env string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					slogx.FromContext(r.Context()).Error("panic recovered",
						"panic", rec,
						"stack", string(debug.Stack()),
					)
					if env != "prod" {
						WriteErrorData(w, http.StatusInternalServerError, MsgInternal, map[string]any{"details": rec})
						return
					}
					WriteError(w, http.StatusInternalServerError, MsgInternal)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
