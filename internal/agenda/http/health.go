package http

import (
	"net/http"
	"time"

	"github.com/agendaapi/agenda/internal/agenda/denylist"
	"github.com/agendaapi/agenda/internal/agenda/store"
	"github.com/agendaapi/agenda/pkg/httpx"
	"github.com/agendaapi/agenda/pkg/slogx"
)

// LivezHandler answers liveness probes without touching any dependency.
func LivezHandler(startTime time.Time, version string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteSuccess(w, http.StatusOK, map[string]any{
			"status":  "ok",
			"version": version,
			"uptime":  time.Since(startTime).String(),
		})
	})
}

// ReadyzHandler answers readiness probes by checking the database and the
// denylist. Either one down means the service cannot admit traffic safely.
func ReadyzHandler(st store.Store, dl denylist.Store) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		checks := map[string]string{
			"database": "ok",
			"denylist": "ok",
		}
		ready := true

		if err := st.Ping(r.Context()); err != nil {
			slogx.FromContext(r.Context()).Warn("readiness: database down", "error", err)
			checks["database"] = "unavailable"
			ready = false
		}
		if err := dl.Ping(r.Context()); err != nil {
			slogx.FromContext(r.Context()).Warn("readiness: denylist down", "error", err)
			checks["denylist"] = "unavailable"
			ready = false
		}

		if !ready {
			httpx.WriteErrorData(w, http.StatusServiceUnavailable, "not ready", checks)
			return
		}
		httpx.WriteSuccess(w, http.StatusOK, map[string]any{"status": "ok", "checks": checks})
	})
}
