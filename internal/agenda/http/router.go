package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/agendaapi/agenda/internal/agenda/denylist"
	"github.com/agendaapi/agenda/internal/agenda/service"
	"github.com/agendaapi/agenda/internal/agenda/store"
	"github.com/agendaapi/agenda/pkg/httpx"
	"github.com/agendaapi/agenda/pkg/jwtx"
	"github.com/agendaapi/agenda/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	denylist     denylist.Store
	env          string
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store          store.Store
	UserService    *service.UserService
	ContactService *service.ContactService
}

func NewRouter(
	verifier jwtx.Verifier,
	dl denylist.Store,
	env, buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		denylist:     dl,
		env:          env,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.Recover(r.env),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerUsers()
	r.registerContacts()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerUsers() {
	h := &UsersHandler{UserService: r.UserService}

	// POST /v1/users - public signup, strict rate limit by IP
	r.Mux.Handle("POST /v1/users",
		httpx.Chain(http.HandlerFunc(h.HandleRegister),
			httpx.RateLimitByIP(httpx.StrictLimit),
			httpx.ValidateJSON(registerRules()...),
		),
	)

	// POST /v1/users/login - credential check, strict rate limit by IP
	r.Mux.Handle("POST /v1/users/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIP(httpx.StrictLimit),
			httpx.ValidateJSON(loginRules()...),
		),
	)

	// POST /v1/users/logout - needs a live token to revoke
	r.Mux.Handle("POST /v1/users/logout",
		httpx.Chain(http.HandlerFunc(h.HandleLogout),
			httpx.Authn(r.verifier, r.denylist),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	// PATCH /v1/users/password - body is validated before the token so the
	// caller gets all field errors even with a stale token in hand
	r.Mux.Handle("PATCH /v1/users/password",
		httpx.Chain(http.HandlerFunc(h.HandleChangePassword),
			httpx.ValidateJSON(passwordRules()...),
			httpx.Authn(r.verifier, r.denylist),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerContacts() {
	h := &ContactsHandler{ContactService: r.ContactService}

	r.Mux.Handle("POST /v1/contacts",
		httpx.Chain(http.HandlerFunc(h.HandleCreate),
			httpx.ValidateJSON(contactRules()...),
			httpx.Authn(r.verifier, r.denylist),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	r.Mux.Handle("GET /v1/contacts",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			httpx.Authn(r.verifier, r.denylist),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)

	r.Mux.Handle("DELETE /v1/contacts/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleDelete),
			httpx.Authn(r.verifier, r.denylist),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerSystem() {
	// Health probes are polled by orchestrators, keep limits lenient
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.store, r.denylist),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
