package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/emailauth/internal/auth/service"
	"github.com/aussiebroadwan/emailauth/internal/auth/store"
	"github.com/aussiebroadwan/emailauth/pkg/httpx"
	"github.com/aussiebroadwan/emailauth/pkg/jwtx"
	"github.com/aussiebroadwan/emailauth/pkg/slogx"

	_ "github.com/aussiebroadwan/emailauth/api/emailauth" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	ring         *jwtx.SecretRing
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store             store.Store
	CodeService       *service.CodeService
	TokenService      *service.TokenService
	AuthService       *service.AuthService
	IdentityService   *service.IdentityService
	MembershipService *service.MembershipService
}

func NewRouter(
	ring *jwtx.SecretRing,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		ring:         ring,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerUsers()
	r.registerResources()
	r.registerSystem()

	r.Mux.Handle("GET /swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Email Authentication Service API
//	@version		0.1.0
//	@description	Passwordless authentication: request a one-time code by email, exchange it for an API token,
//	@description	and present the token as a bearer credential. Tokens are checked against the database on
//	@description	every request, so revocation is immediate.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/emailauth
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				API token from /v1/authenticate. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// authed wraps h with authentication and a per-caller rate limit.
func (r *Router) authed(h http.Handler, limit httpx.RateLimitConfig, guards ...httpx.Middleware) http.Handler {
	mws := []httpx.Middleware{
		AuthnMiddleware(r.AuthService),
		httpx.RateLimitBySubject(limit),
	}
	return httpx.Chain(h, append(mws, guards...)...)
}

func (r *Router) registerAuth() {
	// POST /login - strict rate limit by IP (each call may send an email)
	r.Mux.Handle("POST /v1/login",
		httpx.Chain(&LoginHandler{CodeService: r.CodeService},
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /authenticate - strict rate limit by IP (brute force of codes)
	r.Mux.Handle("POST /v1/authenticate",
		httpx.Chain(&AuthenticateHandler{TokenService: r.TokenService},
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	r.Mux.Handle("POST /v1/logout",
		r.authed(&LogoutHandler{AuthService: r.AuthService}, httpx.ModerateLimit),
	)

	r.Mux.Handle("GET /v1/me", r.authed(MeHandler(), httpx.LenientLimit))
}

func (r *Router) registerUsers() {
	h := &UsersHandler{IdentityService: r.IdentityService}

	r.Mux.Handle("GET /v1/users/{userId}",
		r.authed(h, httpx.LenientLimit, RequireSelfOrAdmin("userId")),
	)
}

func (r *Router) registerResources() {
	h := &ResourceMembersHandler{MembershipService: r.MembershipService}

	r.Mux.Handle("GET /v1/resources/{resourceId}/members",
		r.authed(h, httpx.LenientLimit, RequireAdministersOrAdmin("resourceId")),
	)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /{$}",
		httpx.Chain(StatusHandler(),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.ring),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
