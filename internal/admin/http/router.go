package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/keystead/identity-admin/internal/admin/domain"
	"github.com/keystead/identity-admin/internal/admin/service"
	"github.com/keystead/identity-admin/internal/admin/store"
	"github.com/keystead/identity-admin/pkg/httpx"
	"github.com/keystead/identity-admin/pkg/jwtx"
	"github.com/keystead/identity-admin/pkg/slogx"

	_ "github.com/keystead/identity-admin/api/admin" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	keys         *jwtx.KeySet
	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store store.Store

	ClientsService           *service.ClientsService
	ResourcesService         *service.ResourcesService
	ScopesService            *service.ScopesService
	IdentityResourcesService *service.IdentityResourcesService
	UsersService             *service.UsersService
	BecomeAdminService       *service.BecomeAdminService
	AgentTypesService        *service.AgentTypesService
}

func NewRouter(
	keys *jwtx.KeySet,
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		keys:         keys,
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerClients()
	r.registerResources()
	r.registerScopes()
	r.registerIdentityResources()
	r.registerUsers()
	r.registerAgentTypes()
	r.registerBecomeAdmin()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

func (r *Router) registerSystem() {
	// Monitoring systems may poll frequently, keep limits lenient.
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.keys),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Identity Admin Registry API
//	@version		0.1.0
//	@description	Administrative registry for an OAuth2/OIDC identity provider:
//	@description	clients, API resources, scopes, identity resources, users
//	@description	and the administrator role binding.
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token issued by the identity provider. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// secured wraps a registry handler with the standard admin chain: verified
// bearer token, administrator role, per-user rate limit.
func (r *Router) secured(h http.HandlerFunc) http.Handler {
	return httpx.Chain(h,
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyRole(domain.AdminRole),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)
}

func (r *Router) registerClients() {
	h := &ClientsHandler{Service: r.ClientsService}

	r.Mux.Handle("GET /Clients", r.secured(h.HandleList))
	r.Mux.Handle("POST /Clients", r.secured(h.HandleCreate))
	r.Mux.Handle("PUT /Clients", r.secured(h.HandleUpdate))
	r.Mux.Handle("DELETE /Clients", r.secured(h.HandleDelete))
}

func (r *Router) registerResources() {
	h := &ResourcesHandler{Service: r.ResourcesService}

	r.Mux.Handle("GET /Resources", r.secured(h.HandleList))
	r.Mux.Handle("POST /Resources", r.secured(h.HandleCreate))
	r.Mux.Handle("PUT /Resources", r.secured(h.HandleUpdate))
	r.Mux.Handle("DELETE /Resources", r.secured(h.HandleDelete))
}

func (r *Router) registerScopes() {
	h := &ScopesHandler{Service: r.ScopesService}

	r.Mux.Handle("GET /Scopes", r.secured(h.HandleList))
	r.Mux.Handle("POST /Scopes", r.secured(h.HandleCreate))
	r.Mux.Handle("PUT /Scopes", r.secured(h.HandleUpdate))
	r.Mux.Handle("DELETE /Scopes", r.secured(h.HandleDelete))
}

func (r *Router) registerIdentityResources() {
	h := &IdentityResourcesHandler{Service: r.IdentityResourcesService}

	r.Mux.Handle("GET /IdentityResources", r.secured(h.HandleList))
	r.Mux.Handle("POST /IdentityResources", r.secured(h.HandleCreate))
	r.Mux.Handle("PUT /IdentityResources", r.secured(h.HandleUpdate))
	r.Mux.Handle("DELETE /IdentityResources", r.secured(h.HandleDelete))
}

func (r *Router) registerUsers() {
	h := &UsersHandler{Service: r.UsersService}

	r.Mux.Handle("GET /Users", r.secured(h.HandleList))
	r.Mux.Handle("POST /Users", r.secured(h.HandleCreate))
	r.Mux.Handle("PUT /Users", r.secured(h.HandleUpdate))
	r.Mux.Handle("DELETE /Users", r.secured(h.HandleDelete))

	// Email confirmation is reached from a link, before the account can log
	// in, so it is anonymous. Strict IP limit instead.
	r.Mux.Handle("POST /ConfirmEmail",
		httpx.Chain(http.HandlerFunc(h.HandleConfirmEmail),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerAgentTypes() {
	h := &AgentTypesHandler{Service: r.AgentTypesService}

	r.Mux.Handle("GET /AgentTypes",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerBecomeAdmin() {
	h := &BecomeAdminHandler{Service: r.BecomeAdminService}

	// Authentication only: the whole point is that the caller does not hold
	// the admin role yet.
	r.Mux.Handle("GET /BecomeAdmin",
		httpx.Chain(http.HandlerFunc(h.HandleClaim),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.StrictLimit),
		),
	)
}
