package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/kindlinghq/kindling/internal/relay/service"
	"github.com/kindlinghq/kindling/internal/relay/store"
	"github.com/kindlinghq/kindling/pkg/httpx"
	"github.com/kindlinghq/kindling/pkg/jwtx"
	"github.com/kindlinghq/kindling/pkg/slogx"

	_ "github.com/kindlinghq/kindling/api/relay" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier // nil when no session public key is configured
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store             store.Store
	IntakeService     *service.IntakeService
	SubmissionService *service.SubmissionService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
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
	r.registerIntake()
	r.registerSubmissions()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
//
//	@title			Kindling Compute Service API
//	@version		0.1.0
//	@description	Generic compute backend for the Kindling starter application.
//	@description	Accepts data payloads and stores form submissions on behalf of the client.
//
//	@host			localhost:8081
//	@BasePath		/
//
//	@schemes		http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Session token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerIntake() {
	h := &DataHandler{IntakeService: r.IntakeService}

	// Public endpoint; moderate rate limit per IP.
	r.Mux.Handle("POST /api/data",
		httpx.Chain(http.HandlerFunc(h.HandlePost),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerSubmissions() {
	h := &SubmissionsHandler{SubmissionService: r.SubmissionService}

	// Creation works with or without a session; the record carries the
	// identity when one is presented.
	securedCreate := httpx.Chain(http.HandlerFunc(h.HandleCreate),
		httpx.OptionalAuthnMiddleware(r.verifier),
		httpx.RateLimitByIP(httpx.ModerateLimit),
	)

	// Listing is for signed-in readers only.
	securedList := httpx.Chain(http.HandlerFunc(h.HandleList),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyScope("submissions:read"),
		httpx.RateLimitByUser(httpx.LenientLimit),
	)

	r.Mux.Handle("POST /v1/submissions", securedCreate)
	r.Mux.Handle("GET /v1/submissions", securedList)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
