package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/kindlinghq/kindling/internal/identity/service"
	"github.com/kindlinghq/kindling/pkg/httpx"
	"github.com/kindlinghq/kindling/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	// AdminToken guards the claim-management endpoint. Empty disables it.
	adminToken string

	VerificationService *service.VerificationService
	ChallengeService    *service.ChallengeService
	SessionService      *service.SessionService
}

func NewRouter(buildVersion, adminToken string, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		adminToken:   adminToken,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerSignIn()
	r.registerSession()
	r.registerAdmin()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerSignIn() {
	verificationsHandler := &VerificationsHandler{VerificationService: r.VerificationService}
	challengesHandler := &ChallengesHandler{ChallengeService: r.ChallengeService}

	// Proof issuance is cheap; lenient limit.
	r.Mux.Handle("POST /v1/verifications",
		httpx.Chain(http.HandlerFunc(verificationsHandler.HandleIssue),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	// Challenge issuance triggers code delivery; strict limit per IP.
	r.Mux.Handle("POST /v1/challenges",
		httpx.Chain(http.HandlerFunc(challengesHandler.HandleIssue),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// Confirmation is brute-forceable; strict limit per IP on top of the
	// per-challenge attempt cap.
	r.Mux.Handle("POST /v1/challenges/{id}/confirm",
		httpx.Chain(http.HandlerFunc(challengesHandler.HandleConfirm),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	federatedHandler := &FederatedHandler{SessionService: r.SessionService}
	r.Mux.Handle("POST /v1/federated",
		httpx.Chain(http.HandlerFunc(federatedHandler.HandleEstablish),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerSession() {
	h := &SessionHandler{SessionService: r.SessionService}

	r.Mux.Handle("GET /v1/session",
		httpx.Chain(http.HandlerFunc(h.HandleGet),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("POST /v1/signout",
		httpx.Chain(http.HandlerFunc(h.HandleSignOut),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerAdmin() {
	h := &AdminHandler{
		SessionService: r.SessionService,
		AdminToken:     r.adminToken,
	}

	r.Mux.Handle("POST /v1/admin/claims",
		httpx.Chain(http.HandlerFunc(h.HandleSetClaim),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
