package http

import (
	"encoding/json"
	"net/http"

	"github.com/kindlinghq/kindling/internal/identity/service"
	"github.com/kindlinghq/kindling/pkg/httpx"
	"github.com/kindlinghq/kindling/pkg/identitysdk"
	"github.com/kindlinghq/kindling/pkg/slogx"
)

// FederatedHandler establishes sessions from verified upstream identities.
// The SDK verifies the upstream ID token against the provider JWKS before
// calling this, so the endpoint trusts its caller. That trust is acceptable
// only because this provider is a development stand-in.
type FederatedHandler struct {
	SessionService *service.SessionService
}

// HandleEstablish handles POST /v1/federated.
func (h *FederatedHandler) HandleEstablish(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req identitysdk.FederatedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to parse request", "err", err)
		identitysdk.ErrInvalidRequest.WriteError(w)
		return
	}
	if req.Subject == "" {
		identitysdk.ErrInvalidRequest.WriteError(w)
		return
	}

	established, err := h.SessionService.EstablishFederated(ctx, req.Subject, req.Email, req.Name)
	if err != nil {
		log.Error("failed to establish federated session", "err", err)
		identitysdk.ErrServerError.WriteError(w)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, sessionResponse(established))
}
