package http

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/kindlinghq/kindling/internal/identity/service"
	"github.com/kindlinghq/kindling/pkg/identitysdk"
	"github.com/kindlinghq/kindling/pkg/slogx"
)

// AdminHandler manages custom claims. Guarded by a pre-shared operator token
// rather than a session, mirroring how claim grants run out-of-band of the
// sign-in flow.
type AdminHandler struct {
	SessionService *service.SessionService
	AdminToken     string
}

// HandleSetClaim handles POST /v1/admin/claims.
func (h *AdminHandler) HandleSetClaim(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if h.AdminToken == "" {
		identitysdk.ErrInvalidToken.WriteError(w)
		return
	}
	provided := r.Header.Get("X-Admin-Token")
	if subtle.ConstantTimeCompare([]byte(provided), []byte(h.AdminToken)) != 1 {
		log.Warn("admin claim request with bad operator token")
		identitysdk.ErrInvalidToken.WriteError(w)
		return
	}

	var req identitysdk.AdminClaimRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to parse request", "err", err)
		identitysdk.ErrInvalidRequest.WriteError(w)
		return
	}
	if req.UserID == "" {
		identitysdk.ErrInvalidRequest.WriteError(w)
		return
	}

	if err := h.SessionService.SetAdminClaim(ctx, req.UserID); err != nil {
		if errors.Is(err, service.ErrAccountUnknown) {
			identitysdk.ErrInvalidRequest.WriteError(w)
			return
		}
		log.Error("failed to set admin claim", "err", err)
		identitysdk.ErrServerError.WriteError(w)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
