package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/kindlinghq/kindling/internal/identity/service"
	"github.com/kindlinghq/kindling/pkg/httpx"
	"github.com/kindlinghq/kindling/pkg/identitysdk"
	"github.com/kindlinghq/kindling/pkg/slogx"
)

// SessionHandler serves session inspection and sign-out.
type SessionHandler struct {
	SessionService *service.SessionService
}

// HandleGet handles GET /v1/session. Reports the session backing the bearer
// token, or invalid_token if it no longer stands.
func (h *SessionHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	raw := bearerToken(r)
	if raw == "" {
		identitysdk.ErrInvalidToken.WriteError(w)
		return
	}

	claims, account, err := h.SessionService.Validate(ctx, raw)
	if err != nil {
		if errors.Is(err, service.ErrInvalidSession) {
			identitysdk.ErrInvalidToken.WriteError(w)
			return
		}
		log.Error("failed to validate session", "err", err)
		identitysdk.ErrServerError.WriteError(w)
		return
	}

	expiresIn := 0
	if claims.ExpiresAt != nil {
		expiresIn = int(time.Until(claims.ExpiresAt.Time).Seconds())
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, identitysdk.SessionResponse{
		UserID:      account.ID,
		Name:        account.Name,
		Email:       account.Email,
		PhoneNumber: account.PhoneNumber,
		ExpiresIn:   expiresIn,
	})
}

// HandleSignOut handles POST /v1/signout. Revokes the bearer session;
// idempotent, a dead token still gets 204.
func (h *SessionHandler) HandleSignOut(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	raw := bearerToken(r)
	if raw == "" {
		identitysdk.ErrInvalidToken.WriteError(w)
		return
	}

	if err := h.SessionService.SignOut(ctx, raw); err != nil {
		log.Error("failed to sign out", "err", err)
		identitysdk.ErrServerError.WriteError(w)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(auth) > len(prefix) && strings.EqualFold(auth[:len(prefix)], prefix) {
		return auth[len(prefix):]
	}
	return ""
}
