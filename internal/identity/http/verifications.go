package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/kindlinghq/kindling/internal/identity/service"
	"github.com/kindlinghq/kindling/pkg/httpx"
	"github.com/kindlinghq/kindling/pkg/identitysdk"
	"github.com/kindlinghq/kindling/pkg/slogx"
)

// VerificationsHandler issues invisible human-verification proofs.
type VerificationsHandler struct {
	VerificationService *service.VerificationService
}

// HandleIssue handles POST /v1/verifications.
func (h *VerificationsHandler) HandleIssue(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req identitysdk.ProofRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to parse request", "err", err)
		identitysdk.ErrInvalidRequest.WriteError(w)
		return
	}
	if req.Mount == "" {
		identitysdk.ErrInvalidRequest.WriteError(w)
		return
	}

	proof, err := h.VerificationService.IssueProof(ctx, req.Mount)
	if err != nil {
		log.Error("failed to issue proof", "err", err)
		identitysdk.ErrServerError.WriteError(w)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, identitysdk.ProofResponse{
		ProofToken: proof.Token,
		ExpiresIn:  int(time.Until(proof.ExpiresAt).Seconds()),
	})
}
