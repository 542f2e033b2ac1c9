package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/kindlinghq/kindling/internal/identity/service"
	"github.com/kindlinghq/kindling/pkg/httpx"
	"github.com/kindlinghq/kindling/pkg/identitysdk"
	"github.com/kindlinghq/kindling/pkg/slogx"
)

// ChallengesHandler runs challenge issuance and code confirmation.
type ChallengesHandler struct {
	ChallengeService *service.ChallengeService
}

// HandleIssue handles POST /v1/challenges.
func (h *ChallengesHandler) HandleIssue(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req identitysdk.ChallengeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to parse request", "err", err)
		identitysdk.ErrInvalidRequest.WriteError(w)
		return
	}
	if req.PhoneNumber == "" || req.ProofToken == "" {
		identitysdk.ErrInvalidRequest.WriteError(w)
		return
	}

	issued, err := h.ChallengeService.IssueChallenge(ctx, req.PhoneNumber, req.ProofToken)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidPhone):
			identitysdk.ErrInvalidPhone.WriteError(w)
		case errors.Is(err, service.ErrProofUnknown):
			identitysdk.ErrInvalidProof.WriteError(w)
		case errors.Is(err, service.ErrProofConsumed):
			identitysdk.ErrProofConsumed.WriteError(w)
		case errors.Is(err, service.ErrProofExpired):
			identitysdk.ErrProofExpired.WriteError(w)
		default:
			log.Error("failed to issue challenge", "err", err)
			identitysdk.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, identitysdk.ChallengeResponse{
		ChallengeID: issued.ID,
		ExpiresIn:   int(time.Until(issued.ExpiresAt).Seconds()),
	})
}

// HandleConfirm handles POST /v1/challenges/{id}/confirm.
func (h *ChallengesHandler) HandleConfirm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	challengeID := r.PathValue("id")
	if challengeID == "" {
		identitysdk.ErrInvalidRequest.WriteError(w)
		return
	}

	var req identitysdk.ConfirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to parse request", "err", err)
		identitysdk.ErrInvalidRequest.WriteError(w)
		return
	}
	if req.Code == "" {
		identitysdk.ErrInvalidRequest.WriteError(w)
		return
	}

	established, err := h.ChallengeService.ConfirmCode(ctx, challengeID, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrChallengeUnknown):
			identitysdk.ErrInvalidHandle.WriteError(w)
		case errors.Is(err, service.ErrChallengeExpired):
			identitysdk.ErrExpiredHandle.WriteError(w)
		case errors.Is(err, service.ErrCodeMismatch):
			identitysdk.ErrInvalidCode.WriteError(w)
		case errors.Is(err, service.ErrTooManyAttempts):
			identitysdk.ErrTooManyAttempts.WriteError(w)
		default:
			log.Error("failed to confirm code", "challenge_id", challengeID, "err", err)
			identitysdk.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, sessionResponse(established))
}

func sessionResponse(established service.EstablishedSession) identitysdk.SessionResponse {
	return identitysdk.SessionResponse{
		SessionToken: established.Token,
		UserID:       established.Account.ID,
		Name:         established.Account.Name,
		Email:        established.Account.Email,
		PhoneNumber:  established.Account.PhoneNumber,
		ExpiresIn:    int(time.Until(established.ExpiresAt).Seconds()),
	}
}
