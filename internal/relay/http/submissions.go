package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/kindlinghq/kindling/internal/relay/domain"
	"github.com/kindlinghq/kindling/internal/relay/service"
	"github.com/kindlinghq/kindling/pkg/httpx"
	"github.com/kindlinghq/kindling/pkg/relaysdk"
	"github.com/kindlinghq/kindling/pkg/slogx"
)

// SubmissionsHandler stores and lists form submissions.
type SubmissionsHandler struct {
	SubmissionService *service.SubmissionService
}

// HandleCreate handles POST /v1/submissions
//
//	@Summary		Store a form submission
//	@Description	Persists a submission. When a session token is presented the record carries the
//	@Description	account identity; otherwise it is labeled anonymous.
//	@Tags			Submissions
//	@Accept			json
//	@Produce		json
//	@Param			request	body		relaysdk.SubmissionRequest	true	"Submission"
//	@Success		201		{object}	relaysdk.SubmissionResponse	"Stored submission"
//	@Failure		400		{object}	relaysdk.ErrorResponse		"Missing or invalid fields"
//	@Router			/v1/submissions [post].
func (h *SubmissionsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req relaysdk.SubmissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to parse request", "err", err)
		writeError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}

	// Identity comes from the verified session, not the payload.
	userID := httpx.UserIDFromCtx(ctx)
	userEmail := httpx.EmailFromCtx(ctx)

	sub, err := h.SubmissionService.Create(ctx, service.NewSubmission{
		Name:    req.Name,
		Message: req.Message,
	}, userID, userEmail)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPayload) {
			writeError(w, http.StatusBadRequest, "invalid_request", "Missing or invalid name or message")
			return
		}
		log.Error("failed to store submission", "err", err)
		writeError(w, http.StatusInternalServerError, "server_error", "Internal server error")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, submissionResponse(sub))
}

// HandleList handles GET /v1/submissions
//
//	@Summary		List stored submissions
//	@Description	Returns submissions newest-first. Requires the submissions:read scope.
//	@Tags			Submissions
//	@Security		BearerAuth
//	@Produce		json
//	@Param			limit	query		int								false	"Maximum records to return"
//	@Success		200		{object}	relaysdk.SubmissionListResponse	"Submissions"
//	@Failure		401		{object}	relaysdk.ErrorResponse			"Invalid or missing session token"
//	@Router			/v1/submissions [get].
func (h *SubmissionsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	subs, err := h.SubmissionService.List(ctx, limit)
	if err != nil {
		log.Error("failed to list submissions", "err", err)
		writeError(w, http.StatusInternalServerError, "server_error", "Internal server error")
		return
	}

	out := relaysdk.SubmissionListResponse{
		Submissions: make([]relaysdk.SubmissionResponse, 0, len(subs)),
	}
	for _, sub := range subs {
		out.Submissions = append(out.Submissions, submissionResponse(sub))
	}

	httpx.WriteJSON(w, http.StatusOK, out)
}

func submissionResponse(sub domain.Submission) relaysdk.SubmissionResponse {
	return relaysdk.SubmissionResponse{
		ID:          sub.ID,
		Name:        sub.Name,
		Message:     sub.Message,
		UserID:      sub.UserID,
		UserEmail:   sub.UserEmail,
		SubmittedAt: sub.SubmittedAt,
	}
}
