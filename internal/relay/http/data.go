package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/kindlinghq/kindling/internal/relay/service"
	"github.com/kindlinghq/kindling/pkg/httpx"
	"github.com/kindlinghq/kindling/pkg/relaysdk"
	"github.com/kindlinghq/kindling/pkg/slogx"
)

// DataHandler accepts generic data payloads.
type DataHandler struct {
	IntakeService *service.IntakeService
}

// HandlePost handles POST /api/data
//
//	@Summary		Submit a data payload
//	@Description	Validates the payload and acknowledges receipt by echoing the accepted email.
//	@Tags			Data
//	@Accept			json
//	@Produce		json
//	@Param			request	body		relaysdk.IntakeRequest	true	"Payload"
//	@Success		200		{object}	relaysdk.IntakeResponse	"Acknowledgement"
//	@Failure		400		{object}	relaysdk.ErrorResponse	"Missing or invalid fields"
//	@Router			/api/data [post].
func (h *DataHandler) HandlePost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req relaysdk.IntakeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to parse request", "err", err)
		writeError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}

	result, err := h.IntakeService.Accept(service.IntakePayload{
		Email:    req.Email,
		Feedback: req.Feedback,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidPayload) {
			writeError(w, http.StatusBadRequest, "invalid_request", "Missing or invalid email or feedback")
			return
		}
		log.Error("failed to accept payload", "err", err)
		writeError(w, http.StatusInternalServerError, "server_error", "Internal server error")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, relaysdk.IntakeResponse{
		Message:       result.Message,
		ReceivedEmail: result.ReceivedEmail,
	})
}

func writeError(w http.ResponseWriter, status int, code, desc string) {
	httpx.WriteJSON(w, status, relaysdk.ErrorResponse{
		Error:            code,
		ErrorDescription: desc,
	})
}
