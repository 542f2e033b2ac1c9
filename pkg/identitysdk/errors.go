package identitysdk

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Provider error codes shared between the identity service and this SDK.
const (
	ErrorCodeInvalidRequest  = "invalid_request"
	ErrorCodeInvalidProof    = "invalid_proof"
	ErrorCodeProofConsumed   = "proof_consumed"
	ErrorCodeProofExpired    = "proof_expired"
	ErrorCodeInvalidPhone    = "invalid_phone"
	ErrorCodeInvalidHandle   = "invalid_challenge"
	ErrorCodeExpiredHandle   = "challenge_expired"
	ErrorCodeInvalidCode     = "invalid_code"
	ErrorCodeTooManyAttempts = "too_many_attempts"
	ErrorCodeInvalidToken    = "invalid_token"
	ErrorCodeServerError     = "server_error"
)

// ProviderError is the wire error shape of the identity provider. It
// implements the error interface and is used both by the service (to write
// HTTP responses) and by this SDK (to represent failures). The description
// is surfaced to users verbatim; callers should not parse it.
type ProviderError struct {
	// StatusCode is the HTTP status code for this error
	StatusCode int `json:"-"`

	// Code is the machine-readable error code (e.g., "invalid_code")
	Code string `json:"error"`

	// Description is a human-readable description of the error
	Description string `json:"error_description"`
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// WriteError writes this ProviderError to an HTTP response writer.
func (e *ProviderError) WriteError(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":             e.Code,
		"error_description": e.Description,
	})
}

var (
	// ErrInvalidRequest is returned for malformed or incomplete requests.
	ErrInvalidRequest = &ProviderError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "the request is malformed or missing required parameters",
	}

	// ErrInvalidProof is returned when the human-verification proof is
	// unknown or has already been invalidated.
	ErrInvalidProof = &ProviderError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidProof,
		Description: "human verification failed, please try again",
	}

	// ErrProofConsumed is returned when a proof is presented a second time.
	ErrProofConsumed = &ProviderError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeProofConsumed,
		Description: "verification proof already used, please verify again",
	}

	// ErrProofExpired is returned when a proof outlived its validity window.
	ErrProofExpired = &ProviderError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeProofExpired,
		Description: "verification expired, please verify again",
	}

	// ErrInvalidPhone is returned for phone numbers the provider rejects.
	ErrInvalidPhone = &ProviderError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidPhone,
		Description: "malformed phone number",
	}

	// ErrInvalidHandle is returned when confirming against an unknown or
	// superseded challenge handle.
	ErrInvalidHandle = &ProviderError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidHandle,
		Description: "unknown or stale verification challenge",
	}

	// ErrExpiredHandle is returned when the challenge outlived its window.
	ErrExpiredHandle = &ProviderError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeExpiredHandle,
		Description: "verification challenge expired, request a new code",
	}

	// ErrInvalidCode is returned when the one-time code does not match.
	ErrInvalidCode = &ProviderError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidCode,
		Description: "incorrect verification code",
	}

	// ErrTooManyAttempts is returned once the per-challenge attempt cap is hit.
	ErrTooManyAttempts = &ProviderError{
		StatusCode:  http.StatusTooManyRequests,
		Code:        ErrorCodeTooManyAttempts,
		Description: "too many incorrect attempts, request a new code",
	}

	// ErrInvalidToken is returned when the session token is missing, invalid,
	// expired or revoked.
	ErrInvalidToken = &ProviderError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidToken,
		Description: "the session token is missing, invalid, expired or revoked",
	}

	// ErrServerError is returned for unexpected provider-side conditions.
	ErrServerError = &ProviderError{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeServerError,
		Description: "internal server error",
	}
)

// parseErrorResponse turns a non-2xx HTTP response into a *ProviderError.
// Returns nil for 2xx responses.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var errResp struct {
		Error            string `json:"error"`
		ErrorDescription string `json:"error_description"`
	}
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &ProviderError{
			StatusCode:  resp.StatusCode,
			Code:        errResp.Error,
			Description: errResp.ErrorDescription,
		}
	}

	// Fallback: create generic error from status code
	return &ProviderError{
		StatusCode:  resp.StatusCode,
		Code:        ErrorCodeServerError,
		Description: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
