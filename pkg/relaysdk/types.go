// Package relaysdk holds the wire types shared between the compute service
// and its clients.
package relaysdk

import "time"

// IntakeRequest is the generic data-endpoint payload.
type IntakeRequest struct {
	Email    string `json:"email"`
	Feedback string `json:"feedback"`
}

// IntakeResponse acknowledges an accepted payload.
type IntakeResponse struct {
	Message       string `json:"message"`
	ReceivedEmail string `json:"received_email"`
}

// SubmissionRequest creates a stored form submission.
type SubmissionRequest struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

// SubmissionResponse is a stored submission as returned by the service.
type SubmissionResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Message     string    `json:"message"`
	UserID      string    `json:"user_id"`
	UserEmail   string    `json:"user_email,omitempty"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// SubmissionListResponse wraps a page of submissions.
type SubmissionListResponse struct {
	Submissions []SubmissionResponse `json:"submissions"`
}

// ErrorResponse is the error body shape for all non-2xx responses.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}
