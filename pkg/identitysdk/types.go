package identitysdk

// Wire types shared between the identity service handlers and this SDK.

// ProofRequest asks for an invisible human-verification proof bound to a
// widget mount point.
type ProofRequest struct {
	Mount string `json:"mount"`
}

// ProofResponse carries a single-use proof token.
type ProofResponse struct {
	ProofToken string `json:"proof_token"`
	ExpiresIn  int    `json:"expires_in"` // seconds
}

// ChallengeRequest starts a phone sign-in by requesting a one-time code.
type ChallengeRequest struct {
	PhoneNumber string `json:"phone_number"`
	ProofToken  string `json:"proof_token"`
}

// ChallengeResponse returns the opaque handle required to confirm the code.
type ChallengeResponse struct {
	ChallengeID string `json:"challenge_id"`
	ExpiresIn   int    `json:"expires_in"` // seconds
}

// ConfirmRequest submits the one-time code for a previously issued challenge.
type ConfirmRequest struct {
	Code string `json:"code"`
}

// FederatedRequest establishes a session from a verified upstream OIDC
// identity. The SDK verifies the upstream ID token before calling this.
type FederatedRequest struct {
	Subject string `json:"subject"`
	Email   string `json:"email"`
	Name    string `json:"name"`
}

// SessionResponse is returned whenever the provider establishes or reports
// a session.
type SessionResponse struct {
	SessionToken string `json:"session_token,omitempty"`
	UserID       string `json:"user_id"`
	Name         string `json:"name,omitempty"`
	Email        string `json:"email,omitempty"`
	PhoneNumber  string `json:"phone_number,omitempty"`
	ExpiresIn    int    `json:"expires_in"` // seconds
}

// AdminClaimRequest grants the admin custom claim to an account.
type AdminClaimRequest struct {
	UserID string `json:"user_id"`
}

// HealthResponse reports service health for the probe endpoints.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks carries per-dependency readiness states.
type HealthChecks struct {
	Database string `json:"database,omitempty"`
}
