package domain

import "time"

// MaxConfirmAttempts is the number of incorrect codes tolerated per challenge
// before it is invalidated.
const MaxConfirmAttempts = 5

// PhoneChallenge is a pending one-time-code verification for a phone number.
// The code itself is never stored, only its argon2id hash. The challenge ID
// doubles as the opaque handle returned to the caller.
type PhoneChallenge struct {
	ID          string // ULID, also the confirmation handle
	PhoneNumber string // normalized, digits with leading "+"
	CodeHash    string // argon2id PHC hash of the one-time code
	ProofID     string // proof consumed to issue this challenge
	Attempts    int    // failed confirmation attempts so far

	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the challenge window has closed.
func (c PhoneChallenge) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}

// AttemptsExhausted reports whether the incorrect-code cap has been reached.
func (c PhoneChallenge) AttemptsExhausted() bool {
	return c.Attempts >= MaxConfirmAttempts
}
