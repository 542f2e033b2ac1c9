package domain

import "time"

// Account is a signed-up identity. Phone sign-in creates accounts keyed by
// phone number; federated sign-in creates them keyed by the upstream subject.
type Account struct {
	ID          string // ULID
	PhoneNumber string // empty for federated-only accounts
	Subject     string // upstream OIDC subject, empty for phone-only accounts
	Email       string
	Name        string
	Admin       bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
