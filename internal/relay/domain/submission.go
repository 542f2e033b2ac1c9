package domain

import "time"

// AnonymousUserID labels submissions made without a session.
const AnonymousUserID = "anonymous"

// Submission is a stored form submission. SubmittedAt is assigned
// server-side at acceptance time; client clocks are not trusted.
type Submission struct {
	ID        string // ULID
	Name      string
	Message   string
	UserID    string // account id, or AnonymousUserID
	UserEmail string // empty for anonymous submissions

	SubmittedAt time.Time
}
