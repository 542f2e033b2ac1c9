package domain

import "time"

// Proof is a single-use human-verification record. The raw proof token is
// handed to the caller once; only its fingerprint is stored. A proof is
// consumed atomically on the first challenge issuance.
type Proof struct {
	ID        string // ULID
	TokenHash string // SHA-256 fingerprint of the raw proof token
	Mount     string // widget mount point the proof was issued for

	ConsumedAt *time.Time
	CreatedAt  time.Time
	ExpiresAt  time.Time
}

// Consumed reports whether the proof has already been presented.
func (p Proof) Consumed() bool {
	return p.ConsumedAt != nil
}

// Expired reports whether the proof has outlived its validity window.
func (p Proof) Expired(now time.Time) bool {
	return now.After(p.ExpiresAt)
}
