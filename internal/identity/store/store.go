package store

import (
	"context"
	"errors"
	"time"

	"github.com/kindlinghq/kindling/internal/identity/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")

	// ErrProofConsumed is returned by ConsumeProof when the proof was
	// already presented. It is distinct from ErrNotFound so the service can
	// report "already used" rather than "unknown".
	ErrProofConsumed = errors.New("store: proof consumed")
)

// Store is the root data access interface for the identity emulator.
// Concrete drivers implement this; the emulator ships a memory driver since
// its state is intentionally ephemeral.
type Store interface {
	Proofs() Proofs
	Challenges() Challenges
	Accounts() Accounts
	Revocations() Revocations

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the backing store is still usable.
	Ping(ctx context.Context) error
}

type Proofs interface {
	// CreateProof stores a freshly issued proof (token is stored hashed).
	CreateProof(ctx context.Context, p domain.Proof) error

	// ConsumeProof atomically marks the proof identified by tokenHash as
	// consumed and returns it. Returns ErrProofConsumed if it was already
	// presented, ErrNotFound if no such proof exists. Expiry is left to the
	// caller so it can distinguish expired from unknown.
	ConsumeProof(ctx context.Context, tokenHash string, now time.Time) (domain.Proof, error)

	// DeleteExpiredProofs is housekeeping.
	DeleteExpiredProofs(ctx context.Context, now time.Time) error
}

type Challenges interface {
	// CreateChallenge stores a new phone challenge. Any earlier pending
	// challenge for the same phone number is superseded (deleted), so only
	// the most recent handle confirms.
	CreateChallenge(ctx context.Context, c domain.PhoneChallenge) error

	// GetChallenge fetches a challenge by its handle.
	GetChallenge(ctx context.Context, id string) (domain.PhoneChallenge, error)

	// IncrementAttempts bumps the failed attempt counter and returns the
	// updated challenge.
	IncrementAttempts(ctx context.Context, id string) (domain.PhoneChallenge, error)

	// DeleteChallenge removes a challenge (after success or exhaustion).
	DeleteChallenge(ctx context.Context, id string) error

	// DeleteExpiredChallenges is housekeeping.
	DeleteExpiredChallenges(ctx context.Context, now time.Time) error
}

type Accounts interface {
	// GetAccountByID fetches an account by id.
	GetAccountByID(ctx context.Context, id string) (domain.Account, error)

	// GetAccountByPhone fetches an account by normalized phone number.
	GetAccountByPhone(ctx context.Context, phone string) (domain.Account, error)

	// GetAccountBySubject fetches an account by upstream OIDC subject.
	GetAccountBySubject(ctx context.Context, subject string) (domain.Account, error)

	// CreateAccount inserts a new account (id is provided via ULID).
	CreateAccount(ctx context.Context, a domain.Account) error

	// UpdateAccount replaces mutable profile fields and bumps updated_at.
	UpdateAccount(ctx context.Context, a domain.Account) error

	// SetAdmin flips the admin claim for an account.
	SetAdmin(ctx context.Context, id string, admin bool) error
}

type Revocations interface {
	// RevokeSession records a revoked session id until its expiry.
	RevokeSession(ctx context.Context, sid string, expiresAt time.Time) error

	// IsSessionRevoked reports whether the session id has been revoked.
	IsSessionRevoked(ctx context.Context, sid string) (bool, error)

	// DeleteExpiredRevocations is housekeeping.
	DeleteExpiredRevocations(ctx context.Context, now time.Time) error
}
