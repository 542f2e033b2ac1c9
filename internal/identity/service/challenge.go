package service

import (
	"context"
	"crypto/rand"
	"encoding/base32"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"sync/atomic"
	"time"

	"github.com/kindlinghq/kindling/internal/identity/domain"
	"github.com/kindlinghq/kindling/internal/identity/store"
	"github.com/kindlinghq/kindling/pkg/cryptox"
	"github.com/kindlinghq/kindling/pkg/idx"
	"github.com/pquerna/otp/hotp"
)

// DefaultChallengeTTL is the confirmation window for a one-time code.
const DefaultChallengeTTL = 5 * time.Minute

var (
	ErrProofUnknown     = errors.New("unknown verification proof")
	ErrProofConsumed    = errors.New("verification proof already used")
	ErrProofExpired     = errors.New("verification proof expired")
	ErrInvalidPhone     = errors.New("malformed phone number")
	ErrChallengeUnknown = errors.New("unknown challenge")
	ErrChallengeExpired = errors.New("challenge expired")
	ErrCodeMismatch     = errors.New("incorrect verification code")
	ErrTooManyAttempts  = errors.New("too many incorrect attempts")
)

// phonePattern accepts E.164-ish numbers: leading "+" and 7 to 15 digits.
var phonePattern = regexp.MustCompile(`^\+[0-9]{7,15}$`)

// ChallengeService runs the one-time-code half of phone sign-in: it consumes
// a verification proof, "delivers" a code (by logging it, this is a dev
// provider) and verifies confirmations against the stored hash.
type ChallengeService struct {
	Store        store.Store
	Logger       *slog.Logger
	Sessions     *SessionService
	ChallengeTTL time.Duration

	// CodeSecret seeds HOTP code generation. Codes are derived from a
	// monotonically increasing counter so consecutive challenges never
	// repeat within a run.
	CodeSecret  string
	codeCounter atomic.Uint64
}

// IssuedChallenge is the handle returned to the caller.
type IssuedChallenge struct {
	ID        string
	ExpiresAt time.Time
}

// IssueChallenge consumes the proof and opens a confirmation window for the
// phone number. The proof is spent regardless of whether code delivery
// succeeds; a second presentation always fails.
func (s *ChallengeService) IssueChallenge(ctx context.Context, phoneNumber, proofToken string) (IssuedChallenge, error) {
	if !phonePattern.MatchString(phoneNumber) {
		return IssuedChallenge{}, ErrInvalidPhone
	}

	now := time.Now().UTC()

	proof, err := s.Store.Proofs().ConsumeProof(ctx, cryptox.FingerprintToken(proofToken), now)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return IssuedChallenge{}, ErrProofUnknown
	case errors.Is(err, store.ErrProofConsumed):
		return IssuedChallenge{}, ErrProofConsumed
	case err != nil:
		return IssuedChallenge{}, fmt.Errorf("failed to consume proof: %w", err)
	}
	if proof.Expired(now) {
		return IssuedChallenge{}, ErrProofExpired
	}

	code, err := s.nextCode()
	if err != nil {
		return IssuedChallenge{}, fmt.Errorf("failed to generate code: %w", err)
	}

	codeHash, err := cryptox.HashCode(code)
	if err != nil {
		return IssuedChallenge{}, fmt.Errorf("failed to hash code: %w", err)
	}

	ttl := s.ChallengeTTL
	if ttl <= 0 {
		ttl = DefaultChallengeTTL
	}

	challenge := domain.PhoneChallenge{
		ID:          idx.New().String(),
		PhoneNumber: phoneNumber,
		CodeHash:    codeHash,
		ProofID:     proof.ID,
		CreatedAt:   now,
		ExpiresAt:   now.Add(ttl),
	}

	if err := s.Store.Challenges().CreateChallenge(ctx, challenge); err != nil {
		return IssuedChallenge{}, fmt.Errorf("failed to store challenge: %w", err)
	}

	// Stand-in for SMS delivery. Operators read the code off the log.
	s.Logger.Info("verification code issued",
		"challenge_id", challenge.ID,
		"phone_number", phoneNumber,
		"code", code,
	)

	return IssuedChallenge{ID: challenge.ID, ExpiresAt: challenge.ExpiresAt}, nil
}

// ConfirmCode checks the submitted code against the challenge. On success
// the challenge is spent and a session is established for the account owning
// the phone number (created on first sign-in).
func (s *ChallengeService) ConfirmCode(ctx context.Context, challengeID, code string) (EstablishedSession, error) {
	now := time.Now().UTC()

	challenge, err := s.Store.Challenges().GetChallenge(ctx, challengeID)
	if errors.Is(err, store.ErrNotFound) {
		return EstablishedSession{}, ErrChallengeUnknown
	}
	if err != nil {
		return EstablishedSession{}, fmt.Errorf("failed to load challenge: %w", err)
	}

	if challenge.Expired(now) {
		_ = s.Store.Challenges().DeleteChallenge(ctx, challengeID)
		return EstablishedSession{}, ErrChallengeExpired
	}
	if challenge.AttemptsExhausted() {
		_ = s.Store.Challenges().DeleteChallenge(ctx, challengeID)
		return EstablishedSession{}, ErrTooManyAttempts
	}

	if err := cryptox.VerifyCode(code, challenge.CodeHash); err != nil {
		updated, incErr := s.Store.Challenges().IncrementAttempts(ctx, challengeID)
		if incErr != nil {
			return EstablishedSession{}, fmt.Errorf("failed to record attempt: %w", incErr)
		}
		if updated.AttemptsExhausted() {
			_ = s.Store.Challenges().DeleteChallenge(ctx, challengeID)
			return EstablishedSession{}, ErrTooManyAttempts
		}
		return EstablishedSession{}, ErrCodeMismatch
	}

	// Spent on success: the handle is single-use.
	if err := s.Store.Challenges().DeleteChallenge(ctx, challengeID); err != nil {
		return EstablishedSession{}, fmt.Errorf("failed to spend challenge: %w", err)
	}

	return s.Sessions.EstablishForPhone(ctx, challenge.PhoneNumber)
}

func (s *ChallengeService) nextCode() (string, error) {
	counter := s.codeCounter.Add(1)
	return hotp.GenerateCode(s.CodeSecret, counter)
}

// NewCodeSecret generates a random base32 HOTP seed for code generation.
func NewCodeSecret() (string, error) {
	buf := make([]byte, 20)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate code secret: %w", err)
	}
	return base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(buf), nil
}
