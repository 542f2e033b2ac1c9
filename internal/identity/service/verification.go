package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/kindlinghq/kindling/internal/identity/domain"
	"github.com/kindlinghq/kindling/internal/identity/store"
	"github.com/kindlinghq/kindling/pkg/cryptox"
	"github.com/kindlinghq/kindling/pkg/idx"
)

// DefaultProofTTL is how long an unconsumed human-verification proof stays
// valid. Kept short since a proof only bridges widget render and challenge
// issuance.
const DefaultProofTTL = 2 * time.Minute

// VerificationService issues invisible human-verification proofs. The
// emulator trusts every caller; the value of the endpoint is exercising the
// single-use and expiry semantics the real provider enforces.
type VerificationService struct {
	Store    store.Store
	Logger   *slog.Logger
	ProofTTL time.Duration
}

// IssuedProof carries the raw token back to the caller. Only its
// fingerprint is persisted.
type IssuedProof struct {
	Token     string
	ExpiresAt time.Time
}

func (s *VerificationService) IssueProof(ctx context.Context, mount string) (IssuedProof, error) {
	ttl := s.ProofTTL
	if ttl <= 0 {
		ttl = DefaultProofTTL
	}

	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return IssuedProof{}, fmt.Errorf("failed to generate proof token: %w", err)
	}

	now := time.Now().UTC()
	proof := domain.Proof{
		ID:        idx.New().String(),
		TokenHash: cryptox.FingerprintToken(token),
		Mount:     mount,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}

	if err := s.Store.Proofs().CreateProof(ctx, proof); err != nil {
		return IssuedProof{}, fmt.Errorf("failed to store proof: %w", err)
	}

	s.Logger.Debug("issued verification proof", "proof_id", proof.ID, "mount", mount)

	return IssuedProof{Token: token, ExpiresAt: proof.ExpiresAt}, nil
}
