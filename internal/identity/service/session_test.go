package service

import (
	"context"
	"log/slog"
	"testing"

	"github.com/kindlinghq/kindling/internal/identity/store/drivers/memory"
	"github.com/kindlinghq/kindling/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func newSessionService(t *testing.T) *SessionService {
	t.Helper()

	signer, err := jwtx.NewEdDSASigner("test-key")
	require.NoError(t, err)

	return &SessionService{
		Store:    memory.New(),
		Logger:   slog.Default(),
		Signer:   signer,
		Verifier: jwtx.NewEdDSAVerifier(signer.Public()),
		Issuer:   "http://localhost:9096",
	}
}

func TestValidateMintedSession(t *testing.T) {
	s := newSessionService(t)
	ctx := context.Background()

	established, err := s.EstablishForPhone(ctx, "+15551234567")
	require.NoError(t, err)

	claims, account, err := s.Validate(ctx, established.Token)
	require.NoError(t, err)
	require.Equal(t, established.Account.ID, claims.Subject)
	require.Equal(t, "+15551234567", account.PhoneNumber)
	require.Contains(t, claims.AMR, jwtx.AMROTP)
}

func TestSignOutRevokesSession(t *testing.T) {
	s := newSessionService(t)
	ctx := context.Background()

	established, err := s.EstablishForPhone(ctx, "+15551234567")
	require.NoError(t, err)

	require.NoError(t, s.SignOut(ctx, established.Token))

	_, _, err = s.Validate(ctx, established.Token)
	require.ErrorIs(t, err, ErrInvalidSession)

	// Sign-out is idempotent.
	require.NoError(t, s.SignOut(ctx, established.Token))
}

func TestValidateRejectsGarbage(t *testing.T) {
	s := newSessionService(t)

	_, _, err := s.Validate(context.Background(), "not-a-jwt")
	require.ErrorIs(t, err, ErrInvalidSession)
}

func TestFederatedSignInRefreshesProfile(t *testing.T) {
	s := newSessionService(t)
	ctx := context.Background()

	first, err := s.EstablishFederated(ctx, "upstream|abc", "old@example.com", "Old Name")
	require.NoError(t, err)

	second, err := s.EstablishFederated(ctx, "upstream|abc", "new@example.com", "New Name")
	require.NoError(t, err)

	require.Equal(t, first.Account.ID, second.Account.ID)
	require.Equal(t, "new@example.com", second.Account.Email)
	require.Contains(t, jwtxAMR(t, s, second.Token), jwtx.AMRFederated)
}

func TestAdminClaimAppearsOnNextMint(t *testing.T) {
	s := newSessionService(t)
	ctx := context.Background()

	established, err := s.EstablishForPhone(ctx, "+15551234567")
	require.NoError(t, err)

	claims, _, err := s.Validate(ctx, established.Token)
	require.NoError(t, err)
	require.False(t, claims.Admin)

	require.NoError(t, s.SetAdminClaim(ctx, established.Account.ID))

	// The already minted token is unchanged; the claim lands on re-issue.
	claims, _, err = s.Validate(ctx, established.Token)
	require.NoError(t, err)
	require.False(t, claims.Admin)

	reissued, err := s.EstablishForPhone(ctx, "+15551234567")
	require.NoError(t, err)
	claims, _, err = s.Validate(ctx, reissued.Token)
	require.NoError(t, err)
	require.True(t, claims.Admin)
}

func TestSetAdminClaimUnknownAccount(t *testing.T) {
	s := newSessionService(t)
	require.ErrorIs(t, s.SetAdminClaim(context.Background(), "missing"), ErrAccountUnknown)
}

func jwtxAMR(t *testing.T, s *SessionService, token string) []string {
	t.Helper()
	claims, _, err := s.Validate(context.Background(), token)
	require.NoError(t, err)
	return claims.AMR
}
