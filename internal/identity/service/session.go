package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/kindlinghq/kindling/internal/identity/domain"
	"github.com/kindlinghq/kindling/internal/identity/store"
	"github.com/kindlinghq/kindling/pkg/idx"
	"github.com/kindlinghq/kindling/pkg/jwtx"
)

var (
	ErrInvalidSession = errors.New("invalid or revoked session")
	ErrAccountUnknown = errors.New("unknown account")
)

// SessionService mints, validates and revokes session tokens. Tokens are
// EdDSA JWTs carrying the account profile; revocation is tracked by session
// id so sign-out takes effect before expiry.
type SessionService struct {
	Store      store.Store
	Logger     *slog.Logger
	Signer     jwtx.Signer
	Verifier   jwtx.Verifier
	Issuer     string
	SessionTTL time.Duration
}

// EstablishedSession is the outcome of a successful sign-in.
type EstablishedSession struct {
	Token     string
	Account   domain.Account
	ExpiresAt time.Time
}

// EstablishForPhone finds or creates the account owning the phone number and
// mints a session for it.
func (s *SessionService) EstablishForPhone(ctx context.Context, phoneNumber string) (EstablishedSession, error) {
	now := time.Now().UTC()

	account, err := s.Store.Accounts().GetAccountByPhone(ctx, phoneNumber)
	if errors.Is(err, store.ErrNotFound) {
		account = domain.Account{
			ID:          idx.New().String(),
			PhoneNumber: phoneNumber,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := s.Store.Accounts().CreateAccount(ctx, account); err != nil {
			return EstablishedSession{}, fmt.Errorf("failed to create account: %w", err)
		}
		s.Logger.Info("created account for phone sign-in", "account_id", account.ID)
	} else if err != nil {
		return EstablishedSession{}, fmt.Errorf("failed to load account: %w", err)
	}

	return s.mint(account, jwtx.AMROTP)
}

// EstablishFederated finds or creates the account for a verified upstream
// subject and mints a session for it. Profile fields are refreshed from the
// upstream claims on every sign-in.
func (s *SessionService) EstablishFederated(ctx context.Context, subject, email, name string) (EstablishedSession, error) {
	now := time.Now().UTC()

	account, err := s.Store.Accounts().GetAccountBySubject(ctx, subject)
	switch {
	case errors.Is(err, store.ErrNotFound):
		account = domain.Account{
			ID:        idx.New().String(),
			Subject:   subject,
			Email:     email,
			Name:      name,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.Store.Accounts().CreateAccount(ctx, account); err != nil {
			return EstablishedSession{}, fmt.Errorf("failed to create account: %w", err)
		}
		s.Logger.Info("created account for federated sign-in", "account_id", account.ID)
	case err != nil:
		return EstablishedSession{}, fmt.Errorf("failed to load account: %w", err)
	default:
		if account.Email != email || account.Name != name {
			account.Email = email
			account.Name = name
			if err := s.Store.Accounts().UpdateAccount(ctx, account); err != nil {
				return EstablishedSession{}, fmt.Errorf("failed to refresh profile: %w", err)
			}
		}
	}

	return s.mint(account, jwtx.AMRFederated)
}

// Validate parses and checks a session token, including revocation. It
// returns the claims and the current account record.
func (s *SessionService) Validate(ctx context.Context, raw string) (jwtx.Claims, domain.Account, error) {
	claims, err := s.Verifier.Verify(raw)
	if err != nil {
		return jwtx.Claims{}, domain.Account{}, ErrInvalidSession
	}
	if err := claims.ValidateIssuer(s.Issuer); err != nil {
		return jwtx.Claims{}, domain.Account{}, ErrInvalidSession
	}
	if err := claims.ValidateExpiry(); err != nil {
		return jwtx.Claims{}, domain.Account{}, ErrInvalidSession
	}

	revoked, err := s.Store.Revocations().IsSessionRevoked(ctx, claims.SID)
	if err != nil {
		return jwtx.Claims{}, domain.Account{}, fmt.Errorf("failed to check revocation: %w", err)
	}
	if revoked {
		return jwtx.Claims{}, domain.Account{}, ErrInvalidSession
	}

	account, err := s.Store.Accounts().GetAccountByID(ctx, claims.Subject)
	if errors.Is(err, store.ErrNotFound) {
		return jwtx.Claims{}, domain.Account{}, ErrInvalidSession
	}
	if err != nil {
		return jwtx.Claims{}, domain.Account{}, fmt.Errorf("failed to load account: %w", err)
	}

	return claims, account, nil
}

// SignOut revokes the session carried by the token. Revoking an already
// invalid token is not an error; sign-out is idempotent.
func (s *SessionService) SignOut(ctx context.Context, raw string) error {
	claims, err := s.Verifier.Verify(raw)
	if err != nil {
		return nil
	}

	expiresAt := time.Now().Add(s.sessionTTL())
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}

	if err := s.Store.Revocations().RevokeSession(ctx, claims.SID, expiresAt); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}

	s.Logger.Info("session revoked", "sid", claims.SID, "account_id", claims.Subject)
	return nil
}

// SetAdminClaim grants the admin custom claim to an account. Takes effect on
// the next minted session token.
func (s *SessionService) SetAdminClaim(ctx context.Context, accountID string) error {
	err := s.Store.Accounts().SetAdmin(ctx, accountID, true)
	if errors.Is(err, store.ErrNotFound) {
		return ErrAccountUnknown
	}
	if err != nil {
		return fmt.Errorf("failed to set admin claim: %w", err)
	}

	s.Logger.Info("admin claim granted", "account_id", accountID)
	return nil
}

func (s *SessionService) mint(account domain.Account, amr string) (EstablishedSession, error) {
	now := time.Now()
	ttl := s.sessionTTL()
	sid := idx.New().String()

	claims := jwtx.NewSessionClaims(
		account.ID, sid, []string{"profile", "submissions:read"}, []string{amr},
		ttl, s.Issuer,
		account.Name, account.Email, account.PhoneNumber, now,
	)
	claims.Admin = account.Admin

	token, err := s.Signer.Sign(claims)
	if err != nil {
		return EstablishedSession{}, fmt.Errorf("failed to sign session token: %w", err)
	}

	return EstablishedSession{
		Token:     token,
		Account:   account,
		ExpiresAt: now.Add(ttl),
	}, nil
}

func (s *SessionService) sessionTTL() time.Duration {
	if s.SessionTTL > 0 {
		return s.SessionTTL
	}
	return jwtx.DefaultSessionTTL
}
