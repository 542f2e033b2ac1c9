package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultSessionTTL is the default lifetime for session tokens minted by the
// development identity provider. Real providers manage their own lifetimes.
const DefaultSessionTTL = time.Hour

// Authentication Method Reference values carried in the "amr" claim.
//
//	"otp": one-time code delivered to a phone number
//	"fed": federated sign-in via an upstream OIDC provider
const (
	AMROTP       = "otp"
	AMRFederated = "fed"
)

var (
	ErrExpired     = errors.New("jwtx: token expired")
	ErrNotYetValid = errors.New("jwtx: token not yet valid")
	ErrIssuer      = errors.New("jwtx: unexpected issuer")
	ErrBadToken    = errors.New("jwtx: malformed or unverifiable token")
)

// Claims are session-token claims shared between the identity provider and
// services that verify its tokens. Keep changes additive.
type Claims struct {
	jwt.RegisteredClaims

	// Session ID
	SID string `json:"sid,omitempty"`

	// Permission scopes, e.g. "submissions:read"
	Scopes []string `json:"scopes,omitempty"`

	// Authentication Methods Reference, e.g. ["otp"]
	AMR []string `json:"amr,omitempty"`

	// Profile attributes the application reads off the session.
	Name        string `json:"name,omitempty"`
	Email       string `json:"email,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`

	// Admin marks accounts granted the admin custom claim.
	Admin bool `json:"admin,omitempty"`
}

// NewSessionClaims builds minimally-correct claims for a freshly established session.
func NewSessionClaims(
	subject, sid string,
	scopes, amr []string,
	ttl time.Duration,
	issuer string,
	name, email, phone string,
	now time.Time,
) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		SID:         sid,
		Scopes:      scopes,
		AMR:         amr,
		Name:        name,
		Email:       email,
		PhoneNumber: phone,
	}
}

// NewJTI returns a URL-safe random identifier for the "jti" claim.
func NewJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

// ValidateIssuer checks if the issuer matches expected value.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil // nothing to enforce
	}
	if c.Issuer != expected {
		return ErrIssuer
	}
	return nil
}

// ValidateExpiry ensures the token hasn't expired (exp) and isn't before nbf.
func (c *Claims) ValidateExpiry() error {
	now := time.Now().UTC()

	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Time) {
		return ErrExpired
	}
	if c.NotBefore != nil && now.Before(c.NotBefore.Time) {
		return ErrNotYetValid
	}
	return nil
}
