package jwtx

import (
	"crypto/ed25519"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Verifier checks a compact JWT's signature and returns its claims.
// Expiry and issuer validation are left to the caller so services can
// apply their own policies.
type Verifier interface {
	Verify(raw string) (Claims, error)
}

// EdDSAVerifier verifies tokens signed with a single Ed25519 key.
type EdDSAVerifier struct {
	pub ed25519.PublicKey
}

func NewEdDSAVerifier(pub ed25519.PublicKey) *EdDSAVerifier {
	return &EdDSAVerifier{pub: pub}
}

// NewEdDSAVerifierFromPEM builds a verifier from a PEM-encoded public key,
// as distributed through service configuration.
func NewEdDSAVerifierFromPEM(pemKey []byte) (*EdDSAVerifier, error) {
	pub, err := ParsePublicKey(pemKey)
	if err != nil {
		return nil, err
	}
	return &EdDSAVerifier{pub: pub}, nil
}

func (v *EdDSAVerifier) Verify(raw string) (Claims, error) {
	var claims Claims

	token, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodEdDSA.Alg() {
			return nil, fmt.Errorf("%w: unexpected alg %q", ErrBadToken, t.Method.Alg())
		}
		return v.pub, nil
	}, jwt.WithoutClaimsValidation())
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrBadToken, err)
	}
	if !token.Valid {
		return Claims{}, ErrBadToken
	}

	return claims, nil
}
