package jwtx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSignAndVerifyRoundTrip(t *testing.T) {
	signer, err := NewEdDSASigner("dev-key-001")
	require.NoError(t, err)

	now := time.Now().UTC()
	claims := NewSessionClaims(
		"user-123", "sess-456",
		[]string{"submissions:write"},
		[]string{AMROTP},
		time.Hour,
		"kindling-identity",
		"Test User", "test@example.com", "+15551234567",
		now,
	)

	raw, err := signer.Sign(claims)
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	verifier := NewEdDSAVerifier(signer.Public())
	got, err := verifier.Verify(raw)
	require.NoError(t, err)

	require.Equal(t, "user-123", got.Subject)
	require.Equal(t, "sess-456", got.SID)
	require.Equal(t, "+15551234567", got.PhoneNumber)
	require.Equal(t, []string{AMROTP}, got.AMR)
	require.NoError(t, got.ValidateExpiry())
	require.NoError(t, got.ValidateIssuer("kindling-identity"))
}

func TestVerifyRejectsWrongKey(t *testing.T) {
	signer, err := NewEdDSASigner("key-a")
	require.NoError(t, err)
	other, err := NewEdDSASigner("key-b")
	require.NoError(t, err)

	raw, err := signer.Sign(NewSessionClaims(
		"user-123", "sess-1", nil, nil, time.Hour, "iss", "", "", "", time.Now(),
	))
	require.NoError(t, err)

	_, err = NewEdDSAVerifier(other.Public()).Verify(raw)
	require.ErrorIs(t, err, ErrBadToken)
}

func TestValidateExpiry(t *testing.T) {
	expired := NewSessionClaims(
		"u", "s", nil, nil, -time.Minute, "iss", "", "", "", time.Now().Add(-time.Hour),
	)
	require.ErrorIs(t, expired.ValidateExpiry(), ErrExpired)

	future := NewSessionClaims(
		"u", "s", nil, nil, time.Hour, "iss", "", "", "", time.Now().Add(time.Hour),
	)
	require.ErrorIs(t, future.ValidateExpiry(), ErrNotYetValid)
}

func TestValidateIssuer(t *testing.T) {
	c := NewSessionClaims("u", "s", nil, nil, time.Hour, "expected", "", "", "", time.Now())

	require.NoError(t, c.ValidateIssuer("expected"))
	require.NoError(t, c.ValidateIssuer("")) // nothing to enforce
	require.ErrorIs(t, c.ValidateIssuer("other"), ErrIssuer)
}

func TestPublicKeyPEMRoundTrip(t *testing.T) {
	signer, err := NewEdDSASigner("pem-key")
	require.NoError(t, err)

	pemBytes, err := MarshalPublicKey(signer.Public())
	require.NoError(t, err)

	verifier, err := NewEdDSAVerifierFromPEM(pemBytes)
	require.NoError(t, err)

	raw, err := signer.Sign(NewSessionClaims(
		"u", "s", nil, nil, time.Hour, "iss", "", "", "", time.Now(),
	))
	require.NoError(t, err)

	_, err = verifier.Verify(raw)
	require.NoError(t, err)
}
