package cryptox

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyCode(t *testing.T) {
	hash, err := HashCode("123456")
	require.NoError(t, err)
	require.Contains(t, hash, "$argon2id$v=19$")

	require.NoError(t, VerifyCode("123456", hash))
	require.ErrorIs(t, VerifyCode("654321", hash), ErrCodeMismatch)
}

func TestHashCodeSalted(t *testing.T) {
	a, err := HashCode("123456")
	require.NoError(t, err)
	b, err := HashCode("123456")
	require.NoError(t, err)

	// Fresh salt per hash means equal inputs never share a hash.
	require.NotEqual(t, a, b)
}

func TestVerifyCodeMalformedHash(t *testing.T) {
	tests := []struct {
		name string
		hash string
	}{
		{"empty", ""},
		{"not argon2id", "$bcrypt$v=19$m=1,t=1,p=1$c2FsdA$aGFzaA"},
		{"wrong version", "$argon2id$v=18$m=1,t=1,p=1$c2FsdA$aGFzaA"},
		{"missing parts", "$argon2id$v=19$m=1,t=1,p=1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := VerifyCode("123456", tt.hash)
			require.Error(t, err)
			require.NotErrorIs(t, err, ErrCodeMismatch)
		})
	}
}
