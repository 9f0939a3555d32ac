package solana

import (
	"crypto/ed25519"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicKeyFromString(t *testing.T) {
	// The system program id decodes to 32 zero bytes.
	pub, err := PublicKeyFromString("11111111111111111111111111111111")
	require.NoError(t, err)
	assert.Equal(t, make(ed25519.PublicKey, 32), pub)

	// Invalid base58 characters.
	_, err = PublicKeyFromString("0OIl")
	assert.Error(t, err)

	// Valid base58, wrong length.
	_, err = PublicKeyFromString("abc")
	assert.ErrorIs(t, err, ErrInvalidAddressLength)

	assert.NotPanics(t, func() {
		MustPublicKeyFromString("TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA")
	})
	assert.Panics(t, func() {
		MustPublicKeyFromString("abc")
	})
}

func TestAddress(t *testing.T) {
	pub, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	addr := NewAddress(pub)
	assert.Equal(t, pub, addr.PublicKey())

	parsed, err := PublicKeyFromString(addr.String())
	require.NoError(t, err)
	assert.Equal(t, pub, parsed)
}
