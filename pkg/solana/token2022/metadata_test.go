package token2022

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tokenops/splforge/pkg/solana"
)

func TestInitializeMetadata(t *testing.T) {
	keys := generateKeys(t, 4)

	instruction := InitializeMetadata(keys[0], keys[1], keys[2], keys[3], "Token", "TOK", "https://example.com/t.json")

	assert.Equal(t, initializeMetadataDiscriminator, instruction.Data[:8])

	d := instruction.Data[8:]
	assert.Equal(t, uint32(5), uint32(d[0]))
	assert.Equal(t, []byte("Token"), d[4:9])
	assert.Equal(t, []byte("TOK"), d[13:16])
	assert.Equal(t, []byte("https://example.com/t.json"), d[20:])

	require.Equal(t, 4, len(instruction.Accounts))
	assert.True(t, instruction.Accounts[0].IsWritable)
	assert.False(t, instruction.Accounts[1].IsSigner)
	assert.False(t, instruction.Accounts[2].IsSigner)
	assert.True(t, instruction.Accounts[3].IsSigner)
	assert.False(t, instruction.Accounts[3].IsWritable)
}

func TestUpdateField(t *testing.T) {
	keys := generateKeys(t, 2)

	for _, tc := range []struct {
		field    Field
		expected []byte
	}{
		{FieldName, []byte{0}},
		{FieldSymbol, []byte{1}},
		{FieldURI, []byte{2}},
		{FieldKey("kv"), []byte{3, 2, 0, 0, 0, 'k', 'v'}},
	} {
		instruction := UpdateField(keys[0], keys[1], tc.field, "value")

		assert.Equal(t, updateFieldDiscriminator, instruction.Data[:8])
		assert.Equal(t, tc.expected, instruction.Data[8:8+len(tc.expected)])

		tail := instruction.Data[8+len(tc.expected):]
		assert.Equal(t, uint32(5), uint32(tail[0]))
		assert.Equal(t, []byte("value"), tail[4:])

		require.Equal(t, 2, len(instruction.Accounts))
		assert.True(t, instruction.Accounts[0].IsWritable)
		assert.True(t, instruction.Accounts[1].IsSigner)
		assert.False(t, instruction.Accounts[1].IsWritable)
	}
}

func TestUpdateField_DiscriminatorStability(t *testing.T) {
	keys := generateKeys(t, 2)

	short := UpdateField(keys[0], keys[1], FieldName, "a")
	long := UpdateField(keys[0], keys[1], FieldName, "a much longer value than before")
	assert.Equal(t, short.Data[:9], long.Data[:9])
}

func TestTokenMetadata_TLVSize(t *testing.T) {
	keys := generateKeys(t, 2)

	m := TokenMetadata{
		UpdateAuthority: solana.NewAddress(keys[0]),
		Mint:            solana.NewAddress(keys[1]),
		Name:            "X",
		Symbol:          "X",
		URI:             "u",
	}

	size, err := m.TLVSize()
	require.NoError(t, err)

	// header + authority + mint + 3 length-prefixed strings + empty vec
	expected := 10 + 32 + 32 + (4 + 1) + (4 + 1) + (4 + 1) + 4
	assert.Equal(t, expected, size)

	m.AdditionalMetadata = [][2]string{{"k", "vv"}}
	size, err = m.TLVSize()
	require.NoError(t, err)
	assert.Equal(t, expected+(4+1)+(4+2), size)

	// Size probing is deterministic.
	again, err := m.TLVSize()
	require.NoError(t, err)
	assert.Equal(t, size, again)
}
