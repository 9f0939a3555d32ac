package metaplex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tokenops/splforge/pkg/solana"
	"github.com/tokenops/splforge/pkg/solana/system"
)

func TestUpdateV1Builder_MissingFields(t *testing.T) {
	keys := generateKeys(t, 4)

	b := NewUpdateV1Builder()
	for _, step := range []struct {
		field string
		set   func()
	}{
		{"authority", func() { b.Authority(keys[0]) }},
		{"mint", func() { b.Mint(keys[1]) }},
		{"metadata", func() { b.Metadata(keys[2]) }},
		{"payer", func() { b.Payer(keys[3]) }},
	} {
		_, err := b.Build()
		require.Error(t, err)

		var missing *solana.MissingFieldError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, step.field, missing.Field)

		step.set()
	}

	_, err := b.Build()
	require.NoError(t, err)
}

func TestUpdateV1Builder_TogglesEncodedWhenUnchanged(t *testing.T) {
	keys := generateKeys(t, 4)

	instruction, err := NewUpdateV1Builder().
		Authority(keys[0]).
		Mint(keys[1]).
		Metadata(keys[2]).
		Payer(keys[3]).
		Build()
	require.NoError(t, err)

	// Every optional field and toggle still occupies its byte.
	expected := []byte{
		50, // UpdateV1
		0,  // UpdateArgs::V1
		0,  // new update authority: None
		0,  // data: None
		0,  // primary sale happened: None
		0,  // is mutable: None
		0,  // collection: Unchanged
		0,  // collection details: Unchanged
		0,  // uses: Unchanged
		0,  // rule set: Unchanged
		0,  // authorization data: None
	}
	assert.Equal(t, expected, instruction.Data)
}

func TestUpdateV1Builder_Accounts(t *testing.T) {
	keys := generateKeys(t, 4)

	instruction, err := NewUpdateV1Builder().
		Authority(keys[0]).
		Mint(keys[1]).
		Metadata(keys[2]).
		Payer(keys[3]).
		Build()
	require.NoError(t, err)

	require.Equal(t, 11, len(instruction.Accounts))

	assert.EqualValues(t, keys[0], instruction.Accounts[0].PublicKey)
	assert.True(t, instruction.Accounts[0].IsSigner)
	assert.False(t, instruction.Accounts[0].IsWritable)

	// Optional slots default to the program id, read-only and non-signer.
	for _, i := range []int{1, 2, 5, 9, 10} {
		assert.EqualValues(t, ProgramKey, instruction.Accounts[i].PublicKey)
		assert.False(t, instruction.Accounts[i].IsSigner)
		assert.False(t, instruction.Accounts[i].IsWritable)
	}

	assert.EqualValues(t, keys[1], instruction.Accounts[3].PublicKey)
	assert.EqualValues(t, keys[2], instruction.Accounts[4].PublicKey)
	assert.True(t, instruction.Accounts[4].IsWritable)
	assert.EqualValues(t, keys[3], instruction.Accounts[6].PublicKey)
	assert.True(t, instruction.Accounts[6].IsSigner)
	assert.True(t, instruction.Accounts[6].IsWritable)
	assert.EqualValues(t, system.ProgramKey[:], instruction.Accounts[7].PublicKey)
	assert.EqualValues(t, system.InstructionsSysVar, instruction.Accounts[8].PublicKey)
}

func TestUpdateV1Builder_Toggles(t *testing.T) {
	keys := generateKeys(t, 5)

	instruction, err := NewUpdateV1Builder().
		Authority(keys[0]).
		Mint(keys[1]).
		Metadata(keys[2]).
		Payer(keys[3]).
		Collection(SetCollection(Collection{Verified: false, Key: keys[4]})).
		Uses(ClearUses()).
		RuleSet(SetRuleSet(keys[4])).
		Build()
	require.NoError(t, err)

	d := instruction.Data
	// [50, 0], new auth None, data None, primary None, mutable None
	assert.Equal(t, []byte{50, 0, 0, 0, 0, 0}, d[:6])

	// collection: Set{verified, key}
	assert.Equal(t, []byte{2, 0}, d[6:8])
	assert.Equal(t, []byte(keys[4]), d[8:40])

	// collection details unchanged, uses cleared
	assert.Equal(t, []byte{0, 1}, d[40:42])

	// rule set: Set(key)
	assert.Equal(t, byte(2), d[42])
	assert.Equal(t, []byte(keys[4]), d[43:75])

	// authorization data: None
	assert.Equal(t, byte(0), d[75])
	assert.Equal(t, 76, len(d))
}

func TestUpdateV1Builder_DataAndAuthorization(t *testing.T) {
	keys := generateKeys(t, 5)

	instruction, err := NewUpdateV1Builder().
		Authority(keys[0]).
		Mint(keys[1]).
		Metadata(keys[2]).
		Payer(keys[3]).
		NewUpdateAuthority(keys[4]).
		Data(Data{Name: "N", Symbol: "S", URI: "u", SellerFeeBasisPoints: 500}).
		PrimarySaleHappened(true).
		IsMutable(false).
		AuthorizationData(AuthorizationData{Payload: []PayloadEntry{
			{Key: "amount", Value: PayloadNumber{Value: 7}},
		}}).
		Build()
	require.NoError(t, err)

	d := instruction.Data
	assert.Equal(t, []byte{50, 0, 1}, d[:3])
	assert.Equal(t, []byte(keys[4]), d[3:35])

	// data: Some{N, S, u, 500, creators None}
	assert.Equal(t, byte(1), d[35])
	assert.Equal(t, []byte{1, 0, 0, 0, 'N'}, d[36:41])
	assert.Equal(t, []byte{1, 0, 0, 0, 'S'}, d[41:46])
	assert.Equal(t, []byte{1, 0, 0, 0, 'u'}, d[46:51])
	assert.Equal(t, []byte{0xf4, 0x01}, d[51:53])
	assert.Equal(t, byte(0), d[53])

	// primary sale Some(true), mutable Some(false), 4 toggles unchanged
	assert.Equal(t, []byte{1, 1, 1, 0, 0, 0, 0, 0}, d[54:62])

	// authorization data: Some, one entry: "amount" -> Number(7)
	assert.Equal(t, byte(1), d[62])
	assert.Equal(t, uint32(1), uint32(d[63]))
	assert.Equal(t, []byte{6, 0, 0, 0}, d[67:71])
	assert.Equal(t, []byte("amount"), d[71:77])
	assert.Equal(t, byte(3), d[77])
	assert.Equal(t, []byte{7, 0, 0, 0, 0, 0, 0, 0}, d[78:])
}
