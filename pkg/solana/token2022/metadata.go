package token2022

import (
	"crypto/ed25519"

	"github.com/near/borsh-go"
	"github.com/pkg/errors"

	"github.com/tokenops/splforge/pkg/solana"
	binenc "github.com/tokenops/splforge/pkg/solana/binary"
)

// The interface discriminators of the token metadata interface, the first
// 8 bytes of the hash of the instruction's namespaced name.
//
// Reference: https://github.com/solana-labs/solana-program-library/blob/master/token-metadata/interface/src/instruction.rs
var (
	initializeMetadataDiscriminator = []byte{210, 225, 30, 162, 88, 184, 77, 141}
	updateFieldDiscriminator        = []byte{221, 233, 49, 45, 181, 202, 220, 200}
)

// tlvMetadataHeaderLen is the overhead of the metadata TLV record in the
// mint account, preceding the borsh-encoded body.
const tlvMetadataHeaderLen = 10

// TokenMetadata mirrors the on-chain token metadata record.
//
// Reference: https://github.com/solana-labs/solana-program-library/blob/master/token-metadata/interface/src/state.rs
type TokenMetadata struct {
	UpdateAuthority    solana.Address
	Mint               solana.Address
	Name               string
	Symbol             string
	URI                string
	AdditionalMetadata [][2]string
}

// TLVSize returns the number of bytes the record occupies in the mint
// account: the TLV header plus the serialized body. The body length comes
// from a size-probing encode with the same serializer that emits the
// bytes, so the two passes can never disagree.
func (m TokenMetadata) TLVSize() (int, error) {
	body, err := borsh.Serialize(m)
	if err != nil {
		return 0, errors.Wrap(err, "failed to serialize token metadata")
	}
	return tlvMetadataHeaderLen + len(body), nil
}

// Field selects which metadata field an UpdateField instruction targets.
type Field struct {
	tag uint8
	key string
}

var (
	FieldName   = Field{tag: 0}
	FieldSymbol = Field{tag: 1}
	FieldURI    = Field{tag: 2}
)

// FieldKey targets a custom key in the additional metadata.
func FieldKey(key string) Field {
	return Field{tag: 3, key: key}
}

func (f Field) encode(e *binenc.Encoder) {
	e.Uint8(f.tag)
	if f.tag == 3 {
		e.String(f.key)
	}
}

// InitializeMetadata writes the name, symbol and uri of the metadata
// record held in the metadata account (the mint itself when the metadata
// pointer targets the mint).
//
// Reference: https://github.com/solana-labs/solana-program-library/blob/master/token-metadata/interface/src/instruction.rs
func InitializeMetadata(metadata, updateAuthority, mint, mintAuthority ed25519.PublicKey, name, symbol, uri string) solana.Instruction {
	// Accounts expected by this instruction:
	//
	//   0. `[writable]` Metadata account
	//   1. `[]` Update authority
	//   2. `[]` Mint
	//   3. `[signer]` Mint authority
	data := binenc.NewEncoder().
		FixedBytes(initializeMetadataDiscriminator).
		String(name).
		String(symbol).
		String(uri).
		Bytes()

	return solana.NewInstruction(
		ProgramKey,
		data,
		solana.NewAccountMeta(metadata, false),
		solana.NewReadonlyAccountMeta(updateAuthority, false),
		solana.NewReadonlyAccountMeta(mint, false),
		solana.NewReadonlyAccountMeta(mintAuthority, true),
	)
}

// UpdateField sets one field of an initialized metadata record, creating
// the key when it does not exist yet.
//
// Reference: https://github.com/solana-labs/solana-program-library/blob/master/token-metadata/interface/src/instruction.rs
func UpdateField(metadata, updateAuthority ed25519.PublicKey, field Field, value string) solana.Instruction {
	// Accounts expected by this instruction:
	//
	//   0. `[writable]` Metadata account
	//   1. `[signer]` Update authority
	e := binenc.NewEncoder().FixedBytes(updateFieldDiscriminator)
	field.encode(e)
	e.String(value)

	return solana.NewInstruction(
		ProgramKey,
		e.Bytes(),
		solana.NewAccountMeta(metadata, false),
		solana.NewReadonlyAccountMeta(updateAuthority, true),
	)
}
