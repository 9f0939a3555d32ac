package metaplex

import (
	"crypto/ed25519"

	"github.com/tokenops/splforge/pkg/solana"
	binenc "github.com/tokenops/splforge/pkg/solana/binary"
	"github.com/tokenops/splforge/pkg/solana/system"
)

// UpdateV1Builder stages an UpdateV1 instruction against an existing
// metadata account.
//
// Authority, mint, metadata and payer are required. The five optional
// account slots (delegate record, token, edition, authorization rules
// program, authorization rules) are placeholder-filled with the metadata
// program id when unset. The toggle fields default to Unchanged and are
// encoded unconditionally.
//
// Reference: https://github.com/metaplex-foundation/mpl-token-metadata/blob/main/programs/token-metadata/program/src/instruction/mod.rs
type UpdateV1Builder struct {
	authority        ed25519.PublicKey
	delegateRecord   ed25519.PublicKey
	token            ed25519.PublicKey
	mint             ed25519.PublicKey
	metadata         ed25519.PublicKey
	edition          ed25519.PublicKey
	payer            ed25519.PublicKey
	authRulesProgram ed25519.PublicKey
	authRules        ed25519.PublicKey

	newUpdateAuthority ed25519.PublicKey
	data               *Data
	primarySale        *bool
	isMutable          *bool
	collection         CollectionToggle
	collectionDetails  CollectionDetailsToggle
	uses               UsesToggle
	ruleSet            RuleSetToggle
	authorizationData  *AuthorizationData
}

func NewUpdateV1Builder() *UpdateV1Builder {
	return &UpdateV1Builder{}
}

func (b *UpdateV1Builder) Authority(authority ed25519.PublicKey) *UpdateV1Builder {
	b.authority = authority
	return b
}

func (b *UpdateV1Builder) DelegateRecord(record ed25519.PublicKey) *UpdateV1Builder {
	b.delegateRecord = record
	return b
}

func (b *UpdateV1Builder) Token(token ed25519.PublicKey) *UpdateV1Builder {
	b.token = token
	return b
}

func (b *UpdateV1Builder) Mint(mint ed25519.PublicKey) *UpdateV1Builder {
	b.mint = mint
	return b
}

func (b *UpdateV1Builder) Metadata(metadata ed25519.PublicKey) *UpdateV1Builder {
	b.metadata = metadata
	return b
}

func (b *UpdateV1Builder) Edition(edition ed25519.PublicKey) *UpdateV1Builder {
	b.edition = edition
	return b
}

func (b *UpdateV1Builder) Payer(payer ed25519.PublicKey) *UpdateV1Builder {
	b.payer = payer
	return b
}

func (b *UpdateV1Builder) AuthorizationRules(program, rules ed25519.PublicKey) *UpdateV1Builder {
	b.authRulesProgram = program
	b.authRules = rules
	return b
}

func (b *UpdateV1Builder) NewUpdateAuthority(authority ed25519.PublicKey) *UpdateV1Builder {
	b.newUpdateAuthority = authority
	return b
}

func (b *UpdateV1Builder) Data(data Data) *UpdateV1Builder {
	b.data = &data
	return b
}

func (b *UpdateV1Builder) PrimarySaleHappened(v bool) *UpdateV1Builder {
	b.primarySale = &v
	return b
}

func (b *UpdateV1Builder) IsMutable(v bool) *UpdateV1Builder {
	b.isMutable = &v
	return b
}

func (b *UpdateV1Builder) Collection(toggle CollectionToggle) *UpdateV1Builder {
	b.collection = toggle
	return b
}

func (b *UpdateV1Builder) CollectionDetails(toggle CollectionDetailsToggle) *UpdateV1Builder {
	b.collectionDetails = toggle
	return b
}

func (b *UpdateV1Builder) Uses(toggle UsesToggle) *UpdateV1Builder {
	b.uses = toggle
	return b
}

func (b *UpdateV1Builder) RuleSet(toggle RuleSetToggle) *UpdateV1Builder {
	b.ruleSet = toggle
	return b
}

func (b *UpdateV1Builder) AuthorizationData(data AuthorizationData) *UpdateV1Builder {
	b.authorizationData = &data
	return b
}

// Build assembles the instruction, failing fast on unset required fields.
func (b *UpdateV1Builder) Build() (solana.Instruction, error) {
	for _, required := range []struct {
		name string
		key  ed25519.PublicKey
	}{
		{"authority", b.authority},
		{"mint", b.mint},
		{"metadata", b.metadata},
		{"payer", b.payer},
	} {
		if len(required.key) == 0 {
			return solana.Instruction{}, &solana.MissingFieldError{Field: required.name}
		}
	}

	e := binenc.NewEncoder().
		Uint8(commandUpdateV1).
		Uint8(0) // UpdateArgs::V1

	e.OptionKey(b.newUpdateAuthority)

	e.Option(b.data != nil)
	if b.data != nil {
		b.data.encode(e)
	}

	e.Option(b.primarySale != nil)
	if b.primarySale != nil {
		e.Bool(*b.primarySale)
	}

	e.Option(b.isMutable != nil)
	if b.isMutable != nil {
		e.Bool(*b.isMutable)
	}

	b.collection.encode(e)
	b.collectionDetails.encode(e)
	b.uses.encode(e)
	b.ruleSet.encode(e)

	e.Option(b.authorizationData != nil)
	if b.authorizationData != nil {
		b.authorizationData.encode(e)
	}

	// Accounts expected by this instruction:
	//
	//   0.  `[signer]` Update authority or delegate
	//   1.  `[]` Delegate record (optional)
	//   2.  `[]` Token account (optional)
	//   3.  `[]` Mint account
	//   4.  `[writable]` Metadata account
	//   5.  `[]` Edition account (optional)
	//   6.  `[writable, signer]` Payer
	//   7.  `[]` System program
	//   8.  `[]` Instructions sysvar
	//   9.  `[]` Authorization rules program (optional)
	//   10. `[]` Authorization rules account (optional)
	return solana.NewInstruction(
		ProgramKey,
		e.Bytes(),
		solana.NewReadonlyAccountMeta(b.authority, true),
		optionalMeta(b.delegateRecord),
		optionalMeta(b.token),
		solana.NewReadonlyAccountMeta(b.mint, false),
		solana.NewAccountMeta(b.metadata, false),
		optionalMeta(b.edition),
		solana.NewAccountMeta(b.payer, true),
		solana.NewReadonlyAccountMeta(system.ProgramKey[:], false),
		solana.NewReadonlyAccountMeta(system.InstructionsSysVar, false),
		optionalMeta(b.authRulesProgram),
		optionalMeta(b.authRules),
	), nil
}

// optionalMeta fills an absent optional slot with the program's own id,
// read-only and non-signer, which readers recognize as "not provided".
func optionalMeta(key ed25519.PublicKey) solana.AccountMeta {
	if len(key) == 0 {
		return solana.NewReadonlyAccountMeta(ProgramKey, false)
	}
	return solana.NewReadonlyAccountMeta(key, false)
}
