package metaplex

import (
	"crypto/ed25519"

	"github.com/tokenops/splforge/pkg/solana"
	binenc "github.com/tokenops/splforge/pkg/solana/binary"
	"github.com/tokenops/splforge/pkg/solana/system"
)

// CreateBuilder stages a Create instruction, which initializes the
// metadata account of a mint (and its master edition, for non-fungible
// standards).
//
// Metadata, mint, authority, payer and update authority are required;
// Build returns a *solana.MissingFieldError when any is unset. Unset
// optional account slots are filled with the metadata program id as an
// inert placeholder, keeping the account list at its documented fixed
// length.
//
// Reference: https://github.com/metaplex-foundation/mpl-token-metadata/blob/main/programs/token-metadata/program/src/instruction/mod.rs
type CreateBuilder struct {
	metadata        ed25519.PublicKey
	masterEdition   ed25519.PublicKey
	mint            ed25519.PublicKey
	mintIsSigner    bool
	authority       ed25519.PublicKey
	payer           ed25519.PublicKey
	updateAuthority ed25519.PublicKey
	updateIsSigner  bool
	splTokenProgram ed25519.PublicKey

	name                 string
	symbol               string
	uri                  string
	sellerFeeBasisPoints uint16
	creators             []Creator
	primarySaleHappened  bool
	isMutable            bool
	tokenStandard        TokenStandard
	collection           *Collection
	uses                 *Uses
	collectionDetails    *CollectionDetails
	ruleSet              ed25519.PublicKey
	decimals             *uint8
	printSupply          *PrintSupply
}

func NewCreateBuilder() *CreateBuilder {
	return &CreateBuilder{}
}

func (b *CreateBuilder) Metadata(metadata ed25519.PublicKey) *CreateBuilder {
	b.metadata = metadata
	return b
}

func (b *CreateBuilder) MasterEdition(edition ed25519.PublicKey) *CreateBuilder {
	b.masterEdition = edition
	return b
}

// Mint sets the mint account. The mint signs when it is being created by
// this instruction.
func (b *CreateBuilder) Mint(mint ed25519.PublicKey, isSigner bool) *CreateBuilder {
	b.mint = mint
	b.mintIsSigner = isSigner
	return b
}

func (b *CreateBuilder) Authority(authority ed25519.PublicKey) *CreateBuilder {
	b.authority = authority
	return b
}

func (b *CreateBuilder) Payer(payer ed25519.PublicKey) *CreateBuilder {
	b.payer = payer
	return b
}

func (b *CreateBuilder) UpdateAuthority(authority ed25519.PublicKey, isSigner bool) *CreateBuilder {
	b.updateAuthority = authority
	b.updateIsSigner = isSigner
	return b
}

func (b *CreateBuilder) SplTokenProgram(program ed25519.PublicKey) *CreateBuilder {
	b.splTokenProgram = program
	return b
}

func (b *CreateBuilder) Name(name string) *CreateBuilder {
	b.name = name
	return b
}

func (b *CreateBuilder) Symbol(symbol string) *CreateBuilder {
	b.symbol = symbol
	return b
}

func (b *CreateBuilder) URI(uri string) *CreateBuilder {
	b.uri = uri
	return b
}

func (b *CreateBuilder) SellerFeeBasisPoints(bps uint16) *CreateBuilder {
	b.sellerFeeBasisPoints = bps
	return b
}

func (b *CreateBuilder) Creators(creators []Creator) *CreateBuilder {
	b.creators = creators
	return b
}

func (b *CreateBuilder) PrimarySaleHappened(v bool) *CreateBuilder {
	b.primarySaleHappened = v
	return b
}

func (b *CreateBuilder) IsMutable(v bool) *CreateBuilder {
	b.isMutable = v
	return b
}

func (b *CreateBuilder) TokenStandard(standard TokenStandard) *CreateBuilder {
	b.tokenStandard = standard
	return b
}

func (b *CreateBuilder) Collection(c Collection) *CreateBuilder {
	b.collection = &c
	return b
}

func (b *CreateBuilder) Uses(u Uses) *CreateBuilder {
	b.uses = &u
	return b
}

func (b *CreateBuilder) CollectionDetails(d CollectionDetails) *CreateBuilder {
	b.collectionDetails = &d
	return b
}

func (b *CreateBuilder) RuleSet(ruleSet ed25519.PublicKey) *CreateBuilder {
	b.ruleSet = ruleSet
	return b
}

func (b *CreateBuilder) Decimals(decimals uint8) *CreateBuilder {
	b.decimals = &decimals
	return b
}

func (b *CreateBuilder) PrintSupply(supply PrintSupply) *CreateBuilder {
	b.printSupply = &supply
	return b
}

// Build assembles the instruction, failing fast on unset required fields.
func (b *CreateBuilder) Build() (solana.Instruction, error) {
	for _, required := range []struct {
		name string
		key  ed25519.PublicKey
	}{
		{"metadata", b.metadata},
		{"mint", b.mint},
		{"authority", b.authority},
		{"payer", b.payer},
		{"update_authority", b.updateAuthority},
	} {
		if len(required.key) == 0 {
			return solana.Instruction{}, &solana.MissingFieldError{Field: required.name}
		}
	}

	e := binenc.NewEncoder().
		Uint8(commandCreate).
		Uint8(0). // CreateArgs::V1
		String(b.name).
		String(b.symbol).
		String(b.uri).
		Uint16(b.sellerFeeBasisPoints)
	encodeCreators(e, b.creators)
	e.Bool(b.primarySaleHappened).
		Bool(b.isMutable).
		Uint8(uint8(b.tokenStandard))

	e.Option(b.collection != nil)
	if b.collection != nil {
		b.collection.encode(e)
	}

	e.Option(b.uses != nil)
	if b.uses != nil {
		b.uses.encode(e)
	}

	e.Option(b.collectionDetails != nil)
	if b.collectionDetails != nil {
		b.collectionDetails.encode(e)
	}

	e.OptionKey(b.ruleSet)

	e.Option(b.decimals != nil)
	if b.decimals != nil {
		e.Uint8(*b.decimals)
	}

	e.Option(b.printSupply != nil)
	if b.printSupply != nil {
		b.printSupply.encode(e)
	}

	// Accounts expected by this instruction:
	//
	//   0. `[writable]` Metadata account
	//   1. `[writable]` Master edition account (optional)
	//   2. `[writable]` Mint account (signer when created here)
	//   3. `[signer]` Mint authority
	//   4. `[writable, signer]` Payer
	//   5. `[]` Update authority (signer when it is the mint authority)
	//   6. `[]` System program
	//   7. `[]` Instructions sysvar
	//   8. `[]` SPL token program (optional)
	masterEdition := solana.NewReadonlyAccountMeta(ProgramKey, false)
	if len(b.masterEdition) > 0 {
		masterEdition = solana.NewAccountMeta(b.masterEdition, false)
	}

	tokenProgram := solana.NewReadonlyAccountMeta(ProgramKey, false)
	if len(b.splTokenProgram) > 0 {
		tokenProgram = solana.NewReadonlyAccountMeta(b.splTokenProgram, false)
	}

	return solana.NewInstruction(
		ProgramKey,
		e.Bytes(),
		solana.NewAccountMeta(b.metadata, false),
		masterEdition,
		solana.NewAccountMeta(b.mint, b.mintIsSigner),
		solana.NewReadonlyAccountMeta(b.authority, true),
		solana.NewAccountMeta(b.payer, true),
		solana.NewReadonlyAccountMeta(b.updateAuthority, b.updateIsSigner),
		solana.NewReadonlyAccountMeta(system.ProgramKey[:], false),
		solana.NewReadonlyAccountMeta(system.InstructionsSysVar, false),
		tokenProgram,
	), nil
}
