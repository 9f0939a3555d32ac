package token2022

import (
	"crypto/ed25519"

	"github.com/tokenops/splforge/pkg/solana"
	"github.com/tokenops/splforge/pkg/solana/system"
)

// ExtensionType identifies a TLV record within a token extension account.
//
// Reference: https://github.com/solana-labs/solana-program-library/blob/master/token/program-2022/src/extension/mod.rs
type ExtensionType uint16

const (
	// nolint:varcheck,deadcode,unused
	ExtensionTypeUninitialized      ExtensionType = 0
	ExtensionTypeTransferFeeConfig  ExtensionType = 1
	ExtensionTypeMintCloseAuthority ExtensionType = 3
	ExtensionTypeNonTransferable    ExtensionType = 9
	ExtensionTypeInterestBearing    ExtensionType = 10
	ExtensionTypePermanentDelegate  ExtensionType = 12
	ExtensionTypeTransferHook       ExtensionType = 14
	ExtensionTypeMetadataPointer    ExtensionType = 18
	ExtensionTypeTokenMetadata      ExtensionType = 19
)

const (
	baseMintLen    = 82
	baseAccountLen = 165

	// One byte after the account-sized padding marks the account as a mint.
	accountTypeLen = 1

	// Each fixed TLV entry is a u16 type and u16 length before the value.
	tlvEntryOverhead = 4
)

// TLVLen returns the fixed serialized value length of the extension's TLV
// record, excluding the entry header. Variable-length extensions (token
// metadata) have no fixed footprint and return 0.
func (t ExtensionType) TLVLen() int {
	switch t {
	case ExtensionTypeTransferFeeConfig:
		return 108
	case ExtensionTypeMintCloseAuthority:
		return 32
	case ExtensionTypeNonTransferable:
		return 0
	case ExtensionTypeInterestBearing:
		return 52
	case ExtensionTypePermanentDelegate:
		return 32
	case ExtensionTypeTransferHook:
		return 64
	case ExtensionTypeMetadataPointer:
		return 64
	default:
		return 0
	}
}

// CalculateMintLen returns the account size to allocate for a mint with
// the provided extensions. A mint without extensions uses the legacy
// layout; with extensions, the mint is padded to the token-account length
// and followed by the account type byte and one TLV entry per extension.
func CalculateMintLen(extensions ...ExtensionType) int {
	if len(extensions) == 0 {
		return baseMintLen
	}

	size := baseAccountLen + accountTypeLen
	for _, e := range extensions {
		size += tlvEntryOverhead + e.TLVLen()
	}
	return size
}

// Extension describes one requested mint extension: its TLV footprint for
// account sizing, the instruction that must run before the mint is
// initialized, and any instructions that must run after.
type Extension interface {
	Type() ExtensionType
	preInit(mint, mintAuthority ed25519.PublicKey) solana.Instruction
	postInit(mint, mintAuthority ed25519.PublicKey) []solana.Instruction
}

// CloseAuthority allows the holder to close the mint account once supply
// reaches zero.
type CloseAuthority struct {
	Authority ed25519.PublicKey
}

func (e CloseAuthority) Type() ExtensionType { return ExtensionTypeMintCloseAuthority }

func (e CloseAuthority) preInit(mint, _ ed25519.PublicKey) solana.Instruction {
	return InitializeMintCloseAuthority(mint, e.Authority)
}

func (e CloseAuthority) postInit(_, _ ed25519.PublicKey) []solana.Instruction { return nil }

// MetadataPointer points at an externally managed metadata account.
type MetadataPointer struct {
	Authority       ed25519.PublicKey
	MetadataAddress ed25519.PublicKey
}

func (e MetadataPointer) Type() ExtensionType { return ExtensionTypeMetadataPointer }

func (e MetadataPointer) preInit(mint, _ ed25519.PublicKey) solana.Instruction {
	return InitializeMetadataPointer(mint, e.Authority, e.MetadataAddress)
}

func (e MetadataPointer) postInit(_, _ ed25519.PublicKey) []solana.Instruction { return nil }

// KeyValue is one additional metadata field beyond name/symbol/uri.
type KeyValue struct {
	Key   string
	Value string
}

// Metadata stores the token's metadata in the mint account itself: a
// metadata pointer aimed at the mint pre-init, and the TLV metadata record
// written post-init. The metadata content is excluded from the initial
// mint allocation; the caller funds the reallocation lamports separately.
type Metadata struct {
	// UpdateAuthority defaults to the mint authority when unset.
	UpdateAuthority ed25519.PublicKey

	Name   string
	Symbol string
	URI    string

	AdditionalMetadata []KeyValue
}

func (e Metadata) Type() ExtensionType { return ExtensionTypeMetadataPointer }

func (e Metadata) authority(mintAuthority ed25519.PublicKey) ed25519.PublicKey {
	if len(e.UpdateAuthority) > 0 {
		return e.UpdateAuthority
	}
	return mintAuthority
}

func (e Metadata) preInit(mint, mintAuthority ed25519.PublicKey) solana.Instruction {
	return InitializeMetadataPointer(mint, e.authority(mintAuthority), mint)
}

func (e Metadata) postInit(mint, mintAuthority ed25519.PublicKey) []solana.Instruction {
	authority := e.authority(mintAuthority)

	instructions := []solana.Instruction{
		InitializeMetadata(mint, authority, mint, mintAuthority, e.Name, e.Symbol, e.URI),
	}
	for _, kv := range e.AdditionalMetadata {
		instructions = append(instructions, UpdateField(mint, authority, FieldKey(kv.Key), kv.Value))
	}
	return instructions
}

// TransferFee withholds a fee on every transfer.
type TransferFee struct {
	ConfigAuthority   ed25519.PublicKey
	WithdrawAuthority ed25519.PublicKey
	BasisPoints       uint16
	MaxFee            uint64
}

func (e TransferFee) Type() ExtensionType { return ExtensionTypeTransferFeeConfig }

func (e TransferFee) preInit(mint, _ ed25519.PublicKey) solana.Instruction {
	return InitializeTransferFeeConfig(mint, e.ConfigAuthority, e.WithdrawAuthority, e.BasisPoints, e.MaxFee)
}

func (e TransferFee) postInit(_, _ ed25519.PublicKey) []solana.Instruction { return nil }

// InterestBearing displays amounts with a compounding interest rate.
type InterestBearing struct {
	RateAuthority ed25519.PublicKey
	Rate          int16
}

func (e InterestBearing) Type() ExtensionType { return ExtensionTypeInterestBearing }

func (e InterestBearing) preInit(mint, _ ed25519.PublicKey) solana.Instruction {
	return InitializeInterestBearingMint(mint, e.RateAuthority, e.Rate)
}

func (e InterestBearing) postInit(_, _ ed25519.PublicKey) []solana.Instruction { return nil }

// NonTransferable binds tokens to the account they are minted to.
type NonTransferable struct{}

func (e NonTransferable) Type() ExtensionType { return ExtensionTypeNonTransferable }

func (e NonTransferable) preInit(mint, _ ed25519.PublicKey) solana.Instruction {
	return InitializeNonTransferableMint(mint)
}

func (e NonTransferable) postInit(_, _ ed25519.PublicKey) []solana.Instruction { return nil }

// PermanentDelegate grants unconditional transfer and burn rights.
type PermanentDelegate struct {
	Delegate ed25519.PublicKey
}

func (e PermanentDelegate) Type() ExtensionType { return ExtensionTypePermanentDelegate }

func (e PermanentDelegate) preInit(mint, _ ed25519.PublicKey) solana.Instruction {
	return InitializePermanentDelegate(mint, e.Delegate)
}

func (e PermanentDelegate) postInit(_, _ ed25519.PublicKey) []solana.Instruction { return nil }

// TransferHook invokes a program on every transfer.
type TransferHook struct {
	Authority ed25519.PublicKey
	Program   ed25519.PublicKey
}

func (e TransferHook) Type() ExtensionType { return ExtensionTypeTransferHook }

func (e TransferHook) preInit(mint, _ ed25519.PublicKey) solana.Instruction {
	return InitializeTransferHook(mint, e.Authority, e.Program)
}

func (e TransferHook) postInit(_, _ ed25519.PublicKey) []solana.Instruction { return nil }

// CreateMint builds the complete mint creation sequence:
//
//	create_account -> pre-init extension instructions (in request order) ->
//	initialize_mint2 -> post-init extension instructions
//
// The account is sized for the base mint plus every requested extension's
// fixed TLV footprint. The extension program requires extension-type
// declarations before the base mint is initialized and metadata content
// after, so the ordering here is mandatory.
func CreateMint(funder, mint, mintAuthority, freezeAuthority ed25519.PublicKey, decimals uint8, lamports uint64, extensions ...Extension) []solana.Instruction {
	types := make([]ExtensionType, len(extensions))
	for i, e := range extensions {
		types[i] = e.Type()
	}

	instructions := []solana.Instruction{
		system.CreateAccount(funder, mint, ProgramKey, lamports, uint64(CalculateMintLen(types...))),
	}

	for _, e := range extensions {
		instructions = append(instructions, e.preInit(mint, mintAuthority))
	}

	instructions = append(instructions, InitializeMint2(mint, mintAuthority, freezeAuthority, decimals))

	for _, e := range extensions {
		instructions = append(instructions, e.postInit(mint, mintAuthority)...)
	}

	return instructions
}
