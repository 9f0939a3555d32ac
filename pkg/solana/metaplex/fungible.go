package metaplex

import (
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/tokenops/splforge/pkg/solana"
	"github.com/tokenops/splforge/pkg/solana/token"
)

// CreateFungible builds a Create instruction for a fungible token whose
// mint is created in the same transaction: the mint signs, the mint
// authority doubles as update authority, and the legacy token program
// fills the token program slot.
func CreateFungible(mint, mintAuthority, payer ed25519.PublicKey, name, symbol, uri string, decimals uint8) (solana.Instruction, error) {
	metadata, err := GetMetadataAddress(mint)
	if err != nil {
		return solana.Instruction{}, errors.Wrap(err, "failed to derive metadata address")
	}

	return NewCreateBuilder().
		Metadata(metadata).
		Mint(mint, true).
		Authority(mintAuthority).
		Payer(payer).
		UpdateAuthority(mintAuthority, true).
		SplTokenProgram(token.ProgramKey).
		Name(name).
		Symbol(symbol).
		URI(uri).
		IsMutable(true).
		TokenStandard(TokenStandardFungible).
		Decimals(decimals).
		Build()
}

// CreateMetadata attaches metadata to an existing mint given its textual
// address. Malformed addresses are surfaced to the caller.
func CreateMetadata(mintAddress string, mintAuthority, payer ed25519.PublicKey, name, symbol, uri string) (solana.Instruction, error) {
	mint, err := solana.PublicKeyFromString(mintAddress)
	if err != nil {
		return solana.Instruction{}, errors.Wrap(err, "invalid mint address")
	}

	metadata, err := GetMetadataAddress(mint)
	if err != nil {
		return solana.Instruction{}, errors.Wrap(err, "failed to derive metadata address")
	}

	return NewCreateBuilder().
		Metadata(metadata).
		Mint(mint, false).
		Authority(mintAuthority).
		Payer(payer).
		UpdateAuthority(mintAuthority, true).
		SplTokenProgram(token.ProgramKey).
		Name(name).
		Symbol(symbol).
		URI(uri).
		IsMutable(true).
		TokenStandard(TokenStandardFungible).
		Build()
}

// UpdateAsset rewrites the mutable metadata content of a mint's asset.
func UpdateAsset(mint, authority, payer ed25519.PublicKey, data Data) (solana.Instruction, error) {
	metadata, err := GetMetadataAddress(mint)
	if err != nil {
		return solana.Instruction{}, errors.Wrap(err, "failed to derive metadata address")
	}

	return NewUpdateV1Builder().
		Authority(authority).
		Mint(mint).
		Metadata(metadata).
		Payer(payer).
		Data(data).
		Build()
}
