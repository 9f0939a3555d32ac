// Package metaplex builds instructions for the token metadata program,
// which attaches names, symbols, uris and royalty configuration to token
// mints via program derived accounts.
package metaplex

import (
	"crypto/ed25519"

	"github.com/tokenops/splforge/pkg/solana"
)

// ProgramKey is the address of the token metadata program.
//
// Current key: metaqbxxUerdq28cj1RbAWkYQm3ybzjb6a8bt518x1s
var ProgramKey = solana.MustPublicKeyFromString("metaqbxxUerdq28cj1RbAWkYQm3ybzjb6a8bt518x1s")

const (
	commandCreate   byte = 42
	commandUpdateV1 byte = 50
)

// GetMetadataAddress derives the metadata account for a mint.
//
// Reference: https://developers.metaplex.com/token-metadata/pda
func GetMetadataAddress(mint ed25519.PublicKey) (ed25519.PublicKey, error) {
	return solana.FindProgramAddress(
		ProgramKey,
		[]byte("metadata"),
		ProgramKey,
		mint,
	)
}

// GetMasterEditionAddress derives the master edition account for a mint.
func GetMasterEditionAddress(mint ed25519.PublicKey) (ed25519.PublicKey, error) {
	return solana.FindProgramAddress(
		ProgramKey,
		[]byte("metadata"),
		ProgramKey,
		mint,
		[]byte("edition"),
	)
}

// GetTokenRecordAddress derives the token record account binding a
// programmable asset to a specific token account.
func GetTokenRecordAddress(mint, token ed25519.PublicKey) (ed25519.PublicKey, error) {
	return solana.FindProgramAddress(
		ProgramKey,
		[]byte("metadata"),
		ProgramKey,
		mint,
		[]byte("token_record"),
		token,
	)
}

// Asset bundles the derived account set of a mint.
type Asset struct {
	Mint          ed25519.PublicKey
	Metadata      ed25519.PublicKey
	MasterEdition ed25519.PublicKey
}

// NewAsset derives the metadata and master edition addresses of a mint.
func NewAsset(mint ed25519.PublicKey) (Asset, error) {
	metadata, err := GetMetadataAddress(mint)
	if err != nil {
		return Asset{}, err
	}

	edition, err := GetMasterEditionAddress(mint)
	if err != nil {
		return Asset{}, err
	}

	return Asset{
		Mint:          mint,
		Metadata:      metadata,
		MasterEdition: edition,
	}, nil
}
