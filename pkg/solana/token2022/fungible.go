package token2022

import (
	"crypto/ed25519"

	"github.com/tokenops/splforge/pkg/solana"
)

// CreateFungible builds the standard fungible mint creation sequence with
// in-mint metadata and an optional close authority:
//
//	create_account, initialize_metadata_pointer,
//	[initialize_mint_close_authority,] initialize_mint2,
//	initialize_metadata
//
// The funder pays for the account; the mint authority doubles as the
// metadata update authority unless the metadata config overrides it.
func CreateFungible(funder, mint, mintAuthority ed25519.PublicKey, decimals uint8, lamports uint64, metadata Metadata, closeAuthority ed25519.PublicKey) []solana.Instruction {
	extensions := []Extension{metadata}
	if len(closeAuthority) > 0 {
		extensions = append(extensions, CloseAuthority{Authority: closeAuthority})
	}

	return CreateMint(funder, mint, mintAuthority, nil, decimals, lamports, extensions...)
}
