package token2022

import (
	"crypto/ed25519"

	"github.com/tokenops/splforge/pkg/solana"
	binenc "github.com/tokenops/splforge/pkg/solana/binary"
)

// ProgramKey is the address of the token extension (token-2022) program.
//
// Current key: TokenzQdBNbLqP5VEhdkAS6EPFLC1PHnBqCXEpPxuEb
var ProgramKey = solana.MustPublicKeyFromString("TokenzQdBNbLqP5VEhdkAS6EPFLC1PHnBqCXEpPxuEb")

// The token extension program shares the legacy token program's command
// space below 25 and claims the range above it for extensions. Extension
// families with multiple sub-commands carry a second discriminator byte.
const (
	commandInitializeMint2              byte = 20
	commandInitializeMintCloseAuthority byte = 25
	commandTransferFeeExtension         byte = 26
	commandInitializeNonTransferable    byte = 32
	commandInterestBearingExtension     byte = 33
	commandInitializePermanentDelegate  byte = 35
	commandTransferHookExtension        byte = 36
	commandMetadataPointerExtension     byte = 39

	subcommandInitialize byte = 0
)

// InitializeMint2 initializes a mint owned by the token extension program.
// Wire-compatible with the legacy token program's InitializeMint2.
//
// Reference: https://github.com/solana-labs/solana-program-library/blob/master/token/program-2022/src/instruction.rs
func InitializeMint2(mint, mintAuthority, freezeAuthority ed25519.PublicKey, decimals uint8) solana.Instruction {
	// Accounts expected by this instruction:
	//
	//   0. `[writable]` The mint to initialize.
	data := binenc.NewEncoder().
		Uint8(commandInitializeMint2).
		Uint8(decimals).
		Key(mintAuthority).
		OptionKey(freezeAuthority).
		Bytes()

	return solana.NewInstruction(
		ProgramKey,
		data,
		solana.NewAccountMeta(mint, false),
	)
}

// InitializeMintCloseAuthority declares the authority allowed to close the
// mint account. Must run before InitializeMint2.
//
// Reference: https://github.com/solana-labs/solana-program-library/blob/master/token/program-2022/src/instruction.rs
func InitializeMintCloseAuthority(mint, closeAuthority ed25519.PublicKey) solana.Instruction {
	// Accounts expected by this instruction:
	//
	//   0. `[writable]` The mint to initialize.
	data := binenc.NewEncoder().
		Uint8(commandInitializeMintCloseAuthority).
		OptionKey(closeAuthority).
		Bytes()

	return solana.NewInstruction(
		ProgramKey,
		data,
		solana.NewAccountMeta(mint, false),
	)
}

// InitializeMetadataPointer points readers at the account holding the
// mint's metadata, conventionally the mint itself.
//
// Reference: https://github.com/solana-labs/solana-program-library/blob/master/token/program-2022/src/extension/metadata_pointer/instruction.rs
func InitializeMetadataPointer(mint, authority, metadataAddress ed25519.PublicKey) solana.Instruction {
	// Accounts expected by this instruction:
	//
	//   0. `[writable]` The mint to initialize.
	data := binenc.NewEncoder().
		Uint8(commandMetadataPointerExtension).
		Uint8(subcommandInitialize).
		Key(authority).
		Key(metadataAddress).
		Bytes()

	return solana.NewInstruction(
		ProgramKey,
		data,
		solana.NewAccountMeta(mint, false),
	)
}

// InitializeTransferFeeConfig configures a fee withheld on every transfer
// of the mint's tokens.
//
// Reference: https://github.com/solana-labs/solana-program-library/blob/master/token/program-2022/src/extension/transfer_fee/instruction.rs
func InitializeTransferFeeConfig(mint, configAuthority, withdrawAuthority ed25519.PublicKey, basisPoints uint16, maxFee uint64) solana.Instruction {
	// Accounts expected by this instruction:
	//
	//   0. `[writable]` The mint to initialize.
	data := binenc.NewEncoder().
		Uint8(commandTransferFeeExtension).
		Uint8(subcommandInitialize).
		OptionKey(configAuthority).
		OptionKey(withdrawAuthority).
		Uint16(basisPoints).
		Uint64(maxFee).
		Bytes()

	return solana.NewInstruction(
		ProgramKey,
		data,
		solana.NewAccountMeta(mint, false),
	)
}

// InitializeInterestBearingMint sets the continuously compounding interest
// rate displayed for the mint's token amounts. The rate is in basis points
// and may be negative.
//
// Reference: https://github.com/solana-labs/solana-program-library/blob/master/token/program-2022/src/extension/interest_bearing_mint/instruction.rs
func InitializeInterestBearingMint(mint, rateAuthority ed25519.PublicKey, rate int16) solana.Instruction {
	// Accounts expected by this instruction:
	//
	//   0. `[writable]` The mint to initialize.
	data := binenc.NewEncoder().
		Uint8(commandInterestBearingExtension).
		Uint8(subcommandInitialize).
		Key(rateAuthority).
		Int16(rate).
		Bytes()

	return solana.NewInstruction(
		ProgramKey,
		data,
		solana.NewAccountMeta(mint, false),
	)
}

// InitializeNonTransferableMint makes every token of the mint permanently
// bound to the account it is minted to.
//
// Reference: https://github.com/solana-labs/solana-program-library/blob/master/token/program-2022/src/instruction.rs
func InitializeNonTransferableMint(mint ed25519.PublicKey) solana.Instruction {
	// Accounts expected by this instruction:
	//
	//   0. `[writable]` The mint to initialize.
	return solana.NewInstruction(
		ProgramKey,
		[]byte{commandInitializeNonTransferable},
		solana.NewAccountMeta(mint, false),
	)
}

// InitializePermanentDelegate grants an authority unconditional transfer
// and burn rights over every account of the mint.
//
// Reference: https://github.com/solana-labs/solana-program-library/blob/master/token/program-2022/src/instruction.rs
func InitializePermanentDelegate(mint, delegate ed25519.PublicKey) solana.Instruction {
	// Accounts expected by this instruction:
	//
	//   0. `[writable]` The mint to initialize.
	data := binenc.NewEncoder().
		Uint8(commandInitializePermanentDelegate).
		Key(delegate).
		Bytes()

	return solana.NewInstruction(
		ProgramKey,
		data,
		solana.NewAccountMeta(mint, false),
	)
}

// InitializeTransferHook registers a program invoked on every transfer of
// the mint's tokens.
//
// Reference: https://github.com/solana-labs/solana-program-library/blob/master/token/program-2022/src/extension/transfer_hook/instruction.rs
func InitializeTransferHook(mint, authority, hookProgram ed25519.PublicKey) solana.Instruction {
	// Accounts expected by this instruction:
	//
	//   0. `[writable]` The mint to initialize.
	data := binenc.NewEncoder().
		Uint8(commandTransferHookExtension).
		Uint8(subcommandInitialize).
		Key(authority).
		Key(hookProgram).
		Bytes()

	return solana.NewInstruction(
		ProgramKey,
		data,
		solana.NewAccountMeta(mint, false),
	)
}
