package token

import (
	"bytes"
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/tokenops/splforge/pkg/solana"
	"github.com/tokenops/splforge/pkg/solana/system"
)

// AssociatedTokenAccountProgramKey is the address of the associated token
// account program.
//
// Current key: ATokenGPvbdGVxr1b2hvZbsiqW5xWH25efTNsLJA8knL
var AssociatedTokenAccountProgramKey = ed25519.PublicKey{140, 151, 37, 143, 78, 36, 137, 241, 187, 61, 16, 41, 20, 142, 13, 131, 11, 90, 19, 153, 218, 255, 16, 132, 4, 142, 123, 216, 219, 233, 248, 89}

const (
	commandCreate           byte = 0
	commandCreateIdempotent byte = 1
)

// GetAssociatedAccount returns the associated account address for an SPL
// token held by the legacy token program.
//
// Reference: https://spl.solana.com/associated-token-account#finding-the-associated-token-account-address
func GetAssociatedAccount(wallet, mint ed25519.PublicKey) (ed25519.PublicKey, error) {
	return GetAssociatedAccountWithProgram(wallet, mint, ProgramKey)
}

// GetAssociatedAccountWithProgram returns the associated account address
// for a mint owned by the provided token program (legacy or extension).
func GetAssociatedAccountWithProgram(wallet, mint, tokenProgram ed25519.PublicKey) (ed25519.PublicKey, error) {
	return solana.FindProgramAddress(
		AssociatedTokenAccountProgramKey,
		wallet,
		tokenProgram,
		mint,
	)
}

// Reference: https://github.com/solana-labs/solana-program-library/blob/d9d373201a9c8d4e54083e76d1e1e42874e21e52/associated-token-account/program/src/instruction.rs#L15-L27
func CreateAssociatedTokenAccount(funder, wallet, mint ed25519.PublicKey) (solana.Instruction, ed25519.PublicKey, error) {
	return createAssociatedTokenAccount(funder, wallet, mint, ProgramKey, commandCreate)
}

// CreateAssociatedTokenAccountIdempotent is CreateAssociatedTokenAccount
// except it succeeds when the account already exists with the expected
// mint and owner.
//
// Reference: https://github.com/solana-labs/solana-program-library/blob/d9d373201a9c8d4e54083e76d1e1e42874e21e52/associated-token-account/program/src/instruction.rs#L29-L42
func CreateAssociatedTokenAccountIdempotent(funder, wallet, mint ed25519.PublicKey) (solana.Instruction, ed25519.PublicKey, error) {
	return createAssociatedTokenAccount(funder, wallet, mint, ProgramKey, commandCreateIdempotent)
}

// CreateAssociatedTokenAccountForProgram targets a mint owned by a
// non-legacy token program (the token extension program).
func CreateAssociatedTokenAccountForProgram(funder, wallet, mint, tokenProgram ed25519.PublicKey) (solana.Instruction, ed25519.PublicKey, error) {
	return createAssociatedTokenAccount(funder, wallet, mint, tokenProgram, commandCreate)
}

func CreateAssociatedTokenAccountIdempotentForProgram(funder, wallet, mint, tokenProgram ed25519.PublicKey) (solana.Instruction, ed25519.PublicKey, error) {
	return createAssociatedTokenAccount(funder, wallet, mint, tokenProgram, commandCreateIdempotent)
}

func createAssociatedTokenAccount(funder, wallet, mint, tokenProgram ed25519.PublicKey, command byte) (solana.Instruction, ed25519.PublicKey, error) {
	// Accounts expected by this instruction:
	//
	//   0. `[writable, signer]` Funding account
	//   1. `[writable]` Associated token account to be created
	//   2. `[]` Wallet address for the new account
	//   3. `[]` The token mint
	//   4. `[]` System program
	//   5. `[]` Token program
	addr, err := GetAssociatedAccountWithProgram(wallet, mint, tokenProgram)
	if err != nil {
		return solana.Instruction{}, nil, err
	}

	return solana.NewInstruction(
		AssociatedTokenAccountProgramKey,
		[]byte{command},
		solana.NewAccountMeta(funder, true),
		solana.NewAccountMeta(addr, false),
		solana.NewReadonlyAccountMeta(wallet, false),
		solana.NewReadonlyAccountMeta(mint, false),
		solana.NewReadonlyAccountMeta(system.ProgramKey[:], false),
		solana.NewReadonlyAccountMeta(tokenProgram, false),
	), addr, nil
}

type DecompiledCreateAssociatedAccount struct {
	Funder  ed25519.PublicKey
	Address ed25519.PublicKey
	Owner   ed25519.PublicKey
	Mint    ed25519.PublicKey

	Idempotent bool
}

func DecompileCreateAssociatedAccount(m solana.Message, index int) (*DecompiledCreateAssociatedAccount, error) {
	if index >= len(m.Instructions) {
		return nil, errors.Errorf("instruction doesn't exist at %d", index)
	}

	i := m.Instructions[index]
	if !bytes.Equal(m.Accounts[i.ProgramIndex], AssociatedTokenAccountProgramKey) {
		return nil, solana.ErrIncorrectProgram
	}
	if len(i.Data) != 1 || i.Data[0] > commandCreateIdempotent {
		return nil, solana.ErrIncorrectInstruction
	}
	if len(i.Accounts) != 6 {
		return nil, errors.Errorf("invalid number of accounts: %d (expected %d)", len(i.Accounts), 6)
	}

	if !bytes.Equal(m.Accounts[i.Accounts[4]], system.ProgramKey[:]) {
		return nil, errors.Errorf("system program key mismatch")
	}

	return &DecompiledCreateAssociatedAccount{
		Funder:     m.Accounts[i.Accounts[0]],
		Address:    m.Accounts[i.Accounts[1]],
		Owner:      m.Accounts[i.Accounts[2]],
		Mint:       m.Accounts[i.Accounts[3]],
		Idempotent: i.Data[0] == commandCreateIdempotent,
	}, nil
}
