package system

import (
	"bytes"
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/tokenops/splforge/pkg/solana"
	binenc "github.com/tokenops/splforge/pkg/solana/binary"
)

var ProgramKey [32]byte

// MaxSeedLength is the maximum length of a derivation seed accepted by the
// *WithSeed instruction family.
//
// Reference: https://github.com/solana-labs/solana/blob/f02a78d8fff2dd7297dc6ce6eb5a68a3002f5359/sdk/program/src/pubkey.rs#L22
const MaxSeedLength = 32

var ErrMaxSeedLengthExceeded = errors.New("maximum seed length exceeded")

const (
	commandCreateAccount uint32 = iota
	commandAssign
	commandTransfer
	commandCreateAccountWithSeed
	// nolint:varcheck,deadcode,unused
	commandAdvanceNonceAccount
	// nolint:varcheck,deadcode,unused
	commandWithdrawNonceAccount
	// nolint:varcheck,deadcode,unused
	commandInitializeNonceAccount
	// nolint:varcheck,deadcode,unused
	commandAuthorizeNonceAccount
	commandAllocate
	commandAllocateWithSeed
	commandAssignWithSeed
	commandTransferWithSeed
)

// Reference: https://github.com/solana-labs/solana/blob/f02a78d8fff2dd7297dc6ce6eb5a68a3002f5359/sdk/src/system_instruction.rs#L58-L72
func CreateAccount(funder, address, owner ed25519.PublicKey, lamports, size uint64) solana.Instruction {
	// # Account references
	//   0. [WRITE, SIGNER] Funding account
	//   1. [WRITE, SIGNER] New account
	//
	// CreateAccount {
	//   // Number of lamports to transfer to the new account
	//   lamports: u64,
	//   // Number of bytes of memory to allocate
	//   space: u64,
	//
	//   //Address of program that will own the new account
	//   owner: Pubkey,
	// }
	//
	data := make([]byte, 4+2*8+32)
	binary.LittleEndian.PutUint32(data, commandCreateAccount)
	binary.LittleEndian.PutUint64(data[4:], lamports)
	binary.LittleEndian.PutUint64(data[4+8:], size)
	copy(data[4+2*8:], owner)

	return solana.NewInstruction(
		ProgramKey[:],
		data,
		solana.NewAccountMeta(funder, true),
		solana.NewAccountMeta(address, true),
	)
}

// Reference: https://github.com/solana-labs/solana/blob/f02a78d8fff2dd7297dc6ce6eb5a68a3002f5359/sdk/src/system_instruction.rs#L74-L79
func Assign(address, owner ed25519.PublicKey) solana.Instruction {
	// # Account references
	//   0. [WRITE, SIGNER] Assigned account public key
	data := make([]byte, 4+32)
	binary.LittleEndian.PutUint32(data, commandAssign)
	copy(data[4:], owner)

	return solana.NewInstruction(
		ProgramKey[:],
		data,
		solana.NewAccountMeta(address, true),
	)
}

// Reference: https://github.com/solana-labs/solana/blob/f02a78d8fff2dd7297dc6ce6eb5a68a3002f5359/sdk/src/system_instruction.rs#L81-L86
func Transfer(from, to ed25519.PublicKey, lamports uint64) solana.Instruction {
	// # Account references
	//   0. [WRITE, SIGNER] Funding account
	//   1. [WRITE] Recipient account
	data := make([]byte, 4+8)
	binary.LittleEndian.PutUint32(data, commandTransfer)
	binary.LittleEndian.PutUint64(data[4:], lamports)

	return solana.NewInstruction(
		ProgramKey[:],
		data,
		solana.NewAccountMeta(from, true),
		solana.NewAccountMeta(to, false),
	)
}

// TransferParams is a single recipient of a TransferMany.
type TransferParams struct {
	To       ed25519.PublicKey
	Lamports uint64
}

// TransferMany produces one independent Transfer instruction per recipient,
// all funded by the same account, in argument order.
//
// Reference: https://github.com/solana-labs/solana/blob/f02a78d8fff2dd7297dc6ce6eb5a68a3002f5359/sdk/src/system_instruction.rs#L595-L600
func TransferMany(from ed25519.PublicKey, transfers ...TransferParams) []solana.Instruction {
	instructions := make([]solana.Instruction, len(transfers))
	for i, t := range transfers {
		instructions[i] = Transfer(from, t.To, t.Lamports)
	}
	return instructions
}

// Reference: https://github.com/solana-labs/solana/blob/f02a78d8fff2dd7297dc6ce6eb5a68a3002f5359/sdk/src/system_instruction.rs#L88-L103
func CreateAccountWithSeed(funder, address, base, owner ed25519.PublicKey, seed string, lamports, size uint64) (solana.Instruction, error) {
	// # Account references
	//   0. [WRITE, SIGNER] Funding account
	//   1. [WRITE] Created account
	//   2. [SIGNER] (optional) Base account
	//
	// CreateAccountWithSeed {
	//   base: Pubkey,
	//   seed: String,
	//   lamports: u64,
	//   space: u64,
	//   owner: Pubkey,
	// }
	//
	if len(seed) > MaxSeedLength {
		return solana.Instruction{}, ErrMaxSeedLengthExceeded
	}

	enc := binenc.NewEncoder().
		Uint32(commandCreateAccountWithSeed).
		Key(base).
		BincodeString(seed).
		Uint64(lamports).
		Uint64(size).
		Key(owner)

	return solana.NewInstruction(
		ProgramKey[:],
		enc.Bytes(),
		solana.NewAccountMeta(funder, true),
		solana.NewAccountMeta(address, false),
		solana.NewReadonlyAccountMeta(base, true),
	), nil
}

// Reference: https://github.com/solana-labs/solana/blob/f02a78d8fff2dd7297dc6ce6eb5a68a3002f5359/sdk/src/system_instruction.rs#L156-L165
func AssignWithSeed(address, base, owner ed25519.PublicKey, seed string) (solana.Instruction, error) {
	// # Account references
	//   0. [WRITE] Assigned account
	//   1. [SIGNER] Base account
	if len(seed) > MaxSeedLength {
		return solana.Instruction{}, ErrMaxSeedLengthExceeded
	}

	enc := binenc.NewEncoder().
		Uint32(commandAssignWithSeed).
		Key(base).
		BincodeString(seed).
		Key(owner)

	return solana.NewInstruction(
		ProgramKey[:],
		enc.Bytes(),
		solana.NewAccountMeta(address, false),
		solana.NewReadonlyAccountMeta(base, true),
	), nil
}

// Reference: https://github.com/solana-labs/solana/blob/f02a78d8fff2dd7297dc6ce6eb5a68a3002f5359/sdk/src/system_instruction.rs#L167-L172
func Allocate(address ed25519.PublicKey, size uint64) solana.Instruction {
	// # Account references
	//   0. [WRITE, SIGNER] New account
	data := make([]byte, 4+8)
	binary.LittleEndian.PutUint32(data, commandAllocate)
	binary.LittleEndian.PutUint64(data[4:], size)

	return solana.NewInstruction(
		ProgramKey[:],
		data,
		solana.NewAccountMeta(address, true),
	)
}

// Reference: https://github.com/solana-labs/solana/blob/f02a78d8fff2dd7297dc6ce6eb5a68a3002f5359/sdk/src/system_instruction.rs#L174-L185
func AllocateWithSeed(address, base, owner ed25519.PublicKey, seed string, size uint64) (solana.Instruction, error) {
	// # Account references
	//   0. [WRITE] Allocated account
	//   1. [SIGNER] Base account
	if len(seed) > MaxSeedLength {
		return solana.Instruction{}, ErrMaxSeedLengthExceeded
	}

	enc := binenc.NewEncoder().
		Uint32(commandAllocateWithSeed).
		Key(base).
		BincodeString(seed).
		Uint64(size).
		Key(owner)

	return solana.NewInstruction(
		ProgramKey[:],
		enc.Bytes(),
		solana.NewAccountMeta(address, false),
		solana.NewReadonlyAccountMeta(base, true),
	), nil
}

// TransferWithSeed moves lamports out of an account derived with
// CreateAddressWithSeed, authorized by the base account's signature.
//
// Reference: https://github.com/solana-labs/solana/blob/f02a78d8fff2dd7297dc6ce6eb5a68a3002f5359/sdk/src/system_instruction.rs#L187-L196
func TransferWithSeed(from, base, to, fromOwner ed25519.PublicKey, fromSeed string, lamports uint64) (solana.Instruction, error) {
	// # Account references
	//   0. [WRITE] Funding account
	//   1. [SIGNER] Base account
	//   2. [WRITE] Recipient account
	if len(fromSeed) > MaxSeedLength {
		return solana.Instruction{}, ErrMaxSeedLengthExceeded
	}

	enc := binenc.NewEncoder().
		Uint32(commandTransferWithSeed).
		Uint64(lamports).
		BincodeString(fromSeed).
		Key(fromOwner)

	return solana.NewInstruction(
		ProgramKey[:],
		enc.Bytes(),
		solana.NewAccountMeta(from, false),
		solana.NewReadonlyAccountMeta(base, true),
		solana.NewAccountMeta(to, false),
	), nil
}

// CreateAddressWithSeed deterministically derives the address targeted by
// the *WithSeed instruction family: sha256(base ‖ seed ‖ owner).
//
// Reference: https://github.com/solana-labs/solana/blob/f02a78d8fff2dd7297dc6ce6eb5a68a3002f5359/sdk/program/src/pubkey.rs#L131-L154
func CreateAddressWithSeed(base ed25519.PublicKey, seed string, owner ed25519.PublicKey) (ed25519.PublicKey, error) {
	if len(seed) > MaxSeedLength {
		return nil, ErrMaxSeedLengthExceeded
	}

	// Derived addresses must not collide with program derived addresses,
	// whose hash input ends with the PDA marker.
	marker := []byte("ProgramDerivedAddress")
	if len(owner) >= len(marker) && bytes.HasSuffix(owner, marker) {
		return nil, errors.New("owner cannot end with the PDA marker")
	}

	h := sha256.New()
	_, _ = h.Write(base)
	_, _ = h.Write([]byte(seed))
	_, _ = h.Write(owner)

	return h.Sum(nil), nil
}

type DecompiledCreateAccount struct {
	Funder  ed25519.PublicKey
	Address ed25519.PublicKey

	Lamports uint64
	Size     uint64
	Owner    ed25519.PublicKey
}

func DecompileCreateAccount(m solana.Message, index int) (*DecompiledCreateAccount, error) {
	if index >= len(m.Instructions) {
		return nil, errors.Errorf("instruction doesn't exist at %d", index)
	}

	var prefix [4]byte
	binary.LittleEndian.PutUint32(prefix[:], commandCreateAccount)
	i := m.Instructions[index]

	if !bytes.Equal(m.Accounts[i.ProgramIndex], ProgramKey[:]) {
		return nil, solana.ErrIncorrectProgram
	}
	if !bytes.HasPrefix(i.Data, prefix[:]) {
		return nil, solana.ErrIncorrectInstruction
	}

	if len(i.Accounts) != 2 {
		return nil, errors.Errorf("invalid number of accounts: %d", len(i.Accounts))
	}
	if len(i.Data) != 52 {
		return nil, errors.Errorf("invalid instruction data size: %d", len(i.Data))
	}

	v := &DecompiledCreateAccount{
		Funder:  m.Accounts[i.Accounts[0]],
		Address: m.Accounts[i.Accounts[1]],
	}
	v.Lamports = binary.LittleEndian.Uint64(i.Data[4:])
	v.Size = binary.LittleEndian.Uint64(i.Data[4+8:])
	v.Owner = make(ed25519.PublicKey, ed25519.PublicKeySize)
	copy(v.Owner, i.Data[4+2*8:])

	return v, nil
}

type DecompiledTransfer struct {
	From ed25519.PublicKey
	To   ed25519.PublicKey

	Lamports uint64
}

func DecompileTransfer(m solana.Message, index int) (*DecompiledTransfer, error) {
	if index >= len(m.Instructions) {
		return nil, errors.Errorf("instruction doesn't exist at %d", index)
	}

	var prefix [4]byte
	binary.LittleEndian.PutUint32(prefix[:], commandTransfer)
	i := m.Instructions[index]

	if !bytes.Equal(m.Accounts[i.ProgramIndex], ProgramKey[:]) {
		return nil, solana.ErrIncorrectProgram
	}
	if !bytes.HasPrefix(i.Data, prefix[:]) {
		return nil, solana.ErrIncorrectInstruction
	}

	if len(i.Accounts) != 2 {
		return nil, errors.Errorf("invalid number of accounts: %d", len(i.Accounts))
	}
	if len(i.Data) != 12 {
		return nil, errors.Errorf("invalid instruction data size: %d", len(i.Data))
	}

	return &DecompiledTransfer{
		From:     m.Accounts[i.Accounts[0]],
		To:       m.Accounts[i.Accounts[1]],
		Lamports: binary.LittleEndian.Uint64(i.Data[4:]),
	}, nil
}
