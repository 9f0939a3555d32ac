package system

import (
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/binary"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tokenops/splforge/pkg/solana"
)

func TestCreateAccount(t *testing.T) {
	keys := generateKeys(t, 3)

	instruction := CreateAccount(keys[0], keys[1], keys[2], 12345, 67890)
	assert.Equal(t, ProgramKey[:], []byte(instruction.Program))

	assert.Equal(t, 52, len(instruction.Data))
	assert.Equal(t, uint32(0), binary.LittleEndian.Uint32(instruction.Data))
	assert.Equal(t, uint64(12345), binary.LittleEndian.Uint64(instruction.Data[4:]))
	assert.Equal(t, uint64(67890), binary.LittleEndian.Uint64(instruction.Data[12:]))
	assert.Equal(t, []byte(keys[2]), instruction.Data[20:])

	require.Equal(t, 2, len(instruction.Accounts))
	for i := 0; i < 2; i++ {
		assert.True(t, instruction.Accounts[i].IsSigner)
		assert.True(t, instruction.Accounts[i].IsWritable)
	}

	decompiled, err := DecompileCreateAccount(solana.NewTransaction(keys[0], instruction).Message, 0)
	require.NoError(t, err)
	assert.Equal(t, keys[0], decompiled.Funder)
	assert.Equal(t, keys[1], decompiled.Address)
	assert.Equal(t, keys[2], decompiled.Owner)
	assert.Equal(t, uint64(12345), decompiled.Lamports)
	assert.Equal(t, uint64(67890), decompiled.Size)

	instruction.Data[0] = byte(commandTransfer)
	_, err = DecompileCreateAccount(solana.NewTransaction(keys[0], instruction).Message, 0)
	assert.Equal(t, solana.ErrIncorrectInstruction, err)

	instruction.Program = keys[2]
	_, err = DecompileCreateAccount(solana.NewTransaction(keys[0], instruction).Message, 0)
	assert.Equal(t, solana.ErrIncorrectProgram, err)

	_, err = DecompileCreateAccount(solana.Message{}, 1)
	assert.NotNil(t, err)
}

func TestAssign(t *testing.T) {
	keys := generateKeys(t, 2)

	instruction := Assign(keys[0], keys[1])

	assert.Equal(t, 36, len(instruction.Data))
	assert.Equal(t, uint32(1), binary.LittleEndian.Uint32(instruction.Data))
	assert.Equal(t, []byte(keys[1]), instruction.Data[4:])

	require.Equal(t, 1, len(instruction.Accounts))
	assert.True(t, instruction.Accounts[0].IsSigner)
	assert.True(t, instruction.Accounts[0].IsWritable)
}

func TestTransfer(t *testing.T) {
	keys := generateKeys(t, 2)

	instruction := Transfer(keys[0], keys[1], 123456789)

	assert.Equal(t, 12, len(instruction.Data))
	assert.Equal(t, uint32(2), binary.LittleEndian.Uint32(instruction.Data))
	assert.Equal(t, uint64(123456789), binary.LittleEndian.Uint64(instruction.Data[4:]))

	require.Equal(t, 2, len(instruction.Accounts))
	assert.True(t, instruction.Accounts[0].IsSigner)
	assert.True(t, instruction.Accounts[0].IsWritable)
	assert.False(t, instruction.Accounts[1].IsSigner)
	assert.True(t, instruction.Accounts[1].IsWritable)

	decompiled, err := DecompileTransfer(solana.NewTransaction(keys[0], instruction).Message, 0)
	require.NoError(t, err)
	assert.Equal(t, keys[0], decompiled.From)
	assert.Equal(t, keys[1], decompiled.To)
	assert.Equal(t, uint64(123456789), decompiled.Lamports)

	instruction.Data = instruction.Data[:8]
	_, err = DecompileTransfer(solana.NewTransaction(keys[0], instruction).Message, 0)
	assert.True(t, strings.Contains(err.Error(), "invalid instruction data size"))

	instruction.Data = nil
	_, err = DecompileTransfer(solana.NewTransaction(keys[0], instruction).Message, 0)
	assert.Equal(t, solana.ErrIncorrectInstruction, err)
}

func TestTransferMany(t *testing.T) {
	keys := generateKeys(t, 3)

	instructions := TransferMany(keys[0],
		TransferParams{To: keys[1], Lamports: 10},
		TransferParams{To: keys[2], Lamports: 20},
	)

	require.Equal(t, 2, len(instructions))
	for i, amount := range []uint64{10, 20} {
		assert.Equal(t, uint32(2), binary.LittleEndian.Uint32(instructions[i].Data))
		assert.Equal(t, amount, binary.LittleEndian.Uint64(instructions[i].Data[4:]))
		assert.Equal(t, keys[0], instructions[i].Accounts[0].PublicKey)
		assert.Equal(t, keys[i+1], instructions[i].Accounts[1].PublicKey)
	}

	assert.Empty(t, TransferMany(keys[0]))
}

func TestCreateAccountWithSeed(t *testing.T) {
	keys := generateKeys(t, 4)

	instruction, err := CreateAccountWithSeed(keys[0], keys[1], keys[2], keys[3], "seed", 500, 200)
	require.NoError(t, err)

	// tag + base + (len + seed) + lamports + space + owner
	require.Equal(t, 4+32+8+4+8+8+32, len(instruction.Data))
	assert.Equal(t, uint32(3), binary.LittleEndian.Uint32(instruction.Data))
	assert.Equal(t, []byte(keys[2]), instruction.Data[4:36])
	assert.Equal(t, uint64(4), binary.LittleEndian.Uint64(instruction.Data[36:]))
	assert.Equal(t, "seed", string(instruction.Data[44:48]))
	assert.Equal(t, uint64(500), binary.LittleEndian.Uint64(instruction.Data[48:]))
	assert.Equal(t, uint64(200), binary.LittleEndian.Uint64(instruction.Data[56:]))
	assert.Equal(t, []byte(keys[3]), instruction.Data[64:])

	require.Equal(t, 3, len(instruction.Accounts))
	assert.True(t, instruction.Accounts[0].IsSigner)
	assert.True(t, instruction.Accounts[0].IsWritable)
	assert.False(t, instruction.Accounts[1].IsSigner)
	assert.True(t, instruction.Accounts[1].IsWritable)
	assert.True(t, instruction.Accounts[2].IsSigner)
	assert.False(t, instruction.Accounts[2].IsWritable)

	_, err = CreateAccountWithSeed(keys[0], keys[1], keys[2], keys[3], strings.Repeat("a", MaxSeedLength+1), 500, 200)
	assert.Equal(t, ErrMaxSeedLengthExceeded, err)
}

func TestAssignWithSeed(t *testing.T) {
	keys := generateKeys(t, 3)

	instruction, err := AssignWithSeed(keys[0], keys[1], keys[2], "vault")
	require.NoError(t, err)

	require.Equal(t, 4+32+8+5+32, len(instruction.Data))
	assert.Equal(t, uint32(10), binary.LittleEndian.Uint32(instruction.Data))
	assert.Equal(t, []byte(keys[1]), instruction.Data[4:36])
	assert.Equal(t, uint64(5), binary.LittleEndian.Uint64(instruction.Data[36:]))
	assert.Equal(t, "vault", string(instruction.Data[44:49]))
	assert.Equal(t, []byte(keys[2]), instruction.Data[49:])

	require.Equal(t, 2, len(instruction.Accounts))
	assert.False(t, instruction.Accounts[0].IsSigner)
	assert.True(t, instruction.Accounts[0].IsWritable)
	assert.True(t, instruction.Accounts[1].IsSigner)
	assert.False(t, instruction.Accounts[1].IsWritable)

	_, err = AssignWithSeed(keys[0], keys[1], keys[2], strings.Repeat("a", MaxSeedLength+1))
	assert.Equal(t, ErrMaxSeedLengthExceeded, err)
}

func TestAllocate(t *testing.T) {
	keys := generateKeys(t, 1)

	instruction := Allocate(keys[0], 1024)

	assert.Equal(t, 12, len(instruction.Data))
	assert.Equal(t, uint32(8), binary.LittleEndian.Uint32(instruction.Data))
	assert.Equal(t, uint64(1024), binary.LittleEndian.Uint64(instruction.Data[4:]))

	require.Equal(t, 1, len(instruction.Accounts))
	assert.True(t, instruction.Accounts[0].IsSigner)
	assert.True(t, instruction.Accounts[0].IsWritable)
}

func TestAllocateWithSeed(t *testing.T) {
	keys := generateKeys(t, 3)

	instruction, err := AllocateWithSeed(keys[0], keys[1], keys[2], "space", 2048)
	require.NoError(t, err)

	require.Equal(t, 4+32+8+5+8+32, len(instruction.Data))
	assert.Equal(t, uint32(9), binary.LittleEndian.Uint32(instruction.Data))
	assert.Equal(t, []byte(keys[1]), instruction.Data[4:36])
	assert.Equal(t, uint64(5), binary.LittleEndian.Uint64(instruction.Data[36:]))
	assert.Equal(t, "space", string(instruction.Data[44:49]))
	assert.Equal(t, uint64(2048), binary.LittleEndian.Uint64(instruction.Data[49:]))
	assert.Equal(t, []byte(keys[2]), instruction.Data[57:])

	require.Equal(t, 2, len(instruction.Accounts))
	assert.False(t, instruction.Accounts[0].IsSigner)
	assert.True(t, instruction.Accounts[1].IsSigner)
}

func TestTransferWithSeed(t *testing.T) {
	keys := generateKeys(t, 4)

	instruction, err := TransferWithSeed(keys[0], keys[1], keys[2], keys[3], "hot", 777)
	require.NoError(t, err)

	require.Equal(t, 4+8+8+3+32, len(instruction.Data))
	assert.Equal(t, uint32(11), binary.LittleEndian.Uint32(instruction.Data))
	assert.Equal(t, uint64(777), binary.LittleEndian.Uint64(instruction.Data[4:]))
	assert.Equal(t, uint64(3), binary.LittleEndian.Uint64(instruction.Data[12:]))
	assert.Equal(t, "hot", string(instruction.Data[20:23]))
	assert.Equal(t, []byte(keys[3]), instruction.Data[23:])

	require.Equal(t, 3, len(instruction.Accounts))
	assert.False(t, instruction.Accounts[0].IsSigner)
	assert.True(t, instruction.Accounts[0].IsWritable)
	assert.True(t, instruction.Accounts[1].IsSigner)
	assert.False(t, instruction.Accounts[1].IsWritable)
	assert.False(t, instruction.Accounts[2].IsSigner)
	assert.True(t, instruction.Accounts[2].IsWritable)

	_, err = TransferWithSeed(keys[0], keys[1], keys[2], keys[3], strings.Repeat("a", MaxSeedLength+1), 777)
	assert.Equal(t, ErrMaxSeedLengthExceeded, err)
}

func TestCreateAddressWithSeed(t *testing.T) {
	keys := generateKeys(t, 2)

	derived, err := CreateAddressWithSeed(keys[0], "seed", keys[1])
	require.NoError(t, err)
	require.Equal(t, ed25519.PublicKeySize, len(derived))

	h := sha256.New()
	h.Write(keys[0])
	h.Write([]byte("seed"))
	h.Write(keys[1])
	assert.Equal(t, h.Sum(nil), []byte(derived))

	again, err := CreateAddressWithSeed(keys[0], "seed", keys[1])
	require.NoError(t, err)
	assert.Equal(t, derived, again)

	other, err := CreateAddressWithSeed(keys[0], "seed2", keys[1])
	require.NoError(t, err)
	assert.NotEqual(t, derived, other)

	_, err = CreateAddressWithSeed(keys[0], strings.Repeat("a", MaxSeedLength+1), keys[1])
	assert.Equal(t, ErrMaxSeedLengthExceeded, err)

	badOwner := make([]byte, 32)
	copy(badOwner[32-len("ProgramDerivedAddress"):], "ProgramDerivedAddress")
	_, err = CreateAddressWithSeed(keys[0], "seed", badOwner)
	assert.NotNil(t, err)
}

func generateKeys(t *testing.T, amount int) []ed25519.PublicKey {
	keys := make([]ed25519.PublicKey, amount)

	for i := 0; i < amount; i++ {
		pub, _, err := ed25519.GenerateKey(nil)
		require.NoError(t, err)
		keys[i] = pub
	}

	return keys
}
