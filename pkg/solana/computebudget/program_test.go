package compute_budget

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetComputeUnitLimit(t *testing.T) {
	instruction := SetComputeUnitLimit(50000)

	assert.Equal(t, []byte{2, 0x50, 0xC3, 0x00, 0x00}, instruction.Data)
	assert.Empty(t, instruction.Accounts)
	assert.EqualValues(t, ProgramKey, instruction.Program)

	parsed, err := ParseSetComputeUnitLimitIxnData(instruction.Data)
	require.NoError(t, err)
	assert.Equal(t, uint32(50000), parsed)

	_, err = ParseSetComputeUnitLimitIxnData(instruction.Data[:4])
	assert.Error(t, err)

	_, err = ParseSetComputeUnitLimitIxnData(SetComputeUnitPrice(1).Data)
	assert.Error(t, err)
}

func TestSetComputeUnitPrice(t *testing.T) {
	instruction := SetComputeUnitPrice(10_000)

	assert.Equal(t, []byte{3, 0x10, 0x27, 0, 0, 0, 0, 0, 0}, instruction.Data)
	assert.Empty(t, instruction.Accounts)

	parsed, err := ParseSetComputeUnitPriceIxnData(instruction.Data)
	require.NoError(t, err)
	assert.Equal(t, uint64(10_000), parsed)

	// Discriminator is stable across values.
	assert.Equal(t, instruction.Data[0], SetComputeUnitPrice(999999).Data[0])

	_, err = ParseSetComputeUnitPriceIxnData([]byte{3, 0})
	assert.Error(t, err)
}

func TestRequestHeapFrame(t *testing.T) {
	instruction := RequestHeapFrame(64 * 1024)

	assert.Equal(t, []byte{1, 0, 0, 1, 0}, instruction.Data)
	assert.Empty(t, instruction.Accounts)

	parsed, err := ParseRequestHeapFrameIxnData(instruction.Data)
	require.NoError(t, err)
	assert.Equal(t, uint32(64*1024), parsed)
}

func TestSetLoadedAccountsDataSizeLimit(t *testing.T) {
	instruction := SetLoadedAccountsDataSizeLimit(1_000_000)

	require.Equal(t, 5, len(instruction.Data))
	assert.Equal(t, byte(4), instruction.Data[0])
	assert.Empty(t, instruction.Accounts)

	parsed, err := ParseSetLoadedAccountsDataSizeLimitIxnData(instruction.Data)
	require.NoError(t, err)
	assert.Equal(t, uint32(1_000_000), parsed)
}

func TestPriority(t *testing.T) {
	for _, p := range []Priority{PriorityNone, PriorityLow, PriorityMedium, PriorityHigh, PriorityMax} {
		parsed, err := PriorityFromString(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, parsed)
	}

	parsed, err := PriorityFromString("HIGH")
	require.NoError(t, err)
	assert.Equal(t, PriorityHigh, parsed)

	_, err = PriorityFromString("urgent")
	assert.Error(t, err)
}
