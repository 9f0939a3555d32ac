package compute_budget

import (
	"crypto/ed25519"
	"encoding/binary"
	"strings"

	"github.com/pkg/errors"

	"github.com/tokenops/splforge/pkg/solana"
)

// ComputeBudget111111111111111111111111111111
var ProgramKey = ed25519.PublicKey{3, 6, 70, 111, 229, 33, 23, 50, 255, 236, 173, 186, 114, 195, 155, 231, 188, 140, 229, 187, 197, 247, 18, 107, 44, 67, 155, 58, 64, 0, 0, 0}

const (
	// nolint:varcheck,deadcode,unused
	commandRequestUnitsDeprecated uint8 = iota
	commandRequestHeapFrame
	commandSetComputeUnitLimit
	commandSetComputeUnitPrice
	commandSetLoadedAccountsDataSizeLimit
)

// RequestHeapFrame requests a transaction-wide heap region of the given
// size in bytes, a multiple of 1024 between 32KiB and 256KiB.
func RequestHeapFrame(size uint32) solana.Instruction {
	data := make([]byte, 1+4)
	data[0] = commandRequestHeapFrame
	binary.LittleEndian.PutUint32(data[1:], size)

	return solana.NewInstruction(
		ProgramKey[:],
		data,
	)
}

func SetComputeUnitLimit(computeUnitLimit uint32) solana.Instruction {
	data := make([]byte, 1+4)
	data[0] = commandSetComputeUnitLimit
	binary.LittleEndian.PutUint32(data[1:], computeUnitLimit)

	return solana.NewInstruction(
		ProgramKey[:],
		data,
	)
}

// SetComputeUnitPrice sets the priority fee in micro-lamports per compute
// unit.
func SetComputeUnitPrice(computeUnitPrice uint64) solana.Instruction {
	data := make([]byte, 1+8)
	data[0] = commandSetComputeUnitPrice
	binary.LittleEndian.PutUint64(data[1:], computeUnitPrice)

	return solana.NewInstruction(
		ProgramKey[:],
		data,
	)
}

// SetLoadedAccountsDataSizeLimit caps the bytes of account data the
// transaction may load.
func SetLoadedAccountsDataSizeLimit(limit uint32) solana.Instruction {
	data := make([]byte, 1+4)
	data[0] = commandSetLoadedAccountsDataSizeLimit
	binary.LittleEndian.PutUint32(data[1:], limit)

	return solana.NewInstruction(
		ProgramKey[:],
		data,
	)
}

func ParseRequestHeapFrameIxnData(data []byte) (uint32, error) {
	if len(data) != 5 {
		return 0, errors.New("invalid length")
	}

	if data[0] != commandRequestHeapFrame {
		return 0, errors.New("invalid instruction")
	}

	return binary.LittleEndian.Uint32(data[1:]), nil
}

func ParseSetComputeUnitLimitIxnData(data []byte) (uint32, error) {
	if len(data) != 5 {
		return 0, errors.New("invalid length")
	}

	if data[0] != commandSetComputeUnitLimit {
		return 0, errors.New("invalid instruction")
	}

	return binary.LittleEndian.Uint32(data[1:]), nil
}

func ParseSetComputeUnitPriceIxnData(data []byte) (uint64, error) {
	if len(data) != 9 {
		return 0, errors.New("invalid length")
	}

	if data[0] != commandSetComputeUnitPrice {
		return 0, errors.New("invalid instruction")
	}

	return binary.LittleEndian.Uint64(data[1:]), nil
}

func ParseSetLoadedAccountsDataSizeLimitIxnData(data []byte) (uint32, error) {
	if len(data) != 5 {
		return 0, errors.New("invalid length")
	}

	if data[0] != commandSetLoadedAccountsDataSizeLimit {
		return 0, errors.New("invalid instruction")
	}

	return binary.LittleEndian.Uint32(data[1:]), nil
}

// Priority is a coarse fee tier a caller can attach to a request. Nothing
// here consumes it yet; fee selection belongs to the submission layer.
type Priority uint8

const (
	PriorityNone Priority = iota
	PriorityLow
	PriorityMedium
	PriorityHigh
	PriorityMax
)

func (p Priority) String() string {
	switch p {
	case PriorityNone:
		return "none"
	case PriorityLow:
		return "low"
	case PriorityMedium:
		return "medium"
	case PriorityHigh:
		return "high"
	case PriorityMax:
		return "max"
	default:
		return "unknown"
	}
}

func PriorityFromString(value string) (Priority, error) {
	switch strings.ToLower(value) {
	case "none":
		return PriorityNone, nil
	case "low":
		return PriorityLow, nil
	case "medium":
		return PriorityMedium, nil
	case "high":
		return PriorityHigh, nil
	case "max":
		return PriorityMax, nil
	default:
		return PriorityNone, errors.Errorf("unknown priority: %s", value)
	}
}
