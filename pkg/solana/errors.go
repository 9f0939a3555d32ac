package solana

import (
	"fmt"
)

// CustomError is the program-defined error code returned by an on-chain
// program when an instruction fails. Each program package declares its own
// code space as CustomError constants.
type CustomError int

func (c CustomError) Error() string {
	return fmt.Sprintf("custom program error: %d", int(c))
}

// MissingFieldError indicates a staged builder was asked to emit an
// instruction before every required field was set. This is a programming
// mistake on the caller's side, not a runtime condition.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("required field not set: %s", e.Field)
}
