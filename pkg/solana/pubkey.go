package solana

import (
	"crypto/ed25519"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
)

var ErrInvalidAddressLength = errors.New("invalid address length")

// PublicKeyFromString parses a base58 encoded address into a public key.
//
// The input must decode to exactly 32 bytes; anything else is a
// malformed address and is surfaced to the caller.
func PublicKeyFromString(value string) (ed25519.PublicKey, error) {
	decoded, err := base58.Decode(value)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode address")
	}
	if len(decoded) != ed25519.PublicKeySize {
		return nil, ErrInvalidAddressLength
	}
	return decoded, nil
}

// MustPublicKeyFromString parses a base58 encoded address, panicking on
// failure. Reserved for protocol constants known at compile time.
func MustPublicKeyFromString(value string) ed25519.PublicKey {
	pub, err := PublicKeyFromString(value)
	if err != nil {
		panic(err)
	}
	return pub
}

// Address is a fixed-size public key, used in place of ed25519.PublicKey
// inside borsh-encoded payload structs where the wire format requires a raw
// 32 byte array with no length prefix.
type Address [32]byte

// NewAddress converts a public key into a fixed-size address.
func NewAddress(pub ed25519.PublicKey) Address {
	var a Address
	copy(a[:], pub)
	return a
}

// PublicKey returns the address as an ed25519 public key.
func (a Address) PublicKey() ed25519.PublicKey {
	pub := make(ed25519.PublicKey, ed25519.PublicKeySize)
	copy(pub, a[:])
	return pub
}

func (a Address) String() string {
	return base58.Encode(a[:])
}
