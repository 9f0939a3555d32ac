// Package binary implements the canonical wire codec shared by the
// instruction builders: fixed-width little-endian integers, one byte bools
// and option flags, length-prefixed strings, and raw fixed-size byte arrays.
//
// Two string framings exist on the wire. Borsh-style payloads (token
// metadata, metaplex arguments) prefix with a 4 byte little-endian length;
// bincode-style payloads (system program seeds) prefix with an 8 byte
// little-endian length.
package binary

import (
	"crypto/ed25519"
	"encoding/binary"
	"math"

	"github.com/pkg/errors"
)

var (
	ErrUnexpectedEOF    = errors.New("unexpected end of data")
	ErrTrailingBytes    = errors.New("unexpected trailing bytes")
	ErrLengthOverflow   = errors.New("length prefix overflow")
	ErrInvalidBool      = errors.New("invalid bool byte")
	ErrInvalidOptionTag = errors.New("invalid option tag")
)

// Encoder accumulates a canonical little-endian encoding. Encoding is
// deterministic: the same sequence of calls always yields the same bytes,
// so a size-probing pass and an emitting pass can never disagree.
type Encoder struct {
	buf []byte
	err error
}

func NewEncoder() *Encoder {
	return &Encoder{}
}

// Bytes returns the encoded bytes.
func (e *Encoder) Bytes() []byte {
	return e.buf
}

// Len returns the serialized length so far, allowing an encode pass to be
// used purely as a size probe.
func (e *Encoder) Len() int {
	return len(e.buf)
}

func (e *Encoder) Err() error {
	return e.err
}

func (e *Encoder) Uint8(v uint8) *Encoder {
	e.buf = append(e.buf, v)
	return e
}

func (e *Encoder) Uint16(v uint16) *Encoder {
	e.buf = binary.LittleEndian.AppendUint16(e.buf, v)
	return e
}

func (e *Encoder) Uint32(v uint32) *Encoder {
	e.buf = binary.LittleEndian.AppendUint32(e.buf, v)
	return e
}

func (e *Encoder) Uint64(v uint64) *Encoder {
	e.buf = binary.LittleEndian.AppendUint64(e.buf, v)
	return e
}

func (e *Encoder) Int16(v int16) *Encoder {
	return e.Uint16(uint16(v))
}

func (e *Encoder) Int64(v int64) *Encoder {
	return e.Uint64(uint64(v))
}

func (e *Encoder) Bool(v bool) *Encoder {
	if v {
		return e.Uint8(1)
	}
	return e.Uint8(0)
}

// Option writes the one byte presence flag preceding an optional value.
// The value itself, if present, is written by the caller.
func (e *Encoder) Option(present bool) *Encoder {
	return e.Bool(present)
}

// FixedBytes writes raw bytes with no length prefix.
func (e *Encoder) FixedBytes(b []byte) *Encoder {
	e.buf = append(e.buf, b...)
	return e
}

// Key writes a public key as a raw 32 byte array. A nil key is written as
// 32 zero bytes.
func (e *Encoder) Key(pub ed25519.PublicKey) *Encoder {
	if len(pub) == 0 {
		var zero [ed25519.PublicKeySize]byte
		return e.FixedBytes(zero[:])
	}
	return e.FixedBytes(pub)
}

// OptionKey writes a borsh Option<Pubkey>: flag byte, then the key when set.
func (e *Encoder) OptionKey(pub ed25519.PublicKey) *Encoder {
	if len(pub) == 0 {
		return e.Option(false)
	}
	return e.Option(true).Key(pub)
}

// String writes a borsh string: 4 byte little-endian length, then bytes.
func (e *Encoder) String(s string) *Encoder {
	if uint64(len(s)) > math.MaxUint32 {
		e.err = ErrLengthOverflow
		return e
	}
	return e.Uint32(uint32(len(s))).FixedBytes([]byte(s))
}

// Vec writes a borsh byte vector: 4 byte little-endian length, then bytes.
func (e *Encoder) Vec(b []byte) *Encoder {
	if uint64(len(b)) > math.MaxUint32 {
		e.err = ErrLengthOverflow
		return e
	}
	return e.Uint32(uint32(len(b))).FixedBytes(b)
}

// BincodeString writes a bincode string: 8 byte little-endian length, then
// bytes.
func (e *Encoder) BincodeString(s string) *Encoder {
	return e.Uint64(uint64(len(s))).FixedBytes([]byte(s))
}

// Decoder consumes a canonical encoding with a sticky error. Callers check
// Err (or Finish) once after reading all fields.
type Decoder struct {
	data []byte
	off  int
	err  error
}

func NewDecoder(data []byte) *Decoder {
	return &Decoder{data: data}
}

func (d *Decoder) Err() error {
	return d.err
}

// Remaining returns the number of unread bytes.
func (d *Decoder) Remaining() int {
	return len(d.data) - d.off
}

// Finish returns an error if decoding failed or if any bytes are left
// unread. Payloads are exact; trailing bytes mean a malformed payload.
func (d *Decoder) Finish() error {
	if d.err != nil {
		return d.err
	}
	if d.off != len(d.data) {
		return ErrTrailingBytes
	}
	return nil
}

func (d *Decoder) take(n int) []byte {
	if d.err != nil {
		return nil
	}
	if d.Remaining() < n {
		d.err = ErrUnexpectedEOF
		return nil
	}
	b := d.data[d.off : d.off+n]
	d.off += n
	return b
}

func (d *Decoder) Uint8() uint8 {
	b := d.take(1)
	if b == nil {
		return 0
	}
	return b[0]
}

func (d *Decoder) Uint16() uint16 {
	b := d.take(2)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint16(b)
}

func (d *Decoder) Uint32() uint32 {
	b := d.take(4)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

func (d *Decoder) Uint64() uint64 {
	b := d.take(8)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint64(b)
}

func (d *Decoder) Int16() int16 {
	return int16(d.Uint16())
}

func (d *Decoder) Int64() int64 {
	return int64(d.Uint64())
}

func (d *Decoder) Bool() bool {
	switch d.Uint8() {
	case 0:
		return false
	case 1:
		return true
	default:
		if d.err == nil {
			d.err = ErrInvalidBool
		}
		return false
	}
}

// Option reads the one byte presence flag preceding an optional value.
func (d *Decoder) Option() bool {
	switch d.Uint8() {
	case 0:
		return false
	case 1:
		return true
	default:
		if d.err == nil {
			d.err = ErrInvalidOptionTag
		}
		return false
	}
}

// FixedBytes reads exactly n raw bytes.
func (d *Decoder) FixedBytes(n int) []byte {
	b := d.take(n)
	if b == nil {
		return nil
	}
	out := make([]byte, n)
	copy(out, b)
	return out
}

// Key reads a raw 32 byte public key.
func (d *Decoder) Key() ed25519.PublicKey {
	return ed25519.PublicKey(d.FixedBytes(ed25519.PublicKeySize))
}

// String reads a borsh string (4 byte little-endian length prefix).
func (d *Decoder) String() string {
	n := d.Uint32()
	if d.err != nil {
		return ""
	}
	if int(n) > d.Remaining() {
		d.err = ErrUnexpectedEOF
		return ""
	}
	return string(d.take(int(n)))
}

// BincodeString reads a bincode string (8 byte little-endian length prefix).
func (d *Decoder) BincodeString() string {
	n := d.Uint64()
	if d.err != nil {
		return ""
	}
	if n > uint64(d.Remaining()) {
		d.err = ErrUnexpectedEOF
		return ""
	}
	return string(d.take(int(n)))
}
