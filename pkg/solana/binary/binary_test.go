package binary

import (
	"crypto/ed25519"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncoder_Integers(t *testing.T) {
	data := NewEncoder().
		Uint8(0xab).
		Uint16(0x0201).
		Uint32(0x04030201).
		Uint64(0x0807060504030201).
		Bytes()

	expected := []byte{
		0xab,
		0x01, 0x02,
		0x01, 0x02, 0x03, 0x04,
		0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08,
	}
	assert.Equal(t, expected, data)

	d := NewDecoder(data)
	assert.Equal(t, uint8(0xab), d.Uint8())
	assert.Equal(t, uint16(0x0201), d.Uint16())
	assert.Equal(t, uint32(0x04030201), d.Uint32())
	assert.Equal(t, uint64(0x0807060504030201), d.Uint64())
	require.NoError(t, d.Finish())
}

func TestEncoder_SignedIntegers(t *testing.T) {
	data := NewEncoder().
		Int16(-500).
		Int64(-1).
		Bytes()

	d := NewDecoder(data)
	assert.Equal(t, int16(-500), d.Int16())
	assert.Equal(t, int64(-1), d.Int64())
	require.NoError(t, d.Finish())
}

func TestEncoder_Strings(t *testing.T) {
	data := NewEncoder().String("abc").Bytes()
	assert.Equal(t, []byte{0x03, 0x00, 0x00, 0x00, 'a', 'b', 'c'}, data)

	d := NewDecoder(data)
	assert.Equal(t, "abc", d.String())
	require.NoError(t, d.Finish())

	data = NewEncoder().BincodeString("seed").Bytes()
	assert.Equal(t, []byte{0x04, 0, 0, 0, 0, 0, 0, 0, 's', 'e', 'e', 'd'}, data)

	d = NewDecoder(data)
	assert.Equal(t, "seed", d.BincodeString())
	require.NoError(t, d.Finish())
}

func TestEncoder_Keys(t *testing.T) {
	pub, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	data := NewEncoder().
		Key(pub).
		OptionKey(nil).
		OptionKey(pub).
		Key(nil).
		Bytes()
	require.Equal(t, 32+1+33+32, len(data))

	d := NewDecoder(data)
	assert.Equal(t, pub, d.Key())
	assert.False(t, d.Option())
	require.True(t, d.Option())
	assert.Equal(t, pub, d.Key())
	assert.Equal(t, make([]byte, 32), []byte(d.Key()))
	require.NoError(t, d.Finish())
}

func TestDecoder_Truncated(t *testing.T) {
	d := NewDecoder([]byte{0x01, 0x02})
	d.Uint32()
	assert.Equal(t, ErrUnexpectedEOF, d.Err())
	assert.Equal(t, ErrUnexpectedEOF, d.Finish())

	// Length prefix larger than remaining payload.
	d = NewDecoder([]byte{0xff, 0x00, 0x00, 0x00, 'a'})
	_ = d.String()
	assert.Equal(t, ErrUnexpectedEOF, d.Err())
}

func TestDecoder_TrailingBytes(t *testing.T) {
	d := NewDecoder([]byte{0x01, 0x02})
	d.Uint8()
	assert.NoError(t, d.Err())
	assert.Equal(t, ErrTrailingBytes, d.Finish())
}

func TestDecoder_InvalidFlags(t *testing.T) {
	d := NewDecoder([]byte{0x02})
	d.Bool()
	assert.Equal(t, ErrInvalidBool, d.Err())

	d = NewDecoder([]byte{0x05})
	d.Option()
	assert.Equal(t, ErrInvalidOptionTag, d.Err())
}

func TestDecoder_StickyError(t *testing.T) {
	d := NewDecoder([]byte{0x02, 0x07})
	d.Bool()
	require.Equal(t, ErrInvalidBool, d.Err())

	// Subsequent reads are no-ops once the decoder has failed.
	assert.Equal(t, uint8(0), d.Uint8())
	assert.Equal(t, ErrInvalidBool, d.Err())
}
