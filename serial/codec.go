// Package serial implements the fixed-point binary codec used by serialized
// BSP trees: 32-bit big-endian words, Q16.16 coordinates, and a reserved
// sentinel word marking absent nodes.
package serial

import (
	"github.com/pkg/errors"

	"github.com/lixenwraith/walls3d/vmath"
)

// WordSize is the size of every serialized field
const WordSize = 4

// Sentinel marks "no node here" in serialized trees
const Sentinel int32 = 0x7FFFFFFF

// MaxCoordinate is the largest magnitude a serialized coordinate may have
const MaxCoordinate = 32767.0

// Sentinel must never be a valid encoded coordinate. Checked once at compile
// time: the array length goes negative if MaxCoordinate ever encodes to Sentinel
var _ [int64(Sentinel) - int64(MaxCoordinate)*vmath.Scale - 1]struct{}

// ErrShortRead is returned when a read runs past the end of a Medium
var ErrShortRead = errors.New("serial: read past end of medium")

// Rounding selects how reals are quantized on encode
type Rounding uint8

const (
	// Truncate rounds toward zero, the format every shipped tree uses
	Truncate Rounding = iota
	// Round rounds half away from zero
	Round
)

// Codec converts between reals and fixed-point words
type Codec struct {
	Rounding Rounding
}

// Default is the codec every serialized tree is written with
var Default = Codec{Rounding: Truncate}

// Fixed quantizes f to Q16.16 using the codec's rounding mode.
// Values beyond MaxCoordinate wrap silently
func (c Codec) Fixed(f float64) int32 {
	if c.Rounding == Round {
		return vmath.FromFloatRound(f)
	}
	return vmath.FromFloat(f)
}

// Encode returns the big-endian word for f
func (c Codec) Encode(f float64) [WordSize]byte {
	var b [WordSize]byte
	PutWord(b[:], c.Fixed(f))
	return b
}

// Decode returns the real value of a big-endian fixed-point word
func (c Codec) Decode(b [WordSize]byte) float64 {
	return vmath.ToFloat(Word(b[:]))
}

// PutWord writes v big-endian into b[0:4]
func PutWord(b []byte, v int32) {
	u := uint32(v)
	b[0] = byte(u >> 24)
	b[1] = byte(u >> 16)
	b[2] = byte(u >> 8)
	b[3] = byte(u)
}

// Word reads a big-endian int32 from b[0:4]
func Word(b []byte) int32 {
	return int32(uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3]))
}

// Peek reads the word at off without any cursor state
func Peek(m Medium, off int) (int32, error) {
	if off < 0 || off+WordSize > m.Len() {
		return 0, errors.Wrapf(ErrShortRead, "word at offset %d, medium length %d", off, m.Len())
	}
	return peek(m, off), nil
}

// peek reads a word the caller has already bounds-checked
func peek(m Medium, off int) int32 {
	return int32(uint32(m.ByteAt(off))<<24 |
		uint32(m.ByteAt(off+1))<<16 |
		uint32(m.ByteAt(off+2))<<8 |
		uint32(m.ByteAt(off+3)))
}

// PeekUnchecked reads the word at off; off must be validated by the caller.
// Used on hot paths over media whose layout was verified once up front
func PeekUnchecked(m Medium, off int) int32 {
	return peek(m, off)
}
