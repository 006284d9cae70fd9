package vmath

import (
	"math"
	"math/bits"

	"golang.org/x/exp/constraints"
)

// Q16.16 Fixed Point constants
const (
	Shift = 16
	Scale = 1 << Shift

	// ScaleF is Scale as float64 for conversions
	ScaleF = float64(Scale)
)

// --- Conversion ---

// FromFloat truncates toward zero. Out of range input wraps through int64
// instead of saturating; callers that care must range-check first
func FromFloat(f float64) int32 { return int32(int64(f * ScaleF)) }

// FromFloatRound rounds half away from zero, same wrap behavior as FromFloat
func FromFloatRound(f float64) int32 { return int32(int64(math.Round(f * ScaleF))) }

func ToFloat(f int32) float64 { return float64(f) / ScaleF }

// --- Ranges ---

// Clamp limits v to [lo, hi]
func Clamp[T constraints.Integer | constraints.Float](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// --- Randomness ---

// FastRand is a xorshift64 generator for deterministic test and sandbox input
type FastRand struct {
	state uint64
}

func NewFastRand(seed uint64) *FastRand {
	if seed == 0 {
		seed = 1
	}
	return &FastRand{state: seed}
}

func (r *FastRand) Next() uint64 {
	x := r.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	r.state = x
	return x
}

func (r *FastRand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	hi, _ := bits.Mul64(r.Next(), uint64(n))
	return int(hi)
}

// Float64 returns a value in [0, 1)
func (r *FastRand) Float64() float64 {
	return float64(r.Next()>>11) / (1 << 53)
}
