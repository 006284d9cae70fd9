package vmath

import (
	"math"
	"testing"
)

func TestFromFloatTruncates(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want int32
	}{
		{"Zero", 0, 0},
		{"One", 1.0, Scale},
		{"Half", 0.5, Scale / 2},
		{"Positive below LSB", 0.9 / ScaleF, 0},
		{"Negative below LSB", -0.9 / ScaleF, 0},
		{"Positive fraction", 1.0 + 1.7/ScaleF, Scale + 1},
		{"Negative fraction", -(1.0 + 1.7/ScaleF), -(Scale + 1)},
		{"Twelve and a half", 12.5, 12*Scale + Scale/2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromFloat(tt.in); got != tt.want {
				t.Errorf("FromFloat(%v) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestFromFloatRound(t *testing.T) {
	if got := FromFloatRound(1.0 + 0.6/ScaleF); got != Scale+1 {
		t.Errorf("Expected round up to %d, got %d", Scale+1, got)
	}
	if got := FromFloatRound(-(1.0 + 0.6/ScaleF)); got != -(Scale + 1) {
		t.Errorf("Expected round away from zero to %d, got %d", -(Scale + 1), got)
	}
	if got := FromFloatRound(1.0 + 0.4/ScaleF); got != Scale {
		t.Errorf("Expected round down to %d, got %d", Scale, got)
	}
}

func TestRoundTripPrecision(t *testing.T) {
	rng := NewFastRand(42)
	for i := 0; i < 1000; i++ {
		v := (rng.Float64()*2 - 1) * 30000
		got := ToFloat(FromFloat(v))
		if math.Abs(got-v) >= 1/ScaleF {
			t.Fatalf("Round trip of %v drifted to %v (>= 1 LSB)", v, got)
		}
	}
}

func TestClamp(t *testing.T) {
	if Clamp(5, 0, 3) != 3 {
		t.Error("Expected int clamp to upper bound")
	}
	if Clamp(-1.5, 0.0, 3.0) != 0.0 {
		t.Error("Expected float clamp to lower bound")
	}
	if Clamp[uint8](7, 1, 9) != 7 {
		t.Error("Expected in-range value unchanged")
	}
}

func TestFastRandDeterministic(t *testing.T) {
	a, b := NewFastRand(7), NewFastRand(7)
	for i := 0; i < 100; i++ {
		if a.Next() != b.Next() {
			t.Fatal("Expected identical sequences for identical seeds")
		}
	}
	r := NewFastRand(0)
	for i := 0; i < 100; i++ {
		if n := r.Intn(10); n < 0 || n >= 10 {
			t.Fatalf("Intn out of range: %d", n)
		}
		if f := r.Float64(); f < 0 || f >= 1 {
			t.Fatalf("Float64 out of range: %v", f)
		}
	}
}
