package ocean

import (
	gomath "math"
	"math/bits"
)

// Twiddle is one butterfly of the table: the rotation (Cos, Sin) applied to
// the value at B before it is added to the value at A.
type Twiddle struct {
	Cos, Sin float32
	A, B     int
}

// TwiddleTable holds the radix-2 decimation-in-time butterfly network for an
// N-point transform: Stages rows of N entries. Stage s combines values 2^s
// apart; stage 0 addresses its input through the bit-reversal permutation.
// A table depends on N only and is immutable once built.
type TwiddleTable struct {
	N       int
	Stages  int
	Entries []Twiddle // stage-major: Entries[stage*N + y]
}

// BuildTwiddles computes the table for n, which must be a power of two.
func BuildTwiddles(n int) (*TwiddleTable, error) {
	stages, ok := log2(n)
	if !ok || n < 2 {
		return nil, &ConfigError{Field: "size", Value: n, Reason: "must be a power of two >= 2"}
	}

	t := &TwiddleTable{
		N:       n,
		Stages:  stages,
		Entries: make([]Twiddle, stages*n),
	}
	for stage := 0; stage < stages; stage++ {
		span := 1 << stage
		block := span * 2
		for y := 0; y < n; y++ {
			k := (y * (n / block)) % n
			theta := 2 * gomath.Pi * float64(k) / float64(n)

			a, b := y, y+span
			if y%block >= span {
				a, b = y-span, y
			}
			if stage == 0 {
				a = reverseBits(a, stages)
				b = reverseBits(b, stages)
			}

			t.Entries[stage*n+y] = Twiddle{
				Cos: float32(gomath.Cos(theta)),
				Sin: float32(gomath.Sin(theta)),
				A:   a,
				B:   b,
			}
		}
	}
	return t, nil
}

// At returns the entry for stage and row y.
func (t *TwiddleTable) At(stage, y int) Twiddle {
	return t.Entries[stage*t.N+y]
}

// Span returns the distance between the values combined at stage.
func (t *TwiddleTable) Span(stage int) int {
	return 1 << stage
}

// Packed flattens the table to (cos, sin, a, b) float quadruples in the same
// stage-major order, ready for a float4 texture or device buffer.
func (t *TwiddleTable) Packed() []float32 {
	out := make([]float32, 0, len(t.Entries)*4)
	for _, e := range t.Entries {
		out = append(out, e.Cos, e.Sin, float32(e.A), float32(e.B))
	}
	return out
}

// reverseBits reverses the low width bits of i.
func reverseBits(i, width int) int {
	return int(bits.Reverse32(uint32(i)) >> (32 - width))
}

// log2 returns k for n == 2^k.
func log2(n int) (int, bool) {
	if n <= 0 || n&(n-1) != 0 {
		return 0, false
	}
	return bits.TrailingZeros(uint(n)), true
}
