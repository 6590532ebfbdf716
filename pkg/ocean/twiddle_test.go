package ocean

import (
	gomath "math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTwiddlesRejectsInvalidSizes(t *testing.T) {
	for _, n := range []int{-4, 0, 1, 3, 6, 100, 255} {
		_, err := BuildTwiddles(n)
		assert.ErrorIsf(t, err, ErrConfiguration, "n=%d", n)
	}
}

func TestBuildTwiddlesShape(t *testing.T) {
	tests := []struct {
		n      int
		stages int
	}{
		{2, 1},
		{4, 2},
		{16, 4},
		{256, 8},
	}
	for _, tt := range tests {
		tw, err := BuildTwiddles(tt.n)
		require.NoError(t, err)
		assert.Equal(t, tt.stages, tw.Stages)
		assert.Len(t, tw.Entries, tt.stages*tt.n)
		assert.Len(t, tw.Packed(), tt.stages*tt.n*4)
	}
}

func TestTwiddleSpanDoublesEachStage(t *testing.T) {
	for _, n := range []int{4, 8, 32, 256} {
		tw, err := BuildTwiddles(n)
		require.NoError(t, err)

		for stage := 1; stage < tw.Stages; stage++ {
			span := 1 << stage
			assert.Equal(t, span, tw.Span(stage))
			assert.Equal(t, 2*tw.Span(stage-1), tw.Span(stage))
			for y := 0; y < n; y++ {
				e := tw.At(stage, y)
				assert.Equalf(t, span, e.B-e.A, "n=%d stage=%d y=%d", n, stage, y)
				if y%(2*span) < span {
					assert.Equal(t, y, e.A)
				} else {
					assert.Equal(t, y, e.B)
				}
			}
		}
	}
}

func TestTwiddleStageZeroIsBitReversed(t *testing.T) {
	const n = 64
	tw, err := BuildTwiddles(n)
	require.NoError(t, err)

	seen := make(map[int]bool)
	for y := 0; y < n; y++ {
		e := tw.At(0, y)
		own := e.A
		if y%2 == 1 {
			own = e.B
		}
		assert.Equal(t, reverseBits(y, tw.Stages), own)
		seen[own] = true

		pairA, pairB := y, y+1
		if y%2 == 1 {
			pairA, pairB = y-1, y
		}
		assert.Equal(t, reverseBits(pairA, tw.Stages), e.A)
		assert.Equal(t, reverseBits(pairB, tw.Stages), e.B)
	}
	assert.Len(t, seen, n, "stage 0 must address every input exactly once")
}

func TestTwiddleAngles(t *testing.T) {
	const n = 32
	tw, err := BuildTwiddles(n)
	require.NoError(t, err)

	for stage := 0; stage < tw.Stages; stage++ {
		span := 1 << stage
		for y := 0; y < n; y++ {
			theta := gomath.Pi * float64(y%span) / float64(span)
			if y%(2*span) >= span {
				theta += gomath.Pi
			}
			e := tw.At(stage, y)
			assert.InDelta(t, gomath.Cos(theta), float64(e.Cos), 1e-6)
			assert.InDelta(t, gomath.Sin(theta), float64(e.Sin), 1e-6)
		}
	}
}

func TestTwiddlesForFour(t *testing.T) {
	tw, err := BuildTwiddles(4)
	require.NoError(t, err)

	want := []struct {
		cos, sin float64
		a, b     int
	}{
		// stage 0
		{1, 0, 0, 2},
		{-1, 0, 0, 2},
		{1, 0, 1, 3},
		{-1, 0, 1, 3},
		// stage 1
		{1, 0, 0, 2},
		{0, 1, 1, 3},
		{-1, 0, 0, 2},
		{0, -1, 1, 3},
	}
	for i, w := range want {
		e := tw.Entries[i]
		assert.InDeltaf(t, w.cos, float64(e.Cos), 1e-6, "entry %d cos", i)
		assert.InDeltaf(t, w.sin, float64(e.Sin), 1e-6, "entry %d sin", i)
		assert.Equalf(t, w.a, e.A, "entry %d a", i)
		assert.Equalf(t, w.b, e.B, "entry %d b", i)
	}
}

func TestReverseBits(t *testing.T) {
	assert.Equal(t, []int{0, 4, 2, 6, 1, 5, 3, 7}, func() []int {
		out := make([]int, 8)
		for i := range out {
			out[i] = reverseBits(i, 3)
		}
		return out
	}())
}
