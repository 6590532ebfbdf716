package ocean

import (
	"testing"

	"cogentcore.org/core/base/randx"
	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pmath "github.com/Faultbox/midgard-ocean/pkg/math"
)

func testParams(n int) Params {
	p := DefaultParams()
	p.Size = n
	return p
}

func seededNoise(n int, seed int64) *RandomField {
	return NewRandomField(n, randx.NewSysRand(seed))
}

func TestPhillipsVanishesAtExtremes(t *testing.T) {
	g := NewSpectrumGenerator(DefaultParams())
	wind := pmath.Vec2{X: 1, Y: 1}.Normalize()

	assert.Zero(t, g.Phillips(pmath.Vec2{}))
	assert.Zero(t, g.Phillips(wind.Scale(1e-7)))

	// Small k: the exp(-1/(kL)²) term dominates.
	small := g.Phillips(wind.Scale(1e-4))
	mid := g.Phillips(wind.Scale(0.02))
	large := g.Phillips(wind.Scale(50))
	huge := g.Phillips(wind.Scale(1e10))

	assert.Greater(t, mid, float32(0))
	assert.Less(t, small, mid*1e-6)
	assert.Less(t, large, mid*1e-6)
	assert.Zero(t, huge)
	assert.False(t, math32.IsNaN(huge))
}

func TestPhillipsFollowsWindDirection(t *testing.T) {
	g := NewSpectrumGenerator(DefaultParams())
	along := pmath.Vec2{X: 1, Y: 1}.Normalize().Scale(0.02)
	across := pmath.Vec2{X: 1, Y: -1}.Normalize().Scale(0.02)

	assert.Greater(t, g.Phillips(along), float32(0))
	assert.InDelta(t, 0, g.Phillips(across), 1e-6*float64(g.Phillips(along)))
	// |k̂·ŵ|² does not distinguish k from -k.
	assert.Equal(t, g.Phillips(along), g.Phillips(along.Neg()))
}

func TestSpectrumScalesWithSqrtAmplitude(t *testing.T) {
	const n = 32
	noise := seededNoise(n, 7)

	p1 := testParams(n)
	p4 := p1
	p4.Amplitude = 4 * p1.Amplitude

	s1, err := NewSpectrumGenerator(p1).Generate(noise, nil)
	require.NoError(t, err)
	s4, err := NewSpectrumGenerator(p4).Generate(noise, nil)
	require.NoError(t, err)

	nonZero := 0
	for i := range s1.Cells {
		a, b := s1.Cells[i].K, s4.Cells[i].K
		if a.Abs() == 0 {
			assert.Zero(t, b.Abs())
			continue
		}
		nonZero++
		assert.InDelta(t, 2, float64(b.Abs()/a.Abs()), 1e-5)
	}
	assert.Greater(t, nonZero, n*n/2)
}

func TestSpectrumDegeneratesWithoutWind(t *testing.T) {
	const n = 16
	noise := seededNoise(n, 1)

	tests := []struct {
		name   string
		mutate func(*Params)
	}{
		{"zero intensity", func(p *Params) { p.WindIntensity = 0 }},
		{"zero direction", func(p *Params) { p.WindDirection = pmath.Vec2{} }},
		{"zero amplitude", func(p *Params) { p.Amplitude = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testParams(n)
			tt.mutate(&p)
			s, err := NewSpectrumGenerator(p).Generate(noise, nil)
			require.NoError(t, err)
			require.NoError(t, checkSpectrum(s))
			for _, c := range s.Cells {
				assert.Zero(t, c.K.Abs())
				assert.Zero(t, c.MinusK.Abs())
			}
		})
	}
}

func TestSpectrumIsReproducible(t *testing.T) {
	const n = 32
	p := testParams(n)
	g := NewSpectrumGenerator(p)

	a, err := g.Generate(seededNoise(n, 42), nil)
	require.NoError(t, err)
	b, err := g.Generate(seededNoise(n, 42), nil)
	require.NoError(t, err)
	c, err := g.Generate(seededNoise(n, 43), nil)
	require.NoError(t, err)

	assert.Equal(t, a.Cells, b.Cells)
	assert.NotEqual(t, a.Cells, c.Cells)
}

func TestSpectrumMinusKChannelMatchesMirror(t *testing.T) {
	const n = 16
	s, err := NewSpectrumGenerator(testParams(n)).Generate(seededNoise(n, 3), nil)
	require.NoError(t, err)

	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			mx, my := mirror(x, y, n)
			assert.Equal(t, s.At(mx, my).K.Conj(), s.At(x, y).MinusK, "cell (%d, %d)", x, y)
		}
	}
}

func TestSpectrumWavevectorIsCentered(t *testing.T) {
	s := &Spectrum{N: 8, Scale: 2 * math32.Pi}
	assert.Equal(t, pmath.Vec2{}, s.Wavevector(4, 4))
	assert.Equal(t, pmath.Vec2{X: -4, Y: 3}, s.Wavevector(0, 7))
	assert.Equal(t, s.Wavevector(3, 6).Neg(), s.Wavevector(5, 2))
}

func TestGaussianPairStatistics(t *testing.T) {
	rng := randx.NewSysRand(99)
	const draws = 50000

	var sum, sumSq float64
	for i := 0; i < draws; i++ {
		a, b := gaussianPair([2]float32{rng.Float32(), rng.Float32()})
		sum += float64(a) + float64(b)
		sumSq += float64(a)*float64(a) + float64(b)*float64(b)
	}
	mean := sum / (2 * draws)
	variance := sumSq/(2*draws) - mean*mean

	assert.InDelta(t, 0, mean, 0.02)
	assert.InDelta(t, 1, variance, 0.03)
}

func TestGaussianPairHandlesBoundaryDraws(t *testing.T) {
	a, b := gaussianPair([2]float32{0, 0})
	assert.Zero(t, a)
	assert.Zero(t, b)

	a, b = gaussianPair([2]float32{0.99999994, 0.25})
	assert.False(t, math32.IsInf(a, 0) || math32.IsNaN(a))
	assert.False(t, math32.IsInf(b, 0) || math32.IsNaN(b))
}

func TestRandomFieldRangeAndSeed(t *testing.T) {
	const n = 32
	a := seededNoise(n, 5)
	b := seededNoise(n, 5)

	require.Len(t, a.Cells, n*n)
	assert.Equal(t, a.Cells, b.Cells)
	for _, c := range a.Cells {
		for _, u := range c {
			assert.GreaterOrEqual(t, u, float32(0))
			assert.Less(t, u, float32(1))
		}
	}
	assert.Equal(t, a.Cells[3*n+2], a.At(2, 3))

	unseeded := NewRandomField(4, nil)
	assert.Len(t, unseeded.Cells, 16)
}
