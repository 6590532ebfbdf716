package ocean

import (
	gomath "math"

	"github.com/chewxy/math32"

	"github.com/Faultbox/midgard-ocean/pkg/compute"
	pmath "github.com/Faultbox/midgard-ocean/pkg/math"
)

// minWavenumber is the |k| below which the spectrum is defined as zero.
const minWavenumber = 1e-6

// SpectrumCell packs the two complex channels the evolver needs per cell:
// h0(k) and conj(h0(-k)).
type SpectrumCell struct {
	K      Complex
	MinusK Complex
}

// Spectrum is the time-independent initial amplitude field h0.
type Spectrum struct {
	N       int
	Scale   float32
	Gravity float32
	Cells   []SpectrumCell
}

// At returns the cell at (x, y).
func (s *Spectrum) At(x, y int) SpectrumCell {
	return s.Cells[y*s.N+x]
}

// Wavevector returns k for cell (x, y). The grid is centered: cell N/2 is
// the zero frequency.
func (s *Spectrum) Wavevector(x, y int) pmath.Vec2 {
	return wavevector(x, y, s.N, 2*math32.Pi/s.Scale)
}

func wavevector(x, y, n int, dk float32) pmath.Vec2 {
	return pmath.Vec2{X: float32(x-n/2) * dk, Y: float32(y-n/2) * dk}
}

// mirror returns the cell holding -k for the cell at (x, y).
func mirror(x, y, n int) (int, int) {
	return (n - x) % n, (n - y) % n
}

// SpectrumGenerator evaluates the Phillips spectrum for one parameter set.
type SpectrumGenerator struct {
	params Params
	wind   pmath.Vec2 // unit wind direction
	lw     float32    // largest wave, V²/g
	dk     float32
}

// NewSpectrumGenerator prepares a generator. It does not validate p: the
// spectrum degrades to zero for degenerate wind instead of failing.
func NewSpectrumGenerator(p Params) *SpectrumGenerator {
	g := &SpectrumGenerator{
		params: p,
		wind:   p.WindDirection.Normalize(),
	}
	if p.Gravity > 0 {
		g.lw = p.WindIntensity * p.WindIntensity / p.Gravity
	}
	if p.Scale > 0 {
		g.dk = 2 * math32.Pi / p.Scale
	}
	return g
}

// Phillips returns P(k) including the small-wave suppression term.
func (g *SpectrumGenerator) Phillips(k pmath.Vec2) float32 {
	kLen := k.Length()
	if kLen < minWavenumber || g.wind.IsZero() {
		return 0
	}
	k2 := kLen * kLen
	kDotW := k.Scale(1 / kLen).Dot(g.wind)
	l := g.params.SuppressionLength

	p := g.params.Amplitude * math32.Exp(-1/(k2*g.lw*g.lw)) / (k2 * k2) * kDotW * kDotW
	return p * math32.Exp(-k2*l*l)
}

// h0 returns the initial amplitude at (x, y) from that cell's draws.
func (g *SpectrumGenerator) h0(noise *RandomField, x, y int) Complex {
	n := noise.N
	p := g.Phillips(wavevector(x, y, n, g.dk))
	if p == 0 {
		return Complex{}
	}
	xr, xi := gaussianPair(noise.At(x, y))
	amp := math32.Sqrt(p / 2)
	return Complex{xr * amp, xi * amp}
}

// Generate builds the spectrum for noise. The result is a pure function of
// the parameters and the noise, so equal inputs give bit-identical output.
func (g *SpectrumGenerator) Generate(noise *RandomField, d compute.Dispatcher) (*Spectrum, error) {
	if d == nil {
		d = compute.Serial{}
	}
	n := noise.N
	s := &Spectrum{
		N:       n,
		Scale:   g.params.Scale,
		Gravity: g.params.Gravity,
		Cells:   make([]SpectrumCell, n*n),
	}
	err := d.Dispatch(n, func(x, y int) error {
		mx, my := mirror(x, y, n)
		s.Cells[y*n+x] = SpectrumCell{
			K:      g.h0(noise, x, y),
			MinusK: g.h0(noise, mx, my).Conj(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

// gaussianPair turns two uniform [0,1) draws into two independent standard
// normal samples (Box–Muller).
func gaussianPair(u [2]float32) (float32, float32) {
	u1 := 1 - u[0]
	if u1 <= 0 {
		u1 = gomath.SmallestNonzeroFloat32
	}
	r := math32.Sqrt(-2 * math32.Log(u1))
	sin, cos := math32.Sincos(2 * math32.Pi * u[1])
	return r * cos, r * sin
}
