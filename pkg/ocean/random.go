package ocean

import "cogentcore.org/core/base/randx"

// RandomField holds two independent uniform [0,1) draws per cell. It seeds the
// Gaussian amplitudes of the spectrum and is never modified after creation.
type RandomField struct {
	N     int
	Cells [][2]float32
}

// NewRandomField fills an n×n field from rng. A nil rng uses the global
// source; pass randx.NewSysRand(seed) for a reproducible field.
func NewRandomField(n int, rng randx.Rand) *RandomField {
	if rng == nil {
		rng = randx.NewGlobalRand()
	}
	f := &RandomField{N: n, Cells: make([][2]float32, n*n)}
	for i := range f.Cells {
		f.Cells[i] = [2]float32{rng.Float32(), rng.Float32()}
	}
	return f
}

// At returns the draws for (x, y).
func (f *RandomField) At(x, y int) [2]float32 {
	return f.Cells[y*f.N+x]
}
