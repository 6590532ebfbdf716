// Package ocean synthesizes a time-varying ocean height field with
// Tessendorf's spectral model.
//
// A Phillips spectrum is generated once from a random field, evolved every
// frame with the deep water dispersion relation, and brought back to the
// spatial domain by a radix-2 butterfly inverse FFT. Every stage is a
// data-parallel pass over an N×N grid run by a compute.Dispatcher.
package ocean

import "github.com/chewxy/math32"

// Complex is a single-precision complex number.
type Complex struct {
	Re, Im float32
}

// Add returns c + o.
func (c Complex) Add(o Complex) Complex {
	return Complex{c.Re + o.Re, c.Im + o.Im}
}

// Mul returns c * o.
func (c Complex) Mul(o Complex) Complex {
	return Complex{
		Re: c.Re*o.Re - c.Im*o.Im,
		Im: c.Re*o.Im + c.Im*o.Re,
	}
}

// Conj returns the complex conjugate.
func (c Complex) Conj() Complex {
	return Complex{c.Re, -c.Im}
}

// Scale returns c * s.
func (c Complex) Scale(s float32) Complex {
	return Complex{c.Re * s, c.Im * s}
}

// Abs returns the magnitude.
func (c Complex) Abs() float32 {
	return math32.Hypot(c.Re, c.Im)
}

func (c Complex) finite() bool {
	return finite(c.Re) && finite(c.Im)
}

func finite(v float32) bool {
	return !math32.IsNaN(v) && !math32.IsInf(v, 0)
}

// ComplexField is an N×N grid of complex values in row-major order.
type ComplexField struct {
	N     int
	Cells []Complex
}

// NewComplexField allocates a zeroed n×n field.
func NewComplexField(n int) *ComplexField {
	return &ComplexField{N: n, Cells: make([]Complex, n*n)}
}

// At returns the value at (x, y).
func (f *ComplexField) At(x, y int) Complex {
	return f.Cells[y*f.N+x]
}

// Set stores v at (x, y).
func (f *ComplexField) Set(x, y int, v Complex) {
	f.Cells[y*f.N+x] = v
}

// HeightField is the real-valued N×N output of the pipeline.
// Consumers read it; only the pipeline writes it.
type HeightField struct {
	N       int
	Heights []float32
}

// NewHeightField allocates a flat n×n height field.
func NewHeightField(n int) *HeightField {
	return &HeightField{N: n, Heights: make([]float32, n*n)}
}

// At returns the height at (x, y).
func (h *HeightField) At(x, y int) float32 {
	return h.Heights[y*h.N+x]
}

// Range returns the lowest and highest heights.
func (h *HeightField) Range() (lo, hi float32) {
	if len(h.Heights) == 0 {
		return 0, 0
	}
	lo, hi = h.Heights[0], h.Heights[0]
	for _, v := range h.Heights[1:] {
		lo = math32.Min(lo, v)
		hi = math32.Max(hi, v)
	}
	return lo, hi
}

// CopyTo copies the heights into dst, which must have the same size.
func (h *HeightField) CopyTo(dst *HeightField) {
	dst.N = h.N
	if cap(dst.Heights) < len(h.Heights) {
		dst.Heights = make([]float32, len(h.Heights))
	}
	dst.Heights = dst.Heights[:len(h.Heights)]
	copy(dst.Heights, h.Heights)
}
