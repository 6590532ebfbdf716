package ocean

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/midgard-ocean/pkg/compute"
)

// Evolve writes the frequency-domain height field at time t into dst:
//
//	H(k, t) = h0(k)·e^{iωt} + conj(h0(-k))·e^{-iωt},  ω = sqrt(g·|k|)
//
// The result is conjugate-symmetric across mirrored cells, which is what lets
// the inverse transform produce a real height field. Nothing is carried over
// between calls.
func Evolve(d compute.Dispatcher, s *Spectrum, t float32, dst *ComplexField) error {
	if dst.N != s.N || len(dst.Cells) != len(s.Cells) {
		return fmt.Errorf("evolve: destination is %d×%d, spectrum is %d×%d", dst.N, dst.N, s.N, s.N)
	}
	if d == nil {
		d = compute.Serial{}
	}
	n := s.N
	dk := 2 * math32.Pi / s.Scale
	return d.Dispatch(n, func(x, y int) error {
		i := y*n + x
		omega := math32.Sqrt(s.Gravity * wavevector(x, y, n, dk).Length())
		sin, cos := math32.Sincos(omega * t)
		cell := s.Cells[i]
		dst.Cells[i] = cell.K.Mul(Complex{cos, sin}).Add(cell.MinusK.Mul(Complex{cos, -sin}))
		return nil
	})
}
