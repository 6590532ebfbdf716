package ocean

import (
	"fmt"

	"github.com/Faultbox/midgard-ocean/pkg/compute"
)

// Inverter turns an evolved spectrum into a height field.
type Inverter interface {
	Invert(src *ComplexField, dst *HeightField) error
	Close() error
}

// InverterFactory builds an Inverter for a twiddle table.
type InverterFactory func(t *TwiddleTable) (Inverter, error)

type direction int

const (
	horizontal direction = iota
	vertical
)

func (d direction) String() string {
	if d == horizontal {
		return "horizontal"
	}
	return "vertical"
}

// FFT is the CPU inverse transform. It runs log2(N) butterfly stages along x,
// the same along y, then one inversion pass, ping-ponging between two
// scratch fields it owns.
type FFT struct {
	n          int
	twiddles   *TwiddleTable
	dispatcher compute.Dispatcher
	buffers    [2]*ComplexField
}

// NewFFT allocates the ping-pong buffers for t.N. A nil dispatcher runs
// serially.
func NewFFT(t *TwiddleTable, d compute.Dispatcher) *FFT {
	if d == nil {
		d = compute.Serial{}
	}
	return &FFT{
		n:          t.N,
		twiddles:   t,
		dispatcher: d,
		buffers:    [2]*ComplexField{NewComplexField(t.N), NewComplexField(t.N)},
	}
}

// CPUInverter is the default InverterFactory.
func CPUInverter(d compute.Dispatcher) InverterFactory {
	return func(t *TwiddleTable) (Inverter, error) {
		return NewFFT(t, d), nil
	}
}

// Invert writes (-1)^(x+y)·Re(IFFT(src))/N² into dst.
func (f *FFT) Invert(src *ComplexField, dst *HeightField) error {
	if err := f.checkSize(src.N, dst.N); err != nil {
		return err
	}
	last, err := f.butterflies(src)
	if err != nil {
		return err
	}

	n := f.n
	scale := 1 / float32(n*n)
	return f.dispatcher.Dispatch(n, func(x, y int) error {
		i := y*n + x
		h := last.Cells[i].Re * scale
		if (x+y)&1 == 1 {
			h = -h
		}
		dst.Heights[i] = h
		return nil
	})
}

// Transform is Invert without discarding the imaginary part, so the residue
// left by a non-symmetric input can be inspected.
func (f *FFT) Transform(src, dst *ComplexField) error {
	if err := f.checkSize(src.N, dst.N); err != nil {
		return err
	}
	last, err := f.butterflies(src)
	if err != nil {
		return err
	}

	n := f.n
	scale := 1 / float32(n*n)
	return f.dispatcher.Dispatch(n, func(x, y int) error {
		i := y*n + x
		s := scale
		if (x+y)&1 == 1 {
			s = -s
		}
		dst.Cells[i] = last.Cells[i].Scale(s)
		return nil
	})
}

// Close is a no-op; the buffers are garbage collected.
func (f *FFT) Close() error {
	return nil
}

func (f *FFT) checkSize(src, dst int) error {
	if src != f.n || dst != f.n {
		return fmt.Errorf("fft: size mismatch: inverter %d, source %d, destination %d", f.n, src, dst)
	}
	return nil
}

// butterflies runs both passes and returns the buffer written last.
func (f *FFT) butterflies(src *ComplexField) (*ComplexField, error) {
	pingpong := 0
	for _, dir := range [...]direction{horizontal, vertical} {
		for stage := 0; stage < f.twiddles.Stages; stage++ {
			in := f.buffers[pingpong]
			if stage == 0 && dir == horizontal {
				in = src
			}
			out := f.buffers[1-pingpong]
			if err := f.dispatcher.Dispatch(f.n, f.butterfly(dir, stage, in, out)); err != nil {
				return nil, fmt.Errorf("fft: %s stage %d: %w", dir, stage, err)
			}
			pingpong = 1 - pingpong
		}
	}
	return f.buffers[pingpong], nil
}

func (f *FFT) butterfly(dir direction, stage int, in, out *ComplexField) compute.Kernel {
	n := f.n
	t := f.twiddles
	if dir == horizontal {
		return func(x, y int) error {
			tw := t.At(stage, x)
			row := y * n
			a, b := in.Cells[row+tw.A], in.Cells[row+tw.B]
			out.Cells[row+x] = a.Add(Complex{tw.Cos, tw.Sin}.Mul(b))
			return nil
		}
	}
	return func(x, y int) error {
		tw := t.At(stage, y)
		a, b := in.Cells[tw.A*n+x], in.Cells[tw.B*n+x]
		out.Cells[y*n+x] = a.Add(Complex{tw.Cos, tw.Sin}.Mul(b))
		return nil
	}
}
