package ocean

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-ocean/pkg/compute"
)

// Pipeline owns every buffer of one ocean simulation. Construction builds
// the time-independent inputs; each Step recomputes the height field from
// scratch for the given time.
//
// A Pipeline is not safe for concurrent use.
type Pipeline struct {
	params     Params
	log        *zap.Logger
	dispatcher compute.Dispatcher

	twiddles *TwiddleTable
	spectrum *Spectrum
	evolved  *ComplexField
	inverter Inverter

	// front is the last successful result; back receives the next one.
	front, back *HeightField
	steps       uint64
}

// New validates p and builds the random field, twiddle table and initial
// spectrum.
func New(p Params, opts ...Option) (*Pipeline, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = zap.NewNop()
	}
	if o.dispatcher == nil {
		o.dispatcher = compute.NewPool(0)
	}
	if o.inverter == nil {
		o.inverter = CPUInverter(o.dispatcher)
	}

	start := time.Now()
	n := p.Size

	twiddles, err := BuildTwiddles(n)
	if err != nil {
		return nil, err
	}
	noise := NewRandomField(n, o.rng)
	spectrum, err := NewSpectrumGenerator(p).Generate(noise, o.dispatcher)
	if err != nil {
		return nil, fmt.Errorf("generating spectrum: %w", err)
	}
	if err := checkSpectrum(spectrum); err != nil {
		return nil, err
	}
	inverter, err := o.inverter(twiddles)
	if err != nil {
		return nil, fmt.Errorf("creating inverter: %w", err)
	}

	pl := &Pipeline{
		params:     p,
		log:        o.log,
		dispatcher: o.dispatcher,
		twiddles:   twiddles,
		spectrum:   spectrum,
		evolved:    NewComplexField(n),
		inverter:   inverter,
		front:      NewHeightField(n),
		back:       NewHeightField(n),
	}

	pl.log.Info("ocean pipeline ready",
		zap.Int("size", n),
		zap.Int("stages", twiddles.Stages),
		zap.Float32("amplitude", p.Amplitude),
		zap.Float32("wind_intensity", p.WindIntensity),
		zap.String("inverter", fmt.Sprintf("%T", inverter)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return pl, nil
}

// Step computes the height field at time t (seconds). The returned field is
// read-only and stays valid until the next Step. On error the previous
// result remains available through Height.
func (p *Pipeline) Step(t float32) (*HeightField, error) {
	if p.inverter == nil {
		return nil, ErrClosed
	}
	start := time.Now()

	if err := Evolve(p.dispatcher, p.spectrum, t, p.evolved); err != nil {
		return nil, fmt.Errorf("evolving spectrum: %w", err)
	}
	if err := checkField("evolve", p.evolved); err != nil {
		p.log.Warn("discarding frame", zap.Float32("time", t), zap.Error(err))
		return nil, err
	}
	if err := p.inverter.Invert(p.evolved, p.back); err != nil {
		return nil, fmt.Errorf("inverting spectrum: %w", err)
	}
	if err := checkHeights("invert", p.back); err != nil {
		p.log.Warn("discarding frame", zap.Float32("time", t), zap.Error(err))
		return nil, err
	}

	p.front, p.back = p.back, p.front
	p.steps++
	p.log.Debug("ocean step",
		zap.Uint64("step", p.steps),
		zap.Float32("time", t),
		zap.Duration("elapsed", time.Since(start)),
	)
	return p.front, nil
}

// Height returns the most recent successful height field. Before the first
// Step it is flat.
func (p *Pipeline) Height() *HeightField {
	return p.front
}

// Params returns the parameters the pipeline was built with.
func (p *Pipeline) Params() Params {
	return p.params
}

// Size returns the grid side N.
func (p *Pipeline) Size() int {
	return p.params.Size
}

// Spectrum returns the initial spectrum.
func (p *Pipeline) Spectrum() *Spectrum {
	return p.spectrum
}

// Twiddles returns the butterfly table.
func (p *Pipeline) Twiddles() *TwiddleTable {
	return p.twiddles
}

// Steps returns the number of successful steps.
func (p *Pipeline) Steps() uint64 {
	return p.steps
}

// Close releases the inverter's resources.
func (p *Pipeline) Close() error {
	if p.inverter == nil {
		return nil
	}
	err := p.inverter.Close()
	p.inverter = nil
	return err
}

func checkSpectrum(s *Spectrum) error {
	for i, c := range s.Cells {
		for _, v := range [...]Complex{c.K, c.MinusK} {
			if !v.finite() {
				return &NumericError{Stage: "spectrum", X: i % s.N, Y: i / s.N, Value: v}
			}
		}
	}
	return nil
}
