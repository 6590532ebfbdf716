package ocean

import (
	"errors"
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Faultbox/midgard-ocean/pkg/compute"
)

func newTestPipeline(t *testing.T, p Params, opts ...Option) *Pipeline {
	t.Helper()
	pl, err := New(p, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pl.Close() })
	return pl
}

func TestNewRejectsInvalidParams(t *testing.T) {
	tests := []struct {
		field  string
		mutate func(*Params)
	}{
		{"size", func(p *Params) { p.Size = 0 }},
		{"size", func(p *Params) { p.Size = 1 }},
		{"size", func(p *Params) { p.Size = 100 }},
		{"wind_intensity", func(p *Params) { p.WindIntensity = 0 }},
		{"wind_intensity", func(p *Params) { p.WindIntensity = -3 }},
		{"suppression_length", func(p *Params) { p.SuppressionLength = 0 }},
		{"amplitude", func(p *Params) { p.Amplitude = -1 }},
		{"amplitude", func(p *Params) { p.Amplitude = math32.NaN() }},
		{"scale", func(p *Params) { p.Scale = 0 }},
		{"gravity", func(p *Params) { p.Gravity = -9.81 }},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			p := testParams(16)
			tt.mutate(&p)

			pl, err := New(p)
			assert.Nil(t, pl)
			require.ErrorIs(t, err, ErrConfiguration)

			var cerr *ConfigError
			require.True(t, errors.As(err, &cerr))
			assert.Equal(t, tt.field, cerr.Field)
		})
	}
}

func TestNewAcceptsExtremeValues(t *testing.T) {
	p := testParams(16)
	p.WindIntensity = 1e-3
	p.Amplitude = 1e6
	p.SuppressionLength = 1e-4
	pl := newTestPipeline(t, p, WithSeed(1))

	h, err := pl.Step(10)
	require.NoError(t, err)
	for _, v := range h.Heights {
		assert.False(t, math32.IsNaN(v))
	}
}

func TestStepFlatSea(t *testing.T) {
	p := testParams(32)
	p.Amplitude = 0
	pl := newTestPipeline(t, p, WithSeed(1))

	for _, tm := range []float32{0, 1, 1000} {
		h, err := pl.Step(tm)
		require.NoError(t, err)
		for _, v := range h.Heights {
			assert.Zero(t, v)
		}
	}
}

func TestStepIsAPureFunctionOfTime(t *testing.T) {
	pl := newTestPipeline(t, testParams(64), WithSeed(42))

	first, err := pl.Step(2)
	require.NoError(t, err)
	want := NewHeightField(64)
	first.CopyTo(want)

	_, err = pl.Step(5)
	require.NoError(t, err)
	again, err := pl.Step(2)
	require.NoError(t, err)

	assert.Equal(t, want.Heights, again.Heights)
	assert.Equal(t, uint64(3), pl.Steps())
}

func TestStepProducesWaves(t *testing.T) {
	pl := newTestPipeline(t, testParams(64), WithSeed(3))

	h, err := pl.Step(1)
	require.NoError(t, err)
	lo, hi := h.Range()
	assert.Less(t, lo, float32(0))
	assert.Greater(t, hi, float32(0))

	later, err := pl.Step(4)
	require.NoError(t, err)
	assert.NotEqual(t, h.Heights, later.Heights)
}

func TestSameSeedSameOcean(t *testing.T) {
	a := newTestPipeline(t, testParams(32), WithSeed(7))
	b := newTestPipeline(t, testParams(32), WithSeed(7))
	c := newTestPipeline(t, testParams(32), WithSeed(8))

	assert.Equal(t, a.Spectrum().Cells, b.Spectrum().Cells)
	assert.NotEqual(t, a.Spectrum().Cells, c.Spectrum().Cells)

	ha, err := a.Step(3)
	require.NoError(t, err)
	hb, err := b.Step(3)
	require.NoError(t, err)
	assert.Equal(t, ha.Heights, hb.Heights)
}

func TestDispatchersAgree(t *testing.T) {
	serial := newTestPipeline(t, testParams(64), WithSeed(5), WithDispatcher(compute.Serial{}))
	pooled := newTestPipeline(t, testParams(64), WithSeed(5), WithDispatcher(compute.NewPool(7)))

	for _, tm := range []float32{0, 0.75, 12} {
		hs, err := serial.Step(tm)
		require.NoError(t, err)
		hp, err := pooled.Step(tm)
		require.NoError(t, err)
		assert.Equal(t, hs.Heights, hp.Heights)
	}
}

// poisonInverter corrupts one height on the given call.
type poisonInverter struct {
	*FFT
	calls  int
	poison int
}

func (p *poisonInverter) Invert(src *ComplexField, dst *HeightField) error {
	p.calls++
	if err := p.FFT.Invert(src, dst); err != nil {
		return err
	}
	if p.calls == p.poison {
		dst.Heights[5] = math32.NaN()
	}
	return nil
}

func TestStepKeepsPreviousHeightOnAnomaly(t *testing.T) {
	const n = 16
	pl := newTestPipeline(t, testParams(n), WithSeed(1),
		WithInverter(func(tw *TwiddleTable) (Inverter, error) {
			return &poisonInverter{FFT: NewFFT(tw, nil), poison: 2}, nil
		}))

	good, err := pl.Step(1)
	require.NoError(t, err)
	want := NewHeightField(n)
	good.CopyTo(want)

	h, err := pl.Step(2)
	assert.Nil(t, h)
	require.ErrorIs(t, err, ErrNumericAnomaly)

	var nerr *NumericError
	require.True(t, errors.As(err, &nerr))
	assert.Equal(t, "invert", nerr.Stage)
	assert.Equal(t, 5, nerr.X)
	assert.Equal(t, 0, nerr.Y)

	assert.Equal(t, want.Heights, pl.Height().Heights)
	assert.Equal(t, uint64(1), pl.Steps())

	// The next healthy step recovers.
	_, err = pl.Step(3)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), pl.Steps())
}

func TestNewPropagatesInverterFailure(t *testing.T) {
	boom := errors.New("no device")
	_, err := New(testParams(8), WithInverter(func(*TwiddleTable) (Inverter, error) {
		return nil, boom
	}))
	assert.ErrorIs(t, err, boom)
}

func TestStepAfterClose(t *testing.T) {
	pl, err := New(testParams(8))
	require.NoError(t, err)
	require.NoError(t, pl.Close())
	require.NoError(t, pl.Close())

	_, err = pl.Step(0)
	assert.ErrorIs(t, err, ErrClosed)
}

func TestCheckFieldReportsFirstCell(t *testing.T) {
	f := NewComplexField(4)
	f.Set(3, 2, Complex{Re: math32.Inf(1)})
	f.Set(1, 3, Complex{Im: math32.NaN()})

	err := checkField("evolve", f)
	var nerr *NumericError
	require.True(t, errors.As(err, &nerr))
	assert.Equal(t, 3, nerr.X)
	assert.Equal(t, 2, nerr.Y)
	assert.Contains(t, err.Error(), "evolve")

	assert.NoError(t, checkField("evolve", NewComplexField(4)))
}

func TestPipelineLogsLifecycle(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	pl := newTestPipeline(t, testParams(16), WithSeed(1), WithLogger(zap.New(core)))

	_, err := pl.Step(1)
	require.NoError(t, err)

	ready := logs.FilterMessage("ocean pipeline ready").All()
	require.Len(t, ready, 1)
	assert.Equal(t, int64(16), ready[0].ContextMap()["size"])
	assert.Equal(t, int64(4), ready[0].ContextMap()["stages"])
	assert.Equal(t, 1, logs.FilterMessage("ocean step").Len())
}

func TestPipelineAccessors(t *testing.T) {
	p := testParams(32)
	pl := newTestPipeline(t, p)

	assert.Equal(t, p, pl.Params())
	assert.Equal(t, 32, pl.Size())
	assert.Equal(t, 5, pl.Twiddles().Stages)
	assert.Equal(t, 32, pl.Spectrum().N)
	assert.Equal(t, 32, pl.Height().N)
	assert.Zero(t, pl.Steps())
}
