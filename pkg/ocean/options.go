package ocean

import (
	"cogentcore.org/core/base/randx"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-ocean/pkg/compute"
)

type options struct {
	rng        randx.Rand
	dispatcher compute.Dispatcher
	inverter   InverterFactory
	log        *zap.Logger
}

// Option customizes New.
type Option func(*options)

// WithRand sets the source for the random field.
func WithRand(r randx.Rand) Option {
	return func(o *options) { o.rng = r }
}

// WithSeed makes the random field, and therefore the spectrum, reproducible.
func WithSeed(seed int64) Option {
	return func(o *options) { o.rng = randx.NewSysRand(seed) }
}

// WithDispatcher sets how CPU passes are executed. Defaults to a
// compute.Pool sized to GOMAXPROCS.
func WithDispatcher(d compute.Dispatcher) Option {
	return func(o *options) { o.dispatcher = d }
}

// WithInverter replaces the CPU inverse FFT, e.g. with the OpenCL one.
func WithInverter(f InverterFactory) Option {
	return func(o *options) { o.inverter = f }
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.log = l }
}
