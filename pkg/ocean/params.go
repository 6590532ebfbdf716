package ocean

import (
	pmath "github.com/Faultbox/midgard-ocean/pkg/math"
)

// Default spectrum parameters.
const (
	DefaultSize              = 256
	DefaultAmplitude         = 4.0
	DefaultWindIntensity     = 40.0
	DefaultSuppressionLength = 0.5
	DefaultScale             = 1000.0
	DefaultGravity           = 9.81
)

// Params configures a pipeline. All fields are plain inputs; nothing here is
// derived state.
type Params struct {
	// Size is the grid side N. Must be a power of two.
	Size int

	// Amplitude is the Phillips constant A.
	Amplitude float32

	// WindDirection need not be normalized. A zero vector yields a flat sea.
	WindDirection pmath.Vec2

	// WindIntensity is the wind speed V; the largest wave is V²/g.
	WindIntensity float32

	// SuppressionLength is l in exp(-k²l²), damping the smallest ripples.
	SuppressionLength float32

	// Scale is the world-space side length of the patch covered by the grid.
	Scale float32

	Gravity float32
}

// DefaultParams returns the documented defaults.
func DefaultParams() Params {
	return Params{
		Size:              DefaultSize,
		Amplitude:         DefaultAmplitude,
		WindDirection:     pmath.Vec2{X: 1, Y: 1},
		WindIntensity:     DefaultWindIntensity,
		SuppressionLength: DefaultSuppressionLength,
		Scale:             DefaultScale,
		Gravity:           DefaultGravity,
	}
}

// Validate reports the first parameter that would make the spectrum
// meaningless. Extreme but valid values are accepted.
func (p Params) Validate() error {
	if _, ok := log2(p.Size); !ok || p.Size < 2 {
		return &ConfigError{Field: "size", Value: p.Size, Reason: "must be a power of two >= 2"}
	}
	if !(p.WindIntensity > 0) {
		return &ConfigError{Field: "wind_intensity", Value: p.WindIntensity, Reason: "must be positive"}
	}
	if !(p.SuppressionLength > 0) {
		return &ConfigError{Field: "suppression_length", Value: p.SuppressionLength, Reason: "must be positive"}
	}
	if !(p.Amplitude >= 0) {
		return &ConfigError{Field: "amplitude", Value: p.Amplitude, Reason: "must not be negative"}
	}
	if !(p.Scale > 0) {
		return &ConfigError{Field: "scale", Value: p.Scale, Reason: "must be positive"}
	}
	if !(p.Gravity > 0) {
		return &ConfigError{Field: "gravity", Value: p.Gravity, Reason: "must be positive"}
	}
	return nil
}
