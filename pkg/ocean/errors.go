package ocean

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration is matched by every *ConfigError.
	ErrConfiguration = errors.New("invalid ocean configuration")

	// ErrNumericAnomaly is matched by every *NumericError.
	ErrNumericAnomaly = errors.New("numeric anomaly")

	// ErrClosed is returned by Step after Close.
	ErrClosed = errors.New("ocean pipeline closed")
)

// ConfigError reports a parameter rejected by New.
type ConfigError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s = %v: %s", ErrConfiguration, e.Field, e.Value, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return ErrConfiguration
}

// NumericError reports the first non-finite value found after a stage.
type NumericError struct {
	Stage string
	X, Y  int
	Value Complex
}

func (e *NumericError) Error() string {
	return fmt.Sprintf("%s after %s at (%d, %d): %v%+vi", ErrNumericAnomaly, e.Stage, e.X, e.Y, e.Value.Re, e.Value.Im)
}

func (e *NumericError) Unwrap() error {
	return ErrNumericAnomaly
}

// checkField scans f in row-major order for NaN or Inf.
func checkField(stage string, f *ComplexField) error {
	for i, v := range f.Cells {
		if !v.finite() {
			return &NumericError{Stage: stage, X: i % f.N, Y: i / f.N, Value: v}
		}
	}
	return nil
}

// checkHeights scans h in row-major order for NaN or Inf.
func checkHeights(stage string, h *HeightField) error {
	for i, v := range h.Heights {
		if !finite(v) {
			return &NumericError{Stage: stage, X: i % h.N, Y: i / h.N, Value: Complex{Re: v}}
		}
	}
	return nil
}
