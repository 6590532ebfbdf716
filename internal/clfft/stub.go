//go:build !opencl

package clfft

import (
	"fmt"

	"github.com/Faultbox/midgard-ocean/pkg/ocean"
)

// Inverter is a placeholder when built without OpenCL.
type Inverter struct{}

// New always fails without the opencl build tag.
func New(*ocean.TwiddleTable) (*Inverter, error) {
	return nil, fmt.Errorf("%w: rebuild with -tags opencl", ErrUnavailable)
}

// Factory adapts New to ocean.InverterFactory.
func Factory(t *ocean.TwiddleTable) (ocean.Inverter, error) {
	inv, err := New(t)
	if err != nil {
		return nil, err
	}
	return inv, nil
}

func (*Inverter) Invert(*ocean.ComplexField, *ocean.HeightField) error {
	return ErrUnavailable
}

func (*Inverter) Close() error { return nil }

func (*Inverter) DeviceName() string { return "" }
