// Package clfft runs the ocean inverse FFT on an OpenCL device.
//
// The device path is compiled only with the opencl build tag; without it New
// reports ErrUnavailable and callers fall back to the CPU inverter.
package clfft

import "errors"

// ErrUnavailable is returned when OpenCL support is not compiled in or no
// device can be found.
var ErrUnavailable = errors.New("OpenCL inverter unavailable")
