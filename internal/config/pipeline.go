package config

import (
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-ocean/internal/clfft"
	"github.com/Faultbox/midgard-ocean/pkg/compute"
	"github.com/Faultbox/midgard-ocean/pkg/ocean"
)

// Dispatcher returns the CPU dispatcher for the compute section.
func (c ComputeConfig) Dispatcher() compute.Dispatcher {
	if c.Backend == BackendSerial {
		return compute.Serial{}
	}
	return compute.NewPool(c.Workers)
}

// PipelineOptions turns the config into ocean.New options.
func (c *Config) PipelineOptions(log *zap.Logger) []ocean.Option {
	opts := []ocean.Option{
		ocean.WithDispatcher(c.Compute.Dispatcher()),
		ocean.WithLogger(log),
	}
	if c.Ocean.Seed != 0 {
		opts = append(opts, ocean.WithSeed(c.Ocean.Seed))
	}
	if c.Compute.Backend == BackendOpenCL {
		opts = append(opts, ocean.WithInverter(clfft.Factory))
	}
	return opts
}
