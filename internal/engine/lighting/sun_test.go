package lighting

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSunDirectionZenith(t *testing.T) {
	d := Sun{Azimuth: 123, Elevation: 90}.Direction()
	assert.InDelta(t, 0, d.X, 1e-6)
	assert.InDelta(t, 1, d.Y, 1e-6)
	assert.InDelta(t, 0, d.Z, 1e-6)
}

func TestSunDirectionHorizon(t *testing.T) {
	d := Sun{Azimuth: 90, Elevation: 0}.Direction()
	assert.InDelta(t, 1, d.X, 1e-6)
	assert.InDelta(t, 0, d.Y, 1e-6)
	assert.InDelta(t, 0, d.Z, 1e-6)
}

func TestSunDirectionIsUnit(t *testing.T) {
	for _, s := range []Sun{DefaultSun, {Azimuth: -45, Elevation: 10}, {Azimuth: 400, Elevation: 120}} {
		assert.InDelta(t, 1, s.Direction().Length(), 1e-5)
	}
}
