// Package lighting provides the directional light used to shade the ocean.
package lighting

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/midgard-ocean/pkg/math"
)

// Sun is a directional light given as azimuth/elevation in degrees.
// Azimuth rotates around the Y axis starting at +Z, elevation is measured
// up from the horizon.
type Sun struct {
	Azimuth   float32
	Elevation float32
}

// DefaultSun is a mid-afternoon sun behind the default camera.
var DefaultSun = Sun{Azimuth: 30, Elevation: 55}

// Direction returns the unit vector pointing towards the sun.
func (s Sun) Direction() math.Vec3 {
	az := s.Azimuth * math32.Pi / 180
	el := math32.Max(-90, math32.Min(90, s.Elevation)) * math32.Pi / 180

	return math.Vec3{
		X: math32.Cos(el) * math32.Sin(az),
		Y: math32.Sin(el),
		Z: math32.Cos(el) * math32.Cos(az),
	}
}
