// Package water builds the ocean patch geometry.
//
// A patch is a flat unit square grid in the XZ plane. The vertex shader
// scales it to world size, moves it by a per-tile offset and lifts each
// vertex by the height texture, so one mesh serves every tile.
package water

import (
	pmath "github.com/Faultbox/midgard-ocean/pkg/math"
)

// Patch holds patch geometry ready for GPU upload.
type Patch struct {
	Side     int       // quads per edge
	Vertices []float32 // x,y,z per vertex, (Side+1)² vertices
	Indices  []uint32  // two triangles per quad
}

// BuildPatch creates a side×side quad grid spanning [0,1]² in XZ.
func BuildPatch(side int) *Patch {
	if side < 1 {
		side = 1
	}
	lines := side + 1
	p := &Patch{
		Side:     side,
		Vertices: make([]float32, 0, lines*lines*3),
		Indices:  make([]uint32, 0, side*side*6),
	}

	for z := 0; z < lines; z++ {
		for x := 0; x < lines; x++ {
			p.Vertices = append(p.Vertices, float32(x)/float32(side), 0, float32(z)/float32(side))
		}
	}

	stride := uint32(lines)
	for z := 0; z < side; z++ {
		for x := 0; x < side; x++ {
			i := uint32(z)*stride + uint32(x)
			p.Indices = append(p.Indices,
				i, i+1, i+stride,
				i+stride, i+1, i+stride+1,
			)
		}
	}
	return p
}

// VertexCount returns the number of vertices.
func (p *Patch) VertexCount() int {
	return len(p.Vertices) / 3
}

// TileOffsets returns the origins of a tiles×tiles layout of patches of the
// given world size, centered on the origin.
func TileOffsets(tiles int, size float32) []pmath.Vec2 {
	if tiles < 1 {
		return nil
	}
	half := float32(tiles) * size / 2
	offsets := make([]pmath.Vec2, 0, tiles*tiles)
	for z := 0; z < tiles; z++ {
		for x := 0; x < tiles; x++ {
			offsets = append(offsets, pmath.Vec2{
				X: float32(x)*size - half,
				Y: float32(z)*size - half,
			})
		}
	}
	return offsets
}
