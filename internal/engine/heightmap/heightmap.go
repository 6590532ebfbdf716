// Package heightmap keeps a height field resident as a single-channel float
// texture.
package heightmap

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/midgard-ocean/pkg/ocean"
)

// Texture is an N×N R32F texture that wraps in both directions, so adjacent
// ocean tiles sample a seamless surface.
type Texture struct {
	ID uint32
	N  int
}

// New allocates the texture storage.
func New(n int) *Texture {
	t := &Texture{N: n}
	gl.GenTextures(1, &t.ID)
	gl.BindTexture(gl.TEXTURE_2D, t.ID)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.R32F, int32(n), int32(n), 0, gl.RED, gl.FLOAT, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return t
}

// Upload replaces the texture contents with h. Sizes must match.
func (t *Texture) Upload(h *ocean.HeightField) {
	if h.N != t.N || len(h.Heights) == 0 {
		return
	}
	gl.BindTexture(gl.TEXTURE_2D, t.ID)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(t.N), int32(t.N), gl.RED, gl.FLOAT, gl.Ptr(h.Heights))
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// Bind binds the texture to a texture unit.
func (t *Texture) Bind(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, t.ID)
}

// Delete frees the texture.
func (t *Texture) Delete() {
	if t.ID != 0 {
		gl.DeleteTextures(1, &t.ID)
		t.ID = 0
	}
}
