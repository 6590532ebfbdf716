package scene

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/midgard-ocean/internal/engine/heightmap"
	"github.com/Faultbox/midgard-ocean/internal/engine/scene/shaders"
	"github.com/Faultbox/midgard-ocean/internal/engine/shader"
	"github.com/Faultbox/midgard-ocean/pkg/math"
)

// HeightDebugRenderer shows the raw height texture as a full-screen
// grayscale quad.
type HeightDebugRenderer struct {
	program *shader.Program
	vao     uint32
}

// NewHeightDebugRenderer compiles the debug program.
func NewHeightDebugRenderer() (*HeightDebugRenderer, error) {
	program, err := shader.New(shaders.HeightDebugVertexShader, shaders.HeightDebugFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("height debug shader: %w", err)
	}
	r := &HeightDebugRenderer{program: program}
	// Core profile needs a bound VAO even for attributeless draws.
	gl.GenVertexArrays(1, &r.vao)
	return r, nil
}

// Render maps heights in [lo, hi] to black..white.
func (r *HeightDebugRenderer) Render(tex *heightmap.Texture, lo, hi float32) {
	gl.Disable(gl.DEPTH_TEST)
	r.program.Use()
	tex.Bind(0)
	r.program.SetInt("uHeightmap", 0)
	r.program.SetVec2("uRange", math.Vec2{X: lo, Y: hi})

	gl.BindVertexArray(r.vao)
	gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)
	gl.BindVertexArray(0)
}

// Destroy releases all resources.
func (r *HeightDebugRenderer) Destroy() {
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
		r.vao = 0
	}
	r.program.Delete()
}
