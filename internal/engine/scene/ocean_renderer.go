// Package scene draws the ocean surface and its debug views.
package scene

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/midgard-ocean/internal/engine/heightmap"
	"github.com/Faultbox/midgard-ocean/internal/engine/lighting"
	"github.com/Faultbox/midgard-ocean/internal/engine/scene/shaders"
	"github.com/Faultbox/midgard-ocean/internal/engine/shader"
	"github.com/Faultbox/midgard-ocean/internal/engine/water"
	"github.com/Faultbox/midgard-ocean/pkg/math"
)

// OceanRenderer draws the patch mesh once per tile, displaced by the
// height texture.
type OceanRenderer struct {
	program *shader.Program

	vao, vbo, ebo uint32
	indexCount    int32

	offsets     []math.Vec2
	patchSize   float32
	heightScale float32
	texel       float32

	SunDir math.Vec3
}

// OceanConfig sizes the renderer.
type OceanConfig struct {
	GridSize    int     // height field N; the mesh gets one quad per texel
	PatchSize   float32 // world size of one tile
	Tiles       int
	HeightScale float32
}

// NewOceanRenderer compiles the ocean program and uploads the patch mesh.
func NewOceanRenderer(cfg OceanConfig) (*OceanRenderer, error) {
	program, err := shader.New(shaders.OceanVertexShader, shaders.OceanFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("ocean shader: %w", err)
	}

	r := &OceanRenderer{
		program:     program,
		offsets:     water.TileOffsets(cfg.Tiles, cfg.PatchSize),
		patchSize:   cfg.PatchSize,
		heightScale: cfg.HeightScale,
		texel:       1 / float32(cfg.GridSize),
		SunDir:      lighting.DefaultSun.Direction(),
	}
	r.upload(water.BuildPatch(cfg.GridSize))
	return r, nil
}

func (r *OceanRenderer) upload(p *water.Patch) {
	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)

	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(p.Vertices)*4, gl.Ptr(p.Vertices), gl.STATIC_DRAW)

	gl.GenBuffers(1, &r.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(p.Indices)*4, gl.Ptr(p.Indices), gl.STATIC_DRAW)

	// Position attribute
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.EnableVertexAttribArray(0)

	gl.BindVertexArray(0)
	r.indexCount = int32(len(p.Indices))
}

// Render draws every tile.
func (r *OceanRenderer) Render(viewProj math.Mat4, cameraPos math.Vec3, tex *heightmap.Texture) {
	if r.vao == 0 {
		return
	}

	gl.Enable(gl.DEPTH_TEST)
	r.program.Use()
	r.program.SetMat4("uViewProj", &viewProj)
	r.program.SetVec3("uCameraPos", cameraPos)
	r.program.SetVec3("uSunDir", r.SunDir)
	r.program.SetFloat("uPatchSize", r.patchSize)
	r.program.SetFloat("uHeightScale", r.heightScale)
	r.program.SetFloat("uTexel", r.texel)

	tex.Bind(0)
	r.program.SetInt("uHeightmap", 0)

	gl.BindVertexArray(r.vao)
	for _, off := range r.offsets {
		r.program.SetVec2("uOffset", off)
		gl.DrawElementsWithOffset(gl.TRIANGLES, r.indexCount, gl.UNSIGNED_INT, 0)
	}
	gl.BindVertexArray(0)
}

// Destroy releases all resources.
func (r *OceanRenderer) Destroy() {
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
		r.vao = 0
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
		r.vbo = 0
	}
	if r.ebo != 0 {
		gl.DeleteBuffers(1, &r.ebo)
		r.ebo = 0
	}
	r.program.Delete()
}
