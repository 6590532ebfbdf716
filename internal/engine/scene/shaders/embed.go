// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// OceanVertexShader displaces the patch grid by the height texture.
//
//go:embed ocean.vert
var OceanVertexShader string

// OceanFragmentShader shades the displaced surface.
//
//go:embed ocean.frag
var OceanFragmentShader string

// HeightDebugVertexShader draws a full-screen quad without vertex buffers.
//
//go:embed height_debug.vert
var HeightDebugVertexShader string

// HeightDebugFragmentShader maps heights to gray levels.
//
//go:embed height_debug.frag
var HeightDebugFragmentShader string
