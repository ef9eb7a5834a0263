// Package pipeline is the GPU-facing surface of the roots shading core:
// the three embedded WGSL programs (textured quads, line segments, lit
// meshes), their bind group and vertex layouts, render pipeline
// construction, and the resource managers the programs read from (camera
// uniform, lighting buffers, textures, instance buffers).
package pipeline

import (
	_ "embed"
	"fmt"

	"github.com/gogpu/naga"
)

// WGSL shader sources for the three shading programs.
// These are embedded at build time using go:embed directives.

//go:embed shaders/texture2d.wgsl
var texture2DShaderSource string

//go:embed shaders/line.wgsl
var lineShaderSource string

//go:embed shaders/model.wgsl
var modelShaderSource string

// Texture2DShaderSource returns the WGSL source of the textured quad
// program.
func Texture2DShaderSource() string { return texture2DShaderSource }

// LineShaderSource returns the WGSL source of the line segment program.
func LineShaderSource() string { return lineShaderSource }

// ModelShaderSource returns the WGSL source of the lit mesh program.
func ModelShaderSource() string { return modelShaderSource }

// ShaderBinaries holds the SPIR-V form of the three programs for backends
// that consume SPIR-V instead of WGSL.
type ShaderBinaries struct {
	Texture2D []byte
	Line      []byte
	Model     []byte
}

// CompileShaders compiles all three WGSL programs to SPIR-V via naga.
// Backends that accept WGSL directly (hal.ShaderSource) do not need this.
func CompileShaders() (*ShaderBinaries, error) {
	tex, err := naga.Compile(texture2DShaderSource)
	if err != nil {
		return nil, fmt.Errorf("compile texture2d shader: %w", err)
	}
	line, err := naga.Compile(lineShaderSource)
	if err != nil {
		return nil, fmt.Errorf("compile line shader: %w", err)
	}
	model, err := naga.Compile(modelShaderSource)
	if err != nil {
		return nil, fmt.Errorf("compile model shader: %w", err)
	}
	return &ShaderBinaries{Texture2D: tex, Line: line, Model: model}, nil
}
