package roots

import (
	"github.com/gogpu/gputypes"
)

// Bind group slots shared between the shading programs and the host.
// Group 0 is the camera in every program; group 1 is the texture pair for
// TexturedQuad but the lighting pair for LitMesh, which pushes the LitMesh
// texture pair to group 2.
const (
	CameraGroup   = 0
	CameraBinding = 0

	QuadTextureGroup = 1

	LightingGroup      = 1
	GlobalLightBinding = 0
	LightListBinding   = 1

	ModelTextureGroup = 2

	TextureBinding = 0
	SamplerBinding = 1
)

// QuadVertexLayout describes the unit quad corners: float32x2 position at
// location(0), float32x2 uv at location(1).
func QuadVertexLayout() gputypes.VertexBufferLayout {
	return gputypes.VertexBufferLayout{
		ArrayStride: QuadVertexSize,
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes: []gputypes.VertexAttribute{
			{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
			{Format: gputypes.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1},
		},
	}
}

// QuadInstanceLayout describes one sprite: color(2), size(3), pos(4).
func QuadInstanceLayout() gputypes.VertexBufferLayout {
	return gputypes.VertexBufferLayout{
		ArrayStride: QuadInstanceSize,
		StepMode:    gputypes.VertexStepModeInstance,
		Attributes: []gputypes.VertexAttribute{
			{Format: gputypes.VertexFormatFloat32x4, Offset: 0, ShaderLocation: 2},
			{Format: gputypes.VertexFormatFloat32x2, Offset: 16, ShaderLocation: 3},
			{Format: gputypes.VertexFormatFloat32x3, Offset: 24, ShaderLocation: 4},
		},
	}
}

// LineVertexLayout describes the cross-shape profile: float32x3 position
// at location(0).
func LineVertexLayout() gputypes.VertexBufferLayout {
	return gputypes.VertexBufferLayout{
		ArrayStride: LineVertexSize,
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes: []gputypes.VertexAttribute{
			{Format: gputypes.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
		},
	}
}

// LineInstanceLayout describes one segment: color(1), pos1(2), pos2(3),
// thickness(4).
func LineInstanceLayout() gputypes.VertexBufferLayout {
	return gputypes.VertexBufferLayout{
		ArrayStride: LineInstanceSize,
		StepMode:    gputypes.VertexStepModeInstance,
		Attributes: []gputypes.VertexAttribute{
			{Format: gputypes.VertexFormatFloat32x4, Offset: 0, ShaderLocation: 1},
			{Format: gputypes.VertexFormatFloat32x3, Offset: 16, ShaderLocation: 2},
			{Format: gputypes.VertexFormatFloat32x3, Offset: 28, ShaderLocation: 3},
			{Format: gputypes.VertexFormatFloat32, Offset: 40, ShaderLocation: 4},
		},
	}
}

// ModelVertexLayout describes one mesh vertex: pos(0), uv(1), normal(2).
func ModelVertexLayout() gputypes.VertexBufferLayout {
	return gputypes.VertexBufferLayout{
		ArrayStride: ModelVertexSize,
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes: []gputypes.VertexAttribute{
			{Format: gputypes.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
			{Format: gputypes.VertexFormatFloat32x2, Offset: 12, ShaderLocation: 1},
			{Format: gputypes.VertexFormatFloat32x3, Offset: 20, ShaderLocation: 2},
		},
	}
}

// ModelInstanceLayout describes one mesh instance: transform columns at
// locations 3-6, color(7), normal-matrix rows at 8-10.
func ModelInstanceLayout() gputypes.VertexBufferLayout {
	return gputypes.VertexBufferLayout{
		ArrayStride: ModelInstanceSize,
		StepMode:    gputypes.VertexStepModeInstance,
		Attributes: []gputypes.VertexAttribute{
			{Format: gputypes.VertexFormatFloat32x4, Offset: 0, ShaderLocation: 3},
			{Format: gputypes.VertexFormatFloat32x4, Offset: 16, ShaderLocation: 4},
			{Format: gputypes.VertexFormatFloat32x4, Offset: 32, ShaderLocation: 5},
			{Format: gputypes.VertexFormatFloat32x4, Offset: 48, ShaderLocation: 6},
			{Format: gputypes.VertexFormatFloat32x4, Offset: 64, ShaderLocation: 7},
			{Format: gputypes.VertexFormatFloat32x3, Offset: 80, ShaderLocation: 8},
			{Format: gputypes.VertexFormatFloat32x3, Offset: 92, ShaderLocation: 9},
			{Format: gputypes.VertexFormatFloat32x3, Offset: 104, ShaderLocation: 10},
		},
	}
}
