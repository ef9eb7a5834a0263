// Package software is a CPU mirror of the three WGSL shading programs,
// stage by stage, over the same record types the GPU consumes. The test
// suite uses it to characterize the numeric contracts (lighting
// accumulation, matrix reconstruction, endpoint classification) that
// cannot be observed on a headless CI machine.
package software

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/BrackenLo/roots"
)

// Shininess is the fixed Blinn-Phong specular exponent of the lit mesh
// program.
const Shininess float32 = 32

// Sampler models the texture+sampler binding as a pure function from UV
// to color. Wrap and filter policy belong to the host's sampler, so the
// reference takes whatever function the test supplies.
type Sampler func(uv mgl32.Vec2) mgl32.Vec4

// FlatSampler returns a Sampler that ignores the UV and always produces c.
func FlatSampler(c mgl32.Vec4) Sampler {
	return func(mgl32.Vec2) mgl32.Vec4 { return c }
}

// Mat4FromColumns reassembles a 4x4 matrix from the four column vectors
// an instance record splits it into.
func Mat4FromColumns(c0, c1, c2, c3 mgl32.Vec4) mgl32.Mat4 {
	return mgl32.Mat4FromCols(c0, c1, c2, c3)
}

// Mat3FromRows reassembles a 3x3 matrix from the three row vectors an
// instance record splits it into.
func Mat3FromRows(r0, r1, r2 mgl32.Vec3) mgl32.Mat3 {
	return mgl32.Mat3FromRows(r0, r1, r2)
}

// LineAnchor classifies a vertex of the line cross shape by its ordinal
// position: the first half of each 8-vertex group anchors to a, the
// second half to b.
func LineAnchor(vertexIndex uint32, a, b mgl32.Vec3) mgl32.Vec3 {
	if vertexIndex%roots.LineVerticesPerInstance < roots.LineVerticesPerInstance/2 {
		return a
	}
	return b
}

// QuadVertexOut is the TexturedQuad vertex-to-fragment contract.
type QuadVertexOut struct {
	ClipPosition mgl32.Vec4
	UV           mgl32.Vec2
	Color        mgl32.Vec4
}

// QuadVertexStage mirrors vs_main of texture2d.wgsl.
func QuadVertexStage(cam roots.CameraUniform, v roots.QuadVertex, inst roots.QuadInstance) QuadVertexOut {
	scaled := mgl32.Vec2{v.Pos[0] * inst.Size[0], v.Pos[1] * inst.Size[1]}
	world := mgl32.Vec3{scaled[0], scaled[1], 0}.Add(inst.Pos)
	return QuadVertexOut{
		ClipPosition: cam.ViewProjection.Mul4x1(world.Vec4(1)),
		UV:           v.UV,
		Color:        inst.Color,
	}
}

// QuadFragmentStage mirrors fs_main of texture2d.wgsl: sample times tint,
// alpha included.
func QuadFragmentStage(sample Sampler, frag QuadVertexOut) mgl32.Vec4 {
	return mulVec4(sample(frag.UV), frag.Color)
}

// LineVertexOut is the LineSegment vertex-to-fragment contract.
type LineVertexOut struct {
	ClipPosition mgl32.Vec4
	Color        mgl32.Vec4
}

// LineVertexStage mirrors vs_main of line.wgsl, projection included.
func LineVertexStage(cam roots.CameraUniform, vertexIndex uint32, local mgl32.Vec3, inst roots.LineInstance) LineVertexOut {
	anchor := LineAnchor(vertexIndex, inst.Pos1, inst.Pos2)
	world := local.Mul(inst.Thickness).Add(anchor)
	return LineVertexOut{
		ClipPosition: cam.ViewProjection.Mul4x1(world.Vec4(1)),
		Color:        inst.Color,
	}
}

// LineFragmentStage mirrors fs_main of line.wgsl: the color passes
// through unchanged.
func LineFragmentStage(frag LineVertexOut) mgl32.Vec4 {
	return frag.Color
}

// ModelVertexOut is the LitMesh vertex-to-fragment contract.
type ModelVertexOut struct {
	ClipPosition  mgl32.Vec4
	WorldPosition mgl32.Vec3
	UV            mgl32.Vec2
	Normal        mgl32.Vec3
	Color         mgl32.Vec4
}

// ModelVertexStage mirrors vs_main of model.wgsl: transform and normal
// matrix are reassembled from the instance record, world position and
// normal derive from the same instance.
func ModelVertexStage(cam roots.CameraUniform, v roots.ModelVertex, inst roots.ModelInstance) ModelVertexOut {
	world := inst.Transform.Mul4x1(v.Pos.Vec4(1))
	return ModelVertexOut{
		ClipPosition:  cam.ViewProjection.Mul4x1(world),
		WorldPosition: world.Vec3(),
		UV:            v.UV,
		Normal:        inst.NormalMatrix().Mul3x1(v.Normal),
		Color:         inst.Color,
	}
}

// ModelFragmentStage mirrors fs_main of model.wgsl: Blinn-Phong
// accumulation over the light list, modulated by the texture sample and
// the instance tint. A light coincident with the fragment normalizes a
// zero vector; the resulting NaN propagates, exactly as on the GPU.
func ModelFragmentStage(
	cam roots.CameraUniform,
	globals roots.GlobalLightData,
	lights []roots.Light,
	sample Sampler,
	frag ModelVertexOut,
) mgl32.Vec4 {
	ambient := globals.AmbientColor.Mul(globals.AmbientStrength)

	normal := normalize(frag.Normal)
	viewDir := normalize(cam.Position.Sub(frag.WorldPosition))

	var diffuse, specular mgl32.Vec3
	for _, light := range lights {
		lightDir := normalize(light.Position.Vec3().Sub(frag.WorldPosition))
		diffuseStrength := math32.Max(normal.Dot(lightDir), 0)
		diffuse = diffuse.Add(light.Diffuse.Vec3().Mul(diffuseStrength))

		halfDir := normalize(viewDir.Add(lightDir))
		specularStrength := math32.Pow(math32.Max(normal.Dot(halfDir), 0), Shininess)
		specular = specular.Add(light.Specular.Vec3().Mul(specularStrength))
	}

	texColor := sample(frag.UV).Vec3()
	result := mulVec3(ambient.Add(diffuse).Add(specular), texColor)

	return mulVec4(result.Vec4(1), frag.Color)
}

// normalize matches WGSL normalize: a zero-length input divides by zero
// and yields NaN components rather than a guarded fallback.
func normalize(v mgl32.Vec3) mgl32.Vec3 {
	inv := 1 / math32.Sqrt(v.Dot(v))
	return mgl32.Vec3{v[0] * inv, v[1] * inv, v[2] * inv}
}

func mulVec3(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{a[0] * b[0], a[1] * b[1], a[2] * b[2]}
}

func mulVec4(a, b mgl32.Vec4) mgl32.Vec4 {
	return mgl32.Vec4{a[0] * b[0], a[1] * b[1], a[2] * b[2], a[3] * b[3]}
}
