package roots

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Byte strides of the vertex and instance records. Instance records are
// padded to a 16-byte multiple; the pad bytes never reach a shader.
const (
	QuadVertexSize    = 16
	QuadInstanceSize  = 48
	LineVertexSize    = 12
	LineInstanceSize  = 48
	ModelVertexSize   = 32
	ModelInstanceSize = 128
)

// QuadVertex is one corner of the shared unit quad.
// Must match the VertexIn vertex attributes in texture2d.wgsl.
type QuadVertex struct {
	Pos mgl32.Vec2
	UV  mgl32.Vec2
}

func (v QuadVertex) append(b []byte, off int) {
	putVec2(b, off, v.Pos)
	putVec2(b, off+8, v.UV)
}

// QuadInstance is one sprite drawn by the TexturedQuad program: a tint,
// a pixel size the unit quad is scaled by, and a world position.
// Must match the InstanceIn instance attributes in texture2d.wgsl.
type QuadInstance struct {
	Color mgl32.Vec4
	Size  mgl32.Vec2
	Pos   mgl32.Vec3
}

func (q QuadInstance) append(b []byte, off int) {
	putVec4(b, off, q.Color)
	putVec2(b, off+16, q.Size)
	putVec3(b, off+24, q.Pos)
}

// EncodeQuadInstances packs instances for a vertex buffer upload.
func EncodeQuadInstances(instances []QuadInstance) []byte {
	b := make([]byte, len(instances)*QuadInstanceSize)
	for i, q := range instances {
		q.append(b, i*QuadInstanceSize)
	}
	return b
}

// LineInstance is one segment drawn by the LineSegment program. Each of
// the 8 cross-shape vertices anchors to Pos1 or Pos2 by vertex index and
// is offset by Thickness.
// Must match the InstanceIn instance attributes in line.wgsl.
type LineInstance struct {
	Color     mgl32.Vec4
	Pos1      mgl32.Vec3
	Pos2      mgl32.Vec3
	Thickness float32
}

// DefaultLineInstance returns a white 2-unit-thick segment from the origin
// to (1,1,1).
func DefaultLineInstance() LineInstance {
	return LineInstance{
		Color:     mgl32.Vec4{1, 1, 1, 1},
		Pos1:      mgl32.Vec3{1, 1, 1},
		Thickness: 2,
	}
}

func (l LineInstance) append(b []byte, off int) {
	putVec4(b, off, l.Color)
	putVec3(b, off+16, l.Pos1)
	putVec3(b, off+28, l.Pos2)
	putF32(b, off+40, l.Thickness)
}

// EncodeLineInstances packs instances for a vertex buffer upload.
func EncodeLineInstances(instances []LineInstance) []byte {
	b := make([]byte, len(instances)*LineInstanceSize)
	for i, l := range instances {
		l.append(b, i*LineInstanceSize)
	}
	return b
}

// ModelVertex is one mesh vertex of the LitMesh program.
// Must match the VertexIn vertex attributes in model.wgsl.
type ModelVertex struct {
	Pos    mgl32.Vec3
	UV     mgl32.Vec2
	Normal mgl32.Vec3
}

func (v ModelVertex) append(b []byte, off int) {
	putVec3(b, off, v.Pos)
	putVec2(b, off+12, v.UV)
	putVec3(b, off+20, v.Normal)
}

// EncodeModelVertices packs mesh vertices for a vertex buffer upload.
func EncodeModelVertices(vertices []ModelVertex) []byte {
	b := make([]byte, len(vertices)*ModelVertexSize)
	for i, v := range vertices {
		v.append(b, i*ModelVertexSize)
	}
	return b
}

// ModelInstance is one mesh instance of the LitMesh program: a full
// local-to-world transform, a tint, and the normal matrix the host derived
// from the transform's rotation. The matrices cross the vertex-attribute
// boundary as four vec4 columns and three vec3 rows respectively.
// Must match the InstanceIn instance attributes in model.wgsl.
type ModelInstance struct {
	Transform mgl32.Mat4
	Color     mgl32.Vec4
	// Normal rows; row-major so each row maps to one vertex attribute.
	Normal0, Normal1, Normal2 mgl32.Vec3
}

// SetNormalMatrix stores m row by row.
func (m *ModelInstance) SetNormalMatrix(n mgl32.Mat3) {
	m.Normal0 = n.Row(0)
	m.Normal1 = n.Row(1)
	m.Normal2 = n.Row(2)
}

// NormalMatrix reassembles the row-major normal matrix.
func (m ModelInstance) NormalMatrix() mgl32.Mat3 {
	return mgl32.Mat3FromRows(m.Normal0, m.Normal1, m.Normal2)
}

func (m ModelInstance) append(b []byte, off int) {
	putMat4(b, off, m.Transform)
	putVec4(b, off+64, m.Color)
	putVec3(b, off+80, m.Normal0)
	putVec3(b, off+92, m.Normal1)
	putVec3(b, off+104, m.Normal2)
}

// EncodeModelInstances packs instances for a vertex buffer upload.
func EncodeModelInstances(instances []ModelInstance) []byte {
	b := make([]byte, len(instances)*ModelInstanceSize)
	for i, m := range instances {
		m.append(b, i*ModelInstanceSize)
	}
	return b
}
