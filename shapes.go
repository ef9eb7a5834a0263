package roots

import (
	"github.com/go-gl/mathgl/mgl32"
)

// QuadVertices is the unit quad every TexturedQuad instance scales and
// positions. UV (0,0) is the top-left corner.
var QuadVertices = [4]QuadVertex{
	{Pos: mgl32.Vec2{-0.5, 0.5}, UV: mgl32.Vec2{0, 0}},
	{Pos: mgl32.Vec2{-0.5, -0.5}, UV: mgl32.Vec2{0, 1}},
	{Pos: mgl32.Vec2{0.5, 0.5}, UV: mgl32.Vec2{1, 0}},
	{Pos: mgl32.Vec2{0.5, -0.5}, UV: mgl32.Vec2{1, 1}},
}

// QuadIndices triangulates QuadVertices counter-clockwise.
var QuadIndices = [6]uint16{0, 1, 3, 0, 3, 2}

// LineVerticesPerInstance is the vertex count of the line cross shape.
// The first half anchors to endpoint A, the second half to endpoint B;
// the vertex stage classifies by vertex_index % 8.
const LineVerticesPerInstance = 8

// LineVertices is the cross-shaped unit profile of a segment: a horizontal
// and a vertical bar, duplicated once per endpoint.
var LineVertices = [LineVerticesPerInstance]mgl32.Vec3{
	{-0.5, 0, 0},
	{0.5, 0, 0},
	{0, -0.5, 0},
	{0, 0.5, 0},
	{-0.5, 0, 0},
	{0.5, 0, 0},
	{0, -0.5, 0},
	{0, 0.5, 0},
}

// LineIndices stitches the two endpoint copies of the cross into quads
// spanning the segment.
var LineIndices = [12]uint16{0, 4, 5, 0, 5, 1, 2, 6, 7, 2, 7, 3}

// CubeVertices is a unit cube with per-face normals and UVs, four vertices
// per face, faces ordered -Z, +X, +Z, -X, +Y, -Y.
var CubeVertices = [24]ModelVertex{
	// Back (-z)
	{Pos: mgl32.Vec3{-0.5, 0.5, -0.5}, UV: mgl32.Vec2{0, 0}, Normal: mgl32.Vec3{0, 0, -1}},
	{Pos: mgl32.Vec3{0.5, 0.5, -0.5}, UV: mgl32.Vec2{1, 0}, Normal: mgl32.Vec3{0, 0, -1}},
	{Pos: mgl32.Vec3{-0.5, -0.5, -0.5}, UV: mgl32.Vec2{0, 1}, Normal: mgl32.Vec3{0, 0, -1}},
	{Pos: mgl32.Vec3{0.5, -0.5, -0.5}, UV: mgl32.Vec2{1, 1}, Normal: mgl32.Vec3{0, 0, -1}},
	// Right (+x)
	{Pos: mgl32.Vec3{0.5, 0.5, -0.5}, UV: mgl32.Vec2{0, 0}, Normal: mgl32.Vec3{1, 0, 0}},
	{Pos: mgl32.Vec3{0.5, 0.5, 0.5}, UV: mgl32.Vec2{1, 0}, Normal: mgl32.Vec3{1, 0, 0}},
	{Pos: mgl32.Vec3{0.5, -0.5, -0.5}, UV: mgl32.Vec2{0, 1}, Normal: mgl32.Vec3{1, 0, 0}},
	{Pos: mgl32.Vec3{0.5, -0.5, 0.5}, UV: mgl32.Vec2{1, 1}, Normal: mgl32.Vec3{1, 0, 0}},
	// Front (+z)
	{Pos: mgl32.Vec3{0.5, 0.5, 0.5}, UV: mgl32.Vec2{0, 0}, Normal: mgl32.Vec3{0, 0, 1}},
	{Pos: mgl32.Vec3{-0.5, 0.5, 0.5}, UV: mgl32.Vec2{1, 0}, Normal: mgl32.Vec3{0, 0, 1}},
	{Pos: mgl32.Vec3{0.5, -0.5, 0.5}, UV: mgl32.Vec2{0, 1}, Normal: mgl32.Vec3{0, 0, 1}},
	{Pos: mgl32.Vec3{-0.5, -0.5, 0.5}, UV: mgl32.Vec2{1, 1}, Normal: mgl32.Vec3{0, 0, 1}},
	// Left (-x)
	{Pos: mgl32.Vec3{-0.5, 0.5, 0.5}, UV: mgl32.Vec2{0, 0}, Normal: mgl32.Vec3{-1, 0, 0}},
	{Pos: mgl32.Vec3{-0.5, 0.5, -0.5}, UV: mgl32.Vec2{1, 0}, Normal: mgl32.Vec3{-1, 0, 0}},
	{Pos: mgl32.Vec3{-0.5, -0.5, 0.5}, UV: mgl32.Vec2{0, 1}, Normal: mgl32.Vec3{-1, 0, 0}},
	{Pos: mgl32.Vec3{-0.5, -0.5, -0.5}, UV: mgl32.Vec2{1, 1}, Normal: mgl32.Vec3{-1, 0, 0}},
	// Top (+y)
	{Pos: mgl32.Vec3{0.5, 0.5, -0.5}, UV: mgl32.Vec2{0, 0}, Normal: mgl32.Vec3{0, 1, 0}},
	{Pos: mgl32.Vec3{-0.5, 0.5, -0.5}, UV: mgl32.Vec2{1, 0}, Normal: mgl32.Vec3{0, 1, 0}},
	{Pos: mgl32.Vec3{0.5, 0.5, 0.5}, UV: mgl32.Vec2{0, 1}, Normal: mgl32.Vec3{0, 1, 0}},
	{Pos: mgl32.Vec3{-0.5, 0.5, 0.5}, UV: mgl32.Vec2{1, 1}, Normal: mgl32.Vec3{0, 1, 0}},
	// Bottom (-y)
	{Pos: mgl32.Vec3{0.5, -0.5, -0.5}, UV: mgl32.Vec2{0, 0}, Normal: mgl32.Vec3{0, -1, 0}},
	{Pos: mgl32.Vec3{-0.5, -0.5, -0.5}, UV: mgl32.Vec2{1, 0}, Normal: mgl32.Vec3{0, -1, 0}},
	{Pos: mgl32.Vec3{0.5, -0.5, 0.5}, UV: mgl32.Vec2{0, 1}, Normal: mgl32.Vec3{0, -1, 0}},
	{Pos: mgl32.Vec3{-0.5, -0.5, 0.5}, UV: mgl32.Vec2{1, 1}, Normal: mgl32.Vec3{0, -1, 0}},
}

// CubeIndices triangulates CubeVertices face by face.
var CubeIndices = [36]uint32{
	0, 2, 3, 0, 3, 1, // Back
	4, 6, 7, 4, 7, 5, // Right
	8, 10, 11, 8, 11, 9, // Front
	12, 14, 15, 12, 15, 13, // Left
	16, 18, 19, 16, 19, 17, // Top
	20, 22, 23, 20, 23, 21, // Bottom
}

// EncodeLineVertices packs the cross-shape positions for a vertex buffer
// upload (tightly packed vec3, 12-byte stride).
func EncodeLineVertices(vertices []mgl32.Vec3) []byte {
	b := make([]byte, len(vertices)*LineVertexSize)
	for i, v := range vertices {
		putVec3(b, i*LineVertexSize, v)
	}
	return b
}

// EncodeQuadVertices packs quad corners for a vertex buffer upload.
func EncodeQuadVertices(vertices []QuadVertex) []byte {
	b := make([]byte, len(vertices)*QuadVertexSize)
	for i, v := range vertices {
		v.append(b, i*QuadVertexSize)
	}
	return b
}
