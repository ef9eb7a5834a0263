package roots

import (
	"github.com/go-gl/mathgl/mgl32"
)

// CameraUniformSize is the byte size of the camera uniform block:
// mat4x4 view-projection (64) + vec3 camera position (12) + 4 bytes padding.
const CameraUniformSize = 80

// CameraUniform is the raw camera uniform block every shading program reads
// at group(0) binding(0).
// Must match the Camera struct in texture2d.wgsl, line.wgsl and model.wgsl.
type CameraUniform struct {
	ViewProjection mgl32.Mat4
	Position       mgl32.Vec3
}

// Bytes encodes the uniform block as the GPU reads it (80 bytes,
// little-endian, column-major matrix, trailing padding zeroed).
func (u CameraUniform) Bytes() []byte {
	b := make([]byte, CameraUniformSize)
	putMat4(b, 0, u.ViewProjection)
	putVec3(b, 64, u.Position)
	return b
}

// Projection computes the matrices a camera contributes to the shared
// uniform block. OrthographicCamera and PerspectiveCamera implement it;
// hosts with exotic projections can supply their own.
type Projection interface {
	ProjectionMatrix() mgl32.Mat4
	ViewMatrix(eye mgl32.Vec3, rotation mgl32.Quat) mgl32.Mat4
}

// NewCameraUniform assembles the uniform block for a camera placed at eye
// with the given rotation.
func NewCameraUniform(p Projection, eye mgl32.Vec3, rotation mgl32.Quat) CameraUniform {
	return CameraUniform{
		ViewProjection: p.ProjectionMatrix().Mul4(p.ViewMatrix(eye, rotation)),
		Position:       eye,
	}
}

// glToWebGPUDepth remaps OpenGL clip depth (-1..1) to the WebGPU clip
// volume (0..1): z' = z/2 + w/2. mgl32 builds OpenGL-convention
// projections; the render pipelines clip against 0 <= z <= w.
var glToWebGPUDepth = mgl32.Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 0.5, 0,
	0, 0, 0.5, 1,
}

// OrthographicCamera projects an axis-aligned box straight onto the target,
// typically with one unit per pixel for 2D drawing.
type OrthographicCamera struct {
	Left, Right float32
	Bottom, Top float32
	ZNear, ZFar float32
}

// NewOrthographicCamera returns a camera covering a width x height viewport
// with the origin at the bottom-left.
func NewOrthographicCamera(width, height float32) OrthographicCamera {
	return OrthographicCamera{
		Right: width,
		Top:   height,
		ZFar:  1_000_000,
	}
}

// NewCenteredOrthographicCamera returns a camera with the origin in the
// middle of the viewport.
func NewCenteredOrthographicCamera(halfWidth, halfHeight float32) OrthographicCamera {
	return OrthographicCamera{
		Left:   -halfWidth,
		Right:  halfWidth,
		Bottom: -halfHeight,
		Top:    halfHeight,
		ZFar:   1_000_000,
	}
}

// ProjectionMatrix projects the view box to the WebGPU clip volume; the
// near plane lands at clip depth 0, so a z=0 sprite plane with ZNear 0
// stays visible.
func (c OrthographicCamera) ProjectionMatrix() mgl32.Mat4 {
	return glToWebGPUDepth.Mul4(mgl32.Ortho(c.Left, c.Right, c.Bottom, c.Top, c.ZNear, c.ZFar))
}

// ViewMatrix follows the camera translation directly; an orthographic view
// volume is positioned, not inverted.
func (c OrthographicCamera) ViewMatrix(eye mgl32.Vec3, rotation mgl32.Quat) mgl32.Mat4 {
	return mgl32.Translate3D(eye.X(), eye.Y(), eye.Z()).Mul4(rotation.Mat4())
}

// PerspectiveCamera projects a view frustum looking along the rotated
// forward axis.
type PerspectiveCamera struct {
	Up     mgl32.Vec3
	Aspect float32
	// FovY is the vertical field of view in degrees.
	FovY        float32
	ZNear, ZFar float32
}

// NewPerspectiveCamera returns a 45-degree camera with a +Y up vector.
func NewPerspectiveCamera(aspect float32) PerspectiveCamera {
	return PerspectiveCamera{
		Up:     mgl32.Vec3{0, 1, 0},
		Aspect: aspect,
		FovY:   45,
		ZNear:  0.1,
		ZFar:   1_000_000,
	}
}

// ProjectionMatrix projects the view frustum to the WebGPU clip volume
// with depth 0 at the near plane.
func (c PerspectiveCamera) ProjectionMatrix() mgl32.Mat4 {
	return glToWebGPUDepth.Mul4(mgl32.Perspective(mgl32.DegToRad(c.FovY), c.Aspect, c.ZNear, c.ZFar))
}

func (c PerspectiveCamera) ViewMatrix(eye mgl32.Vec3, rotation mgl32.Quat) mgl32.Mat4 {
	forward := rotation.Rotate(mgl32.Vec3{0, 0, -1})
	return mgl32.LookAtV(eye, eye.Add(forward), c.Up)
}
