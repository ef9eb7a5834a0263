package roots

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Byte sizes of the lighting records as the LitMesh program reads them.
const (
	GlobalLightDataSize = 16
	LightSize           = 64
)

// GlobalLightData is the scene-wide lighting uniform at group(1) binding(0)
// of the LitMesh program.
// Must match the GlobalLighting struct in model.wgsl.
type GlobalLightData struct {
	AmbientColor    mgl32.Vec3
	AmbientStrength float32
}

// DefaultGlobalLightData returns the stock faint white ambient term.
func DefaultGlobalLightData() GlobalLightData {
	return GlobalLightData{
		AmbientColor:    mgl32.Vec3{1, 1, 1},
		AmbientStrength: 0.05,
	}
}

// Bytes encodes the block as the GPU reads it (16 bytes, little-endian).
func (g GlobalLightData) Bytes() []byte {
	b := make([]byte, GlobalLightDataSize)
	putVec3(b, 0, g.AmbientColor)
	putF32(b, 12, g.AmbientStrength)
	return b
}

// Light is one record of the runtime-sized light list at group(1)
// binding(1) of the LitMesh program. Position carries the point-light
// position in xyz; Direction is reserved for directional lights. Diffuse
// and Specular are the light's contribution colors (w unused).
// Must match the Light struct in model.wgsl.
type Light struct {
	Position  mgl32.Vec4
	Direction mgl32.Vec4
	Diffuse   mgl32.Vec4
	Specular  mgl32.Vec4
}

func (l Light) append(b []byte, off int) {
	putVec4(b, off, l.Position)
	putVec4(b, off+16, l.Direction)
	putVec4(b, off+32, l.Diffuse)
	putVec4(b, off+48, l.Specular)
}

// Bytes encodes one light record (64 bytes, little-endian).
func (l Light) Bytes() []byte {
	b := make([]byte, LightSize)
	l.append(b, 0)
	return b
}

// EncodeLights packs a light list for a storage buffer upload. The GPU
// derives the light count from the buffer size, so the result is exactly
// len(lights)*64 bytes.
func EncodeLights(lights []Light) []byte {
	b := make([]byte, len(lights)*LightSize)
	for i, l := range lights {
		l.append(b, i*LightSize)
	}
	return b
}
