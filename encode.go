package roots

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// All GPU-visible records are encoded little-endian, matching WGSL
// host-shareable memory layout. Matrices are column-major, the same
// order mgl32 stores them in.

func putF32(b []byte, off int, v float32) {
	binary.LittleEndian.PutUint32(b[off:], math.Float32bits(v))
}

func putVec2(b []byte, off int, v mgl32.Vec2) {
	putF32(b, off, v[0])
	putF32(b, off+4, v[1])
}

func putVec3(b []byte, off int, v mgl32.Vec3) {
	putF32(b, off, v[0])
	putF32(b, off+4, v[1])
	putF32(b, off+8, v[2])
}

func putVec4(b []byte, off int, v mgl32.Vec4) {
	putF32(b, off, v[0])
	putF32(b, off+4, v[1])
	putF32(b, off+8, v[2])
	putF32(b, off+12, v[3])
}

func putMat4(b []byte, off int, m mgl32.Mat4) {
	for i, v := range m {
		putF32(b, off+i*4, v)
	}
}

// EncodeIndices16 encodes a 16-bit index list for an index buffer upload.
func EncodeIndices16(indices []uint16) []byte {
	b := make([]byte, len(indices)*2)
	for i, idx := range indices {
		binary.LittleEndian.PutUint16(b[i*2:], idx)
	}
	return b
}

// EncodeIndices32 encodes a 32-bit index list for an index buffer upload.
func EncodeIndices32(indices []uint32) []byte {
	b := make([]byte, len(indices)*4)
	for i, idx := range indices {
		binary.LittleEndian.PutUint32(b[i*4:], idx)
	}
	return b
}
