package scene

import (
	_ "embed"
	"unsafe"

	"github.com/Carmen-Shannon/stonegate/common"
	"github.com/go-gl/mathgl/mgl32"
)

// GPUObjectSource is the canonical WGSL definition of the Object uniform struct, the
// VertexInput struct and the group 0 binding shared by every mesh and depth pipeline.
//
//go:embed assets/object.wgsl
var GPUObjectSource string

// GPUObjectUniforms is the GPU-aligned per-object uniform block.
// Matches the WGSL Object struct layout exactly (see GPUObjectSource).
// Size: 176 bytes (two mat4x4 plus a mat3x3 whose columns are padded to 16 bytes).
type GPUObjectUniforms struct {
	ObjectToClip  mgl32.Mat4 // offset   0: object space to clip space (64 bytes)
	ObjectToWorld mgl32.Mat4 // offset  64: object space to world space (64 bytes)
	NormalToWorld mgl32.Mat3 // offset 128: inverse transpose of the upper 3x3 of ObjectToWorld (48 bytes)
}

// GPUObjectUniformsSize is the byte size of one marshaled GPUObjectUniforms.
const GPUObjectUniformsSize = 176

// Size returns the size of the GPUObjectUniforms struct in bytes.
// The in-memory struct is smaller than the marshaled block because Mat3 columns are unpadded.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUObjectUniforms) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUObjectUniforms struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 176-byte buffer ready for GPU upload.
func (g *GPUObjectUniforms) Marshal() []byte {
	buf := make([]byte, GPUObjectUniformsSize)
	off := common.PutMat4(buf, 0, g.ObjectToClip)
	off = common.PutMat4(buf, off, g.ObjectToWorld)
	common.PutMat3(buf, off, g.NormalToWorld)
	return buf
}
