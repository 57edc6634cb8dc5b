package light

import (
	_ "embed"

	"github.com/Carmen-Shannon/stonegate/common"
	"github.com/go-gl/mathgl/mgl32"
)

// GPULightingSource is the canonical WGSL definition of the Lighting uniform struct.
// Matches GPULighting layout exactly (192 bytes, uniform aligned).
//
//go:embed assets/lighting.wgsl
var GPULightingSource string

// GPUTargetLightingSource is the canonical WGSL definition of the TargetLighting uniform struct.
// Includes "lighting", so the pre-processor must register GPULightingSource under that name.
//
//go:embed assets/target_lighting.wgsl
var GPUTargetLightingSource string

// GPULighting is the lighting block shared by every lit program: a directional sun,
// a hemisphere sky term and one shadowed spot light.
// Size: 192 bytes.
type GPULighting struct {
	SunColor      mgl32.Vec3 // offset   0
	SunDirection  mgl32.Vec3 // offset  16
	SkyColor      mgl32.Vec3 // offset  32
	SkyDirection  mgl32.Vec3 // offset  48
	WorldToSpot   mgl32.Mat4 // offset  64: bias * spot projection * spot world-to-local
	SpotPosition  mgl32.Vec3 // offset 128
	SpotDirection mgl32.Vec3 // offset 144
	SpotColor     mgl32.Vec3 // offset 160
	SpotOuter     float32    // offset 176: cos(0.5 fov)
	SpotInner     float32    // offset 180: cos(0.425 fov)
}

// GPULightingSize is the marshaled size of GPULighting in bytes.
const GPULightingSize = 192

// Size returns the size of the marshaled GPULighting block in bytes.
//
// Returns:
//   - int: the block size in bytes (192)
func (g *GPULighting) Size() int {
	return GPULightingSize
}

// Marshal serializes the GPULighting block into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 192-byte buffer ready for GPU upload
func (g *GPULighting) Marshal() []byte {
	buf := make([]byte, GPULightingSize)
	g.put(buf, 0)
	return buf
}

func (g *GPULighting) put(buf []byte, off int) int {
	off = common.PutVec4(buf, off, g.SunColor, 0)
	off = common.PutVec4(buf, off, g.SunDirection, 0)
	off = common.PutVec4(buf, off, g.SkyColor, 0)
	off = common.PutVec4(buf, off, g.SkyDirection, 0)
	off = common.PutMat4(buf, off, g.WorldToSpot)
	off = common.PutVec4(buf, off, g.SpotPosition, 1)
	off = common.PutVec4(buf, off, g.SpotDirection, 0)
	off = common.PutVec4(buf, off, g.SpotColor, 1)
	return common.PutFloats(buf, off, g.SpotOuter, g.SpotInner, 0, 0)
}

// GPUTargetLighting extends GPULighting with the hidden target camera used by the
// target-aware program.
// Size: 304 bytes.
type GPUTargetLighting struct {
	GPULighting
	WorldToTarget   mgl32.Mat4 // offset 192: bias * target projection * target world-to-local
	TargetPosition  mgl32.Vec3 // offset 256
	TargetDirection mgl32.Vec3 // offset 272
	ScreenSize      mgl32.Vec2 // offset 288
}

// GPUTargetLightingSize is the marshaled size of GPUTargetLighting in bytes.
const GPUTargetLightingSize = 304

// Size returns the size of the marshaled GPUTargetLighting block in bytes.
//
// Returns:
//   - int: the block size in bytes (304)
func (g *GPUTargetLighting) Size() int {
	return GPUTargetLightingSize
}

// Marshal serializes the GPUTargetLighting block into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 304-byte buffer ready for GPU upload
func (g *GPUTargetLighting) Marshal() []byte {
	buf := make([]byte, GPUTargetLightingSize)
	off := g.GPULighting.put(buf, 0)
	off = common.PutMat4(buf, off, g.WorldToTarget)
	off = common.PutVec4(buf, off, g.TargetPosition, 1)
	off = common.PutVec4(buf, off, g.TargetDirection, 0)
	common.PutFloats(buf, off, g.ScreenSize[0], g.ScreenSize[1], 0, 0)
	return buf
}
