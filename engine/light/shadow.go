package light

import (
	"github.com/Carmen-Shannon/stonegate/common"
	"github.com/go-gl/mathgl/mgl32"
)

// ShadowMapResolution is the default width and height in texels of the spot light
// shadow map.
const ShadowMapResolution = 512

// DefaultShadowBias is the constant added to the projected comparison depth to
// suppress self-shadowing. Front-face culling in the depth pass handles the rest.
const DefaultShadowBias float32 = 1e-5

// ShadowUVMatrix returns the matrix mapping world space into a shadow map's texture
// coordinates and comparison depth: bias * projection * worldToLocal.
//
// Parameters:
//   - projection: the light or camera projection used to render the depth map
//   - worldToLocal: the world-to-local matrix of the node the depth map was rendered from
//   - bias: the depth bias added after projection
//
// Returns:
//   - mgl32.Mat4: the world-to-shadow-UV matrix
func ShadowUVMatrix(projection, worldToLocal mgl32.Mat4, bias float32) mgl32.Mat4 {
	return common.ShadowBias(bias).Mul4(projection).Mul4(worldToLocal)
}
