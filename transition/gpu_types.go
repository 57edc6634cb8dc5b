package transition

import (
	"github.com/Carmen-Shannon/stonegate/common"
	"github.com/go-gl/mathgl/mgl32"
)

// GPUOverlay is the uniform block of the fullscreen overlay pipelines (32 bytes).
type GPUOverlay struct {
	// Param is the reveal bound or the fade opacity, depending on the pipeline.
	Param float32
	Color mgl32.Vec4
}

// GPUOverlaySize is the size in bytes of a marshaled GPUOverlay.
const GPUOverlaySize = 32

// Marshal serializes the block as params vec4 followed by color vec4.
func (g *GPUOverlay) Marshal() []byte {
	buf := make([]byte, GPUOverlaySize)
	off := common.PutFloats(buf, 0, g.Param, 0, 0, 0)
	common.PutFloats(buf, off, g.Color[0], g.Color[1], g.Color[2], g.Color[3])
	return buf
}
