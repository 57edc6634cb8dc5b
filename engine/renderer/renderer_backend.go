package renderer

import "github.com/Carmen-Shannon/stonegate/engine/renderer/pipeline"

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// TextureFormat is the texel format of a Texture.
type TextureFormat int

const (
	// TextureFormatRGBA8 is 8-bit normalized RGBA, used for images and offscreen color.
	TextureFormatRGBA8 TextureFormat = iota

	// TextureFormatDepth32 is a 32-bit float depth format that can be both rendered into
	// and sampled with a comparison sampler.
	TextureFormatDepth32
)

// SampleMode is the sampler configuration a texture is created with. It is fixed for the
// lifetime of the texture so passes never reconfigure filtering per frame.
type SampleMode int

const (
	// SampleModeLinear filters linearly and repeats outside [0, 1].
	SampleModeLinear SampleMode = iota

	// SampleModeClamp filters linearly and clamps to the edge.
	SampleModeClamp

	// SampleModeCompare is a depth comparison sampler (less-than) clamped to the edge,
	// used for hardware shadow map lookups.
	SampleModeCompare
)

// Color is a linear RGBA color used for clears.
type Color struct {
	R, G, B, A float64
}

// TextureDescriptor describes a texture to create.
type TextureDescriptor struct {
	Label    string
	Width    int
	Height   int
	Format   TextureFormat
	Sampling SampleMode

	// Pixels is optional initial RGBA8 data (4 * Width * Height bytes).
	Pixels []byte

	// RenderAttachment marks the texture as usable as a render pass attachment.
	RenderAttachment bool
}

// Texture is a backend texture together with its view and sampler.
type Texture interface {
	Label() string
	Width() int
	Height() int
	Format() TextureFormat
	Sampling() SampleMode

	// Release frees the GPU resources held by the texture. Safe to call more than once.
	Release()
}

// MeshBuffer is an uploaded vertex + index buffer pair.
type MeshBuffer interface {
	Label() string
	IndexCount() int
	Release()
}

// PassDescriptor describes one render pass.
type PassDescriptor struct {
	// Label names the pass for debugging.
	Label string

	// Target is the offscreen render target, or nil to render into the current swapchain frame.
	Target *RenderTarget

	// Clear is the color and depth clear for the pass, or nil to load the existing contents.
	Clear *Color
}

// DrawCall is a single mesh draw within a pass.
type DrawCall struct {
	// PipelineKey selects the registered pipeline.
	PipelineKey string

	// ObjectID identifies the drawn object. Uniform buffers are kept per (object, pipeline)
	// so several objects can be drawn in one pass with their own uniforms.
	ObjectID int

	Mesh MeshBuffer

	// Texture is the material texture (group 2) for mesh pipelines. Ignored by depth pipelines.
	Texture Texture

	// Uniforms is the per-object uniform block (group 0).
	Uniforms []byte
}

// FrameTextures are the three per-frame texture slots read by lit mesh pipelines (group 3).
type FrameTextures struct {
	// ShadowDepth is the spot light depth map, sampled with comparison.
	ShadowDepth Texture

	// TargetDepth is the depth map rendered from the hidden target camera, sampled with comparison.
	TargetDepth Texture

	// Image is the currently selected puzzle target image.
	Image Texture
}

// RendererBackend is the contract a GPU API implementation fulfils for the Renderer.
// Every pass is encoded and submitted on its own, so uniform writes made before a pass
// are visible to that pass only.
type RendererBackend interface {
	// ConfigureSurface (re)configures the swapchain and its depth attachment for a new size.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	ConfigureSurface(width, height int)

	// SetPresentMode sets the surface present mode. Takes effect on the next ConfigureSurface.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// CreateTexture creates a texture, its view and the sampler for desc.Sampling.
	//
	// Parameters:
	//   - desc: the texture description
	//
	// Returns:
	//   - Texture: the created texture
	//   - error: an error if any GPU object could not be created
	CreateTexture(desc TextureDescriptor) (Texture, error)

	// CreateMeshBuffer uploads vertex and uint32 index data.
	//
	// Parameters:
	//   - label: debug label for the buffers
	//   - vertexData: raw vertex bytes
	//   - indexData: raw uint32 index bytes
	//   - indexCount: number of indices in indexData
	//
	// Returns:
	//   - MeshBuffer: the uploaded mesh
	//   - error: an error if the buffers could not be created
	CreateMeshBuffer(label string, vertexData, indexData []byte, indexCount int) (MeshBuffer, error)

	// RegisterRenderPipeline creates the GPU pipeline for p and stores it with p.SetHandle.
	//
	// Parameters:
	//   - p: the pipeline description
	//
	// Returns:
	//   - error: an error if the shader module or pipeline could not be created
	RegisterRenderPipeline(p pipeline.Pipeline) error

	// BeginFrame acquires the next swapchain texture. Must be paired with Present.
	//
	// Returns:
	//   - error: an error if the swapchain texture could not be acquired
	BeginFrame() error

	// BeginPass creates a command encoder and begins a render pass.
	//
	// Parameters:
	//   - desc: the pass description
	//
	// Returns:
	//   - error: an error if the pass could not be started
	BeginPass(desc PassDescriptor) error

	// SetLighting writes the lighting uniform block of a mesh pipeline.
	//
	// Parameters:
	//   - p: the mesh pipeline
	//   - data: the marshaled lighting block
	SetLighting(p pipeline.Pipeline, data []byte)

	// BindFrameTextures sets the textures read through group 3 by subsequent mesh draws.
	//
	// Parameters:
	//   - textures: the frame textures
	BindFrameTextures(textures FrameTextures)

	// Draw encodes one indexed mesh draw in the current pass.
	//
	// Parameters:
	//   - p: the pipeline to draw with
	//   - call: the draw call
	//
	// Returns:
	//   - error: an error if the draw's bind groups could not be created
	Draw(p pipeline.Pipeline, call DrawCall) error

	// DrawFullscreen encodes a full-screen triangle in the current pass.
	//
	// Parameters:
	//   - p: the fullscreen pipeline
	//   - uniforms: the overlay uniform block
	//   - tex: the texture bound to group 1
	//
	// Returns:
	//   - error: an error if the draw's bind groups could not be created
	DrawFullscreen(p pipeline.Pipeline, uniforms []byte, tex Texture) error

	// EndPass ends the current pass and submits its command buffer.
	EndPass()

	// Present presents the swapchain texture acquired by BeginFrame.
	Present()
}
