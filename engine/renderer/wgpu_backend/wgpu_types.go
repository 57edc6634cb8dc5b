package wgpu_backend

import (
	"github.com/Carmen-Shannon/stonegate/engine/renderer"
	"github.com/cogentcore/webgpu/wgpu"
)

// textureImpl is the wgpu implementation of renderer.Texture.
type textureImpl struct {
	backend *wgpuBackend

	label    string
	width    int
	height   int
	format   renderer.TextureFormat
	sampling renderer.SampleMode

	texture *wgpu.Texture
	view    *wgpu.TextureView
	sampler *wgpu.Sampler
}

var _ renderer.Texture = &textureImpl{}

func (t *textureImpl) Label() string {
	return t.label
}

func (t *textureImpl) Width() int {
	return t.width
}

func (t *textureImpl) Height() int {
	return t.height
}

func (t *textureImpl) Format() renderer.TextureFormat {
	return t.format
}

func (t *textureImpl) Sampling() renderer.SampleMode {
	return t.sampling
}

func (t *textureImpl) Release() {
	if t.texture == nil {
		return
	}
	t.backend.forgetTexture(t)
	if t.sampler != nil {
		t.sampler.Release()
		t.sampler = nil
	}
	t.view.Release()
	t.view = nil
	t.texture.Release()
	t.texture = nil
}

// meshImpl is the wgpu implementation of renderer.MeshBuffer.
type meshImpl struct {
	label        string
	vertexBuffer *wgpu.Buffer
	indexBuffer  *wgpu.Buffer
	indexCount   int
}

var _ renderer.MeshBuffer = &meshImpl{}

func (m *meshImpl) Label() string {
	return m.label
}

func (m *meshImpl) IndexCount() int {
	return m.indexCount
}

func (m *meshImpl) Release() {
	if m.vertexBuffer != nil {
		m.vertexBuffer.Release()
		m.vertexBuffer = nil
	}
	if m.indexBuffer != nil {
		m.indexBuffer.Release()
		m.indexBuffer = nil
	}
}

// uniformBinding is a uniform buffer together with the bind group exposing it.
type uniformBinding struct {
	buffer    *wgpu.Buffer
	size      uint64
	bindGroup *wgpu.BindGroup
}

func (u *uniformBinding) release() {
	if u.bindGroup != nil {
		u.bindGroup.Release()
	}
	if u.buffer != nil {
		u.buffer.Release()
	}
}

// objectKey addresses the per-object uniform buffer of one pipeline.
type objectKey struct {
	objectID    int
	pipelineKey string
}

// frameKey identifies the textures baked into the cached frame bind group.
type frameKey struct {
	shadow, target, image *textureImpl
}

// alphaBlend is straight source-alpha blending for overlays.
var alphaBlend = &wgpu.BlendState{
	Color: wgpu.BlendComponent{
		SrcFactor: wgpu.BlendFactorSrcAlpha,
		DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
		Operation: wgpu.BlendOperationAdd,
	},
	Alpha: wgpu.BlendComponent{
		SrcFactor: wgpu.BlendFactorOne,
		DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
		Operation: wgpu.BlendOperationAdd,
	},
}

func uniformEntry(binding uint32) wgpu.BindGroupLayoutEntry {
	return wgpu.BindGroupLayoutEntry{
		Binding:    binding,
		Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
		Buffer: wgpu.BufferBindingLayout{
			Type: wgpu.BufferBindingTypeUniform,
		},
	}
}

func textureEntry(binding uint32, sampleType wgpu.TextureSampleType) wgpu.BindGroupLayoutEntry {
	return wgpu.BindGroupLayoutEntry{
		Binding:    binding,
		Visibility: wgpu.ShaderStageFragment,
		Texture: wgpu.TextureBindingLayout{
			SampleType:    sampleType,
			ViewDimension: wgpu.TextureViewDimension2D,
		},
	}
}

func samplerEntry(binding uint32, samplerType wgpu.SamplerBindingType) wgpu.BindGroupLayoutEntry {
	return wgpu.BindGroupLayoutEntry{
		Binding:    binding,
		Visibility: wgpu.ShaderStageFragment,
		Sampler: wgpu.SamplerBindingLayout{
			Type: samplerType,
		},
	}
}

// roundUp16 rounds a uniform size up to the 16-byte granularity uniform buffers require.
func roundUp16(n int) uint64 {
	return uint64((n + 15) &^ 15)
}
