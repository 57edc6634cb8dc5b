package wgpu_backend

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/Carmen-Shannon/stonegate/engine/renderer"
	"github.com/Carmen-Shannon/stonegate/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/stonegate/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

type wgpuBackend struct {
	mu     *sync.Mutex
	device *wgpu.Device
	queue  *wgpu.Queue

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	surface  *wgpu.Surface

	surfaceFormat wgpu.TextureFormat
	presentMode   wgpu.PresentMode

	depthTexture     *wgpu.Texture
	depthTextureView *wgpu.TextureView

	// Bind group layouts shared by every pipeline of a kind.
	objectLayout   *wgpu.BindGroupLayout
	lightingLayout *wgpu.BindGroupLayout
	materialLayout *wgpu.BindGroupLayout
	frameLayout    *wgpu.BindGroupLayout
	overlayLayout  *wgpu.BindGroupLayout

	pipelineLayouts map[pipeline.PipelineKind]*wgpu.PipelineLayout

	objectUniforms   map[objectKey]*uniformBinding
	lightingUniforms map[string]*uniformBinding
	overlayUniforms  map[string]*uniformBinding
	textureGroups    map[*textureImpl]*wgpu.BindGroup

	frameTextures renderer.FrameTextures
	frameGroup    *wgpu.BindGroup
	frameGroupKey frameKey

	// Frame state: the acquired swapchain texture, valid between BeginFrame and Present.
	frameSurface *wgpu.Texture
	frameView    *wgpu.TextureView

	// Pass state: each pass has its own encoder and is submitted by EndPass.
	passEncoder *wgpu.CommandEncoder
	pass        *wgpu.RenderPassEncoder
}

var _ renderer.RendererBackend = &wgpuBackend{}

// NewBackend creates the WebGPU instance, surface, adapter and device for the given surface
// descriptor and prepares the bind group layouts used by every pipeline kind.
// GPU initialization failures are unrecoverable and panic.
//
// Parameters:
//   - surfaceDescriptor: the platform surface descriptor, typically from Window.SurfaceDescriptor()
//   - forceFallbackAdapter: true to request a software adapter
//
// Returns:
//   - renderer.RendererBackend: the initialized backend
func NewBackend(surfaceDescriptor *wgpu.SurfaceDescriptor, forceFallbackAdapter bool) renderer.RendererBackend {
	runtime.LockOSThread()
	b := &wgpuBackend{
		mu:               &sync.Mutex{},
		instance:         wgpu.CreateInstance(nil),
		presentMode:      wgpu.PresentModeFifo,
		pipelineLayouts:  make(map[pipeline.PipelineKind]*wgpu.PipelineLayout),
		objectUniforms:   make(map[objectKey]*uniformBinding),
		lightingUniforms: make(map[string]*uniformBinding),
		overlayUniforms:  make(map[string]*uniformBinding),
		textureGroups:    make(map[*textureImpl]*wgpu.BindGroup),
	}
	b.surface = b.instance.CreateSurface(surfaceDescriptor)

	a, err := b.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
		CompatibleSurface:    b.surface,
	})
	if err != nil {
		panic(err)
	}
	b.adapter = a

	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Main Device",
	})
	if err != nil {
		panic(err)
	}
	b.device = d
	b.queue = d.GetQueue()

	if err := b.createLayouts(); err != nil {
		panic(err)
	}
	return b
}

// createLayouts builds the bind group layouts and one pipeline layout per pipeline kind.
func (b *wgpuBackend) createLayouts() error {
	var err error
	if b.objectLayout, err = b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label:   "Object Uniform Layout",
		Entries: []wgpu.BindGroupLayoutEntry{uniformEntry(0)},
	}); err != nil {
		return err
	}
	if b.lightingLayout, err = b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label:   "Lighting Layout",
		Entries: []wgpu.BindGroupLayoutEntry{uniformEntry(0)},
	}); err != nil {
		return err
	}
	if b.materialLayout, err = b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Material Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			textureEntry(0, wgpu.TextureSampleTypeFloat),
			samplerEntry(1, wgpu.SamplerBindingTypeFiltering),
		},
	}); err != nil {
		return err
	}
	if b.frameLayout, err = b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Frame Texture Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			textureEntry(0, wgpu.TextureSampleTypeDepth),
			samplerEntry(1, wgpu.SamplerBindingTypeComparison),
			textureEntry(2, wgpu.TextureSampleTypeDepth),
			samplerEntry(3, wgpu.SamplerBindingTypeComparison),
			textureEntry(4, wgpu.TextureSampleTypeFloat),
			samplerEntry(5, wgpu.SamplerBindingTypeFiltering),
		},
	}); err != nil {
		return err
	}
	if b.overlayLayout, err = b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label:   "Overlay Uniform Layout",
		Entries: []wgpu.BindGroupLayoutEntry{uniformEntry(0)},
	}); err != nil {
		return err
	}

	kinds := map[pipeline.PipelineKind][]*wgpu.BindGroupLayout{
		pipeline.PipelineKindDepth:      {b.objectLayout},
		pipeline.PipelineKindMesh:       {b.objectLayout, b.lightingLayout, b.materialLayout, b.frameLayout},
		pipeline.PipelineKindFullscreen: {b.overlayLayout, b.materialLayout},
	}
	for kind, layouts := range kinds {
		pl, plErr := b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
			Label:            fmt.Sprintf("Pipeline Layout %d", kind),
			BindGroupLayouts: layouts,
		})
		if plErr != nil {
			return fmt.Errorf("failed to create pipeline layout for kind %d: %w", kind, plErr)
		}
		b.pipelineLayouts[kind] = pl
	}
	return nil
}

func (b *wgpuBackend) ConfigureSurface(width, height int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	capabilities := b.surface.GetCapabilities(b.adapter)
	b.surfaceFormat = capabilities.Formats[0]

	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      b.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: b.presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})

	if b.depthTextureView != nil {
		b.depthTextureView.Release()
		b.depthTexture.Release()
	}

	depthTexture, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "Surface Depth Texture",
		Size: wgpu.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatDepth32Float,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		panic(err)
	}
	b.depthTexture = depthTexture
	b.depthTextureView, err = depthTexture.CreateView(nil)
	if err != nil {
		panic(err)
	}
}

func (b *wgpuBackend) SetPresentMode(mode renderer.PresentMode) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch mode {
	case renderer.PresentModeUncapped:
		b.presentMode = wgpu.PresentModeImmediate
	default:
		b.presentMode = wgpu.PresentModeFifo
	}
}

func (b *wgpuBackend) CreateTexture(desc renderer.TextureDescriptor) (renderer.Texture, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	format := wgpu.TextureFormatRGBA8Unorm
	usage := wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst
	if desc.Format == renderer.TextureFormatDepth32 {
		format = wgpu.TextureFormatDepth32Float
		usage = wgpu.TextureUsageTextureBinding
	} else if !desc.RenderAttachment {
		// Image data is authored in sRGB.
		format = wgpu.TextureFormatRGBA8UnormSrgb
	}
	if desc.RenderAttachment {
		usage |= wgpu.TextureUsageRenderAttachment
	}

	extent := wgpu.Extent3D{
		Width:              uint32(desc.Width),
		Height:             uint32(desc.Height),
		DepthOrArrayLayers: 1,
	}
	tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         desc.Label,
		Size:          extent,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        format,
		Usage:         usage,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create texture %q: %w", desc.Label, err)
	}

	if len(desc.Pixels) > 0 && desc.Format == renderer.TextureFormatRGBA8 {
		b.queue.WriteTexture(
			&wgpu.ImageCopyTexture{
				Texture:  tex,
				MipLevel: 0,
				Origin:   wgpu.Origin3D{},
				Aspect:   wgpu.TextureAspectAll,
			},
			desc.Pixels,
			&wgpu.TextureDataLayout{
				Offset:       0,
				BytesPerRow:  uint32(desc.Width) * 4,
				RowsPerImage: uint32(desc.Height),
			},
			&extent,
		)
	}

	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return nil, fmt.Errorf("failed to create view for texture %q: %w", desc.Label, err)
	}

	sampler, err := b.device.CreateSampler(samplerDescriptor(desc.Label, desc.Sampling))
	if err != nil {
		view.Release()
		tex.Release()
		return nil, fmt.Errorf("failed to create sampler for texture %q: %w", desc.Label, err)
	}

	return &textureImpl{
		backend:  b,
		label:    desc.Label,
		width:    desc.Width,
		height:   desc.Height,
		format:   desc.Format,
		sampling: desc.Sampling,
		texture:  tex,
		view:     view,
		sampler:  sampler,
	}, nil
}

// samplerDescriptor maps a sample mode to the sampler configuration it stands for.
func samplerDescriptor(label string, mode renderer.SampleMode) *wgpu.SamplerDescriptor {
	desc := &wgpu.SamplerDescriptor{
		Label:         label + " Sampler",
		AddressModeU:  wgpu.AddressModeRepeat,
		AddressModeV:  wgpu.AddressModeRepeat,
		AddressModeW:  wgpu.AddressModeRepeat,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeLinear,
		MipmapFilter:  wgpu.MipmapFilterModeNearest,
		LodMinClamp:   0,
		LodMaxClamp:   32,
		MaxAnisotropy: 1,
	}
	switch mode {
	case renderer.SampleModeClamp:
		desc.AddressModeU = wgpu.AddressModeClampToEdge
		desc.AddressModeV = wgpu.AddressModeClampToEdge
		desc.AddressModeW = wgpu.AddressModeClampToEdge
	case renderer.SampleModeCompare:
		desc.AddressModeU = wgpu.AddressModeClampToEdge
		desc.AddressModeV = wgpu.AddressModeClampToEdge
		desc.AddressModeW = wgpu.AddressModeClampToEdge
		desc.Compare = wgpu.CompareFunctionLess
	}
	return desc
}

func (b *wgpuBackend) CreateMeshBuffer(label string, vertexData, indexData []byte, indexCount int) (renderer.MeshBuffer, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	m := &meshImpl{label: label, indexCount: indexCount}

	vb, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label:            label + " Vertex Buffer",
		Size:             uint64(len(vertexData)),
		Usage:            wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
		MappedAtCreation: false,
	})
	if err != nil {
		return nil, err
	}
	b.queue.WriteBuffer(vb, 0, vertexData)
	m.vertexBuffer = vb

	ib, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label:            label + " Index Buffer",
		Size:             uint64(len(indexData)),
		Usage:            wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst,
		MappedAtCreation: false,
	})
	if err != nil {
		m.Release()
		return nil, err
	}
	b.queue.WriteBuffer(ib, 0, indexData)
	m.indexBuffer = ib

	return m, nil
}

func (b *wgpuBackend) RegisterRenderPipeline(p pipeline.Pipeline) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if p.Source() == "" {
		return errors.New("pipeline has no shader source")
	}

	module, err := b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: p.PipelineKey(),
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: p.Source(),
		},
	})
	if err != nil {
		return err
	}

	layout, err := shader.VertexLayout(p.Source())
	if err != nil {
		return fmt.Errorf("pipeline %q: %w", p.PipelineKey(), err)
	}
	var buffers []wgpu.VertexBufferLayout
	if layout != nil {
		buffers = []wgpu.VertexBufferLayout{*layout}
	}

	colorFormat := b.surfaceFormat
	if p.ColorTarget() == pipeline.ColorTargetOffscreen {
		colorFormat = wgpu.TextureFormatRGBA8Unorm
	}
	colorState := wgpu.ColorTargetState{
		Format:    colorFormat,
		WriteMask: wgpu.ColorWriteMaskAll,
	}
	if p.BlendEnabled() {
		colorState.Blend = alphaBlend
	}

	depthCompare := wgpu.CompareFunctionLess
	if !p.DepthTestEnabled() {
		depthCompare = wgpu.CompareFunctionAlways
	}

	created, err := b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  p.PipelineKey() + " Render Pipeline",
		Layout: b.pipelineLayouts[p.Kind()],
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: p.VertexEntryPoint(),
			Buffers:    buffers,
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: p.FragmentEntryPoint(),
			Targets:    []wgpu.ColorTargetState{colorState},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  cullMode(p.CullMode()),
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            wgpu.TextureFormatDepth32Float,
			DepthWriteEnabled: p.DepthWriteEnabled(),
			DepthCompare:      depthCompare,
			StencilFront: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
		},
	})
	if err != nil {
		return err
	}

	p.SetHandle(created)
	return nil
}

func cullMode(mode pipeline.CullMode) wgpu.CullMode {
	switch mode {
	case pipeline.CullModeFront:
		return wgpu.CullModeFront
	case pipeline.CullModeBack:
		return wgpu.CullModeBack
	default:
		return wgpu.CullModeNone
	}
}

func (b *wgpuBackend) BeginFrame() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frameSurface != nil {
		return fmt.Errorf("previous frame surface not yet presented")
	}

	surfaceTexture, err := b.surface.GetCurrentTexture()
	if err != nil {
		return err
	}

	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		return err
	}

	b.frameSurface = surfaceTexture
	b.frameView = view
	return nil
}

func (b *wgpuBackend) BeginPass(desc renderer.PassDescriptor) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	colorView, depthView := b.frameView, b.depthTextureView
	if desc.Target != nil {
		color, okColor := desc.Target.Color.(*textureImpl)
		depth, okDepth := desc.Target.Depth.(*textureImpl)
		if !okColor || !okDepth || color.view == nil || depth.view == nil {
			return fmt.Errorf("%w: %s was not created by this backend", renderer.ErrIncompleteTarget, desc.Target.Label)
		}
		colorView, depthView = color.view, depth.view
	}
	if colorView == nil {
		return fmt.Errorf("pass %q has no color attachment", desc.Label)
	}

	loadOp := wgpu.LoadOpLoad
	var clear wgpu.Color
	if desc.Clear != nil {
		loadOp = wgpu.LoadOpClear
		clear = wgpu.Color{R: desc.Clear.R, G: desc.Clear.G, B: desc.Clear.B, A: desc.Clear.A}
	}

	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		return err
	}

	b.pass = encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: desc.Label,
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       colorView,
				LoadOp:     loadOp,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: clear,
			},
		},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            depthView,
			DepthLoadOp:     loadOp,
			DepthStoreOp:    wgpu.StoreOpStore,
			DepthClearValue: 1.0,
		},
	})
	b.passEncoder = encoder
	return nil
}

func (b *wgpuBackend) SetLighting(p pipeline.Pipeline, data []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()

	u, err := b.uniform(b.lightingUniforms, p.PipelineKey(), b.lightingLayout, len(data))
	if err != nil {
		panic(err)
	}
	b.queue.WriteBuffer(u.buffer, 0, data)
}

// uniformFor returns the uniform binding stored under key, creating it on first use.
func uniformFor[K comparable](b *wgpuBackend, cache map[K]*uniformBinding, key K, layout *wgpu.BindGroupLayout, label string, size int) (*uniformBinding, error) {
	if u, ok := cache[key]; ok && u.size >= roundUp16(size) {
		return u, nil
	} else if ok {
		u.release()
	}

	bufSize := roundUp16(size)
	buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label + " Uniform Buffer",
		Size:  bufSize,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, err
	}
	bg, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  label + " Uniform Bind Group",
		Layout: layout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: buf, Offset: 0, Size: wgpu.WholeSize},
		},
	})
	if err != nil {
		buf.Release()
		return nil, err
	}
	u := &uniformBinding{buffer: buf, size: bufSize, bindGroup: bg}
	cache[key] = u
	return u, nil
}

func (b *wgpuBackend) uniform(cache map[string]*uniformBinding, key string, layout *wgpu.BindGroupLayout, size int) (*uniformBinding, error) {
	return uniformFor(b, cache, key, layout, key, size)
}

func (b *wgpuBackend) BindFrameTextures(textures renderer.FrameTextures) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.frameTextures = textures
}

// frameBindGroup returns the group 3 bind group for the current frame textures,
// rebuilding it when any of the textures changed.
func (b *wgpuBackend) frameBindGroup() (*wgpu.BindGroup, error) {
	shadow, _ := b.frameTextures.ShadowDepth.(*textureImpl)
	target, _ := b.frameTextures.TargetDepth.(*textureImpl)
	image, _ := b.frameTextures.Image.(*textureImpl)
	if shadow == nil || target == nil || image == nil {
		return nil, errors.New("frame textures are not bound")
	}

	key := frameKey{shadow: shadow, target: target, image: image}
	if b.frameGroup != nil && b.frameGroupKey == key {
		return b.frameGroup, nil
	}
	if b.frameGroup != nil {
		b.frameGroup.Release()
		b.frameGroup = nil
	}

	bg, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Frame Texture Bind Group",
		Layout: b.frameLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, TextureView: shadow.view},
			{Binding: 1, Sampler: shadow.sampler},
			{Binding: 2, TextureView: target.view},
			{Binding: 3, Sampler: target.sampler},
			{Binding: 4, TextureView: image.view},
			{Binding: 5, Sampler: image.sampler},
		},
	})
	if err != nil {
		return nil, err
	}
	b.frameGroup = bg
	b.frameGroupKey = key
	return bg, nil
}

// textureBindGroup returns the texture + sampler bind group of t, creating it on first use.
func (b *wgpuBackend) textureBindGroup(t renderer.Texture) (*wgpu.BindGroup, error) {
	tex, ok := t.(*textureImpl)
	if !ok || tex.view == nil {
		return nil, errors.New("texture was not created by this backend or was released")
	}
	if bg, ok := b.textureGroups[tex]; ok {
		return bg, nil
	}
	bg, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  tex.label + " Bind Group",
		Layout: b.materialLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, TextureView: tex.view},
			{Binding: 1, Sampler: tex.sampler},
		},
	})
	if err != nil {
		return nil, err
	}
	b.textureGroups[tex] = bg
	return bg, nil
}

// forgetTexture drops every cached bind group that references t.
func (b *wgpuBackend) forgetTexture(t *textureImpl) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if bg, ok := b.textureGroups[t]; ok {
		bg.Release()
		delete(b.textureGroups, t)
	}
	k := b.frameGroupKey
	if b.frameGroup != nil && (k.shadow == t || k.target == t || k.image == t) {
		b.frameGroup.Release()
		b.frameGroup = nil
		b.frameGroupKey = frameKey{}
	}
}

func (b *wgpuBackend) Draw(p pipeline.Pipeline, call renderer.DrawCall) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.pass == nil {
		return errors.New("draw outside a pass")
	}
	mesh, ok := call.Mesh.(*meshImpl)
	if !ok || mesh.vertexBuffer == nil {
		return fmt.Errorf("mesh for object %d was not created by this backend", call.ObjectID)
	}
	renderPipeline, ok := p.Handle().(*wgpu.RenderPipeline)
	if !ok {
		return fmt.Errorf("pipeline %q is not registered", p.PipelineKey())
	}

	key := objectKey{objectID: call.ObjectID, pipelineKey: p.PipelineKey()}
	obj, err := uniformFor(b, b.objectUniforms, key, b.objectLayout, fmt.Sprintf("%s object %d", p.PipelineKey(), call.ObjectID), len(call.Uniforms))
	if err != nil {
		return err
	}
	b.queue.WriteBuffer(obj.buffer, 0, call.Uniforms)

	b.pass.SetPipeline(renderPipeline)
	b.pass.SetBindGroup(0, obj.bindGroup, nil)

	if p.Kind() == pipeline.PipelineKindMesh {
		lighting, ok := b.lightingUniforms[p.PipelineKey()]
		if !ok {
			return fmt.Errorf("pipeline %q has no lighting block", p.PipelineKey())
		}
		material, err := b.textureBindGroup(call.Texture)
		if err != nil {
			return err
		}
		frame, err := b.frameBindGroup()
		if err != nil {
			return err
		}
		b.pass.SetBindGroup(1, lighting.bindGroup, nil)
		b.pass.SetBindGroup(2, material, nil)
		b.pass.SetBindGroup(3, frame, nil)
	}

	b.pass.SetVertexBuffer(0, mesh.vertexBuffer, 0, wgpu.WholeSize)
	b.pass.SetIndexBuffer(mesh.indexBuffer, wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
	b.pass.DrawIndexed(uint32(mesh.indexCount), 1, 0, 0, 0)
	return nil
}

func (b *wgpuBackend) DrawFullscreen(p pipeline.Pipeline, uniforms []byte, tex renderer.Texture) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.pass == nil {
		return errors.New("draw outside a pass")
	}
	renderPipeline, ok := p.Handle().(*wgpu.RenderPipeline)
	if !ok {
		return fmt.Errorf("pipeline %q is not registered", p.PipelineKey())
	}

	overlay, err := b.uniform(b.overlayUniforms, p.PipelineKey(), b.overlayLayout, len(uniforms))
	if err != nil {
		return err
	}
	b.queue.WriteBuffer(overlay.buffer, 0, uniforms)

	texGroup, err := b.textureBindGroup(tex)
	if err != nil {
		return err
	}

	b.pass.SetPipeline(renderPipeline)
	b.pass.SetBindGroup(0, overlay.bindGroup, nil)
	b.pass.SetBindGroup(1, texGroup, nil)
	b.pass.Draw(3, 1, 0, 0)
	return nil
}

func (b *wgpuBackend) EndPass() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.pass == nil {
		return
	}
	b.pass.End()
	b.pass.Release()
	b.pass = nil

	commandBuffer, err := b.passEncoder.Finish(nil)
	if err == nil {
		b.queue.Submit(commandBuffer)
		commandBuffer.Release()
	}
	b.passEncoder.Release()
	b.passEncoder = nil
}

func (b *wgpuBackend) Present() {
	b.mu.Lock()
	defer b.mu.Unlock()

	// If no frame surface is held, nothing to present.
	if b.frameSurface == nil {
		return
	}

	b.surface.Present()

	if b.frameView != nil {
		b.frameView.Release()
		b.frameView = nil
	}
	b.frameSurface.Release()
	b.frameSurface = nil
}
