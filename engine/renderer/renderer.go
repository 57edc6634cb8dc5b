package renderer

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/stonegate/engine/renderer/pipeline"
)

// ErrPassState is returned when passes are begun or ended out of order.
var ErrPassState = errors.New("render pass state")

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	pipelineCache map[string]pipeline.Pipeline

	backend RendererBackend

	width  int
	height int

	inFrame bool
	inPass  bool
}

// Renderer defines the interface for the rendering system.
//
// This is a high-level API designed to simplify rendering tasks into a streamlined and idiomatic flow.
// The Renderer manages a cache of pipelines keyed by name and delegates GPU work to a backend,
// which allows for multiple backend API implementations to exist.
//
// A frame is BeginFrame, any number of BeginPass / draws / EndPass sequences, then Present.
type Renderer interface {
	// Pipeline retrieves the cached Pipeline associated with the given key.
	// If the Pipeline does not exist, this will return nil.
	//
	// Parameters:
	//   - key: the unique identifier for the Pipeline to retrieve
	//
	// Returns:
	//   - pipeline.Pipeline: the Pipeline associated with the key, or nil if not found
	Pipeline(key string) pipeline.Pipeline

	// RegisterPipelines creates the GPU pipeline objects via the backend and caches them by PipelineKey.
	// Pipelines whose keys are already registered are skipped to avoid duplicate GPU resource creation.
	//
	// Parameters:
	//   - pipelines: the Pipelines to register
	//
	// Returns:
	//   - error: an error if pipeline creation fails
	RegisterPipelines(pipelines ...pipeline.Pipeline) error

	// Resize configures the underlying backend to handle a new surface size.
	// This should be called when re-sizing the window or when the surface size should change.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	Resize(width, height int)

	// Size returns the current surface size in pixels.
	//
	// Returns:
	//   - width, height: the surface size
	Size() (width, height int)

	// SetPresentMode sets the surface present mode. A call to Resize is required after
	// changing this for the new mode to take effect.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// CreateTexture creates a texture with its view and sampler.
	//
	// Parameters:
	//   - desc: the texture description
	//
	// Returns:
	//   - Texture: the created texture
	//   - error: an error if creation fails
	CreateTexture(desc TextureDescriptor) (Texture, error)

	// CreateMeshBuffer uploads mesh data to the GPU.
	//
	// Parameters:
	//   - label: debug label
	//   - vertexData: raw vertex bytes
	//   - indexData: raw uint32 index bytes
	//   - indexCount: the number of indices
	//
	// Returns:
	//   - MeshBuffer: the uploaded mesh
	//   - error: an error if creation fails
	CreateMeshBuffer(label string, vertexData, indexData []byte, indexCount int) (MeshBuffer, error)

	// BeginFrame acquires the swapchain texture for this frame.
	//
	// Returns:
	//   - error: an error if the texture could not be acquired or a frame is already open
	BeginFrame() error

	// BeginPass starts a render pass into an offscreen target or the swapchain frame.
	// Offscreen targets are checked for completeness first.
	//
	// Parameters:
	//   - desc: the pass description
	//
	// Returns:
	//   - error: an error if a pass is already open, the target is incomplete or the backend fails
	BeginPass(desc PassDescriptor) error

	// SetLighting writes the lighting block of a mesh pipeline.
	//
	// Parameters:
	//   - pipelineKey: the pipeline whose lighting block is written
	//   - data: the marshaled block
	//
	// Returns:
	//   - error: an error if the pipeline is not found or the data has the wrong size
	SetLighting(pipelineKey string, data []byte) error

	// BindFrameTextures sets the shadow, target depth and image textures for subsequent mesh draws.
	//
	// Parameters:
	//   - textures: the frame textures
	BindFrameTextures(textures FrameTextures)

	// Draw encodes one mesh draw in the current pass.
	//
	// Parameters:
	//   - call: the draw call
	//
	// Returns:
	//   - error: an error if no pass is open, the pipeline is not found or the backend fails
	Draw(call DrawCall) error

	// DrawFullscreen encodes one full-screen triangle in the current pass.
	//
	// Parameters:
	//   - pipelineKey: the fullscreen pipeline
	//   - uniforms: the overlay uniform block
	//   - tex: the texture sampled by the overlay
	//
	// Returns:
	//   - error: an error if no pass is open, the pipeline is not found or the backend fails
	DrawFullscreen(pipelineKey string, uniforms []byte, tex Texture) error

	// EndPass ends and submits the current pass. No-op when no pass is open.
	EndPass()

	// Present presents the frame acquired by BeginFrame, ending any pass still open.
	Present()
}

var _ Renderer = &renderer{}

// NewRenderer creates a new Renderer over the given backend and configures the surface.
//
// Parameters:
//   - backend: the GPU backend implementation
//   - width, height: the initial surface size in pixels
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: a new Renderer instance
func NewRenderer(backend RendererBackend, width, height int, options ...RendererBuilderOption) Renderer {
	r := &renderer{
		mu:            &sync.Mutex{},
		pipelineCache: make(map[string]pipeline.Pipeline),
		backend:       backend,
	}
	for _, opt := range options {
		opt(r)
	}
	r.Resize(width, height)
	return r
}

func (r *renderer) Pipeline(key string) pipeline.Pipeline {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pipelineCache[key]
}

func (r *renderer) RegisterPipelines(pipelines ...pipeline.Pipeline) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range pipelines {
		key := p.PipelineKey()
		if _, exists := r.pipelineCache[key]; exists {
			continue
		}
		if err := r.backend.RegisterRenderPipeline(p); err != nil {
			return fmt.Errorf("failed to register pipeline %q: %w", key, err)
		}
		r.pipelineCache[key] = p
	}
	return nil
}

func (r *renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.mu.Lock()
	r.width, r.height = width, height
	r.mu.Unlock()
	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) Size() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width, r.height
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.backend.SetPresentMode(mode)
}

func (r *renderer) CreateTexture(desc TextureDescriptor) (Texture, error) {
	if desc.Width <= 0 || desc.Height <= 0 {
		return nil, fmt.Errorf("texture %q has invalid size %dx%d", desc.Label, desc.Width, desc.Height)
	}
	if desc.Pixels != nil && len(desc.Pixels) != 4*desc.Width*desc.Height {
		return nil, fmt.Errorf("texture %q expects %d bytes of pixel data, got %d", desc.Label, 4*desc.Width*desc.Height, len(desc.Pixels))
	}
	return r.backend.CreateTexture(desc)
}

func (r *renderer) CreateMeshBuffer(label string, vertexData, indexData []byte, indexCount int) (MeshBuffer, error) {
	if len(vertexData) == 0 || indexCount == 0 {
		return nil, fmt.Errorf("mesh %q has no geometry", label)
	}
	return r.backend.CreateMeshBuffer(label, vertexData, indexData, indexCount)
}

func (r *renderer) BeginFrame() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.inFrame {
		return fmt.Errorf("%w: previous frame not yet presented", ErrPassState)
	}
	if err := r.backend.BeginFrame(); err != nil {
		return err
	}
	r.inFrame = true
	return nil
}

func (r *renderer) BeginPass(desc PassDescriptor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.inPass {
		return fmt.Errorf("%w: pass %q begun while another pass is open", ErrPassState, desc.Label)
	}
	if desc.Target == nil && !r.inFrame {
		return fmt.Errorf("%w: pass %q targets the swapchain outside a frame", ErrPassState, desc.Label)
	}
	if desc.Target != nil {
		if err := desc.Target.Check(); err != nil {
			return err
		}
	}
	if err := r.backend.BeginPass(desc); err != nil {
		return err
	}
	r.inPass = true
	return nil
}

func (r *renderer) SetLighting(pipelineKey string, data []byte) error {
	r.mu.Lock()
	p, exists := r.pipelineCache[pipelineKey]
	r.mu.Unlock()

	if !exists {
		return fmt.Errorf("render pipeline %q not found in cache", pipelineKey)
	}
	if p.Kind() != pipeline.PipelineKindMesh || len(data) != p.LightingSize() {
		return fmt.Errorf("pipeline %q expects a %d byte lighting block, got %d", pipelineKey, p.LightingSize(), len(data))
	}
	r.backend.SetLighting(p, data)
	return nil
}

func (r *renderer) BindFrameTextures(textures FrameTextures) {
	r.backend.BindFrameTextures(textures)
}

func (r *renderer) Draw(call DrawCall) error {
	r.mu.Lock()
	p, exists := r.pipelineCache[call.PipelineKey]
	inPass := r.inPass
	r.mu.Unlock()

	if !inPass {
		return fmt.Errorf("%w: draw outside a pass", ErrPassState)
	}
	if !exists {
		return fmt.Errorf("render pipeline %q not found in cache", call.PipelineKey)
	}
	return r.backend.Draw(p, call)
}

func (r *renderer) DrawFullscreen(pipelineKey string, uniforms []byte, tex Texture) error {
	r.mu.Lock()
	p, exists := r.pipelineCache[pipelineKey]
	inPass := r.inPass
	r.mu.Unlock()

	if !inPass {
		return fmt.Errorf("%w: draw outside a pass", ErrPassState)
	}
	if !exists {
		return fmt.Errorf("render pipeline %q not found in cache", pipelineKey)
	}
	return r.backend.DrawFullscreen(p, uniforms, tex)
}

func (r *renderer) EndPass() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.inPass {
		return
	}
	r.backend.EndPass()
	r.inPass = false
}

func (r *renderer) Present() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.inPass {
		r.backend.EndPass()
		r.inPass = false
	}
	if !r.inFrame {
		return
	}
	r.backend.Present()
	r.inFrame = false
}
