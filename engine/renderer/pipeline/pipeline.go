package pipeline

// PipelineKind identifies the bind group layout family a render pipeline belongs to.
type PipelineKind int

const (
	// PipelineKindDepth is a mesh pipeline that only reads the per-object uniform block
	// (group 0). Used by the shadow and target depth passes.
	PipelineKindDepth PipelineKind = iota

	// PipelineKindMesh is a lit mesh pipeline: object uniforms (group 0), lighting block
	// (group 1), material texture (group 2) and the frame textures (group 3).
	PipelineKindMesh

	// PipelineKindFullscreen draws a single full-screen triangle with no vertex buffer:
	// overlay uniforms (group 0) and one texture (group 1).
	PipelineKindFullscreen
)

// CullMode selects which triangle faces are discarded during rasterization.
type CullMode int

const (
	CullModeNone CullMode = iota
	CullModeFront
	CullModeBack
)

// ColorTarget selects the color attachment format a pipeline renders into.
type ColorTarget int

const (
	// ColorTargetSurface renders into the swapchain surface format.
	ColorTargetSurface ColorTarget = iota

	// ColorTargetOffscreen renders into the RGBA8 color attachment of an offscreen render target.
	ColorTargetOffscreen
)

// pipeline is the implementation of the Pipeline interface.
// It holds the shader source and the fixed-function state needed to create the GPU pipeline.
type pipeline struct {
	// pipelineKey is the unique identifier for this pipeline, used for caching and lookups
	pipelineKey string
	kind        PipelineKind

	// source is the complete WGSL module containing both entry points.
	source           string
	vertexEntryPoint string
	fragEntryPoint   string

	// handle is the backend-created pipeline object, nil until registered.
	handle any

	depthTestEnabled  bool
	depthWriteEnabled bool
	blendEnabled      bool
	cullMode          CullMode
	colorTarget       ColorTarget
	lightingSize      int
}

// Pipeline defines the interface for a GPU render pipeline: one WGSL module with a vertex and a
// fragment entry point plus the depth, blend and cull state used to create it.
type Pipeline interface {
	// PipelineKey returns the unique identifier of the pipeline.
	//
	// Returns:
	//   - string: the pipeline key
	PipelineKey() string

	// Kind returns the bind group layout family of the pipeline.
	//
	// Returns:
	//   - PipelineKind: the pipeline kind
	Kind() PipelineKind

	// Source returns the WGSL source of the pipeline's shader module.
	//
	// Returns:
	//   - string: the WGSL source
	Source() string

	// VertexEntryPoint returns the name of the vertex entry point.
	//
	// Returns:
	//   - string: the entry point name
	VertexEntryPoint() string

	// FragmentEntryPoint returns the name of the fragment entry point.
	//
	// Returns:
	//   - string: the entry point name
	FragmentEntryPoint() string

	// DepthTestEnabled returns whether fragments are depth tested.
	//
	// Returns:
	//   - bool: true if depth testing is enabled
	DepthTestEnabled() bool

	// DepthWriteEnabled returns whether fragments write depth.
	//
	// Returns:
	//   - bool: true if depth writing is enabled
	DepthWriteEnabled() bool

	// BlendEnabled returns whether source-alpha blending is enabled.
	//
	// Returns:
	//   - bool: true if blending is enabled
	BlendEnabled() bool

	// CullMode returns the face culling mode.
	//
	// Returns:
	//   - CullMode: the cull mode
	CullMode() CullMode

	// ColorTarget returns the color attachment format family the pipeline renders into.
	//
	// Returns:
	//   - ColorTarget: surface or offscreen
	ColorTarget() ColorTarget

	// LightingSize returns the byte size of the lighting uniform block (group 1) for mesh pipelines.
	//
	// Returns:
	//   - int: block size in bytes, 0 for pipelines without lighting
	LightingSize() int

	// Handle returns the backend pipeline object, or nil if the pipeline has not been registered.
	//
	// Returns:
	//   - any: the backend pipeline object
	Handle() any

	// SetHandle stores the backend pipeline object after creation.
	//
	// Parameters:
	//   - h: the backend pipeline object
	SetHandle(h any)
}

var _ Pipeline = &pipeline{}

// NewPipeline creates a new Pipeline with the given key, kind and options.
// Defaults: depth test and write on, blending off, no culling, surface color target,
// entry points "vs_main" and "fs_main".
//
// Parameters:
//   - pipelineKey: the unique key for this pipeline
//   - kind: the bind group layout family of the pipeline
//   - opts: a variadic list of PipelineBuilderOption functions to configure the pipeline
//
// Returns:
//   - Pipeline: a new Pipeline instance with the specified configuration
func NewPipeline(pipelineKey string, kind PipelineKind, opts ...PipelineBuilderOption) Pipeline {
	p := &pipeline{
		pipelineKey:       pipelineKey,
		kind:              kind,
		vertexEntryPoint:  "vs_main",
		fragEntryPoint:    "fs_main",
		depthTestEnabled:  true,
		depthWriteEnabled: true,
		blendEnabled:      false,
		cullMode:          CullModeNone,
		colorTarget:       ColorTargetSurface,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *pipeline) PipelineKey() string {
	return p.pipelineKey
}

func (p *pipeline) Kind() PipelineKind {
	return p.kind
}

func (p *pipeline) Source() string {
	return p.source
}

func (p *pipeline) VertexEntryPoint() string {
	return p.vertexEntryPoint
}

func (p *pipeline) FragmentEntryPoint() string {
	return p.fragEntryPoint
}

func (p *pipeline) DepthTestEnabled() bool {
	return p.depthTestEnabled
}

func (p *pipeline) DepthWriteEnabled() bool {
	return p.depthWriteEnabled
}

func (p *pipeline) BlendEnabled() bool {
	return p.blendEnabled
}

func (p *pipeline) CullMode() CullMode {
	return p.cullMode
}

func (p *pipeline) ColorTarget() ColorTarget {
	return p.colorTarget
}

func (p *pipeline) LightingSize() int {
	return p.lightingSize
}

func (p *pipeline) Handle() any {
	return p.handle
}

func (p *pipeline) SetHandle(h any) {
	p.handle = h
}
