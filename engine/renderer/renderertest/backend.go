// Package renderertest provides an in-memory RendererBackend that records every call,
// so packages drawing through a renderer.Renderer can be tested without a GPU.
package renderertest

import (
	"sync"

	"github.com/Carmen-Shannon/stonegate/engine/renderer"
	"github.com/Carmen-Shannon/stonegate/engine/renderer/pipeline"
)

// Texture is the fake renderer.Texture handed out by Backend.
type Texture struct {
	Desc     renderer.TextureDescriptor
	Released bool
}

var _ renderer.Texture = &Texture{}

func (t *Texture) Label() string { return t.Desc.Label }
func (t *Texture) Width() int { return t.Desc.Width }
func (t *Texture) Height() int { return t.Desc.Height }
func (t *Texture) Format() renderer.TextureFormat { return t.Desc.Format }
func (t *Texture) Sampling() renderer.SampleMode { return t.Desc.Sampling }
func (t *Texture) Release() { t.Released = true }

// Mesh is the fake renderer.MeshBuffer handed out by Backend.
type Mesh struct {
	Name     string
	Indices  int
	Released bool
}

var _ renderer.MeshBuffer = &Mesh{}

func (m *Mesh) Label() string { return m.Name }
func (m *Mesh) IndexCount() int { return m.Indices }
func (m *Mesh) Release() { m.Released = true }

// Draw records one Draw or DrawFullscreen call.
type Draw struct {
	PipelineKey string
	ObjectID    int
	Mesh        renderer.MeshBuffer
	Texture     renderer.Texture
	Uniforms    []byte
	Fullscreen  bool
	Frame       renderer.FrameTextures
}

// Pass records one render pass and the draws encoded in it.
type Pass struct {
	Label  string
	Target *renderer.RenderTarget
	Clear  *renderer.Color
	Draws  []Draw

	// Lighting holds the lighting blocks written while the pass was open or just before it.
	Lighting map[string][]byte
}

// Backend is a recording renderer.RendererBackend.
type Backend struct {
	mu *sync.Mutex

	Configured  [][2]int
	PresentMode renderer.PresentMode
	Textures    []*Texture
	Meshes      []*Mesh
	Pipelines   []string
	Passes      []*Pass
	Frames      int
	Presented   int

	// Lighting holds the latest lighting block per pipeline key.
	Lighting map[string][]byte

	frame   renderer.FrameTextures
	current *Pass
}

var _ renderer.RendererBackend = &Backend{}

// NewBackend creates an empty recording backend.
func NewBackend() *Backend {
	return &Backend{
		mu:       &sync.Mutex{},
		Lighting: make(map[string][]byte),
	}
}

// Reset forgets the recorded passes and frame counters, keeping created resources.
func (b *Backend) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Passes = nil
	b.Frames = 0
	b.Presented = 0
}

// TexturesCreated returns the number of textures created with the given label.
func (b *Backend) TexturesCreated(label string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, t := range b.Textures {
		if t.Desc.Label == label {
			n++
		}
	}
	return n
}

func (b *Backend) ConfigureSurface(width, height int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Configured = append(b.Configured, [2]int{width, height})
}

func (b *Backend) SetPresentMode(mode renderer.PresentMode) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.PresentMode = mode
}

func (b *Backend) CreateTexture(desc renderer.TextureDescriptor) (renderer.Texture, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	t := &Texture{Desc: desc}
	b.Textures = append(b.Textures, t)
	return t, nil
}

func (b *Backend) CreateMeshBuffer(label string, _, _ []byte, indexCount int) (renderer.MeshBuffer, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	m := &Mesh{Name: label, Indices: indexCount}
	b.Meshes = append(b.Meshes, m)
	return m, nil
}

func (b *Backend) RegisterRenderPipeline(p pipeline.Pipeline) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Pipelines = append(b.Pipelines, p.PipelineKey())
	p.SetHandle(p.PipelineKey())
	return nil
}

func (b *Backend) BeginFrame() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Frames++
	return nil
}

func (b *Backend) BeginPass(desc renderer.PassDescriptor) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.current = &Pass{
		Label:    desc.Label,
		Target:   desc.Target,
		Clear:    desc.Clear,
		Lighting: make(map[string][]byte),
	}
	b.Passes = append(b.Passes, b.current)
	return nil
}

func (b *Backend) SetLighting(p pipeline.Pipeline, data []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	cp := append([]byte(nil), data...)
	b.Lighting[p.PipelineKey()] = cp
	if b.current != nil {
		b.current.Lighting[p.PipelineKey()] = cp
	}
}

func (b *Backend) BindFrameTextures(textures renderer.FrameTextures) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.frame = textures
}

func (b *Backend) Draw(p pipeline.Pipeline, call renderer.DrawCall) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.current.Draws = append(b.current.Draws, Draw{
		PipelineKey: p.PipelineKey(),
		ObjectID:    call.ObjectID,
		Mesh:        call.Mesh,
		Texture:     call.Texture,
		Uniforms:    append([]byte(nil), call.Uniforms...),
		Frame:       b.frame,
	})
	return nil
}

func (b *Backend) DrawFullscreen(p pipeline.Pipeline, uniforms []byte, tex renderer.Texture) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.current.Draws = append(b.current.Draws, Draw{
		PipelineKey: p.PipelineKey(),
		Texture:     tex,
		Uniforms:    append([]byte(nil), uniforms...),
		Fullscreen:  true,
	})
	return nil
}

func (b *Backend) EndPass() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.current = nil
}

func (b *Backend) Present() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Presented++
}
