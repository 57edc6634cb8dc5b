package model

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/stonegate/engine/renderer"
)

// model is the implementation of the Model interface.
type model struct {
	mu             *sync.Mutex
	name           string
	data           MeshData
	boundingRadius float32
	mesh           renderer.MeshBuffer
}

// Model defines the interface for a named piece of mesh geometry.
// A Model holds its CPU-side MeshData and, once uploaded, the GPU MeshBuffer used by draw calls.
type Model interface {
	// Name retrieves the model identifier.
	//
	// Returns:
	//   - string: the model name
	Name() string

	// Data retrieves the CPU-side geometry.
	//
	// Returns:
	//   - MeshData: the vertices and indices
	Data() MeshData

	// IndexCount returns the number of indices in the model's mesh.
	//
	// Returns:
	//   - int: the index count
	IndexCount() int

	// BoundingRadius returns the bounding sphere radius in model space.
	//
	// Returns:
	//   - float32: the radius
	BoundingRadius() float32

	// Upload creates the GPU mesh buffer for this model. Uploading twice is a no-op.
	//
	// Parameters:
	//   - r: the renderer to create the buffer with
	//
	// Returns:
	//   - error: an error if the buffer could not be created
	Upload(r renderer.Renderer) error

	// Mesh returns the uploaded GPU mesh, or nil before Upload.
	//
	// Returns:
	//   - renderer.MeshBuffer: the mesh buffer
	Mesh() renderer.MeshBuffer
}

var _ Model = &model{}

// NewModel creates a new Model with the given options.
//
// Parameters:
//   - options: variadic list of ModelBuilderOption functions to configure the Model
//
// Returns:
//   - Model: the newly created Model instance
func NewModel(options ...ModelBuilderOption) Model {
	m := &model{
		mu: &sync.Mutex{},
	}
	for _, opt := range options {
		opt(m)
	}
	m.boundingRadius = ComputeBoundingRadius(m.data.Vertices)
	return m
}

func (m *model) Name() string {
	return m.name
}

func (m *model) Data() MeshData {
	return m.data
}

func (m *model) IndexCount() int {
	return len(m.data.Indices)
}

func (m *model) BoundingRadius() float32 {
	return m.boundingRadius
}

func (m *model) Upload(r renderer.Renderer) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.mesh != nil {
		return nil
	}
	mesh, err := r.CreateMeshBuffer(m.name, m.data.VertexData(), m.data.IndexData(), len(m.data.Indices))
	if err != nil {
		return fmt.Errorf("failed to upload model %q: %w", m.name, err)
	}
	m.mesh = mesh
	return nil
}

func (m *model) Mesh() renderer.MeshBuffer {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mesh
}
