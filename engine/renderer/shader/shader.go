package shader

import (
	"errors"
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// ErrMissingEntryPoint is returned when a shader lacks a @vertex or @fragment function.
var ErrMissingEntryPoint = errors.New("shader entry point missing")

// Shader is a pre-processed WGSL module with the facts a render pipeline needs from it.
type Shader struct {
	key                string
	source             string
	vertexEntryPoint   string
	fragmentEntryPoint string
	vertexLayout       *wgpu.VertexBufferLayout
	bindings           []Binding
}

// NewShader pre-processes source and parses its entry points, vertex input layout and bindings.
//
// Parameters:
//   - key: the shader's unique key, used in error messages
//   - source: the raw WGSL source, possibly holding include annotations
//   - pp: the pre-processor resolving includes, or nil for self-contained sources
//
// Returns:
//   - *Shader: the parsed shader
//   - error: a pre-processing error, an ErrMissingEntryPoint, or an unsupported vertex input type
func NewShader(key, source string, pp PreProcessor) (*Shader, error) {
	if pp != nil {
		processed, err := pp.Process(source)
		if err != nil {
			return nil, fmt.Errorf("shader %q: %w", key, err)
		}
		source = processed
	}

	cleaned := stripComments(source)
	s := &Shader{
		key:                key,
		source:             source,
		vertexEntryPoint:   parseEntryPoint(cleaned, vertexEntryRegex),
		fragmentEntryPoint: parseEntryPoint(cleaned, fragmentEntryRegex),
		bindings:           parseBindings(cleaned),
	}
	if s.vertexEntryPoint == "" || s.fragmentEntryPoint == "" {
		return nil, fmt.Errorf("shader %q: %w (vertex %q, fragment %q)", key, ErrMissingEntryPoint, s.vertexEntryPoint, s.fragmentEntryPoint)
	}

	layout, ok := parseVertexLayout(cleaned)
	if !ok {
		return nil, fmt.Errorf("shader %q: vertex input has a type with no vertex format", key)
	}
	s.vertexLayout = layout
	return s, nil
}

// Key returns the shader's unique key.
func (s *Shader) Key() string {
	return s.key
}

// Source returns the pre-processed WGSL source.
func (s *Shader) Source() string {
	return s.source
}

// VertexEntryPoint returns the name of the @vertex function.
func (s *Shader) VertexEntryPoint() string {
	return s.vertexEntryPoint
}

// FragmentEntryPoint returns the name of the @fragment function.
func (s *Shader) FragmentEntryPoint() string {
	return s.fragmentEntryPoint
}

// VertexLayout returns the layout of the vertex buffer read by the vertex entry point, or nil
// when it only reads builtins.
func (s *Shader) VertexLayout() *wgpu.VertexBufferLayout {
	return s.vertexLayout
}

// Bindings returns the resource declarations ordered by group then binding.
func (s *Shader) Bindings() []Binding {
	return s.bindings
}

// VertexLayout parses the vertex buffer layout straight from WGSL source.
//
// Parameters:
//   - source: a pre-processed WGSL source
//
// Returns:
//   - *wgpu.VertexBufferLayout: the layout, or nil when the vertex entry point reads no vertex buffer
//   - error: an error if the input struct holds an unsupported type
func VertexLayout(source string) (*wgpu.VertexBufferLayout, error) {
	layout, ok := parseVertexLayout(stripComments(source))
	if !ok {
		return nil, errors.New("vertex input has a type with no vertex format")
	}
	return layout, nil
}
