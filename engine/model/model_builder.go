package model

// ModelBuilderOption is a functional option for configuring a Model via NewModel.
type ModelBuilderOption func(*model)

// WithName is an option builder that sets the name of the Model.
//
// Parameters:
//   - name: the model identifier
//
// Returns:
//   - ModelBuilderOption: a function that applies the name option to a model
func WithName(name string) ModelBuilderOption {
	return func(m *model) {
		m.name = name
	}
}

// WithMeshData is an option builder that sets the geometry of the Model.
//
// Parameters:
//   - data: the vertices and indices
//
// Returns:
//   - ModelBuilderOption: a function that applies the geometry option to a model
func WithMeshData(data MeshData) ModelBuilderOption {
	return func(m *model) {
		m.data = data
	}
}
