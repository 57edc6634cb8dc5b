package scene

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithDrawWorkers sets the number of worker goroutines used to build per-object
// uniforms during Draw. Defaults to runtime.NumCPU()-1.
//
// Parameters:
//   - n: the number of draw workers (minimum 1)
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithDrawWorkers(n int) SceneBuilderOption {
	return func(s *scene) {
		if n < 1 {
			n = 1
		}
		s.drawWorkers = n
	}
}
