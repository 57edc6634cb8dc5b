package resources

import "github.com/Carmen-Shannon/stonegate/common"

// RegistryBuilderOption is a functional option applied to a Registry during NewRegistry.
type RegistryBuilderOption func(*Registry)

// WithStoneVariants sets how many distinct stone meshes are generated.
//
// Parameters:
//   - n: the number of stone variants (minimum 1)
//
// Returns:
//   - RegistryBuilderOption: option function to apply
func WithStoneVariants(n int) RegistryBuilderOption {
	return func(reg *Registry) {
		reg.stoneVariants = max(n, 1)
	}
}

// WithWorkers sets the number of workers used to decode target images.
func WithWorkers(n int) RegistryBuilderOption {
	return func(reg *Registry) {
		reg.workers = max(n, 1)
	}
}

// WithSeed sets the seed of every procedural mesh and texture.
func WithSeed(seed int64) RegistryBuilderOption {
	return func(reg *Registry) {
		reg.seed = seed
	}
}

// WithImageSources adds target images to decode in addition to the configured image directory.
// When neither is given the built-in images are generated.
func WithImageSources(sources ...common.ImageSource) RegistryBuilderOption {
	return func(reg *Registry) {
		reg.sources = append(reg.sources, sources...)
	}
}
