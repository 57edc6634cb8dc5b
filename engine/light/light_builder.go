package light

import "github.com/go-gl/mathgl/mgl32"

// LightBuilderOption is a function that configures a Light instance during construction.
type LightBuilderOption func(*lightImpl)

// WithType is an option builder that sets the kind of light source.
//
// Parameters:
//   - t: the light type
//
// Returns:
//   - LightBuilderOption: a function that applies the type option to a lightImpl
func WithType(t LightType) LightBuilderOption {
	return func(l *lightImpl) {
		l.lightType = t
	}
}

// WithColor is an option builder that sets the RGB color of the light.
//
// Parameters:
//   - r, g, b: the color components
//
// Returns:
//   - LightBuilderOption: a function that applies the color option to a lightImpl
func WithColor(r, g, b float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.color = mgl32.Vec3{r, g, b}
	}
}

// WithFov is an option builder that sets the full cone angle of a spot light.
//
// Parameters:
//   - fov: full cone angle in radians
//
// Returns:
//   - LightBuilderOption: a function that applies the cone option to a lightImpl
func WithFov(fov float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.fov = fov
	}
}

// WithShadowRange is an option builder that sets the near and far planes of the shadow frustum.
//
// Parameters:
//   - near: near plane distance (> 0)
//   - far: far plane distance
//
// Returns:
//   - LightBuilderOption: a function that applies the range option to a lightImpl
func WithShadowRange(near, far float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.near = near
		l.far = far
	}
}

// WithCastsShadows is an option builder that sets whether the light renders a shadow map.
//
// Parameters:
//   - casts: true to enable shadow map generation
//
// Returns:
//   - LightBuilderOption: a function that applies the shadow option to a lightImpl
func WithCastsShadows(casts bool) LightBuilderOption {
	return func(l *lightImpl) {
		l.castsShadows = casts
	}
}
