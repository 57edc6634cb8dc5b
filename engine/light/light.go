package light

import (
	"sync"

	"github.com/Carmen-Shannon/stonegate/common"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// LightType identifies the kind of light source.
type LightType int

const (
	// LightTypeDirectional represents a light with no position, only direction.
	// Used for large distant sources like the sun.
	LightTypeDirectional LightType = iota

	// LightTypePoint represents a light that emits in all directions from a position.
	LightTypePoint

	// LightTypeSpot represents a light that emits in a cone from a position along a direction.
	// The cone axis is the -Z axis of the scene node the light is attached to.
	LightTypeSpot

	// LightTypeHemisphere represents a sky/ground ambient term blended by the normal's
	// alignment with a fixed direction.
	LightTypeHemisphere
)

// String returns the light type name used in scene descriptions and logs.
func (t LightType) String() string {
	switch t {
	case LightTypeDirectional:
		return "directional"
	case LightTypePoint:
		return "point"
	case LightTypeSpot:
		return "spot"
	case LightTypeHemisphere:
		return "hemisphere"
	default:
		return "unknown"
	}
}

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	mu *sync.Mutex

	lightType    LightType
	color        mgl32.Vec3
	fov          float32
	near         float32
	far          float32
	castsShadows bool
}

// Light defines the interface for a lamp in the scene.
//
// Placement comes from the scene node the light is attached to; the light itself
// only holds its type, color and (for spot lights) the cone and shadow frustum.
type Light interface {
	// Type returns the kind of light source.
	//
	// Returns:
	//   - LightType: the light type
	Type() LightType

	// Color returns the RGB color of the light.
	//
	// Returns:
	//   - mgl32.Vec3: color as (r, g, b)
	Color() mgl32.Vec3

	// SetColor sets the RGB color of the light.
	//
	// Parameters:
	//   - c: color as (r, g, b)
	SetColor(c mgl32.Vec3)

	// Fov returns the full cone angle of a spot light in radians.
	//
	// Returns:
	//   - float32: full cone angle in radians
	Fov() float32

	// Cone returns the cosines bounding the spot falloff: outer = cos(0.5 fov) and
	// inner = cos(0.85 * 0.5 fov).
	//
	// Returns:
	//   - outer: cosine of the outer half-angle
	//   - inner: cosine of the inner half-angle
	Cone() (outer, inner float32)

	// Projection returns the square perspective projection covering the spot cone,
	// used to render and sample the light's shadow map.
	//
	// Returns:
	//   - mgl32.Mat4: the projection matrix
	Projection() mgl32.Mat4

	// CastsShadows returns whether this light renders a shadow map.
	//
	// Returns:
	//   - bool: true if the light casts shadows
	CastsShadows() bool
}

var _ Light = &lightImpl{}

// NewLight creates a new Light with the specified options.
// Defaults: white point light, 45° cone, shadow frustum 0.1 to 50.
//
// Parameters:
//   - options: functional options to configure the light
//
// Returns:
//   - Light: the configured light
func NewLight(options ...LightBuilderOption) Light {
	l := &lightImpl{
		mu:        &sync.Mutex{},
		lightType: LightTypePoint,
		color:     mgl32.Vec3{1, 1, 1},
		fov:       mgl32.DegToRad(45),
		near:      0.1,
		far:       50,
	}
	for _, opt := range options {
		opt(l)
	}
	return l
}

// SpotCone returns (cos(0.5 fov), cos(0.85 * 0.5 fov)) for a full cone angle fov.
//
// Parameters:
//   - fov: full cone angle in radians
//
// Returns:
//   - outer: cosine of the outer half-angle
//   - inner: cosine of the inner half-angle
func SpotCone(fov float32) (outer, inner float32) {
	return math32.Cos(0.5 * fov), math32.Cos(0.85 * 0.5 * fov)
}

func (l *lightImpl) Type() LightType {
	return l.lightType
}

func (l *lightImpl) Color() mgl32.Vec3 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.color
}

func (l *lightImpl) SetColor(c mgl32.Vec3) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.color = c
}

func (l *lightImpl) Fov() float32 {
	return l.fov
}

func (l *lightImpl) Cone() (outer, inner float32) {
	return SpotCone(l.fov)
}

func (l *lightImpl) Projection() mgl32.Mat4 {
	return common.Perspective(l.fov, 1, l.near, l.far)
}

func (l *lightImpl) CastsShadows() bool {
	return l.castsShadows
}
