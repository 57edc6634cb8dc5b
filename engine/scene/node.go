package scene

import (
	"github.com/Carmen-Shannon/stonegate/engine/renderer"
	"github.com/go-gl/mathgl/mgl32"
)

// NodeID is a handle to a node held by a Scene. The zero value refers to no node.
type NodeID int

// NoNode is the NodeID of a root node's parent.
const NoNode NodeID = 0

// Transform is the local transform of a scene node relative to its parent.
type Transform struct {
	Name     string
	Parent   NodeID
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3
}

// NewTransform returns an identity transform with the given name and parent.
func NewTransform(name string, parent NodeID) Transform {
	return Transform{
		Name:     name,
		Parent:   parent,
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

// LocalMatrix composes translation, rotation and scale.
//
// Returns:
//   - mgl32.Mat4: the parent-from-local matrix
func (t Transform) LocalMatrix() mgl32.Mat4 {
	return mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z()).
		Mul4(t.Rotation.Normalize().Mat4()).
		Mul4(mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z()))
}

// InverseLocalMatrix is the inverse of LocalMatrix, computed without a general inverse.
//
// Returns:
//   - mgl32.Mat4: the local-from-parent matrix
func (t Transform) InverseLocalMatrix() mgl32.Mat4 {
	inv := func(v float32) float32 {
		if v == 0 {
			return 0
		}
		return 1 / v
	}
	return mgl32.Scale3D(inv(t.Scale.X()), inv(t.Scale.Y()), inv(t.Scale.Z())).
		Mul4(t.Rotation.Normalize().Inverse().Mat4()).
		Mul4(mgl32.Translate3D(-t.Position.X(), -t.Position.Y(), -t.Position.Z()))
}

// PassType selects which program of an object a pass draws with.
type PassType int

const (
	// PassDefault is the visible, lit pass.
	PassDefault PassType = iota

	// PassShadow is a depth-only pass rendered from a light or the hidden target camera.
	PassShadow

	passTypeCount
)

// Program binds an object to a pipeline for one pass.
type Program struct {
	// PipelineKey selects the registered pipeline.
	PipelineKey string

	// Texture is the material texture for lit pipelines. Ignored by depth pipelines.
	Texture renderer.Texture
}
