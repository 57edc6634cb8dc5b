package common

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// TwoPi is a full turn in radians.
const TwoPi = 2 * math32.Pi

// Perspective creates a right-handed perspective projection matrix that maps view-space depth
// into the WebGPU clip range [0, 1] (OpenGL-style projections map to [-1, 1]).
//
// Parameters:
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
//
// Returns:
//   - mgl32.Mat4: the column-major projection matrix
func Perspective(fovY, aspect, near, far float32) mgl32.Mat4 {
	f := 1.0 / math32.Tan(fovY/2.0)
	var out mgl32.Mat4
	out[0] = f / aspect
	out[5] = f
	out[10] = far / (near - far)
	out[11] = -1.0
	out[14] = (near * far) / (near - far)
	return out
}

// ShadowBias returns the matrix that maps WebGPU clip space into shadow map texture space:
// x and y from [-1, 1] to [0, 1] with v flipped (texture rows grow downward), depth passed
// through unchanged and offset by bias.
//
// Parameters:
//   - bias: constant added to the compared depth to suppress self-shadowing
//
// Returns:
//   - mgl32.Mat4: the column-major bias matrix
func ShadowBias(bias float32) mgl32.Mat4 {
	return mgl32.Mat4{
		0.5, 0, 0, 0,
		0, -0.5, 0, 0,
		0, 0, 1, 0,
		0.5, 0.5, bias, 1,
	}
}

// WrapAngle maps an unbounded angle in radians into [0, 2π).
//
// Parameters:
//   - a: the angle in radians
//
// Returns:
//   - float32: the equivalent angle in [0, 2π)
func WrapAngle(a float32) float32 {
	w := math32.Mod(a, TwoPi)
	if w < 0 {
		w += TwoPi
	}
	if w >= TwoPi {
		w = 0
	}
	return w
}

// AngularDistance returns the shortest distance between two angles on the circle, in [0, π].
//
// Parameters:
//   - a, b: angles in radians, unbounded
//
// Returns:
//   - float32: the minimal angular difference in radians
func AngularDistance(a, b float32) float32 {
	d := WrapAngle(a - b)
	if d > math32.Pi {
		d = TwoPi - d
	}
	return d
}

// Clamp limits v to the range [lo, hi].
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// NormalMatrix returns the inverse-transpose of the upper 3x3 of m, used to carry normals
// into the space m maps to under non-uniform scale.
//
// Parameters:
//   - m: the object-to-world matrix
//
// Returns:
//   - mgl32.Mat3: the normal matrix, or the upper 3x3 unchanged when it is singular
func NormalMatrix(m mgl32.Mat4) mgl32.Mat3 {
	upper := m.Mat3()
	if upper.Det() == 0 {
		return upper
	}
	return upper.Inv().Transpose()
}
