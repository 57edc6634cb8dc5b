package common

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Coalesce returns the first non-zero value from the provided values, or the zero value if all are zero.
//
// Parameters:
//   - values: a variadic list of values to check for non-zero status
//
// Returns:
//   - T: the first non-zero value from the input, or the zero value if all are zero
func Coalesce[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}

// PutFloats writes float32 values little-endian into buf starting at byte offset off.
//
// Parameters:
//   - buf: destination buffer
//   - off: byte offset of the first value
//   - values: the values to write
//
// Returns:
//   - int: the byte offset just past the last value written
func PutFloats(buf []byte, off int, values ...float32) int {
	for _, v := range values {
		binary.LittleEndian.PutUint32(buf[off:off+4], math.Float32bits(v))
		off += 4
	}
	return off
}

// PutMat4 writes a column-major 4x4 matrix into buf at byte offset off (64 bytes).
//
// Parameters:
//   - buf: destination buffer
//   - off: byte offset of the matrix
//   - m: the matrix to write
//
// Returns:
//   - int: the byte offset just past the matrix
func PutMat4(buf []byte, off int, m mgl32.Mat4) int {
	return PutFloats(buf, off, m[:]...)
}

// PutMat3 writes a 3x3 matrix into buf at byte offset off using the WGSL mat3x3 uniform
// layout: three columns each padded to 16 bytes (48 bytes total).
//
// Parameters:
//   - buf: destination buffer
//   - off: byte offset of the matrix
//   - m: the matrix to write
//
// Returns:
//   - int: the byte offset just past the padded matrix
func PutMat3(buf []byte, off int, m mgl32.Mat3) int {
	for c := 0; c < 3; c++ {
		col := m.Col(c)
		off = PutFloats(buf, off, col[0], col[1], col[2], 0)
	}
	return off
}

// PutVec4 writes a vec3 padded to 16 bytes with w as the fourth component.
//
// Parameters:
//   - buf: destination buffer
//   - off: byte offset of the vector
//   - v: the xyz components
//   - w: the fourth component
//
// Returns:
//   - int: the byte offset just past the vector
func PutVec4(buf []byte, off int, v mgl32.Vec3, w float32) int {
	return PutFloats(buf, off, v[0], v[1], v[2], w)
}
