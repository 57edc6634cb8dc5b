package model

import (
	"encoding/binary"
)

// MeshData is CPU-side geometry: a vertex list and a uint32 triangle index list.
type MeshData struct {
	Vertices []GPUVertex
	Indices  []uint32
}

// VertexData serializes the vertices back to back in GPUVertex layout.
//
// Returns:
//   - []byte: len(Vertices) * GPUVertexSize bytes
func (m MeshData) VertexData() []byte {
	buf := make([]byte, len(m.Vertices)*GPUVertexSize)
	for i := range m.Vertices {
		m.Vertices[i].put(buf[i*GPUVertexSize:])
	}
	return buf
}

// IndexData serializes the indices as little-endian uint32.
//
// Returns:
//   - []byte: len(Indices) * 4 bytes
func (m MeshData) IndexData() []byte {
	buf := make([]byte, len(m.Indices)*4)
	for i, idx := range m.Indices {
		binary.LittleEndian.PutUint32(buf[i*4:], idx)
	}
	return buf
}
