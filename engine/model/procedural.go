package model

import (
	"math/rand"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// StoneRadius is the nominal model-space radius of a generated stone before jitter.
const StoneRadius float32 = 8

type edgeKey struct{ a, b uint32 }

// Icosphere builds a unit sphere by subdividing an icosahedron.
// Each subdivision splits every triangle into four.
//
// Parameters:
//   - subdivisions: the number of subdivision steps (0 gives the icosahedron)
//
// Returns:
//   - []mgl32.Vec3: unit-length vertex positions
//   - []uint32: counter-clockwise triangle indices
func Icosphere(subdivisions int) ([]mgl32.Vec3, []uint32) {
	t := (1 + math32.Sqrt(5)) / 2
	positions := []mgl32.Vec3{
		{-1, t, 0}, {1, t, 0}, {-1, -t, 0}, {1, -t, 0},
		{0, -1, t}, {0, 1, t}, {0, -1, -t}, {0, 1, -t},
		{t, 0, -1}, {t, 0, 1}, {-t, 0, -1}, {-t, 0, 1},
	}
	for i := range positions {
		positions[i] = positions[i].Normalize()
	}
	indices := []uint32{
		0, 11, 5, 0, 5, 1, 0, 1, 7, 0, 7, 10, 0, 10, 11,
		1, 5, 9, 5, 11, 4, 11, 10, 2, 10, 7, 6, 7, 1, 8,
		3, 9, 4, 3, 4, 2, 3, 2, 6, 3, 6, 8, 3, 8, 9,
		4, 9, 5, 2, 4, 11, 6, 2, 10, 8, 6, 7, 9, 8, 1,
	}

	for s := 0; s < subdivisions; s++ {
		midpoints := make(map[edgeKey]uint32)
		midpoint := func(a, b uint32) uint32 {
			key := edgeKey{a, b}
			if a > b {
				key = edgeKey{b, a}
			}
			if idx, ok := midpoints[key]; ok {
				return idx
			}
			positions = append(positions, positions[a].Add(positions[b]).Normalize())
			idx := uint32(len(positions) - 1)
			midpoints[key] = idx
			return idx
		}

		next := make([]uint32, 0, len(indices)*4)
		for i := 0; i < len(indices); i += 3 {
			a, b, c := indices[i], indices[i+1], indices[i+2]
			ab, bc, ca := midpoint(a, b), midpoint(b, c), midpoint(c, a)
			next = append(next,
				a, ab, ca,
				b, bc, ab,
				c, ca, bc,
				ab, bc, ca,
			)
		}
		indices = next
	}
	return positions, indices
}

// Stone builds a rough rock: an icosphere whose vertices are pushed in and out by
// a seeded random amount and stretched along a random axis.
//
// Parameters:
//   - seed: the random seed; equal seeds give equal stones
//
// Returns:
//   - MeshData: the stone geometry with smooth normals and spherical UVs
func Stone(seed int64) MeshData {
	rng := rand.New(rand.NewSource(seed))
	positions, indices := Icosphere(2)

	stretch := mgl32.Vec3{
		0.7 + 0.6*rng.Float32(),
		0.7 + 0.6*rng.Float32(),
		0.5 + 0.4*rng.Float32(),
	}
	shade := 0.55 + 0.3*rng.Float32()

	vertices := make([]GPUVertex, len(positions))
	for i, p := range positions {
		r := StoneRadius * (0.85 + 0.3*rng.Float32())
		q := mgl32.Vec3{p.X() * stretch.X(), p.Y() * stretch.Y(), p.Z() * stretch.Z()}.Mul(r)
		tint := shade + 0.1*(rng.Float32()-0.5)
		vertices[i] = GPUVertex{
			Position: q,
			Color:    [4]float32{tint, tint * 0.97, tint * 0.92, 1},
			TexCoord: sphericalUV(p),
		}
	}
	computeNormals(vertices, indices)
	return MeshData{Vertices: vertices, Indices: indices}
}

// Ground builds a flat disc in the z = 0 plane facing +Z.
//
// Parameters:
//   - radius: the disc radius
//   - segments: the number of rim segments (at least 3)
//   - uvScale: the number of texture repeats across the radius
//
// Returns:
//   - MeshData: the disc geometry
func Ground(radius float32, segments int, uvScale float32) MeshData {
	if segments < 3 {
		segments = 3
	}
	vertex := func(x, y float32) GPUVertex {
		return GPUVertex{
			Position: [3]float32{x, y, 0},
			Normal:   [3]float32{0, 0, 1},
			Color:    [4]float32{1, 1, 1, 1},
			TexCoord: [2]float32{uvScale * x / radius, uvScale * y / radius},
		}
	}

	vertices := []GPUVertex{vertex(0, 0)}
	var indices []uint32
	for i := 0; i < segments; i++ {
		a := float32(i) / float32(segments) * 2 * math32.Pi
		vertices = append(vertices, vertex(radius*math32.Cos(a), radius*math32.Sin(a)))
		next := uint32(i+1)%uint32(segments) + 1
		indices = append(indices, 0, uint32(i+1), next)
	}
	return MeshData{Vertices: vertices, Indices: indices}
}

// Arch builds a gateway: two pillars joined by a lintel, standing on z = 0 and
// centered on the origin along X.
//
// Parameters:
//   - width: the clear span between the pillars
//   - height: the pillar height
//   - thickness: the pillar and lintel thickness
//
// Returns:
//   - MeshData: the arch geometry with per-face normals
func Arch(width, height, thickness float32) MeshData {
	half := width/2 + thickness/2
	var m MeshData
	appendBox(&m, mgl32.Vec3{-half, 0, height / 2}, mgl32.Vec3{thickness, thickness, height})
	appendBox(&m, mgl32.Vec3{half, 0, height / 2}, mgl32.Vec3{thickness, thickness, height})
	appendBox(&m, mgl32.Vec3{0, 0, height + thickness/2}, mgl32.Vec3{width + 2*thickness, thickness * 1.2, thickness})
	return m
}

// appendBox adds an axis-aligned box with the given center and size to m.
func appendBox(m *MeshData, center, size mgl32.Vec3) {
	h := size.Mul(0.5)
	faces := []struct {
		normal, u, v mgl32.Vec3
	}{
		{mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 0, 1}},
		{mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, -1, 0}, mgl32.Vec3{0, 0, 1}},
		{mgl32.Vec3{0, 1, 0}, mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 0, 1}},
		{mgl32.Vec3{0, -1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, 1}},
		{mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{0, 0, -1}, mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 1, 0}},
	}
	scale := func(a mgl32.Vec3) mgl32.Vec3 {
		return mgl32.Vec3{a.X() * h.X(), a.Y() * h.Y(), a.Z() * h.Z()}
	}
	corners := [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}

	for _, f := range faces {
		base := uint32(len(m.Vertices))
		for _, c := range corners {
			p := center.Add(scale(f.normal)).Add(scale(f.u).Mul(c[0])).Add(scale(f.v).Mul(c[1]))
			m.Vertices = append(m.Vertices, GPUVertex{
				Position: p,
				Normal:   f.normal,
				Color:    [4]float32{1, 1, 1, 1},
				TexCoord: [2]float32{0.5 + 0.5*c[0], 0.5 + 0.5*c[1]},
			})
		}
		m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
	}
}

// computeNormals sets each vertex normal to the normalized sum of the face normals around it.
func computeNormals(vertices []GPUVertex, indices []uint32) {
	sums := make([]mgl32.Vec3, len(vertices))
	for i := 0; i+2 < len(indices); i += 3 {
		a, b, c := indices[i], indices[i+1], indices[i+2]
		pa, pb, pc := mgl32.Vec3(vertices[a].Position), mgl32.Vec3(vertices[b].Position), mgl32.Vec3(vertices[c].Position)
		n := pb.Sub(pa).Cross(pc.Sub(pa))
		sums[a] = sums[a].Add(n)
		sums[b] = sums[b].Add(n)
		sums[c] = sums[c].Add(n)
	}
	for i, n := range sums {
		if n.Len() > 0 {
			vertices[i].Normal = n.Normalize()
		}
	}
}

func sphericalUV(p mgl32.Vec3) [2]float32 {
	u := 0.5 + math32.Atan2(p.Y(), p.X())/(2*math32.Pi)
	v := math32.Acos(mgl32.Clamp(p.Z(), -1, 1)) / math32.Pi
	return [2]float32{u, v}
}
