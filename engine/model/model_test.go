package model_test

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/stonegate/engine/model"
	"github.com/Carmen-Shannon/stonegate/engine/renderer"
	"github.com/Carmen-Shannon/stonegate/engine/renderer/renderertest"
)

func TestGPUVertexLayout(t *testing.T) {
	v := model.GPUVertex{
		Position: [3]float32{1, 2, 3},
		Normal:   [3]float32{4, 5, 6},
		Color:    [4]float32{7, 8, 9, 10},
		TexCoord: [2]float32{11, 12},
	}
	if v.Size() != model.GPUVertexSize {
		t.Fatalf("Size() = %d, want %d", v.Size(), model.GPUVertexSize)
	}
	buf := v.Marshal()
	for i := 0; i < 12; i++ {
		got := math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
		if got != float32(i+1) {
			t.Fatalf("float %d = %v, want %v", i, got, i+1)
		}
	}
}

func TestIcosphere(t *testing.T) {
	tests := []struct {
		subdivisions int
		vertices     int
		triangles    int
	}{
		{0, 12, 20},
		{1, 42, 80},
		{2, 162, 320},
	}
	for _, tt := range tests {
		positions, indices := model.Icosphere(tt.subdivisions)
		if len(positions) != tt.vertices || len(indices) != 3*tt.triangles {
			t.Errorf("Icosphere(%d): %d vertices, %d triangles; want %d, %d",
				tt.subdivisions, len(positions), len(indices)/3, tt.vertices, tt.triangles)
		}
		for _, p := range positions {
			if d := p.Len() - 1; d > 1e-5 || d < -1e-5 {
				t.Fatalf("vertex %v is not unit length", p)
			}
		}
	}
}

func TestStoneDeterministic(t *testing.T) {
	a, b, c := model.Stone(3), model.Stone(3), model.Stone(4)
	if a.Vertices[10] != b.Vertices[10] {
		t.Fatal("equal seeds produced different stones")
	}
	if a.Vertices[10] == c.Vertices[10] {
		t.Fatal("different seeds produced equal stones")
	}
	r := model.ComputeBoundingRadius(a.Vertices)
	if r <= 0 || r > 1.2*model.StoneRadius*1.3 {
		t.Fatalf("bounding radius %v out of range", r)
	}
}

func TestPoolMatching(t *testing.T) {
	p := model.NewPool()
	for _, name := range []string{model.StoneName(2), "Ground", model.StoneName(0), "Arch", model.StoneName(1)} {
		p.Add(model.NewModel(model.WithName(name), model.WithMeshData(model.Ground(1, 8, 1))))
	}
	stones := p.Matching("Stone")
	if len(stones) != 3 {
		t.Fatalf("Matching returned %d models, want 3", len(stones))
	}
	for i, m := range stones {
		if m.Name() != model.StoneName(i) {
			t.Errorf("stones[%d] = %q, want %q", i, m.Name(), model.StoneName(i))
		}
	}
	if len(p.Matching("Missing")) != 0 {
		t.Error("Matching should return nothing for an unknown fragment")
	}

	b := renderertest.NewBackend()
	if err := p.Upload(renderer.NewRenderer(b, 8, 8)); err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if len(b.Meshes) != 5 {
		t.Fatalf("uploaded %d meshes, want 5", len(b.Meshes))
	}
	if m, _ := p.Get("Arch"); m.Mesh() == nil {
		t.Fatal("Arch has no mesh after Upload")
	}
}

func TestArchAndGround(t *testing.T) {
	arch := model.Arch(2, 3, 0.5)
	if len(arch.Vertices) != 3*24 || len(arch.Indices) != 3*36 {
		t.Fatalf("arch has %d vertices, %d indices", len(arch.Vertices), len(arch.Indices))
	}
	ground := model.Ground(10, 16, 4)
	if len(ground.Vertices) != 17 || len(ground.Indices) != 48 {
		t.Fatalf("ground has %d vertices, %d indices", len(ground.Vertices), len(ground.Indices))
	}
	for _, idx := range ground.Indices {
		if int(idx) >= len(ground.Vertices) {
			t.Fatalf("index %d out of range", idx)
		}
	}
}
