package resources_test

import (
	"strings"
	"testing"

	"github.com/Carmen-Shannon/stonegate/engine/model"
	"github.com/Carmen-Shannon/stonegate/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/stonegate/engine/renderer/shader"
	"github.com/Carmen-Shannon/stonegate/engine/resources"
)

func TestPipelinesComposeShaders(t *testing.T) {
	pipelines, err := resources.Pipelines()
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		key      string
		kind     pipeline.PipelineKind
		contains []string
		layout   bool
	}{
		{key: resources.PipelineDepth, kind: pipeline.PipelineKindDepth, contains: []string{"struct Object {"}, layout: true},
		{key: resources.PipelineLit, kind: pipeline.PipelineKindMesh, contains: []string{"struct Object {", "struct Lighting {", "struct VertexOutput"}, layout: true},
		{key: resources.PipelineShady, kind: pipeline.PipelineKindMesh, contains: []string{"struct Lighting {", "struct TargetLighting", "fn target_visibility"}, layout: true},
		{key: resources.PipelineReveal, kind: pipeline.PipelineKindFullscreen, contains: []string{"struct Overlay {"}},
		{key: resources.PipelineFade, kind: pipeline.PipelineKindFullscreen, contains: []string{"struct Overlay {"}},
	}
	if len(pipelines) != len(tests) {
		t.Fatalf("got %d pipelines, want %d", len(pipelines), len(tests))
	}

	for i, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			p := pipelines[i]
			if p.PipelineKey() != tt.key || p.Kind() != tt.kind {
				t.Fatalf("pipeline %d = %q kind %d, want %q kind %d", i, p.PipelineKey(), p.Kind(), tt.key, tt.kind)
			}
			if p.VertexEntryPoint() != "vs_main" || p.FragmentEntryPoint() != "fs_main" {
				t.Errorf("entry points = %q/%q", p.VertexEntryPoint(), p.FragmentEntryPoint())
			}
			for _, want := range tt.contains {
				if strings.Count(p.Source(), want) != 1 {
					t.Errorf("source has %d copies of %q, want 1", strings.Count(p.Source(), want), want)
				}
			}
			if strings.Contains(p.Source(), "@stone:") {
				t.Error("source still holds an include annotation")
			}

			layout, err := shader.VertexLayout(p.Source())
			if err != nil {
				t.Fatal(err)
			}
			if !tt.layout {
				if layout != nil {
					t.Errorf("overlay pipeline has a vertex layout")
				}
				return
			}
			if layout == nil || layout.ArrayStride != model.GPUVertexSize || len(layout.Attributes) != 4 {
				t.Fatalf("vertex layout = %+v, want %d-byte stride with 4 attributes", layout, model.GPUVertexSize)
			}
		})
	}
}
