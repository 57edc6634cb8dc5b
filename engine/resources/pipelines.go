package resources

import (
	_ "embed"
	"fmt"

	"github.com/Carmen-Shannon/stonegate/engine/light"
	"github.com/Carmen-Shannon/stonegate/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/stonegate/engine/renderer/shader"
	"github.com/Carmen-Shannon/stonegate/engine/scene"
)

// Pipeline keys registered by NewRegistry.
const (
	PipelineDepth  = "depth"
	PipelineLit    = "lit"
	PipelineShady  = "shady"
	PipelineReveal = "reveal"
	PipelineFade   = "fade"
)

var (
	//go:embed assets/depth.wgsl
	depthSource string

	//go:embed assets/mesh_common.wgsl
	meshCommonSource string

	//go:embed assets/lit.wgsl
	litSource string

	//go:embed assets/shady.wgsl
	shadySource string

	//go:embed assets/overlay.wgsl
	overlaySource string

	//go:embed assets/reveal.wgsl
	revealSource string

	//go:embed assets/fade.wgsl
	fadeSource string
)

// ShaderIncludes returns a pre-processor resolving every shared WGSL fragment by name:
// object, lighting, target_lighting, mesh_common and overlay.
//
// Returns:
//   - shader.PreProcessor: the configured pre-processor
func ShaderIncludes() shader.PreProcessor {
	return shader.NewPreProcessor(
		shader.WithInclude("object", scene.GPUObjectSource),
		shader.WithInclude("lighting", light.GPULightingSource),
		shader.WithInclude("target_lighting", light.GPUTargetLightingSource),
		shader.WithInclude("mesh_common", meshCommonSource),
		shader.WithInclude("overlay", overlaySource),
	)
}

// Pipelines returns the descriptions of every pipeline the game draws with, their shaders
// pre-processed and their entry points parsed.
//
// Returns:
//   - []pipeline.Pipeline: depth, lit, shady, reveal and fade
//   - error: the first shader that failed to pre-process or parse
func Pipelines() ([]pipeline.Pipeline, error) {
	overlay := []pipeline.PipelineBuilderOption{
		pipeline.WithDepthTestEnabled(false),
		pipeline.WithDepthWriteEnabled(false),
		pipeline.WithBlendEnabled(true),
	}
	defs := []struct {
		key    string
		kind   pipeline.PipelineKind
		source string
		opts   []pipeline.PipelineBuilderOption
	}{
		{PipelineDepth, pipeline.PipelineKindDepth, depthSource, []pipeline.PipelineBuilderOption{
			pipeline.WithCullMode(pipeline.CullModeFront),
			pipeline.WithColorTarget(pipeline.ColorTargetOffscreen),
		}},
		{PipelineLit, pipeline.PipelineKindMesh, litSource, []pipeline.PipelineBuilderOption{
			pipeline.WithLightingSize(light.GPULightingSize),
		}},
		{PipelineShady, pipeline.PipelineKindMesh, shadySource, []pipeline.PipelineBuilderOption{
			pipeline.WithLightingSize(light.GPUTargetLightingSize),
		}},
		{PipelineReveal, pipeline.PipelineKindFullscreen, revealSource, overlay},
		{PipelineFade, pipeline.PipelineKindFullscreen, fadeSource, overlay},
	}

	pp := ShaderIncludes()
	pipelines := make([]pipeline.Pipeline, 0, len(defs))
	for _, def := range defs {
		s, err := shader.NewShader(def.key, def.source, pp)
		if err != nil {
			return nil, fmt.Errorf("failed to build pipeline %q: %w", def.key, err)
		}
		opts := append([]pipeline.PipelineBuilderOption{
			pipeline.WithSource(s.Source()),
			pipeline.WithEntryPoints(s.VertexEntryPoint(), s.FragmentEntryPoint()),
		}, def.opts...)
		pipelines = append(pipelines, pipeline.NewPipeline(def.key, def.kind, opts...))
	}
	return pipelines, nil
}
