package gateway

import (
	"fmt"
	"log"

	"github.com/Carmen-Shannon/stonegate/engine/config"
	"github.com/Carmen-Shannon/stonegate/engine/light"
	"github.com/Carmen-Shannon/stonegate/engine/renderer"
	"github.com/Carmen-Shannon/stonegate/engine/resources"
	"github.com/Carmen-Shannon/stonegate/engine/scene"
	"github.com/Carmen-Shannon/stonegate/puzzle"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	origin  = mgl32.Vec4{0, 0, 0, 1}
	forward = mgl32.Vec4{0, 0, -1, 0}
)

// TargetView is the target camera captured during the target pass.
type TargetView struct {
	Projection   mgl32.Mat4
	WorldToLocal mgl32.Mat4
	ToWorld      mgl32.Mat4
}

// Position returns the target camera position in world space.
func (v TargetView) Position() mgl32.Vec3 {
	return v.ToWorld.Mul4x1(origin).Vec3()
}

// Direction returns the target camera view direction in world space.
func (v TargetView) Direction() mgl32.Vec3 {
	return v.ToWorld.Mul4x1(forward).Vec3().Normalize()
}

// Pipeline renders a gateway frame in three passes: the live spot shadow map, the depth
// seen from the target pose, and the lit composite into the swapchain.
type Pipeline struct {
	renderer renderer.Renderer
	cfg      config.Render

	shadow     *renderer.RenderTarget
	target     *renderer.RenderTarget
	targetSize [2]int

	reallocations int
	targetView    TargetView
}

// NewPipeline creates a pipeline. Framebuffers are allocated by the first Draw.
//
// Parameters:
//   - r: the renderer the passes are drawn with; the registry's pipelines must be registered on it
//   - cfg: shadow map size, bias, colors and clears
//
// Returns:
//   - *Pipeline: the pipeline
func NewPipeline(r renderer.Renderer, cfg config.Render) *Pipeline {
	return &Pipeline{renderer: r, cfg: cfg}
}

// Reallocations returns how many times the full-resolution framebuffer has been allocated.
func (p *Pipeline) Reallocations() int {
	return p.reallocations
}

// TargetView returns the target camera captured by the latest target pass.
func (p *Pipeline) TargetView() TargetView {
	return p.targetView
}

// Shadow returns the spot shadow framebuffer, or nil before the first Draw.
func (p *Pipeline) Shadow() *renderer.RenderTarget {
	return p.shadow
}

// Target returns the full-resolution framebuffer, or nil before the first Draw.
func (p *Pipeline) Target() *renderer.RenderTarget {
	return p.target
}

func (p *Pipeline) allocate(label string, width, height int) (*renderer.RenderTarget, error) {
	color, err := p.renderer.CreateTexture(renderer.TextureDescriptor{
		Label:            label + " color",
		Width:            width,
		Height:           height,
		Format:           renderer.TextureFormatRGBA8,
		Sampling:         renderer.SampleModeClamp,
		RenderAttachment: true,
	})
	if err != nil {
		return nil, err
	}
	depth, err := p.renderer.CreateTexture(renderer.TextureDescriptor{
		Label:            label + " depth",
		Width:            width,
		Height:           height,
		Format:           renderer.TextureFormatDepth32,
		Sampling:         renderer.SampleModeCompare,
		RenderAttachment: true,
	})
	if err != nil {
		color.Release()
		return nil, err
	}

	t := &renderer.RenderTarget{Label: label, Color: color, Depth: depth}
	if err := t.Check(); err != nil {
		t.Release()
		return nil, err
	}
	return t, nil
}

// resize allocates the shadow framebuffer once and the full-resolution framebuffer whenever
// size differs from the size it was last allocated at. On failure nothing is left allocated
// at a stale size.
func (p *Pipeline) resize(size [2]int) error {
	if p.shadow == nil {
		n := p.cfg.ShadowMapSize
		shadow, err := p.allocate("shadow", n, n)
		if err != nil {
			return err
		}
		p.shadow = shadow
		log.Printf("[Gateway] shadow framebuffer %dx%d", n, n)
	}

	if p.target != nil && p.targetSize == size {
		return nil
	}
	p.target.Release()
	p.target = nil
	p.targetSize = [2]int{}

	target, err := p.allocate("target", size[0], size[1])
	if err != nil {
		return err
	}
	p.target = target
	p.targetSize = size
	p.reallocations++
	log.Printf("[Gateway] target framebuffer %dx%d", size[0], size[1])
	return nil
}

// Draw renders one frame. It panics when a framebuffer is incomplete or a pass fails,
// both of which are programming errors.
//
// Parameters:
//   - stage: the scene and rig to draw
//   - state: the puzzle state providing the live and target poses
//   - image: the current target image
//   - size: the drawable size in pixels
func (p *Pipeline) Draw(stage *Stage, state *puzzle.State, image renderer.Texture, size [2]int) {
	if err := p.resize(size); err != nil {
		panic(fmt.Errorf("gateway framebuffers: %w", err))
	}
	if err := p.draw(stage, state, image, size); err != nil {
		p.renderer.EndPass()
		panic(fmt.Errorf("gateway frame: %w", err))
	}
}

func (p *Pipeline) draw(stage *Stage, state *puzzle.State, image renderer.Texture, size [2]int) error {
	sc, rig := stage.Scene, stage.Rig
	rig.Camera.SetAspect(float32(size[0]) / float32(size[1]))
	offscreen := renderer.Color{R: p.cfg.OffscreenClear[0], G: p.cfg.OffscreenClear[1], B: p.cfg.OffscreenClear[2], A: p.cfg.OffscreenClear[3]}
	screen := renderer.Color{R: p.cfg.ScreenClear[0], G: p.cfg.ScreenClear[1], B: p.cfg.ScreenClear[2], A: p.cfg.ScreenClear[3]}

	// Live shadow pass.
	spotWorldToLocal := sc.WorldToLocal(rig.SpotNode)
	spotProjection := rig.Spot.Projection()
	if err := p.depthPass("live shadow", p.shadow, offscreen, sc, spotProjection.Mul4(spotWorldToLocal)); err != nil {
		return err
	}

	// Target pass: pose the scene as solved, render its depth, capture the camera and restore.
	targetAngle, targetTime := state.TargetPose()
	state.ApplyPose(targetAngle, targetTime)
	p.targetView = TargetView{
		Projection:   rig.Camera.Projection(),
		WorldToLocal: sc.WorldToLocal(rig.CameraNode),
		ToWorld:      sc.LocalToWorld(rig.CameraNode),
	}
	err := p.depthPass("target shadow", p.target, offscreen, sc, p.targetView.Projection.Mul4(p.targetView.WorldToLocal))
	state.ApplyPose(state.View.Angle, state.View.Time)
	if err != nil {
		return err
	}

	// Composite pass.
	lighting := p.lighting(sc, rig, spotProjection, spotWorldToLocal)
	if err := p.renderer.SetLighting(resources.PipelineLit, lighting.Marshal()); err != nil {
		return err
	}
	targetLighting := light.GPUTargetLighting{
		GPULighting:     lighting,
		WorldToTarget:   light.ShadowUVMatrix(p.targetView.Projection, p.targetView.WorldToLocal, p.cfg.ShadowBias),
		TargetPosition:  p.targetView.Position(),
		TargetDirection: p.targetView.Direction(),
		ScreenSize:      mgl32.Vec2{float32(size[0]), float32(size[1])},
	}
	if err := p.renderer.SetLighting(resources.PipelineShady, targetLighting.Marshal()); err != nil {
		return err
	}
	p.renderer.BindFrameTextures(renderer.FrameTextures{
		ShadowDepth: p.shadow.Depth,
		TargetDepth: p.target.Depth,
		Image:       image,
	})

	if err := p.renderer.BeginPass(renderer.PassDescriptor{Label: "composite", Clear: &screen}); err != nil {
		return err
	}
	cameraToClip := rig.Camera.Projection().Mul4(sc.WorldToLocal(rig.CameraNode))
	if err := sc.Draw(p.renderer, cameraToClip, scene.PassDefault); err != nil {
		return err
	}
	p.renderer.EndPass()
	return nil
}

func (p *Pipeline) depthPass(label string, target *renderer.RenderTarget, clearColor renderer.Color, sc scene.Scene, worldToClip mgl32.Mat4) error {
	if err := p.renderer.BeginPass(renderer.PassDescriptor{Label: label, Target: target, Clear: &clearColor}); err != nil {
		return err
	}
	if err := sc.Draw(p.renderer, worldToClip, scene.PassShadow); err != nil {
		return err
	}
	p.renderer.EndPass()
	return nil
}

// lighting builds the block shared by both mesh pipelines: no sun, sky ambient from +Z and the spot.
func (p *Pipeline) lighting(sc scene.Scene, rig scene.Rig, spotProjection, spotWorldToLocal mgl32.Mat4) light.GPULighting {
	spotToWorld := sc.LocalToWorld(rig.SpotNode)
	outer, inner := rig.Spot.Cone()
	return light.GPULighting{
		SunColor:      mgl32.Vec3{},
		SunDirection:  mgl32.Vec3{0, 0, -1},
		SkyColor:      mgl32.Vec3(p.cfg.SkyColor),
		SkyDirection:  mgl32.Vec3{0, 0, 1},
		WorldToSpot:   light.ShadowUVMatrix(spotProjection, spotWorldToLocal, p.cfg.ShadowBias),
		SpotPosition:  spotToWorld.Mul4x1(origin).Vec3(),
		SpotDirection: spotToWorld.Mul4x1(forward).Vec3().Normalize(),
		SpotColor:     rig.Spot.Color(),
		SpotOuter:     outer,
		SpotInner:     inner,
	}
}

// Release frees both framebuffers.
func (p *Pipeline) Release() {
	p.shadow.Release()
	p.target.Release()
	p.shadow, p.target = nil, nil
	p.targetSize = [2]int{}
}
