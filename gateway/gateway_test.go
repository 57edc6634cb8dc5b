package gateway

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/Carmen-Shannon/stonegate/common"
	"github.com/Carmen-Shannon/stonegate/engine/config"
	"github.com/Carmen-Shannon/stonegate/engine/light"
	"github.com/Carmen-Shannon/stonegate/engine/mode"
	"github.com/Carmen-Shannon/stonegate/engine/renderer"
	"github.com/Carmen-Shannon/stonegate/engine/renderer/renderertest"
	"github.com/Carmen-Shannon/stonegate/engine/resources"
	"github.com/Carmen-Shannon/stonegate/engine/scene"
	"github.com/Carmen-Shannon/stonegate/transition"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

type recordedSounds struct {
	matches, resets int
}

func (s *recordedSounds) PlayMatch() { s.matches++ }
func (s *recordedSounds) PlayReset() { s.resets++ }

// near reports whether every element of got is within tol of want.
func near(got, want []float32, tol float32) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if math32.Abs(got[i]-want[i]) > tol {
			return false
		}
	}
	return true
}

func quatElems(q mgl32.Quat) []float32 {
	return []float32{q.W, q.V[0], q.V[1], q.V[2]}
}

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Puzzle.FieldSize = 12
	cfg.Render.ImageSize = 8
	cfg.Render.MaterialResolution = 8
	return cfg
}

func newTestMode(t *testing.T, r renderer.Renderer) (*Mode, *recordedSounds) {
	t.Helper()
	cfg := testConfig()
	reg, err := resources.NewRegistry(r, cfg, resources.WithStoneVariants(2), resources.WithWorkers(1))
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	sounds := &recordedSounds{}
	m, err := NewMode(r, reg, cfg, WithSounds(sounds), WithRand(rand.New(rand.NewSource(3))))
	if err != nil {
		t.Fatalf("NewMode: %v", err)
	}
	return m, sounds
}

func drawFrame(t *testing.T, r renderer.Renderer, m mode.Mode, size [2]int) {
	t.Helper()
	if err := r.BeginFrame(); err != nil {
		t.Fatal(err)
	}
	m.Draw(size)
	r.Present()
}

func TestStageLayout(t *testing.T) {
	r := renderer.NewRenderer(renderertest.NewBackend(), 800, 600)
	m, _ := newTestMode(t, r)
	st := m.Stage()

	if len(st.Bodies) != 12 || len(m.State().Bodies) != 12 {
		t.Fatalf("got %d stage bodies and %d puzzle bodies, want 12", len(st.Bodies), len(m.State().Bodies))
	}
	if st.Rig.Spot.Type() != light.LightTypeSpot {
		t.Fatalf("spot lamp type %v", st.Rig.Spot.Type())
	}

	objs := st.Scene.Objects()
	if len(objs) != 14 {
		t.Fatalf("got %d objects, want 14", len(objs))
	}
	if objs[0].Programs[scene.PassShadow] != nil {
		t.Fatal("ground should not cast shadows")
	}
	for _, obj := range objs[2:] {
		if obj.Programs[scene.PassDefault].PipelineKey != resources.PipelineShady {
			t.Fatalf("stone drawn with %q", obj.Programs[scene.PassDefault].PipelineKey)
		}
		if obj.Programs[scene.PassShadow].PipelineKey != resources.PipelineDepth {
			t.Fatalf("stone shadow drawn with %q", obj.Programs[scene.PassShadow].PipelineKey)
		}
	}

	// The camera looks at its focus point down its local -Z axis.
	m.State().ApplyPose(0, 0)
	toWorld := st.Scene.LocalToWorld(st.Rig.CameraNode)
	dir := toWorld.Mul4x1(forward).Vec3().Normalize()
	want := cameraFocus.Sub(cameraPosition).Normalize()
	if !near(dir[:], want[:], 1e-4) {
		t.Fatalf("camera direction %v, want %v", dir, want)
	}
}

func TestPassOrderAndLighting(t *testing.T) {
	be := renderertest.NewBackend()
	r := renderer.NewRenderer(be, 800, 600)
	m, _ := newTestMode(t, r)
	be.Reset()

	drawFrame(t, r, m, [2]int{800, 600})
	if len(be.Passes) != 3 {
		t.Fatalf("got %d passes, want 3", len(be.Passes))
	}
	live, target, composite := be.Passes[0], be.Passes[1], be.Passes[2]

	if live.Target != m.Pipeline().Shadow() || live.Target.Width() != 512 || live.Target.Height() != 512 {
		t.Fatalf("live shadow pass target %+v", live.Target)
	}
	if target.Target != m.Pipeline().Target() || target.Target.Width() != 800 || target.Target.Height() != 600 {
		t.Fatalf("target pass target %+v", target.Target)
	}
	if composite.Target != nil || composite.Clear == nil || *composite.Clear != (renderer.Color{}) {
		t.Fatalf("composite pass target %v clear %v", composite.Target, composite.Clear)
	}
	if *live.Clear != (renderer.Color{R: 1, B: 1}) {
		t.Fatalf("offscreen clear %v", *live.Clear)
	}

	// Ground casts no shadow: arch + 12 stones in the depth passes, all 14 in the composite.
	for _, p := range []*renderertest.Pass{live, target} {
		if len(p.Draws) != 13 {
			t.Fatalf("%s: %d draws, want 13", p.Label, len(p.Draws))
		}
		for _, d := range p.Draws {
			if d.PipelineKey != resources.PipelineDepth {
				t.Fatalf("%s drew with %q", p.Label, d.PipelineKey)
			}
		}
	}
	if len(composite.Draws) != 14 {
		t.Fatalf("composite: %d draws, want 14", len(composite.Draws))
	}
	for _, d := range composite.Draws {
		if d.Frame.ShadowDepth != m.Pipeline().Shadow().Depth || d.Frame.TargetDepth != m.Pipeline().Target().Depth || d.Frame.Image != m.image() {
			t.Fatal("composite draw bound the wrong frame textures")
		}
	}

	if len(be.Lighting[resources.PipelineLit]) != light.GPULightingSize {
		t.Fatalf("lit lighting block %d bytes", len(be.Lighting[resources.PipelineLit]))
	}
	if len(be.Lighting[resources.PipelineShady]) != light.GPUTargetLightingSize {
		t.Fatalf("shady lighting block %d bytes", len(be.Lighting[resources.PipelineShady]))
	}
}

func TestTargetPassRestoresLivePose(t *testing.T) {
	r := renderer.NewRenderer(renderertest.NewBackend(), 800, 600)
	m, _ := newTestMode(t, r)
	st := m.State()
	st.View.Angle, st.View.Time = 0.5, 0.25
	st.Target.Angle, st.Target.Time = 2.0, 0.75
	m.Update(0.016)

	drawFrame(t, r, m, [2]int{800, 600})

	node, _ := m.Stage().Scene.Node(m.Stage().Rig.CameraParent)
	live := mgl32.QuatRotate(0.5, mgl32.Vec3{0, 0, 1})
	if !near(quatElems(node.Rotation), quatElems(live), 1e-5) {
		t.Fatalf("camera parent left at %v", node.Rotation)
	}
	for _, b := range st.Bodies {
		n, _ := m.Stage().Scene.Node(b.Node)
		if !near(quatElems(n.Rotation), quatElems(b.Rotation(0.25)), 1e-5) {
			t.Fatal("body left at the target pose")
		}
	}

	// The captured target camera sits at the camera position rotated by the target angle.
	want := mgl32.QuatRotate(2.0, mgl32.Vec3{0, 0, 1}).Rotate(cameraPosition)
	if got := m.Pipeline().TargetView().Position(); !near(got[:], want[:], 1e-4) {
		t.Fatalf("target camera at %v, want %v", got, want)
	}
	roundTrip := m.Pipeline().TargetView().WorldToLocal.Mul4(m.Pipeline().TargetView().ToWorld)
	ident := mgl32.Ident4()
	if !near(roundTrip[:], ident[:], 1e-4) {
		t.Fatalf("captured world-to-local is not the inverse of to-world: %v", roundTrip)
	}
}

func TestResizeReallocatesOnce(t *testing.T) {
	be := renderertest.NewBackend()
	r := renderer.NewRenderer(be, 800, 600)
	m, _ := newTestMode(t, r)

	drawFrame(t, r, m, [2]int{800, 600})
	drawFrame(t, r, m, [2]int{800, 600})
	before := m.Pipeline().Reallocations()
	shadow := m.Pipeline().Shadow()
	oldTarget := m.Pipeline().Target()

	r.Resize(1920, 1080)
	drawFrame(t, r, m, [2]int{1920, 1080})
	drawFrame(t, r, m, [2]int{1920, 1080})

	if got := m.Pipeline().Reallocations() - before; got != 1 {
		t.Fatalf("resize caused %d reallocations, want 1", got)
	}
	if m.Pipeline().Shadow() != shadow || be.TexturesCreated("shadow depth") != 1 {
		t.Fatal("shadow framebuffer was reallocated")
	}
	if got := m.Pipeline().Target(); got.Width() != 1920 || got.Height() != 1080 {
		t.Fatalf("target framebuffer is %dx%d", got.Width(), got.Height())
	}
	if !oldTarget.Color.(*renderertest.Texture).Released || !oldTarget.Depth.(*renderertest.Texture).Released {
		t.Fatal("old target framebuffer not released")
	}
}

// brokenDepth hands out depth attachments in a color format.
type brokenDepth struct {
	renderer.Renderer
}

func (b brokenDepth) CreateTexture(desc renderer.TextureDescriptor) (renderer.Texture, error) {
	if desc.Format == renderer.TextureFormatDepth32 {
		desc.Format = renderer.TextureFormatRGBA8
	}
	return b.Renderer.CreateTexture(desc)
}

func TestIncompleteFramebufferPanics(t *testing.T) {
	be := renderertest.NewBackend()
	r := renderer.NewRenderer(be, 800, 600)
	m, _ := newTestMode(t, r)
	p := NewPipeline(brokenDepth{r}, testConfig().Render)

	defer func() {
		rec := recover()
		err, ok := rec.(error)
		if !ok || !errors.Is(err, renderer.ErrIncompleteTarget) {
			t.Fatalf("recovered %v, want ErrIncompleteTarget", rec)
		}
		if p.Shadow() != nil || p.Target() != nil || p.Reallocations() != 0 {
			t.Fatal("pipeline kept a half-allocated framebuffer")
		}
		for _, tex := range be.Textures {
			if tex.Desc.RenderAttachment && !tex.Released {
				t.Fatalf("attachment %q not released", tex.Desc.Label)
			}
		}
	}()
	p.Draw(m.Stage(), m.State(), m.image(), [2]int{800, 600})
}

func TestMatchStartsTransitionAndResets(t *testing.T) {
	r := renderer.NewRenderer(renderertest.NewBackend(), 800, 600)
	m, sounds := newTestMode(t, r)
	st := m.State()
	st.Target.Time, st.Target.Angle = 0.30, 1.0
	st.View.Time, st.View.Angle = 0.32, 1.05

	if !m.HandleInput(common.KeyDown(common.KeySpace, false), [2]int{800, 600}) {
		t.Fatal("space not consumed")
	}
	next := m.Update(0.016)
	tr, ok := next.(*transition.Mode)
	if !ok {
		t.Fatalf("Update returned %T, want *transition.Mode", next)
	}
	if sounds.matches != 1 || st.View.Time != 0.30 || st.View.Angle != 1.0 {
		t.Fatalf("matches %d, view %+v", sounds.matches, st.View)
	}
	drawFrame(t, r, tr, [2]int{800, 600})

	var current mode.Mode = tr
	for i := 0; i < 1000 && current != mode.Mode(m); i++ {
		current = current.Update(0.05)
	}
	if current != mode.Mode(m) {
		t.Fatal("transition never returned to the gateway")
	}
	if sounds.resets != 1 || m.flag.IsSet() {
		t.Fatalf("resets %d, flag set %v", sounds.resets, m.flag.IsSet())
	}
	if st.View.Time == 0.30 && st.View.Angle == 1.0 {
		t.Fatal("puzzle was not reset")
	}
}
