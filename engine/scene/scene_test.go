package scene_test

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/stonegate/engine/camera"
	"github.com/Carmen-Shannon/stonegate/engine/light"
	"github.com/Carmen-Shannon/stonegate/engine/model"
	"github.com/Carmen-Shannon/stonegate/engine/renderer"
	"github.com/Carmen-Shannon/stonegate/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/stonegate/engine/renderer/renderertest"
	"github.com/Carmen-Shannon/stonegate/engine/scene"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

func mustNode(t *testing.T, s scene.Scene, tr scene.Transform) scene.NodeID {
	t.Helper()
	id, err := s.AddNode(tr)
	if err != nil {
		t.Fatalf("AddNode(%q): %v", tr.Name, err)
	}
	return id
}

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

func TestLocalToWorldComposesParents(t *testing.T) {
	s := scene.NewScene("test")

	parent := scene.NewTransform("CameraParent", scene.NoNode)
	parent.Rotation = mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{0, 0, 1})
	pid := mustNode(t, s, parent)

	child := scene.NewTransform("Camera", pid)
	child.Position = mgl32.Vec3{1, 0, 0}
	child.Scale = mgl32.Vec3{2, 2, 2}
	cid := mustNode(t, s, child)

	origin := s.LocalToWorld(cid).Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	if !near(origin[:], []float32{0, 1, 0, 1}, 1e-5) {
		t.Fatalf("child origin = %v, want (0,1,0)", origin)
	}

	roundTrip := s.WorldToLocal(cid).Mul4(s.LocalToWorld(cid))
	ident := mgl32.Ident4()
	if !near(roundTrip[:], ident[:], 1e-5) {
		t.Fatalf("WorldToLocal * LocalToWorld = %v, want identity", roundTrip)
	}

	if _, err := s.AddNode(scene.NewTransform("orphan", 99)); !errors.Is(err, scene.ErrUnknownNode) {
		t.Fatalf("AddNode with unknown parent: got %v", err)
	}
}

func buildRig(t *testing.T, s scene.Scene, spotType light.LightType, extraCamera bool) {
	t.Helper()
	cp := mustNode(t, s, scene.NewTransform(scene.CameraParentName, scene.NoNode))
	sp := mustNode(t, s, scene.NewTransform(scene.SpotParentName, scene.NoNode))
	cam := mustNode(t, s, scene.NewTransform(scene.CameraName, cp))
	spot := mustNode(t, s, scene.NewTransform(scene.SpotName, sp))
	if err := s.AttachCamera(cam, camera.NewCamera()); err != nil {
		t.Fatal(err)
	}
	if extraCamera {
		if err := s.AttachCamera(cam, camera.NewCamera()); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.AttachLight(spot, light.NewLight(light.WithType(spotType))); err != nil {
		t.Fatal(err)
	}
}

func TestFindRig(t *testing.T) {
	tests := []struct {
		name  string
		build func(t *testing.T, s scene.Scene)
		want  error
	}{
		{
			name:  "complete",
			build: func(t *testing.T, s scene.Scene) { buildRig(t, s, light.LightTypeSpot, false) },
		},
		{
			name:  "empty scene",
			build: func(t *testing.T, s scene.Scene) {},
			want:  scene.ErrMissingNode,
		},
		{
			name: "two camera parents",
			build: func(t *testing.T, s scene.Scene) {
				buildRig(t, s, light.LightTypeSpot, false)
				mustNode(t, s, scene.NewTransform(scene.CameraParentName, scene.NoNode))
			},
			want: scene.ErrDuplicateNode,
		},
		{
			name:  "two cameras",
			build: func(t *testing.T, s scene.Scene) { buildRig(t, s, light.LightTypeSpot, true) },
			want:  scene.ErrDuplicateNode,
		},
		{
			name:  "point lamp on spot node",
			build: func(t *testing.T, s scene.Scene) { buildRig(t, s, light.LightTypePoint, false) },
			want:  scene.ErrNotSpotLamp,
		},
		{
			name: "no lamp",
			build: func(t *testing.T, s scene.Scene) {
				cp := mustNode(t, s, scene.NewTransform(scene.CameraParentName, scene.NoNode))
				mustNode(t, s, scene.NewTransform(scene.SpotParentName, scene.NoNode))
				cam := mustNode(t, s, scene.NewTransform(scene.CameraName, cp))
				if err := s.AttachCamera(cam, camera.NewCamera()); err != nil {
					t.Fatal(err)
				}
			},
			want: scene.ErrMissingNode,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := scene.NewScene(tt.name)
			tt.build(t, s)
			rig, err := s.FindRig()
			if tt.want == nil {
				if err != nil {
					t.Fatalf("FindRig: %v", err)
				}
				if rig.Camera == nil || rig.Spot == nil || rig.CameraParent == scene.NoNode || rig.SpotParent == scene.NoNode {
					t.Fatalf("incomplete rig %+v", rig)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("FindRig error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestDrawIssuesProgramsInOrder(t *testing.T) {
	b := renderertest.NewBackend()
	r := renderer.NewRenderer(b, 64, 64)
	if err := r.RegisterPipelines(
		pipeline.NewPipeline("depth", pipeline.PipelineKindDepth, pipeline.WithSource("x")),
		pipeline.NewPipeline("lit", pipeline.PipelineKindMesh, pipeline.WithSource("x")),
	); err != nil {
		t.Fatal(err)
	}

	s := scene.NewScene("draw", scene.WithDrawWorkers(2))
	mdl := model.NewModel(model.WithName("Ground"), model.WithMeshData(model.Ground(1, 6, 1)))
	if err := mdl.Upload(r); err != nil {
		t.Fatal(err)
	}

	shadowOnly := &scene.Program{PipelineKey: "depth"}
	lit := &scene.Program{PipelineKey: "lit"}
	for i := 0; i < 5; i++ {
		tr := scene.NewTransform("obj", scene.NoNode)
		tr.Position = mgl32.Vec3{float32(i), 0, 0}
		node := mustNode(t, s, tr)
		obj := scene.Object{Node: node, Model: mdl}
		obj.Programs[scene.PassShadow] = shadowOnly
		if i%2 == 0 {
			obj.Programs[scene.PassDefault] = lit
		}
		if _, err := s.AddObject(obj); err != nil {
			t.Fatal(err)
		}
	}

	target := &renderer.RenderTarget{Label: "fb"}
	target.Color, _ = r.CreateTexture(renderer.TextureDescriptor{Label: "c", Width: 4, Height: 4, RenderAttachment: true})
	target.Depth, _ = r.CreateTexture(renderer.TextureDescriptor{Label: "d", Width: 4, Height: 4, Format: renderer.TextureFormatDepth32, RenderAttachment: true})

	for _, tc := range []struct {
		pass  scene.PassType
		ids   []int
		label string
	}{
		{scene.PassShadow, []int{0, 1, 2, 3, 4}, "shadow"},
		{scene.PassDefault, []int{0, 2, 4}, "default"},
	} {
		if err := r.BeginPass(renderer.PassDescriptor{Label: tc.label, Target: target}); err != nil {
			t.Fatal(err)
		}
		if err := s.Draw(r, mgl32.Ident4(), tc.pass); err != nil {
			t.Fatalf("Draw: %v", err)
		}
		r.EndPass()

		draws := b.Passes[len(b.Passes)-1].Draws
		if len(draws) != len(tc.ids) {
			t.Fatalf("%s: %d draws, want %d", tc.label, len(draws), len(tc.ids))
		}
		for i, d := range draws {
			if d.ObjectID != tc.ids[i] {
				t.Errorf("%s: draw %d has object %d, want %d", tc.label, i, d.ObjectID, tc.ids[i])
			}
			if len(d.Uniforms) != scene.GPUObjectUniformsSize {
				t.Errorf("%s: uniform block is %d bytes", tc.label, len(d.Uniforms))
			}
		}
	}
}
