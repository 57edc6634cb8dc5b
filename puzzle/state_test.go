package puzzle_test

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/Carmen-Shannon/stonegate/common"
	"github.com/Carmen-Shannon/stonegate/engine/camera"
	"github.com/Carmen-Shannon/stonegate/engine/config"
	"github.com/Carmen-Shannon/stonegate/engine/light"
	"github.com/Carmen-Shannon/stonegate/engine/scene"
	"github.com/Carmen-Shannon/stonegate/puzzle"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

type fixture struct {
	scene  scene.Scene
	rig    scene.Rig
	flag   *puzzle.ResetFlag
	state  *puzzle.State
	bodies []scene.NodeID
}

func newFixture(t *testing.T, n int) *fixture {
	t.Helper()
	sc := scene.NewScene("puzzle", scene.WithDrawWorkers(1))
	add := func(name string, parent scene.NodeID) scene.NodeID {
		id, err := sc.AddNode(scene.NewTransform(name, parent))
		if err != nil {
			t.Fatal(err)
		}
		return id
	}
	cp := add(scene.CameraParentName, scene.NoNode)
	sp := add(scene.SpotParentName, scene.NoNode)
	if err := sc.AttachCamera(add(scene.CameraName, cp), camera.NewCamera()); err != nil {
		t.Fatal(err)
	}
	if err := sc.AttachLight(add(scene.SpotName, sp), light.NewLight(light.WithType(light.LightTypeSpot))); err != nil {
		t.Fatal(err)
	}
	rig, err := sc.FindRig()
	if err != nil {
		t.Fatal(err)
	}

	f := &fixture{scene: sc, rig: rig, flag: puzzle.NewResetFlag()}
	for i := 0; i < n; i++ {
		f.bodies = append(f.bodies, add("Stone", scene.NoNode))
	}
	f.state, err = puzzle.NewState(sc, rig, f.bodies, 4, f.flag, config.Default().Puzzle, puzzle.WithRand(rand.New(rand.NewSource(7))))
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func (f *fixture) setup(current, target [2]float32) {
	f.state.Target.Time, f.state.Target.Angle = target[0], target[1]
	f.state.View.Time, f.state.View.Angle = current[0], current[1]
}

func TestNewStateEmptyPools(t *testing.T) {
	sc := scene.NewScene("empty", scene.WithDrawWorkers(1))
	id, _ := sc.AddNode(scene.NewTransform("Stone", scene.NoNode))
	tests := []struct {
		name   string
		bodies []scene.NodeID
		images int
	}{
		{"no bodies", nil, 3},
		{"no images", []scene.NodeID{id}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := puzzle.NewState(sc, scene.Rig{}, tt.bodies, tt.images, puzzle.NewResetFlag(), config.Default().Puzzle)
			if !errors.Is(err, puzzle.ErrEmptyPool) {
				t.Fatalf("got %v, want ErrEmptyPool", err)
			}
		})
	}
}

func TestResetRanges(t *testing.T) {
	f := newFixture(t, 60)
	for i := 0; i < 20; i++ {
		f.state.Reset()
		s := f.state
		if s.View.Time < 0 || s.View.Time > 1 || s.Target.Time < 0 || s.Target.Time > 1 {
			t.Fatalf("times out of range: view %v target %v", s.View.Time, s.Target.Time)
		}
		if s.Target.Angle < 0 || s.Target.Angle >= common.TwoPi {
			t.Fatalf("target angle %v out of [0, 2pi)", s.Target.Angle)
		}
		if s.Target.Image < 0 || s.Target.Image >= 4 {
			t.Fatalf("target image %d out of range", s.Target.Image)
		}
		if len(s.Bodies) != 60 {
			t.Fatalf("got %d bodies, want 60", len(s.Bodies))
		}
		for _, b := range s.Bodies {
			if math32.Abs(b.Axis.Len()-1) > 1e-5 {
				t.Fatalf("body axis %v is not unit length", b.Axis)
			}
			if b.Velocity < 0 || b.Velocity > 6 {
				t.Fatalf("velocity %v out of range", b.Velocity)
			}
			node, _ := f.scene.Node(b.Node)
			if node.Scale != (mgl32.Vec3{0.03, 0.03, 0.03}) {
				t.Fatalf("body scale %v", node.Scale)
			}
			p := node.Position
			if p.X() < -4 || p.X() > 4 || p.Y() < -4 || p.Y() > 4 || p.Z() < 0 || p.Z() > 4 {
				t.Fatalf("body position %v out of bounds", p)
			}
		}
	}
}

func TestMatches(t *testing.T) {
	tests := []struct {
		name    string
		current [2]float32
		target  [2]float32
		want    bool
	}{
		{"inside both tolerances", [2]float32{0.32, 1.05}, [2]float32{0.30, 1.0}, true},
		{"time too far", [2]float32{0.40, 1.05}, [2]float32{0.30, 1.0}, false},
		{"angle too far", [2]float32{0.30, 1.2}, [2]float32{0.30, 1.0}, false},
		{"time exactly at tolerance", [2]float32{0.05, 1.0}, [2]float32{0, 1.0}, false},
		{"time just beyond tolerance", [2]float32{0.30, 1.0}, [2]float32{0.25, 1.0}, false},
		{"time just inside tolerance", [2]float32{0.049, 1.0}, [2]float32{0, 1.0}, true},
		{"angle exactly at tolerance", [2]float32{0.5, 0.1}, [2]float32{0.5, 0}, false},
		{"angle beyond tolerance", [2]float32{0.5, 2.11}, [2]float32{0.5, 2.0}, false},
		{"angle just inside tolerance", [2]float32{0.5, 0.099}, [2]float32{0.5, 0}, true},
		{"accumulated turns", [2]float32{0.5, 1.03 + 6*common.TwoPi}, [2]float32{0.5, 1.0}, true},
		{"negative turns", [2]float32{0.5, 1.03 - 3*common.TwoPi}, [2]float32{0.5, 1.0}, true},
		{"across zero", [2]float32{0.5, -0.04}, [2]float32{0.5, common.TwoPi - 0.02}, true},
	}
	f := newFixture(t, 1)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f.setup(tt.current, tt.target)
			if got := f.state.Matches(); got != tt.want {
				t.Fatalf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSnapMatchScenario(t *testing.T) {
	f := newFixture(t, 5)
	f.setup([2]float32{0.30, 1.0}, [2]float32{0.30, 1.0})
	win := [2]int{800, 600}

	// Drag right and down: angle +0.05 rad, time +0.02.
	if !f.state.HandleInput(common.MouseMotion(8, 6, common.MouseButtonLeft), win) {
		t.Fatal("left drag not consumed")
	}
	if math32.Abs(f.state.View.Angle-1.05) > 1e-5 || math32.Abs(f.state.View.Time-0.32) > 1e-5 {
		t.Fatalf("after drag view = %+v", f.state.View)
	}
	if f.state.Update(0.016) {
		t.Fatal("update without snap requested a transition")
	}

	f.state.HandleInput(common.KeyDown(common.KeySpace, false), win)
	if !f.state.Update(0.016) {
		t.Fatal("expected a match")
	}
	if f.state.View.Time != 0.30 || f.state.View.Angle != 1.0 {
		t.Fatalf("view not snapped to target: %+v", f.state.View)
	}
	if f.state.Controls.Snap {
		t.Fatal("snap not cleared")
	}

	node, _ := f.scene.Node(f.rig.CameraParent)
	want := mgl32.QuatRotate(1.0, mgl32.Vec3{0, 0, 1})
	if !node.Rotation.ApproxEqualThreshold(want, 1e-5) {
		t.Fatalf("camera parent rotation %v, want %v", node.Rotation, want)
	}
}

func TestSnapMissClearsSnap(t *testing.T) {
	f := newFixture(t, 5)
	f.setup([2]float32{0.40, 1.05}, [2]float32{0.30, 1.0})
	f.state.HandleInput(common.KeyDown(common.KeySpace, false), [2]int{800, 600})
	if f.state.Update(0.016) {
		t.Fatal("unexpected match")
	}
	if f.state.Controls.Snap {
		t.Fatal("snap not cleared after a miss")
	}
	if f.state.View.Time != 0.40 {
		t.Fatalf("view time changed on a miss: %v", f.state.View.Time)
	}
}

func TestHandleInput(t *testing.T) {
	win := [2]int{1000, 500}
	tests := []struct {
		name     string
		evt      common.Event
		win      [2]int
		handled  bool
		snap     bool
		wantView puzzle.View
	}{
		{"space down", common.KeyDown(common.KeySpace, false), win, true, true, puzzle.View{Time: 0.5}},
		{"space repeat", common.KeyDown(common.KeySpace, true), win, false, false, puzzle.View{Time: 0.5}},
		{"space up", common.KeyUp(common.KeySpace), win, true, false, puzzle.View{Time: 0.5}},
		{"other key", common.KeyDown(common.KeyR, false), win, false, false, puzzle.View{Time: 0.5}},
		{"left drag", common.MouseMotion(100, -50, common.MouseButtonLeft), win, true, false, puzzle.View{Angle: 0.5, Time: 0.3}},
		{"time clamps high", common.MouseMotion(0, 500, common.MouseButtonLeft), win, true, false, puzzle.View{Time: 1}},
		{"time clamps low", common.MouseMotion(0, -500, common.MouseButtonLeft), win, true, false, puzzle.View{Time: 0}},
		{"right drag spins", common.MouseMotion(200, 30, common.MouseButtonRight), win, true, false, puzzle.View{Time: 0.5, Spin: 1}},
		{"hover", common.MouseMotion(10, 10, 0), win, false, false, puzzle.View{Time: 0.5}},
		{"zero window", common.MouseMotion(10, 10, common.MouseButtonLeft), [2]int{0, 0}, false, false, puzzle.View{Time: 0.5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, 1)
			f.state.View = puzzle.View{Time: 0.5}
			if got := f.state.HandleInput(tt.evt, tt.win); got != tt.handled {
				t.Fatalf("handled = %v, want %v", got, tt.handled)
			}
			if f.state.Controls.Snap != tt.snap {
				t.Fatalf("snap = %v, want %v", f.state.Controls.Snap, tt.snap)
			}
			v := f.state.View
			if math32.Abs(v.Angle-tt.wantView.Angle) > 1e-5 || math32.Abs(v.Time-tt.wantView.Time) > 1e-5 || math32.Abs(v.Spin-tt.wantView.Spin) > 1e-5 {
				t.Fatalf("view = %+v, want %+v", v, tt.wantView)
			}
		})
	}
}

func TestSnapOncePerKeyEdge(t *testing.T) {
	f := newFixture(t, 1)
	f.setup([2]float32{0.9, 3}, [2]float32{0.1, 0.5})
	win := [2]int{800, 600}

	f.state.HandleInput(common.KeyDown(common.KeySpace, false), win)
	f.state.Update(0.016)
	for i := 0; i < 3; i++ {
		f.state.HandleInput(common.KeyDown(common.KeySpace, true), win)
		f.state.Update(0.016)
		if f.state.Controls.Snap {
			t.Fatal("repeat events set snap")
		}
	}
}

func TestSnapKeyRelease(t *testing.T) {
	f := newFixture(t, 1)
	f.setup([2]float32{0.9, 3}, [2]float32{0.1, 0.5})
	win := [2]int{800, 600}

	tests := []struct {
		name     string
		evt      common.Event
		consumed bool
		snap     bool
	}{
		{"space press", common.KeyDown(common.KeySpace, false), true, true},
		{"other release", common.KeyUp(common.KeyR), false, true},
		{"space release", common.KeyUp(common.KeySpace), true, false},
		{"space release again", common.KeyUp(common.KeySpace), true, false},
	}
	for _, tt := range tests {
		if got := f.state.HandleInput(tt.evt, win); got != tt.consumed {
			t.Fatalf("%s: consumed = %v, want %v", tt.name, got, tt.consumed)
		}
		if f.state.Controls.Snap != tt.snap {
			t.Fatalf("%s: snap = %v, want %v", tt.name, f.state.Controls.Snap, tt.snap)
		}
	}
}

func TestResetFlag(t *testing.T) {
	f := newFixture(t, 3)
	f.state.View.Time = 7
	f.flag.Set()
	if !f.flag.IsSet() {
		t.Fatal("flag not set")
	}
	f.state.Update(0.016)
	if f.flag.IsSet() {
		t.Fatal("flag still set after update")
	}
	if f.state.View.Time < 0 || f.state.View.Time > 1 {
		t.Fatalf("state not reset: view time %v", f.state.View.Time)
	}
	if f.flag.TakeAndClear() {
		t.Fatal("TakeAndClear on a clear flag returned true")
	}
}

func TestApplyPoseRotatesBodies(t *testing.T) {
	f := newFixture(t, 4)
	f.state.ApplyPose(2, 0.25)
	for _, b := range f.state.Bodies {
		node, _ := f.scene.Node(b.Node)
		want := mgl32.QuatRotate(0.25*b.Velocity+b.Phase, b.Axis)
		if !node.Rotation.ApproxEqualThreshold(want, 1e-5) {
			t.Fatalf("body rotation %v, want %v", node.Rotation, want)
		}
	}
}
