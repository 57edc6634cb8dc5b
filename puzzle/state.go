// Package puzzle holds the puzzle state: the player's viewpoint and time parameters, the
// randomized target configuration, the field of tumbling stones and the match test.
// It never touches the GPU; it only writes rotations of scene nodes it is given handles to.
package puzzle

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/Carmen-Shannon/stonegate/common"
	"github.com/Carmen-Shannon/stonegate/engine/config"
	"github.com/Carmen-Shannon/stonegate/engine/scene"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// ErrEmptyPool is returned when a random choice would be drawn from an empty pool.
var ErrEmptyPool = errors.New("empty pool")

var zAxis = mgl32.Vec3{0, 0, 1}

// State is the puzzle state of one gateway.
type State struct {
	Bodies   []Body
	Target   Target
	View     View
	Controls Controls

	scene  scene.Scene
	rig    scene.Rig
	cfg    config.Puzzle
	images int
	flag   *ResetFlag
	rng    *rand.Rand
}

// NewState creates the puzzle state over the given scene nodes and resets it.
//
// Parameters:
//   - sc: the scene that owns every node referenced by the state
//   - rig: the camera and spotlight nodes of sc
//   - bodies: the stone nodes, one body per node
//   - images: the size of the target image pool
//   - flag: the reset flag shared with transitions
//   - cfg: the puzzle settings
//   - options: variadic list of StateBuilderOption functions
//
// Returns:
//   - *State: the reset state
//   - error: ErrEmptyPool when there are no bodies or no images
func NewState(sc scene.Scene, rig scene.Rig, bodies []scene.NodeID, images int, flag *ResetFlag, cfg config.Puzzle, options ...StateBuilderOption) (*State, error) {
	if len(bodies) == 0 {
		return nil, fmt.Errorf("%w: no rotating bodies", ErrEmptyPool)
	}
	if images <= 0 {
		return nil, fmt.Errorf("%w: no target images", ErrEmptyPool)
	}

	s := &State{
		Bodies: make([]Body, len(bodies)),
		scene:  sc,
		rig:    rig,
		cfg:    cfg,
		images: images,
		flag:   flag,
	}
	for i, id := range bodies {
		s.Bodies[i].Node = id
	}
	for _, opt := range options {
		opt(s)
	}
	if s.rng == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		s.rng = rand.New(rand.NewSource(seed))
	}

	s.Reset()
	return s, nil
}

func (s *State) uniform(lo, hi float32) float32 {
	return lo + s.rng.Float32()*(hi-lo)
}

// degrees draws an angle in [0, 360) and returns it in radians.
func (s *State) degrees() float32 {
	return mgl32.DegToRad(s.uniform(0, 360))
}

// Reset redraws the target, the view and every body.
func (s *State) Reset() {
	s.Target = Target{
		Time:  s.rng.Float32(),
		Angle: s.degrees(),
		Image: s.rng.Intn(s.images),
	}
	s.View.Angle = s.degrees()
	s.View.Time = s.rng.Float32()
	s.Controls = Controls{}

	b := s.cfg.Bounds
	scale := s.cfg.StoneScale
	for i := range s.Bodies {
		body := &s.Bodies[i]
		s.scene.SetPosition(body.Node, mgl32.Vec3{
			s.uniform(b.MinX, b.MaxX),
			s.uniform(b.MinY, b.MaxY),
			s.uniform(b.MinZ, b.MaxZ),
		})
		s.scene.SetScale(body.Node, mgl32.Vec3{scale, scale, scale})
		body.Axis = s.randomAxis()
		// The phase is drawn in degrees and applied as radians.
		body.Phase = s.uniform(0, 360)
		body.Velocity = s.uniform(0, s.cfg.MaxVelocity)
	}
	log.Printf("[Puzzle] reset: target time %.2f angle %.2f image %d", s.Target.Time, s.Target.Angle, s.Target.Image)
}

func (s *State) randomAxis() mgl32.Vec3 {
	for {
		v := mgl32.Vec3{s.uniform(-1, 1), s.uniform(-1, 1), s.uniform(-1, 1)}
		if l := v.Len(); l > 1e-3 {
			return v.Mul(1 / l)
		}
	}
}

// HandleInput applies a key or drag event to the controls and the view.
//
// Parameters:
//   - evt: the input event
//   - windowSize: the window size the drag deltas are relative to
//
// Returns:
//   - bool: true if the event was consumed
func (s *State) HandleInput(evt common.Event, windowSize [2]int) bool {
	switch evt.Kind {
	case common.EventKeyDown:
		if evt.Key != common.KeySpace || evt.Repeat {
			return false
		}
		s.Controls.Snap = true
		return true

	case common.EventKeyUp:
		if evt.Key != common.KeySpace {
			return false
		}
		s.Controls.Snap = false
		return true

	case common.EventMouseMotion:
		if windowSize[0] <= 0 || windowSize[1] <= 0 {
			return false
		}
		w, h := float32(windowSize[0]), float32(windowSize[1])
		switch {
		case evt.Buttons.Has(common.MouseButtonLeft):
			s.View.Angle += s.cfg.DragAngleScale * evt.RelX / w
			s.View.Time = common.Clamp(s.View.Time+s.cfg.DragTimeScale*evt.RelY/h, 0, 1)
			return true
		case evt.Buttons.Has(common.MouseButtonRight):
			s.View.Spin += s.cfg.DragAngleScale * evt.RelX / w
			return true
		}
	}
	return false
}

// Update applies a pending reset, poses the scene from the view and evaluates a pending snap.
//
// Parameters:
//   - dt: the elapsed time in seconds (unused: the puzzle only moves under player input)
//
// Returns:
//   - bool: true if the snap matched and a transition should start
func (s *State) Update(dt float32) bool {
	if s.flag != nil && s.flag.TakeAndClear() {
		s.Reset()
	}

	s.scene.SetRotation(s.rig.SpotParent, mgl32.QuatRotate(s.View.Spin, zAxis))
	s.ApplyPose(s.View.Angle, s.View.Time)

	if !s.Controls.Snap {
		return false
	}
	s.Controls.Snap = false
	if !s.Matches() {
		return false
	}
	s.View.Time = s.Target.Time
	s.View.Angle = s.Target.Angle
	s.ApplyPose(s.View.Angle, s.View.Time)
	return true
}

// Matches reports whether the view is within tolerance of the target.
func (s *State) Matches() bool {
	if math32.Abs(s.View.Time-s.Target.Time) >= s.cfg.TimeTolerance {
		return false
	}
	return common.AngularDistance(common.WrapAngle(s.View.Angle), s.Target.Angle) < s.cfg.AngleTolerance
}

// ApplyPose rotates the camera parent to angle and every body to time t.
//
// Parameters:
//   - angle: the viewpoint angle in radians
//   - t: the time value
func (s *State) ApplyPose(angle, t float32) {
	s.scene.SetRotation(s.rig.CameraParent, mgl32.QuatRotate(angle, zAxis))
	for _, b := range s.Bodies {
		s.scene.SetRotation(b.Node, b.Rotation(t))
	}
}

// TargetPose returns the viewpoint angle and time of the solved configuration.
func (s *State) TargetPose() (angle, t float32) {
	return s.Target.Angle, s.Target.Time
}
