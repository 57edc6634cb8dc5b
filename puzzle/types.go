package puzzle

import (
	"github.com/Carmen-Shannon/stonegate/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
)

// Body is one tumbling stone. Its node belongs to the scene; the body only writes the node's rotation.
type Body struct {
	Node     scene.NodeID
	Velocity float32
	Phase    float32
	Axis     mgl32.Vec3
}

// Rotation returns the body's orientation at time t.
func (b Body) Rotation(t float32) mgl32.Quat {
	return mgl32.QuatRotate(t*b.Velocity+b.Phase, b.Axis)
}

// Target is the solved configuration the player is looking for.
type Target struct {
	// Time is the target time value in [0, 1].
	Time float32

	// Angle is the target viewpoint angle in radians, in [0, 2pi).
	Angle float32

	// Image indexes the registry's target image pool.
	Image int
}

// Controls holds input edges consumed by the next update.
type Controls struct {
	Snap bool
}

// View holds the player-controlled parameters.
type View struct {
	// Angle is the viewpoint angle in radians. It is never wrapped; comparisons wrap it.
	Angle float32

	// Time is the scrubbed time value, always in [0, 1].
	Time float32

	// Spin is the spotlight angle in radians.
	Spin float32
}

// ResetFlag is the request a transition hands back to the puzzle that spawned it.
// The transition sets it once when its animation ends; the puzzle takes and clears it
// during its next update.
type ResetFlag struct {
	set bool
}

// NewResetFlag returns a cleared flag.
func NewResetFlag() *ResetFlag {
	return &ResetFlag{}
}

// Set requests a reset.
func (f *ResetFlag) Set() {
	f.set = true
}

// IsSet reports whether a reset is pending without clearing it.
func (f *ResetFlag) IsSet() bool {
	return f.set
}

// TakeAndClear reports whether a reset was pending and clears the request.
func (f *ResetFlag) TakeAndClear() bool {
	was := f.set
	f.set = false
	return was
}
