// Package transition implements the overlay mode that plays after a solved puzzle: the
// target image is revealed through a window that grows to the full screen, then the
// screen fades out, the puzzle's reset flag is set and control returns to the puzzle.
package transition

import (
	"fmt"

	"github.com/Carmen-Shannon/stonegate/common"
	"github.com/Carmen-Shannon/stonegate/engine/config"
	"github.com/Carmen-Shannon/stonegate/engine/mode"
	"github.com/Carmen-Shannon/stonegate/engine/renderer"
	"github.com/Carmen-Shannon/stonegate/engine/resources"
	"github.com/Carmen-Shannon/stonegate/puzzle"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Phase is the state of a transition.
type Phase int

const (
	// PhaseIdle means no transition is running; the puzzle owns the frame.
	PhaseIdle Phase = iota

	// PhaseRevealing shrinks the reveal bound toward 0.
	PhaseRevealing

	// PhaseFadingOut raises the fade opacity toward 1.
	PhaseFadingOut

	// PhaseDone means the reset flag was set and control went back to the background.
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRevealing:
		return "revealing"
	case PhaseFadingOut:
		return "fading out"
	case PhaseDone:
		return "done"
	default:
		return "unknown"
	}
}

// Mode draws its background mode with the reveal and fade overlays on top.
type Mode struct {
	renderer   renderer.Renderer
	background mode.Mode
	image      renderer.Texture
	flag       *puzzle.ResetFlag
	fadeColor  mgl32.Vec4

	phase  Phase
	bounds float32
	fade   float32
	reveal *gween.Tween
	fadeIn *gween.Tween
}

var _ mode.Mode = &Mode{}

// NewMode starts a transition in the revealing phase.
//
// Parameters:
//   - r: the renderer the overlays are drawn with
//   - background: the mode drawn underneath and handed control when the transition ends
//   - image: the texture revealed by the overlay
//   - flag: the reset flag set when the fade completes
//   - cfg: reveal start, rates and fade color
//
// Returns:
//   - *Mode: the transition
func NewMode(r renderer.Renderer, background mode.Mode, image renderer.Texture, flag *puzzle.ResetFlag, cfg config.Transition) *Mode {
	start := cfg.RevealStart
	return &Mode{
		renderer:   r,
		background: background,
		image:      image,
		flag:       flag,
		fadeColor:  mgl32.Vec4(cfg.FadeColor),
		phase:      PhaseRevealing,
		bounds:     start,
		reveal:     gween.New(start, 0, start/cfg.RevealRate, ease.Linear),
		fadeIn:     gween.New(0, 1, 1/cfg.FadeRate, ease.Linear),
	}
}

// Phase returns the current phase.
func (m *Mode) Phase() Phase {
	return m.phase
}

// Bounds returns the reveal bound, the margin outside the revealed window in screen fractions.
func (m *Mode) Bounds() float32 {
	return m.bounds
}

// Fade returns the fade opacity.
func (m *Mode) Fade() float32 {
	return m.fade
}

func (m *Mode) HandleInput(evt common.Event, windowSize [2]int) bool {
	return false
}

func (m *Mode) Update(dt float32) mode.Mode {
	switch m.phase {
	case PhaseRevealing:
		b, finished := m.reveal.Update(dt)
		m.bounds = min(b, m.bounds)
		if finished {
			m.bounds = 0
			m.phase = PhaseFadingOut
		}
	case PhaseFadingOut:
		a, finished := m.fadeIn.Update(dt)
		m.fade = max(a, m.fade)
		if finished {
			m.fade = 1
			m.flag.Set()
			m.phase = PhaseDone
			// The background takes its update this frame so the reset lands before it draws.
			return m.background.Update(dt)
		}
	case PhaseDone:
		return m.background
	}
	return m
}

func (m *Mode) Draw(drawableSize [2]int) {
	m.background.Draw(drawableSize)
	if m.phase == PhaseDone {
		return
	}
	if err := m.drawOverlays(); err != nil {
		panic(fmt.Errorf("transition overlay: %w", err))
	}
}

func (m *Mode) drawOverlays() error {
	if err := m.renderer.BeginPass(renderer.PassDescriptor{Label: "transition"}); err != nil {
		return err
	}
	defer m.renderer.EndPass()

	reveal := GPUOverlay{Param: m.bounds, Color: mgl32.Vec4{1, 1, 1, 1}}
	if err := m.renderer.DrawFullscreen(resources.PipelineReveal, reveal.Marshal(), m.image); err != nil {
		return err
	}
	if m.fade <= 0 {
		return nil
	}
	fade := GPUOverlay{Param: m.fade, Color: m.fadeColor}
	return m.renderer.DrawFullscreen(resources.PipelineFade, fade.Marshal(), m.image)
}
