// Package gateway is the puzzle mode: the stone field seen through the gateway arch,
// rendered with a live spot shadow and a depth map of the solved pose. Solving the
// puzzle hands control to a transition that reveals the target image.
package gateway

import (
	"log"
	"math/rand"
	"time"

	"github.com/Carmen-Shannon/stonegate/common"
	"github.com/Carmen-Shannon/stonegate/engine/config"
	"github.com/Carmen-Shannon/stonegate/engine/mode"
	"github.com/Carmen-Shannon/stonegate/engine/renderer"
	"github.com/Carmen-Shannon/stonegate/engine/resources"
	"github.com/Carmen-Shannon/stonegate/puzzle"
	"github.com/Carmen-Shannon/stonegate/transition"
)

// Sounds plays the puzzle's sound effects.
type Sounds interface {
	// PlayMatch plays the chime for a solved puzzle.
	PlayMatch()

	// PlayReset plays the cue for a freshly randomized puzzle.
	PlayReset()
}

type silent struct{}

func (silent) PlayMatch() {}
func (silent) PlayReset() {}

// Mode is the puzzle mode.
type Mode struct {
	renderer renderer.Renderer
	registry *resources.Registry
	cfg      config.Config

	stage    *Stage
	state    *puzzle.State
	pipeline *Pipeline
	flag     *puzzle.ResetFlag
	sounds   Sounds
	rng      *rand.Rand
}

var _ mode.Mode = &Mode{}

// NewMode builds the stage, the puzzle state and the render pipeline.
//
// Parameters:
//   - r: the renderer to draw with
//   - reg: the resource registry
//   - cfg: the game settings
//   - options: variadic list of ModeBuilderOption functions
//
// Returns:
//   - *Mode: the puzzle mode
//   - error: an error if the scene is missing required nodes or a pool is empty
func NewMode(r renderer.Renderer, reg *resources.Registry, cfg config.Config, options ...ModeBuilderOption) (*Mode, error) {
	m := &Mode{
		renderer: r,
		registry: reg,
		cfg:      cfg,
		flag:     puzzle.NewResetFlag(),
		sounds:   silent{},
	}
	for _, opt := range options {
		opt(m)
	}
	if m.rng == nil {
		seed := cfg.Puzzle.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		m.rng = rand.New(rand.NewSource(seed))
	}

	stage, err := NewStage(reg, cfg, m.rng)
	if err != nil {
		return nil, err
	}
	state, err := puzzle.NewState(stage.Scene, stage.Rig, stage.Bodies, len(reg.Images), m.flag, cfg.Puzzle, puzzle.WithRand(m.rng))
	if err != nil {
		return nil, err
	}
	m.stage = stage
	m.state = state
	m.pipeline = NewPipeline(r, cfg.Render)
	return m, nil
}

// State returns the puzzle state.
func (m *Mode) State() *puzzle.State {
	return m.state
}

// Stage returns the gateway scene.
func (m *Mode) Stage() *Stage {
	return m.stage
}

// Pipeline returns the render pipeline.
func (m *Mode) Pipeline() *Pipeline {
	return m.pipeline
}

func (m *Mode) image() renderer.Texture {
	return m.registry.Images[m.state.Target.Image]
}

func (m *Mode) HandleInput(evt common.Event, windowSize [2]int) bool {
	return m.state.HandleInput(evt, windowSize)
}

func (m *Mode) Update(dt float32) mode.Mode {
	if m.flag.IsSet() {
		m.sounds.PlayReset()
	}
	if !m.state.Update(dt) {
		return m
	}

	log.Printf("[Gateway] match: time %.2f angle %.2f, revealing %s", m.state.View.Time, m.state.View.Angle, m.registry.ImageNames[m.state.Target.Image])
	m.sounds.PlayMatch()
	return transition.NewMode(m.renderer, m, m.image(), m.flag, m.cfg.Transition)
}

func (m *Mode) Draw(drawableSize [2]int) {
	m.pipeline.Draw(m.stage, m.state, m.image(), drawableSize)
}
