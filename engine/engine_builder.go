package engine

import (
	"github.com/Carmen-Shannon/stonegate/engine/mode"
	"github.com/Carmen-Shannon/stonegate/engine/renderer"
	"github.com/Carmen-Shannon/stonegate/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithWindow sets the window the engine reads input from and runs its loop on.
//
// Parameters:
//   - w: a pre-configured Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithRenderer sets the renderer frames are begun and presented on.
//
// Parameters:
//   - r: the renderer bound to the window's surface
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderer(r renderer.Renderer) EngineBuilderOption {
	return func(e *engine) {
		e.renderer = r
	}
}

// WithMode sets the initial mode.
//
// Parameters:
//   - m: the mode that receives the first frame
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithMode(m mode.Mode) EngineBuilderOption {
	return func(e *engine) {
		e.current = m
	}
}
