// Package mode defines the contract between the frame driver and the game modes it runs.
package mode

import "github.com/Carmen-Shannon/stonegate/common"

// Mode is one screen of the game. Exactly one mode is current at a time; the driver calls
// HandleInput for every queued event, then Update, then Draw, once per frame.
type Mode interface {
	// HandleInput offers an input event to the mode.
	//
	// Parameters:
	//   - evt: the input event
	//   - windowSize: the window size in screen coordinates, used to scale pointer deltas
	//
	// Returns:
	//   - bool: true if the event was consumed
	HandleInput(evt common.Event, windowSize [2]int) bool

	// Update advances the mode by dt seconds.
	//
	// Parameters:
	//   - dt: the elapsed time since the previous update in seconds
	//
	// Returns:
	//   - Mode: the mode that is current after this update; the receiver itself when no handoff happens
	Update(dt float32) Mode

	// Draw renders the mode into the current frame.
	//
	// Parameters:
	//   - drawableSize: the framebuffer size in pixels
	Draw(drawableSize [2]int)
}
