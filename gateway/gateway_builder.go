package gateway

import "math/rand"

// ModeBuilderOption is a functional option applied to a Mode during NewMode.
type ModeBuilderOption func(*Mode)

// WithSounds sets the sound effects player. Without it the mode is silent.
//
// Parameters:
//   - s: the sound player
//
// Returns:
//   - ModeBuilderOption: option function to apply
func WithSounds(s Sounds) ModeBuilderOption {
	return func(m *Mode) {
		if s != nil {
			m.sounds = s
		}
	}
}

// WithRand sets the random source for the stage and the puzzle.
func WithRand(rng *rand.Rand) ModeBuilderOption {
	return func(m *Mode) {
		m.rng = rng
	}
}
