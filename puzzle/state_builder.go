package puzzle

import "math/rand"

// StateBuilderOption is a functional option applied to a State during NewState.
type StateBuilderOption func(*State)

// WithRand sets the random source the state draws targets and bodies from.
//
// Parameters:
//   - rng: the random source
//
// Returns:
//   - StateBuilderOption: option function to apply
func WithRand(rng *rand.Rand) StateBuilderOption {
	return func(s *State) {
		s.rng = rng
	}
}
