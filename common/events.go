package common

// EventKind identifies the type of an input Event.
type EventKind int

const (
	// EventKeyDown is a key press. Repeat is set for auto-repeat presses.
	EventKeyDown EventKind = iota

	// EventKeyUp is a key release.
	EventKeyUp

	// EventMouseMotion is a pointer move carrying the relative delta and held buttons.
	EventMouseMotion
)

// Event is a single platform-independent input event delivered by the window to the current mode.
type Event struct {
	// Kind is the event type.
	Kind EventKind

	// Key is the virtual key code for key events (see key_codes.go).
	Key uint32

	// Repeat is true for key presses generated by keyboard auto-repeat.
	Repeat bool

	// Buttons is the set of pointer buttons held during a motion event.
	Buttons MouseButtons

	// RelX and RelY are the pointer deltas in window coordinates for motion events.
	RelX, RelY float32
}

// KeyDown returns a key press event.
//
// Parameters:
//   - key: the virtual key code
//   - repeat: true when the press comes from auto-repeat
//
// Returns:
//   - Event: the key down event
func KeyDown(key uint32, repeat bool) Event {
	return Event{Kind: EventKeyDown, Key: key, Repeat: repeat}
}

// KeyUp returns a key release event.
//
// Parameters:
//   - key: the virtual key code
//
// Returns:
//   - Event: the key up event
func KeyUp(key uint32) Event {
	return Event{Kind: EventKeyUp, Key: key}
}

// MouseMotion returns a pointer motion event.
//
// Parameters:
//   - relX, relY: the pointer delta in window coordinates
//   - buttons: the buttons held during the motion
//
// Returns:
//   - Event: the motion event
func MouseMotion(relX, relY float32, buttons MouseButtons) Event {
	return Event{Kind: EventMouseMotion, RelX: relX, RelY: relY, Buttons: buttons}
}
