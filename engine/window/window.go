package window

import (
	"fmt"
	"runtime"

	"github.com/Carmen-Shannon/stonegate/common"
	"github.com/cogentcore/webgpu/wgpu"
)

// Window provides platform windowing and an input event queue.
// Wraps platform-specific window implementations with a common interface.
type Window interface {
	// SetUpdateCallback sets the function called each message loop iteration.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetUpdateCallback(callback func())

	// SetResizeCallback sets the function called when the framebuffer is resized.
	//
	// Parameters:
	//   - callback: function receiving new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// DrainEvents returns the input events queued since the previous call, oldest first,
	// and empties the queue.
	//
	// Returns:
	//   - []common.Event: the queued events
	DrainEvents() []common.Event

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor suitable for creating a WebGPU surface.
	// The descriptor is platform-appropriate (Windows HWND, X11 Xlib, Wayland, macOS Metal, etc.)
	// and is created by the wgpuglfw bridge from the underlying GLFW window.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform-specific surface descriptor, or nil if window is not initialized
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// IsRunning returns true if the window is still active.
	//
	// Returns:
	//   - bool: true if window is running, false if closed
	IsRunning() bool

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: error if close operation fails
	Close() error

	// ProcessMessages runs the window message loop.
	// Blocks until the window is closed. Calls OnUpdate callback each iteration.
	ProcessMessages()

	// Size returns the window client area in screen coordinates. Pointer deltas are in
	// the same units.
	//
	// Returns:
	//   - [2]int: width and height
	Size() [2]int

	// FramebufferSize returns the drawable size in pixels. On high-DPI displays it differs from Size.
	//
	// Returns:
	//   - [2]int: width and height in pixels
	FramebufferSize() [2]int
}

// engineWindow is the implementation of the Window interface.
// Holds window configuration, GLFW state, the event queue and pointer tracking.
type engineWindow struct {
	// title is the window title displayed in the title bar.
	title string

	// maxWidth is the maximum allowed window width during resize.
	maxWidth int

	// maxHeight is the maximum allowed window height during resize.
	maxHeight int

	// minWidth is the minimum allowed window width during resize.
	minWidth int

	// minHeight is the minimum allowed window height during resize.
	minHeight int

	// width and height are the window client area in screen coordinates.
	width  int
	height int

	// fbWidth and fbHeight are the framebuffer size in pixels.
	fbWidth  int
	fbHeight int

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any

	// onUpdate is called each iteration of the message loop (if set).
	onUpdate func()

	// onResize is called when the framebuffer is resized.
	onResize func(width, height int)

	events []common.Event

	// buttons is the set of pointer buttons currently held.
	buttons common.MouseButtons

	// cursorX and cursorY are the last cursor position; hasCursor is false until the first motion.
	cursorX, cursorY float64
	hasCursor        bool
}

var _ Window = &engineWindow{}

// NewWindow creates a new Window with the specified options.
// Applies default values first, then each option in order.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the configured window
func NewWindow(options ...WindowBuilderOption) Window {
	w := &engineWindow{
		title:     "Stonegate",
		maxWidth:  3840,
		maxHeight: 2160,
		minWidth:  320,
		minHeight: 240,
		width:     1280,
		height:    720,
	}
	for _, opt := range options {
		opt(w)
	}
	if err := newPlatformWindow(w); err != nil {
		panic(fmt.Sprintf("failed to create platform window: %v", err))
	}
	return w
}

func (w *engineWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) DrainEvents() []common.Event {
	events := w.events
	w.events = nil
	return events
}

// queueKey records a key press, repeat or release.
func (w *engineWindow) queueKey(key uint32, pressed, repeat bool) {
	if pressed {
		w.events = append(w.events, common.KeyDown(key, repeat))
		return
	}
	w.events = append(w.events, common.KeyUp(key))
}

// setButton updates the held button set.
func (w *engineWindow) setButton(button common.MouseButtons, pressed bool) {
	if pressed {
		w.buttons |= button
		return
	}
	w.buttons &^= button
}

// queueCursor records pointer motion relative to the previous cursor position.
// The first position only seeds the tracker.
func (w *engineWindow) queueCursor(x, y float64) {
	if !w.hasCursor {
		w.cursorX, w.cursorY, w.hasCursor = x, y, true
		return
	}
	dx, dy := x-w.cursorX, y-w.cursorY
	w.cursorX, w.cursorY = x, y
	if dx == 0 && dy == 0 {
		return
	}
	w.events = append(w.events, common.MouseMotion(float32(dx), float32(dy), w.buttons))
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) ProcessMessages() {
	for w.IsRunning() {
		if succ := platformProcessMessages(w); !succ {
			break
		}

		if w.onUpdate != nil {
			w.onUpdate()
		}

		runtime.Gosched()
	}
}

func (w *engineWindow) Size() [2]int {
	return [2]int{w.width, w.height}
}

func (w *engineWindow) FramebufferSize() [2]int {
	return [2]int{w.fbWidth, w.fbHeight}
}
