package engine

import (
	"log"
	"time"

	"github.com/Carmen-Shannon/stonegate/engine/mode"
	"github.com/Carmen-Shannon/stonegate/engine/profiler"
	"github.com/Carmen-Shannon/stonegate/engine/renderer"
	"github.com/Carmen-Shannon/stonegate/engine/window"
)

// MaxFrameDelta caps the delta time passed to Update so a stalled frame never skips a phase.
const MaxFrameDelta float32 = 0.1

// engine implements the Engine interface.
// Drives the current mode from the window's message loop on a single thread.
type engine struct {
	window   window.Window
	renderer renderer.Renderer
	current  mode.Mode

	profiler         *profiler.Profiler
	profilingEnabled bool

	lastFrame time.Time
	quit      bool
}

// Engine is the main entry point for the engine.
// Every frame it feeds queued input to the current mode, updates it, switches to the mode
// the update hands back, then draws and presents.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Mode returns the current mode.
	//
	// Returns:
	//   - mode.Mode: the mode that receives the next frame
	Mode() mode.Mode

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// Frame runs one frame: HandleInput for each queued event, Update, then Draw and Present.
	// Frames with a zero-sized framebuffer update but do not draw.
	//
	// Parameters:
	//   - dt: the elapsed time since the previous frame in seconds, capped at MaxFrameDelta
	Frame(dt float32)

	// Run drives frames from the window message loop (blocks until the window closes).
	Run()

	// Quit closes the window, ending Run. Safe to call multiple times.
	Quit()
}

// NewEngine creates a new Engine instance with the provided options.
// The window, renderer and initial mode must all be provided.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		profiler: profiler.NewProfiler(),
	}

	for _, opt := range options {
		opt(e)
	}

	if e.window != nil && e.renderer != nil {
		e.window.SetResizeCallback(func(width, height int) {
			e.renderer.Resize(width, height)
		})
	}

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Mode() mode.Mode {
	return e.current
}

func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

func (e *engine) Run() {
	e.lastFrame = time.Now()
	e.window.SetUpdateCallback(func() {
		now := time.Now()
		dt := float32(now.Sub(e.lastFrame).Seconds())
		e.lastFrame = now
		e.safeFrame(dt)
	})
	e.window.ProcessMessages()
}

// safeFrame runs a frame and turns a panic into a logged shutdown.
func (e *engine) safeFrame(dt float32) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Engine] frame aborted: %v", r)
			e.Quit()
		}
	}()
	e.Frame(dt)
}

func (e *engine) Frame(dt float32) {
	if e.current == nil || e.quit {
		return
	}

	windowSize := e.window.Size()
	for _, evt := range e.window.DrainEvents() {
		e.current.HandleInput(evt, windowSize)
	}

	dt = min(max(dt, 0), MaxFrameDelta)
	if next := e.current.Update(dt); next != nil && next != e.current {
		log.Printf("[Engine] mode %T -> %T", e.current, next)
		e.current = next
	}

	fb := e.window.FramebufferSize()
	if fb[0] <= 0 || fb[1] <= 0 {
		return
	}
	if err := e.renderer.BeginFrame(); err != nil {
		log.Printf("[Engine] skipping frame: %v", err)
		return
	}
	e.current.Draw(fb)
	e.renderer.Present()

	if e.profilingEnabled && e.profiler != nil {
		e.profiler.Tick(dt)
	}
}

func (e *engine) Quit() {
	if e.quit {
		return
	}
	e.quit = true
	if e.window != nil {
		if err := e.window.Close(); err != nil {
			log.Printf("[Engine] close window: %v", err)
		}
	}
}
