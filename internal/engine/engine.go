// Package engine owns the window and graphics context, runs the render loop
// and tears everything down in a fixed order.
//
// An Engine is created once at the program entry point and passed to scene
// hooks. It replaces any process-wide state: the resource path, platform
// info and frame timing are all reached through it.
package engine

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/arcade-engine/internal/config"
	"github.com/vovakirdan/arcade-engine/internal/core"
	"github.com/vovakirdan/arcade-engine/internal/timing"
)

var (
	// ErrWindowInit is returned when the windowing library or the window cannot be created.
	ErrWindowInit = errors.New("could not initialize window")

	// ErrBindings is returned when the rendering API bindings fail to load.
	ErrBindings = errors.New("could not initialize rendering bindings")

	// ErrInvalidState is returned when an operation is called out of lifecycle order.
	ErrInvalidState = errors.New("invalid lifecycle state")
)

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. The default discards all output.
func WithLogger(logger *log.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithClock sets the monotonic clock used for frame timing.
func WithClock(clock timing.Clock) Option {
	return func(e *Engine) {
		e.clock = timing.NewFrameClock(clock)
	}
}

// WithFrameObserver registers fn to receive a snapshot on every FPS rollover.
// fn runs on the render goroutine and must not block.
func WithFrameObserver(fn func(timing.Sample)) Option {
	return func(e *Engine) {
		e.observer = fn
	}
}

// Engine is the lifecycle manager for one window and its render loop.
type Engine struct {
	platform core.Platform
	backend  Backend
	logger   *log.Logger
	observer func(timing.Sample)

	state       State
	backendUp   bool
	window      Window
	windowCfg   core.WindowConfig
	resFolder   string
	clock       *timing.FrameClock
	workers     errgroup.Group
	workerCount int
}

// New creates an engine on the given backend. The platform is detected
// here, so the engine starts in StatePlatformReady.
func New(backend Backend, opts ...Option) *Engine {
	e := &Engine{
		backend: backend,
		state:   StateUninitialized,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = log.New(io.Discard)
	}
	if e.clock == nil {
		e.clock = timing.NewFrameClock(nil)
	}

	e.initializePlatform()
	return e
}

func (e *Engine) initializePlatform() {
	e.platform = core.DetectPlatform()
	e.state = StatePlatformReady
	e.logger.Debug("platform detected", "os", e.platform.OS)
}

// CreateWindow initializes the backend, creates the window and loads the
// rendering bindings. Failures are logged at error level and returned
// wrapping ErrWindowInit or ErrBindings; the caller is expected to exit.
func (e *Engine) CreateWindow(cfg core.WindowConfig) error {
	if e.state != StatePlatformReady || e.window != nil {
		return fmt.Errorf("engine: create window in state %s: %w", e.state, ErrInvalidState)
	}

	if err := e.backend.Init(); err != nil {
		e.logger.Error("could not initialize window", "err", err)
		return fmt.Errorf("engine: %w: %w", ErrWindowInit, err)
	}
	e.backendUp = true

	window, err := e.backend.CreateWindow(cfg, cfg.Flags())
	if err != nil {
		e.logger.Error("could not create window", "title", cfg.Title, "width", cfg.Width, "height", cfg.Height, "err", err)
		return fmt.Errorf("engine: %w: %w", ErrWindowInit, err)
	}
	e.window = window
	e.windowCfg = cfg

	if err := e.backend.LoadBindings(); err != nil {
		e.logger.Error("could not initialize OpenGL", "err", err)
		e.window.Destroy()
		e.window = nil
		return fmt.Errorf("engine: %w: %w", ErrBindings, err)
	}

	e.state = StateWindowReady
	e.logger.Debug("initialized graphics instance on main thread", "title", cfg.Title, "width", cfg.Width, "height", cfg.Height)
	return nil
}

// CreateWindowFromSettings loads the settings document at path and creates
// the window from it. A document that cannot be loaded is not fatal: a
// warning is logged and the default window is created instead.
func (e *Engine) CreateWindowFromSettings(path string) error {
	settings, err := config.LoadSettings(path)
	if err != nil {
		e.logger.Warn("settings file provided but failed to load", "path", path, "err", err)
		return e.CreateWindow(core.DefaultWindowConfig())
	}

	e.logger.Debug("loading settings", "path", path)
	return e.CreateWindowWithSettings(settings)
}

// CreateWindowWithSettings creates the window from an already parsed
// settings document and applies its resource path.
func (e *Engine) CreateWindowWithSettings(settings *config.Settings) error {
	startup := config.StartupFromSettings(settings, e.logger)
	if startup.HasResPath {
		e.SetResPath(startup.ResPath)
	}
	return e.CreateWindow(startup.Window)
}

// Run executes the game loop until the window reports a close request.
//
// Load and Init run once, then the frame clock starts. Each iteration
// updates, renders, presents, polls events, clears and records the frame.
// The frame rate is logged once per second.
func (e *Engine) Run(hooks Hooks) error {
	if e.state != StateWindowReady {
		return fmt.Errorf("engine: run in state %s: %w", e.state, ErrInvalidState)
	}
	e.state = StateRunning

	interval := 0
	if e.windowCfg.VSync {
		interval = 1
	}
	e.window.SwapInterval(interval)
	e.window.EnableDepthTest()

	if err := hooks.Load(e); err != nil {
		e.state = StateClosing
		return fmt.Errorf("engine: load hook: %w", err)
	}
	hooks.Init(e)

	// Right after init, start the frame clock
	e.clock.Start()

	for !e.window.ShouldClose() {
		hooks.Update(e)
		hooks.Render(e)
		e.window.SwapBuffers()
		e.window.PollEvents()
		e.window.Clear()

		if e.clock.AddFrame(timing.NanosPerSecond) {
			e.logger.Debug("frames per second", "fps", e.clock.FPS())
			if e.observer != nil {
				e.observer(e.clock.Sample())
			}
		}
	}

	e.state = StateClosing
	e.logger.Debug("closing window", "frames", e.clock.Frames())
	return nil
}

// CloseProgram requests the window to close. The loop exits after the
// current iteration; nothing is torn down here.
func (e *Engine) CloseProgram() {
	if e.window != nil {
		e.window.SetShouldClose(true)
	}
}

// Go runs fn on a background goroutine that is joined by Close.
// fn must not touch the window or the graphics context. After Close nothing
// would join it, so fn is not started and ErrInvalidState is returned.
func (e *Engine) Go(fn func() error) error {
	if e.state == StateTerminated {
		return fmt.Errorf("engine: start worker in state %s: %w", e.state, ErrInvalidState)
	}
	e.workerCount++
	e.workers.Go(fn)
	return nil
}

// Close tears the engine down: background work is joined first, then the
// window is destroyed and the backend terminated. It returns the first
// error reported by background work. Calling Close again is a no-op.
func (e *Engine) Close() error {
	if e.state == StateTerminated {
		return nil
	}

	var err error
	if e.workerCount > 0 {
		e.logger.Debug("joining background work", "workers", e.workerCount)
		err = e.workers.Wait()
	}

	if e.window != nil {
		e.window.Destroy()
		e.window = nil
	}
	if e.backendUp {
		e.backend.Terminate()
		e.backendUp = false
	}

	e.state = StateTerminated
	e.logger.Debug("engine terminated")
	if err != nil {
		return fmt.Errorf("engine: background work: %w", err)
	}
	return nil
}

// State returns the current lifecycle state.
func (e *Engine) State() State {
	return e.state
}

// Platform returns information about the host.
func (e *Engine) Platform() core.Platform {
	return e.platform
}

// ResPath returns the resource folder path.
func (e *Engine) ResPath() string {
	return e.resFolder
}

// SetResPath sets the resource folder path.
func (e *Engine) SetResPath(path string) {
	e.resFolder = path
}

// Window returns the main window, or nil before CreateWindow succeeds.
func (e *Engine) Window() Window {
	return e.window
}

// WindowConfig returns the configuration the window was created with.
func (e *Engine) WindowConfig() core.WindowConfig {
	return e.windowCfg
}

// Logger returns the engine logger for use by scenes.
func (e *Engine) Logger() *log.Logger {
	return e.logger
}

// DeltaTime returns the duration of the previous frame in seconds.
func (e *Engine) DeltaTime() float32 {
	return e.clock.Delta()
}

// FPS returns the most recently sampled frame rate.
func (e *Engine) FPS() int {
	return e.clock.FPS()
}

// ProgramRuntime returns the time since the loop started in the given unit.
func (e *Engine) ProgramRuntime(unit timing.TimeUnit) float32 {
	return e.clock.Runtime(unit)
}

// Summary returns a snapshot of the frame clock.
func (e *Engine) Summary() timing.Sample {
	return e.clock.Sample()
}
