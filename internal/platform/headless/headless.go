// Package headless provides a windowing backend without a display or GPU.
// It runs the engine loop for benchmarks and in environments with no screen.
package headless

import (
	"errors"
	"time"

	"github.com/vovakirdan/arcade-engine/internal/core"
	"github.com/vovakirdan/arcade-engine/internal/engine"
)

// ErrAlreadyCreated is returned when a second window is requested.
var ErrAlreadyCreated = errors.New("headless: window already created")

// Options configure the headless backend.
type Options struct {
	// MaxFrames closes the window after this many event polls. 0 means never.
	MaxFrames int

	// RefreshRate emulates a display refresh when the swap interval is
	// non-zero. 0 disables pacing.
	RefreshRate int
}

// Backend implements engine.Backend without any windowing system.
type Backend struct {
	opts        Options
	initialized bool
	window      *Window
}

// New creates a headless backend.
func New(opts Options) *Backend {
	return &Backend{opts: opts}
}

// Init implements engine.Backend.
func (b *Backend) Init() error {
	b.initialized = true
	return nil
}

// CreateWindow implements engine.Backend.
func (b *Backend) CreateWindow(cfg core.WindowConfig, flags core.WindowFlags) (engine.Window, error) {
	if b.window != nil {
		return nil, ErrAlreadyCreated
	}
	b.window = &Window{
		width:       cfg.Width,
		height:      cfg.Height,
		fullscreen:  flags.Has(core.WindowFullScreen),
		maxFrames:   b.opts.MaxFrames,
		refreshRate: b.opts.RefreshRate,
	}
	return b.window, nil
}

// LoadBindings implements engine.Backend. There is nothing to load.
func (b *Backend) LoadBindings() error {
	return nil
}

// Terminate implements engine.Backend.
func (b *Backend) Terminate() {
	b.initialized = false
}

// Window is a framebuffer-less window.
type Window struct {
	width, height int
	fullscreen    bool
	maxFrames     int
	refreshRate   int

	interval   int
	depthTest  bool
	clearColor [4]float32
	polls      int
	swaps      int
	closing    bool
	destroyed  bool
	lastSwap   time.Time
}

// SwapInterval implements engine.Window.
func (w *Window) SwapInterval(n int) { w.interval = n }

// EnableDepthTest implements engine.Window.
func (w *Window) EnableDepthTest() { w.depthTest = true }

// SetClearColor implements engine.Window.
func (w *Window) SetClearColor(r, g, b, a float32) {
	w.clearColor = [4]float32{r, g, b, a}
}

// ClearColor returns the last color passed to SetClearColor.
func (w *Window) ClearColor() [4]float32 { return w.clearColor }

// Clear implements engine.Window.
func (w *Window) Clear() {}

// SwapBuffers implements engine.Window. With pacing enabled it waits out
// the rest of the emulated refresh period.
func (w *Window) SwapBuffers() {
	w.swaps++
	if w.interval <= 0 || w.refreshRate <= 0 {
		return
	}
	period := time.Second * time.Duration(w.interval) / time.Duration(w.refreshRate)
	if !w.lastSwap.IsZero() {
		if wait := period - time.Since(w.lastSwap); wait > 0 {
			time.Sleep(wait)
		}
	}
	w.lastSwap = time.Now()
}

// PollEvents implements engine.Window.
func (w *Window) PollEvents() {
	w.polls++
	if w.maxFrames > 0 && w.polls >= w.maxFrames {
		w.closing = true
	}
}

// ShouldClose implements engine.Window.
func (w *Window) ShouldClose() bool { return w.closing }

// SetShouldClose implements engine.Window.
func (w *Window) SetShouldClose(close bool) { w.closing = close }

// FramebufferSize implements engine.Window.
func (w *Window) FramebufferSize() (int, int) { return w.width, w.height }

// Destroy implements engine.Window.
func (w *Window) Destroy() { w.destroyed = true }

// Frames returns the number of presented frames.
func (w *Window) Frames() int { return w.swaps }

// Destroyed reports whether Destroy has been called.
func (w *Window) Destroyed() bool { return w.destroyed }
