// Package desktop is the GLFW + OpenGL windowing backend.
//
// GLFW requires every call to come from the main OS thread, so the package
// locks the main goroutine to it on import. The engine loop must therefore
// run on the main goroutine when this backend is used.
package desktop

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/vovakirdan/arcade-engine/internal/core"
	"github.com/vovakirdan/arcade-engine/internal/engine"
)

func init() {
	runtime.LockOSThread()
}

// ErrNoWindow is returned when bindings are loaded before a window exists.
var ErrNoWindow = errors.New("desktop: no current window")

// Backend implements engine.Backend on GLFW with an OpenGL 4.1 core context.
type Backend struct {
	window *Window
}

// New creates a desktop backend.
func New() *Backend {
	return &Backend{}
}

// Init implements engine.Backend.
func (b *Backend) Init() error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("desktop: glfw init: %w", err)
	}
	return nil
}

// CreateWindow implements engine.Backend. The window starts hidden and is
// shown once positioned so it never flashes at the default location.
func (b *Backend) CreateWindow(cfg core.WindowConfig, flags core.WindowFlags) (engine.Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Visible, glfw.False)

	var monitor *glfw.Monitor
	if flags.Has(core.WindowFullScreen) {
		monitor = glfw.GetPrimaryMonitor()
	}

	w, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, monitor, nil)
	if err != nil {
		return nil, fmt.Errorf("desktop: create window: %w", err)
	}

	if monitor == nil {
		x, y := cfg.XPos, cfg.YPos
		if cfg.Centered {
			if primary := glfw.GetPrimaryMonitor(); primary != nil {
				mode := primary.GetVideoMode()
				x = (mode.Width - cfg.Width) / 2
				y = (mode.Height - cfg.Height) / 2
			}
		}
		w.SetPos(x, y)
	}

	w.SetKeyCallback(func(w *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			w.SetShouldClose(true)
		}
	})

	w.MakeContextCurrent()
	w.Show()

	b.window = &Window{handle: w}
	return b.window, nil
}

// LoadBindings implements engine.Backend.
func (b *Backend) LoadBindings() error {
	if b.window == nil {
		return ErrNoWindow
	}
	if err := gl.Init(); err != nil {
		return fmt.Errorf("desktop: gl init: %w", err)
	}

	width, height := b.window.handle.GetFramebufferSize()
	gl.Viewport(0, 0, int32(width), int32(height))
	b.window.handle.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		gl.Viewport(0, 0, int32(width), int32(height))
	})
	return nil
}

// Version returns the OpenGL version string of the current context.
func (b *Backend) Version() string {
	return gl.GoStr(gl.GetString(gl.VERSION))
}

// Terminate implements engine.Backend.
func (b *Backend) Terminate() {
	glfw.Terminate()
}

// Window wraps a GLFW window and its OpenGL context.
type Window struct {
	handle *glfw.Window
}

// SwapInterval implements engine.Window.
func (w *Window) SwapInterval(n int) { glfw.SwapInterval(n) }

// EnableDepthTest implements engine.Window.
func (w *Window) EnableDepthTest() { gl.Enable(gl.DEPTH_TEST) }

// SetClearColor implements engine.Window.
func (w *Window) SetClearColor(r, g, b, a float32) { gl.ClearColor(r, g, b, a) }

// Clear implements engine.Window.
func (w *Window) Clear() { gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT) }

// SwapBuffers implements engine.Window.
func (w *Window) SwapBuffers() { w.handle.SwapBuffers() }

// PollEvents implements engine.Window.
func (w *Window) PollEvents() { glfw.PollEvents() }

// ShouldClose implements engine.Window.
func (w *Window) ShouldClose() bool { return w.handle.ShouldClose() }

// SetShouldClose implements engine.Window.
func (w *Window) SetShouldClose(close bool) { w.handle.SetShouldClose(close) }

// FramebufferSize implements engine.Window.
func (w *Window) FramebufferSize() (int, int) { return w.handle.GetFramebufferSize() }

// Destroy implements engine.Window.
func (w *Window) Destroy() { w.handle.Destroy() }
