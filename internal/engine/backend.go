package engine

import "github.com/vovakirdan/arcade-engine/internal/core"

// Backend is the windowing and graphics library the engine drives.
// Implementations must be used from the render goroutine only.
type Backend interface {
	// Init initializes the windowing library.
	Init() error

	// CreateWindow creates the window and makes its graphics context current.
	CreateWindow(cfg core.WindowConfig, flags core.WindowFlags) (Window, error)

	// LoadBindings loads the rendering API entry points for the current context.
	LoadBindings() error

	// Terminate releases the windowing library. Called after the window is destroyed.
	Terminate()
}

// Window is a window together with its graphics context.
type Window interface {
	// SwapInterval sets the number of screen updates to wait before swapping buffers.
	SwapInterval(n int)

	// EnableDepthTest turns on depth testing for the context.
	EnableDepthTest()

	// SetClearColor sets the color used by Clear.
	SetClearColor(r, g, b, a float32)

	// Clear clears the color and depth buffers.
	Clear()

	// SwapBuffers presents the back buffer.
	SwapBuffers()

	// PollEvents processes pending window and input events.
	PollEvents()

	// ShouldClose reports whether a close has been requested.
	ShouldClose() bool

	// SetShouldClose sets or clears the close request flag.
	SetShouldClose(close bool)

	// FramebufferSize returns the drawable size in pixels.
	FramebufferSize() (width, height int)

	// Destroy releases the window and its context.
	Destroy()
}
