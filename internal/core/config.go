package core

// WindowFlags is a bitmask of options applied when a window is created.
type WindowFlags int

const (
	// WindowFullScreen places the window on the primary monitor in fullscreen mode.
	WindowFullScreen WindowFlags = 1 << iota
)

// Has reports whether every bit in f is set.
func (w WindowFlags) Has(f WindowFlags) bool {
	return w&f == f
}

// WindowConfig describes the main window at startup.
// XPos and YPos are ignored when Centered is set.
type WindowConfig struct {
	Width      int    // Client area width in pixels
	Height     int    // Client area height in pixels
	XPos       int    // Window x position
	YPos       int    // Window y position
	Centered   bool   // Center on the primary monitor
	Title      string // Window title
	Fullscreen bool   // Fullscreen on the primary monitor
	VSync      bool   // Swap interval of 1 when set
}

// DefaultWindowConfig returns the configuration used when no settings are provided.
func DefaultWindowConfig() WindowConfig {
	return NewWindowConfig(800, 600)
}

// NewWindowConfig returns a centered, windowed, vsynced config of the given size.
func NewWindowConfig(width, height int) WindowConfig {
	return WindowConfig{
		Width:      width,
		Height:     height,
		XPos:       0,
		YPos:       0,
		Centered:   true,
		Title:      "Untitled",
		Fullscreen: false,
		VSync:      true,
	}
}

// Flags returns the creation flags implied by the config.
func (c WindowConfig) Flags() WindowFlags {
	var flags WindowFlags
	if c.Fullscreen {
		flags |= WindowFullScreen
	}
	return flags
}
