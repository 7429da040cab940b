package core

import "math"

// Color is a linear RGBA color with components in [0, 1].
type Color struct {
	R, G, B, A float32
}

// Predefined clear colors.
var (
	ColorBlack      = Color{0, 0, 0, 1}
	ColorWhite      = Color{1, 1, 1, 1}
	ColorSlate      = Color{0.2, 0.3, 0.3, 1}
	ColorCornflower = Color{0.392, 0.584, 0.929, 1}
)

// Scale multiplies the RGB components by f and clamps them. Alpha is kept.
func (c Color) Scale(f float32) Color {
	return Color{
		R: Clamp(c.R*f, 0, 1),
		G: Clamp(c.G*f, 0, 1),
		B: Clamp(c.B*f, 0, 1),
		A: c.A,
	}
}

// RGBA returns the components in the order graphics APIs expect.
func (c Color) RGBA() (r, g, b, a float32) {
	return c.R, c.G, c.B, c.A
}

// Hue returns a fully saturated opaque color for an angle in radians.
// The three channels are sine waves a third of a turn apart.
func Hue(angle float32) Color {
	t := float64(angle)
	return Color{
		R: float32(0.5 + 0.5*math.Sin(t)),
		G: float32(0.5 + 0.5*math.Sin(t+2*math.Pi/3)),
		B: float32(0.5 + 0.5*math.Sin(t+4*math.Pi/3)),
		A: 1,
	}
}
