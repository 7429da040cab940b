// Package orbit registers a scene whose perspective camera circles the
// origin, recomputing its view matrix every frame.
package orbit

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/vovakirdan/arcade-engine/internal/camera"
	"github.com/vovakirdan/arcade-engine/internal/core"
	"github.com/vovakirdan/arcade-engine/internal/engine"
	"github.com/vovakirdan/arcade-engine/internal/registry"
)

func init() {
	registry.Register("orbit", func() registry.Scene { return New() })
}

const (
	fieldOfView = 60 // degrees
	nearPlane   = 0.1
	farPlane    = 1000
)

// Scene orbits a camera around the origin at a fixed radius and height.
type Scene struct {
	Radius float32 // Distance from the origin on the XZ plane
	Height float32 // Camera height above the XZ plane
	Speed  float32 // Angular speed in radians per second

	owner *core.Entity
	cam   *camera.Camera
	angle float32
}

// New creates an orbit scene with default parameters.
func New() *Scene {
	return &Scene{
		Radius: 10,
		Height: 3,
		Speed:  0.5,
	}
}

// ID implements registry.Scene.
func (s *Scene) ID() string { return "orbit" }

// Title implements registry.Scene.
func (s *Scene) Title() string { return "Orbiting Camera" }

// Load implements engine.Hooks.
func (s *Scene) Load(e *engine.Engine) error {
	e.Logger().Debug("loading scene", "scene", s.ID(), "respath", e.ResPath())
	return nil
}

// Init creates the camera and its projection from the window size.
func (s *Scene) Init(e *engine.Engine) {
	s.owner = core.NewEntity("Camera")
	s.cam = camera.NewPerspective(s.owner)

	width, height := e.Window().FramebufferSize()
	aspect := float32(1)
	if height > 0 {
		aspect = float32(width) / float32(height)
	}
	s.cam.CreateProjectionMatrix(mgl32.DegToRad(fieldOfView), aspect, nearPlane, farPlane)

	s.place()
}

// Update advances the orbit by the last frame's delta.
func (s *Scene) Update(e *engine.Engine) {
	s.angle += s.Speed * e.DeltaTime()
	if s.angle > 2*math.Pi {
		s.angle -= 2 * math.Pi
	}
	s.place()
}

// Render sets the clear color from the orbit angle.
func (s *Scene) Render(e *engine.Engine) {
	e.Window().SetClearColor(core.Hue(s.angle).Scale(0.3).RGBA())
}

// Camera returns the scene camera. It is nil before Init.
func (s *Scene) Camera() *camera.Camera {
	return s.cam
}

// place moves the camera to the current angle, aims it at the origin and
// recomputes the view matrix.
func (s *Scene) place() {
	sin, cos := math.Sincos(float64(s.angle))
	s.owner.Transform.Position = mgl32.Vec3{
		s.Radius * float32(sin),
		s.Height,
		s.Radius * float32(cos),
	}
	s.owner.Transform.LookAt(mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	s.cam.CalculateViewMatrix()
}
