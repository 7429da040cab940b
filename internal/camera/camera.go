// Package camera derives view and projection matrices from an entity's
// transform. Cameras come in a closed set of kinds dispatched by switch.
package camera

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/vovakirdan/arcade-engine/internal/core"
)

// Kind selects how a camera derives its view matrix.
type Kind int

const (
	// KindNoOp keeps an identity view. Used for cameras without projection semantics.
	KindNoOp Kind = iota
	// KindPerspective inverts the owner's placement and uses a perspective projection.
	KindPerspective
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindNoOp:
		return "noop"
	case KindPerspective:
		return "perspective"
	default:
		return "unknown"
	}
}

// Perspective defaults.
const (
	DefaultFOV       float32 = 1
	DefaultNearPlane float32 = 0.01
	DefaultFarPlane  float32 = 1000
)

// Camera holds the matrices used to render a scene from an entity's point of view.
// The transform is borrowed from the owning entity; the camera never frees it.
//
// There is no dirty tracking: callers run CalculateViewMatrix after moving
// the owner, and Projection/ViewMatrix return the last computed values.
type Camera struct {
	kind      Kind
	transform *core.Transform

	projection  mgl32.Mat4
	view        mgl32.Mat4
	aspectRatio float32

	fov   float32
	zNear float32
	zFar  float32
}

// New creates a camera of the given kind attached to transform.
func New(kind Kind, transform *core.Transform) *Camera {
	c := &Camera{
		kind:       kind,
		transform:  transform,
		projection: mgl32.Ident4(),
		view:       mgl32.Ident4(),
	}
	if kind == KindPerspective {
		c.fov = DefaultFOV
		c.zNear = DefaultNearPlane
		c.zFar = DefaultFarPlane
	}
	return c
}

// NewPerspective creates a perspective camera attached to the entity's transform.
func NewPerspective(owner *core.Entity) *Camera {
	return New(KindPerspective, &owner.Transform)
}

// Kind returns the camera kind.
func (c *Camera) Kind() Kind {
	return c.kind
}

// CalculateViewMatrix recomputes the view matrix from the owner's transform.
func (c *Camera) CalculateViewMatrix() {
	switch c.kind {
	case KindNoOp:
	case KindPerspective:
		c.view = viewFromTransform(c.transform)
	default:
		panic(fmt.Sprintf("camera: unknown kind %d", c.kind))
	}
}

// viewFromTransform returns inverse(translation * rotation).
func viewFromTransform(t *core.Transform) mgl32.Mat4 {
	translation := mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z())
	rotation := t.Rotation.Mat4()

	placement := translation.Mul4(rotation)
	if det := placement.Det(); det == 0 || math.IsNaN(float64(det)) || math.IsInf(float64(det), 0) {
		panic(fmt.Sprintf("camera: placement matrix is not invertible (position %v, rotation %v)", t.Position, t.Rotation))
	}
	return placement.Inv()
}

// CreateProjectionMatrix builds a perspective projection and stores it,
// replacing any previous projection. fov is the vertical field of view in
// radians. Callers must pass nearPlane > 0, farPlane > nearPlane and fov > 0.
func (c *Camera) CreateProjectionMatrix(fov, aspectRatio, nearPlane, farPlane float32) {
	c.fov = fov
	c.aspectRatio = aspectRatio
	c.zNear = nearPlane
	c.zFar = farPlane
	c.projection = mgl32.Perspective(fov, aspectRatio, nearPlane, farPlane)
}

// Projection returns the stored projection matrix.
func (c *Camera) Projection() mgl32.Mat4 {
	return c.projection
}

// ViewMatrix returns the stored view matrix.
func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return c.view
}

// ViewProjection returns projection * view.
func (c *Camera) ViewProjection() mgl32.Mat4 {
	return c.projection.Mul4(c.view)
}

// AspectRatio returns the aspect ratio used by the last projection.
func (c *Camera) AspectRatio() float32 {
	return c.aspectRatio
}

// FOV returns the vertical field of view in radians.
func (c *Camera) FOV() float32 {
	return c.fov
}

// NearPlane returns the near clip distance.
func (c *Camera) NearPlane() float32 {
	return c.zNear
}

// FarPlane returns the far clip distance.
func (c *Camera) FarPlane() float32 {
	return c.zFar
}
