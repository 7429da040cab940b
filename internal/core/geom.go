// Package core provides fundamental types shared by the engine packages:
// window configuration, platform identity and entity transforms.
// It has no dependency on the windowing backend so it stays testable.
package core

import "github.com/go-gl/mathgl/mgl32"

// Transform is the world placement of an entity.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
}

// NewTransform returns a transform at the origin with identity rotation.
func NewTransform() Transform {
	return Transform{
		Position: mgl32.Vec3{},
		Rotation: mgl32.QuatIdent(),
	}
}

// Translate moves the transform by d in world space.
func (t *Transform) Translate(d mgl32.Vec3) {
	t.Position = t.Position.Add(d)
}

// Rotate applies q after the current rotation.
func (t *Transform) Rotate(q mgl32.Quat) {
	t.Rotation = q.Mul(t.Rotation).Normalize()
}

// LookAt orients the transform so its forward axis (-Z) points at target.
// The rotation is the transpose of the look-at view rotation.
func (t *Transform) LookAt(target, up mgl32.Vec3) {
	view := mgl32.LookAtV(t.Position, target, up)
	t.Rotation = mgl32.Mat4ToQuat(view.Mat3().Transpose().Mat4()).Normalize()
}

// Forward returns the direction the transform faces.
func (t Transform) Forward() mgl32.Vec3 {
	return t.Rotation.Rotate(mgl32.Vec3{0, 0, -1})
}

// Entity is a named object in the scene that owns a transform.
type Entity struct {
	Name      string
	Transform Transform
}

// NewEntity creates an entity at the origin.
func NewEntity(name string) *Entity {
	return &Entity{
		Name:      name,
		Transform: NewTransform(),
	}
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max float32) float32 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
