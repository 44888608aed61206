// Package entity defines the dynamic objects that live in a level.
//
// Entities are plain state plus small state machines. Systems that need the
// level (collision, damage routing, spawning) live in the level package.
package entity

import (
	"levelengine/internal/collision"
	"levelengine/internal/mathutil"
)

// Transform is an entity's placement in world space
type Transform struct {
	Position mathutil.Vec3
	Rotation float64 // yaw in radians
	Scale    mathutil.Vec3
}

// Entity is anything with a transform and a 2D footprint
type Entity interface {
	Transform() *Transform
	Size() mathutil.Vec2
	Pos() mathutil.Vec2
	Bounds() collision.BoundingBox
}

// Damageable entities take weapon and effect damage
type Damageable interface {
	Entity
	// Damage applies amount and reports whether this call killed the entity.
	Damage(amount float64) bool
	Alive() bool
}

// Solid entities may block movement
type Solid interface {
	Entity
	Blocks() bool
}

// Base carries the transform and size shared by every entity
type Base struct {
	T      Transform
	Extent mathutil.Vec2
}

// NewBase places an entity at a plane point
func NewBase(pos mathutil.Vec2, size mathutil.Vec2) Base {
	return Base{
		T: Transform{
			Position: pos.Lift(0),
			Scale:    mathutil.Vec3{X: 1, Y: 1, Z: 1},
		},
		Extent: size,
	}
}

func (b *Base) Transform() *Transform { return &b.T }
func (b *Base) Size() mathutil.Vec2   { return b.Extent }
func (b *Base) Pos() mathutil.Vec2    { return b.T.Position.Flat() }

// SetPos moves the entity on the level plane, keeping its height
func (b *Base) SetPos(p mathutil.Vec2) {
	b.T.Position.X = p.X
	b.T.Position.Z = p.Y
}

// Bounds returns the footprint rectangle
func (b *Base) Bounds() collision.BoundingBox {
	return collision.BoxAt(b.Pos(), b.Extent)
}

// Timer counts down seconds
type Timer struct {
	Remaining float64
}

// Tick advances the timer and reports whether it has expired
func (t *Timer) Tick(dt float64) bool {
	t.Remaining -= dt
	return t.Remaining <= 0
}
