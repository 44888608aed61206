package collision

import "levelengine/internal/mathutil"

// Identity is the damping vector of an unobstructed move
var Identity = mathutil.Vec2{X: 1, Y: 1}

// Footprint is the moving actor's axis-aligned rectangle
type Footprint struct {
	Width  float64 // along X
	Length float64 // along Y (world Z)
}

// Damping returns the per-axis multiplier for moving a footprint from old to
// new past one obstacle. An axis whose motion would carry the footprint into
// the obstacle is zeroed; the other axis is kept so the caller slides.
func Damping(old, new mathutil.Vec2, fp Footprint, obstacle BoundingBox) mathutil.Vec2 {
	d := axisDamping(old, new, fp, obstacle)
	if d == Identity && cornerBlocked(old, new, fp, obstacle) {
		return mathutil.Vec2{}
	}
	return d
}

// axisDamping tests each axis of the move on its own
func axisDamping(old, new mathutil.Vec2, fp Footprint, obstacle BoundingBox) mathutil.Vec2 {
	d := Identity
	if old == new {
		return d
	}

	from := NewBoundingBox(old.X, old.Y, fp.Width, fp.Length)
	alongX := NewBoundingBox(new.X, old.Y, fp.Width, fp.Length)
	alongY := NewBoundingBox(old.X, new.Y, fp.Width, fp.Length)

	if blocks(from, alongX, obstacle) {
		d.X = 0
	}
	if blocks(from, alongY, obstacle) {
		d.Y = 0
	}
	return d
}

// cornerBlocked reports whether the full diagonal move clips a corner that
// neither axis reaches alone. It only matters when no axis was damped.
func cornerBlocked(old, new mathutil.Vec2, fp Footprint, obstacle BoundingBox) bool {
	if old == new {
		return false
	}
	from := NewBoundingBox(old.X, old.Y, fp.Width, fp.Length)
	to := NewBoundingBox(new.X, new.Y, fp.Width, fp.Length)
	return blocks(from, to, obstacle)
}

// blocks reports whether sweeping from -> to enters the obstacle. An actor
// already overlapping it may still move away from its center.
func blocks(from, to, obstacle BoundingBox) bool {
	if !from.Union(to).Overlaps(obstacle) {
		return false
	}
	if !from.Overlaps(obstacle) {
		return true
	}
	c := obstacle.Center()
	return to.Center().DistSquared(c) < from.Center().DistSquared(c)
}

// Combine multiplies damping vectors component-wise
func Combine(a, b mathutil.Vec2) mathutil.Vec2 {
	return mathutil.Vec2{X: a.X * b.X, Y: a.Y * b.Y}
}
