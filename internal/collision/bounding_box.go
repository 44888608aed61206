package collision

import (
	"math"

	"levelengine/internal/mathutil"
)

// BoundingBox represents a rectangular collision boundary on the level plane
type BoundingBox struct {
	X      float64 // Center X coordinate
	Y      float64 // Center Y (world Z) coordinate
	Width  float64 // Extent along X
	Height float64 // Extent along Y (world Z)
}

// NewBoundingBox creates a new bounding box centered at the given position.
// Negative extents are folded to their absolute value; zero extents make a
// line or point box.
func NewBoundingBox(x, y, width, height float64) BoundingBox {
	return BoundingBox{
		X:      x,
		Y:      y,
		Width:  math.Abs(width),
		Height: math.Abs(height),
	}
}

// BoxAt creates a bounding box centered on a plane point
func BoxAt(center mathutil.Vec2, size mathutil.Vec2) BoundingBox {
	return NewBoundingBox(center.X, center.Y, size.X, size.Y)
}

// GetBounds returns the min/max coordinates of the bounding box
func (bb BoundingBox) GetBounds() (minX, minY, maxX, maxY float64) {
	halfWidth := bb.Width / 2
	halfHeight := bb.Height / 2

	minX = bb.X - halfWidth
	maxX = bb.X + halfWidth
	minY = bb.Y - halfHeight
	maxY = bb.Y + halfHeight

	return minX, minY, maxX, maxY
}

// Center returns the center point
func (bb BoundingBox) Center() mathutil.Vec2 {
	return mathutil.Vec2{X: bb.X, Y: bb.Y}
}

// Intersects checks if this bounding box touches or overlaps another
func (bb BoundingBox) Intersects(other BoundingBox) bool {
	minX1, minY1, maxX1, maxY1 := bb.GetBounds()
	minX2, minY2, maxX2, maxY2 := other.GetBounds()

	return !(maxX1 < minX2 || maxX2 < minX1 || maxY1 < minY2 || maxY2 < minY1)
}

// Overlaps checks for strict interior overlap. Boxes that only share an
// edge do not overlap, which lets actors slide along walls they touch.
func (bb BoundingBox) Overlaps(other BoundingBox) bool {
	minX1, minY1, maxX1, maxY1 := bb.GetBounds()
	minX2, minY2, maxX2, maxY2 := other.GetBounds()

	return spanOverlap(minX1, maxX1, minX2, maxX2) && spanOverlap(minY1, maxY1, minY2, maxY2)
}

// spanOverlap reports whether two closed spans share interior. A degenerate
// span overlaps when it lies strictly inside the other one.
func spanOverlap(a0, a1, b0, b1 float64) bool {
	switch {
	case a0 == a1 && b0 == b1:
		return a0 == b0
	case a0 == a1:
		return b0 < a0 && a0 < b1
	case b0 == b1:
		return a0 < b0 && b0 < a1
	default:
		return a0 < b1 && b0 < a1
	}
}

// Contains checks if a point is inside the bounding box
func (bb BoundingBox) Contains(point mathutil.Vec2) bool {
	minX, minY, maxX, maxY := bb.GetBounds()
	return point.X >= minX && point.X <= maxX && point.Y >= minY && point.Y <= maxY
}

// Union returns the smallest box containing both boxes
func (bb BoundingBox) Union(other BoundingBox) BoundingBox {
	minX1, minY1, maxX1, maxY1 := bb.GetBounds()
	minX2, minY2, maxX2, maxY2 := other.GetBounds()

	minX, minY := math.Min(minX1, minX2), math.Min(minY1, minY2)
	maxX, maxY := math.Max(maxX1, maxX2), math.Max(maxY1, maxY2)
	return BoundingBox{
		X:      (minX + maxX) / 2,
		Y:      (minY + maxY) / 2,
		Width:  maxX - minX,
		Height: maxY - minY,
	}
}
