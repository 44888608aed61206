package collision

import (
	"math"

	"levelengine/internal/mathutil"
)

// Segment is a static wall span on the level plane. The compiler emits one
// per solid/open tile boundary.
type Segment struct {
	Start mathutil.Vec2
	End   mathutil.Vec2
}

// Box returns the zero-thickness bounding box of an axis-aligned segment.
func (s Segment) Box() BoundingBox {
	minX, maxX := math.Min(s.Start.X, s.End.X), math.Max(s.Start.X, s.End.X)
	minY, maxY := math.Min(s.Start.Y, s.End.Y), math.Max(s.Start.Y, s.End.Y)
	return BoundingBox{
		X:      (minX + maxX) / 2,
		Y:      (minY + maxY) / 2,
		Width:  maxX - minX,
		Height: maxY - minY,
	}
}

// Length returns the segment length
func (s Segment) Length() float64 {
	return s.Start.Dist(s.End)
}
