package collision

import (
	"math"

	"levelengine/internal/mathutil"
)

// rayEpsilon is the distance under which a hit counts as the ray's own start
const rayEpsilon = 1e-9

// RayHit describes the nearest static hit of a ray
type RayHit struct {
	Point   mathutil.Vec2
	Dist    float64
	Segment int
}

// CollisionSystem answers sweep and ray queries against the static segments
// of one level.
type CollisionSystem struct {
	grid *SegmentGrid
}

// NewCollisionSystem creates a new collision system
func NewCollisionSystem(segments []Segment, cellSize float64) *CollisionSystem {
	return &CollisionSystem{
		grid: NewSegmentGrid(segments, cellSize),
	}
}

// Segments returns the static segments
func (cs *CollisionSystem) Segments() []Segment {
	return cs.grid.Segments()
}

// Resolve returns the damping vector for moving a footprint from old to new
// against the static segments and the given dynamic obstacles. Axes are
// damped per obstacle and combined first; the diagonal corner test only runs
// when the combined move is still the full diagonal.
func (cs *CollisionSystem) Resolve(old, new mathutil.Vec2, fp Footprint, obstacles []BoundingBox) mathutil.Vec2 {
	d := Identity
	if old == new {
		return d
	}

	swept := NewBoundingBox(old.X, old.Y, fp.Width, fp.Length).
		Union(NewBoundingBox(new.X, new.Y, fp.Width, fp.Length))

	segments := cs.grid.Segments()
	candidates := make([]BoundingBox, 0, len(obstacles)+8)
	for _, idx := range cs.grid.Query(swept) {
		candidates = append(candidates, segments[idx].Box())
	}
	candidates = append(candidates, obstacles...)

	for _, box := range candidates {
		d = Combine(d, axisDamping(old, new, fp, box))
		if d == (mathutil.Vec2{}) {
			return d
		}
	}
	if d != Identity {
		return d
	}
	for _, box := range candidates {
		if cornerBlocked(old, new, fp, box) {
			return mathutil.Vec2{}
		}
	}
	return d
}

// Raycast returns the static hit nearest to start along start-end. Hits at
// the start point itself are ignored.
func (cs *CollisionSystem) Raycast(start, end mathutil.Vec2) (RayHit, bool) {
	best := RayHit{Dist: math.Inf(1), Segment: -1}
	if start == end {
		return best, false
	}

	segments := cs.grid.Segments()
	rayBox := Segment{Start: start, End: end}.Box()
	for _, idx := range cs.grid.Query(rayBox) {
		s := segments[idx]
		p, ok := SegmentIntersection(start, end, s.Start, s.End)
		if !ok {
			continue
		}
		// A ray leaving from a wall does not hit the wall it stands on.
		d := start.Dist(p)
		if d <= rayEpsilon {
			continue
		}
		if d < best.Dist {
			best = RayHit{Point: p, Dist: d, Segment: idx}
		}
	}
	return best, best.Segment >= 0
}

// CheckLineOfSight checks if there's a clear line of sight between two points
func (cs *CollisionSystem) CheckLineOfSight(start, end mathutil.Vec2) bool {
	_, hit := cs.Raycast(start, end)
	return !hit
}
