package collision

import (
	"math"

	"levelengine/internal/mathutil"
)

// SegmentIntersection returns the crossing point of segments p1-p2 and q1-q2.
// Parallel, collinear and zero-length segments never intersect.
func SegmentIntersection(p1, p2, q1, q2 mathutil.Vec2) (mathutil.Vec2, bool) {
	r := p2.Sub(p1)
	s := q2.Sub(q1)
	denom := r.Cross(s)
	if denom == 0 {
		return mathutil.Vec2{}, false
	}

	qp := q1.Sub(p1)
	t := qp.Cross(s) / denom
	u := qp.Cross(r) / denom
	if t < 0 || t > 1 || u < 0 || u > 1 {
		return mathutil.Vec2{}, false
	}
	return p1.Add(r.Scale(t)), true
}

// RayBox returns the first point where segment start-end enters the box. A
// segment starting inside the box hits at its start. Zero-length segments
// never hit.
func RayBox(start, end mathutil.Vec2, box BoundingBox) (mathutil.Vec2, bool) {
	dir := end.Sub(start)
	if dir == (mathutil.Vec2{}) {
		return mathutil.Vec2{}, false
	}

	minX, minY, maxX, maxY := box.GetBounds()
	tMin, tMax := 0.0, 1.0

	if !clipSlab(start.X, dir.X, minX, maxX, &tMin, &tMax) {
		return mathutil.Vec2{}, false
	}
	if !clipSlab(start.Y, dir.Y, minY, maxY, &tMin, &tMax) {
		return mathutil.Vec2{}, false
	}
	return start.Add(dir.Scale(tMin)), true
}

func clipSlab(origin, dir, lo, hi float64, tMin, tMax *float64) bool {
	if dir == 0 {
		return origin >= lo && origin <= hi
	}
	t1 := (lo - origin) / dir
	t2 := (hi - origin) / dir
	if t1 > t2 {
		t1, t2 = t2, t1
	}
	*tMin = math.Max(*tMin, t1)
	*tMax = math.Min(*tMax, t2)
	return *tMin <= *tMax
}
