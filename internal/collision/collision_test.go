package collision

import (
	"math"
	"testing"

	"levelengine/internal/mathutil"
)

func v(x, y float64) mathutil.Vec2 { return mathutil.Vec2{X: x, Y: y} }

// tileSegments returns the four edges of the unit tile at (i, j)
func tileSegments(i, j float64) []Segment {
	return []Segment{
		{Start: v(i, j), End: v(i+1, j)},
		{Start: v(i, j+1), End: v(i+1, j+1)},
		{Start: v(i, j), End: v(i, j+1)},
		{Start: v(i+1, j), End: v(i+1, j+1)},
	}
}

func TestBoundingBoxOverlapsIsStrict(t *testing.T) {
	a := NewBoundingBox(0, 0, 2, 2)
	touching := NewBoundingBox(2, 0, 2, 2)
	if a.Overlaps(touching) {
		t.Error("boxes sharing an edge should not overlap")
	}
	if !a.Intersects(touching) {
		t.Error("boxes sharing an edge should intersect")
	}
	if !a.Overlaps(NewBoundingBox(1.5, 0.5, 2, 2)) {
		t.Error("expected overlap")
	}
}

func TestBoundingBoxOverlapsSegment(t *testing.T) {
	wall := Segment{Start: v(1, 0), End: v(1, 4)}.Box()
	if !NewBoundingBox(1, 2, 0.5, 0.5).Overlaps(wall) {
		t.Error("box straddling the wall should overlap it")
	}
	if NewBoundingBox(0.75, 2, 0.5, 0.5).Overlaps(wall) {
		t.Error("box touching the wall should not overlap it")
	}
}

func TestNegativeExtentsAreFolded(t *testing.T) {
	bb := NewBoundingBox(0, 0, -2, -4)
	if bb.Width != 2 || bb.Height != 4 {
		t.Errorf("got %vx%v", bb.Width, bb.Height)
	}
}

func TestDamping_ZeroMove(t *testing.T) {
	wall := Segment{Start: v(1, 0), End: v(1, 4)}.Box()
	if d := Damping(v(0.5, 1), v(0.5, 1), Footprint{0.5, 0.5}, wall); d != Identity {
		t.Errorf("expected identity for zero move, got %v", d)
	}
}

func TestDamping_SlideAlongWall(t *testing.T) {
	wall := Segment{Start: v(2, 0), End: v(2, 4)}.Box()
	d := Damping(v(1.5, 1), v(2.3, 1.3), Footprint{0.5, 0.5}, wall)
	if d.X != 0 {
		t.Errorf("expected X blocked, got %v", d)
	}
	if d.Y != 1 {
		t.Errorf("expected Y preserved for sliding, got %v", d)
	}
}

func TestDamping_DiagonalCorner(t *testing.T) {
	block := NewBoundingBox(3, 3, 1, 1)
	d := Damping(v(2.3, 2.3), v(2.7, 2.7), Footprint{0.2, 0.2}, block)
	if d != (mathutil.Vec2{}) {
		t.Errorf("expected corner clip to stop both axes, got %v", d)
	}
}

func TestDamping_AlreadyOverlappingCanLeave(t *testing.T) {
	block := NewBoundingBox(0, 0, 1, 1)
	if d := Damping(v(0.4, 0), v(0.8, 0), Footprint{0.5, 0.5}, block); d.X != 1 {
		t.Errorf("moving away from an overlapped obstacle should be allowed, got %v", d)
	}
	if d := Damping(v(0.4, 0), v(0.2, 0), Footprint{0.5, 0.5}, block); d.X != 0 {
		t.Errorf("moving deeper into an overlapped obstacle should be blocked, got %v", d)
	}
}

func TestDamping_PointFootprint(t *testing.T) {
	wall := Segment{Start: v(1, 0), End: v(1, 2)}.Box()
	if d := Damping(v(0.5, 1), v(1.5, 1), Footprint{}, wall); d.X != 0 {
		t.Errorf("point footprint should still be stopped by crossing a wall, got %v", d)
	}
}

func TestResolve_ContainmentAroundSolidTile(t *testing.T) {
	cs := NewCollisionSystem(tileSegments(1, 1), 1)
	fp := Footprint{Width: 0.2, Length: 0.2}

	olds := []mathutil.Vec2{
		v(0.5, 0.5), v(1.5, 0.5), v(2.5, 0.5), v(0.5, 1.5),
		v(2.5, 1.5), v(0.5, 2.5), v(1.5, 2.5), v(2.5, 2.5),
	}
	news := []mathutil.Vec2{v(1.2, 1.2), v(1.5, 1.5), v(1.8, 1.3), v(1.1, 1.9)}

	for _, old := range olds {
		for _, target := range news {
			d := cs.Resolve(old, target, fp, nil)
			delta := target.Sub(old)
			got := old.Add(v(delta.X*d.X, delta.Y*d.Y))
			if got.X > 1 && got.X < 2 && got.Y > 1 && got.Y < 2 {
				t.Errorf("move %v -> %v resolved inside solid tile at %v (damping %v)", old, target, got, d)
			}
		}
	}
}

func TestResolve_SlideAcrossSegmentSeams(t *testing.T) {
	var wall []Segment
	for z := 0; z < 5; z++ {
		wall = append(wall, Segment{Start: v(3, float64(z)), End: v(3, float64(z+1))})
	}
	cs := NewCollisionSystem(wall, 1)
	fp := Footprint{Width: 0.4, Length: 0.4}

	pos := v(2.8, 0.5)
	step := v(0.05, 0.05)
	for i := 0; i < 60; i++ {
		d := cs.Resolve(pos, pos.Add(step), fp, nil)
		if d.Y != 1 {
			t.Fatalf("step %d at %v: damping %v, want Y free", i, pos, d)
		}
		pos = pos.Add(v(step.X*d.X, step.Y*d.Y))
	}
	if pos.X != 2.8 || pos.Y < 3.45 {
		t.Errorf("final position %v, want x=2.8 and z past 3.45", pos)
	}
}

func TestResolve_CornerOnlyWhenFullDiagonal(t *testing.T) {
	cs := NewCollisionSystem(nil, 1)
	block := NewBoundingBox(2.5, 2.5, 1, 1)
	d := cs.Resolve(v(1.85, 1.85), v(2.15, 2.15), Footprint{0.2, 0.2}, []BoundingBox{block})
	if d != (mathutil.Vec2{}) {
		t.Errorf("diagonal into a corner = %v, want stopped", d)
	}
}

func TestResolve_DynamicObstacle(t *testing.T) {
	cs := NewCollisionSystem(nil, 1)
	door := NewBoundingBox(3, 1, 1, 0.2)
	d := cs.Resolve(v(3, 0.5), v(3, 1.5), Footprint{0.4, 0.4}, []BoundingBox{door})
	if d.Y != 0 {
		t.Errorf("expected door to block Y, got %v", d)
	}
}

func TestSegmentIntersection(t *testing.T) {
	p, ok := SegmentIntersection(v(0, 0), v(4, 0), v(2, -1), v(2, 1))
	if !ok || p != v(2, 0) {
		t.Fatalf("got %v %v", p, ok)
	}
	if _, ok := SegmentIntersection(v(0, 0), v(4, 0), v(0, 1), v(4, 1)); ok {
		t.Error("parallel segments should not intersect")
	}
	if _, ok := SegmentIntersection(v(1, 1), v(1, 1), v(0, 0), v(2, 2)); ok {
		t.Error("zero-length segment should not intersect")
	}
	if _, ok := SegmentIntersection(v(0, 0), v(1, 0), v(2, -1), v(2, 1)); ok {
		t.Error("segment ending before the wall should not intersect")
	}
}

func TestRayBox(t *testing.T) {
	box := NewBoundingBox(5, 0, 2, 2)
	p, ok := RayBox(v(0, 0), v(10, 0), box)
	if !ok || math.Abs(p.X-4) > 1e-9 || p.Y != 0 {
		t.Fatalf("expected entry at (4,0), got %v %v", p, ok)
	}
	if _, ok := RayBox(v(0, 3), v(10, 3), box); ok {
		t.Error("ray passing above box should miss")
	}
	if _, ok := RayBox(v(0, 0), v(3, 0), box); ok {
		t.Error("ray stopping short should miss")
	}
	if p, ok := RayBox(v(5, 0), v(10, 0), box); !ok || p != v(5, 0) {
		t.Errorf("ray starting inside should hit at start, got %v %v", p, ok)
	}
	if _, ok := RayBox(v(5, 0), v(5, 0), box); ok {
		t.Error("zero-length ray should never hit")
	}
}

func TestRaycast_Nearest(t *testing.T) {
	segments := []Segment{
		{Start: v(5, -1), End: v(5, 1)},
		{Start: v(3, -1), End: v(3, 1)},
		{Start: v(8, -1), End: v(8, 1)},
	}
	cs := NewCollisionSystem(segments, 2)
	hit, ok := cs.Raycast(v(0, 0), v(10, 0))
	if !ok {
		t.Fatal("expected hit")
	}
	if hit.Segment != 1 || hit.Point != v(3, 0) || hit.Dist != 3 {
		t.Errorf("expected nearest wall at x=3, got %+v", hit)
	}
	if cs.CheckLineOfSight(v(0, 0), v(10, 0)) {
		t.Error("expected blocked line of sight")
	}
	if !cs.CheckLineOfSight(v(0, 0), v(2, 0)) {
		t.Error("expected clear line of sight")
	}
}

func TestRaycast_StartOnWall(t *testing.T) {
	segments := []Segment{
		{Start: v(1, 1), End: v(1, 2)},
		{Start: v(4, 1), End: v(4, 2)},
	}
	cs := NewCollisionSystem(segments, 4)

	hit, ok := cs.Raycast(v(1, 1.5), v(7.9, 1.5))
	if !ok || hit.Segment != 1 || hit.Point != v(4, 1.5) {
		t.Errorf("ray leaving a wall: got %+v %v, want the far wall at x=4", hit, ok)
	}
	if _, ok := cs.Raycast(v(1, 1.5), v(0.5, 1.5)); ok {
		t.Error("ray leaving a wall the other way hit its own wall")
	}
}

func TestSegmentGridQueryDeduplicates(t *testing.T) {
	long := Segment{Start: v(0, 0.5), End: v(10, 0.5)}
	g := NewSegmentGrid([]Segment{long}, 1)
	got := g.Query(NewBoundingBox(5, 0.5, 10, 1))
	if len(got) != 1 || got[0] != 0 {
		t.Errorf("expected a single index, got %v", got)
	}
	if got := g.Query(NewBoundingBox(5, 8, 1, 1)); len(got) != 0 {
		t.Errorf("expected no segments far away, got %v", got)
	}
}
