package collision

import (
	"math"
	"slices"
)

// CellKey represents a cell in the segment grid
type CellKey struct {
	X, Y int
}

// SegmentGrid buckets static segments by grid cell so that sweeps and rays
// only visit segments near them. It is read-only after construction.
type SegmentGrid struct {
	cellSize float64
	segments []Segment
	cells    map[CellKey][]int
}

// NewSegmentGrid indexes segments with the given cell size in world units
func NewSegmentGrid(segments []Segment, cellSize float64) *SegmentGrid {
	if cellSize <= 0 {
		cellSize = 1
	}
	g := &SegmentGrid{
		cellSize: cellSize,
		segments: segments,
		cells:    make(map[CellKey][]int),
	}
	for i, s := range segments {
		g.forEachCell(s.Box(), func(key CellKey) {
			g.cells[key] = append(g.cells[key], i)
		})
	}
	return g
}

// Segments returns every indexed segment
func (g *SegmentGrid) Segments() []Segment {
	return g.segments
}

// Query returns the indices of segments whose cells touch the box, in
// ascending order.
func (g *SegmentGrid) Query(box BoundingBox) []int {
	seen := make(map[int]struct{})
	var result []int
	g.forEachCell(box, func(key CellKey) {
		for _, idx := range g.cells[key] {
			if _, dup := seen[idx]; dup {
				continue
			}
			seen[idx] = struct{}{}
			result = append(result, idx)
		}
	})
	slices.Sort(result)
	return result
}

func (g *SegmentGrid) forEachCell(box BoundingBox, fn func(CellKey)) {
	minX, minY, maxX, maxY := box.GetBounds()
	x0 := int(math.Floor(minX / g.cellSize))
	y0 := int(math.Floor(minY / g.cellSize))
	x1 := int(math.Floor(maxX / g.cellSize))
	y1 := int(math.Floor(maxY / g.cellSize))
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			fn(CellKey{X: x, Y: y})
		}
	}
}
