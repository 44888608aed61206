package level

import (
	"levelengine/internal/collision"
	"levelengine/internal/mathutil"
	"levelengine/internal/mesh"
	"levelengine/internal/threading/core"
)

// TileCoord addresses one bitmap pixel
type TileCoord struct {
	X, Y int
}

// Geometry is the static output of the compiler
type Geometry struct {
	Mesh     *mesh.Mesh
	Segments []collision.Segment
	Outdoor  []TileCoord
}

// CompileOptions controls mesh generation
type CompileOptions struct {
	TileSize   float64
	WallHeight float64
	Parallel   bool
}

// wallSide describes one neighbour direction of an open tile
type wallSide struct {
	dx, dy  int
	winding mesh.Winding
	// edge returns the boundary start and end for the tile spanning
	// [x0,x1]x[z0,z1]
	edge func(x0, z0, x1, z1 float64) (a, b mathutil.Vec2)
}

// Faces point away from the solid neighbour.
var wallSides = [4]wallSide{
	{dx: 0, dy: -1, winding: true, edge: func(x0, z0, x1, z1 float64) (mathutil.Vec2, mathutil.Vec2) {
		return mathutil.Vec2{X: x0, Y: z0}, mathutil.Vec2{X: x1, Y: z0}
	}},
	{dx: 0, dy: 1, winding: false, edge: func(x0, z0, x1, z1 float64) (mathutil.Vec2, mathutil.Vec2) {
		return mathutil.Vec2{X: x0, Y: z1}, mathutil.Vec2{X: x1, Y: z1}
	}},
	{dx: -1, dy: 0, winding: false, edge: func(x0, z0, x1, z1 float64) (mathutil.Vec2, mathutil.Vec2) {
		return mathutil.Vec2{X: x0, Y: z0}, mathutil.Vec2{X: x0, Y: z1}
	}},
	{dx: 1, dy: 0, winding: true, edge: func(x0, z0, x1, z1 float64) (mathutil.Vec2, mathutil.Vec2) {
		return mathutil.Vec2{X: x1, Y: z0}, mathutil.Vec2{X: x1, Y: z1}
	}},
}

type rowGeometry struct {
	mesh     mesh.Mesh
	segments []collision.Segment
	outdoor  []TileCoord
}

// Compile builds the level mesh and collision segments. The border ring is
// never emitted. Rows may be built concurrently; they are merged in row
// order so the output does not depend on scheduling.
func Compile(bm *Bitmap, opts CompileOptions) *Geometry {
	rows := make([]int, 0, bm.Height)
	for y := 1; y < bm.Height-1; y++ {
		rows = append(rows, y)
	}

	build := func(y int) rowGeometry { return compileRow(bm, y, opts) }
	var built []rowGeometry
	if opts.Parallel {
		built = core.ParallelMap(rows, build)
	} else {
		built = make([]rowGeometry, len(rows))
		for i, y := range rows {
			built[i] = build(y)
		}
	}

	geo := &Geometry{Mesh: &mesh.Mesh{}}
	for i := range built {
		geo.Mesh.Append(&built[i].mesh)
		geo.Segments = append(geo.Segments, built[i].segments...)
		geo.Outdoor = append(geo.Outdoor, built[i].outdoor...)
	}
	return geo
}

func compileRow(bm *Bitmap, y int, opts CompileOptions) rowGeometry {
	var row rowGeometry
	ts, h := opts.TileSize, opts.WallHeight

	for x := 1; x < bm.Width-1; x++ {
		tile := bm.Tile(x, y)
		if tile.Solid {
			continue
		}
		x0, z0 := float64(x)*ts, float64(y)*ts
		x1, z1 := x0+ts, z0+ts

		row.mesh.AddQuad(flatQuad(x0, z0, x1, z1, 0, tile.FloorTex), false)
		if tile.HasCeiling {
			row.mesh.AddQuad(flatQuad(x0, z0, x1, z1, h, tile.CeilTex), true)
		} else {
			row.outdoor = append(row.outdoor, TileCoord{X: x, Y: y})
		}

		for _, side := range wallSides {
			nx, ny := x+side.dx, y+side.dy
			if !bm.Solid(nx, ny) {
				continue
			}
			a, b := side.edge(x0, z0, x1, z1)
			row.mesh.AddQuad(wallQuad(a, b, h, bm.Tile(nx, ny).FloorTex), side.winding)
			row.segments = append(row.segments, collision.Segment{Start: a, End: b})
		}
	}
	return row
}

func flatQuad(x0, z0, x1, z1, y float64, tex int) [4]mesh.Vertex {
	uv := mesh.AtlasUV(tex)
	return [4]mesh.Vertex{
		{Pos: mathutil.Vec3{X: x0, Y: y, Z: z0}, U: uv[0][0], V: uv[0][1]},
		{Pos: mathutil.Vec3{X: x1, Y: y, Z: z0}, U: uv[1][0], V: uv[1][1]},
		{Pos: mathutil.Vec3{X: x1, Y: y, Z: z1}, U: uv[2][0], V: uv[2][1]},
		{Pos: mathutil.Vec3{X: x0, Y: y, Z: z1}, U: uv[3][0], V: uv[3][1]},
	}
}

func wallQuad(a, b mathutil.Vec2, h float64, tex int) [4]mesh.Vertex {
	uv := mesh.AtlasUV(tex)
	// Texture v runs top to bottom.
	return [4]mesh.Vertex{
		{Pos: a.Lift(0), U: uv[0][0], V: uv[3][1]},
		{Pos: b.Lift(0), U: uv[1][0], V: uv[2][1]},
		{Pos: b.Lift(h), U: uv[2][0], V: uv[1][1]},
		{Pos: a.Lift(h), U: uv[3][0], V: uv[0][1]},
	}
}

// structuralAxis validates a door-class tile: it needs solid neighbours on
// exactly one axis.
func structuralAxis(bm *Bitmap, x, y int) (axisX bool, err error) {
	horizontal := bm.Solid(x-1, y) && bm.Solid(x+1, y)
	vertical := bm.Solid(x, y-1) && bm.Solid(x, y+1)
	switch {
	case horizontal && vertical:
		return false, &TileError{X: x, Y: y, Code: bm.Tile(x, y).Code, Reason: "solid neighbours on both axes"}
	case !horizontal && !vertical:
		return false, &TileError{X: x, Y: y, Code: bm.Tile(x, y).Code, Reason: "no solid neighbour pair"}
	}
	return horizontal, nil
}
