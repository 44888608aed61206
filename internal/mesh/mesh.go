// Package mesh holds the static level geometry produced by the compiler.
package mesh

import "levelengine/internal/mathutil"

// AtlasSize is the number of cells per side of the texture atlas.
const AtlasSize = 4

// Vertex is one corner of a quad.
type Vertex struct {
	Pos mathutil.Vec3
	U   float64
	V   float64
}

// Winding selects one of the two fixed triangle templates of a quad.
// True renders the quad front-facing when its corners run counter-clockwise
// seen from the face normal (v1-v0)x(v2-v0). False is the mirrored order.
type Winding bool

var (
	windingTrue  = [6]uint32{0, 1, 2, 2, 3, 0}
	windingFalse = [6]uint32{0, 2, 1, 0, 3, 2}
)

// Indices returns the six triangle indices for a quad.
func (w Winding) Indices() [6]uint32 {
	if w {
		return windingTrue
	}
	return windingFalse
}

// Mesh is a flat triangle list. It is immutable once the compiler returns it.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
}

// AddQuad appends four corners and two triangles.
func (m *Mesh) AddQuad(corners [4]Vertex, w Winding) {
	base := uint32(len(m.Vertices))
	m.Vertices = append(m.Vertices, corners[:]...)
	for _, idx := range w.Indices() {
		m.Indices = append(m.Indices, base+idx)
	}
}

// Append merges another mesh, rebasing its indices.
func (m *Mesh) Append(other *Mesh) {
	base := uint32(len(m.Vertices))
	m.Vertices = append(m.Vertices, other.Vertices...)
	for _, idx := range other.Indices {
		m.Indices = append(m.Indices, base+idx)
	}
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Triangle returns the corners of triangle i.
func (m *Mesh) Triangle(i int) (a, b, c Vertex) {
	return m.Vertices[m.Indices[3*i]], m.Vertices[m.Indices[3*i+1]], m.Vertices[m.Indices[3*i+2]]
}

// Normal returns the unnormalized face normal of triangle i.
func (m *Mesh) Normal(i int) mathutil.Vec3 {
	a, b, c := m.Triangle(i)
	return b.Pos.Sub(a.Pos).Cross(c.Pos.Sub(a.Pos))
}
