package mesh

// AtlasCoords returns the atlas cell for a texture id.
func AtlasCoords(id int) (col, row int) {
	return (id / 16) % AtlasSize, id / 64
}

// AtlasUV returns the UV corners of an atlas cell in quad order
// (u0,v0) (u1,v0) (u1,v1) (u0,v1).
func AtlasUV(id int) [4][2]float64 {
	col, row := AtlasCoords(id)
	cell := 1.0 / AtlasSize
	u0, v0 := float64(col)*cell, float64(row)*cell
	u1, v1 := u0+cell, v0+cell
	return [4][2]float64{{u0, v0}, {u1, v0}, {u1, v1}, {u0, v1}}
}
