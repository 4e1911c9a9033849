package mesh

// Box returns the 12 triangles of a closed axis-aligned rectangular
// prism centered at (cx,cy) in XY and spanning [z, z+height] in Z.
//
// Vertex order per face (bottom, top, front, back, left, right) is
// fixed so that every face winds outward.
func Box(cx, cy, z, width, depth, height float64) []Tri {
	x0, x1 := cx-width/2, cx+width/2
	y0, y1 := cy-depth/2, cy+depth/2
	z0, z1 := z, z+height

	v := [8]Vec{
		{x0, y0, z0},
		{x1, y0, z0},
		{x1, y1, z0},
		{x0, y1, z0},
		{x0, y0, z1},
		{x1, y0, z1},
		{x1, y1, z1},
		{x0, y1, z1},
	}

	return []Tri{
		{v[0], v[2], v[1]}, {v[0], v[3], v[2]}, // bottom (-Z)
		{v[4], v[5], v[6]}, {v[4], v[6], v[7]}, // top (+Z)
		{v[0], v[1], v[5]}, {v[0], v[5], v[4]}, // front (-Y)
		{v[2], v[3], v[7]}, {v[2], v[7], v[6]}, // back (+Y)
		{v[0], v[4], v[7]}, {v[0], v[7], v[3]}, // left (-X)
		{v[1], v[2], v[6]}, {v[1], v[6], v[5]}, // right (+X)
	}
}
