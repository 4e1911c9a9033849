// Package mesh provides the triangle primitives and indexed meshes used
// to build printable QR plates.
package mesh

// Vec is a point in millimeters.
type Vec [3]float64

// Tri is a single triangle with outward-facing winding.
type Tri [3]Vec

// Normal returns the (unnormalized) face normal of the triangle.
func (t Tri) Normal() Vec {
	ux := t[1][0] - t[0][0]
	uy := t[1][1] - t[0][1]
	uz := t[1][2] - t[0][2]
	vx := t[2][0] - t[0][0]
	vy := t[2][1] - t[0][1]
	vz := t[2][2] - t[0][2]
	return Vec{
		uy*vz - uz*vy,
		uz*vx - ux*vz,
		ux*vy - uy*vx,
	}
}

// Mesh is a named, material-tagged indexed triangle mesh.
// Vertices shared between triangles are stored once.
type Mesh struct {
	Name     string
	Material int // zero-based index into the exported materials

	verts []Vec
	index map[Vec]int
	tris  [][3]int
}

// New returns an empty mesh.
func New(name string, material int) *Mesh {
	return &Mesh{
		Name:     name,
		Material: material,
		index:    map[Vec]int{},
	}
}

// Add appends one triangle, deduplicating its vertices.
func (m *Mesh) Add(t Tri) {
	if m.index == nil {
		m.index = map[Vec]int{}
	}
	var tri [3]int
	for i, v := range t {
		vi, ok := m.index[v]
		if !ok {
			vi = len(m.verts)
			m.verts = append(m.verts, v)
			m.index[v] = vi
		}
		tri[i] = vi
	}
	m.tris = append(m.tris, tri)
}

// AddAll appends a batch of triangles.
func (m *Mesh) AddAll(ts []Tri) {
	for _, t := range ts {
		m.Add(t)
	}
}

// NumTriangles returns the triangle count.
func (m *Mesh) NumTriangles() int { return len(m.tris) }

// NumVertices returns the deduplicated vertex count.
func (m *Mesh) NumVertices() int { return len(m.verts) }

// Vertices returns the deduplicated vertex buffer.
func (m *Mesh) Vertices() []Vec { return m.verts }

// Triangles returns index triples into Vertices.
func (m *Mesh) Triangles() [][3]int { return m.tris }

// Tris expands the mesh back into standalone triangles.
func (m *Mesh) Tris() []Tri {
	out := make([]Tri, 0, len(m.tris))
	for _, tri := range m.tris {
		out = append(out, Tri{m.verts[tri[0]], m.verts[tri[1]], m.verts[tri[2]]})
	}
	return out
}

// MBB returns the minimum bounding box of the mesh.
func (m *Mesh) MBB() (min, max Vec) {
	for i, v := range m.verts {
		for c := 0; c < 3; c++ {
			if i == 0 || v[c] < min[c] {
				min[c] = v[c]
			}
			if i == 0 || v[c] > max[c] {
				max[c] = v[c]
			}
		}
	}
	return min, max
}

// TranslateZ shifts a batch of triangles along the Z axis.
func TranslateZ(ts []Tri, dz float64) []Tri {
	out := make([]Tri, len(ts))
	for i, t := range ts {
		for j, v := range t {
			v[2] += dz
			out[i][j] = v
		}
	}
	return out
}
