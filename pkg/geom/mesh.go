package geom

import (
	"github.com/Faultbox/midgard-xr/pkg/math"
)

// TriPrimitiveMesh is an indexed triangle list in local space with a cached
// bounding box. It is owned by a single object and never mutated
// concurrently.
type TriPrimitiveMesh struct {
	vertices []math.Vec3
	indices  []uint32
	bounds   AABB
}

// NewTriPrimitiveMesh creates a mesh. The slices are owned by the mesh after
// the call. An index count that is not a multiple of 3 yields an invalid mesh.
func NewTriPrimitiveMesh(vertices []math.Vec3, indices []uint32) *TriPrimitiveMesh {
	m := &TriPrimitiveMesh{indices: indices}
	m.SetVertices(vertices)
	return m
}

// SetVertices replaces the vertex positions and recomputes the bounds.
func (m *TriPrimitiveMesh) SetVertices(vertices []math.Vec3) {
	m.vertices = vertices

	bounds := EmptyMinMaxAABB()
	for _, v := range vertices {
		bounds.Encapsulate(v)
	}
	m.bounds = bounds.ToAABB()
}

// Vertices returns the local-space vertex positions.
func (m *TriPrimitiveMesh) Vertices() []math.Vec3 {
	return m.vertices
}

// Indices returns the triangle index list.
func (m *TriPrimitiveMesh) Indices() []uint32 {
	return m.indices
}

// Bounds returns the local-space bounding box of all vertices.
func (m *TriPrimitiveMesh) Bounds() AABB {
	return m.bounds
}

// IsValid reports whether the mesh has at least one triangle, an index count
// divisible by 3 and no index past the vertex list.
func (m *TriPrimitiveMesh) IsValid() bool {
	if m == nil || len(m.indices) == 0 || len(m.indices)%3 != 0 {
		return false
	}
	n := uint32(len(m.vertices))
	for _, idx := range m.indices {
		if idx >= n {
			return false
		}
	}
	return true
}

// TriangleCount returns the number of complete triangles.
func (m *TriPrimitiveMesh) TriangleCount() int {
	return len(m.indices) / 3
}

// Triangle returns the three local-space corners of triangle i.
// The mesh must be valid.
func (m *TriPrimitiveMesh) Triangle(i int) (a, b, c math.Vec3) {
	base := i * 3
	return m.vertices[m.indices[base]],
		m.vertices[m.indices[base+1]],
		m.vertices[m.indices[base+2]]
}

// NewBoxMesh builds a closed box centered on the origin, 8 vertices and
// 12 outward-facing triangles.
func NewBoxMesh(halfExtent math.Vec3) *TriPrimitiveMesh {
	corners := AABB{Extent: halfExtent}.Corners()
	vertices := corners[:]
	indices := []uint32{
		0, 3, 2, 0, 2, 1, // -Z
		4, 5, 6, 4, 6, 7, // +Z
		0, 4, 7, 0, 7, 3, // -X
		1, 2, 6, 1, 6, 5, // +X
		0, 1, 5, 0, 5, 4, // -Y
		3, 7, 6, 3, 6, 2, // +Y
	}
	return NewTriPrimitiveMesh(vertices, indices)
}

// NewQuadMesh builds a two-triangle rectangle in the XY plane facing +Z.
func NewQuadMesh(halfX, halfY float32) *TriPrimitiveMesh {
	vertices := []math.Vec3{
		{X: -halfX, Y: -halfY},
		{X: halfX, Y: -halfY},
		{X: halfX, Y: halfY},
		{X: -halfX, Y: halfY},
	}
	return NewTriPrimitiveMesh(vertices, []uint32{0, 1, 2, 0, 2, 3})
}
