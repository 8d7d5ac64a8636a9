// Package debug builds line geometry and captures screenshots for the
// desktop simulator.
package debug

import (
	"github.com/Faultbox/midgard-xr/pkg/geom"
	"github.com/Faultbox/midgard-xr/pkg/math"
)

// BoxVertexCount is the number of line vertices of a box (12 edges x 2).
const BoxVertexCount = 24

// DefaultBoxPadding is the padding of selection boxes in meters.
const DefaultBoxPadding = 0.02

// BoxLines returns line vertices, [x, y, z] per vertex, for the edges of box
// grown by padding on every side.
func BoxLines(box geom.AABB, padding float32) []float32 {
	lo := box.Min().Sub(math.Vec3{X: padding, Y: padding, Z: padding})
	hi := box.Max().Add(math.Vec3{X: padding, Y: padding, Z: padding})
	return boxLines(lo.X, lo.Y, lo.Z, hi.X, hi.Y, hi.Z)
}

func boxLines(minX, minY, minZ, maxX, maxY, maxZ float32) []float32 {
	return []float32{
		// Bottom face
		minX, minY, minZ, maxX, minY, minZ,
		maxX, minY, minZ, maxX, minY, maxZ,
		maxX, minY, maxZ, minX, minY, maxZ,
		minX, minY, maxZ, minX, minY, minZ,
		// Top face
		minX, maxY, minZ, maxX, maxY, minZ,
		maxX, maxY, minZ, maxX, maxY, maxZ,
		maxX, maxY, maxZ, minX, maxY, maxZ,
		minX, maxY, maxZ, minX, maxY, minZ,
		// Verticals
		minX, minY, minZ, minX, maxY, minZ,
		maxX, minY, minZ, maxX, maxY, minZ,
		maxX, minY, maxZ, maxX, maxY, maxZ,
		minX, minY, maxZ, minX, maxY, maxZ,
	}
}

// MeshLines returns the triangle edges of mesh placed by scale then pose.
// Invalid meshes produce no lines.
func MeshLines(mesh *geom.TriPrimitiveMesh, scale math.Vec3, pose math.Pose) []float32 {
	if !mesh.IsValid() {
		return nil
	}
	out := make([]float32, 0, mesh.TriangleCount()*18)
	for i := 0; i < mesh.TriangleCount(); i++ {
		a, b, c := mesh.Triangle(i)
		a = pose.TransformPoint(a.Mul(scale))
		b = pose.TransformPoint(b.Mul(scale))
		c = pose.TransformPoint(c.Mul(scale))
		out = appendLine(out, a, b)
		out = appendLine(out, b, c)
		out = appendLine(out, c, a)
	}
	return out
}

// RectLines returns the outline of a rectangle with half-extents half lying
// in the XY plane of pose.
func RectLines(pose math.Pose, half math.Vec2) []float32 {
	corners := [4]math.Vec3{
		pose.TransformPoint(math.Vec3{X: -half.X, Y: -half.Y}),
		pose.TransformPoint(math.Vec3{X: half.X, Y: -half.Y}),
		pose.TransformPoint(math.Vec3{X: half.X, Y: half.Y}),
		pose.TransformPoint(math.Vec3{X: -half.X, Y: half.Y}),
	}
	out := make([]float32, 0, 4*6)
	for i := range corners {
		out = appendLine(out, corners[i], corners[(i+1)%4])
	}
	return out
}

// RayLine returns a segment from the ray origin along its direction.
func RayLine(r geom.Ray, length float32) []float32 {
	return appendLine(nil, r.Origin(), r.PointAt(length))
}

func appendLine(dst []float32, a, b math.Vec3) []float32 {
	return append(dst, a.X, a.Y, a.Z, b.X, b.Y, b.Z)
}
