package intersect

import (
	"github.com/Faultbox/midgard-xr/pkg/geom"
	"github.com/Faultbox/midgard-xr/pkg/math"
)

// RayMesh intersects a ray with a mesh given in the ray's space. The mesh
// bounds are tested first; then every triangle is scanned and the nearest
// hit is returned. Invalid meshes never hit.
func RayMesh(ray geom.Ray, mesh *geom.TriPrimitiveMesh) (t float32, point math.Vec3, ok bool) {
	if !mesh.IsValid() {
		return 0, math.Vec3{}, false
	}
	if _, _, hit := RayAABB(ray, mesh.Bounds()); !hit {
		return 0, math.Vec3{}, false
	}

	best := math.Inf()
	for i := 0; i < mesh.TriangleCount(); i++ {
		a, b, c := mesh.Triangle(i)
		if ti, hit := RayTriangle(ray, a, b, c); hit && ti < best {
			best = ti
		}
	}
	if best == math.Inf() {
		return 0, math.Vec3{}, false
	}
	return best, ray.PointAt(best), true
}

// RayMeshTransformed intersects a world-space ray with a mesh stored in
// local space. Each vertex is scaled, then moved by pose, before the
// triangle test. The bounds are culled the same way. Transformed vertices
// are not cached, so the cost is linear in the vertex count per query.
func RayMeshTransformed(ray geom.Ray, mesh *geom.TriPrimitiveMesh, scale math.Vec3, pose math.Pose) (t float32, point math.Vec3, ok bool) {
	if !mesh.IsValid() {
		return 0, math.Vec3{}, false
	}

	bounds := geom.TransformAABB(mesh.Bounds().Scaled(scale), pose.Position, pose.Orientation)
	if _, _, hit := RayAABB(ray, bounds); !hit {
		return 0, math.Vec3{}, false
	}

	toWorld := func(v math.Vec3) math.Vec3 {
		return pose.TransformPoint(v.Mul(scale))
	}

	best := math.Inf()
	for i := 0; i < mesh.TriangleCount(); i++ {
		a, b, c := mesh.Triangle(i)
		if ti, hit := RayTriangle(ray, toWorld(a), toWorld(b), toWorld(c)); hit && ti < best {
			best = ti
		}
	}
	if best == math.Inf() {
		return 0, math.Vec3{}, false
	}
	return best, ray.PointAt(best), true
}
