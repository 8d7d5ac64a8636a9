package scene

import (
	"github.com/Faultbox/midgard-xr/pkg/geom"
	"github.com/Faultbox/midgard-xr/pkg/intersect"
	"github.com/Faultbox/midgard-xr/pkg/math"
)

// HitShape is a world-space shape the collision detector can test. The set is
// closed: OrientedRect and TransformedMesh.
type HitShape interface {
	// Intersect returns the ray parameter and world point of the nearest hit.
	Intersect(ray geom.Ray) (t float32, point math.Vec3, ok bool)
	hitShape()
}

// OrientedRect is a finite rectangle centered on Pose, lying in the pose's
// local XY plane.
type OrientedRect struct {
	Pose        math.Pose
	HalfExtents math.Vec2
}

// Intersect implements HitShape.
func (r OrientedRect) Intersect(ray geom.Ray) (float32, math.Vec3, bool) {
	return intersect.RayOrientedRect(ray, r.Pose, r.HalfExtents)
}

func (OrientedRect) hitShape() {}

// TransformedMesh is a local-space mesh placed in the world by Scale then Pose.
type TransformedMesh struct {
	Mesh  *geom.TriPrimitiveMesh
	Scale math.Vec3
	Pose  math.Pose
}

// Intersect implements HitShape.
func (m TransformedMesh) Intersect(ray geom.Ray) (float32, math.Vec3, bool) {
	return intersect.RayMeshTransformed(ray, m.Mesh, m.Scale, m.Pose)
}

func (TransformedMesh) hitShape() {}
