// Package intersect implements ray and shape intersection tests over the
// primitives in pkg/geom. Every test reports success through its boolean
// result; the other return values are unspecified on a miss.
package intersect

import (
	gomath "math"

	"github.com/Faultbox/midgard-xr/pkg/geom"
	"github.com/Faultbox/midgard-xr/pkg/math"
)

const (
	// triangleEpsilon is the determinant below which a ray is treated as
	// parallel to a triangle.
	triangleEpsilon = 1e-6

	// planeEpsilon is the |N·D| below which a ray is treated as parallel to
	// a plane.
	planeEpsilon = 1e-6

	// minNormal is the smallest normal float32 (FLT_MIN).
	minNormal = 1.17549435e-38
)

// RayTriangle intersects a ray with triangle abc (Moller-Trumbore).
// Both faces are hit. Hits behind the ray origin are rejected.
func RayTriangle(ray geom.Ray, a, b, c math.Vec3) (t float32, ok bool) {
	dir := ray.Direction()
	e1 := b.Sub(a)
	e2 := c.Sub(a)

	p := dir.Cross(e2)
	det := e1.Dot(p)
	if math.Abs(det) < triangleEpsilon {
		return 0, false
	}
	invDet := 1 / det

	s := ray.Origin().Sub(a)
	u := s.Dot(p) * invDet
	if u < 0 || u > 1 {
		return 0, false
	}

	q := s.Cross(e1)
	v := dir.Dot(q) * invDet
	if v < 0 || u+v > 1 {
		return 0, false
	}

	t = e2.Dot(q) * invDet
	if t < 0 {
		return 0, false
	}
	return t, true
}

// RaySphere returns both ray parameters where the ray crosses the sphere,
// t0 <= t1. A sphere entirely behind the origin is a miss; when the origin
// is inside, t0 is negative.
func RaySphere(ray geom.Ray, s geom.Sphere) (t0, t1 float32, ok bool) {
	oc := ray.Origin().Sub(s.Center)
	b := ray.Direction().Dot(oc)
	c := oc.LengthSquared() - s.Radius*s.Radius

	disc := b*b - c
	if disc < 0 {
		return 0, 0, false
	}
	sq := math.Sqrt(disc)
	t0 = -b - sq
	t1 = -b + sq
	if t1 < 0 {
		return 0, 0, false
	}
	return t0, t1, true
}

// RaySphereAhead reports whether the ray origin is inside the sphere or the
// ray hits it in front of the origin.
func RaySphereAhead(ray geom.Ray, s geom.Sphere) bool {
	oc := ray.Origin().Sub(s.Center)
	c := oc.LengthSquared() - s.Radius*s.Radius
	if c <= 0 {
		return true
	}
	b := ray.Direction().Dot(oc)
	if b > 0 {
		// Outside and pointing away.
		return false
	}
	return b*b-c >= 0
}

// RayAABB intersects a ray with a box using the slab method. t0 is the entry
// and t1 the exit parameter. A box entirely behind the origin is a miss.
func RayAABB(ray geom.Ray, box geom.AABB) (t0, t1 float32, ok bool) {
	return rayMinMax(ray, box.Min(), box.Max())
}

// RayMinMaxAABB is RayAABB for a box in min/max form.
func RayMinMaxAABB(ray geom.Ray, box geom.MinMaxAABB) (t0, t1 float32, ok bool) {
	return rayMinMax(ray, box.Min, box.Max)
}

func rayMinMax(ray geom.Ray, lo, hi math.Vec3) (float32, float32, bool) {
	origin := ray.Origin()
	dir := ray.Direction()

	tmin := float32(-gomath.MaxFloat32)
	tmax := float32(gomath.MaxFloat32)

	for axis := 0; axis < 3; axis++ {
		inv := saturatingReciprocal(dir.Index(axis))
		o := origin.Index(axis)

		ta := (lo.Index(axis) - o) * inv
		tb := (hi.Index(axis) - o) * inv
		if ta > tb {
			ta, tb = tb, ta
		}
		tmin = max(tmin, ta)
		tmax = min(tmax, tb)
		if tmin > tmax {
			return 0, 0, false
		}
	}

	if tmax < 0 {
		return 0, 0, false
	}
	return tmin, tmax, true
}

// saturatingReciprocal returns 1/d, or the largest finite float32 carrying
// the sign of d when |d| is at or below the smallest normal.
func saturatingReciprocal(d float32) float32 {
	if math.Abs(d) <= minNormal {
		return float32(gomath.Copysign(gomath.MaxFloat32, float64(d)))
	}
	return 1 / d
}

// RayPlane intersects a ray with a plane from either side. Near-parallel
// rays and hits behind the origin are rejected.
func RayPlane(ray geom.Ray, plane geom.Plane) (t float32, ok bool) {
	vdot := plane.Normal.Dot(ray.Direction())
	if math.Abs(vdot) <= planeEpsilon {
		return 0, false
	}
	return planeParam(ray, plane, vdot)
}

// RayPlaneOriented is RayPlane that also rejects rays approaching from the
// back face (travelling along the normal).
func RayPlaneOriented(ray geom.Ray, plane geom.Plane) (t float32, ok bool) {
	vdot := plane.Normal.Dot(ray.Direction())
	if vdot > 0 || math.Abs(vdot) <= planeEpsilon {
		return 0, false
	}
	return planeParam(ray, plane, vdot)
}

func planeParam(ray geom.Ray, plane geom.Plane, vdot float32) (float32, bool) {
	t := -(plane.Normal.Dot(ray.Origin()) + plane.D) / vdot
	if t < 0 {
		return 0, false
	}
	return t, true
}

// RayOrientedRect intersects a ray with a finite rectangle lying in the XY
// plane of pose, facing the pose's local +Z, with the given half-extents.
// Only hits strictly in front of the origin count.
func RayOrientedRect(ray geom.Ray, pose math.Pose, halfExtents math.Vec2) (t float32, point math.Vec3, ok bool) {
	normal := pose.TransformDirection(math.Vec3{Z: 1})
	t, ok = RayPlane(ray, geom.NewPlane(normal, pose.Position))
	if !ok || t <= 0 {
		return 0, math.Vec3{}, false
	}

	point = ray.PointAt(t)
	local := pose.InverseTransformPoint(point)
	if math.Abs(local.X) > halfExtents.X || math.Abs(local.Y) > halfExtents.Y {
		return 0, math.Vec3{}, false
	}
	return t, point, true
}
