// Package geom provides the geometric primitives used for ray picking:
// rays, planes, spheres, bounding boxes and indexed triangle meshes.
package geom

import (
	"github.com/Faultbox/midgard-xr/pkg/math"
)

// Ray represents a ray in 3D space with origin and direction.
// The direction is kept normalized by the setters.
type Ray struct {
	origin    math.Vec3
	direction math.Vec3
}

// NewRay creates a ray. dir is normalized; callers must not pass a zero vector.
func NewRay(origin, dir math.Vec3) Ray {
	return Ray{origin: origin, direction: dir.Normalize()}
}

// RayFromPose creates a ray starting at the pose position and pointing
// along the pose forward axis (local -Z).
func RayFromPose(p math.Pose) Ray {
	return NewRay(p.Position, p.Forward())
}

// Origin returns the ray origin.
func (r Ray) Origin() math.Vec3 {
	return r.origin
}

// Direction returns the normalized ray direction.
func (r Ray) Direction() math.Vec3 {
	return r.direction
}

// SetOrigin replaces the ray origin.
func (r *Ray) SetOrigin(origin math.Vec3) {
	r.origin = origin
}

// SetDirection stores normalize(dir). A zero vector yields a zero direction.
func (r *Ray) SetDirection(dir math.Vec3) {
	r.direction = dir.Normalize()
}

// PointAt returns origin + t*direction.
func (r Ray) PointAt(t float32) math.Vec3 {
	return r.origin.Add(r.direction.Scale(t))
}
