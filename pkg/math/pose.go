package math

// Pose is a rigid transform: a position plus an orientation, no scale.
type Pose struct {
	Position    Vec3
	Orientation Quat
}

// PoseIdentity returns the pose at the origin with no rotation.
func PoseIdentity() Pose {
	return Pose{Orientation: QuatIdentity()}
}

// NewPose creates a pose from a position and orientation.
func NewPose(position Vec3, orientation Quat) Pose {
	return Pose{Position: position, Orientation: orientation}
}

// Mul composes two poses. The result applies other first, then p.
func (p Pose) Mul(other Pose) Pose {
	return Pose{
		Position:    p.Position.Add(p.Orientation.Rotate(other.Position)),
		Orientation: p.Orientation.Mul(other.Orientation).Normalize(),
	}
}

// Inverse returns the pose that undoes p.
func (p Pose) Inverse() Pose {
	inv := p.Orientation.Inverse()
	return Pose{
		Position:    inv.Rotate(p.Position.Neg()),
		Orientation: inv,
	}
}

// TransformPoint maps a point from pose-local space into the parent space.
func (p Pose) TransformPoint(v Vec3) Vec3 {
	return p.Orientation.Rotate(v).Add(p.Position)
}

// TransformDirection rotates a direction into the parent space.
func (p Pose) TransformDirection(v Vec3) Vec3 {
	return p.Orientation.Rotate(v)
}

// InverseTransformPoint maps a parent-space point into pose-local space.
func (p Pose) InverseTransformPoint(v Vec3) Vec3 {
	return p.Orientation.Inverse().Rotate(v.Sub(p.Position))
}

// Forward returns the pose's pointing direction (local -Z).
func (p Pose) Forward() Vec3 {
	return p.Orientation.Rotate(Vec3{Z: -1})
}

// Mat4 returns the pose as a 4x4 matrix.
func (p Pose) Mat4() Mat4 {
	return TRS(p.Position, p.Orientation, Vec3{1, 1, 1})
}
