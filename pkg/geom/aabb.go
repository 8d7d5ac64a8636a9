package geom

import (
	"github.com/Faultbox/midgard-xr/pkg/math"
)

// AABB represents an axis-aligned bounding box in center/extent form.
// Extent holds the half-widths per axis.
type AABB struct {
	Center math.Vec3
	Extent math.Vec3
}

// ZeroAABB is the canonical zero box.
var ZeroAABB = AABB{}

// NewAABBFromMinMax creates a box from two corners, handling swapped axes.
func NewAABBFromMinMax(lo, hi math.Vec3) AABB {
	return MinMaxAABB{Min: lo.Min(hi), Max: lo.Max(hi)}.ToAABB()
}

// IsZero reports whether the box exactly equals ZeroAABB.
func (b AABB) IsZero() bool {
	return b == ZeroAABB
}

// IsFinite reports whether center and extent contain no NaN or Inf.
func (b AABB) IsFinite() bool {
	return b.Center.IsFinite() && b.Extent.IsFinite()
}

// IsValid reports whether the box is non-finite and not the zero box.
// Use IsFinite when the intent is "usable box".
func (b AABB) IsValid() bool {
	return !b.IsFinite() && !b.IsZero()
}

// Min returns the minimum corner.
func (b AABB) Min() math.Vec3 {
	return b.Center.Sub(b.Extent)
}

// Max returns the maximum corner.
func (b AABB) Max() math.Vec3 {
	return b.Center.Add(b.Extent)
}

// ToMinMax converts to min/max form.
func (b AABB) ToMinMax() MinMaxAABB {
	return MinMaxAABB{Min: b.Min(), Max: b.Max()}
}

// Contains reports whether p lies inside or on the box.
func (b AABB) Contains(p math.Vec3) bool {
	d := p.Sub(b.Center).Abs()
	return d.X <= b.Extent.X && d.Y <= b.Extent.Y && d.Z <= b.Extent.Z
}

// Scaled returns the box after a per-axis scale about the local origin.
// Negative scale factors mirror the box.
func (b AABB) Scaled(scale math.Vec3) AABB {
	return AABB{
		Center: b.Center.Mul(scale),
		Extent: b.Extent.Mul(scale.Abs()),
	}
}

// Corners returns the eight corners of the box.
func (b AABB) Corners() [8]math.Vec3 {
	lo, hi := b.Min(), b.Max()
	return [8]math.Vec3{
		{X: lo.X, Y: lo.Y, Z: lo.Z},
		{X: hi.X, Y: lo.Y, Z: lo.Z},
		{X: hi.X, Y: hi.Y, Z: lo.Z},
		{X: lo.X, Y: hi.Y, Z: lo.Z},
		{X: lo.X, Y: lo.Y, Z: hi.Z},
		{X: hi.X, Y: lo.Y, Z: hi.Z},
		{X: hi.X, Y: hi.Y, Z: hi.Z},
		{X: lo.X, Y: hi.Y, Z: hi.Z},
	}
}

// TransformAABB returns the smallest box in the target frame containing the
// source box rotated by rotation and then translated by position. Scale must
// be applied to the source box beforehand.
func TransformAABB(b AABB, position math.Vec3, rotation math.Quat) AABB {
	m := rotation.ToMat4()
	// Column-major: row i of the rotation is m[i], m[4+i], m[8+i].
	var extent [3]float32
	for i := 0; i < 3; i++ {
		extent[i] = math.Abs(m[i])*b.Extent.X +
			math.Abs(m[4+i])*b.Extent.Y +
			math.Abs(m[8+i])*b.Extent.Z
	}
	return AABB{
		Center: rotation.Rotate(b.Center).Add(position),
		Extent: math.Vec3{X: extent[0], Y: extent[1], Z: extent[2]},
	}
}

// TransformAABBSlow transforms all eight corners and re-encapsulates them.
func TransformAABBSlow(b AABB, position math.Vec3, rotation math.Quat) AABB {
	mm := EmptyMinMaxAABB()
	for _, c := range b.Corners() {
		mm.Encapsulate(rotation.Rotate(c).Add(position))
	}
	return mm.ToAABB()
}

// MinMaxAABB is an axis-aligned box in min/max corner form, used for
// incremental growth.
type MinMaxAABB struct {
	Min math.Vec3
	Max math.Vec3
}

// EmptyMinMaxAABB returns an inverted box that any point will grow.
func EmptyMinMaxAABB() MinMaxAABB {
	inf := math.Inf()
	return MinMaxAABB{
		Min: math.Vec3{X: inf, Y: inf, Z: inf},
		Max: math.Vec3{X: -inf, Y: -inf, Z: -inf},
	}
}

// IsEmpty reports whether no point has been encapsulated.
func (b MinMaxAABB) IsEmpty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y || b.Min.Z > b.Max.Z
}

// Encapsulate grows the box to contain p.
func (b *MinMaxAABB) Encapsulate(p math.Vec3) {
	b.Min = b.Min.Min(p)
	b.Max = b.Max.Max(p)
}

// EncapsulateBox grows the box to contain other.
func (b *MinMaxAABB) EncapsulateBox(other MinMaxAABB) {
	b.Min = b.Min.Min(other.Min)
	b.Max = b.Max.Max(other.Max)
}

// ToAABB converts to center/extent form. An empty box converts to ZeroAABB.
func (b MinMaxAABB) ToAABB() AABB {
	if b.IsEmpty() {
		return ZeroAABB
	}
	return AABB{
		Center: b.Min.Add(b.Max).Scale(0.5),
		Extent: b.Max.Sub(b.Min).Scale(0.5),
	}
}
