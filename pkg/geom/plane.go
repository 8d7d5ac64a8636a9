package geom

import (
	"github.com/Faultbox/midgard-xr/pkg/math"
)

// degenerateNormal is the raw cross-product length below which three
// points are treated as collinear.
const degenerateNormal = 1e-5

// Plane is the set of points p with Normal·p + D == 0.
type Plane struct {
	Normal math.Vec3
	D      float32
}

// NewPlane creates a plane with the given normal passing through point.
func NewPlane(normal, point math.Vec3) Plane {
	n := normal.Normalize()
	return Plane{Normal: n, D: -n.Dot(point)}
}

// Set3Points makes the plane pass through a, b and c with a counter-clockwise
// winding facing the normal. Collinear points produce a zero normal.
func (p *Plane) Set3Points(a, b, c math.Vec3) {
	p.Normal = b.Sub(a).Cross(c.Sub(a)).Normalize()
	p.D = -p.Normal.Dot(a)
}

// Set3PointsSafe is Set3Points that rejects near-degenerate triangles.
// It returns false and leaves the plane unchanged when the raw normal
// length is below 1e-5.
func (p *Plane) Set3PointsSafe(a, b, c math.Vec3) bool {
	n := b.Sub(a).Cross(c.Sub(a))
	l := n.Length()
	if l < degenerateNormal {
		return false
	}
	p.Normal = n.Scale(1 / l)
	p.D = -p.Normal.Dot(a)
	return true
}

// SignedDistance returns Normal·point + D.
func (p Plane) SignedDistance(point math.Vec3) float32 {
	return p.Normal.Dot(point) + p.D
}

// Sphere is a center and a radius.
type Sphere struct {
	Center math.Vec3
	Radius float32
}
