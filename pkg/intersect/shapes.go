package intersect

import (
	"github.com/Faultbox/midgard-xr/pkg/geom"
	"github.com/Faultbox/midgard-xr/pkg/math"
)

// AABBAABB reports whether two boxes overlap (touching counts).
func AABBAABB(a, b geom.AABB) bool {
	d := a.Center.Sub(b.Center).Abs()
	e := a.Extent.Add(b.Extent)
	return d.X <= e.X && d.Y <= e.Y && d.Z <= e.Z
}

// AABBSphere reports whether a box and a sphere overlap.
func AABBSphere(box geom.AABB, s geom.Sphere) bool {
	closest := s.Center.Max(box.Min()).Min(box.Max())
	return closest.Sub(s.Center).LengthSquared() <= s.Radius*s.Radius
}

// SphereSphere reports whether two spheres overlap.
func SphereSphere(a, b geom.Sphere) bool {
	r := a.Radius + b.Radius
	return a.Center.Sub(b.Center).LengthSquared() <= r*r
}

// SphereTriangle reports whether a sphere touches triangle abc.
func SphereTriangle(s geom.Sphere, a, b, c math.Vec3) bool {
	p := ClosestPointOnTriangle(s.Center, a, b, c)
	return p.Sub(s.Center).LengthSquared() <= s.Radius*s.Radius
}

// ClosestPointOnTriangle returns the point of triangle abc nearest to p,
// found by testing which Voronoi region of the triangle p projects into.
func ClosestPointOnTriangle(p, a, b, c math.Vec3) math.Vec3 {
	ab := b.Sub(a)
	ac := c.Sub(a)

	// Vertex region A
	ap := p.Sub(a)
	d1 := ab.Dot(ap)
	d2 := ac.Dot(ap)
	if d1 <= 0 && d2 <= 0 {
		return a
	}

	// Vertex region B
	bp := p.Sub(b)
	d3 := ab.Dot(bp)
	d4 := ac.Dot(bp)
	if d3 >= 0 && d4 <= d3 {
		return b
	}

	// Edge region AB
	vc := d1*d4 - d3*d2
	if vc <= 0 && d1 >= 0 && d3 <= 0 {
		v := d1 / (d1 - d3)
		return a.Add(ab.Scale(v))
	}

	// Vertex region C
	cp := p.Sub(c)
	d5 := ab.Dot(cp)
	d6 := ac.Dot(cp)
	if d6 >= 0 && d5 <= d6 {
		return c
	}

	// Edge region AC
	vb := d5*d2 - d1*d6
	if vb <= 0 && d2 >= 0 && d6 <= 0 {
		w := d2 / (d2 - d6)
		return a.Add(ac.Scale(w))
	}

	// Edge region BC
	va := d3*d6 - d5*d4
	if va <= 0 && (d4-d3) >= 0 && (d5-d6) >= 0 {
		w := (d4 - d3) / ((d4 - d3) + (d5 - d6))
		return b.Add(c.Sub(b).Scale(w))
	}

	// Face region
	denom := 1 / (va + vb + vc)
	v := vb * denom
	w := vc * denom
	return a.Add(ab.Scale(v)).Add(ac.Scale(w))
}
