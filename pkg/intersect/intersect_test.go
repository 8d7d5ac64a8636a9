package intersect

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/midgard-xr/pkg/geom"
	"github.com/Faultbox/midgard-xr/pkg/math"
)

func near(a, b float32) bool {
	return gomath.Abs(float64(a-b)) < 1e-4
}

func nearVec(a, b math.Vec3) bool {
	return near(a.X, b.X) && near(a.Y, b.Y) && near(a.Z, b.Z)
}

func ray(ox, oy, oz, dx, dy, dz float32) geom.Ray {
	return geom.NewRay(math.Vec3{X: ox, Y: oy, Z: oz}, math.Vec3{X: dx, Y: dy, Z: dz})
}

func TestRayTriangle(t *testing.T) {
	a := math.Vec3{}
	b := math.Vec3{X: 1}
	c := math.Vec3{Y: 1}

	tests := []struct {
		name  string
		ray   geom.Ray
		hit   bool
		wantT float32
	}{
		{"inside", ray(0.25, 0.25, 1, 0, 0, -1), true, 1},
		{"barycentric out of range", ray(2, 2, 1, 0, 0, -1), false, 0},
		{"back face", ray(0.25, 0.25, -3, 0, 0, 1), true, 3},
		{"behind origin", ray(0.25, 0.25, 1, 0, 0, 1), false, 0},
		{"parallel", ray(0.25, 0.25, 1, 1, 0, 0), false, 0},
		{"on edge u+v=1", ray(0.5, 0.5, 2, 0, 0, -1), true, 2},
		{"just past hypotenuse", ray(0.51, 0.5, 2, 0, 0, -1), false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := RayTriangle(tt.ray, a, b, c)
			if ok != tt.hit {
				t.Fatalf("hit = %v, want %v", ok, tt.hit)
			}
			if ok && !near(got, tt.wantT) {
				t.Errorf("t = %v, want %v", got, tt.wantT)
			}
		})
	}
}

func TestRaySphere(t *testing.T) {
	s := geom.Sphere{Center: math.Vec3{Z: -5}, Radius: 1}

	t0, t1, ok := RaySphere(ray(0, 0, 0, 0, 0, -1), s)
	if !ok || !near(t0, 4) || !near(t1, 6) {
		t.Errorf("front hit: ok=%v t0=%v t1=%v, want 4, 6", ok, t0, t1)
	}

	// Origin inside: t0 negative, t1 positive
	t0, t1, ok = RaySphere(ray(0, 0, -5, 0, 0, -1), s)
	if !ok || !near(t0, -1) || !near(t1, 1) {
		t.Errorf("inside: ok=%v t0=%v t1=%v, want -1, 1", ok, t0, t1)
	}

	if _, _, ok := RaySphere(ray(0, 0, 0, 0, 0, 1), s); ok {
		t.Error("sphere behind origin should miss")
	}
	if _, _, ok := RaySphere(ray(3, 0, 0, 0, 0, -1), s); ok {
		t.Error("offset ray should miss")
	}
}

func TestRaySphereAhead(t *testing.T) {
	s := geom.Sphere{Center: math.Vec3{Z: -5}, Radius: 1}
	tests := []struct {
		name string
		ray  geom.Ray
		want bool
	}{
		{"in front", ray(0, 0, 0, 0, 0, -1), true},
		{"inside", ray(0, 0, -5.5, 1, 0, 0), true},
		{"pointing away", ray(0, 0, 0, 0, 0, 1), false},
		{"passes beside", ray(2, 0, 0, 0, 0, -1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RaySphereAhead(tt.ray, s); got != tt.want {
				t.Errorf("RaySphereAhead = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRayAABB(t *testing.T) {
	box := geom.AABB{Extent: math.Vec3{X: 1, Y: 1, Z: 1}}

	t0, t1, ok := RayAABB(ray(0, 0, 5, 0, 0, -1), box)
	if !ok {
		t.Fatal("ray down -Z should hit")
	}
	if t0 != 4 || t1 != 6 {
		t.Errorf("t0=%v t1=%v, want 4, 6", t0, t1)
	}

	if _, _, ok := RayAABB(ray(5, 0, 0, 0, 1, 0), box); ok {
		t.Error("ray parallel to the X slab outside it should miss")
	}

	if _, _, ok := RayAABB(ray(0, 0, 5, 0, 0, 1), box); ok {
		t.Error("box behind the ray should miss")
	}

	t0, t1, ok = RayAABB(ray(0, 0, 0, 1, 0, 0), box)
	if !ok || t0 >= 0 || !near(t1, 1) {
		t.Errorf("origin inside: ok=%v t0=%v t1=%v", ok, t0, t1)
	}

	mm := box.ToMinMax()
	t0, t1, ok = RayMinMaxAABB(ray(0, 0, 5, 0, 0, -1), mm)
	if !ok || t0 != 4 || t1 != 6 {
		t.Errorf("min/max form: ok=%v t0=%v t1=%v", ok, t0, t1)
	}
}

func TestRayAABBDiagonal(t *testing.T) {
	box := geom.AABB{Center: math.Vec3{X: 5, Y: 5, Z: 5}, Extent: math.Vec3{X: 1, Y: 1, Z: 1}}
	r := ray(0, 0, 0, 1, 1, 1)
	t0, t1, ok := RayAABB(r, box)
	if !ok {
		t.Fatal("diagonal ray should hit")
	}
	if !nearVec(r.PointAt(t0), math.Vec3{X: 4, Y: 4, Z: 4}) || !nearVec(r.PointAt(t1), math.Vec3{X: 6, Y: 6, Z: 6}) {
		t.Errorf("entry %v exit %v", r.PointAt(t0), r.PointAt(t1))
	}
}

func TestRayPlane(t *testing.T) {
	// Plane z = 0 with normal +Z
	p := geom.NewPlane(math.Vec3{Z: 1}, math.Vec3{})

	tests := []struct {
		name         string
		ray          geom.Ray
		twoSided     bool
		oriented     bool
		wantDistance float32
	}{
		{"front face", ray(0, 0, 3, 0, 0, -1), true, true, 3},
		{"back face", ray(0, 0, -2, 0, 0, 1), true, false, 2},
		{"parallel", ray(0, 0, 1, 1, 0, 0), false, false, 0},
		{"behind", ray(0, 0, 3, 0, 0, 1), false, false, 0},
		{"steep front", ray(0, 0, 1, 1, 0, -1), true, true, gomath.Sqrt2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, ok := RayPlane(tt.ray, p)
			if ok != tt.twoSided {
				t.Errorf("RayPlane hit = %v, want %v", ok, tt.twoSided)
			}
			if ok && !near(d, tt.wantDistance) {
				t.Errorf("RayPlane t = %v, want %v", d, tt.wantDistance)
			}

			_, ok = RayPlaneOriented(tt.ray, p)
			if ok != tt.oriented {
				t.Errorf("RayPlaneOriented hit = %v, want %v", ok, tt.oriented)
			}
		})
	}
}

func TestRayOrientedRect(t *testing.T) {
	// Panel 2 units in front of the origin, facing the viewer, 1x0.5 half size
	pose := math.NewPose(math.Vec3{Z: -2}, math.QuatIdentity())
	half := math.Vec2{X: 1, Y: 0.5}

	d, point, ok := RayOrientedRect(ray(0.5, 0.25, 0, 0, 0, -1), pose, half)
	if !ok || !near(d, 2) || !nearVec(point, math.Vec3{X: 0.5, Y: 0.25, Z: -2}) {
		t.Errorf("inside: ok=%v t=%v point=%v", ok, d, point)
	}

	if _, _, ok := RayOrientedRect(ray(0, 0.75, 0, 0, 0, -1), pose, half); ok {
		t.Error("hit above the panel should miss")
	}

	// Rotate the panel 90 degrees about Y: it now faces +X
	turned := math.NewPose(math.Vec3{X: -3}, math.QuatFromAxisAngle(math.Vec3{Y: 1}, gomath.Pi/2))
	d, _, ok = RayOrientedRect(ray(0, 0, 0.5, -1, 0, 0), turned, half)
	if !ok || !near(d, 3) {
		t.Errorf("rotated panel: ok=%v t=%v", ok, d)
	}
	if _, _, ok := RayOrientedRect(ray(0, 0, 1.5, -1, 0, 0), turned, half); ok {
		t.Error("rotated panel: hit outside local X extent should miss")
	}
}

func TestShapeOverlaps(t *testing.T) {
	unit := geom.AABB{Extent: math.Vec3{X: 1, Y: 1, Z: 1}}

	if !AABBAABB(unit, geom.AABB{Center: math.Vec3{X: 2}, Extent: math.Vec3{X: 1, Y: 1, Z: 1}}) {
		t.Error("touching boxes should overlap")
	}
	if AABBAABB(unit, geom.AABB{Center: math.Vec3{Y: 3}, Extent: math.Vec3{X: 1, Y: 1, Z: 1}}) {
		t.Error("separated boxes should not overlap")
	}

	if !AABBSphere(unit, geom.Sphere{Center: math.Vec3{X: 1.5}, Radius: 0.6}) {
		t.Error("sphere touching face should overlap")
	}
	if AABBSphere(unit, geom.Sphere{Center: math.Vec3{X: 2, Y: 2, Z: 2}, Radius: 1.5}) {
		t.Error("sphere near corner but outside should not overlap")
	}

	if !SphereSphere(geom.Sphere{Radius: 1}, geom.Sphere{Center: math.Vec3{X: 2}, Radius: 1}) {
		t.Error("touching spheres should overlap")
	}
	if SphereSphere(geom.Sphere{Radius: 1}, geom.Sphere{Center: math.Vec3{X: 2.1}, Radius: 1}) {
		t.Error("separated spheres should not overlap")
	}
}

func TestClosestPointOnTriangleRegions(t *testing.T) {
	a := math.Vec3{}
	b := math.Vec3{X: 2}
	c := math.Vec3{Y: 2}

	tests := []struct {
		name string
		p    math.Vec3
		want math.Vec3
	}{
		{"vertex A", math.Vec3{X: -1, Y: -1}, a},
		{"vertex B", math.Vec3{X: 3, Y: -1}, b},
		{"vertex C", math.Vec3{X: -1, Y: 3}, c},
		{"edge AB", math.Vec3{X: 1, Y: -2}, math.Vec3{X: 1}},
		{"edge AC", math.Vec3{X: -2, Y: 1}, math.Vec3{Y: 1}},
		{"edge BC", math.Vec3{X: 2, Y: 2}, math.Vec3{X: 1, Y: 1}},
		{"face", math.Vec3{X: 0.5, Y: 0.5, Z: 4}, math.Vec3{X: 0.5, Y: 0.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClosestPointOnTriangle(tt.p, a, b, c)
			if !nearVec(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSphereTriangle(t *testing.T) {
	a := math.Vec3{}
	b := math.Vec3{X: 2}
	c := math.Vec3{Y: 2}

	if !SphereTriangle(geom.Sphere{Center: math.Vec3{X: 0.5, Y: 0.5, Z: 0.9}, Radius: 1}, a, b, c) {
		t.Error("sphere over the face should touch")
	}
	if SphereTriangle(geom.Sphere{Center: math.Vec3{X: 0.5, Y: 0.5, Z: 1.1}, Radius: 1}, a, b, c) {
		t.Error("sphere above the face should not touch")
	}
	if SphereTriangle(geom.Sphere{Center: math.Vec3{X: 2, Y: 2}, Radius: 1.4}, a, b, c) {
		t.Error("sphere beyond edge BC (distance sqrt 2) should not touch")
	}
	if !SphereTriangle(geom.Sphere{Center: math.Vec3{X: 2, Y: 2}, Radius: 1.42}, a, b, c) {
		t.Error("sphere reaching edge BC should touch")
	}
}
