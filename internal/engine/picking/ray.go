// Package picking turns screen positions into world rays for the desktop
// simulator.
package picking

import (
	"github.com/Faultbox/midgard-xr/pkg/geom"
	"github.com/Faultbox/midgard-xr/pkg/math"
)

// ScreenToRay converts pixel coordinates into a world-space ray starting on
// the near plane. invViewProj is the inverse of the view-projection matrix.
func ScreenToRay(screenX, screenY, viewportW, viewportH float32, invViewProj math.Mat4) geom.Ray {
	// Normalized device coordinates, Y up
	ndcX := 2*screenX/viewportW - 1
	ndcY := 1 - 2*screenY/viewportH

	near := unproject(invViewProj, math.Vec4{ndcX, ndcY, -1, 1})
	far := unproject(invViewProj, math.Vec4{ndcX, ndcY, 1, 1})

	return geom.NewRay(near, far.Sub(near))
}

func unproject(m math.Mat4, ndc math.Vec4) math.Vec3 {
	p := m.MulVec4(ndc)
	if p[3] != 0 {
		p[0] /= p[3]
		p[1] /= p[3]
		p[2] /= p[3]
	}
	return math.Vec3{X: p[0], Y: p[1], Z: p[2]}
}

// PoseFromRay returns a pointer pose at the ray origin whose forward is the
// ray direction.
func PoseFromRay(r geom.Ray) math.Pose {
	return math.NewPose(r.Origin(), math.LookRotation(r.Direction()))
}
