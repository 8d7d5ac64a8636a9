// Package collision finds the nearest solid object under each pointer ray and
// drives the objects' interaction state machines.
package collision

import (
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-xr/internal/engine/input"
	"github.com/Faultbox/midgard-xr/internal/engine/scene"
	"github.com/Faultbox/midgard-xr/pkg/geom"
	"github.com/Faultbox/midgard-xr/pkg/math"
)

// DefaultTriggerThreshold is the trigger intensity above which a side counts
// as pressing.
const DefaultTriggerThreshold = 0.8

// Options configures a Detector.
type Options struct {
	TriggerThreshold float32
}

// DefaultOptions returns the default detector options.
func DefaultOptions() Options {
	return Options{TriggerThreshold: DefaultTriggerThreshold}
}

// Hit is the nearest intersection found for a side.
type Hit struct {
	Object   *scene.Object
	Distance float32
	Point    math.Vec3
}

// Detector remembers, per side, which object was hit last frame so that the
// object is told exactly once when the ray leaves it. A Detector is driven
// from a single goroutine.
type Detector struct {
	log      *zap.Logger
	opts     Options
	previous [scene.SideCount]*scene.Object
}

// New creates a detector. A nil logger disables logging.
func New(logger *zap.Logger, opts Options) *Detector {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.TriggerThreshold <= 0 {
		opts.TriggerThreshold = DefaultTriggerThreshold
	}
	return &Detector{
		log:  logger.Named("collision"),
		opts: opts,
	}
}

// Options returns the detector options.
func (d *Detector) Options() Options {
	return d.opts
}

// Update runs one detection pass for side from pointer input. An inactive
// pointer hits nothing, which still clears the previous frame's hit.
func (d *Detector) Update(scenes []*scene.Scene, side int, p input.Pointer) (Hit, bool) {
	if !d.validSide(side) {
		return Hit{}, false
	}
	trigger := p.Trigger > d.opts.TriggerThreshold
	if !p.Active {
		return d.dispatch(side, p.Pose, trigger, Hit{}, false)
	}
	return d.Detect(scenes, side, geom.RayFromPose(p.Pose), p.Pose, trigger)
}

// Detect finds the nearest solid object hit by ray across all visible scenes
// and notifies it. If a different object was hit by this side last frame, it
// receives a single miss notification afterwards.
func (d *Detector) Detect(scenes []*scene.Scene, side int, ray geom.Ray, origin math.Pose, trigger bool) (Hit, bool) {
	if !d.validSide(side) {
		return Hit{}, false
	}
	hit, ok := Nearest(scenes, ray)
	return d.dispatch(side, origin, trigger, hit, ok)
}

func (d *Detector) validSide(side int) bool {
	if side < 0 || side >= scene.SideCount {
		d.log.Warn("ignoring ray with invalid side", zap.Int("side", side))
		return false
	}
	return true
}

func (d *Detector) dispatch(side int, origin math.Pose, trigger bool, hit Hit, ok bool) (Hit, bool) {
	var current *scene.Object
	if ok {
		current = hit.Object
		current.HandleRayHit(origin, hit.Point, true, trigger, side)
		current.NotifyRayHit(scene.RayEvent{
			Origin:  origin,
			Point:   hit.Point,
			Hit:     true,
			Trigger: trigger,
			Side:    side,
		})
	}

	if prev := d.previous[side]; prev != nil && prev != current {
		d.log.Debug("ray left object",
			zap.Int("side", side),
			zap.Uint32("id", uint32(prev.ID())),
			zap.String("name", prev.Name()),
		)
		prev.HandleRayHit(origin, math.Vec3{}, false, trigger, side)
		prev.NotifyRayHit(scene.RayEvent{
			Origin:  origin,
			Trigger: trigger,
			Side:    side,
		})
	}
	if current != nil && current != d.previous[side] {
		d.log.Debug("ray entered object",
			zap.Int("side", side),
			zap.Uint32("id", uint32(current.ID())),
			zap.String("name", current.Name()),
			zap.Float32("distance", hit.Distance),
		)
	}

	d.previous[side] = current
	return hit, ok
}

// Previous returns the object side hit on the last pass, or nil.
func (d *Detector) Previous(side int) *scene.Object {
	if side < 0 || side >= scene.SideCount {
		return nil
	}
	return d.previous[side]
}

// Forget drops any reference to o, for use when o is removed from its scene.
func (d *Detector) Forget(o *scene.Object) {
	for i := range d.previous {
		if d.previous[i] == o {
			d.previous[i] = nil
		}
	}
}

// Reset forgets the previous hits of both sides.
func (d *Detector) Reset() {
	d.previous = [scene.SideCount]*scene.Object{}
}

// Nearest returns the solid object in the visible scenes with the smallest
// positive ray parameter. Ties keep the first object in walk order.
func Nearest(scenes []*scene.Scene, ray geom.Ray) (Hit, bool) {
	best := Hit{Distance: math.Inf()}
	found := false

	for _, s := range scenes {
		if s == nil || !s.Visible {
			continue
		}
		s.Walk(func(o *scene.Object) bool {
			if !o.Solid() {
				return true
			}
			shape := o.HitShape()
			if shape == nil {
				return true
			}
			t, point, ok := shape.Intersect(ray)
			if ok && t > 0 && t < best.Distance {
				best = Hit{Object: o, Distance: t, Point: point}
				found = true
			}
			return true
		})
	}

	if !found {
		return Hit{}, false
	}
	return best, true
}
