package scene

import "github.com/Faultbox/midgard-xr/pkg/math"

const (
	// SideCount is the number of independently tracked pointer rays.
	SideCount = 2
	// NoSide marks that no side holds the drag binding.
	NoSide = -1
	// LongPressFrames separates a click from a drag. A press released after
	// at most this many frames is a click; reaching it binds the object.
	LongPressFrames = 10
)

// SideState is the interaction record of one side.
type SideState struct {
	Hovering    bool
	WasHovering bool
	Pressing    bool
	WasPressing bool
	HoverFrames int
	PressFrames int
	Point       math.Vec3
	LastPoint   math.Vec3
}

// InputState is the per-object interaction state for both sides plus the
// shared drag binding.
type InputState struct {
	sides    [SideCount]SideState
	bound    int
	relative math.Pose
}

func newInputState() InputState {
	return InputState{bound: NoSide, relative: math.PoseIdentity()}
}

// State returns a snapshot of side's interaction record. Out-of-range sides
// return the zero record.
func (o *Object) State(side int) SideState {
	if side < 0 || side >= SideCount {
		return SideState{}
	}
	return o.input.sides[side]
}

// BoundSide returns the side that owns the drag, or NoSide.
func (o *Object) BoundSide() int {
	return o.input.bound
}

// HandleRayHit advances the interaction state for one side by one frame.
// origin is the pointer pose, point the world hit point, colliding whether
// the ray hit this object and trigger whether the side's trigger is held.
// Out-of-range sides are ignored.
func (o *Object) HandleRayHit(origin math.Pose, point math.Vec3, colliding, trigger bool, side int) {
	if side < 0 || side >= SideCount {
		return
	}
	in := &o.input
	s := &in.sides[side]

	s.WasHovering = s.Hovering
	s.WasPressing = s.Pressing
	s.LastPoint = s.Point

	s.Hovering = colliding && !trigger
	s.Pressing = colliding && trigger
	s.Point = point

	// Evaluated before the counters move so the release frame sees the
	// length of the press that just ended.
	clicked := !s.Pressing && s.WasPressing && s.PressFrames <= LongPressFrames

	switch {
	case s.Hovering:
		s.HoverFrames++
		s.PressFrames = 0
		if in.bound == side {
			o.release(side)
		}
	case s.Pressing:
		s.PressFrames++
		s.HoverFrames = 0
	default:
		s.HoverFrames = 0
		s.PressFrames = 0
	}

	if s.Pressing && s.PressFrames == LongPressFrames && in.bound == NoSide {
		in.relative = origin.Inverse().Mul(o.pose)
		in.bound = side
		for _, fn := range o.onGrab {
			fn(side)
		}
	}

	if in.bound == side && o.movable && o.parent == NoObject {
		o.SetPose(origin.Mul(in.relative))
	}

	if in.bound != NoSide && o.bothSidesReleased() {
		o.release(in.bound)
	}

	for _, fn := range o.onHover {
		fn(side, s.Hovering)
	}
	if o.clickable {
		for _, fn := range o.onClick {
			fn(side, clicked)
		}
	}
}

func (o *Object) bothSidesReleased() bool {
	for i := range o.input.sides {
		if o.input.sides[i].PressFrames != 0 {
			return false
		}
	}
	return true
}

func (o *Object) release(side int) {
	o.input.bound = NoSide
	o.input.relative = math.PoseIdentity()
	for _, fn := range o.onRelease {
		fn(side)
	}
}
