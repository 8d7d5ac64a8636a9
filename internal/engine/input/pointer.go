package input

import "github.com/Faultbox/midgard-xr/pkg/math"

// Sides of the two pointer channels.
const (
	Left  = 0
	Right = 1
)

// Pointer is one side's pointing device for a frame. The ray starts at the
// pose position and points along the pose forward (-Z).
type Pointer struct {
	Pose    math.Pose
	Active  bool
	Trigger float32 // 0..1
}

// Frame holds both pointers for one frame.
type Frame struct {
	Pointers [2]Pointer
}

// Source yields input frames. ok is false when the source is exhausted.
type Source interface {
	Next() (f Frame, ok bool)
}

// PointerAt builds a pointer at position looking toward target.
func PointerAt(position, target math.Vec3, trigger float32) Pointer {
	return Pointer{
		Pose:    math.NewPose(position, math.LookRotation(target.Sub(position))),
		Active:  true,
		Trigger: trigger,
	}
}
