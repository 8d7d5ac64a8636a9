// Package ui2d is the 2D widget surface shown on panel objects. Pointer rays
// reach it as normalized panel coordinates and are routed to widgets.
package ui2d

import (
	"github.com/Faultbox/midgard-xr/internal/engine/scene"
	"github.com/Faultbox/midgard-xr/pkg/math"
)

// PointerEvent is one side's pointer on a surface for one frame. U and V are
// in [0, 1] with the origin at the top-left corner.
type PointerEvent struct {
	Side int
	U, V float32
	Hit  bool
	Down bool
}

// Button is a clickable rectangle. A click needs the press and the release
// both inside the button, from the same side.
type Button struct {
	ID      string
	Label   string
	Bounds  Rect
	OnClick func(side int)

	hovered [scene.SideCount]bool
	active  [scene.SideCount]bool
}

// Hovered reports whether any side points at the button.
func (b *Button) Hovered() bool {
	for _, h := range b.hovered {
		if h {
			return true
		}
	}
	return false
}

// Active reports whether any side is pressing the button.
func (b *Button) Active() bool {
	for _, a := range b.active {
		if a {
			return true
		}
	}
	return false
}

// Color returns the button's state color.
func (b *Button) Color() Color {
	switch {
	case b.Active():
		return ColorButtonActive
	case b.Hovered():
		return ColorButtonHover
	default:
		return ColorButtonNormal
	}
}

// Surface is a pixel-sized widget area.
type Surface struct {
	Width, Height float32

	input   [scene.SideCount]InputState
	buttons []*Button
}

// NewSurface creates a surface of width x height pixels.
func NewSurface(width, height float32) *Surface {
	return &Surface{Width: width, Height: height}
}

// AddButton adds b and returns it.
func (s *Surface) AddButton(b *Button) *Button {
	s.buttons = append(s.buttons, b)
	return b
}

// Buttons returns the widgets in insertion order.
func (s *Surface) Buttons() []*Button {
	return s.buttons
}

// Input returns the pointer state of side.
func (s *Surface) Input(side int) InputState {
	if side < 0 || side >= scene.SideCount {
		return InputState{}
	}
	return s.input[side]
}

// HandlePointer applies one pointer event and routes it to the widgets.
// Events for unknown sides are dropped.
func (s *Surface) HandlePointer(ev PointerEvent) {
	if ev.Side < 0 || ev.Side >= scene.SideCount {
		return
	}
	in := &s.input[ev.Side]
	in.Inside = ev.Hit
	in.Down = ev.Hit && ev.Down
	if ev.Hit {
		in.X = ev.U * s.Width
		in.Y = ev.V * s.Height
	}
	in.Update()

	for _, b := range s.buttons {
		inside := in.InRect(b.Bounds)
		b.hovered[ev.Side] = inside

		if in.Pressed && inside {
			b.active[ev.Side] = true
		}
		if !in.Down && b.active[ev.Side] {
			b.active[ev.Side] = false
			if in.Released && inside && b.OnClick != nil {
				b.OnClick(ev.Side)
			}
		}
	}
}

// LocalRect maps r onto a panel with the given half extents. The result is
// the rectangle's center and half size in the panel's local XY plane.
func (s *Surface) LocalRect(r Rect, panelHalf math.Vec2) (center, half math.Vec2) {
	if s.Width == 0 || s.Height == 0 {
		return math.Vec2{}, math.Vec2{}
	}
	u := (r.X + r.W/2) / s.Width
	v := (r.Y + r.H/2) / s.Height
	center = math.Vec2{
		X: (2*u - 1) * panelHalf.X,
		Y: (1 - 2*v) * panelHalf.Y,
	}
	half = math.Vec2{
		X: r.W / s.Width * panelHalf.X,
		Y: r.H / s.Height * panelHalf.Y,
	}
	return center, half
}

// Attach routes the ray events of panel to the surface.
func (s *Surface) Attach(panel *scene.Object) {
	panel.OnRayHit(func(ev scene.RayEvent) {
		pe := PointerEvent{Side: ev.Side, Hit: ev.Hit, Down: ev.Trigger}
		if ev.Hit {
			uv, ok := ev.Object.PanelUV(ev.Point)
			if !ok {
				return
			}
			pe.U, pe.V = uv.X, uv.Y
		}
		s.HandlePointer(pe)
	})
}
