package window

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/midgard-xr/internal/engine/input"
)

// Events polls pending SDL events and converts them into input events,
// reusing buf.
func Events(buf []input.Event) []input.Event {
	buf = buf[:0]

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			buf = append(buf, input.Event{Type: input.EventQuit})

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED {
				buf = append(buf, input.Event{
					Type:   input.EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			}

		case *sdl.KeyboardEvent:
			if e.Repeat != 0 {
				continue
			}
			typ := input.EventKeyUp
			if e.Type == sdl.KEYDOWN {
				typ = input.EventKeyDown
			}
			buf = append(buf, input.Event{Type: typ, Key: int32(e.Keysym.Scancode)})

		case *sdl.MouseMotionEvent:
			buf = append(buf, input.Event{
				Type:   input.EventMouseMove,
				MouseX: int(e.X),
				MouseY: int(e.Y),
			})

		case *sdl.MouseButtonEvent:
			typ := input.EventMouseUp
			if e.Type == sdl.MOUSEBUTTONDOWN {
				typ = input.EventMouseDown
			}
			buf = append(buf, input.Event{
				Type:   typ,
				MouseX: int(e.X),
				MouseY: int(e.Y),
				Button: e.Button,
			})

		case *sdl.MouseWheelEvent:
			buf = append(buf, input.Event{Type: input.EventMouseWheel, Wheel: float32(e.Y)})
		}
	}
	return buf
}

// Scancodes used by the simulator.
const (
	KeyEscape = int32(sdl.SCANCODE_ESCAPE)
	KeyTab    = int32(sdl.SCANCODE_TAB)
	KeyR      = int32(sdl.SCANCODE_R)
	KeyW      = int32(sdl.SCANCODE_W)
	KeyA      = int32(sdl.SCANCODE_A)
	KeyS      = int32(sdl.SCANCODE_S)
	KeyD      = int32(sdl.SCANCODE_D)
	KeyShift  = int32(sdl.SCANCODE_LSHIFT)
	KeyO      = int32(sdl.SCANCODE_O)
	KeyF12    = int32(sdl.SCANCODE_F12)
)
