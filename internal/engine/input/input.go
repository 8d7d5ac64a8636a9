// Package input turns host input into per-frame pointer rays. Desktop events
// are produced by the window package; VR or replayed input arrives as Frames.
package input

// Event types produced by the desktop host.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventMouseMove
	EventMouseDown
	EventMouseUp
	EventMouseWheel
)

// Mouse buttons as reported by SDL.
const (
	ButtonLeft   uint8 = 1
	ButtonMiddle uint8 = 2
	ButtonRight  uint8 = 3
)

// Event is a processed host input event.
type Event struct {
	Type   EventType
	Key    int32 // scancode
	Width  int
	Height int
	MouseX int
	MouseY int
	Button uint8
	Wheel  float32
}

// Mouse folds desktop events into a cursor position and button state.
type Mouse struct {
	X, Y    float32
	DeltaX  float32
	DeltaY  float32
	Wheel   float32
	buttons [4]bool
	keys    map[int32]bool
}

// NewMouse creates an idle mouse state.
func NewMouse() *Mouse {
	return &Mouse{keys: make(map[int32]bool)}
}

// Apply folds one frame of events into the state. Deltas and wheel are
// per-frame. It returns true if a quit was requested.
func (m *Mouse) Apply(events []Event) (quit bool) {
	m.DeltaX, m.DeltaY, m.Wheel = 0, 0, 0
	for _, e := range events {
		switch e.Type {
		case EventQuit:
			quit = true
		case EventMouseMove:
			x, y := float32(e.MouseX), float32(e.MouseY)
			m.DeltaX += x - m.X
			m.DeltaY += y - m.Y
			m.X, m.Y = x, y
		case EventMouseDown, EventMouseUp:
			if int(e.Button) < len(m.buttons) {
				m.buttons[e.Button] = e.Type == EventMouseDown
			}
			m.X, m.Y = float32(e.MouseX), float32(e.MouseY)
		case EventMouseWheel:
			m.Wheel += e.Wheel
		case EventKeyDown:
			m.keys[e.Key] = true
		case EventKeyUp:
			delete(m.keys, e.Key)
		}
	}
	return quit
}

// Down reports whether button is held.
func (m *Mouse) Down(button uint8) bool {
	return int(button) < len(m.buttons) && m.buttons[button]
}

// KeyDown reports whether the key with scancode is held.
func (m *Mouse) KeyDown(scancode int32) bool {
	return m.keys[scancode]
}

// Trigger maps a button to a trigger intensity.
func (m *Mouse) Trigger(button uint8) float32 {
	if m.Down(button) {
		return 1
	}
	return 0
}
