package ui2d

// InputState is the pointer state of one side on a surface, in pixels.
type InputState struct {
	X, Y   float32
	DeltaX float32
	DeltaY float32

	// Inside is true while the side's ray is on the surface.
	Inside bool
	// Down is true while the side's trigger is held on the surface.
	Down bool

	// Edges of Down, valid for the frame after Update
	Pressed  bool
	Released bool

	prevDown bool
	prevX    float32
	prevY    float32
}

// Update derives deltas and press/release edges from the raw values set
// since the last call.
func (i *InputState) Update() {
	i.DeltaX = i.X - i.prevX
	i.DeltaY = i.Y - i.prevY

	i.Pressed = i.Down && !i.prevDown
	i.Released = !i.Down && i.prevDown

	i.prevDown = i.Down
	i.prevX = i.X
	i.prevY = i.Y
}

// InRect reports whether the pointer is on the surface and inside r.
func (i *InputState) InRect(r Rect) bool {
	return i.Inside && r.Contains(i.X, i.Y)
}

// Rect is an axis-aligned rectangle in surface pixels.
type Rect struct {
	X, Y, W, H float32
}

// Contains checks if a point is inside the rectangle.
func (r Rect) Contains(x, y float32) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}
