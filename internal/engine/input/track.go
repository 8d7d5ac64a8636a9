package input

// Track is a recorded sequence of frames replayed in order.
type Track struct {
	Name   string
	Frames []Frame
	Loop   bool

	pos int
}

// NewTrack creates a track over frames.
func NewTrack(name string, frames []Frame) *Track {
	return &Track{Name: name, Frames: frames}
}

// Next returns the next frame. A looping track wraps around; otherwise ok is
// false once every frame has been returned.
func (t *Track) Next() (Frame, bool) {
	if len(t.Frames) == 0 {
		return Frame{}, false
	}
	if t.pos >= len(t.Frames) {
		if !t.Loop {
			return Frame{}, false
		}
		t.pos = 0
	}
	f := t.Frames[t.pos]
	t.pos++
	return f, true
}

// Len returns the number of frames.
func (t *Track) Len() int {
	return len(t.Frames)
}

// Pos returns the index of the next frame.
func (t *Track) Pos() int {
	return t.pos
}

// Reset rewinds to the first frame.
func (t *Track) Reset() {
	t.pos = 0
}
