package assets

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/midgard-xr/internal/engine/input"
	"github.com/Faultbox/midgard-xr/pkg/math"
)

// TrackFile is the YAML form of a pointer track.
//
//	name: press-crate
//	loop: false
//	frames:
//	  - repeat: 12
//	    left: {position: [0, 1.5, 0], target: [0, 1, -2], trigger: 1}
//	  - left: {position: [0, 1.5, 0], target: [0, 1, -2]}
//
// A side that is absent from a frame is inactive for that frame.
type TrackFile struct {
	Name   string      `yaml:"name"`
	Loop   bool        `yaml:"loop"`
	Frames []FrameSpec `yaml:"frames"`
}

// FrameSpec is one frame, optionally held for Repeat frames.
type FrameSpec struct {
	Repeat int          `yaml:"repeat"`
	Left   *PointerSpec `yaml:"left"`
	Right  *PointerSpec `yaml:"right"`
}

// PointerSpec places a pointer at Position aimed at Target.
type PointerSpec struct {
	Position [3]float32 `yaml:"position"`
	Target   [3]float32 `yaml:"target"`
	Trigger  float32    `yaml:"trigger"`
}

// DecodeTrack parses and validates a track file. Unknown keys are errors.
func DecodeTrack(data []byte) (*TrackFile, error) {
	var tf TrackFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&tf); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty track file")
		}
		return nil, fmt.Errorf("decoding track: %w", err)
	}
	if err := tf.Validate(); err != nil {
		return nil, err
	}
	return &tf, nil
}

// Validate reports every problem in the file.
func (tf *TrackFile) Validate() error {
	var err error
	if len(tf.Frames) == 0 {
		err = multierr.Append(err, errors.New("track has no frames"))
	}
	for i, f := range tf.Frames {
		if f.Repeat < 0 {
			err = multierr.Append(err, fmt.Errorf("frames[%d]: negative repeat %d", i, f.Repeat))
		}
		sides := [...]struct {
			name string
			p    *PointerSpec
		}{{"left", f.Left}, {"right", f.Right}}
		for _, side := range sides {
			name, p := side.name, side.p
			if p == nil {
				continue
			}
			if p.Trigger < 0 || p.Trigger > 1 {
				err = multierr.Append(err, fmt.Errorf("frames[%d].%s: trigger %v outside [0, 1]", i, name, p.Trigger))
			}
			if p.Position == p.Target {
				err = multierr.Append(err, fmt.Errorf("frames[%d].%s: target equals position", i, name))
			}
		}
	}
	return err
}

// Build expands repeats into a playable track.
func (tf *TrackFile) Build() *input.Track {
	var frames []input.Frame
	for _, f := range tf.Frames {
		var frame input.Frame
		frame.Pointers[input.Left] = f.Left.pointer()
		frame.Pointers[input.Right] = f.Right.pointer()
		for range max(f.Repeat, 1) {
			frames = append(frames, frame)
		}
	}
	t := input.NewTrack(tf.Name, frames)
	t.Loop = tf.Loop
	return t
}

func (p *PointerSpec) pointer() input.Pointer {
	if p == nil {
		return input.Pointer{Pose: math.PoseIdentity()}
	}
	return input.PointerAt(vec3(p.Position), vec3(p.Target), p.Trigger)
}
