package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/Faultbox/midgard-xr/internal/assets"
	"github.com/Faultbox/midgard-xr/internal/engine/input"
	"github.com/Faultbox/midgard-xr/internal/engine/scene"
	"github.com/Faultbox/midgard-xr/pkg/geom"
	"github.com/Faultbox/midgard-xr/pkg/math"
)

var (
	eye    = math.Vec3{Y: 1}
	onBox  = math.Vec3{Y: 1, Z: -3}
	offBox = math.Vec3{X: 5, Y: 1, Z: -3}
)

func newBoxApp(t *testing.T) (*App, *scene.Object) {
	t.Helper()
	a := New(zaptest.NewLogger(t), DefaultOptions())
	s := scene.New("main", a.Pool())
	box := s.NewObject(scene.Config{
		Name:      "box",
		Kind:      scene.KindMesh,
		Pose:      math.NewPose(onBox, math.QuatIdentity()),
		Solid:     true,
		Clickable: true,
		Mesh:      geom.NewBoxMesh(math.Vec3{X: 0.5, Y: 0.5, Z: 0.5}),
	})
	if err := a.AddScene(s); err != nil {
		t.Fatal(err)
	}
	return a, box
}

func leftFrame(target math.Vec3, trigger float32) input.Frame {
	var f input.Frame
	f.Pointers[input.Left] = input.PointerAt(eye, target, trigger)
	return f
}

func TestStepClick(t *testing.T) {
	a, box := newBoxApp(t)

	var clicks, hovers int
	box.OnClick(func(side int, clicked bool) {
		if clicked {
			clicks++
		}
	})
	box.OnHover(func(side int, hovering bool) {
		if hovering {
			hovers++
		}
	})

	frames := []input.Frame{
		leftFrame(onBox, 0),
		leftFrame(onBox, 1),
		leftFrame(onBox, 1),
		leftFrame(onBox, 0),
	}
	for i, f := range frames {
		r := a.Step(f)
		if r.Frame != uint64(i) {
			t.Errorf("frame %d: Result.Frame = %d", i, r.Frame)
		}
		if !r.OK[input.Left] || r.Hits[input.Left].Object != box {
			t.Fatalf("frame %d: left did not hit the box", i)
		}
		if r.OK[input.Right] {
			t.Errorf("frame %d: inactive right side hit something", i)
		}
	}

	if clicks != 1 {
		t.Errorf("clicks = %d, want 1", clicks)
	}
	if hovers != 2 {
		t.Errorf("hovers = %d, want 2", hovers)
	}
	if a.Frame() != 4 {
		t.Errorf("Frame = %d, want 4", a.Frame())
	}
}

func TestStepSideOrder(t *testing.T) {
	a, box := newBoxApp(t)

	var sides []int
	box.OnRayHit(func(ev scene.RayEvent) {
		sides = append(sides, ev.Side)
	})

	var f input.Frame
	f.Pointers[input.Left] = input.PointerAt(eye, onBox, 0)
	f.Pointers[input.Right] = input.PointerAt(eye, onBox, 0)
	a.Step(f)

	if len(sides) != 2 || sides[0] != input.Left || sides[1] != input.Right {
		t.Errorf("side order = %v, want [0 1]", sides)
	}
}

func TestRunTrack(t *testing.T) {
	a, box := newBoxApp(t)

	var grabs int
	box.SetMovable(true)
	box.OnGrab(func(int) { grabs++ })

	frames := make([]input.Frame, 0, 12)
	for range scene.LongPressFrames {
		frames = append(frames, leftFrame(onBox, 1))
	}
	frames = append(frames, leftFrame(offBox, 0))
	track := input.NewTrack("grab", frames)

	var seen int
	n, err := a.Run(context.Background(), track, func(Result) { seen++ })
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if n != len(frames) || seen != n {
		t.Errorf("Run = %d frames, callback saw %d, want %d", n, seen, len(frames))
	}
	if grabs != 1 {
		t.Errorf("grabs = %d, want 1", grabs)
	}
	if a.Detector().Previous(input.Left) != nil {
		t.Error("last frame pointed away, previous hit should be cleared")
	}
}

func TestRunCanceled(t *testing.T) {
	a, _ := newBoxApp(t)

	track := input.NewTrack("loop", []input.Frame{leftFrame(onBox, 0)})
	track.Loop = true

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	n, err := a.Run(ctx, track, func(r Result) {
		if r.Frame == 4 {
			cancel()
		}
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run error = %v, want context.Canceled", err)
	}
	if n != 5 {
		t.Errorf("Run = %d frames, want 5", n)
	}
}

func TestScenes(t *testing.T) {
	a, box := newBoxApp(t)

	if err := a.AddScene(scene.New("main", a.Pool())); err == nil {
		t.Error("duplicate scene name accepted")
	}
	if a.Scene("main") == nil || a.Scene("other") != nil {
		t.Error("Scene lookup mismatch")
	}

	a.Step(leftFrame(onBox, 0))
	if a.Detector().Previous(input.Left) != box {
		t.Fatal("box not recorded as previous hit")
	}

	if !a.RemoveScene("main") {
		t.Fatal("RemoveScene returned false")
	}
	if a.RemoveScene("main") {
		t.Error("second RemoveScene returned true")
	}
	if a.Detector().Previous(input.Left) != nil {
		t.Error("removed object still tracked by the detector")
	}
	if a.Pool().InUse() != 0 {
		t.Errorf("pool InUse = %d after removal, want 0", a.Pool().InUse())
	}

	r := a.Step(leftFrame(onBox, 0))
	if r.OK[input.Left] {
		t.Error("hit after the scene was removed")
	}
}

func TestLoadScene(t *testing.T) {
	dir := t.TempDir()
	content := "name: lab\nobjects:\n  - {name: wall, kind: panel, position: [0, 1, -3]}\n"
	if err := os.WriteFile(filepath.Join(dir, "lab.yaml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	m := assets.NewManager()
	if err := m.AddDir(dir); err != nil {
		t.Fatal(err)
	}

	a := New(zaptest.NewLogger(t), DefaultOptions())
	s, err := a.LoadScene(m, "lab.yaml")
	if err != nil {
		t.Fatalf("LoadScene: %v", err)
	}
	if a.Scene("lab") != s {
		t.Error("loaded scene not registered")
	}

	r := a.Step(leftFrame(math.Vec3{Y: 1, Z: -3}, 0))
	if !r.OK[input.Left] || r.Hits[input.Left].Object.Name() != "wall" {
		t.Errorf("expected to hit the wall panel, got %+v", r.Hits[input.Left])
	}

	if _, err := a.LoadScene(m, "lab.yaml"); err == nil {
		t.Error("loading the same scene twice should fail")
	}
	if got := a.Pool().InUse(); got != 1 {
		t.Errorf("pool InUse = %d, want 1 after the rejected duplicate", got)
	}
}
