package collision

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Faultbox/midgard-xr/internal/engine/input"
	"github.com/Faultbox/midgard-xr/internal/engine/scene"
	"github.com/Faultbox/midgard-xr/pkg/geom"
	"github.com/Faultbox/midgard-xr/pkg/math"
)

type hitLog struct {
	hits   int
	misses int
}

func track(o *scene.Object) *hitLog {
	l := &hitLog{}
	o.OnRayHit(func(ev scene.RayEvent) {
		if ev.Hit {
			l.hits++
		} else {
			l.misses++
		}
	})
	return l
}

func cubeAt(s *scene.Scene, name string, pos math.Vec3) *scene.Object {
	return s.NewObject(scene.Config{
		Name:  name,
		Kind:  scene.KindMesh,
		Pose:  math.NewPose(pos, math.QuatIdentity()),
		Mesh:  geom.NewBoxMesh(math.Vec3{X: 0.5, Y: 0.5, Z: 0.5}),
		Solid: true,
	})
}

func forwardRay(x float32) geom.Ray {
	return geom.NewRay(math.Vec3{X: x}, math.Vec3{Z: -1})
}

func TestNearestAcrossScenes(t *testing.T) {
	pool := scene.NewIDPool()
	a := scene.New("a", pool)
	b := scene.New("b", pool)
	far := cubeAt(a, "far", math.Vec3{Z: -10})
	near := cubeAt(b, "near", math.Vec3{Z: -4})

	hit, ok := Nearest([]*scene.Scene{a, b}, forwardRay(0))
	if !ok || hit.Object != near {
		t.Fatalf("nearest = %v, want near", hit.Object)
	}
	if hit.Distance < 3.49 || hit.Distance > 3.51 {
		t.Errorf("distance %v, want 3.5", hit.Distance)
	}

	b.Visible = false
	hit, ok = Nearest([]*scene.Scene{a, b}, forwardRay(0))
	if !ok || hit.Object != far {
		t.Errorf("hidden scene still hit: %v", hit.Object)
	}
}

func TestNonSolidIsSkipped(t *testing.T) {
	s := scene.New("s", scene.NewIDPool())
	ghost := cubeAt(s, "ghost", math.Vec3{Z: -2})
	ghost.SetSolid(false)
	wall := cubeAt(s, "wall", math.Vec3{Z: -6})

	hit, ok := Nearest([]*scene.Scene{s}, forwardRay(0))
	if !ok || hit.Object != wall {
		t.Errorf("hit %v, want wall behind non-solid ghost", hit.Object)
	}
}

func TestPanelAndChildren(t *testing.T) {
	s := scene.New("s", scene.NewIDPool())
	root := s.NewObject(scene.Config{Name: "root"})
	panel, err := s.NewChild(root, scene.Config{
		Name:  "panel",
		Kind:  scene.KindPanel,
		Pose:  math.NewPose(math.Vec3{Z: -3}, math.QuatIdentity()),
		Scale: math.Vec3{X: 1, Y: 1, Z: 1},
		Solid: true,
	})
	if err != nil {
		t.Fatal(err)
	}

	hit, ok := Nearest([]*scene.Scene{s}, forwardRay(0.5))
	if !ok || hit.Object != panel {
		t.Fatalf("child panel not hit: %v", hit.Object)
	}
	if _, ok := Nearest([]*scene.Scene{s}, forwardRay(1.5)); ok {
		t.Error("ray outside panel extent should miss")
	}
}

func TestStaleHitClearedOnce(t *testing.T) {
	s := scene.New("s", scene.NewIDPool())
	box := cubeAt(s, "box", math.Vec3{Z: -5})
	log := track(box)
	d := New(zap.NewNop(), DefaultOptions())
	scenes := []*scene.Scene{s}

	// Frame N: hit
	if _, ok := d.Detect(scenes, 0, forwardRay(0), math.PoseIdentity(), false); !ok {
		t.Fatal("frame N should hit")
	}
	if log.hits != 1 || log.misses != 0 || d.Previous(0) != box {
		t.Fatalf("frame N: %+v previous=%v", *log, d.Previous(0))
	}
	if !box.State(0).Hovering {
		t.Error("box should be hovered")
	}

	// Frame N+1: ray moved away
	d.Detect(scenes, 0, forwardRay(5), math.PoseIdentity(), false)
	if log.misses != 1 {
		t.Errorf("frame N+1: %d misses, want 1", log.misses)
	}
	if box.State(0).Hovering || d.Previous(0) != nil {
		t.Error("hover not cleared")
	}

	// Frame N+2: still away
	d.Detect(scenes, 0, forwardRay(5), math.PoseIdentity(), false)
	if log.misses != 1 || log.hits != 1 {
		t.Errorf("frame N+2: %+v, want no further events", *log)
	}
}

func TestSwitchingTargetsClearsAfterNewHit(t *testing.T) {
	s := scene.New("s", scene.NewIDPool())
	a := cubeAt(s, "a", math.Vec3{Z: -5})
	b := cubeAt(s, "b", math.Vec3{X: 3, Z: -5})

	var order []string
	a.OnRayHit(func(ev scene.RayEvent) { order = append(order, "a", boolName(ev.Hit)) })
	b.OnRayHit(func(ev scene.RayEvent) { order = append(order, "b", boolName(ev.Hit)) })

	d := New(nil, Options{})
	d.Detect([]*scene.Scene{s}, 0, forwardRay(0), math.PoseIdentity(), false)
	d.Detect([]*scene.Scene{s}, 0, forwardRay(3), math.PoseIdentity(), false)

	want := []string{"a", "hit", "b", "hit", "a", "miss"}
	if len(order) != len(want) {
		t.Fatalf("events %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("events %v, want %v", order, want)
		}
	}
}

func TestSidesAreIndependent(t *testing.T) {
	s := scene.New("s", scene.NewIDPool())
	box := cubeAt(s, "box", math.Vec3{Z: -5})
	d := New(nil, DefaultOptions())
	scenes := []*scene.Scene{s}

	d.Detect(scenes, 0, forwardRay(0), math.PoseIdentity(), false)
	d.Detect(scenes, 1, forwardRay(0), math.PoseIdentity(), true)
	if !box.State(0).Hovering || !box.State(1).Pressing {
		t.Errorf("side states %+v %+v", box.State(0), box.State(1))
	}

	d.Detect(scenes, 1, forwardRay(9), math.PoseIdentity(), false)
	if d.Previous(0) != box || d.Previous(1) != nil {
		t.Error("clearing side 1 touched side 0")
	}
}

func TestInvalidSideIsLogged(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	s := scene.New("s", scene.NewIDPool())
	box := cubeAt(s, "box", math.Vec3{Z: -5})
	hits := track(box)
	d := New(zap.New(core), DefaultOptions())

	if _, ok := d.Detect([]*scene.Scene{s}, 2, forwardRay(0), math.PoseIdentity(), false); ok {
		t.Error("invalid side reported a hit")
	}
	d.Update([]*scene.Scene{s}, -1, input.Pointer{Active: true, Pose: math.PoseIdentity()})

	if hits.hits != 0 {
		t.Error("object notified for invalid side")
	}
	if logs.Len() != 2 {
		t.Errorf("%d warnings, want 2", logs.Len())
	}
	if d.Previous(2) != nil {
		t.Error("Previous of invalid side should be nil")
	}
}

func TestUpdateFromPointer(t *testing.T) {
	s := scene.New("s", scene.NewIDPool())
	box := cubeAt(s, "box", math.Vec3{Z: -5})
	d := New(nil, DefaultOptions())
	scenes := []*scene.Scene{s}

	p := input.Pointer{Pose: math.PoseIdentity(), Active: true, Trigger: 0.9}
	if _, ok := d.Update(scenes, 0, p); !ok {
		t.Fatal("pointer along -Z should hit")
	}
	if !box.State(0).Pressing {
		t.Error("trigger 0.9 should press")
	}

	p.Trigger = 0.8
	d.Update(scenes, 0, p)
	if box.State(0).Pressing || !box.State(0).Hovering {
		t.Error("trigger at threshold should not press")
	}

	// Deactivating the pointer clears the hit
	p.Active = false
	if _, ok := d.Update(scenes, 0, p); ok {
		t.Error("inactive pointer hit something")
	}
	if box.State(0).Hovering || d.Previous(0) != nil {
		t.Error("inactive pointer left stale hover")
	}
}

func TestDragThroughDetector(t *testing.T) {
	s := scene.New("s", scene.NewIDPool())
	box := cubeAt(s, "box", math.Vec3{Z: -5})
	box.SetMovable(true)
	d := New(nil, DefaultOptions())
	scenes := []*scene.Scene{s}

	p := input.Pointer{Pose: math.PoseIdentity(), Active: true, Trigger: 1}
	for i := 0; i < scene.LongPressFrames; i++ {
		d.Update(scenes, 1, p)
	}
	if box.BoundSide() != 1 {
		t.Fatalf("bound side %d, want 1", box.BoundSide())
	}

	// The ray must still hit the box for the drag to continue
	p.Pose = math.NewPose(math.Vec3{Y: 0.25}, math.QuatIdentity())
	d.Update(scenes, 1, p)
	if got := box.Pose().Position; got.Sub(math.Vec3{Y: 0.25, Z: -5}).Length() > 1e-4 {
		t.Errorf("dragged box at %v, want (0,0.25,-5)", got)
	}
}

func TestResetAndForget(t *testing.T) {
	s := scene.New("s", scene.NewIDPool())
	box := cubeAt(s, "box", math.Vec3{Z: -5})
	d := New(nil, DefaultOptions())

	d.Detect([]*scene.Scene{s}, 0, forwardRay(0), math.PoseIdentity(), false)
	d.Detect([]*scene.Scene{s}, 1, forwardRay(0), math.PoseIdentity(), false)
	d.Forget(box)
	if d.Previous(0) != nil || d.Previous(1) != nil {
		t.Error("Forget left references")
	}

	d.Detect([]*scene.Scene{s}, 0, forwardRay(0), math.PoseIdentity(), false)
	d.Reset()
	if d.Previous(0) != nil {
		t.Error("Reset left references")
	}
	if d.Options().TriggerThreshold != DefaultTriggerThreshold {
		t.Errorf("threshold %v", d.Options().TriggerThreshold)
	}
}

func boolName(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}
