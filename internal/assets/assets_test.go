package assets

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/multierr"

	"github.com/Faultbox/midgard-xr/internal/engine/input"
	"github.com/Faultbox/midgard-xr/internal/engine/scene"
	"github.com/Faultbox/midgard-xr/pkg/math"
)

const labScene = `
name: lab
objects:
  - name: table
    kind: mesh
    position: [0, 1, 0]
    rotation: [0, 90, 0]
    mesh: {box: [1, 0.05, 0.5]}
    children:
      - name: cup
        kind: mesh
        position: [1, 0, 0]
        movable: true
        mesh:
          vertices: [[0, 0, 0], [1, 0, 0], [0, 1, 0]]
          indices: [0, 1, 2]
  - name: menu
    kind: panel
    position: [0, 1.5, -2]
    scale: [0.4, 0.3, 1]
    clickable: true
  - name: ghost
    kind: mesh
    solid: false
    orientation: [0, 0, 0, 2]
    mesh: {quad: [0.5, 0.5]}
`

func TestDecodeAndBuildScene(t *testing.T) {
	sf, err := DecodeScene([]byte(labScene))
	if err != nil {
		t.Fatalf("DecodeScene: %v", err)
	}

	s, err := sf.Build(scene.NewIDPool())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if s.Name != "lab" || !s.Visible {
		t.Errorf("scene = %q visible=%v", s.Name, s.Visible)
	}
	if s.Len() != 4 {
		t.Fatalf("Len = %d, want 4", s.Len())
	}

	table := s.FindByName("table")
	cup := s.FindByName("cup")
	if table == nil || cup == nil {
		t.Fatal("table or cup missing")
	}
	if cup.Parent() != table.ID() {
		t.Errorf("cup parent = %d, want %d", cup.Parent(), table.ID())
	}
	if !table.Solid() || table.Movable() {
		t.Errorf("table flags solid=%v movable=%v", table.Solid(), table.Movable())
	}
	if !cup.Movable() {
		t.Error("cup not movable")
	}

	// Child position is relative: table yawed 90 degrees maps +X to -Z.
	want := math.Vec3{X: 0, Y: 1, Z: -1}
	if got := cup.Pose().Position; !nearVec(got, want) {
		t.Errorf("cup position = %v, want %v", got, want)
	}
	if got := cup.Mesh().TriangleCount(); got != 1 {
		t.Errorf("cup triangles = %d, want 1", got)
	}

	menu := s.FindByName("menu")
	if menu.Kind() != scene.KindPanel || !menu.Clickable() {
		t.Errorf("menu kind=%v clickable=%v", menu.Kind(), menu.Clickable())
	}
	if got := menu.Scale(); got != (math.Vec3{X: 0.4, Y: 0.3, Z: 1}) {
		t.Errorf("menu scale = %v", got)
	}

	ghost := s.FindByName("ghost")
	if ghost.Solid() {
		t.Error("ghost should not be solid")
	}
	if got := ghost.Pose().Orientation; got != math.QuatIdentity() {
		t.Errorf("ghost orientation = %v, want normalized identity", got)
	}
}

func TestDecodeSceneErrors(t *testing.T) {
	tests := []struct {
		name   string
		yaml   string
		errors int
	}{
		{"no name", "objects: []", 1},
		{"unknown kind", "name: s\nobjects: [{name: a, kind: cube}]", 1},
		{"mesh without mesh", "name: s\nobjects: [{name: a, kind: mesh}]", 1},
		{"panel with mesh", "name: s\nobjects: [{name: a, kind: panel, mesh: {quad: [1, 1]}}]", 1},
		{"two mesh forms", "name: s\nobjects: [{name: a, kind: mesh, mesh: {box: [1, 1, 1], quad: [1, 1]}}]", 1},
		{"bad indices", "name: s\nobjects: [{name: a, kind: mesh, mesh: {vertices: [[0, 0, 0]], indices: [0, 1, 2]}}]", 1},
		{"rotation and orientation", "name: s\nobjects: [{name: a, kind: panel, rotation: [0, 0, 0], orientation: [0, 0, 0, 1]}]", 1},
		{"zero orientation", "name: s\nobjects: [{name: a, kind: panel, orientation: [0, 0, 0, 0]}]", 1},
		{"nested child", "name: s\nobjects: [{name: a, kind: panel, children: [{name: b, kind: blob}]}]", 1},
		{"many at once", "objects: [{name: a, kind: blob}, {name: b, kind: mesh}]", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeScene([]byte(tt.yaml))
			if got := len(multierr.Errors(err)); got != tt.errors {
				t.Errorf("got %d errors (%v), want %d", got, err, tt.errors)
			}
		})
	}
}

func TestDecodeSceneRejectsMalformed(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"empty", ""},
		{"unknown key", "name: s\ncolour: red\n"},
		{"short vector", "name: s\nobjects: [{name: a, kind: panel, position: [1, 2]}]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeScene([]byte(tt.yaml)); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestHiddenScene(t *testing.T) {
	sf, err := DecodeScene([]byte("name: overlay\nhidden: true\n"))
	if err != nil {
		t.Fatal(err)
	}
	s, err := sf.Build(scene.NewIDPool())
	if err != nil {
		t.Fatal(err)
	}
	if s.Visible {
		t.Error("hidden scene built visible")
	}
}

const pressTrack = `
name: press
loop: true
frames:
  - repeat: 3
    left: {position: [0, 1, 0], target: [0, 1, -1], trigger: 1}
  - right: {position: [0, 1, 0], target: [1, 1, 0]}
`

func TestDecodeAndBuildTrack(t *testing.T) {
	tf, err := DecodeTrack([]byte(pressTrack))
	if err != nil {
		t.Fatalf("DecodeTrack: %v", err)
	}
	tr := tf.Build()
	if tr.Name != "press" || !tr.Loop {
		t.Errorf("track %q loop=%v", tr.Name, tr.Loop)
	}
	if tr.Len() != 4 {
		t.Fatalf("Len = %d, want 4 (repeat expanded)", tr.Len())
	}

	f, _ := tr.Next()
	left, right := f.Pointers[input.Left], f.Pointers[input.Right]
	if !left.Active || left.Trigger != 1 {
		t.Errorf("left = %+v, want active with trigger 1", left)
	}
	if fwd := left.Pose.Forward(); !nearVec(fwd, math.Vec3{Z: -1}) {
		t.Errorf("left forward = %v, want -Z", fwd)
	}
	if right.Active {
		t.Error("absent right side should be inactive")
	}

	tr.Next()
	tr.Next()
	f, _ = tr.Next()
	if f.Pointers[input.Left].Active || !f.Pointers[input.Right].Active {
		t.Errorf("last frame sides = %v/%v", f.Pointers[input.Left].Active, f.Pointers[input.Right].Active)
	}
	if fwd := f.Pointers[input.Right].Pose.Forward(); !nearVec(fwd, math.Vec3{X: 1}) {
		t.Errorf("right forward = %v, want +X", fwd)
	}
}

func TestDecodeTrackErrors(t *testing.T) {
	tests := []struct {
		name   string
		yaml   string
		errors int
	}{
		{"no frames", "name: t\nframes: []", 1},
		{"negative repeat", "frames: [{repeat: -1}]", 1},
		{"trigger range", "frames: [{left: {position: [0, 0, 0], target: [0, 0, -1], trigger: 2}}]", 1},
		{"degenerate aim", "frames: [{right: {position: [1, 1, 1], target: [1, 1, 1]}}]", 1},
		{"both sides bad", "frames: [{left: {target: [0, 0, 0]}, right: {target: [0, 0, -1], trigger: -1}}]", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeTrack([]byte(tt.yaml))
			if got := len(multierr.Errors(err)); got != tt.errors {
				t.Errorf("got %d errors (%v), want %d", got, err, tt.errors)
			}
		})
	}
}

func TestManagerSearchOrder(t *testing.T) {
	low, high := t.TempDir(), t.TempDir()
	writeFile(t, filepath.Join(low, "a.yaml"), "low")
	writeFile(t, filepath.Join(low, "b.yaml"), "only-low")
	writeFile(t, filepath.Join(high, "a.yaml"), "high")

	m := NewManager()
	defer m.Close()
	for _, d := range []string{low, high} {
		if err := m.AddDir(d); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		path, want string
	}{
		{"a.yaml", "high"},
		{"b.yaml", "only-low"},
		{filepath.Join(low, "a.yaml"), "low"},
	}
	for _, tt := range tests {
		data, err := m.Load(tt.path)
		if err != nil {
			t.Fatalf("Load(%s): %v", tt.path, err)
		}
		if string(data) != tt.want {
			t.Errorf("Load(%s) = %q, want %q", tt.path, data, tt.want)
		}
	}

	if _, err := m.Load("missing.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestManagerCache(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "s.yaml")
	writeFile(t, path, "v1")

	m := NewManager()
	if err := m.AddDir(dir); err != nil {
		t.Fatal(err)
	}
	m.Load("s.yaml")
	writeFile(t, path, "v2")
	data, _ := m.Load("s.yaml")
	if string(data) != "v1" {
		t.Errorf("second load = %q, want cached v1", data)
	}
	if hits, misses := m.Stats(); hits != 1 || misses != 1 {
		t.Errorf("stats = %d/%d, want 1/1", hits, misses)
	}

	m.Close()
	if err := m.AddDir(dir); err != nil {
		t.Fatal(err)
	}
	data, _ = m.Load("s.yaml")
	if string(data) != "v2" {
		t.Errorf("after Close = %q, want v2", data)
	}
}

func TestManagerAddDirErrors(t *testing.T) {
	m := NewManager()
	if err := m.AddDir(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("expected error for missing dir")
	}
	file := filepath.Join(t.TempDir(), "f")
	writeFile(t, file, "x")
	if err := m.AddDir(file); err == nil {
		t.Error("expected error for a file")
	}
}

func TestManagerLoadSceneAndTrack(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "lab.yaml"), labScene)
	writeFile(t, filepath.Join(dir, "press.yaml"), pressTrack)
	writeFile(t, filepath.Join(dir, "bad.yaml"), "name: x\nobjects: [{kind: cube}]")

	m := NewManager()
	if err := m.AddDir(dir); err != nil {
		t.Fatal(err)
	}

	pool := scene.NewIDPool()
	s, err := m.LoadScene("lab.yaml", pool)
	if err != nil {
		t.Fatalf("LoadScene: %v", err)
	}
	if pool.InUse() != s.Len() {
		t.Errorf("pool InUse = %d, scene Len = %d", pool.InUse(), s.Len())
	}

	tr, err := m.LoadTrack("press.yaml")
	if err != nil {
		t.Fatalf("LoadTrack: %v", err)
	}
	if tr.Len() != 4 {
		t.Errorf("track Len = %d, want 4", tr.Len())
	}

	_, err = m.LoadScene("bad.yaml", pool)
	if err == nil || !strings.Contains(err.Error(), "bad.yaml") {
		t.Errorf("LoadScene(bad) error = %v, want one naming the file", err)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func nearVec(a, b math.Vec3) bool {
	d := a.Sub(b)
	return math.Abs(d.X) < 1e-4 && math.Abs(d.Y) < 1e-4 && math.Abs(d.Z) < 1e-4
}
