package assets

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/midgard-xr/internal/engine/scene"
	"github.com/Faultbox/midgard-xr/pkg/geom"
	"github.com/Faultbox/midgard-xr/pkg/math"
)

// SceneFile is the YAML form of a scene.
//
//	name: lab
//	objects:
//	  - name: crate
//	    kind: mesh
//	    position: [0, 1, -2]
//	    rotation: [0, 45, 0]    # pitch, yaw, roll in degrees
//	    movable: true
//	    mesh: {box: [0.25, 0.25, 0.25]}
//	  - name: menu
//	    kind: panel
//	    scale: [0.4, 0.3, 1]
//	    clickable: true
type SceneFile struct {
	Name    string       `yaml:"name"`
	Hidden  bool         `yaml:"hidden"`
	Objects []ObjectSpec `yaml:"objects"`
}

// ObjectSpec describes one object and its children. Position and
// orientation of children are relative to the parent.
type ObjectSpec struct {
	Name     string      `yaml:"name"`
	Kind     string      `yaml:"kind"`
	Position [3]float32  `yaml:"position"`
	Rotation *[3]float32 `yaml:"rotation"`    // euler degrees
	Quat     *[4]float32 `yaml:"orientation"` // x, y, z, w
	Scale    *[3]float32 `yaml:"scale"`

	Solid     *bool `yaml:"solid"` // defaults to true
	Movable   bool  `yaml:"movable"`
	Clickable bool  `yaml:"clickable"`

	Mesh     *MeshSpec    `yaml:"mesh"`
	Children []ObjectSpec `yaml:"children"`
}

// MeshSpec is one of a box, a quad or an inline triangle list.
type MeshSpec struct {
	Box      *[3]float32  `yaml:"box"`  // half extents
	Quad     *[2]float32  `yaml:"quad"` // half width, half height
	Vertices [][3]float32 `yaml:"vertices"`
	Indices  []uint32     `yaml:"indices"`
}

// DecodeScene parses and validates a scene file. Unknown keys are errors.
func DecodeScene(data []byte) (*SceneFile, error) {
	var sf SceneFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&sf); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty scene file")
		}
		return nil, fmt.Errorf("decoding scene: %w", err)
	}
	if err := sf.Validate(); err != nil {
		return nil, err
	}
	return &sf, nil
}

// Validate reports every problem in the file.
func (sf *SceneFile) Validate() error {
	var err error
	if sf.Name == "" {
		err = multierr.Append(err, errors.New("scene has no name"))
	}
	for i := range sf.Objects {
		err = multierr.Append(err, sf.Objects[i].validate(fmt.Sprintf("objects[%d]", i)))
	}
	return err
}

func (o *ObjectSpec) validate(path string) error {
	if o.Name != "" {
		path = fmt.Sprintf("%s (%s)", path, o.Name)
	}

	var err error
	kind, kerr := parseKind(o.Kind)
	if kerr != nil {
		err = multierr.Append(err, fmt.Errorf("%s: %w", path, kerr))
	}
	if o.Rotation != nil && o.Quat != nil {
		err = multierr.Append(err, fmt.Errorf("%s: rotation and orientation are exclusive", path))
	}
	if o.Quat != nil && *o.Quat == ([4]float32{}) {
		err = multierr.Append(err, fmt.Errorf("%s: zero orientation", path))
	}
	if kerr == nil {
		switch {
		case kind == scene.KindMesh && o.Mesh == nil:
			err = multierr.Append(err, fmt.Errorf("%s: mesh object without mesh", path))
		case kind == scene.KindPanel && o.Mesh != nil:
			err = multierr.Append(err, fmt.Errorf("%s: panel objects take their size from scale", path))
		}
	}
	if o.Mesh != nil {
		if merr := o.Mesh.validate(); merr != nil {
			err = multierr.Append(err, fmt.Errorf("%s: %w", path, merr))
		}
	}
	for i := range o.Children {
		err = multierr.Append(err, o.Children[i].validate(fmt.Sprintf("%s.children[%d]", path, i)))
	}
	return err
}

func (m *MeshSpec) validate() error {
	forms := 0
	if m.Box != nil {
		forms++
	}
	if m.Quad != nil {
		forms++
	}
	if len(m.Vertices) > 0 || len(m.Indices) > 0 {
		forms++
	}
	if forms != 1 {
		return errors.New("mesh needs exactly one of box, quad or vertices")
	}
	if m.Box == nil && m.Quad == nil && !m.build().IsValid() {
		return errors.New("invalid triangle list")
	}
	return nil
}

func (m *MeshSpec) build() *geom.TriPrimitiveMesh {
	switch {
	case m.Box != nil:
		return geom.NewBoxMesh(vec3(*m.Box))
	case m.Quad != nil:
		return geom.NewQuadMesh(m.Quad[0], m.Quad[1])
	}
	vertices := make([]math.Vec3, len(m.Vertices))
	for i, v := range m.Vertices {
		vertices[i] = vec3(v)
	}
	indices := append([]uint32(nil), m.Indices...)
	return geom.NewTriPrimitiveMesh(vertices, indices)
}

func parseKind(s string) (scene.Kind, error) {
	switch s {
	case "mesh":
		return scene.KindMesh, nil
	case "panel":
		return scene.KindPanel, nil
	default:
		return 0, fmt.Errorf("unknown kind %q", s)
	}
}

// Build creates the scene. The file must have passed Validate.
func (sf *SceneFile) Build(pool *scene.IDPool) (*scene.Scene, error) {
	s := scene.New(sf.Name, pool)
	s.Visible = !sf.Hidden
	for i := range sf.Objects {
		if err := sf.Objects[i].build(s, nil); err != nil {
			s.Clear()
			return nil, err
		}
	}
	return s, nil
}

func (o *ObjectSpec) build(s *scene.Scene, parent *scene.Object) error {
	kind, err := parseKind(o.Kind)
	if err != nil {
		return err
	}

	local := math.NewPose(vec3(o.Position), o.orientation())
	cfg := scene.Config{
		Name:      o.Name,
		Kind:      kind,
		Pose:      local,
		Solid:     o.Solid == nil || *o.Solid,
		Movable:   o.Movable,
		Clickable: o.Clickable,
	}
	if o.Scale != nil {
		cfg.Scale = vec3(*o.Scale)
	}
	if o.Mesh != nil {
		cfg.Mesh = o.Mesh.build()
	}

	var obj *scene.Object
	if parent == nil {
		obj = s.NewObject(cfg)
	} else {
		cfg.Pose = parent.Pose().Mul(local)
		obj, err = s.NewChild(parent, cfg)
		if err != nil {
			return err
		}
	}

	for i := range o.Children {
		if err := o.Children[i].build(s, obj); err != nil {
			return err
		}
	}
	return nil
}

func (o *ObjectSpec) orientation() math.Quat {
	switch {
	case o.Quat != nil:
		q := o.Quat
		return math.Quat{X: q[0], Y: q[1], Z: q[2], W: q[3]}.Normalize()
	case o.Rotation != nil:
		r := o.Rotation
		return math.QuatFromEuler(mgl32.DegToRad(r[0]), mgl32.DegToRad(r[1]), mgl32.DegToRad(r[2]))
	default:
		return math.QuatIdentity()
	}
}

func vec3(v [3]float32) math.Vec3 {
	return math.Vec3{X: v[0], Y: v[1], Z: v[2]}
}
