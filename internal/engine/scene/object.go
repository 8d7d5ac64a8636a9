package scene

import (
	"github.com/Faultbox/midgard-xr/pkg/geom"
	"github.com/Faultbox/midgard-xr/pkg/math"
)

// Kind selects how an object is hit-tested.
type Kind uint8

const (
	// KindMesh objects are tested against their triangle mesh.
	KindMesh Kind = iota
	// KindPanel objects are flat GUI planes tested as oriented rectangles
	// with half-extents taken from scale X/Y.
	KindPanel
)

// String returns the kind name used in scene files and logs.
func (k Kind) String() string {
	switch k {
	case KindMesh:
		return "mesh"
	case KindPanel:
		return "panel"
	default:
		return "unknown"
	}
}

// RayEvent is the raw per-frame notification delivered to OnRayHit listeners.
type RayEvent struct {
	Object  *Object
	Origin  math.Pose
	Point   math.Vec3
	Hit     bool
	Trigger bool
	Side    int
}

// Config describes a new object.
type Config struct {
	Name      string
	Kind      Kind
	Pose      math.Pose
	Scale     math.Vec3
	Solid     bool
	Movable   bool
	Clickable bool
	Mesh      *geom.TriPrimitiveMesh
}

// Object is a participant in ray interaction. Objects are created through a
// Scene and own their children.
type Object struct {
	id   ObjectID
	name string
	kind Kind

	pose  math.Pose
	scale math.Vec3

	solid     bool
	movable   bool
	clickable bool

	mesh *geom.TriPrimitiveMesh

	// Non-owning back-reference; the parent owns this object through children.
	parent   ObjectID
	children []*Object

	input InputState

	onHover   []func(side int, hovering bool)
	onClick   []func(side int, clicked bool)
	onRayHit  []func(RayEvent)
	onGrab    []func(side int)
	onRelease []func(side int)
}

func newObject(id ObjectID, cfg Config) *Object {
	scale := cfg.Scale
	if scale == (math.Vec3{}) {
		scale = math.Vec3{X: 1, Y: 1, Z: 1}
	}
	pose := cfg.Pose
	if pose.Orientation == (math.Quat{}) {
		pose.Orientation = math.QuatIdentity()
	}
	return &Object{
		id:        id,
		name:      cfg.Name,
		kind:      cfg.Kind,
		pose:      pose,
		scale:     scale,
		solid:     cfg.Solid,
		movable:   cfg.Movable,
		clickable: cfg.Clickable,
		mesh:      cfg.Mesh,
		input:     newInputState(),
	}
}

// ID returns the object id.
func (o *Object) ID() ObjectID { return o.id }

// Name returns the object name.
func (o *Object) Name() string { return o.name }

// Kind returns the hit-test kind.
func (o *Object) Kind() Kind { return o.kind }

// Pose returns the world pose.
func (o *Object) Pose() math.Pose { return o.pose }

// Scale returns the object scale.
func (o *Object) Scale() math.Vec3 { return o.scale }

// Solid reports whether the object takes part in hit testing.
func (o *Object) Solid() bool { return o.solid }

// Movable reports whether the object can be dragged.
func (o *Object) Movable() bool { return o.movable }

// Clickable reports whether click listeners are notified.
func (o *Object) Clickable() bool { return o.clickable }

// Mesh returns the local-space mesh, or nil.
func (o *Object) Mesh() *geom.TriPrimitiveMesh { return o.mesh }

// Parent returns the parent id, or NoObject for top-level objects.
func (o *Object) Parent() ObjectID { return o.parent }

// Children returns the child objects in insertion order.
func (o *Object) Children() []*Object { return o.children }

// SetSolid toggles hit testing.
func (o *Object) SetSolid(solid bool) { o.solid = solid }

// SetMovable toggles dragging.
func (o *Object) SetMovable(movable bool) { o.movable = movable }

// SetClickable toggles click notification.
func (o *Object) SetClickable(clickable bool) { o.clickable = clickable }

// SetScale sets the object scale.
func (o *Object) SetScale(scale math.Vec3) { o.scale = scale }

// SetPose moves the object. Children keep their pose relative to it.
func (o *Object) SetPose(p math.Pose) {
	delta := p.Mul(o.pose.Inverse())
	o.pose = p
	for _, c := range o.children {
		c.SetPose(delta.Mul(c.pose))
	}
}

// Bounds returns the world-space box of the scaled mesh, or of the panel
// rectangle. Objects with nothing to test return the zero box.
func (o *Object) Bounds() geom.AABB {
	switch o.kind {
	case KindPanel:
		local := geom.AABB{Extent: math.Vec3{X: math.Abs(o.scale.X), Y: math.Abs(o.scale.Y)}}
		return geom.TransformAABB(local, o.pose.Position, o.pose.Orientation)
	default:
		if !o.mesh.IsValid() {
			return geom.ZeroAABB
		}
		return geom.TransformAABB(o.mesh.Bounds().Scaled(o.scale), o.pose.Position, o.pose.Orientation)
	}
}

// HitShape returns the shape the collision detector tests against, or nil
// when the object has none.
func (o *Object) HitShape() HitShape {
	switch o.kind {
	case KindPanel:
		return OrientedRect{Pose: o.pose, HalfExtents: o.scale.XY()}
	default:
		if o.mesh == nil {
			return nil
		}
		return TransformedMesh{Mesh: o.mesh, Scale: o.scale, Pose: o.pose}
	}
}

// PanelUV maps a world point on a panel to normalized coordinates with the
// origin at the top-left corner. ok is false for non-panel objects and for
// panels with a zero extent.
func (o *Object) PanelUV(point math.Vec3) (uv math.Vec2, ok bool) {
	if o.kind != KindPanel || o.scale.X == 0 || o.scale.Y == 0 {
		return math.Vec2{}, false
	}
	local := o.pose.InverseTransformPoint(point)
	uv = math.Vec2{
		X: (local.X/o.scale.X + 1) / 2,
		Y: (1 - local.Y/o.scale.Y) / 2,
	}
	return uv.Clamp01(), true
}

// OnHover registers a listener called on every HandleRayHit with the side's
// hover flag.
func (o *Object) OnHover(fn func(side int, hovering bool)) {
	o.onHover = append(o.onHover, fn)
}

// OnClick registers a listener called on every HandleRayHit of a clickable
// object with the side's click flag.
func (o *Object) OnClick(fn func(side int, clicked bool)) {
	o.onClick = append(o.onClick, fn)
}

// OnRayHit registers a listener for raw detector events.
func (o *Object) OnRayHit(fn func(RayEvent)) {
	o.onRayHit = append(o.onRayHit, fn)
}

// OnGrab registers a listener called when a side binds the object for dragging.
func (o *Object) OnGrab(fn func(side int)) {
	o.onGrab = append(o.onGrab, fn)
}

// OnRelease registers a listener called when the owning side lets go.
func (o *Object) OnRelease(fn func(side int)) {
	o.onRelease = append(o.onRelease, fn)
}

// NotifyRayHit forwards a detector event to OnRayHit listeners.
func (o *Object) NotifyRayHit(ev RayEvent) {
	ev.Object = o
	for _, fn := range o.onRayHit {
		fn(ev)
	}
}

func (o *Object) walk(fn func(*Object) bool) bool {
	if !fn(o) {
		return false
	}
	for _, c := range o.children {
		if !c.walk(fn) {
			return false
		}
	}
	return true
}

func (o *Object) isAncestorOf(other *Object, lookup func(ObjectID) *Object) bool {
	for p := other.parent; p != NoObject; {
		if p == o.id {
			return true
		}
		po := lookup(p)
		if po == nil {
			return false
		}
		p = po.parent
	}
	return false
}
