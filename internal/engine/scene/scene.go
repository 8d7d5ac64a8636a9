// Package scene holds the interactive objects a pointer ray can hit, grouped
// into scenes, together with the per-object interaction state machine.
package scene

import "fmt"

// Scene owns a set of top-level objects. Children are owned by their parent
// object but are indexed here for lookup.
type Scene struct {
	Name    string
	Visible bool

	ids   *IDPool
	index map[ObjectID]*Object
	roots []*Object
}

// New creates an empty, visible scene drawing ids from pool.
func New(name string, pool *IDPool) *Scene {
	return &Scene{
		Name:    name,
		Visible: true,
		ids:     pool,
		index:   make(map[ObjectID]*Object),
	}
}

// NewObject creates a top-level object.
func (s *Scene) NewObject(cfg Config) *Object {
	o := newObject(s.ids.Acquire(), cfg)
	s.index[o.id] = o
	s.roots = append(s.roots, o)
	return o
}

// NewChild creates an object owned by parent.
func (s *Scene) NewChild(parent *Object, cfg Config) (*Object, error) {
	if s.index[parent.id] != parent {
		return nil, fmt.Errorf("parent %d (%s) is not in scene %q", parent.id, parent.name, s.Name)
	}
	o := newObject(s.ids.Acquire(), cfg)
	s.index[o.id] = o
	o.parent = parent.id
	parent.children = append(parent.children, o)
	return o, nil
}

// AddChild moves a top-level object under parent. Both must belong to this
// scene and the move must not create a cycle.
func (s *Scene) AddChild(parent, child *Object) error {
	if s.index[parent.id] != parent || s.index[child.id] != child {
		return fmt.Errorf("add child %d to %d: object not in scene %q", child.id, parent.id, s.Name)
	}
	if child.parent != NoObject {
		return fmt.Errorf("add child %d: already has parent %d", child.id, child.parent)
	}
	if parent == child || child.isAncestorOf(parent, s.Get) {
		return fmt.Errorf("add child %d to %d: cycle", child.id, parent.id)
	}

	s.roots = removeObject(s.roots, child)
	child.parent = parent.id
	parent.children = append(parent.children, child)
	return nil
}

// Get returns the object with id, including children, or nil.
func (s *Scene) Get(id ObjectID) *Object {
	return s.index[id]
}

// Objects returns the top-level objects in insertion order.
func (s *Scene) Objects() []*Object {
	return s.roots
}

// Len returns the number of objects, including children.
func (s *Scene) Len() int {
	return len(s.index)
}

// Walk visits every object depth-first in insertion order, parents before
// children. Returning false stops the walk.
func (s *Scene) Walk(fn func(*Object) bool) {
	for _, o := range s.roots {
		if !o.walk(fn) {
			return
		}
	}
}

// Remove deletes an object and its subtree and releases their ids.
func (s *Scene) Remove(id ObjectID) bool {
	o := s.index[id]
	if o == nil {
		return false
	}

	if o.parent == NoObject {
		s.roots = removeObject(s.roots, o)
	} else if p := s.index[o.parent]; p != nil {
		p.children = removeObject(p.children, o)
	}

	o.walk(func(d *Object) bool {
		delete(s.index, d.id)
		s.ids.Release(d.id)
		return true
	})
	return true
}

// Clear removes every object.
func (s *Scene) Clear() {
	for _, o := range s.roots {
		o.walk(func(d *Object) bool {
			s.ids.Release(d.id)
			return true
		})
	}
	s.roots = nil
	s.index = make(map[ObjectID]*Object)
}

// FindByName returns the first object named name in walk order.
func (s *Scene) FindByName(name string) *Object {
	var found *Object
	s.Walk(func(o *Object) bool {
		if o.name == name {
			found = o
			return false
		}
		return true
	})
	return found
}

func removeObject(list []*Object, o *Object) []*Object {
	for i, c := range list {
		if c == o {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}
