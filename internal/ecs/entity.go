package ecs

import (
	"reflect"

	"glyphscene/internal/geom"
	"glyphscene/internal/ident"

	"github.com/rotisserie/eris"
)

// EntityID uniquely identifies an entity for the lifetime of the process.
type EntityID uint64

// NilEntity is the zero value; no valid entity has this ID.
const NilEntity EntityID = 0

// Entity is a named, addressable container of a Transform and at most one
// component per ComponentType.
type Entity struct {
	id        EntityID
	name      string
	active    bool
	Transform geom.Transform

	components []Component // attach order
	byType     [MaxComponentTypes]Component
}

// NewEntity creates an inactive entity with a fresh ID.
func NewEntity(name string, t geom.Transform) *Entity {
	return &Entity{
		id:        EntityID(ident.Next()),
		name:      name,
		Transform: t,
	}
}

func (e *Entity) ID() EntityID { return e.id }
func (e *Entity) Name() string { return e.name }
func (e *Entity) Active() bool { return e.active }
func (e *Entity) String() string { return e.name }

// SetActive toggles whether the entity takes part in physics sync and draw.
// Attached components are not touched.
func (e *Entity) SetActive(active bool) { e.active = active }

// Attach adds c to the entity and binds its parent handle.
func (e *Entity) Attach(c Component) error {
	if isNil(c) {
		return eris.Wrapf(ErrNilComponent, "attach to %q", e.name)
	}
	t := c.Type()
	if int(t) >= MaxComponentTypes {
		return eris.Wrapf(ErrInvalidComponentType, "attach type %d to %q", t, e.name)
	}
	if e.byType[t] != nil {
		return eris.Wrapf(ErrDuplicateComponent, "type %d already on %q", t, e.name)
	}
	b := c.base()
	if b.parent != NilEntity {
		return eris.Wrapf(ErrComponentBound, "component %d bound to entity %d", b.id, b.parent)
	}
	if b.id == 0 {
		b.id = ComponentID(ident.Next())
	}
	b.parent = e.id
	e.components = append(e.components, c)
	e.byType[t] = c
	return nil
}

// Detach removes exactly c, matched by component ID. Components that own
// external resources are released first; if that fails nothing is removed.
func (e *Entity) Detach(c Component) error {
	if isNil(c) {
		return eris.Wrapf(ErrComponentNotFound, "detach nil from %q", e.name)
	}
	idx := e.indexOf(c.ComponentID())
	if idx < 0 {
		return eris.Wrapf(ErrComponentNotFound, "component %d on %q", c.ComponentID(), e.name)
	}
	found := e.components[idx]
	if r, ok := found.(Releaser); ok {
		if err := r.Release(); err != nil {
			return eris.Wrapf(err, "release component %d on %q", found.ComponentID(), e.name)
		}
	}
	e.components = append(e.components[:idx], e.components[idx+1:]...)
	if t := found.Type(); e.byType[t] == found {
		e.byType[t] = nil
	}
	return nil
}

// DetachAll detaches every component in reverse attach order. It keeps going
// after a failure and returns the first error.
func (e *Entity) DetachAll() error {
	var first error
	for i := len(e.components) - 1; i >= 0; i-- {
		if err := e.Detach(e.components[i]); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Get returns the component of type t, or nil.
func (e *Entity) Get(t ComponentType) Component {
	if int(t) >= MaxComponentTypes {
		return nil
	}
	return e.byType[t]
}

// Has reports whether a component of type t is attached.
func (e *Entity) Has(t ComponentType) bool {
	return e.Get(t) != nil
}

// Components returns the attached components in attach order.
func (e *Entity) Components() []Component {
	out := make([]Component, len(e.components))
	copy(out, e.components)
	return out
}

func (e *Entity) indexOf(id ComponentID) int {
	for i, c := range e.components {
		if c.ComponentID() == id {
			return i
		}
	}
	return -1
}

// isNil also catches typed nil pointers stored in the interface.
func isNil(c Component) bool {
	if c == nil {
		return true
	}
	v := reflect.ValueOf(c)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
