// Package scene holds the ordered, owning collection of entities that is
// ticked and drawn together, and the Directory slot that says which scene
// is current.
package scene

import (
	"errors"

	"glyphscene/internal/ecs"

	"github.com/rotisserie/eris"
)

var (
	ErrDuplicateEntity = eris.New("entity already in scene")
	ErrEntityNotFound  = eris.New("entity not in scene")
)

// Scene owns its entities. Insertion order is draw order for entities at
// the same depth.
type Scene struct {
	name     string
	entities []*ecs.Entity
	index    map[ecs.EntityID]*ecs.Entity
}

func New(name string) *Scene {
	return &Scene{name: name, index: make(map[ecs.EntityID]*ecs.Entity)}
}

func (s *Scene) Name() string { return s.name }
func (s *Scene) Len() int { return len(s.entities) }

// Add appends e.
func (s *Scene) Add(e *ecs.Entity) error {
	if e == nil {
		return eris.New("add nil entity")
	}
	if _, ok := s.index[e.ID()]; ok {
		return eris.Wrapf(ErrDuplicateEntity, "entity %d (%s) in %q", e.ID(), e.Name(), s.name)
	}
	s.entities = append(s.entities, e)
	s.index[e.ID()] = e
	return nil
}

// Remove takes the entity out of the scene and detaches its components,
// releasing any simulation bodies. The entity is removed even if a release
// fails; the error is returned.
func (s *Scene) Remove(id ecs.EntityID) error {
	e, ok := s.index[id]
	if !ok {
		return eris.Wrapf(ErrEntityNotFound, "entity %d in %q", id, s.name)
	}
	delete(s.index, id)
	// Rebuild rather than shift in place so slices handed out by Entities
	// keep their contents.
	kept := make([]*ecs.Entity, 0, len(s.entities)-1)
	for _, cur := range s.entities {
		if cur != e {
			kept = append(kept, cur)
		}
	}
	s.entities = kept
	return e.DetachAll()
}

// Entity returns the entity with the given id.
func (s *Scene) Entity(id ecs.EntityID) (*ecs.Entity, bool) {
	e, ok := s.index[id]
	return e, ok
}

// Entities returns the entities in insertion order. The slice belongs to
// the scene and must not be modified; later Add and Remove calls do not
// change it.
func (s *Scene) Entities() []*ecs.Entity { return s.entities }

// FindByName returns every entity called name, in insertion order.
func (s *Scene) FindByName(name string) []*ecs.Entity {
	var out []*ecs.Entity
	for _, e := range s.entities {
		if e.Name() == name {
			out = append(out, e)
		}
	}
	return out
}

// Destroy detaches every entity's components and empties the scene.
func (s *Scene) Destroy() error {
	var errs []error
	for _, e := range s.entities {
		if err := e.DetachAll(); err != nil {
			errs = append(errs, err)
		}
	}
	s.entities = nil
	s.index = make(map[ecs.EntityID]*ecs.Entity)
	return errors.Join(errs...)
}
