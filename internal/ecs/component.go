package ecs

// ComponentID identifies one component instance.
type ComponentID uint64

// ComponentType is a small integer key used to store/retrieve components.
type ComponentType uint8

// MaxComponentTypes bounds the per-entity component table.
const MaxComponentTypes = 16

// Component is implemented by every attachable module. Concrete components
// embed Base, which supplies everything except Type.
type Component interface {
	Type() ComponentType
	ComponentID() ComponentID
	Parent() EntityID
	base() *Base
}

// Releaser is implemented by components holding resources outside the
// entity (simulation bodies). Release runs before the component is detached.
type Releaser interface {
	Release() error
}

// Base carries the identity and owner handle of a component. The zero value
// is ready to use: an ID is issued on first attach.
type Base struct {
	id     ComponentID
	parent EntityID
}

// ComponentID returns the instance ID, or 0 before the first attach.
func (b *Base) ComponentID() ComponentID { return b.id }

// Parent returns the owning entity, or NilEntity if never attached.
func (b *Base) Parent() EntityID { return b.parent }

func (b *Base) base() *Base { return b }
