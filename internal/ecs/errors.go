package ecs

import "github.com/rotisserie/eris"

var (
	// ErrDuplicateComponent is returned by Attach when the entity already holds
	// a component of the same type.
	ErrDuplicateComponent = eris.New("duplicate component")
	// ErrComponentNotFound is returned by Detach for components that are not
	// attached to the entity.
	ErrComponentNotFound = eris.New("component not found")
	// ErrComponentBound is returned by Attach for components that already have
	// a parent. A component's parent is set exactly once.
	ErrComponentBound = eris.New("component already bound")

	ErrNilComponent         = eris.New("nil component")
	ErrInvalidComponentType = eris.New("invalid component type")
)
