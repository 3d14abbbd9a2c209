package component

import "glyphscene/internal/ecs"

const CCollisionProxy ecs.ComponentType = 2

// CollisionProxy mirrors a physics-driven entity's position onto a separate
// debug-shape entity. It never feeds back into the simulation.
type CollisionProxy struct {
	ecs.Base
	Shape ecs.EntityID
}

func (*CollisionProxy) Type() ecs.ComponentType { return CCollisionProxy }
