package component

import "glyphscene/internal/ecs"

// PhysicsBodyOf returns e's physics body, or nil.
func PhysicsBodyOf(e *ecs.Entity) *PhysicsBody {
	b, _ := e.Get(CPhysicsBody).(*PhysicsBody)
	return b
}

// CollisionProxyOf returns e's collision proxy, or nil.
func CollisionProxyOf(e *ecs.Entity) *CollisionProxy {
	p, _ := e.Get(CCollisionProxy).(*CollisionProxy)
	return p
}

// RenderableOf returns e's renderable, or nil.
func RenderableOf(e *ecs.Entity) Drawable {
	d, _ := e.Get(CRenderable).(Drawable)
	return d
}
