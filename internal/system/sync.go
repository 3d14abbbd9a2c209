package system

import (
	"glyphscene/internal/component"
	"glyphscene/internal/ecs"
	"glyphscene/internal/physics"
	"glyphscene/internal/scene"

	"github.com/rotisserie/eris"
)

// ErrShapeNotFound is returned when a collision proxy points at an entity
// that is not in the scene.
var ErrShapeNotFound = eris.New("debug shape not found")

// SyncPhysics copies a dynamic body's position into e's transform and
// mirrors it onto the collision proxy's debug shape. Static bodies are never
// read. Z, rotation and scale are left alone.
func SyncPhysics(s *scene.Scene, e *ecs.Entity) error {
	body := component.PhysicsBodyOf(e)
	if body == nil || body.Mode != physics.Dynamic {
		return nil
	}
	pos, err := body.PixelPosition()
	if err != nil {
		return eris.Wrapf(err, "read body %d", body.Handle())
	}
	e.Transform.Position = e.Transform.Position.WithXY(pos)

	proxy := component.CollisionProxyOf(e)
	if proxy == nil {
		return nil
	}
	shape, ok := s.Entity(proxy.Shape)
	if !ok {
		return eris.Wrapf(ErrShapeNotFound, "shape %d", proxy.Shape)
	}
	shape.Transform.Position = shape.Transform.Position.WithXY(pos)
	return nil
}
