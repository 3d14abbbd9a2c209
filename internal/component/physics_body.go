package component

import (
	"glyphscene/internal/ecs"
	"glyphscene/internal/geom"
	"glyphscene/internal/physics"

	"github.com/rotisserie/eris"
)

const CPhysicsBody ecs.ComponentType = 1

// PhysicsBody ties an entity to a body owned by a physics world. Offset is
// subtracted from the converted pixel position (see geom.ToPixels).
type PhysicsBody struct {
	ecs.Base
	Mode   physics.Mode
	Offset geom.Vec2

	world    physics.World
	handle   physics.BodyHandle
	released bool
}

func (*PhysicsBody) Type() ecs.ComponentType { return CPhysicsBody }

// NewPhysicsBody creates a body in world at the simulation position matching
// pixel position pos.
func NewPhysicsBody(world physics.World, mode physics.Mode, pos, offset geom.Vec2) (*PhysicsBody, error) {
	if world == nil {
		return nil, eris.New("physics body: nil world")
	}
	h, err := world.CreateBody(mode, geom.ToSimulation(pos, world.Scale(), offset))
	if err != nil {
		return nil, eris.Wrapf(err, "create %s body", mode)
	}
	return &PhysicsBody{Mode: mode, Offset: offset, world: world, handle: h}, nil
}

func (b *PhysicsBody) Handle() physics.BodyHandle { return b.handle }
func (b *PhysicsBody) World() physics.World { return b.world }
func (b *PhysicsBody) Released() bool { return b.released }

// SimPosition reads the body's simulation-space position.
func (b *PhysicsBody) SimPosition() (geom.Vec2, error) {
	if b.released {
		return geom.Vec2{}, eris.Wrapf(physics.ErrBodyNotFound, "body %d released", b.handle)
	}
	return b.world.Position(b.handle)
}

// PixelPosition reads the body's position converted to scene space.
func (b *PhysicsBody) PixelPosition() (geom.Vec2, error) {
	sim, err := b.SimPosition()
	if err != nil {
		return geom.Vec2{}, err
	}
	return geom.ToPixels(sim, b.world.Scale(), b.Offset), nil
}

// Release destroys the simulation body. Later calls are no-ops, and a body
// the world no longer has counts as released.
func (b *PhysicsBody) Release() error {
	if b.released {
		return nil
	}
	if err := b.world.DestroyBody(b.handle); err != nil && !eris.Is(err, physics.ErrBodyNotFound) {
		return eris.Wrapf(err, "destroy body %d", b.handle)
	}
	b.released = true
	return nil
}

// PhysicsBodyAt scans e's components for a physics body whose simulation
// position equals pos exactly. Bodies that cannot be read never match.
func PhysicsBodyAt(e *ecs.Entity, pos geom.Vec2) *PhysicsBody {
	for _, c := range e.Components() {
		b, ok := c.(*PhysicsBody)
		if !ok {
			continue
		}
		p, err := b.SimPosition()
		if err != nil {
			continue
		}
		if p.X == pos.X && p.Y == pos.Y {
			return b
		}
	}
	return nil
}
